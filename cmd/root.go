// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package cmd implements the command-line interface for ssm-ensure.
//
// It uses the cobra library to expose a single command that makes one AWS SSM
// parameter match the desired name, value, description, tier and type. The
// package handles command-line argument parsing, configuration loading, and
// wiring of the input resolver, the SSM client and the reconciler.
//
// Global flags supported by the command include:
//   - --loglevel: Set logging verbosity (debug, info, warn, error)
//   - --logformat: Set log output format (text, json)
//   - --version: Display version information
//   - --help: Show help and usage information
package cmd

import (
	"fmt"

	"git.sr.ht/~wombelix/ssm-ensure/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Build information, set via ldflags during build
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Command-line flags
	logLevel    string
	logFormat   string
	showVersion bool

	// rootCmd ensures a single parameter. It is the only command.
	rootCmd = &cobra.Command{
		Use:   "ssm-ensure",
		Short: "Ensure an AWS SSM parameter matches the desired state",
		Long: `ssm-ensure makes a single AWS SSM Parameter Store parameter look like the
given name, value, description, tier and type.

It reads the current parameter, compares every field and only writes when
something differs. Running it again with the same input does not write.
The type of an existing parameter is never changed.

Examples:
  # Create or update a plain string parameter
  ssm-ensure --name /myapp/config/url --value https://example.com

  # Store the contents of a file as an encrypted parameter
  ssm-ensure --name /myapp/db/password --file-path ./password.txt --type SecureString

  # Show what would happen without writing
  ssm-ensure --name /myapp/config/url --value https://example.com --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       validateEnsureFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "ssm-ensure version %s (commit %s, built on %s)\n", version, commit, date)
				return nil
			}
			return runEnsure(cmd, args)
		},
	}
)

// init sets up flags and the persistent pre-run hook for logging
// initialization.
func init() {
	initFlags()

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger.InitLogger(logLevel, logFormat, cmd.ErrOrStderr())
		return nil
	}
}

// initFlags registers global and ensure flags on rootCmd, starting from
// default options.
func initFlags() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "logformat", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&showVersion, "version", false, "Show version information")

	opts = defaultOptions()
	bindEnsureFlags(rootCmd, &opts)
}

// Execute runs the root command. This is called by main.main().
// If there is an error, it will be returned to the caller.
func Execute() error {
	return rootCmd.Execute()
}
