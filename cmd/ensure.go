// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"git.sr.ht/~wombelix/ssm-ensure/internal/aws"
	"git.sr.ht/~wombelix/ssm-ensure/internal/config"
	"git.sr.ht/~wombelix/ssm-ensure/internal/ensure"
	"git.sr.ht/~wombelix/ssm-ensure/internal/input"
	"git.sr.ht/~wombelix/ssm-ensure/internal/param"
	"git.sr.ht/~wombelix/ssm-ensure/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds the ensure flags as parsed from the command line
type options struct {
	name        string
	value       string
	filePath    string
	description string
	tier        tierValue
	paramType   typeValue
	kms         string
	region      string
	profile     string
	role        string
	dryRun      bool
}

// opts is bound to rootCmd's flags
var opts options

// settings is everything a run needs after flags and config files are merged
type settings struct {
	parameter param.Parameter
	source    input.Source
	aws       aws.Options
	dryRun    bool
}

func defaultOptions() options {
	return options{
		tier:      tierValue(param.TierStandard),
		paramType: typeValue(param.TypeString),
	}
}

func bindEnsureFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().StringVar(&o.name, "name", "", "Parameter name (required)")
	cmd.Flags().StringVar(&o.value, "value", "", "Parameter value")
	cmd.Flags().StringVar(&o.filePath, "file-path", "", "File whose contents become the parameter value (wins over --value)")
	cmd.Flags().StringVar(&o.description, "description", "", "Parameter description")
	cmd.Flags().Var(&o.tier, "tier", "Parameter tier (Standard, Advanced, Intelligent-Tiering)")
	cmd.Flags().Var(&o.paramType, "type", "Parameter type (String, StringList, SecureString)")
	cmd.Flags().StringVar(&o.kms, "kms", "", "KMS key ID for SecureString parameters (optional)")
	cmd.Flags().StringVar(&o.region, "region", "", "AWS region (optional, default: from AWS config or environment)")
	cmd.Flags().StringVar(&o.profile, "profile", "", "AWS shared config profile (optional)")
	cmd.Flags().StringVar(&o.role, "role", "", "AWS role ARN to assume (optional)")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Report whether the parameter would be written without writing it")
}

// validateEnsureFlags checks if all required flags are set and valid
func validateEnsureFlags(cmd *cobra.Command, args []string) error {
	if showVersion {
		return nil
	}

	if opts.name == "" {
		return fmt.Errorf("required flag \"name\" not set")
	}
	if err := validation.ValidateParameterName(opts.name); err != nil {
		return err
	}

	return nil
}

// runEnsure executes the ensure command
func runEnsure(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	s, err := mergeSettings(cmd.Flags(), &opts, cfg)
	if err != nil {
		return err
	}

	// Resolve the value before touching AWS
	value, err := input.Resolve(s.source)
	if err != nil {
		return fmt.Errorf("failed to resolve parameter value: %w", err)
	}
	s.parameter.Value = value

	ctx := context.Background()
	client, err := aws.NewClient(ctx, s.aws)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	slog.Debug("Ensuring parameter",
		"name", s.parameter.Name,
		"type", s.parameter.Type,
		"tier", s.parameter.Tier,
		"region", s.aws.Region,
		"dry_run", s.dryRun)

	reconciler := &ensure.Reconciler{
		Store:  client,
		Out:    cmd.OutOrStdout(),
		DryRun: s.dryRun,
	}
	outcome, err := reconciler.Ensure(ctx, s.parameter)
	slog.Debug("Finished", "name", s.parameter.Name, "outcome", outcome)
	return err
}

// mergeSettings merges configuration from file with command line flags.
// Flags that were set explicitly take precedence, then the config file,
// then flag defaults. The merged AWS and KMS settings are validated.
func mergeSettings(flags *pflag.FlagSet, o *options, cfg *config.Config) (*settings, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	s := &settings{
		parameter: param.Parameter{
			Name:        o.name,
			Description: o.description,
			Tier:        param.Tier(o.tier),
			Type:        param.Type(o.paramType),
			KeyID:       firstNonEmpty(o.kms, cfg.KMS),
		},
		source: input.Source{
			FilePath: o.filePath,
		},
		aws: aws.Options{
			Region:  firstNonEmpty(o.region, cfg.Region),
			Profile: firstNonEmpty(o.profile, cfg.Profile),
			Role:    firstNonEmpty(o.role, cfg.Role),
		},
		dryRun: o.dryRun,
	}

	if flags.Changed("value") {
		value := o.value
		s.source.Value = &value
	}

	// Config values were validated when the file was loaded
	if !flags.Changed("tier") && cfg.Tier != "" {
		s.parameter.Tier, _ = param.ParseTier(cfg.Tier)
	}
	if !flags.Changed("type") && cfg.Type != "" {
		s.parameter.Type, _ = param.ParseType(cfg.Type)
	}

	// A KMS key from the config file is a default for SecureString only
	if o.kms == "" && s.parameter.Type != param.TypeSecureString {
		s.parameter.KeyID = ""
	}

	if err := validation.ValidateRegion(s.aws.Region); err != nil {
		return nil, err
	}
	if err := validation.ValidateRoleARN(s.aws.Role); err != nil {
		return nil, err
	}
	if err := validation.ValidateKMSKey(s.parameter.KeyID); err != nil {
		return nil, err
	}
	if err := validation.ValidateKMSUsage(s.parameter.Type, s.parameter.KeyID); err != nil {
		return nil, err
	}

	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
