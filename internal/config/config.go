// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package config provides configuration management for the ssm-ensure tool.
//
// It handles loading and merging of YAML configuration files from multiple
// locations with a defined precedence order. The package supports both global
// (user home directory) and local (current directory) configurations, with
// local settings taking precedence over global ones.
//
// Configuration files are named .ssm-ensure.yaml and hold defaults for the
// AWS connection (region, profile, role) and for the parameter itself (KMS
// key, tier, type). Command-line flags always win over file settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~wombelix/ssm-ensure/internal/param"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file in the home and current directory
const FileName = ".ssm-ensure.yaml"

// Common errors returned by the package
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the configuration structure for ssm-ensure.
type Config struct {
	// Region is the default AWS region for operations
	Region string `yaml:"region,omitempty"`
	// Profile is the shared AWS config profile to use
	Profile string `yaml:"profile,omitempty"`
	// Role is the AWS IAM role to assume for operations
	Role string `yaml:"role,omitempty"`
	// KMS is the default KMS key ID for SecureString parameters
	KMS string `yaml:"kms,omitempty"`
	// Tier is the default parameter tier
	Tier string `yaml:"tier,omitempty"`
	// Type is the default parameter type
	Type string `yaml:"type,omitempty"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Tier != "" {
		if _, err := param.ParseTier(c.Tier); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Type != "" {
		if _, err := param.ParseType(c.Type); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from files with precedence:
// 1. Current directory (.ssm-ensure.yaml)
// 2. Home directory (~/.ssm-ensure.yaml)
//
// A file that exists but cannot be read, parsed or validated is an error.
// If no configuration files are found, returns an empty configuration.
func LoadConfig() (*Config, error) {
	var cfg Config

	// Try loading from home directory first
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, FileName)
		if fileExists(homeConfig) {
			if err := loadFile(homeConfig, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load global config %s: %w", homeConfig, err)
			}
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid global config %s: %w", homeConfig, err)
			}
		}
	}

	// Try loading from current directory (overrides home config)
	if fileExists(FileName) {
		localCfg := Config{}
		if err := loadFile(FileName, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to load local config %s: %w", FileName, err)
		}
		if err := localCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid local config %s: %w", FileName, err)
		}
		mergeConfig(&cfg, &localCfg)
	}

	return &cfg, nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

// loadFile loads and unmarshals a YAML configuration file.
func loadFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", sanitizeForLog(filename), err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML in %s: %w", sanitizeForLog(filename), err)
	}
	return nil
}

// mergeConfig merges local configuration into global configuration.
// Non-empty local settings replace global ones.
func mergeConfig(global, local *Config) {
	if local.Region != "" {
		global.Region = local.Region
	}
	if local.Profile != "" {
		global.Profile = local.Profile
	}
	if local.Role != "" {
		global.Role = local.Role
	}
	if local.KMS != "" {
		global.KMS = local.KMS
	}
	if local.Tier != "" {
		global.Tier = local.Tier
	}
	if local.Type != "" {
		global.Type = local.Type
	}
}

// sanitizeForLog removes control characters that could be used for log injection (CWE-117 mitigation)
func sanitizeForLog(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.ReplaceAll(s, "\x1b", "") // Remove escape sequences
}
