// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package validation provides validation functions for AWS resource names and other inputs.
//
// It includes validation for:
// - SSM Parameter Store names, both plain and hierarchical
// - AWS Region names
// - AWS KMS Key IDs, aliases and ARNs
// - AWS IAM Role ARNs
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"git.sr.ht/~wombelix/ssm-ensure/internal/param"
)

const (
	// maxNameLength is the limit SSM applies to a parameter name
	maxNameLength = 1011
	// maxHierarchyDepth is the maximum number of levels below the root
	maxHierarchyDepth = 15
)

var (
	// Regular expressions for AWS resource validation
	plainNameRegex     = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	parameterPathRegex = regexp.MustCompile(`^/[a-zA-Z0-9_.-]+(/[a-zA-Z0-9_.-]+)*$`)
	regionRegex        = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
	kmsKeyIDRegex      = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	kmsAliasRegex      = regexp.MustCompile(`^alias/[a-zA-Z0-9/_-]+$`)
	kmsArnRegex        = regexp.MustCompile(`^arn:aws(-[a-z]+)*:kms:[a-z]{2}(-[a-z]+)+-\d:\d{12}:(key/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}|alias/[a-zA-Z0-9/_-]+)$`)
	roleArnRegex       = regexp.MustCompile(`^arn:aws(-[a-z]+)*:iam::\d{12}:role/[a-zA-Z0-9+=,.@_-]+(/[a-zA-Z0-9+=,.@_-]+)*$`)
)

// ValidateParameterName checks if the given SSM parameter name is valid.
// A valid name:
// - Must not be empty or longer than 1011 characters
// - Is either a plain name (no slashes) or a path starting with a forward slash
// - Can contain letters, numbers, dots, hyphens, and underscores
// - Must not end with a forward slash or contain consecutive forward slashes
// - Must not have more than 15 hierarchy levels
// - Must not begin with the reserved prefixes "aws" or "ssm"
func ValidateParameterName(name string) error {
	if name == "" {
		return fmt.Errorf("parameter name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("parameter name must not be longer than %d characters", maxNameLength)
	}

	first := strings.ToLower(strings.SplitN(strings.TrimPrefix(name, "/"), "/", 2)[0])
	if strings.HasPrefix(first, "aws") || strings.HasPrefix(first, "ssm") {
		return fmt.Errorf("parameter name must not begin with the reserved prefix 'aws' or 'ssm': %s", name)
	}

	if !strings.Contains(name, "/") {
		if !plainNameRegex.MatchString(name) {
			return fmt.Errorf("invalid parameter name format: %s", name)
		}
		return nil
	}

	if !strings.HasPrefix(name, "/") {
		return fmt.Errorf("hierarchical parameter name must start with '/'")
	}
	if strings.HasSuffix(name, "/") {
		return fmt.Errorf("parameter name must not end with '/'")
	}
	if strings.Contains(name, "//") {
		return fmt.Errorf("parameter name must not contain consecutive '/'")
	}
	if !parameterPathRegex.MatchString(name) {
		return fmt.Errorf("invalid parameter name format: %s", name)
	}
	if depth := strings.Count(name, "/"); depth > maxHierarchyDepth {
		return fmt.Errorf("parameter name has %d hierarchy levels, maximum is %d", depth, maxHierarchyDepth)
	}
	return nil
}

// ValidateRegion checks if the given AWS region name is valid.
// A valid region name:
// - Must be in the format: [a-z]{2}-[a-z]+-\d
// - Examples: us-east-1, eu-central-1, ap-southeast-2
// - Empty string is considered valid (for optional fields)
func ValidateRegion(region string) error {
	if region == "" {
		return nil
	}
	if !regionRegex.MatchString(region) {
		return fmt.Errorf("invalid region format: %s", region)
	}
	return nil
}

// ValidateKMSKey checks if the given KMS key identifier is valid.
// It accepts:
// - Key ID (UUID format)
// - Key alias (alias/name format)
// - Key or alias ARN
// - Empty string is considered valid (for optional fields)
func ValidateKMSKey(key string) error {
	if key == "" {
		return nil
	}

	if kmsKeyIDRegex.MatchString(key) || kmsAliasRegex.MatchString(key) || kmsArnRegex.MatchString(key) {
		return nil
	}

	return fmt.Errorf("invalid KMS key format: %s", key)
}

// ValidateRoleARN checks if the given IAM role ARN is valid.
// A valid role ARN:
// - Must be in the format: arn:<partition>:iam::<account-id>:role/<role-name-with-path>
// - Account ID must be 12 digits
// - Role name must follow IAM naming rules
// - Empty string is considered valid (for optional fields)
func ValidateRoleARN(arn string) error {
	if arn == "" {
		return nil
	}
	if !roleArnRegex.MatchString(arn) {
		return fmt.Errorf("invalid role ARN format: %s", arn)
	}
	return nil
}

// ValidateKMSUsage ensures a KMS key is only supplied for SecureString parameters.
// SSM rejects a KeyId on String and StringList writes.
func ValidateKMSUsage(paramType param.Type, kmsKey string) error {
	if kmsKey != "" && paramType != param.TypeSecureString {
		return fmt.Errorf("KMS key can only be used with SecureString parameters, got type %s", paramType)
	}
	return nil
}
