// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"errors"
	"fmt"

	"git.sr.ht/~wombelix/ssm-ensure/internal/param"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ErrNotFound is returned when the requested parameter does not exist
var ErrNotFound = errors.New("parameter not found")

// dataTypeText is the only data type ssm-ensure writes
const dataTypeText = "text"

// SSMAPI defines the interface for AWS SSM operations
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// Client represents an AWS SSM client
type Client struct {
	SSMClient SSMAPI
}

// Options selects where and as whom the client talks to SSM. Empty fields
// fall back to the SDK's default resolution chain.
type Options struct {
	Region  string
	Profile string
	Role    string
}

// NewClientFunc is the type for the client creation function
type NewClientFunc func(context.Context, Options) (*Client, error)

// DefaultNewClient is the default implementation of NewClientFunc
var DefaultNewClient NewClientFunc = func(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if opts.Role != "" {
		// Create an STS client to assume the role
		stsClient := sts.NewFromConfig(cfg)
		provider := stscreds.NewAssumeRoleProvider(stsClient, opts.Role, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = "ssm-ensure"
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return &Client{
		SSMClient: ssm.NewFromConfig(cfg),
	}, nil
}

// NewClient is the function used to create new AWS SSM clients
var NewClient = DefaultNewClient

// GetParameter retrieves a decrypted parameter value from SSM Parameter Store.
// It returns an error wrapping ErrNotFound if the parameter does not exist.
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("parameter name is required")
	}

	output, err := c.SSMClient.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var pnf *ssmtypes.ParameterNotFound
		if errors.As(err, &pnf) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("failed to get parameter %s: %w", name, err)
	}

	if output.Parameter == nil || output.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", name)
	}

	return *output.Parameter.Value, nil
}

// DescribeParameter returns the metadata of exactly one named parameter.
// SSM has no single-item describe call, so this pages through
// DescribeParameters with an exact name filter until the match shows up.
// It returns an error wrapping ErrNotFound if nothing matches.
func (c *Client) DescribeParameter(ctx context.Context, name string) (*param.Metadata, error) {
	if name == "" {
		return nil, fmt.Errorf("parameter name is required")
	}

	input := &ssm.DescribeParametersInput{
		ParameterFilters: []ssmtypes.ParameterStringFilter{
			{
				Key:    aws.String(string(ssmtypes.ParametersFilterKeyName)),
				Option: aws.String("Equals"),
				Values: []string{name},
			},
		},
	}

	paginator := ssm.NewDescribeParametersPaginator(c.SSMClient, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe parameter %s: %w", name, err)
		}
		for _, p := range page.Parameters {
			if aws.ToString(p.Name) != name {
				continue
			}
			return &param.Metadata{
				Description:  aws.ToString(p.Description),
				Tier:         param.Tier(p.Tier),
				Type:         param.Type(p.Type),
				Version:      p.Version,
				LastModified: aws.ToTime(p.LastModifiedDate),
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// PutParameter creates the parameter or overwrites it in place with every
// field of p. SDK errors are wrapped unchanged so callers can inspect the
// API error code.
func (c *Client) PutParameter(ctx context.Context, p param.Parameter) error {
	if p.Name == "" {
		return fmt.Errorf("parameter name is required")
	}

	input := &ssm.PutParameterInput{
		Name:        aws.String(p.Name),
		Value:       aws.String(p.Value),
		Description: aws.String(p.Description),
		Type:        ssmtypes.ParameterType(p.Type),
		Tier:        ssmtypes.ParameterTier(p.Tier),
		DataType:    aws.String(dataTypeText),
		Overwrite:   aws.Bool(true),
	}

	if p.KeyID != "" {
		input.KeyId = aws.String(p.KeyID)
	}

	if _, err := c.SSMClient.PutParameter(ctx, input); err != nil {
		return fmt.Errorf("failed to put parameter %s: %w", p.Name, err)
	}

	return nil
}
