// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.sr.ht/~wombelix/ssm-ensure/internal/aws"
	"git.sr.ht/~wombelix/ssm-ensure/internal/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// testSetup provides common test setup functionality
type testSetup struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	tmpDir string

	// clientCalls counts aws.NewClient invocations
	clientCalls int
	// clientOpts holds the options of the last aws.NewClient call
	clientOpts aws.Options
}

// setupTest isolates HOME and the working directory, captures output and
// restores the package state when the test ends.
func setupTest(t *testing.T) *testSetup {
	t.Helper()

	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")
	work := filepath.Join(tmpDir, "work")
	for _, dir := range []string{home, work} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	origNewClient := aws.NewClient

	t.Setenv("HOME", home)
	if err := os.Chdir(work); err != nil {
		t.Fatalf("Failed to change to work directory: %v", err)
	}

	ts := &testSetup{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		tmpDir: tmpDir,
	}
	rootCmd.SetOut(ts.stdout)
	rootCmd.SetErr(ts.stderr)

	t.Cleanup(func() {
		if err := os.Chdir(origWd); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
		aws.NewClient = origNewClient
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	return ts
}

// resetFlags rebinds all flags to fresh defaults
func resetFlags() {
	rootCmd.ResetFlags()
	initFlags()
}

// setupMockClient makes aws.NewClient return a client backed by mockClient
func (ts *testSetup) setupMockClient(mockClient *aws.MockSSMClient) {
	aws.NewClient = func(ctx context.Context, o aws.Options) (*aws.Client, error) {
		ts.clientCalls++
		ts.clientOpts = o
		return &aws.Client{SSMClient: mockClient}, nil
	}
}

// setupConfigFile creates a local configuration file in the working directory
func (ts *testSetup) setupConfigFile(t *testing.T, content []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(ts.tmpDir, "work", config.FileName), content, 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

// writeValueFile writes content to a file below the test directory and returns its path
func (ts *testSetup) writeValueFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(ts.tmpDir, "value.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write value file: %v", err)
	}
	return path
}

// execute runs the root command with fresh flags
func execute(args ...string) error {
	resetFlags()
	rootCmd.SetArgs(args)
	return Execute()
}

// remoteParameter is the stored state served by newMockSSM
type remoteParameter struct {
	value       string
	description string
	tier        ssmtypes.ParameterTier
	paramType   ssmtypes.ParameterType
}

// newMockSSM returns a mock SSM API serving remote, or reporting the
// parameter as missing when remote is nil. Writes succeed unless putErr is set.
func newMockSSM(remote *remoteParameter, putErr error) *aws.MockSSMClient {
	return &aws.MockSSMClient{
		GetParamFunc: func(ctx context.Context, in *ssm.GetParameterInput, opts ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
			if remote == nil {
				return nil, &ssmtypes.ParameterNotFound{}
			}
			value := remote.value
			return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Name: in.Name, Value: &value, Type: remote.paramType}}, nil
		},
		DescribeParamsFunc: func(ctx context.Context, in *ssm.DescribeParametersInput, opts ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error) {
			if remote == nil {
				return &ssm.DescribeParametersOutput{}, nil
			}
			name := in.ParameterFilters[0].Values[0]
			meta := ssmtypes.ParameterMetadata{Name: &name, Tier: remote.tier, Type: remote.paramType}
			if remote.description != "" {
				desc := remote.description
				meta.Description = &desc
			}
			return &ssm.DescribeParametersOutput{Parameters: []ssmtypes.ParameterMetadata{meta}}, nil
		},
		PutParamFunc: func(ctx context.Context, in *ssm.PutParameterInput, opts ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
			if putErr != nil {
				return nil, putErr
			}
			return &ssm.PutParameterOutput{Version: 1}, nil
		},
	}
}
