// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package ensure

import (
	"errors"
	"fmt"

	"git.sr.ht/~wombelix/ssm-ensure/internal/param"
	"github.com/aws/smithy-go"
)

var (
	// ErrImmutableType is wrapped by TypeConflictError
	ErrImmutableType = errors.New("parameter type cannot be changed")
	// ErrWriteRejected is wrapped by WriteFailure
	ErrWriteRejected = errors.New("parameter write rejected")
)

// API error codes that a write can fail with and that are reported to the
// user instead of being treated as fatal.
const (
	CodeParameterLimitExceeded = "ParameterLimitExceeded"
	CodeInvalidAllowedPattern  = "InvalidAllowedPatternException"
	CodeTooManyUpdates         = "TooManyUpdates"
	CodeValidation             = "ValidationException"
)

// TypeConflictError reports an attempt to change the type of an existing
// parameter.
type TypeConflictError struct {
	Name    string
	Remote  param.Type
	Desired param.Type
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("cannot change type of parameter %s from %s to %s", e.Name, e.Remote, e.Desired)
}

func (e *TypeConflictError) Unwrap() error {
	return ErrImmutableType
}

// WriteFailure is a known, recoverable write failure. Guidance tells the
// operator what to do about it.
type WriteFailure struct {
	Code     string
	Reason   string
	Guidance string
	Err      error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("%s (%s)", e.Reason, e.Code)
}

func (e *WriteFailure) Unwrap() []error {
	return []error{ErrWriteRejected, e.Err}
}

type failureText struct {
	reason   string
	guidance string
}

var knownWriteFailures = map[string]failureText{
	CodeParameterLimitExceeded: {
		reason:   "parameter limit exceeded",
		guidance: "Parameter Store API calls can't exceed the maximum allowed API request rate per account and per Region, see https://docs.aws.amazon.com/general/latest/gr/ssm.html",
	},
	CodeInvalidAllowedPattern: {
		reason:   "invalid allowed pattern",
		guidance: "The value does not match the allowed pattern of the parameter, see https://docs.aws.amazon.com/systems-manager/latest/APIReference/API_PutParameter.html#API_PutParameter_RequestSyntax",
	},
	CodeTooManyUpdates: {
		reason:   "too many updates",
		guidance: "There are concurrent updates for a resource that supports one update at a time, re-run once they have finished",
	},
	CodeValidation: {
		reason:   "request validation failed",
		guidance: "Check the value size against the tier limit (Standard 4 KB, Advanced 8 KB) and that an Advanced parameter is not being moved back to Standard",
	},
}

// classifyWriteError turns known API error codes into a WriteFailure and
// returns every other error unchanged.
func classifyWriteError(err error) error {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return err
	}
	text, ok := knownWriteFailures[ae.ErrorCode()]
	if !ok {
		return err
	}
	return &WriteFailure{
		Code:     ae.ErrorCode(),
		Reason:   text.reason,
		Guidance: text.guidance,
		Err:      err,
	}
}
