// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package input resolves the desired parameter value from either a literal
// command-line value or the contents of a local file.
package input

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Resolver failures. All of them end the run before any remote call.
var (
	ErrMissingInput = errors.New("either a value or a file path must be provided")
	ErrFileNotFound = errors.New("file not found")
	ErrEmptyValue   = errors.New("parameter value is empty")
)

// Source holds the two possible origins of a parameter value.
type Source struct {
	// Value is the literal value, nil when it was not supplied
	Value *string
	// FilePath points to a file whose full contents become the value,
	// empty when it was not supplied
	FilePath string
}

// Resolve returns the value described by src. The file wins when both a
// literal value and a file path are given; a warning is logged in that case.
// File contents are returned verbatim, including any trailing newline.
func Resolve(src Source) (string, error) {
	if src.Value == nil && src.FilePath == "" {
		return "", ErrMissingInput
	}

	if src.FilePath == "" {
		if *src.Value == "" {
			return "", ErrEmptyValue
		}
		return *src.Value, nil
	}

	if src.Value != nil {
		slog.Warn("Both value and file path provided, using file contents and ignoring value", "file", src.FilePath)
	}

	info, err := os.Stat(src.FilePath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, src.FilePath)
	}

	data, err := os.ReadFile(src.FilePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFileNotFound, src.FilePath, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file %s has no content", ErrEmptyValue, src.FilePath)
	}

	slog.Debug("Read parameter value from file", "file", src.FilePath, "bytes", len(data))
	return string(data), nil
}
