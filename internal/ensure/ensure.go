// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package ensure reconciles one stored parameter against its desired state.
//
// Compare reads the current value and metadata and decides whether a write
// is needed, Write performs the overwrite-create, and Reconciler ties the two
// together and reports progress. A parameter's type is never changed: a
// type mismatch stops the run before anything is written.
package ensure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"git.sr.ht/~wombelix/ssm-ensure/internal/aws"
	"git.sr.ht/~wombelix/ssm-ensure/internal/param"
)

// Store is the subset of parameter store operations the reconciler needs.
// *aws.Client implements it.
type Store interface {
	GetParameter(ctx context.Context, name string) (string, error)
	DescribeParameter(ctx context.Context, name string) (*param.Metadata, error)
	PutParameter(ctx context.Context, p param.Parameter) error
}

// State is the result of comparing stored and desired state.
type State int

const (
	UpToDate State = iota
	NeedsWrite
)

func (s State) String() string {
	switch s {
	case UpToDate:
		return "UpToDate"
	case NeedsWrite:
		return "NeedsWrite"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Compare fetches the stored parameter and reports whether it matches the
// desired one. A missing parameter needs a write. A type mismatch returns a
// *TypeConflictError. Any other store error is returned as is.
func Compare(ctx context.Context, store Store, desired param.Parameter) (State, error) {
	value, err := store.GetParameter(ctx, desired.Name)
	if err != nil {
		if errors.Is(err, aws.ErrNotFound) {
			slog.Debug("Parameter does not exist", "name", desired.Name)
			return NeedsWrite, nil
		}
		return NeedsWrite, err
	}

	meta, err := store.DescribeParameter(ctx, desired.Name)
	if err != nil {
		if errors.Is(err, aws.ErrNotFound) {
			// deleted between the two calls
			slog.Debug("Parameter disappeared while reading metadata", "name", desired.Name)
			return NeedsWrite, nil
		}
		return NeedsWrite, err
	}

	slog.Debug("Fetched parameter metadata",
		"name", desired.Name,
		"type", meta.Type,
		"tier", meta.Tier,
		"version", meta.Version,
		"last_modified", meta.LastModified)

	if meta.Type != desired.Type {
		return NeedsWrite, &TypeConflictError{Name: desired.Name, Remote: meta.Type, Desired: desired.Type}
	}

	if changed := Diff(value, *meta, desired); len(changed) > 0 {
		slog.Info("Parameter differs from desired state", "name", desired.Name, "fields", changed)
		return NeedsWrite, nil
	}

	return UpToDate, nil
}

// Diff lists the names of the fields whose stored state differs from the
// desired one. Type is not part of the diff because it is never reconciled.
func Diff(value string, meta param.Metadata, desired param.Parameter) []string {
	var changed []string
	if value != desired.Value {
		changed = append(changed, "value")
	}
	if meta.Description != desired.Description {
		changed = append(changed, "description")
	}
	if !desired.Tier.Matches(meta.Tier) {
		changed = append(changed, "tier")
	}
	return changed
}

// Write creates or overwrites the parameter with every field of p. Known
// API failures come back as *WriteFailure.
func Write(ctx context.Context, store Store, p param.Parameter) error {
	if err := store.PutParameter(ctx, p); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// Outcome is what a reconciliation run did.
type Outcome int

const (
	Failed Outcome = iota
	Unchanged
	Written
	WouldWrite
)

func (o Outcome) String() string {
	switch o {
	case Failed:
		return "Failed"
	case Unchanged:
		return "Unchanged"
	case Written:
		return "Written"
	case WouldWrite:
		return "WouldWrite"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Reconciler runs Compare and, when needed, Write, printing one status line
// per step to Out.
type Reconciler struct {
	Store Store
	Out   io.Writer
	// DryRun skips the write and reports WouldWrite instead
	DryRun bool
}

// Ensure makes the stored parameter match p.
func (r *Reconciler) Ensure(ctx context.Context, p param.Parameter) (Outcome, error) {
	state, err := Compare(ctx, r.Store, p)
	if err != nil {
		return Failed, err
	}

	if state == UpToDate {
		fmt.Fprintf(r.Out, "Parameter '%s' is up to date\n", p.Name)
		return Unchanged, nil
	}

	fmt.Fprintf(r.Out, "Parameter '%s' needs to be created or updated\n", p.Name)
	if r.DryRun {
		fmt.Fprintf(r.Out, "Dry run, not writing parameter '%s'\n", p.Name)
		return WouldWrite, nil
	}

	if err := Write(ctx, r.Store, p); err != nil {
		var wf *WriteFailure
		if errors.As(err, &wf) {
			fmt.Fprintf(r.Out, "Failed to write parameter '%s': %s\n", p.Name, wf.Reason)
			fmt.Fprintf(r.Out, "  %s\n", wf.Guidance)
		}
		return Failed, err
	}

	fmt.Fprintf(r.Out, "Successfully wrote parameter '%s'\n", p.Name)
	return Written, nil
}
