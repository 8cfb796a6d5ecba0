// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"git.sr.ht/~wombelix/ssm-ensure/internal/param"
	"github.com/spf13/pflag"
)

// tierValue is a pflag.Value that only accepts valid parameter tiers
type tierValue param.Tier

var _ pflag.Value = (*tierValue)(nil)

func (v *tierValue) String() string { return string(*v) }

func (v *tierValue) Set(s string) error {
	t, err := param.ParseTier(s)
	if err != nil {
		return err
	}
	*v = tierValue(t)
	return nil
}

func (v *tierValue) Type() string { return "tier" }

// typeValue is a pflag.Value that only accepts valid parameter types
type typeValue param.Type

var _ pflag.Value = (*typeValue)(nil)

func (v *typeValue) String() string { return string(*v) }

func (v *typeValue) Set(s string) error {
	t, err := param.ParseType(s)
	if err != nil {
		return err
	}
	*v = typeValue(t)
	return nil
}

func (v *typeValue) Type() string { return "type" }
