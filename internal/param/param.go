// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package param defines the parameter entity that ssm-ensure reconciles.
//
// A Parameter is identified by its name and carries a value, an optional
// description, a storage tier and a type. The type of an existing parameter
// is immutable; the tier and type enumerations mirror the values accepted by
// AWS SSM Parameter Store.
package param

import (
	"fmt"
	"strings"
	"time"
)

// Tier is the storage class of a parameter.
type Tier string

const (
	TierStandard           Tier = "Standard"
	TierAdvanced           Tier = "Advanced"
	TierIntelligentTiering Tier = "Intelligent-Tiering"
)

// Tiers lists every valid tier in the order they are shown to users.
var Tiers = []Tier{TierStandard, TierAdvanced, TierIntelligentTiering}

// Type is the data type of a parameter.
type Type string

const (
	TypeString       Type = "String"
	TypeStringList   Type = "StringList"
	TypeSecureString Type = "SecureString"
)

// Types lists every valid type in the order they are shown to users.
var Types = []Type{TypeString, TypeStringList, TypeSecureString}

// Parameter is the desired state of a single SSM parameter.
type Parameter struct {
	// Name is the unique key of the parameter in the store
	Name string
	// Value is the opaque payload
	Value string
	// Description is optional, empty means no description
	Description string
	Tier        Tier
	Type        Type
	// KeyID is the KMS key used to encrypt SecureString values. It is only
	// sent on writes and never compared.
	KeyID string
}

// Metadata is the descriptive part of a stored parameter as reported by
// the store's describe operation.
type Metadata struct {
	Description  string
	Tier         Tier
	Type         Type
	Version      int64
	LastModified time.Time
}

// ParseTier returns the canonical tier for s. Matching is case-insensitive.
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tiers {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid parameter tier: %q (must be one of %s)", s, joinTiers())
}

// ParseType returns the canonical type for s. Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range Types {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid parameter type: %q (must be one of %s)", s, joinTypes())
}

// Matches reports whether a stored tier satisfies the desired tier.
// Intelligent-Tiering lets the service pick the tier, so it is satisfied by
// whatever tier the service reports back.
func (t Tier) Matches(remote Tier) bool {
	if t == TierIntelligentTiering {
		return true
	}
	return t == remote
}

func joinTiers() string {
	names := make([]string, len(Tiers))
	for i, t := range Tiers {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinTypes() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
