// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Prefix marks a WSL distribution as managed by eknova.
const Prefix = "eknova-"

// MaxNameLength is the longest environment name ValidateName accepts.
const MaxNameLength = 64

// UnknownVersion is reported when WSL's listing has no VERSION column.
const UnknownVersion = "Unknown"

// Environment is one WSL distribution as eknova sees it.
type Environment struct {
	// Name is the user-facing identity. For managed environments it
	// is the distribution name without Prefix; for distributions
	// eknova does not manage it equals DistributionName.
	Name string `json:"name"`

	// DistributionName is the name WSL knows the distribution by.
	DistributionName string `json:"distribution"`

	Status Status `json:"status"`

	// Blueprint names the blueprint the environment was created from.
	// Empty when unknown, which is always the case for environments
	// discovered from a WSL listing.
	Blueprint string `json:"blueprint,omitempty"`

	// Created is nil when the creation time is unknown.
	Created *time.Time `json:"created,omitempty"`

	// Version is WSL's VERSION column ("1" or "2"), or UnknownVersion.
	Version string `json:"version"`

	// Default is true for the distribution WSL marks with "*".
	Default bool `json:"default,omitempty"`
}

// Managed reports whether the environment's distribution carries the
// eknova prefix.
func (e Environment) Managed() bool {
	return strings.HasPrefix(e.DistributionName, Prefix)
}

// Equal reports whether e and other identify the same environment.
// Only the name and the distribution name take part; status and the
// descriptive fields change over time without changing identity.
func (e Environment) Equal(other Environment) bool {
	return e.Name == other.Name && e.DistributionName == other.DistributionName
}

// DistributionName returns the WSL distribution name for a managed
// environment name.
func DistributionName(name string) string {
	return Prefix + name
}

// NameFromDistribution strips Prefix from a distribution name. The
// boolean is false when the distribution is not managed by eknova.
func NameFromDistribution(distribution string) (string, bool) {
	return strings.CutPrefix(distribution, Prefix)
}

// ErrInvalidName is wrapped by every error ValidateName returns.
var ErrInvalidName = errors.New("invalid environment name")

// ValidateName checks that name can be used for a new environment: it
// must be non-empty, at most MaxNameLength characters, made of ASCII
// letters, digits, '.', '_' and '-', and must not already carry the
// eknova prefix.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if length := utf8.RuneCountInString(name); length > MaxNameLength {
		return fmt.Errorf("%w: %q is %d characters, the limit is %d", ErrInvalidName, name, length, MaxNameLength)
	}
	if strings.HasPrefix(name, Prefix) {
		return fmt.Errorf("%w: %q already starts with %q, pass the name without it", ErrInvalidName, name, Prefix)
	}
	for _, character := range name {
		if !isNameCharacter(character) {
			return fmt.Errorf("%w: %q contains %q (allowed: letters, digits, '.', '_', '-')", ErrInvalidName, name, character)
		}
	}
	return nil
}

func isNameCharacter(character rune) bool {
	switch {
	case character >= 'a' && character <= 'z',
		character >= 'A' && character <= 'Z',
		character >= '0' && character <= '9',
		character == '.', character == '_', character == '-':
		return true
	}
	return false
}

// SanitizeName maps arbitrary text onto the name alphabet: disallowed
// characters become '-', runs of '-' collapse, and leading or trailing
// separators are trimmed. The result may be empty.
func SanitizeName(text string) string {
	var builder strings.Builder
	lastDash := false
	for _, character := range text {
		if !isNameCharacter(character) {
			character = '-'
		}
		if character == '-' {
			if lastDash {
				continue
			}
			lastDash = true
		} else {
			lastDash = false
		}
		builder.WriteRune(character)
	}
	sanitized := strings.Trim(builder.String(), "-._")
	sanitized = strings.TrimPrefix(sanitized, Prefix)
	if utf8.RuneCountInString(sanitized) > MaxNameLength {
		sanitized = strings.TrimRight(sanitized[:MaxNameLength], "-._")
	}
	return sanitized
}
