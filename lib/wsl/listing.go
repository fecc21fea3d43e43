// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package wsl

import (
	"slices"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/dealer426/eknova/lib/environment"
)

const (
	// headerToken is the first column header of the verbose listing.
	headerToken = "NAME"

	// separatorRun identifies the dashed rule some WSL versions print
	// under the header.
	separatorRun = "----"

	// defaultMarker prefixes the line of the default distribution.
	defaultMarker = "*"
)

// CleanLine prepares one raw listing line for tokenizing. Terminal
// escape sequences are stripped, whitespace of any kind becomes a
// plain space, and every other non-printable rune (NUL bytes from
// mis-decoded UTF-16, byte order marks) is dropped. The result is
// trimmed.
func CleanLine(raw string) string {
	stripped := ansi.Strip(raw)
	var builder strings.Builder
	builder.Grow(len(stripped))
	for _, character := range stripped {
		switch {
		case unicode.IsSpace(character):
			builder.WriteByte(' ')
		case unicode.IsPrint(character):
			builder.WriteRune(character)
		}
	}
	return strings.TrimSpace(builder.String())
}

// IsListingNoise reports whether a cleaned line carries no
// distribution: it is empty, it is the column header, or it is a
// dashed separator.
func IsListingNoise(cleaned string) bool {
	if cleaned == "" || strings.Contains(cleaned, separatorRun) {
		return true
	}
	return slices.Contains(strings.Fields(cleaned), headerToken)
}

// ParseLine parses one line of "wsl --list --verbose" output. The
// boolean is false when the line is noise or does not have the
// expected shape: at least three whitespace-separated fields, an
// optional default marker, then name, state and an optional version.
//
// Name is the distribution name without the eknova prefix when it has
// one, and the distribution name unchanged otherwise. Blueprint and
// Created are left unknown; the listing does not carry them.
func ParseLine(raw string) (environment.Environment, bool) {
	cleaned := CleanLine(raw)
	if IsListingNoise(cleaned) {
		return environment.Environment{}, false
	}

	fields := strings.Fields(cleaned)
	if len(fields) < 3 {
		return environment.Environment{}, false
	}

	isDefault := false
	switch {
	case fields[0] == defaultMarker:
		isDefault = true
		fields = fields[1:]
	case strings.HasPrefix(fields[0], defaultMarker):
		// Some terminals drop the space after the marker.
		isDefault = true
		fields[0] = strings.TrimPrefix(fields[0], defaultMarker)
	}
	if len(fields) < 2 {
		return environment.Environment{}, false
	}

	distribution := fields[0]
	version := environment.UnknownVersion
	if len(fields) >= 3 {
		version = fields[2]
	}

	name := distribution
	if stripped, managed := environment.NameFromDistribution(distribution); managed {
		name = stripped
	}

	return environment.Environment{
		Name:             name,
		DistributionName: distribution,
		Status:           environment.ParseStatus(fields[1]),
		Version:          version,
		Default:          isDefault,
	}, true
}

// ParseListing parses every line of a verbose listing, in order,
// skipping noise and lines that do not parse. A bad line never stops
// the remaining lines from being read.
func ParseListing(lines []string) []environment.Environment {
	environments := make([]environment.Environment, 0, len(lines))
	for _, line := range lines {
		if IsListingNoise(CleanLine(line)) {
			continue
		}
		parsed, ok := ParseLine(line)
		if !ok {
			continue
		}
		environments = append(environments, parsed)
	}
	return environments
}

// countDistributions counts the non-blank lines of a quiet listing,
// which prints one distribution name per line and nothing else.
func countDistributions(lines []string) int {
	count := 0
	for _, line := range lines {
		if CleanLine(line) != "" {
			count++
		}
	}
	return count
}
