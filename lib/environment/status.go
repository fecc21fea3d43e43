// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an environment as WSL reports it.
// The zero value is Unknown.
type Status int

const (
	Unknown Status = iota
	Running
	Stopped
	Installing
	Terminated
)

// statusLabels is the single mapping between statuses and the words
// WSL prints in its STATE column.
var statusLabels = [...]string{
	Unknown:    "Unknown",
	Running:    "Running",
	Stopped:    "Stopped",
	Installing: "Installing",
	Terminated: "Terminated",
}

// AllStatuses returns every Status value in declaration order.
func AllStatuses() []Status {
	return []Status{Unknown, Running, Stopped, Installing, Terminated}
}

// Label returns the display label, e.g. "Running".
func (s Status) Label() string {
	if s < 0 || int(s) >= len(statusLabels) {
		return statusLabels[Unknown]
	}
	return statusLabels[s]
}

// String implements fmt.Stringer.
func (s Status) String() string { return s.Label() }

// ParseStatus maps WSL's state text to a Status. Matching ignores case
// and surrounding whitespace. Unrecognized text, including the empty
// string, maps to Unknown.
func ParseStatus(text string) Status {
	text = strings.TrimSpace(text)
	for status, label := range statusLabels {
		if strings.EqualFold(text, label) {
			return Status(status)
		}
	}
	return Unknown
}

// MarshalText implements encoding.TextMarshaler. Statuses serialize as
// their lowercase label ("running").
func (s Status) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.Label())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It is strict:
// unlike ParseStatus, a word that is not a status label is an error.
func (s *Status) UnmarshalText(data []byte) error {
	text := string(data)
	parsed := ParseStatus(text)
	if parsed == Unknown && !strings.EqualFold(strings.TrimSpace(text), statusLabels[Unknown]) {
		return fmt.Errorf("invalid environment status %q", text)
	}
	*s = parsed
	return nil
}
