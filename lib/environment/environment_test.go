// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDistributionNameRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"web", "data-science", "a", "x.y_z", "eknova"} {
		distribution := DistributionName(name)
		if !strings.HasPrefix(distribution, Prefix) {
			t.Errorf("DistributionName(%q) = %q, missing prefix", name, distribution)
		}
		got, ok := NameFromDistribution(distribution)
		if !ok || got != name {
			t.Errorf("NameFromDistribution(%q) = (%q, %v), want (%q, true)", distribution, got, ok, name)
		}
	}
}

func TestNameFromUnmanagedDistribution(t *testing.T) {
	t.Parallel()

	for _, distribution := range []string{"Ubuntu-20.04", "docker-desktop", "eknova", "EKNOVA-web"} {
		if name, ok := NameFromDistribution(distribution); ok {
			t.Errorf("NameFromDistribution(%q) = (%q, true), want not managed", distribution, name)
		}
	}
}

func TestEqualIgnoresDescriptiveFields(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	running := Environment{Name: "web", DistributionName: "eknova-web", Status: Running, Version: "2"}
	stopped := Environment{Name: "web", DistributionName: "eknova-web", Status: Stopped, Version: "1",
		Blueprint: "@eknova/node", Created: &created}

	if !running.Equal(stopped) {
		t.Error("environments with the same identity compare unequal")
	}

	other := Environment{Name: "web", DistributionName: "web"}
	if running.Equal(other) {
		t.Error("environments with different distribution names compare equal")
	}
}

func TestManaged(t *testing.T) {
	t.Parallel()

	if !(Environment{DistributionName: "eknova-web"}).Managed() {
		t.Error("eknova-web not reported as managed")
	}
	if (Environment{DistributionName: "Ubuntu"}).Managed() {
		t.Error("Ubuntu reported as managed")
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "web", true},
		{"punctuation", "data-science_2.0", true},
		{"max length", strings.Repeat("a", MaxNameLength), true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", MaxNameLength+1), false},
		{"space", "my env", false},
		{"slash", "a/b", false},
		{"non-ascii", "café", false},
		{"already prefixed", "eknova-web", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateName(test.input)
			if test.valid && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", test.input, err)
			}
			if !test.valid {
				if err == nil {
					t.Fatalf("ValidateName(%q) = nil, want error", test.input)
				}
				if !errors.Is(err, ErrInvalidName) {
					t.Errorf("error %v does not wrap ErrInvalidName", err)
				}
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"web", "web"},
		{"My Project", "My-Project"},
		{"  spaces  and///slashes ", "spaces-and-slashes"},
		{"eknova-web", "web"},
		{"---", ""},
		{"ünïcode", "n-code"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()
			got := SanitizeName(test.input)
			if got != test.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", test.input, got, test.want)
			}
			if got != "" {
				if err := ValidateName(got); err != nil {
					t.Errorf("sanitized name %q fails validation: %v", got, err)
				}
			}
		})
	}
}

func TestEnvironmentJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Environment{
		Name:             "web",
		DistributionName: "eknova-web",
		Status:           Running,
		Version:          "2",
		Default:          true,
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"name":"web","distribution":"eknova-web","status":"running","version":"2","default":true}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
