// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package wsl

import "strings"

// Version labels reported by Info when no precise version is known.
const (
	VersionNotAvailable  = "Not available"
	VersionNotFunctional = "Not functional"
	VersionUnknown       = "(version unknown)"
)

// Info summarizes the local WSL installation.
type Info struct {
	// Available is false when the wsl binary is missing or does not
	// respond to any probe.
	Available bool `json:"available"`

	// Version is the WSL version ("2.0.9.0" from "wsl --version", or
	// "WSL 2" / "WSL 1" from "wsl --status"), or one of the Version*
	// labels above.
	Version string `json:"version"`

	// The remaining version fields come from "wsl --version", which
	// only the Store release of WSL understands. Empty when unknown.
	KernelVersion  string `json:"kernel_version,omitempty"`
	WSLgVersion    string `json:"wslg_version,omitempty"`
	WindowsVersion string `json:"windows_version,omitempty"`

	// DistributionCount counts every installed distribution, managed
	// or not. Zero when the count could not be obtained.
	DistributionCount int `json:"distribution_count"`
}

// versionFields maps the labels printed by "wsl --version" to the Info
// field they fill. Matching is case-insensitive on the text before the
// first colon.
var versionFields = map[string]func(*Info, string){
	"wsl version":     func(info *Info, value string) { info.Version = value },
	"kernel version":  func(info *Info, value string) { info.KernelVersion = value },
	"wslg version":    func(info *Info, value string) { info.WSLgVersion = value },
	"windows version": func(info *Info, value string) { info.WindowsVersion = value },
}

// parseVersionOutput extracts the version fields from "wsl --version"
// output. It reports false when no "WSL version" line was found, which
// is what an older inbox wsl.exe prints (its usage text) or what a
// localized installation prints.
func parseVersionOutput(lines []string) (Info, bool) {
	var info Info
	for _, line := range lines {
		label, value, found := strings.Cut(CleanLine(line), ":")
		if !found {
			continue
		}
		if assign, known := versionFields[strings.ToLower(strings.TrimSpace(label))]; known {
			assign(&info, strings.TrimSpace(value))
		}
	}
	return info, info.Version != ""
}

// parseStatusVersion looks for the WSL generation in "wsl --status"
// output.
func parseStatusVersion(lines []string) (string, bool) {
	for _, line := range lines {
		cleaned := CleanLine(line)
		for _, marker := range []string{"WSL 2", "WSL 1"} {
			if strings.Contains(cleaned, marker) {
				return marker, true
			}
		}
		// Newer releases print "Default Version: 2" instead.
		if label, value, found := strings.Cut(cleaned, ":"); found &&
			strings.EqualFold(strings.TrimSpace(label), "default version") {
			switch strings.TrimSpace(value) {
			case "1", "2":
				return "WSL " + strings.TrimSpace(value), true
			}
		}
	}
	return "", false
}
