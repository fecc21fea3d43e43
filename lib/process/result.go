// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package process

import "strings"

// Result describes how one external process invocation ended.
//
// Success implies ExitCode == 0 and an empty Error. ExitCode is -1 when
// no exit status was observed: the program could not be launched, or
// it was killed because of a timeout or cancellation.
type Result struct {
	Success  bool
	ExitCode int

	// Output holds the merged stdout/stderr lines in the order they
	// were written, without line terminators. On a timeout it holds
	// whatever was read before the kill.
	Output []string

	// Error is a human-readable failure description, empty on success.
	Error string

	// Truncated is set when the program wrote more than the runner's
	// line limit. Output then holds the first lines only.
	Truncated bool
}

// OutputString returns the output lines joined with newlines.
func (r Result) OutputString() string {
	return strings.Join(r.Output, "\n")
}

// HasOutput reports whether any output line contains non-whitespace.
func (r Result) HasOutput() bool {
	for _, line := range r.Output {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// LastLine returns the last non-blank output line, or "" when there is
// none. Programs usually print their diagnostic last.
func (r Result) LastLine() string {
	for i := len(r.Output) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(r.Output[i]); line != "" {
			return line
		}
	}
	return ""
}

func failure(exitCode int, message string) Result {
	return Result{ExitCode: exitCode, Error: message}
}
