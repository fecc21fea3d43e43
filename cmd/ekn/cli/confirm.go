// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"strings"
)

// Confirm asks a yes/no question on streams.Err and reads the answer
// from streams.In. Only "y" and "yes" (any case) confirm. When In is
// not a terminal the prompt is skipped and the answer is no, so a
// script cannot destroy anything by accident; callers offer --force for
// unattended use.
func Confirm(streams IO, question string) bool {
	if !IsTerminal(streams.In) {
		return false
	}
	return confirmFrom(streams, question)
}

// confirmFrom asks without the terminal check.
func confirmFrom(streams IO, question string) bool {
	fmt.Fprintf(streams.Err, "%s [y/N]: ", question)
	reader := bufio.NewReader(streams.In)
	answer, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
