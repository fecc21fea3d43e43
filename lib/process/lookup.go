// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"context"
	"runtime"
)

// lookupCommand returns the platform's command lookup tool.
func lookupCommand() string {
	if runtime.GOOS == "windows" {
		return "where"
	}
	return "which"
}

// IsCommandAvailable reports whether name resolves on PATH, by asking
// the platform's own lookup tool (where on Windows, which elsewhere).
// Any failure, including the lookup tool itself being missing, counts
// as unavailable.
func (r *Runner) IsCommandAvailable(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	result := r.Execute(ctx, []string{lookupCommand(), name}, r.probeTimeout)
	return result.Success
}
