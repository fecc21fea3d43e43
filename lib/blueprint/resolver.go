// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"context"
	"errors"
	"fmt"
)

// Plan is what a resolved blueprint asks eknova to build.
type Plan struct {
	// EnvironmentName is the name the blueprint suggests. Callers
	// may override it.
	EnvironmentName string

	// BaseImage is the root filesystem archive to import: a local
	// path or a URL.
	BaseImage string

	// Steps are shell commands to run inside the new environment, in
	// order, after import.
	Steps []string
}

// Resolver turns a blueprint reference into a provisioning plan.
type Resolver interface {
	Resolve(ctx context.Context, reference Reference) (Plan, error)
}

// ErrNotImplemented is returned by Unimplemented for every reference.
var ErrNotImplemented = errors.New("blueprint provisioning is not implemented")

// Unimplemented is the Resolver used until blueprint provisioning
// exists.
type Unimplemented struct{}

var _ Resolver = Unimplemented{}

func (Unimplemented) Resolve(_ context.Context, reference Reference) (Plan, error) {
	return Plan{}, fmt.Errorf("%w: %s blueprint %s", ErrNotImplemented, reference.Kind, reference.Raw)
}
