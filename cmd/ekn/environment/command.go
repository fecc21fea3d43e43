// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"fmt"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/blueprint"
	"github.com/dealer426/eknova/lib/config"
	"github.com/dealer426/eknova/lib/environment"
	"github.com/dealer426/eknova/lib/process"
	"github.com/dealer426/eknova/lib/wsl"
)

// Registry is the view of WSL the commands need. *wsl.Registry
// implements it.
type Registry interface {
	IsAvailable(ctx context.Context) bool
	Info(ctx context.Context) wsl.Info
	ListDistributions(ctx context.Context) []environment.Environment
	ListEnvironments(ctx context.Context) []environment.Environment
	FindEnvironment(ctx context.Context, name string) (environment.Environment, bool)
	EnvironmentExists(ctx context.Context, name string) bool
	StartEnvironment(ctx context.Context, name string) bool
	StopEnvironment(ctx context.Context, name string) bool
	RemoveEnvironment(ctx context.Context, name string) bool
	ImportEnvironment(ctx context.Context, name, sourceArchivePath, installPath string) bool
	ExecStreaming(ctx context.Context, name, command string, onLine func(string)) process.Result
}

var _ Registry = (*wsl.Registry)(nil)

// Dependencies is everything the environment commands share.
type Dependencies struct {
	Registry Registry
	Config   *config.Config
	Resolver blueprint.Resolver
	IO       cli.IO
}

// Commands returns the environment commands in help order.
func Commands(deps *Dependencies) []*cli.Command {
	return []*cli.Command{
		listCommand(deps),
		infoCommand(deps),
		startCommand(deps),
		stopCommand(deps),
		destroyCommand(deps),
		importCommand(deps),
		upCommand(deps),
		execCommand(deps),
	}
}

// requireWSL fails when the WSL binary is not installed.
func requireWSL(ctx context.Context, registry Registry) error {
	if registry.IsAvailable(ctx) {
		return nil
	}
	return cli.Transient("WSL is not available on this system\n\nInstall WSL 2 with 'wsl --install' and try again.")
}

// requireEnvironment returns the managed environment called name. The
// name is not validated: anything WSL lists under the prefix can be
// addressed, and anything else is NotFound. The NotFound error names
// the closest installed environment when one is plausible.
func requireEnvironment(ctx context.Context, registry Registry, name string) (environment.Environment, error) {
	installed := registry.ListEnvironments(ctx)
	names := make([]string, 0, len(installed))
	for _, candidate := range installed {
		if candidate.Name == name {
			return candidate, nil
		}
		names = append(names, candidate.Name)
	}

	if suggestion := cli.ClosestName(name, names); suggestion != "" {
		return environment.Environment{}, cli.NotFound("environment %q not found (did you mean %q?)", name, suggestion)
	}
	return environment.Environment{}, cli.NotFound("environment %q not found\n\nRun 'ekn list' to see installed environments.", name)
}

// singleName checks that args holds exactly one environment name.
func singleName(args []string, usage string) (string, error) {
	switch len(args) {
	case 0:
		return "", cli.Validation("environment name required\n\nUsage: %s", usage)
	case 1:
		return args[0], nil
	default:
		return "", cli.Validation("unexpected argument: %s", args[1])
	}
}

// note writes a progress or hint line to the error stream.
func (d *Dependencies) note(format string, args ...any) {
	fmt.Fprintf(d.IO.Err, format+"\n", args...)
}
