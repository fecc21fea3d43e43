// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"log/slog"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/environment"
)

func startCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:    "start",
		Summary: "Start an environment",
		Description: `Boot a stopped environment. WSL starts a distribution the first time
a command runs in it, so this runs a trivial command inside the
environment and returns once it answers.`,
		Usage: "ekn start <name>",
		Examples: []cli.Example{
			{
				Description: "Start the dev environment",
				Command:     "ekn start dev",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			name, err := singleName(args, "ekn start <name>")
			if err != nil {
				return err
			}
			if err := requireWSL(ctx, deps.Registry); err != nil {
				return err
			}
			env, err := requireEnvironment(ctx, deps.Registry, name)
			if err != nil {
				return err
			}
			if env.Status == environment.Running {
				deps.note("Environment %q is already running.", name)
				return nil
			}
			return deps.start(ctx, logger, name)
		},
	}
}

// start boots name and reports the outcome.
func (d *Dependencies) start(ctx context.Context, logger *slog.Logger, name string) error {
	d.note("Starting %s...", name)
	if !d.Registry.StartEnvironment(ctx, name) {
		return cli.Transient("failed to start environment %q\n\nRun with EKNOVA_LOG_LEVEL=debug for the WSL output.", name)
	}
	logger.Info("environment started", "environment", name)
	d.note("Environment %q is running.", name)
	return nil
}

func stopCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:        "stop",
		Summary:     "Stop a running environment",
		Description: `Terminate a running environment's WSL distribution. Stopping an environment that is not running reports so and succeeds.`,
		Usage:       "ekn stop <name>",
		Examples: []cli.Example{
			{
				Description: "Stop the dev environment",
				Command:     "ekn stop dev",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			name, err := singleName(args, "ekn stop <name>")
			if err != nil {
				return err
			}
			if err := requireWSL(ctx, deps.Registry); err != nil {
				return err
			}
			env, err := requireEnvironment(ctx, deps.Registry, name)
			if err != nil {
				return err
			}
			if env.Status != environment.Running {
				deps.note("Environment %q is not running (%s).", name, env.Status.Label())
				return nil
			}

			if !deps.Registry.StopEnvironment(ctx, name) {
				return cli.Transient("failed to stop environment %q", name)
			}
			logger.Info("environment stopped", "environment", name)
			deps.note("Environment %q stopped.", name)
			return nil
		},
	}
}
