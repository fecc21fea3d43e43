// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/environment"
)

type destroyParams struct {
	cli.JSONOutput
	All      bool `json:"all"       flag:"all"       desc:"destroy every eknova environment"`
	Force    bool `json:"force"     flag:"force,f"   desc:"skip the confirmation prompt"`
	KeepData bool `json:"keep_data" flag:"keep-data" desc:"only stop the environment, keeping its WSL distribution"`
}

// destroyResult is the per-environment outcome, also the --json shape.
type destroyResult struct {
	Name    string `json:"name"`
	Stopped bool   `json:"stopped"`
	Removed bool   `json:"removed"`
	Error   string `json:"error,omitempty"`
}

func (r destroyResult) failed() bool { return r.Error != "" }

func destroyCommand(deps *Dependencies) *cli.Command {
	var params destroyParams

	return &cli.Command{
		Name:    "destroy",
		Aliases: []string{"rm"},
		Summary: "Remove environments",
		Description: `Stop an environment and unregister its WSL distribution, deleting its
virtual disk. This cannot be undone.

Asks for confirmation unless --force is given. When stdin is not a
terminal there is nobody to ask, so --force is required.

With --all every eknova environment is destroyed. A failure on one
environment does not stop the others; the command exits non-zero if
any failed. With --keep-data environments are only stopped.`,
		Usage: "ekn destroy <name> | --all [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("destroy", &params)
		},
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Destroy the dev environment",
				Command:     "ekn destroy dev",
			},
			{
				Description: "Destroy every environment without prompting",
				Command:     "ekn destroy --all --force",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if params.All && len(args) > 0 {
				return cli.Validation("cannot combine an environment name with --all")
			}
			if !params.All && len(args) == 0 {
				return cli.Validation("environment name or --all required\n\nUsage: ekn destroy <name> | --all")
			}
			if len(args) > 1 {
				return cli.Validation("unexpected argument: %s", args[1])
			}
			if err := requireWSL(ctx, deps.Registry); err != nil {
				return err
			}

			if params.All {
				return deps.destroyAll(ctx, logger, &params)
			}
			return deps.destroyOne(ctx, logger, &params, args[0])
		},
	}
}

func (d *Dependencies) destroyOne(ctx context.Context, logger *slog.Logger, params *destroyParams, name string) error {
	env, err := requireEnvironment(ctx, d.Registry, name)
	if err != nil {
		return err
	}

	if proceed, err := d.confirmDestroy(params, fmt.Sprintf("Destroy environment %q?", name)); !proceed {
		return err
	}

	result := d.destroy(ctx, logger, env, params.KeepData)
	if done, err := params.EmitJSON(d.IO.Out, result); done {
		if err != nil {
			return err
		}
		if result.failed() {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}

	if result.failed() {
		return cli.Transient("%s", result.Error)
	}
	if params.KeepData {
		d.note("Environment %q stopped; its WSL distribution was kept.", name)
	} else {
		d.note("Environment %q destroyed.", name)
	}
	return nil
}

func (d *Dependencies) destroyAll(ctx context.Context, logger *slog.Logger, params *destroyParams) error {
	environments := d.Registry.ListEnvironments(ctx)
	if len(environments) == 0 {
		if done, err := params.EmitJSON(d.IO.Out, []destroyResult{}); done {
			return err
		}
		d.note("No eknova environments found.")
		return nil
	}

	d.note("Found %d environment(s):", len(environments))
	for _, env := range environments {
		d.note("  - %s (%s)", env.Name, env.Status.Label())
	}

	if proceed, err := d.confirmDestroy(params, fmt.Sprintf("Destroy all %d environments?", len(environments))); !proceed {
		return err
	}

	results := make([]destroyResult, 0, len(environments))
	failed := 0
	for _, env := range environments {
		if ctx.Err() != nil {
			results = append(results, destroyResult{Name: env.Name, Error: "not attempted: " + context.Cause(ctx).Error()})
			failed++
			continue
		}

		var result destroyResult
		_ = cli.Spin(ctx, d.IO.Err, fmt.Sprintf("Destroying %s...", env.Name), func(ctx context.Context) error {
			result = d.destroy(ctx, logger, env, params.KeepData)
			return nil
		})
		results = append(results, result)

		switch {
		case result.failed():
			failed++
			if !params.OutputJSON {
				d.note("  failed: %s", result.Error)
			}
		case !params.OutputJSON && params.KeepData:
			d.note("  %s stopped (distribution kept)", env.Name)
		case !params.OutputJSON:
			d.note("  %s destroyed", env.Name)
		}
	}

	if done, err := params.EmitJSON(d.IO.Out, results); done && err != nil {
		return err
	}

	succeeded := len(results) - failed
	logger.Info("batch destroy finished", "succeeded", succeeded, "failed", failed, "keep_data", params.KeepData)
	verb := "destroyed"
	if params.KeepData {
		verb = "stopped"
	}
	if failed > 0 {
		d.note("%d environment(s) %s, %d failed.", succeeded, verb, failed)
		return &cli.ExitError{Code: 1}
	}
	if !params.OutputJSON {
		d.note("All %d environments %s.", succeeded, verb)
	}
	return nil
}

// confirmDestroy asks question unless --force was given. It returns
// (false, nil) when the user declined and (false, err) when nobody
// could be asked.
func (d *Dependencies) confirmDestroy(params *destroyParams, question string) (bool, error) {
	if params.Force {
		return true, nil
	}
	if !cli.IsTerminal(d.IO.In) {
		return false, cli.Validation("refusing to destroy without confirmation: stdin is not a terminal (pass --force)")
	}
	if !cli.Confirm(d.IO, question) {
		d.note("Cancelled.")
		return false, nil
	}
	return true, nil
}

// destroy stops env and, unless keepData, unregisters it. A failed stop
// is not fatal: WSL refuses to terminate a distribution that is not
// running, and unregister terminates it anyway.
func (d *Dependencies) destroy(ctx context.Context, logger *slog.Logger, env environment.Environment, keepData bool) destroyResult {
	result := destroyResult{Name: env.Name}

	result.Stopped = d.Registry.StopEnvironment(ctx, env.Name)
	if !result.Stopped {
		logger.Debug("stop before destroy failed", "environment", env.Name, "status", env.Status.Label())
	}

	if keepData {
		if !result.Stopped && env.Status == environment.Running {
			result.Error = fmt.Sprintf("failed to stop environment %q", env.Name)
		}
		return result
	}

	result.Removed = d.Registry.RemoveEnvironment(ctx, env.Name)
	if !result.Removed {
		result.Error = fmt.Sprintf("failed to remove WSL distribution for %q", env.Name)
		return result
	}
	logger.Info("environment destroyed", "environment", env.Name)
	return result
}
