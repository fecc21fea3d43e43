// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/blueprint"
	"github.com/dealer426/eknova/lib/environment"
)

type upParams struct {
	Name    string `json:"name"     flag:"name,n"   desc:"environment name (default: derived from the blueprint)"`
	Force   bool   `json:"force"    flag:"force"    desc:"re-provision an existing environment"`
	NoStart bool   `json:"no_start" flag:"no-start" desc:"do not start the environment"`
}

func upCommand(deps *Dependencies) *cli.Command {
	var params upParams

	return &cli.Command{
		Name:    "up",
		Summary: "Bring up an environment from a blueprint",
		Description: `Bring up the environment described by a blueprint.

A blueprint is referenced as @owner/name (marketplace), an http(s)
URL, or a local file. The environment name defaults to the blueprint's
name and can be set with --name.

If the environment already exists it is started. Provisioning a new
environment from a blueprint is not available yet; use 'ekn import'
with a root filesystem archive instead.`,
		Usage: "ekn up <blueprint> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("up", &params)
		},
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Start the environment for a marketplace blueprint",
				Command:     "ekn up @eknova/python-dev",
			},
			{
				Description: "Use a local blueprint under a different name",
				Command:     "ekn up ./blueprints/go.yaml --name go-work",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			raw, err := singleBlueprint(args)
			if err != nil {
				return err
			}

			reference, err := blueprint.ParseReference(raw)
			if err != nil {
				return cli.Validation("%v", err)
			}

			name := params.Name
			if name == "" {
				name = reference.DefaultEnvironmentName()
				if name == "" {
					return cli.Validation("cannot derive an environment name from %q; pass --name", raw)
				}
			}
			if err := environment.ValidateName(name); err != nil {
				return cli.Validation("%v", err)
			}
			logger = logger.With("blueprint", reference.Raw, "kind", reference.Kind.String(), "environment", name)

			if err := requireWSL(ctx, deps.Registry); err != nil {
				return err
			}

			if env, found := deps.Registry.FindEnvironment(ctx, name); found {
				if params.Force {
					return cli.Validation("environment %q exists and re-provisioning is not supported\n\nDestroy it first with 'ekn destroy %s'.", name, name)
				}
				switch {
				case params.NoStart:
					deps.note("Environment %q already exists (%s).", name, env.Status.Label())
					return nil
				case env.Status == environment.Running:
					deps.note("Environment %q is already running.", name)
					return nil
				default:
					return deps.start(ctx, logger, name)
				}
			}

			plan, err := deps.Resolver.Resolve(ctx, reference)
			if err != nil {
				if errors.Is(err, blueprint.ErrNotImplemented) {
					return cli.Internal("%v\n\nCreate the environment from a root filesystem with 'ekn import %s <archive>'.", err, name)
				}
				return cli.Transient("resolving blueprint: %w", err)
			}

			logger.Info("blueprint resolved", "base_image", plan.BaseImage, "steps", len(plan.Steps))
			deps.note("Blueprint %s resolves to base image %s with %d step(s):", reference.Raw, plan.BaseImage, len(plan.Steps))
			for _, step := range plan.Steps {
				deps.note("  %s", step)
			}
			return cli.Internal("provisioning environment %q from a blueprint plan is not implemented", name)
		},
	}
}

func singleBlueprint(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", cli.Validation("blueprint reference required\n\nUsage: ekn up <blueprint> [flags]")
	case 1:
		if strings.TrimSpace(args[0]) == "" {
			return "", cli.Validation("blueprint reference is empty")
		}
		return args[0], nil
	default:
		return "", cli.Validation("unexpected argument: %s", args[1])
	}
}
