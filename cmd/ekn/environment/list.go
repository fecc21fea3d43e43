// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/environment"
)

// createdLayout formats the CREATED column.
const createdLayout = "2006-01-02 15:04"

type listParams struct {
	cli.JSONOutput
	Running bool `json:"running" flag:"running" desc:"only show running environments"`
	All     bool `json:"all"     flag:"all,a"   desc:"include WSL distributions not managed by eknova"`
}

func listCommand(deps *Dependencies) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Summary: "List environments",
		Description: `List the eknova environments installed in WSL with their status.

Environments are WSL distributions whose name starts with "eknova-";
the prefix is not shown. Use --all to include every other
distribution as well.`,
		Usage: "ekn list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "List all eknova environments",
				Command:     "ekn list",
			},
			{
				Description: "Show only running environments as JSON",
				Command:     "ekn list --running --json",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if err := requireWSL(ctx, deps.Registry); err != nil {
				return err
			}

			var environments []environment.Environment
			if params.All {
				environments = deps.Registry.ListDistributions(ctx)
			} else {
				environments = deps.Registry.ListEnvironments(ctx)
			}
			if params.Running {
				environments = filterStatus(environments, environment.Running)
			}
			logger.Debug("listed environments", "count", len(environments), "all", params.All, "running", params.Running)

			if done, err := params.EmitJSON(deps.IO.Out, environments); done {
				return err
			}

			if len(environments) == 0 {
				deps.printEmptyList(params.Running)
				return nil
			}

			styles := cli.NewStyles(deps.IO.Out)
			table := cli.NewTable(styles, "NAME", "STATUS", "BLUEPRINT", "CREATED", "VERSION")
			for _, env := range environments {
				table.AddRow(
					displayName(env),
					styles.Status(env.Status),
					orUnknown(styles, env.Blueprint),
					orUnknown(styles, formatCreated(env.Created)),
					env.Version,
				)
			}
			if err := table.Render(deps.IO.Out); err != nil {
				return cli.Internal("writing table: %w", err)
			}

			deps.note("")
			deps.note("Use 'ekn start <name>' to start a stopped environment.")
			deps.note("Use 'ekn destroy <name>' to remove an environment.")
			return nil
		},
	}
}

func (d *Dependencies) printEmptyList(runningOnly bool) {
	if runningOnly {
		d.note("No running environments.")
		return
	}
	d.note("No eknova environments found.")
	d.note("")
	d.note("Import a root filesystem with: ekn import <name> <archive>")
	d.note("Or provision from a blueprint: ekn up @owner/blueprint")
}

func filterStatus(environments []environment.Environment, status environment.Status) []environment.Environment {
	filtered := make([]environment.Environment, 0, len(environments))
	for _, env := range environments {
		if env.Status == status {
			filtered = append(filtered, env)
		}
	}
	return filtered
}

// displayName is the environment name, with the distribution name in
// parentheses for distributions eknova does not manage and a "*" for
// the WSL default.
func displayName(env environment.Environment) string {
	name := env.Name
	if !env.Managed() {
		name = fmt.Sprintf("%s (unmanaged)", env.DistributionName)
	}
	if env.Default {
		name += " *"
	}
	return name
}

func formatCreated(created *time.Time) string {
	if created == nil {
		return ""
	}
	return created.Local().Format(createdLayout)
}

func orUnknown(styles *cli.Styles, value string) string {
	if value == "" {
		return styles.Dim("Unknown")
	}
	return value
}
