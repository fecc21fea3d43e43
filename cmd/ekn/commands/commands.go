// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete ekn command tree from the
// dependencies main wires up.
package commands

import (
	"github.com/dealer426/eknova/cmd/ekn/cli"
	environmentcmd "github.com/dealer426/eknova/cmd/ekn/environment"
)

// Root builds and returns the complete ekn command tree.
func Root(deps *environmentcmd.Dependencies) *cli.Command {
	subcommands := environmentcmd.Commands(deps)
	subcommands = append(subcommands, versionCommand(deps))

	return &cli.Command{
		Name: "ekn",
		Description: `ekn: development environments on WSL.

Each environment is a WSL distribution named "eknova-<name>". ekn
lists, starts, stops, imports and destroys them, and runs commands
inside them.

Configuration is read from the YAML file named by EKNOVA_CONFIG when
set; the log level can be overridden with EKNOVA_LOG_LEVEL.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "List environments",
				Command:     "ekn list",
			},
			{
				Description: "Create an environment from a root filesystem archive",
				Command:     "ekn import dev ./ubuntu-rootfs.tar.gz",
			},
			{
				Description: "Run a command inside it",
				Command:     "ekn exec dev -- uname -a",
			},
			{
				Description: "Check the WSL installation",
				Command:     "ekn info",
			},
		},
	}
}
