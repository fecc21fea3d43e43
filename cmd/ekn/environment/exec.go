// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dealer426/eknova/cmd/ekn/cli"
)

func execCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:    "exec",
		Summary: "Run a command inside an environment",
		Description: `Run a shell command inside an environment, streaming its combined
output, and exit with the command's exit code. Everything after the
environment name is joined into one "sh -c" command line; put it
after "--" so its flags are not read as ekn flags.

A stopped environment is started by WSL on first use.`,
		Usage: "ekn exec <name> -- <command...>",
		// No flags of its own; parsing still consumes the "--".
		Flags: func() *pflag.FlagSet {
			return pflag.NewFlagSet("exec", pflag.ContinueOnError)
		},
		Examples: []cli.Example{
			{
				Description: "Show the kernel of the dev environment",
				Command:     "ekn exec dev -- uname -a",
			},
			{
				Description: "Use shell syntax",
				Command:     `ekn exec dev -- 'cd /srv && ls -la | head'`,
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 2 {
				return cli.Validation("expected an environment name and a command\n\nUsage: ekn exec <name> -- <command...>")
			}
			name, command := args[0], strings.Join(args[1:], " ")

			if err := requireWSL(ctx, deps.Registry); err != nil {
				return err
			}
			if _, err := requireEnvironment(ctx, deps.Registry, name); err != nil {
				return err
			}

			logger.Debug("running command", "environment", name, "shell_command", command)
			result := deps.Registry.ExecStreaming(ctx, name, command, func(line string) {
				fmt.Fprintln(deps.IO.Out, line)
			})
			if result.Truncated {
				logger.Warn("command output exceeded the line limit; the rest was dropped", "environment", name)
			}
			if result.Success {
				return nil
			}
			if result.ExitCode > 0 {
				return &cli.ExitError{Code: result.ExitCode}
			}
			return cli.Transient("running command in %q: %s", name, result.Error)
		},
	}
}
