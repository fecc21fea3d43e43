// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	environmentcmd "github.com/dealer426/eknova/cmd/ekn/environment"
	"github.com/dealer426/eknova/lib/version"
	"github.com/dealer426/eknova/lib/wsl"
)

type versionParams struct {
	cli.JSONOutput
	Full bool `json:"full" flag:"full" desc:"include Go, platform and WSL details"`
}

// versionOutput is the --json shape.
type versionOutput struct {
	version.Build
	WSL *wsl.Info `json:"wsl,omitempty"`
}

func versionCommand(deps *environmentcmd.Dependencies) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "ekn version [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			output := versionOutput{Build: version.Current()}
			if params.Full {
				info := deps.Registry.Info(ctx)
				output.WSL = &info
			}
			if done, err := params.EmitJSON(deps.IO.Out, output); done {
				return err
			}

			if !params.Full {
				fmt.Fprintf(deps.IO.Out, "ekn %s\n", version.Info())
				return nil
			}
			fmt.Fprintf(deps.IO.Out, "ekn %s\n\n", version.Full())
			return environmentcmd.WriteInfo(deps.IO.Out, *output.WSL)
		},
	}
}
