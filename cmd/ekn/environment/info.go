// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/wsl"
)

type infoParams struct {
	cli.JSONOutput
}

func infoCommand(deps *Dependencies) *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Show WSL installation details",
		Description: `Probe the local WSL installation and print its version details and
the number of installed distributions. Reports an unavailable WSL
instead of failing.`,
		Usage: "ekn info [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			info := deps.Registry.Info(ctx)
			if done, err := params.EmitJSON(deps.IO.Out, info); done {
				return err
			}
			return WriteInfo(deps.IO.Out, info)
		},
	}
}

// WriteInfo prints info as aligned "label: value" lines. Empty fields
// are omitted.
func WriteInfo(w io.Writer, info wsl.Info) error {
	available := "no"
	if info.Available {
		available = "yes"
	}

	lines := [][2]string{
		{"WSL available", available},
		{"WSL version", info.Version},
		{"Kernel version", info.KernelVersion},
		{"WSLg version", info.WSLgVersion},
		{"Windows version", info.WindowsVersion},
	}
	if info.Available {
		lines = append(lines, [2]string{"Distributions", fmt.Sprint(info.DistributionCount)})
	}

	for _, line := range lines {
		if line[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-16s %s\n", line[0]+":", line[1]); err != nil {
			return err
		}
	}
	return nil
}
