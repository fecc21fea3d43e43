// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/cmd/ekn/commands"
	environmentcmd "github.com/dealer426/eknova/cmd/ekn/environment"
	"github.com/dealer426/eknova/lib/blueprint"
	"github.com/dealer426/eknova/lib/config"
	"github.com/dealer426/eknova/lib/process"
	"github.com/dealer426/eknova/lib/wsl"
)

func main() {
	if err := run(); err != nil {
		// Commands that already reported their outcome (batch destroy,
		// exec) return an error carrying the exit code. Don't print a
		// redundant "error:" line for those.
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configuration, err := config.Load()
	if err != nil {
		return err
	}
	if err := configuration.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	timeouts, err := configuration.Timeouts()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, err := cli.ParseLevel(configuration.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cli.NewCommandLogger(level)

	runner := process.NewRunner(process.Options{
		Logger:         logger.With("component", "process"),
		DefaultTimeout: timeouts.Call,
		ProbeTimeout:   timeouts.Probe,
		MaxOutputLines: configuration.WSL.MaxOutputLines,
	})
	registry := wsl.NewRegistry(runner, wsl.RegistryOptions{
		Binary:        configuration.WSL.Binary,
		Timeout:       timeouts.Call,
		ImportTimeout: timeouts.Import,
		ExecTimeout:   timeouts.Exec,
		Logger:        logger.With("component", "wsl"),
	})

	deps := &environmentcmd.Dependencies{
		Registry: registry,
		Config:   configuration,
		Resolver: blueprint.Unimplemented{},
		IO:       cli.StandardIO(),
	}
	return commands.Root(deps).Execute(ctx, os.Args[1:], logger)
}
