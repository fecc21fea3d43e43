// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "ekn",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "list",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					called = "list"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"list"}, discardLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "list" {
		t.Errorf("dispatched to %q, want %q", called, "list")
	}
}

func TestCommand_Execute_Alias(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "ekn",
		Subcommands: []*Command{
			{
				Name:    "destroy",
				Aliases: []string{"rm"},
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"rm", "dev"}, discardLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "dev" {
		t.Errorf("args = %v, want [dev]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	type params struct {
		JSONOutput
		Force bool   `flag:"force,f" desc:"skip confirmation"`
		Path  string `flag:"install-path" desc:"install directory" default:"/tmp/x"`
	}
	var bound params
	var receivedArgs []string

	command := &Command{
		Name:  "destroy",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("destroy", &bound) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"-f", "--json", "dev", "--install-path", "/data"}, discardLogger())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !bound.Force || !bound.OutputJSON {
		t.Errorf("Force = %v, OutputJSON = %v, want both true", bound.Force, bound.OutputJSON)
	}
	if bound.Path != "/data" {
		t.Errorf("Path = %q, want /data", bound.Path)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "dev" {
		t.Errorf("args = %v, want [dev]", receivedArgs)
	}
}

func TestCommand_Execute_DoubleDashStopsFlagParsing(t *testing.T) {
	var receivedArgs []string
	var verbose bool

	command := &Command{
		Name: "exec",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
			flagSet.BoolVar(&verbose, "verbose", false, "")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"dev", "--", "ls", "-la"}, discardLogger())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	want := []string{"dev", "ls", "-la"}
	if strings.Join(receivedArgs, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", receivedArgs, want)
	}
	if verbose {
		t.Error("flag after -- was parsed")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	type params struct {
		Force bool `flag:"force" desc:"skip confirmation"`
	}
	var bound params

	command := &Command{
		Name:  "destroy",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("destroy", &bound) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--forse"}, discardLogger())
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --force?") {
		t.Errorf("error = %q, want suggestion for --force", err)
	}
	if CategoryOf(err) != CategoryValidation {
		t.Errorf("category = %q, want validation", CategoryOf(err))
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "ekn",
		Subcommands: []*Command{
			{Name: "list", Run: func(ctx context.Context, args []string, logger *slog.Logger) error { return nil }},
			{Name: "destroy", Run: func(ctx context.Context, args []string, logger *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"lst"}, discardLogger())
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "list"?`) {
		t.Errorf("error = %q, want suggestion for list", err)
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "ekn",
		Subcommands: []*Command{
			{Name: "list", Run: func(ctx context.Context, args []string, logger *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"completely-different"}, discardLogger())
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, want no suggestion", err)
	}
}

func TestCommand_Execute_RunErrorPassesThrough(t *testing.T) {
	sentinel := &ExitError{Code: 7}
	command := &Command{
		Name: "exec",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return sentinel
		},
	}

	err := command.Execute(context.Background(), nil, discardLogger())
	var exitError *ExitError
	if !errors.As(err, &exitError) || exitError.ExitCode() != 7 {
		t.Errorf("Execute() error = %v, want ExitError code 7", err)
	}
}

func TestCommand_Execute_NoArgsRequiresSubcommand(t *testing.T) {
	root := &Command{
		Name: "ekn",
		Subcommands: []*Command{
			{Name: "list", Run: func(ctx context.Context, args []string, logger *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() error = %v, want subcommand required", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "ekn",
		Description: "Manage WSL development environments.",
		Subcommands: []*Command{
			{Name: "list", Aliases: []string{"ls"}, Summary: "List environments"},
			{Name: "destroy", Summary: "Remove environments"},
		},
		Examples: []Example{
			{Description: "Show running environments", Command: "ekn list --running"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Manage WSL development environments.",
		"Usage:\n  ekn <command> [flags]",
		"list",
		"List environments",
		"# Show running environments",
		"ekn list --running",
		"Run 'ekn <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlagsAndAliases(t *testing.T) {
	type params struct {
		All bool `flag:"all,a" desc:"include stopped environments"`
	}
	var bound params
	command := &Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Summary: "List environments",
		Flags:   func() *pflag.FlagSet { return FlagsFromParams("list", &bound) },
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	if !strings.Contains(output, "--all") || !strings.Contains(output, "include stopped environments") {
		t.Errorf("help output missing flag:\n%s", output)
	}
	if !strings.Contains(output, "list, ls") {
		t.Errorf("help output missing aliases:\n%s", output)
	}
}

func TestCommand_FullNameAndPath(t *testing.T) {
	root := &Command{Name: "ekn"}
	group := &Command{Name: "config", parent: root}
	leaf := &Command{Name: "show", parent: group}

	if got := leaf.fullName(); got != "ekn config show" {
		t.Errorf("fullName() = %q, want %q", got, "ekn config show")
	}
	if got := leaf.commandPath(); got != "config/show" {
		t.Errorf("commandPath() = %q, want %q", got, "config/show")
	}
	if got := root.commandPath(); got != "ekn" {
		t.Errorf("root commandPath() = %q, want %q", got, "ekn")
	}
}
