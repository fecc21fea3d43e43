// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the ekn CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/ekn/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// alias resolution, subcommand routing, and structured help output with
// examples.
//
// Parameters are declared as tagged struct fields and bound to flags by
// [FlagsFromParams]. Embedding [JSONOutput] adds the --json flag.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Errors returned from Run are either categorized [ToolError] values
// (Validation, NotFound, Conflict, Transient, Internal), printed as
// "error: ..." by main, or an [ExitError] for commands that already
// reported their outcome and only need a non-zero exit status.
//
// Terminal presentation helpers live here too: [Confirm] for yes/no
// prompts, [Spin] for a progress spinner, and [Table] for aligned,
// optionally colored tables.
package cli
