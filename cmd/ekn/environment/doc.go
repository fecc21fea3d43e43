// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package environment implements the ekn subcommands that manage
// environments: list, info, start, stop, destroy, import, up and exec.
//
// Every command talks to WSL through the [Registry] interface held in
// [Dependencies], which *wsl.Registry satisfies in production and a
// scripted fake satisfies in tests. Commands write results to
// Dependencies.IO.Out and progress, hints and prompts to
// Dependencies.IO.Err, so --json output on stdout stays parseable.
package environment
