// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package wsl drives the Windows Subsystem for Linux command-line tool
// on behalf of eknova.
//
// [Registry] is the environment inventory: it lists, starts, stops,
// imports and removes the WSL distributions that carry the eknova
// prefix, and reports whether WSL is usable at all. It holds no state
// between calls; every query asks wsl.exe again, so the answer is
// always what WSL currently reports.
//
// All invocations go through a [process.Executor]. Expected failures
// (WSL missing, a distribution that does not exist, a command that
// exits non-zero) are reported as booleans, (value, ok) pairs or raw
// [process.Result] values rather than Go errors. The diagnostic of a
// failed operation is logged at warn level.
//
// [ParseListing] and [ParseLine] turn the whitespace-aligned table
// printed by "wsl --list --verbose" into [environment.Environment]
// values. They are pure functions with no I/O:
//
//	  NAME            STATE           VERSION
//	* eknova-web      Running         2
//	  Ubuntu-22.04    Stopped         2
package wsl
