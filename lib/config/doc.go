// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for eknova.
//
// Configuration comes from a single file named by the EKNOVA_CONFIG
// environment variable (via [Load]) or passed explicitly (via
// [LoadFile]). There is no directory search. When EKNOVA_CONFIG is
// unset, [Load] returns the built-in defaults, so the CLI works with
// no file at all.
//
// Files ending in .json or .jsonc are read as JSON with comments;
// everything else is read as YAML.
//
// ${VAR} and ${VAR:-default} patterns are expanded in path fields after
// loading, innermost first, so ${LOCALAPPDATA:-${HOME}} works. The
// only environment variable that overrides a loaded value is
// EKNOVA_LOG_LEVEL.
//
// Durations are strings in time.ParseDuration syntax ("30s", "10m").
// [Config.Validate] rejects malformed or non-positive durations and
// [Config.Timeouts] returns them parsed.
package config
