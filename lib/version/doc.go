// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the ekn
// binary.
//
// Three package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// When GitCommit is not injected, the VCS revision recorded by the Go
// toolchain is used if the binary carries one.
//
// Formatting functions produce human-readable version strings:
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for ekn version
//   - [Full] -- Info plus Go version and GOOS/GOARCH
//   - [Current] -- the same data as a [Build] value for --json output
package version
