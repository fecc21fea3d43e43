// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package process runs external programs and reports how they ended.
//
// [Runner.Execute] is the single primitive the rest of eknova uses to
// talk to wsl.exe. It never returns a Go error: every outcome (clean
// exit, non-zero exit, launch failure, timeout, cancellation) becomes a
// [Result] value the caller inspects. Standard output and standard
// error share one pipe so callers see a single ordered line sequence,
// and the pipe is read while the child runs so a chatty program cannot
// fill the pipe buffer and stall.
//
// wsl.exe writes its own listings as UTF-16LE. The reader sniffs the
// first bytes of output and decodes UTF-16LE when it sees a byte order
// mark or NUL-interleaved ASCII, and UTF-8 otherwise.
//
// On a timeout the whole process group is killed, so helpers spawned by
// the command do not outlive it. Timers come from an injected
// [clock.Clock] so tests can trigger a timeout without waiting for it.
//
// The package also keeps [Fatal], the entrypoint error handler used by
// main() before the structured logger exists.
package process
