// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether stream is an *os.File attached to a
// terminal. Buffers and pipes are never terminals.
func IsTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// IO bundles the standard streams a command reads and writes. Commands
// take it instead of touching os.Stdin/os.Stdout so tests can capture
// output.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StandardIO returns the process's standard streams.
func StandardIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}
