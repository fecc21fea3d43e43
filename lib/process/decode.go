// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodingReader wraps r so that UTF-16LE output is transcoded to
// UTF-8. Detection looks at the first two bytes only: a little-endian
// byte order mark, or an ASCII byte followed by NUL (how wsl.exe
// writes plain text). Anything else is passed through as UTF-8.
func decodingReader(r io.Reader) io.Reader {
	buffered := bufio.NewReader(r)
	head, _ := buffered.Peek(2)
	if len(head) < 2 {
		return buffered
	}

	switch {
	case head[0] == 0xFF && head[1] == 0xFE:
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		return transform.NewReader(buffered, decoder)
	case head[0] != 0 && head[0] < 0x80 && head[1] == 0:
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		return transform.NewReader(buffered, decoder)
	default:
		return buffered
	}
}

// capture is the outcome of reading a process's output stream.
type capture struct {
	lines     []string
	truncated bool
}

// readLines reads r to EOF (or to a read error, which is how a closed
// pipe surfaces) and splits it into lines. At most maxLines lines are
// kept; the rest are read and dropped so the writer never blocks.
// onLine, when non-nil, is called for every line in order, including
// lines past the cap.
func readLines(r io.Reader, maxLines int, onLine func(string)) capture {
	reader := bufio.NewReader(decodingReader(r))
	var result capture
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if onLine != nil {
				onLine(line)
			}
			if len(result.lines) < maxLines {
				result.lines = append(result.lines, line)
			} else {
				result.truncated = true
			}
		}
		if err != nil {
			return result
		}
	}
}
