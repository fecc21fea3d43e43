// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Format identifies the encoding of an archive's bytes.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatTar
	FormatGzip
	FormatZstd
	FormatLZ4
	FormatAge
	FormatAgeArmored
)

// String returns the short name of the format.
func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatAge:
		return "age"
	case FormatAgeArmored:
		return "age-armor"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// Encrypted reports whether the format needs an identity to read.
func (f Format) Encrypted() bool {
	return f == FormatAge || f == FormatAgeArmored
}

// Leading bytes of each format. The tar magic sits at a fixed offset
// inside the first header block.
var (
	ageMagic        = []byte("age-encryption.org/v1")
	ageArmorMagic   = []byte("-----BEGIN AGE ENCRYPTED FILE-----")
	gzipMagic       = []byte{0x1f, 0x8b}
	zstdMagic       = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4FrameMagic   = []byte{0x04, 0x22, 0x4d, 0x18}
	tarMagic        = []byte("ustar")
	tarMagicOffset  = 257
	detectionLength = tarMagicOffset + len(tarMagic)
)

// ErrUnsupportedFormat is returned for input that matches none of the
// known formats.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// detect peeks at the start of reader and identifies the format. The
// peeked bytes stay in the reader.
func detect(reader *bufio.Reader) (Format, error) {
	head, err := reader.Peek(detectionLength)
	if err != nil && !errors.Is(err, io.EOF) {
		return FormatUnknown, err
	}
	if len(head) == 0 {
		return FormatUnknown, fmt.Errorf("%w: archive is empty", ErrUnsupportedFormat)
	}
	return detectBytes(head), nil
}

func detectBytes(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, ageMagic):
		return FormatAge
	case bytes.HasPrefix(head, ageArmorMagic):
		return FormatAgeArmored
	case bytes.HasPrefix(head, zstdMagic):
		return FormatZstd
	case bytes.HasPrefix(head, lz4FrameMagic):
		return FormatLZ4
	case bytes.HasPrefix(head, gzipMagic):
		return FormatGzip
	case len(head) >= detectionLength && bytes.Equal(head[tarMagicOffset:detectionLength], tarMagic):
		return FormatTar
	default:
		return FormatUnknown
	}
}
