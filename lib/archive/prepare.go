// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
)

var (
	// ErrDigestMismatch is returned when the source file's BLAKE3
	// digest differs from PrepareOptions.ExpectedDigest.
	ErrDigestMismatch = errors.New("archive digest mismatch")

	// ErrIdentityRequired is returned for an encrypted archive when
	// no identities were supplied.
	ErrIdentityRequired = errors.New("archive is encrypted and no identity was given")
)

// PrepareOptions controls Prepare.
type PrepareOptions struct {
	// Identities decrypt age-encrypted archives.
	Identities []age.Identity

	// ExpectedDigest, when set, is the hex BLAKE3 digest the source
	// file must have. A "blake3:" prefix is accepted.
	ExpectedDigest string

	// TempDir receives decompressed archives. Empty means the system
	// temporary directory.
	TempDir string
}

// Prepared is an archive ready for "wsl --import".
type Prepared struct {
	// Path is the tar (or gzip tar) to import. It is the source path
	// itself when no conversion was needed.
	Path string

	// Format is the format of the source file. Inner is the format
	// found after decryption, equal to Format for unencrypted input.
	Format Format
	Inner  Format

	// Digest is the hex BLAKE3 digest of the source file.
	Digest string

	cleanupOnce sync.Once
	temporary   string
}

// Converted reports whether Path is a temporary file rather than the
// source.
func (p *Prepared) Converted() bool { return p.temporary != "" }

// Cleanup removes the temporary file, if any. Safe to call more than
// once.
func (p *Prepared) Cleanup() error {
	var err error
	p.cleanupOnce.Do(func() {
		if p.temporary == "" {
			return
		}
		if removeErr := os.Remove(p.temporary); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = fmt.Errorf("removing prepared archive: %w", removeErr)
		}
	})
	return err
}

// Prepare verifies the archive at source and converts it into a form
// wsl.exe can import. The caller must call Cleanup on the result.
func Prepare(ctx context.Context, source string, options PrepareOptions) (*Prepared, error) {
	digest, err := fileDigest(ctx, source)
	if err != nil {
		return nil, err
	}
	if options.ExpectedDigest != "" {
		expected := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(options.ExpectedDigest), "blake3:"))
		if expected != digest {
			return nil, fmt.Errorf("%w: %s has %s, expected %s", ErrDigestMismatch, source, digest, expected)
		}
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(&contextReader{ctx: ctx, reader: file}, 64*1024)
	format, err := detect(reader)
	if err != nil {
		return nil, err
	}

	prepared := &Prepared{Path: source, Format: format, Inner: format, Digest: digest}

	var stream io.Reader = reader
	if format.Encrypted() {
		if len(options.Identities) == 0 {
			return nil, ErrIdentityRequired
		}
		var encrypted io.Reader = reader
		if format == FormatAgeArmored {
			encrypted = armor.NewReader(reader)
		}
		decrypted, err := age.Decrypt(encrypted, options.Identities...)
		if err != nil {
			return nil, fmt.Errorf("decrypting archive: %w", err)
		}
		inner := bufio.NewReaderSize(decrypted, 64*1024)
		prepared.Inner, err = detect(inner)
		if err != nil {
			return nil, fmt.Errorf("reading decrypted archive: %w", err)
		}
		stream = inner
	}

	var extension string
	switch prepared.Inner {
	case FormatTar, FormatGzip:
		if !format.Encrypted() {
			return prepared, nil
		}
		extension = ".tar"
		if prepared.Inner == FormatGzip {
			extension = ".tar.gz"
		}
	case FormatZstd:
		decoder, err := zstd.NewReader(stream)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer decoder.Close()
		stream = decoder
		extension = ".tar"
	case FormatLZ4:
		stream = lz4.NewReader(stream)
		extension = ".tar"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, source)
	}

	temporary, err := writeTemporary(stream, options.TempDir, extension)
	if err != nil {
		return nil, err
	}
	prepared.Path = temporary
	prepared.temporary = temporary
	return prepared, nil
}

// fileDigest returns the hex BLAKE3 digest of the file at path.
func fileDigest(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, &contextReader{ctx: ctx, reader: file}); err != nil {
		return "", fmt.Errorf("hashing archive: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// writeTemporary copies stream into a new temporary file and returns
// its path. The file is removed again if the copy fails.
func writeTemporary(stream io.Reader, directory, extension string) (string, error) {
	output, err := os.CreateTemp(directory, "eknova-import-*"+extension)
	if err != nil {
		return "", fmt.Errorf("creating temporary archive: %w", err)
	}
	path := output.Name()

	if _, err := io.Copy(output, stream); err != nil {
		output.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing temporary archive: %w", err)
	}
	if err := output.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing temporary archive: %w", err)
	}
	return path, nil
}

// contextReader fails reads once ctx is done, so a long copy stops
// promptly on cancellation.
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (r *contextReader) Read(buffer []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.reader.Read(buffer)
}
