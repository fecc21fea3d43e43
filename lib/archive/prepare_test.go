// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/dealer426/eknova/lib/testutil"
)

// rootfsTar returns a small tar archive shaped like a root filesystem.
func rootfsTar(t *testing.T) []byte {
	return testutil.TarArchive(t, map[string]string{
		"etc/os-release": "ID=eknova\n",
		"etc/hostname":   "web\n",
	})
}

func compressZstd(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	encoder, err := zstd.NewWriter(&buffer)
	if err != nil {
		t.Fatalf("creating zstd writer: %v", err)
	}
	if _, err := encoder.Write(data); err != nil {
		t.Fatalf("zstd write: %v", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("zstd close: %v", err)
	}
	return buffer.Bytes()
}

func compressLZ4(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}
	return buffer.Bytes()
}

func compressGzip(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := gzip.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buffer.Bytes()
}

func encryptAge(t *testing.T, data []byte, recipient age.Recipient, armored bool) []byte {
	t.Helper()
	var buffer bytes.Buffer
	var destination io.Writer = &buffer
	var armorWriter io.WriteCloser
	if armored {
		armorWriter = armor.NewWriter(&buffer)
		destination = armorWriter
	}
	writer, err := age.Encrypt(destination, recipient)
	if err != nil {
		t.Fatalf("age encrypt: %v", err)
	}
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("age write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("age close: %v", err)
	}
	if armorWriter != nil {
		if err := armorWriter.Close(); err != nil {
			t.Fatalf("armor close: %v", err)
		}
	}
	return buffer.Bytes()
}

func digestOf(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestPrepareFormats(t *testing.T) {
	t.Parallel()

	plain := rootfsTar(t)
	gzipped := compressGzip(t, plain)
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("generating identity: %v", err)
	}

	tests := []struct {
		name          string
		source        []byte
		format        Format
		inner         Format
		converted     bool
		wantContent   []byte
		wantExtension string
	}{
		{"tar", plain, FormatTar, FormatTar, false, plain, ""},
		{"gzip", gzipped, FormatGzip, FormatGzip, false, gzipped, ""},
		{"zstd", compressZstd(t, plain), FormatZstd, FormatZstd, true, plain, ".tar"},
		{"lz4", compressLZ4(t, plain), FormatLZ4, FormatLZ4, true, plain, ".tar"},
		{"age tar", encryptAge(t, plain, identity.Recipient(), false), FormatAge, FormatTar, true, plain, ".tar"},
		{"age gzip", encryptAge(t, gzipped, identity.Recipient(), false), FormatAge, FormatGzip, true, gzipped, ".tar.gz"},
		{"age zstd", encryptAge(t, compressZstd(t, plain), identity.Recipient(), false), FormatAge, FormatZstd, true, plain, ".tar"},
		{"armored age lz4", encryptAge(t, compressLZ4(t, plain), identity.Recipient(), true), FormatAgeArmored, FormatLZ4, true, plain, ".tar"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			source := testutil.WriteFile(t, "image", test.source)
			prepared, err := Prepare(t.Context(), source, PrepareOptions{
				Identities: []age.Identity{identity},
				TempDir:    t.TempDir(),
			})
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			defer prepared.Cleanup()

			if prepared.Format != test.format || prepared.Inner != test.inner {
				t.Errorf("formats = %v/%v, want %v/%v", prepared.Format, prepared.Inner, test.format, test.inner)
			}
			if prepared.Converted() != test.converted {
				t.Errorf("Converted() = %v, want %v", prepared.Converted(), test.converted)
			}
			if !test.converted && prepared.Path != source {
				t.Errorf("Path = %q, want the source path", prepared.Path)
			}
			if test.converted && !strings.HasSuffix(prepared.Path, test.wantExtension) {
				t.Errorf("Path = %q, want extension %q", prepared.Path, test.wantExtension)
			}
			if prepared.Digest != digestOf(test.source) {
				t.Errorf("Digest = %s, want the digest of the source file", prepared.Digest)
			}

			content, err := os.ReadFile(prepared.Path)
			if err != nil {
				t.Fatalf("reading prepared archive: %v", err)
			}
			if !bytes.Equal(content, test.wantContent) {
				t.Errorf("prepared archive differs from the expected content (%d vs %d bytes)",
					len(content), len(test.wantContent))
			}
		})
	}
}

func TestPrepareCleanup(t *testing.T) {
	t.Parallel()

	source := testutil.WriteFile(t, "image.tar.zst", compressZstd(t, rootfsTar(t)))
	prepared, err := Prepare(t.Context(), source, PrepareOptions{TempDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := prepared.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(prepared.Path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary archive still exists after Cleanup (stat: %v)", err)
	}
	if err := prepared.Cleanup(); err != nil {
		t.Errorf("second Cleanup: %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("Cleanup touched the source file: %v", err)
	}
}

func TestPrepareDigest(t *testing.T) {
	t.Parallel()

	plain := rootfsTar(t)
	source := testutil.WriteFile(t, "image.tar", plain)

	for _, expected := range []string{digestOf(plain), "blake3:" + digestOf(plain), strings.ToUpper(digestOf(plain))} {
		if _, err := Prepare(t.Context(), source, PrepareOptions{ExpectedDigest: expected}); err != nil {
			t.Errorf("Prepare with digest %q: %v", expected, err)
		}
	}

	_, err := Prepare(t.Context(), source, PrepareOptions{ExpectedDigest: digestOf([]byte("other"))})
	if !errors.Is(err, ErrDigestMismatch) {
		t.Errorf("Prepare with a wrong digest = %v, want ErrDigestMismatch", err)
	}
}

func TestPrepareErrors(t *testing.T) {
	t.Parallel()

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("generating identity: %v", err)
	}
	other, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("generating identity: %v", err)
	}
	encrypted := encryptAge(t, rootfsTar(t), identity.Recipient(), false)

	tests := []struct {
		name       string
		source     []byte
		identities []age.Identity
		want       error
	}{
		{"empty", nil, nil, ErrUnsupportedFormat},
		{"garbage", []byte("this is not an archive"), nil, ErrUnsupportedFormat},
		{"encrypted without identity", encrypted, nil, ErrIdentityRequired},
		{"encrypted garbage", encryptAge(t, []byte("plain text"), identity.Recipient(), false),
			[]age.Identity{identity}, ErrUnsupportedFormat},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			source := testutil.WriteFile(t, "image", test.source)
			_, err := Prepare(t.Context(), source, PrepareOptions{Identities: test.identities, TempDir: t.TempDir()})
			if !errors.Is(err, test.want) {
				t.Errorf("Prepare = %v, want %v", err, test.want)
			}
		})
	}

	t.Run("wrong identity", func(t *testing.T) {
		t.Parallel()
		source := testutil.WriteFile(t, "image.age", encrypted)
		_, err := Prepare(t.Context(), source, PrepareOptions{Identities: []age.Identity{other}})
		var noMatch *age.NoIdentityMatchError
		if !errors.As(err, &noMatch) {
			t.Errorf("Prepare = %v, want an age no-identity-match error", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Prepare(t.Context(), filepath.Join(t.TempDir(), "absent.tar"), PrepareOptions{})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Prepare = %v, want a not-exist error", err)
		}
	})
}

func TestPrepareCancelled(t *testing.T) {
	t.Parallel()

	source := testutil.WriteFile(t, "image.tar", rootfsTar(t))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := Prepare(ctx, source, PrepareOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Prepare with a cancelled context = %v, want context.Canceled", err)
	}
}

func TestLoadIdentities(t *testing.T) {
	t.Parallel()

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("generating identity: %v", err)
	}
	path := testutil.WriteFile(t, "key.txt", []byte("# created for the import test\n"+identity.String()+"\n"))

	identities, err := LoadIdentities(path)
	if err != nil {
		t.Fatalf("LoadIdentities: %v", err)
	}
	if len(identities) != 1 {
		t.Fatalf("LoadIdentities returned %d identities, want 1", len(identities))
	}

	if _, err := LoadIdentities(testutil.WriteFile(t, "bad.txt", []byte("not a key\n"))); err == nil {
		t.Error("LoadIdentities accepted a file without keys")
	}
}

func TestFormatString(t *testing.T) {
	t.Parallel()

	for format, want := range map[Format]string{
		FormatTar: "tar", FormatGzip: "gzip", FormatZstd: "zstd", FormatLZ4: "lz4",
		FormatAge: "age", FormatAgeArmored: "age-armor", FormatUnknown: "unknown(0)",
	} {
		if got := format.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", format, got, want)
		}
	}
}
