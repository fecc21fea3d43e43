// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive prepares root filesystem archives for "wsl --import".
//
// wsl.exe accepts a plain tar or a gzip-compressed tar. Environment
// images are often distributed in other shapes: zstd or LZ4 frames for
// faster decompression, and age encryption for private images.
// [Prepare] detects the shape from the file's leading bytes (never from
// its extension), decrypts and decompresses as needed into a temporary
// tar, and hands back a path wsl.exe can read.
//
// Every prepared archive carries the BLAKE3 digest of the source file
// as given, so a published checksum can be verified before anything is
// imported.
package archive
