// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Ekn is the eknova CLI. It manages development environments backed by
// WSL distributions: listing, starting, stopping, importing from root
// filesystem archives, destroying, and running commands inside them.
package main
