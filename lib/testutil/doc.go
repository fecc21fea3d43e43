// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for eknova packages.
//
// [RequireReceive], [RequireClosed] and [RequireEventually] encapsulate the timeout
// safety valve pattern so that individual tests do not need direct
// time.After calls or hand-written polling loops. They are the only
// place in the test suite where real wall-clock timeouts are used;
// timer behavior under test goes through lib/clock's fake instead.
//
// [WriteFile] and [TarArchive] build fixture files: archives for the
// import path, config files for the loader.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no eknova-internal dependencies.
package testutil
