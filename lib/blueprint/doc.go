// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package blueprint parses references to environment blueprints and
// defines the resolver boundary that turns a reference into a
// provisioning plan.
//
// A reference takes one of three shapes:
//
//	@owner/name                    a marketplace blueprint
//	https://example.com/node.yaml  a blueprint fetched over HTTP(S)
//	./blueprints/node.yaml         a local file
//
// Fetching and interpreting blueprints is not implemented yet; the
// [Unimplemented] resolver reports [ErrNotImplemented] for every
// reference so callers can handle it in one place.
package blueprint
