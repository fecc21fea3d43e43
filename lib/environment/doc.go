// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package environment defines the eknova environment model: the
// identity of a managed environment, the WSL distribution that backs
// it, and its lifecycle status.
//
// An environment named "web" is backed by the WSL distribution
// "eknova-web". The prefix is how eknova tells its own distributions
// apart from the ones the user installed by hand; nothing else about
// an environment is persisted outside WSL.
package environment
