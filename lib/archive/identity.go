// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"fmt"
	"os"

	"filippo.io/age"
)

// LoadIdentities reads age identities (AGE-SECRET-KEY-1... lines, with
// '#' comments allowed) from the file at path.
func LoadIdentities(path string) ([]age.Identity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening identity file: %w", err)
	}
	defer file.Close()

	identities, err := age.ParseIdentities(file)
	if err != nil {
		return nil, fmt.Errorf("parsing identity file %s: %w", path, err)
	}
	return identities, nil
}
