// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package internal contains helpers shared by development tools.
package internal

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotRoot is returned by EnsureRoot when the working directory is not the
// root of a Git repository.
var ErrNotRoot = errors.New("must be run from the root of a Git repository")

// EnsureRoot checks that the current directory is the root of a Git
// repository.
func EnsureRoot() error {
	if _, err := os.Stat(".git"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotRoot
		}
		return fmt.Errorf("checking for .git: %w", err)
	}
	return nil
}
