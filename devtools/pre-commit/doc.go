// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Pre-commit installs and runs a Git pre-commit hook.

On its first run in a non-CI environment, it creates the .git/hooks/pre-commit
script. This script calls 'go tool pre-commit' again, so the checks run on
every subsequent commit.

Checks are configured through a .devtools.txtar file in the repository root.
This file is a txtar archive that should contain a pre-commit.json file with a
JSON array of check objects, each with the following fields:

  - run: A string array where the first element is the command to run and the
    rest are its arguments (e.g., ["go", "test", "./..."]).
  - skip_in_ci: If true, the check is skipped when the CI environment variable
    is set to "true".
  - only_in_ci: If true, the check runs only when the CI environment variable
    is set to "true".

Checks run one after another, and the first failing check stops the run and
prints its output.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/licensecheck/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
