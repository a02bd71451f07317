// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Addlicense adds the Apache License 2.0 header to files that lack it.

It recursively walks through the current directory, which must be the root
of a Git repository, and checks each file whose extension has a known comment
style. If the file does not pass the same check licensecheck performs, the
tool prepends a "Copyright YEAR Google LLC" line followed by the license
notice, commented out in the style of the file. YEAR is the year the file was
last modified. A leading shebang line is kept in place.

The .licensecheck.txtar file in the repository root is honored: if it lists
extensions, only files with those extensions are processed, and files matching
its exclusions are skipped.

Use the -dry flag to print the files that would be changed without touching
them.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/licensecheck/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
