// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Licensecheck verifies that files changed in a pull request start with the
Apache License 2.0 header and a "Copyright 20xx Google LLC" line.

It is meant to run as a GitHub Actions step on pull_request events:

	$ licensecheck

The list of changed files is fetched from the GitHub API. Removed files and
files with unchecked extensions are skipped. The remaining files are read
from the checked out repository, and only their first 50 lines are inspected.
Each file without a valid header is reported as an error annotation, and the
command exits with a non-zero status.

Given file arguments, licensecheck checks them directly without talking to
the API:

	$ licensecheck main.go web/app.ts

The following environment variables are used:

  - GITHUB_TOKEN (or INPUT_GITHUB-TOKEN): token used to call the API.
  - GITHUB_REPOSITORY: repository in owner/name form, unless -repo is set.
  - GITHUB_EVENT_NAME: the command does nothing for events other than
    pull_request.
  - GITHUB_EVENT_PATH: event payload the pull request number is read from,
    unless -pr is set.
  - GITHUB_API_URL: API endpoint, unless -api is set.
  - GITHUB_STEP_SUMMARY: if set, a summary of the results is appended to it.
  - GITHUB_ACTIONS: if "true", problems are printed as workflow commands.

Checked extensions and excluded paths can be configured in a
.licensecheck.txtar file at the repository root. It is a txtar archive that
can contain extensions.json and exclusions.json, each holding a JSON array of
strings.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/licensecheck/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
