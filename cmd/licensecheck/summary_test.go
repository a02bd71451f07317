// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/licensecheck/scan"
	"go.astrophena.name/licensecheck/testutil"
)

func TestSummary(t *testing.T) {
	cases := map[string]struct {
		res  *scan.Result
		want string
	}{
		"all valid": {
			res:  &scan.Result{Checked: []string{"a.go", "b.go"}},
			want: "<h3>License headers</h3>\n" +
				"<p>All 2 checked files have valid license headers.</p>\n",
		},
		"invalid and missing": {
			res: &scan.Result{
				Checked: []string{"a.go", "b.go"},
				Invalid: []string{"b.go"},
				Missing: []string{"gone.ts"},
			},
			want: "<h3>License headers</h3>\n" +
				"<p>1 of 2 checked files are missing valid license headers:</p>\n" +
				"<ul>\n<li><code>b.go</code></li>\n</ul>\n" +
				"<p>Changed files not found on disk:</p>\n" +
				"<ul>\n<li><code>gone.ts</code></li>\n</ul>\n",
		},
		"escapes file names": {
			res: &scan.Result{
				Checked: []string{"<x>&.go"},
				Invalid: []string{"<x>&.go"},
			},
			want: "<h3>License headers</h3>\n" +
				"<p>1 of 1 checked files are missing valid license headers:</p>\n" +
				"<ul>\n<li><code>&lt;x&gt;&amp;.go</code></li>\n</ul>\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var sb strings.Builder
			if err := summary(tc.res).Render(context.Background(), &sb); err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, sb.String(), tc.want)
		})
	}
}

func TestAppendSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	if err := os.WriteFile(path, []byte("previous step\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := &scan.Result{Checked: []string{"a.go"}}
	if err := appendSummary(context.Background(), path, res); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), "previous step\n<h3>License headers</h3>\n<p>All 1 checked files have valid license headers.</p>\n")
}
