// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/a-h/templ"

	"go.astrophena.name/licensecheck/scan"
)

// appendSummary appends the results to the job summary file at path.
func appendSummary(ctx context.Context, path string, res *scan.Result) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := summary(res).Render(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func summary(res *scan.Result) templ.Component {
	parts := []templ.Component{element("h3", "License headers")}
	if res.OK() {
		parts = append(parts, element("p", fmt.Sprintf("All %d checked files have valid license headers.", len(res.Checked))))
	} else {
		parts = append(parts,
			element("p", fmt.Sprintf("%d of %d checked files are missing valid license headers:", len(res.Invalid), len(res.Checked))),
			fileList(res.Invalid),
		)
	}
	if len(res.Missing) > 0 {
		parts = append(parts,
			element("p", "Changed files not found on disk:"),
			fileList(res.Missing),
		)
	}
	return templ.Join(parts...)
}

// element renders text, escaped, inside a tag.
func element(tag, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<%s>%s</%s>\n", tag, templ.EscapeString(text), tag)
		return err
	})
}

func fileList(files []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<ul>\n"); err != nil {
			return err
		}
		for _, f := range files {
			if _, err := fmt.Fprintf(w, "<li><code>%s</code></li>\n", templ.EscapeString(f)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	})
}
