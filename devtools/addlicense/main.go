// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"flag"
	"io/fs"
	"os"
	"path/filepath"

	"go.astrophena.name/licensecheck/cli"
	"go.astrophena.name/licensecheck/devtools/internal"
	"go.astrophena.name/licensecheck/internal/config"
	"go.astrophena.name/licensecheck/license"
	"go.astrophena.name/licensecheck/scan"
)

func main() { cli.Main(new(app)) }

type app struct {
	dry bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would have a license header added, without making changes.")
}

func (a *app) Run(ctx context.Context) error {
	if err := internal.EnsureRoot(); err != nil {
		return err
	}

	env := cli.GetEnv(ctx)

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	return filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		path = filepath.ToSlash(path)
		if scan.Excluded(cfg.Exclusions, path) {
			return nil
		}
		if len(cfg.Extensions) > 0 && !scan.HasExtension(cfg.Extensions, path) {
			return nil
		}
		style, ok := license.StyleFor(filepath.Ext(path))
		if !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if license.HasValidHeader(string(content)) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr := license.Header(info.ModTime().Year(), style)

		if a.dry {
			env.Logf("Would add license header to file %s:\n%s", path, hdr)
			return nil
		}
		return os.WriteFile(path, prepend(content, hdr), info.Mode().Perm())
	})
}

// prepend inserts hdr at the start of content, after the shebang line if
// there is one.
func prepend(content []byte, hdr string) []byte {
	var buf bytes.Buffer
	if bytes.HasPrefix(content, []byte("#!")) {
		line, rest, found := bytes.Cut(content, []byte("\n"))
		buf.Write(line)
		buf.WriteByte('\n')
		if !found {
			buf.WriteString(hdr)
			return buf.Bytes()
		}
		content = rest
	}
	buf.WriteString(hdr)
	buf.Write(content)
	return buf.Bytes()
}
