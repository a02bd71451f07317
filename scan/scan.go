// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package scan checks the license headers of a set of changed files.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"go.astrophena.name/licensecheck/github"
	"go.astrophena.name/licensecheck/license"
	"go.astrophena.name/licensecheck/logger"
	"go.astrophena.name/licensecheck/syncx"
)

// DefaultExtensions lists the file extensions checked when none are
// configured.
var DefaultExtensions = []string{".dart", ".js", ".ts", ".go", ".java"}

// DefaultJobs is the number of files read concurrently when Scanner.Jobs is
// zero.
const DefaultJobs = 8

// Scanner checks files read from a file system.
type Scanner struct {
	// FS holds the checked out repository.
	FS fs.FS
	// Extensions lists suffixes of files to check. If empty,
	// DefaultExtensions is used.
	Extensions []string
	// Exclusions lists path suffixes of files that are never checked.
	Exclusions []string
	// Jobs limits the number of files read concurrently.
	Jobs int
}

// Result is the outcome of a scan. All lists are sorted.
type Result struct {
	// Checked lists files that were read and validated.
	Checked []string
	// Invalid lists checked files without a valid license header.
	Invalid []string
	// Missing lists files that were changed but do not exist on disk.
	Missing []string
	// Skipped lists files that were not checked because they were removed,
	// excluded or have an unchecked extension.
	Skipped []string
}

// OK reports whether every checked file has a valid header.
func (r *Result) OK() bool { return len(r.Invalid) == 0 }

type outcome struct {
	valid   bool
	missing bool
	err     error
}

// Scan checks the files changed by a pull request. Removed files, excluded
// files and files with unchecked extensions are skipped. Files that cannot
// be read for a reason other than not existing are reported in the returned
// error after all other files have been checked; the result is valid even
// then.
func (s *Scanner) Scan(ctx context.Context, files []github.ChangedFile) (*Result, error) {
	res := new(Result)
	var candidates []string
	seen := make(map[string]bool)
	for _, f := range files {
		name := clean(f.Filename)
		if seen[name] {
			continue
		}
		seen[name] = true
		if !s.wants(f) {
			logger.Debug(ctx, "skipping file", slog.String("path", name), slog.String("status", f.Status))
			res.Skipped = append(res.Skipped, name)
			continue
		}
		candidates = append(candidates, name)
	}

	var outcomes syncx.Map[string, outcome]
	jobs := s.Jobs
	if jobs <= 0 {
		jobs = DefaultJobs
	}
	lwg := syncx.NewLimitedWaitGroup(jobs)
	for _, name := range candidates {
		if ctx.Err() != nil {
			break
		}
		lwg.Go(func() { outcomes.Store(name, s.check(ctx, name)) })
	}
	lwg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var errs *multierror.Error
	for _, name := range candidates {
		o, _ := outcomes.Load(name)
		switch {
		case o.missing:
			logger.Warn(ctx, "file was listed as changed but does not exist on disk", slog.String("path", name))
			res.Missing = append(res.Missing, name)
		case o.err != nil:
			errs = multierror.Append(errs, o.err)
		case o.valid:
			res.Checked = append(res.Checked, name)
		default:
			logger.Debug(ctx, "invalid license header", slog.String("path", name))
			res.Checked = append(res.Checked, name)
			res.Invalid = append(res.Invalid, name)
		}
	}

	for _, list := range [][]string{res.Checked, res.Invalid, res.Missing, res.Skipped} {
		slices.Sort(list)
	}
	return res, errs.ErrorOrNil()
}

// Paths checks files given by path, as if each was modified.
func (s *Scanner) Paths(ctx context.Context, paths []string) (*Result, error) {
	files := make([]github.ChangedFile, len(paths))
	for i, p := range paths {
		files[i] = github.ChangedFile{Filename: p, Status: github.StatusModified}
	}
	return s.Scan(ctx, files)
}

func (s *Scanner) wants(f github.ChangedFile) bool {
	if f.Status == github.StatusRemoved {
		return false
	}
	exts := s.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	if !HasExtension(exts, f.Filename) {
		return false
	}
	return !Excluded(s.Exclusions, f.Filename)
}

func (s *Scanner) check(ctx context.Context, name string) outcome {
	if !fs.ValidPath(name) {
		return outcome{err: fmt.Errorf("%s: invalid path", name)}
	}
	b, err := fs.ReadFile(s.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return outcome{missing: true}
	}
	if err != nil {
		return outcome{err: err}
	}
	logger.Debug(ctx, "checking file", slog.String("path", name), slog.Int("size", len(b)))
	return outcome{valid: license.HasValidHeader(string(b))}
}

// HasExtension reports whether name ends with one of exts. Extensions are
// matched as suffixes, so ".d.ts" only selects declaration files.
func HasExtension(exts []string, name string) bool {
	return slices.ContainsFunc(exts, func(ext string) bool { return strings.HasSuffix(name, ext) })
}

// Excluded reports whether name matches one of the exclusions. An exclusion
// ending with a slash matches every file under that directory, anywhere in
// the tree. Other exclusions match name by suffix.
func Excluded(exclusions []string, name string) bool {
	for _, ex := range exclusions {
		switch {
		case ex == "":
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(name, ex) || strings.Contains(name, "/"+ex) {
				return true
			}
		case strings.HasSuffix(name, ex):
			return true
		}
	}
	return false
}

func clean(name string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "./")
}
