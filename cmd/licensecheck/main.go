// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"go.astrophena.name/licensecheck/cli"
	"go.astrophena.name/licensecheck/github"
	"go.astrophena.name/licensecheck/internal/config"
	"go.astrophena.name/licensecheck/logger"
	"go.astrophena.name/licensecheck/scan"
)

func main() { cli.Main(new(app)) }

type app struct {
	repo    string
	pr      int
	dir     string
	exts    string
	api     string
	jobs    int
	verbose bool

	httpc *http.Client // used in tests
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.repo, "repo", "", "Repository in `owner/name` form. Defaults to $GITHUB_REPOSITORY.")
	fs.IntVar(&a.pr, "pr", 0, "Pull request `number`. Defaults to the one from the event payload.")
	fs.StringVar(&a.dir, "dir", ".", "Root `directory` of the checked out repository.")
	fs.StringVar(&a.exts, "ext", "", "Comma-separated `extensions` to check. Defaults to "+strings.Join(scan.DefaultExtensions, ",")+".")
	fs.StringVar(&a.api, "api", "", "GitHub API `URL`. Defaults to $GITHUB_API_URL or "+github.DefaultBaseURL+".")
	fs.IntVar(&a.jobs, "jobs", scan.DefaultJobs, "Number of files to read concurrently.")
	fs.BoolVar(&a.verbose, "v", false, "Enable debug logging.")
}

var errMissingHeaders = errors.New("some files are missing valid license headers")

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	l := logger.New(nil)
	if a.verbose {
		l.Level.Set(slog.LevelDebug)
	}
	l.Attach(l.NewConsoleHandler(env.Stderr))
	ctx = logger.Put(ctx, l)

	cfg, err := config.Load(a.dir)
	if err != nil {
		return err
	}
	s := &scan.Scanner{
		FS:         os.DirFS(a.dir),
		Extensions: cfg.Extensions,
		Exclusions: cfg.Exclusions,
		Jobs:       a.jobs,
	}
	if a.exts != "" {
		s.Extensions = splitList(a.exts)
	}

	var (
		res     *scan.Result
		scanErr error
	)
	if len(env.Args) > 0 {
		paths, err := a.relPaths(env.Args)
		if err != nil {
			return err
		}
		res, scanErr = s.Paths(ctx, paths)
	} else {
		files, err := a.changedFiles(ctx, env)
		if err != nil {
			return err
		}
		if files == nil {
			return nil
		}
		res, scanErr = s.Scan(ctx, files)
	}
	if res == nil {
		return scanErr
	}

	a.report(env, res)
	if path := env.Getenv("GITHUB_STEP_SUMMARY"); path != "" {
		if err := appendSummary(ctx, path, res); err != nil {
			logger.Warn(ctx, "failed to write step summary", slog.Any("err", err))
		}
	}

	if scanErr != nil {
		return scanErr
	}
	if !res.OK() {
		return errMissingHeaders
	}
	logger.Info(ctx, "all checked files have valid license headers", slog.Int("checked", len(res.Checked)))
	return nil
}

// pullRequest holds what is needed to list the files of a pull request.
type pullRequest struct {
	Token   string `validate:"required"`
	Repo    string `validate:"required"`
	Number  int    `validate:"gt=0"`
	BaseURL string `validate:"required,http_url"`
}

var pullRequestErrors = map[string]string{
	"Token":   "GitHub token is required to fetch changed files (set GITHUB_TOKEN)",
	"Repo":    "repository is unknown (pass -repo or set GITHUB_REPOSITORY)",
	"Number":  "no pull request number found (pass -pr or run on a pull_request event)",
	"BaseURL": "invalid GitHub API URL",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// changedFiles returns the files changed by the pull request, or nil if the
// command does not run on a pull request event.
func (a *app) changedFiles(ctx context.Context, env *cli.Env) ([]github.ChangedFile, error) {
	if name := env.Getenv("GITHUB_EVENT_NAME"); name != "" && name != github.EventPullRequest {
		logger.Info(ctx, "this command only runs on pull_request events", slog.String("event", name))
		return nil, nil
	}

	pr := pullRequest{
		Token:   cmp.Or(env.Getenv("INPUT_GITHUB-TOKEN"), env.Getenv("GITHUB_TOKEN")),
		Repo:    cmp.Or(a.repo, env.Getenv("GITHUB_REPOSITORY")),
		Number:  a.pr,
		BaseURL: cmp.Or(a.api, env.Getenv("GITHUB_API_URL"), github.DefaultBaseURL),
	}
	if pr.Number == 0 {
		if path := env.Getenv("GITHUB_EVENT_PATH"); path != "" {
			ev, err := github.LoadEvent(path)
			if err != nil {
				return nil, fmt.Errorf("reading event payload: %w", err)
			}
			pr.Number = ev.Number
			if pr.Repo == "" {
				pr.Repo = ev.Repo
			}
		}
	}
	if err := validate.Struct(pr); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s", cli.ErrInvalidArgs, pullRequestErrors[verrs[0].Field()])
		}
		return nil, err
	}
	repo, err := github.ParseRepo(pr.Repo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}

	logger.Info(ctx, "checking license headers", slog.String("repo", repo.String()), slog.Int("pr", pr.Number))
	c := &github.Client{
		BaseURL:    pr.BaseURL,
		Token:      pr.Token,
		HTTPClient: a.httpc,
	}
	files, err := c.PullRequestFiles(ctx, repo, pr.Number)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []github.ChangedFile{}
	}
	return files, nil
}

// relPaths makes paths relative to the repository root.
func (a *app) relPaths(paths []string) ([]string, error) {
	root, err := filepath.Abs(a.dir)
	if err != nil {
		return nil, err
	}
	rel := make([]string, len(paths))
	for i, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		r, err := filepath.Rel(root, p)
		if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%w: %s is outside of %s", cli.ErrInvalidArgs, paths[i], a.dir)
		}
		rel[i] = filepath.ToSlash(r)
	}
	return rel, nil
}

func (a *app) report(env *cli.Env, res *scan.Result) {
	actions := env.Getenv("GITHUB_ACTIONS") == "true"
	for _, p := range res.Missing {
		const format = "File %s was listed as changed but does not exist on disk. Skipping."
		if actions {
			github.Warningf(env.Stdout, p, format, p)
		} else {
			fmt.Fprintf(env.Stdout, "warning: "+format+"\n", p)
		}
	}
	for _, p := range res.Invalid {
		const format = "Missing or invalid license header in: %s"
		if actions {
			github.Errorf(env.Stdout, p, format, p)
		} else {
			fmt.Fprintf(env.Stdout, format+"\n", p)
		}
	}
}

func splitList(s string) []string {
	var list []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
