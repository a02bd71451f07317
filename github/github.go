// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package github lists the files changed by a pull request and talks to the
// GitHub Actions runner.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"

	"go.astrophena.name/licensecheck/logger"
	"go.astrophena.name/licensecheck/request"
)

// DefaultBaseURL is the GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

const (
	perPage    = 100
	apiVersion = "2022-11-28"
)

// Status values of a changed file.
const (
	StatusAdded     = "added"
	StatusModified  = "modified"
	StatusRemoved   = "removed"
	StatusRenamed   = "renamed"
	StatusChanged   = "changed"
	StatusCopied    = "copied"
	StatusUnchanged = "unchanged"
)

// ChangedFile is a file changed by a pull request.
type ChangedFile struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// Repo identifies a repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// ParseRepo parses a repository in the "owner/name" form.
func ParseRepo(s string) (Repo, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("invalid repository %q, want owner/name", s)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// Client is a minimal GitHub REST API client.
type Client struct {
	// BaseURL is the API endpoint. If empty, DefaultBaseURL is used.
	BaseURL string
	// Token authenticates requests.
	Token string
	// HTTPClient is used for requests. If nil, request.DefaultClient is used.
	HTTPClient *http.Client
	// Attempts is the number of tries for each page. If zero, 3 is used.
	Attempts uint
	// RetryDelay is the initial delay between tries. If zero, one second is
	// used.
	RetryDelay time.Duration
}

// PullRequestFiles returns all files changed by the pull request number in
// repo, following pagination.
func (c *Client) PullRequestFiles(ctx context.Context, repo Repo, number int) ([]ChangedFile, error) {
	base := strings.TrimSuffix(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	next := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/files?per_page=%d", base, repo.Owner, repo.Name, number, perPage)

	var files []ChangedFile
	for page := 1; next != ""; page++ {
		logger.Debug(ctx, "fetching changed files", slog.Int("page", page), slog.String("repo", repo.String()))
		batch, link, err := c.get(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("listing files of %s#%d: %w", repo, number, err)
		}
		files = append(files, batch...)
		next = nextPage(link)
	}
	return files, nil
}

func (c *Client) get(ctx context.Context, url string) (files []ChangedFile, link string, err error) {
	attempts := c.Attempts
	if attempts == 0 {
		attempts = 3
	}
	delay := c.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	var scrubber *strings.Replacer
	if c.Token != "" {
		scrubber = strings.NewReplacer(c.Token, "[EXPUNGED]")
	}

	err = retry.Do(
		func() error {
			var hdr http.Header
			files, hdr, err = request.Do[[]ChangedFile](ctx, request.Params{
				Method: http.MethodGet,
				URL:    url,
				Headers: map[string]string{
					"Accept":               "application/vnd.github+json",
					"Authorization":        "Bearer " + c.Token,
					"X-GitHub-Api-Version": apiVersion,
				},
				HTTPClient: c.HTTPClient,
				Scrubber:   scrubber,
			})
			if hdr != nil {
				link = hdr.Get("Link")
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.MaxJitter(delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTemporary),
		retry.OnRetry(func(n uint, err error) {
			if n+1 == attempts {
				return
			}
			logger.Warn(ctx, "request failed, retrying", slog.Uint64("attempt", uint64(n+1)), slog.Any("err", err))
		}),
	)
	return files, link, err
}

func isTemporary(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *request.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return false
	}
	// Transport failures.
	return true
}

// nextPage extracts the URL with rel="next" from a Link header.
func nextPage(link string) string {
	for part := range strings.SplitSeq(link, ",") {
		url, params, ok := strings.Cut(part, ";")
		if !ok {
			continue
		}
		for param := range strings.SplitSeq(params, ";") {
			if strings.TrimSpace(param) == `rel="next"` {
				return strings.Trim(strings.TrimSpace(url), "<>")
			}
		}
	}
	return ""
}
