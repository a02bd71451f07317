// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"go.astrophena.name/licensecheck/cli"
	"go.astrophena.name/licensecheck/cli/clitest"
	"go.astrophena.name/licensecheck/internal/config"
	"go.astrophena.name/licensecheck/request"
	"go.astrophena.name/licensecheck/testutil"
)

type runCase struct {
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env"`
	WantErr     string            `json:"want_err"`
	WantStdout  string            `json:"want_stdout"`
	WantSummary string            `json:"want_summary"`
}

// fakeAPI serves files.json for any pull request files request.
func fakeAPI(t *testing.T, files []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/files") {
			http.NotFound(w, r)
			return
		}
		testutil.AssertEqual(t, r.Header.Get("Authorization"), "Bearer t0ken")
		w.Write(files)
	})
}

func TestRunFromTxtar(t *testing.T) {
	testutil.Run(t, "testdata/*.txtar", func(t *testing.T, match string) {
		ar := testutil.ParseTxtar(t, match)
		dir := t.TempDir()
		testutil.ExtractTxtar(t, ar, dir, "case.json", "api/", "config/")

		var cfg txtar.Archive
		for _, f := range ar.Files {
			if name, ok := strings.CutPrefix(f.Name, "config/"); ok {
				cfg.Files = append(cfg.Files, txtar.File{Name: name, Data: f.Data})
			}
		}
		if len(cfg.Files) > 0 {
			if err := os.WriteFile(filepath.Join(dir, config.File), txtar.Format(&cfg), 0o644); err != nil {
				t.Fatal(err)
			}
		}

		caseJSON, ok := testutil.TxtarFile(ar, "case.json")
		if !ok {
			t.Fatalf("%s has no case.json", match)
		}
		var c runCase
		if err := json.Unmarshal(caseJSON, &c); err != nil {
			t.Fatalf("Unmarshal(case.json): %v", err)
		}
		expand := strings.NewReplacer("$WORK", dir).Replace
		for k, v := range c.Env {
			c.Env[k] = expand(v)
		}

		files, _ := testutil.TxtarFile(ar, "api/files.json")
		a := &app{httpc: testutil.MockHTTPClient(fakeAPI(t, files))}

		var stdout, stderr bytes.Buffer
		ctx := cli.WithEnv(context.Background(), &cli.Env{
			Args:   append([]string{"-dir", dir}, c.Args...),
			Getenv: func(key string) string { return c.Env[key] },
			Stdin:  strings.NewReader(""),
			Stdout: &stdout,
			Stderr: &stderr,
		})

		err := cli.Run(ctx, a)
		switch {
		case c.WantErr == "" && err != nil:
			t.Fatalf("Run(): %v\nstderr:\n%s", err, stderr.String())
		case c.WantErr != "" && (err == nil || !strings.Contains(err.Error(), c.WantErr)):
			t.Fatalf("Run() error = %v, want %q", err, c.WantErr)
		}
		testutil.AssertEqual(t, stdout.String(), c.WantStdout)

		if c.WantSummary != "" {
			b, err := os.ReadFile(c.Env["GITHUB_STEP_SUMMARY"])
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(b), c.WantSummary) {
				t.Fatalf("summary must contain %q, got:\n%s", c.WantSummary, b)
			}
		}
	})
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	eventPath := filepath.Join(dir, "event.json")
	if err := os.WriteFile(eventPath, []byte(`{"ref":"refs/heads/main"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	setup := func(t *testing.T) *app {
		return &app{httpc: testutil.MockHTTPClient(http.NotFoundHandler())}
	}

	cases := map[string]clitest.Case[*app]{
		"not a pull request": {
			Args:         []string{"-dir", dir},
			Env:          map[string]string{"GITHUB_EVENT_NAME": "push"},
			WantInStderr: "this command only runs on pull_request events",
		},
		"no token": {
			Args:    []string{"-dir", dir},
			Env:     map[string]string{"GITHUB_EVENT_NAME": "pull_request"},
			WantErr: cli.ErrInvalidArgs,
		},
		"no repository": {
			Args:    []string{"-dir", dir, "-pr", "1"},
			Env:     map[string]string{"GITHUB_TOKEN": "t0ken"},
			WantErr: cli.ErrInvalidArgs,
		},
		"no pull request number": {
			Args: []string{"-dir", dir},
			Env: map[string]string{
				"GITHUB_TOKEN":      "t0ken",
				"GITHUB_REPOSITORY": "google/example",
				"GITHUB_EVENT_PATH": eventPath,
			},
			WantErr: cli.ErrInvalidArgs,
		},
		"bad repository": {
			Args:    []string{"-dir", dir, "-pr", "1", "-repo", "example"},
			Env:     map[string]string{"GITHUB_TOKEN": "t0ken"},
			WantErr: cli.ErrInvalidArgs,
		},
		"bad api url": {
			Args:    []string{"-dir", dir, "-pr", "1", "-repo", "google/example", "-api", "not a url"},
			Env:     map[string]string{"GITHUB_TOKEN": "t0ken"},
			WantErr: cli.ErrInvalidArgs,
		},
		"path outside of repository": {
			Args:    []string{"-dir", dir, "../outside.go"},
			WantErr: cli.ErrInvalidArgs,
		},
		"api error": {
			Args:        []string{"-dir", dir, "-pr", "1", "-repo", "google/example"},
			Env:         map[string]string{"GITHUB_TOKEN": "t0ken"},
			WantErrType: &request.StatusError{},
		},
	}

	clitest.Run(t, setup, cases)
}

func TestSplitList(t *testing.T) {
	testutil.AssertEqual(t, splitList(".go, .ts,,.java "), []string{".go", ".ts", ".java"})
	testutil.AssertEqual(t, splitList(""), []string(nil))
}
