// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"go.astrophena.name/licensecheck/cli"
	"go.astrophena.name/licensecheck/testutil"
)

func TestProgressMessage(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		current       int
		total         int
		command       []string
		terminalWidth int
		want          string
	}{
		"no terminal width does not shorten": {
			current:       1,
			total:         1,
			command:       []string{"very-long-command", "with", "arguments"},
			terminalWidth: 0,
			want:          "[1/1] Running check very-long-command with arguments",
		},
		"small width with ellipsis": {
			current:       2,
			total:         10,
			command:       []string{"go", "test", "./..."},
			terminalWidth: 28,
			want:          "[2/10] Running check go t...",
		},
		"very small width keeps prefix only": {
			current:       3,
			total:         10,
			command:       []string{"go", "test", "./..."},
			terminalWidth: 10,
			want:          "[3/10] Running check ",
		},
		"very small width trims without ellipsis": {
			current:       2,
			total:         100,
			command:       []string{"go", "test", "./..."},
			terminalWidth: 24,
			want:          "[2/100] Running check go",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := progressMessage(tc.current, tc.total, tc.command, tc.terminalWidth)
			if got != tc.want {
				t.Fatalf("progressMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProgressMessageUsesSpaceInsteadOfTab(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		current int
		total   int
		command []string
		width   int
	}{
		"narrow width": {
			current: 1,
			total:   2,
			command: []string{"go", "test", "./..."},
			width:   25,
		},
		"wide width": {
			current: 1,
			total:   2,
			command: []string{"go", "test", "./..."},
			width:   80,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := progressMessage(tc.current, tc.total, tc.command, tc.width)
			if strings.Contains(got, "\t") {
				t.Fatalf("progressMessage() contains tab: %q", got)
			}
		})
	}
}

type runCase struct {
	CI         string `json:"ci"`
	WantStdout string `json:"want_stdout"`
	WantHook   string `json:"want_hook"`
	WantErr    string `json:"want_err"`
}

func TestRealMainFromTxtar(t *testing.T) {
	testutil.Run(t, "testdata/*.txtar", func(t *testing.T, match string) {
		ar := testutil.ParseTxtar(t, match)
		dir := t.TempDir()

		checks, ok := testutil.TxtarFile(ar, "pre-commit.json")
		if !ok {
			t.Fatalf("%s has no pre-commit.json", match)
		}
		cfg := txtar.Format(&txtar.Archive{
			Files: []txtar.File{{Name: "pre-commit.json", Data: checks}},
		})
		if err := os.WriteFile(filepath.Join(dir, configFile), cfg, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
			t.Fatal(err)
		}

		caseJSON, ok := testutil.TxtarFile(ar, "case.json")
		if !ok {
			t.Fatalf("%s has no case.json", match)
		}
		var c runCase
		if err := json.Unmarshal(caseJSON, &c); err != nil {
			t.Fatalf("Unmarshal(case.json): %v", err)
		}

		t.Chdir(dir)

		var stdout bytes.Buffer
		ctx := cli.WithEnv(context.Background(), &cli.Env{
			Getenv: func(key string) string {
				if key == "CI" {
					return c.CI
				}
				return ""
			},
			Stdout: &stdout,
			Stderr: &bytes.Buffer{},
		})

		err := realMain(ctx)
		switch {
		case c.WantErr == "" && err != nil:
			t.Fatalf("realMain(): %v", err)
		case c.WantErr != "" && (err == nil || !strings.Contains(err.Error(), c.WantErr)):
			t.Fatalf("realMain() error = %v, want %q", err, c.WantErr)
		}
		testutil.AssertEqual(t, stdout.String(), c.WantStdout)

		hookPath := filepath.Join(".git", "hooks", "pre-commit")
		hook, err := os.ReadFile(hookPath)
		if c.WantHook == "" {
			if err == nil {
				t.Fatalf("hook must not be installed in CI")
			}
			return
		}
		if err != nil {
			t.Fatalf("ReadFile(%q): %v", hookPath, err)
		}
		testutil.AssertEqual(t, string(hook), c.WantHook)
	})
}

func TestLoadChecksInvalid(t *testing.T) {
	cases := map[string]string{
		"empty command": `[{"run": []}]`,
		"empty arg":     `[{"run": ["go", ""]}]`,
		"both ci flags": `[{"run": ["true"], "skip_in_ci": true, "only_in_ci": true}]`,
		"bad json":      `{`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			cfg := txtar.Format(&txtar.Archive{
				Files: []txtar.File{{Name: "pre-commit.json", Data: []byte(data)}},
			})
			if err := os.WriteFile(configFile, cfg, 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadChecks(); err == nil {
				t.Fatal("want error, got nil")
			}
		})
	}
}
