// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"
	"golang.org/x/tools/txtar"

	"go.astrophena.name/licensecheck/cli"
	"go.astrophena.name/licensecheck/devtools/internal"
)

const configFile = ".devtools.txtar"

const hookShellScript = `#!/bin/sh
echo "==> Running pre-commit check..."
go tool pre-commit
`

type check struct {
	Run      []string `json:"run" validate:"min=1,dive,required"`
	SkipInCI bool     `json:"skip_in_ci"`
	OnlyInCI bool     `json:"only_in_ci" validate:"excluded_if=SkipInCI true"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func loadChecks() ([]check, error) {
	ar, err := txtar.ParseFile(configFile)
	if err != nil {
		return nil, err
	}
	var checks []check
	for _, f := range ar.Files {
		if f.Name == "pre-commit.json" {
			if err := json.Unmarshal(f.Data, &checks); err != nil {
				return nil, fmt.Errorf("%s: pre-commit.json: %w", configFile, err)
			}
		}
	}
	for i, c := range checks {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("%s: check #%d: %w", configFile, i+1, err)
		}
	}
	return checks, nil
}

func main() { cli.Main(cli.AppFunc(realMain)) }

func realMain(ctx context.Context) error {
	if err := internal.EnsureRoot(); err != nil {
		return err
	}
	env := cli.GetEnv(ctx)

	checks, err := loadChecks()
	if err != nil {
		return err
	}

	isCI := env.Getenv("CI") == "true"

	if !isCI {
		hookPath := filepath.Join(".git", "hooks", "pre-commit")
		if _, err := os.Stat(hookPath); errors.Is(err, fs.ErrNotExist) {
			if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(hookPath, []byte(hookShellScript), 0o755); err != nil {
				return err
			}
		}
	}

	var selected []check
	for _, c := range checks {
		if isCI && c.SkipInCI {
			continue
		}
		if !isCI && c.OnlyInCI {
			continue
		}
		selected = append(selected, c)
	}

	width := terminalWidth(env.Stdout)
	for i, c := range selected {
		msg := progressMessage(i+1, len(selected), c.Run, width)
		if width > 0 {
			fmt.Fprintf(env.Stdout, "\r\033[K%s", msg)
		} else {
			fmt.Fprintln(env.Stdout, msg)
		}
		if err := c.run(ctx); err != nil {
			if width > 0 {
				fmt.Fprintln(env.Stdout)
			}
			return err
		}
	}
	if width > 0 {
		fmt.Fprint(env.Stdout, "\r\033[K")
	}
	fmt.Fprintf(env.Stdout, "All %d checks passed.\n", len(selected))
	return nil
}

func (c check) run(ctx context.Context) error {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Run[0], c.Run[1:]...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("check %q failed: %v:\n%v", c.Run, err, buf.String())
	}
	return nil
}

// terminalWidth returns the width of w if it is a terminal, and zero
// otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !cli.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// progressMessage formats the line shown while running a check, shortened to
// fit into width columns. Zero width means no limit.
func progressMessage(current, total int, command []string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running check ", current, total)
	msg := prefix + strings.Join(command, " ")
	if width <= 0 || len(msg) <= width {
		return msg
	}
	if width <= len(prefix) {
		return prefix
	}
	const ellipsis = "..."
	avail := width - len(prefix)
	if avail <= len(ellipsis) {
		return msg[:width]
	}
	return msg[:width-len(ellipsis)] + ellipsis
}
