// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads the optional project configuration shared by
// licensecheck and addlicense.
//
// The configuration lives in a .licensecheck.txtar file at the repository
// root. It is a txtar archive that can contain:
//
//   - extensions.json: a JSON array of file suffixes to check, such as
//     [".go", ".ts"].
//   - exclusions.json: a JSON array of path suffixes that are never checked.
//     An entry ending with a slash excludes a whole directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"golang.org/x/tools/txtar"
)

// File is the name of the configuration file.
const File = ".licensecheck.txtar"

// Config is the project configuration.
type Config struct {
	Extensions []string `validate:"dive,required,startswith=."`
	Exclusions []string `validate:"dive,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from dir. A missing file yields an empty
// configuration.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, File)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return new(Config), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates a configuration archive.
func Parse(data []byte) (*Config, error) {
	cfg := new(Config)
	for _, f := range txtar.Parse(data).Files {
		var dst *[]string
		switch f.Name {
		case "extensions.json":
			dst = &cfg.Extensions
		case "exclusions.json":
			dst = &cfg.Exclusions
		default:
			return nil, fmt.Errorf("unknown file %q", f.Name)
		}
		if err := json.Unmarshal(f.Data, dst); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("%s: invalid value %q (must satisfy %s)", fe.Namespace(), fe.Value(), fe.ActualTag())
		}
		return nil, err
	}
	return cfg, nil
}
