// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cfgfile populates caller-supplied configuration objects from YAML
// files. Paths may be local files or go-getter URLs. The package never
// inspects the decoded values; it only decides whether and from where to
// load.
package cfgfile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// FS is a filesystem abstraction used for local reads.
// Default is the OS filesystem, but can be replaced with a mock for testing.
var FS = afero.NewOsFs()

// ErrConfigLoad is returned when a configuration file cannot be loaded.
var ErrConfigLoad = errors.New("failed to load config file")

// Exists reports whether the path refers to a loadable source. Remote URLs
// are assumed loadable; whether they actually are is only known at fetch
// time.
func Exists(path string) bool {
	if path == "" {
		return false
	}

	if isRemote(path) {
		return true
	}

	ok, err := afero.Exists(FS, path)

	return err == nil && ok
}

// Load reads the file at path and decodes it into out.
func Load(ctx context.Context, path string, out any) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrConfigLoad)
	}

	data, err := read(ctx, path)
	if err != nil {
		return errors.Join(ErrConfigLoad, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Join(ErrConfigLoad, err)
	}

	return nil
}

// LoadFirst loads the first existing candidate path into out and returns
// the path it loaded. Candidates that do not exist are skipped; an existing
// candidate that fails to load aborts the search. When no candidate exists
// it returns ("", nil): default config files are optional.
func LoadFirst(ctx context.Context, paths []string, out any) (string, error) {
	for _, p := range paths {
		if !Exists(p) {
			continue
		}

		if err := Load(ctx, p, out); err != nil {
			return "", err
		}

		return p, nil
	}

	return "", nil
}

func read(ctx context.Context, path string) ([]byte, error) {
	if isRemote(path) {
		return fetch(ctx, path)
	}

	return afero.ReadFile(FS, path)
}

// isRemote reports whether the path should be handled by go-getter rather
// than the local filesystem.
func isRemote(path string) bool {
	scheme, _, ok := strings.Cut(path, "://")

	return ok && scheme != "file" && scheme != ""
}
