// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseRootDir parses a "dir[::file]" root spec and returns the absolute
// project directory plus the optional project file named relative to it. A
// spec naming an existing file splits into its directory and base name. It
// returns an error if the entry does not exist or the spec is empty.
func ParseRootDir(rootDir string) (string, string, error) {
	if rootDir == "" {
		return "", "", os.ErrInvalid
	}

	var dir, file string

	parts := strings.Split(rootDir, "::")
	if len(parts) > 1 {
		file = parts[1]
	}

	dir = parts[0]
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", "", err
	}
	if !info.IsDir() {
		if file != "" {
			return "", "", os.ErrInvalid
		}
		return filepath.Dir(dir), filepath.Base(dir), nil
	}

	return dir, file, nil
}
