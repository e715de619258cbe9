// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ProjectPatterns are the globs that name project documents in a directory.
var ProjectPatterns = []string{"*.sb3", "*project*.json"}

// ProjectFiles returns every file in dir matching ProjectPatterns, sorted by
// name.
func ProjectFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range ProjectPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// FindProjectFile picks the project file of dir, relative to dir.
// project.json wins, then the first name from ProjectFiles.
func FindProjectFile(dir string) (string, error) {
	if info, err := os.Stat(filepath.Join(dir, "project.json")); err == nil && info.Mode().IsRegular() {
		return "project.json", nil
	}

	files, err := ProjectFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no project file in %s: %w", dir, os.ErrNotExist)
	}
	return filepath.Base(files[0]), nil
}
