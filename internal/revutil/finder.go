// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package revutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Worktree names the uncommitted copy of the project file on disk.
const Worktree = "WORKTREE"

// Revision is one loadable version of a project document.
type Revision struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created-at"`
	// Path is the file holding this revision, for file-backed revisions.
	Path string `json:"path,omitempty"`
}

// Resolve takes revisions in most-recent-first order plus zero or more specs
// and returns the matching revision for each spec. A spec can be -
//
//	empty  - the most recent revision (~0).
//	~N     - the Nth revision back from the most recent.
//	file   - an existing file, read directly.
//	prefix - the first revision whose ID starts with the spec.
func Resolve(revisions []Revision, specs ...string) ([]Revision, error) {
	if len(specs) == 0 {
		specs = []string{"~0"}
	}

	result := make([]Revision, 0, len(specs))
	for _, spec := range specs {
		rev, err := resolveSpec(spec, revisions)
		if err != nil {
			return nil, err
		}
		result = append(result, rev)
	}

	return result, nil
}

// IsRelative reports whether spec is a ~N spec.
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, "~")
}

func resolveSpec(spec string, revisions []Revision) (Revision, error) {
	switch {
	case spec == "":
		return resolveRelativeSpec("~0", revisions)

	case IsRelative(spec):
		return resolveRelativeSpec(spec, revisions)

	case isFilePath(spec):
		return resolveFileSpec(spec)

	default:
		return resolveIDSpec(spec, revisions)
	}
}

// resolveRelativeSpec handles ~N specs.
func resolveRelativeSpec(spec string, revisions []Revision) (Revision, error) {
	index, err := strconv.Atoi(strings.TrimPrefix(spec, "~"))
	if err != nil {
		return Revision{}, fmt.Errorf("invalid relative revision: %s", spec)
	}

	if index < 0 || index > len(revisions)-1 {
		return Revision{}, fmt.Errorf("index %d out of range for revisions of length %d", index, len(revisions))
	}

	return revisions[index], nil
}

// resolveFileSpec handles file path specs.
func resolveFileSpec(spec string) (Revision, error) {
	info, err := os.Stat(spec)
	if err != nil {
		return Revision{}, err
	}
	return Revision{
		ID:        spec,
		CreatedAt: info.ModTime(),
		Path:      spec,
	}, nil
}

// resolveIDSpec handles revision ID prefix specs.
func resolveIDSpec(spec string, revisions []Revision) (Revision, error) {
	for _, r := range revisions {
		if strings.HasPrefix(r.ID, spec) {
			return r, nil
		}
	}

	return Revision{}, fmt.Errorf("failed to find revision with ID prefix: %s", spec)
}

// isFilePath checks if a string names an existing regular file.
func isFilePath(s string) bool {
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}
