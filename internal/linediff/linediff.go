// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package linediff

import (
	"context"
	"fmt"
	"strings"
)

// DefaultContext is wide enough to keep a whole typical script in one hunk.
const DefaultContext = 2000

// Counts is the number of lines added to and removed from the old text.
type Counts struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Zero reports whether the texts were found identical.
func (c Counts) Zero() bool {
	return c.Added == 0 && c.Removed == 0
}

// Differ compares two texts line by line using a context window of
// contextLines around each change.
type Differ interface {
	Diff(ctx context.Context, old, new string, contextLines int) (Counts, error)
}

// New returns the Differ registered under name. The git differ runs in cwd.
func New(name string, cwd string) (Differ, error) {
	switch strings.ToLower(name) {
	case "", "difflib":
		return Difflib{}, nil
	case "git":
		return &Git{Dir: cwd}, nil
	default:
		return nil, fmt.Errorf("unknown differ %q: must be one of [difflib git]", name)
	}
}

// splitLines splits s into lines that each end in a newline. An empty text
// has no lines.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else if !strings.HasSuffix(last, "\n") {
		lines[len(lines)-1] = last + "\n"
	}
	return lines
}
