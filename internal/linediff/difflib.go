// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package linediff

import (
	"context"

	"github.com/apex/log"
	difflib "github.com/pmezard/go-difflib/difflib"
)

// Difflib diffs in-process. It counts the changed lines of the unified hunks
// go-difflib would emit for the given context window.
type Difflib struct{}

func (Difflib) Diff(_ context.Context, old, new string, contextLines int) (Counts, error) {
	a := splitLines(old)
	b := splitLines(new)

	var c Counts
	m := difflib.NewMatcher(a, b)
	for _, group := range m.GetGroupedOpCodes(contextLines) {
		for _, op := range group {
			switch op.Tag {
			case 'r':
				c.Removed += op.I2 - op.I1
				c.Added += op.J2 - op.J1
			case 'd':
				c.Removed += op.I2 - op.I1
			case 'i':
				c.Added += op.J2 - op.J1
			}
		}
	}
	log.Debugf("difflib: old=%d new=%d added=%d removed=%d", len(a), len(b), c.Added, c.Removed)

	return c, nil
}
