// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package linediff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/blockdiff/internal/project"
)

// Git delegates to `git diff --no-index --numstat`. Dir is the working
// directory git runs in; empty means the process working directory.
type Git struct {
	Dir string
	// Binary overrides the git executable. Defaults to "git" on PATH.
	Binary string
}

func (g *Git) Diff(ctx context.Context, old, new string, contextLines int) (Counts, error) {
	tmp, err := os.MkdirTemp(g.Dir, ".blockdiff-*")
	if err != nil {
		return Counts{}, project.Errorf(project.KindDiff, "git diff", "failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	// Both sides get a final newline so the differ agrees with Difflib.
	old = strings.Join(splitLines(old), "")
	new = strings.Join(splitLines(new), "")

	oldPath := filepath.Join(tmp, "old")
	newPath := filepath.Join(tmp, "new")
	if err := os.WriteFile(oldPath, []byte(old), 0o600); err != nil { //nolint:mnd
		return Counts{}, project.Errorf(project.KindDiff, "git diff", "failed to write old text: %w", err)
	}
	if err := os.WriteFile(newPath, []byte(new), 0o600); err != nil { //nolint:mnd
		return Counts{}, project.Errorf(project.KindDiff, "git diff", "failed to write new text: %w", err)
	}

	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	args := []string{"diff", "--no-index", "--no-color", "--numstat", fmt.Sprintf("-U%d", contextLines), "--", oldPath, newPath}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("git diff: dir=%s args=%v", g.Dir, args)
	err = cmd.Run()

	// --no-index exits 1 when the files differ.
	var exitErr *exec.ExitError
	if err != nil && !(errors.As(err, &exitErr) && exitErr.ExitCode() == 1) {
		return Counts{}, project.Errorf(project.KindDiff, "git diff", "%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseNumstat(stdout.String())
}

// parseNumstat sums the "<added>\t<removed>\t<path>" lines of git's numstat
// output.
func parseNumstat(out string) (Counts, error) {
	var c Counts
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 { //nolint:mnd
			return Counts{}, project.Errorf(project.KindDiff, "git diff", "unexpected numstat line %q", line)
		}
		added, err := strconv.Atoi(fields[0])
		if err != nil {
			return Counts{}, project.Errorf(project.KindDiff, "git diff", "bad added count in %q", line)
		}
		removed, err := strconv.Atoi(fields[1])
		if err != nil {
			return Counts{}, project.Errorf(project.KindDiff, "git diff", "bad removed count in %q", line)
		}
		c.Added += added
		c.Removed += removed
	}
	return c, nil
}
