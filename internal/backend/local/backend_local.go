// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/revutil"
	"github.com/tfctl/blockdiff/internal/util"
)

// BackendLocal treats every project file in a directory as one revision, so a
// folder of "Save as" copies doubles as history.
type BackendLocal struct {
	Ctx     context.Context
	Cmd     *cli.Command
	RootDir string
	// File is the working copy named on the command line, if any.
	File string
}

// Revisions implements backend.Backend. It scans RootDir for project files
// and orders them by modification time, newest first. Local filesystem access
// is cheap enough that the scan is not cached.
func (be *BackendLocal) Revisions(ctx context.Context) ([]revutil.Revision, error) {
	files, err := util.ProjectFiles(be.RootDir)
	if err != nil {
		return nil, err
	}

	revisions := make([]revutil.Revision, 0, len(files))
	for _, f := range files {
		stat, err := os.Stat(f)
		if err != nil {
			continue
		}
		revisions = append(revisions, revutil.Revision{
			ID:        filepath.Base(f),
			Summary:   humanize.Bytes(uint64(stat.Size())), //nolint:gosec
			CreatedAt: stat.ModTime(),
			Path:      f,
		})
	}

	sort.SliceStable(revisions, func(i, j int) bool {
		return revisions[i].CreatedAt.After(revisions[j].CreatedAt)
	})
	log.Debugf("local revisions: %d in %s", len(revisions), be.RootDir)

	return revisions, nil
}

// Snapshot reads the file behind spec. WORKTREE is File when one was named,
// else the newest file.
func (be *BackendLocal) Snapshot(ctx context.Context, spec string) ([]byte, error) {
	if spec == revutil.Worktree {
		if be.File != "" {
			return os.ReadFile(filepath.Join(be.RootDir, be.File))
		}
		spec = "~0"
	}

	candidates, err := be.Revisions(ctx)
	if err != nil {
		return nil, err
	}
	found, err := revutil.Resolve(candidates, spec)
	if err != nil {
		return nil, err
	}
	log.Debugf("local snapshot: %s -> %s", spec, found[0].Path)

	body, err := os.ReadFile(found[0].Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return body, nil
}

func (be *BackendLocal) String() string {
	return be.RootDir
}

func (be *BackendLocal) Type() string {
	return "local"
}
