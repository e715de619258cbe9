// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/backend/git"
	"github.com/tfctl/blockdiff/internal/backend/local"
	"github.com/tfctl/blockdiff/internal/backend/s3"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/revutil"
)

// Backend abstracts where project snapshots and their history come from.
type Backend interface {
	// Snapshot returns the raw project document (JSON or .sb3) for spec.
	Snapshot(ctx context.Context, spec string) ([]byte, error)
	// Revisions returns the known revisions, most recent first.
	Revisions(ctx context.Context) ([]revutil.Revision, error)
	String() string
	Type() string
}

// NewBackend returns the Backend for the root dir in command metadata. S3 wins
// when a bucket is named, then git when the root dir is inside a work tree,
// else plain files in the directory.
func NewBackend(ctx context.Context, cmd *cli.Command) (Backend, error) {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("NewBackend: rootDir=%s file=%s", m.RootDir, m.File)

	if cmd.String("bucket") != "" {
		return s3.NewBackendS3(ctx, cmd,
			s3.FromFlags(),
			s3.FromFile(m.File),
		)
	}

	if git.Detect(ctx, m.RootDir) {
		return git.NewBackendGit(ctx, cmd,
			git.FromRootDir(m.RootDir, m.File),
			git.WithLimit(cmd.Int("limit")),
		)
	}

	return local.NewBackendLocal(ctx, cmd,
		local.FromRootDir(m.RootDir, m.File),
	)
}
