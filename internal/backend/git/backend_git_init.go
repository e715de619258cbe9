// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/util"
)

// memoSize bounds the number of revision bodies kept in memory.
const memoSize = 64

type BackendGitOption = func(ctx context.Context, cmd *cli.Command, be *BackendGit) error

// NewBackendGit returns a BackendGit object that implements the Backend
// interface.
func NewBackendGit(ctx context.Context, cmd *cli.Command, options ...BackendGitOption) (*BackendGit, error) {
	options = append([]BackendGitOption{WithDefaults()}, options...)

	be := &BackendGit{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendGitOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendGit) error {
		cwd, _ := os.Getwd()
		be.RootDir = cwd
		be.Binary = "git"

		memo, err := lru.New[string, []byte](memoSize)
		if err != nil {
			return err
		}
		be.memo = memo

		return nil
	}
}

// FromRootDir points the backend at rootDir. An empty file is looked up in
// rootDir.
func FromRootDir(rootDir, file string) BackendGitOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendGit) error {
		if filepath.IsAbs(rootDir) {
			be.RootDir = rootDir
		} else {
			cwd, _ := os.Getwd()
			be.RootDir = filepath.Join(cwd, rootDir)
		}

		if file == "" {
			found, err := util.FindProjectFile(be.RootDir)
			if err != nil {
				return err
			}
			file = found
		}
		be.File = file

		log.Debugf("NewBackendGit FromRootDir(): rootDir=%s file=%s", be.RootDir, be.File)

		return nil
	}
}

// WithLimit caps the number of revisions listed. n <= 0 means no cap.
func WithLimit(n int) BackendGitOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendGit) error {
		be.Limit = n
		return nil
	}
}

func WithBinary(bin string) BackendGitOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendGit) error {
		if bin != "" {
			be.Binary = bin
		}
		return nil
	}
}
