// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

type BackendLocalOption = func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error

// NewBackendLocal returns a BackendLocal object that implements the Backend
// interface.
func NewBackendLocal(ctx context.Context, cmd *cli.Command, options ...BackendLocalOption) (*BackendLocal, error) {
	options = append([]BackendLocalOption{WithDefaults()}, options...)

	be := &BackendLocal{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		cwd, _ := os.Getwd()
		be.RootDir = cwd
		return nil
	}
}

// FromRootDir points the backend at rootDir. A non-empty file must exist.
func FromRootDir(rootDir, file string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if filepath.IsAbs(rootDir) {
			be.RootDir = rootDir
		} else {
			cwd, _ := os.Getwd()
			be.RootDir = filepath.Join(cwd, rootDir)
		}

		if file != "" {
			if _, err := os.Stat(filepath.Join(be.RootDir, file)); err != nil {
				return fmt.Errorf("project file: %w", err)
			}
			be.File = file
		}

		log.Debugf("NewBackendLocal FromRootDir(): rootDir=%s file=%s", be.RootDir, be.File)

		return nil
	}
}
