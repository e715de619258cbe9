// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/config"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/util"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the blockdiff
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.SetNamespace(ns)

	meta := meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		StartingDir: sd,
	}

	// See if the arg immediately following the command is a RootDir spec. If it
	// begins with - it's a flag and the CWD is the root dir. completion takes a
	// plain positional (the shell name) instead.
	if ns != "completion" && len(args) > 2 && !strings.HasPrefix(args[2], "-") {
		if wd, file, err := util.ParseRootDir(args[2]); err == nil {
			meta.RootDir = wd
			meta.File = file
		} else {
			return nil, fmt.Errorf("failed to parse rootDir (%s): %w", args[2], err)
		}
	} else {
		meta.RootDir = sd
	}

	app := &cli.Command{
		Name:  "blockdiff",
		Usage: "summarize changes between revisions of a Scratch project",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "blockdiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		assetsCommandBuilder(meta),
		canonCommandBuilder(meta),
		commitsCommandBuilder(meta),
		historyCommandBuilder(meta),
		revisionsCommandBuilder(meta),
		scriptsCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
