// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/output"
)

// commitsCommandAction prints one "<sprite>: <changes>" line per affected
// sprite.
func commitsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &PairActionRunner{
		CommandName: "commits",
		RunFn: func(ctx context.Context, cmd *cli.Command, pair *Pair) error {
			engine, err := NewEngine(cmd)
			if err != nil {
				return err
			}
			lines, err := engine.Commits(ctx, pair.Old, pair.New)
			if err != nil {
				return err
			}
			if lines == nil {
				lines = []string{}
			}
			return output.SpitLines(writer(cmd), output.OptionsFrom(cmd), lines, lines)
		},
	}
	return runner.Run(ctx, cmd)
}

func commitsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&PairCommandBuilder{
		Name:      "commits",
		Usage:     "summarize changes as commit lines",
		UsageText: "blockdiff commits [RootDir] [OLD [NEW]] [options]",
		Meta:      meta,
		Action:    commitsCommandAction,
	}).Build()
}
