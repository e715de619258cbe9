// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/differ"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/output"
)

var scriptColumns = []output.Column{
	{Key: "sprite"},
	{Key: "added"},
	{Key: "removed"},
}

func scriptsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &PairActionRunner{
		CommandName: "scripts",
		RunFn: func(ctx context.Context, cmd *cli.Command, pair *Pair) error {
			opts := output.OptionsFrom(cmd)

			if cmd.Bool("raw") {
				return writeRawDeltas(writer(cmd), pair, opts.Color)
			}

			engine, err := NewEngine(cmd)
			if err != nil {
				return err
			}
			changes, err := engine.Scripts(ctx, pair.Old, pair.New)
			if err != nil {
				return err
			}
			if changes == nil {
				changes = []differ.ScriptChanges{}
			}

			rows := make([]map[string]interface{}, 0, len(changes))
			for _, c := range changes {
				rows = append(rows, map[string]interface{}{
					"sprite":  c.Sprite,
					"added":   c.Added,
					"removed": c.Removed,
				})
			}

			return output.Spit(writer(cmd), opts, output.Dataset{
				Columns: scriptColumns,
				Rows:    rows,
				Doc:     changes,
			})
		},
	}
	return runner.Run(ctx, cmd)
}

// writeRawDeltas prints a structural delta for every positional sprite pair
// whose block maps differ.
func writeRawDeltas(w io.Writer, pair *Pair, coloring bool) error {
	for _, p := range differ.Pair(pair.Old, pair.New) {
		if p.Old == nil || p.New == nil {
			continue
		}
		delta, err := differ.RawDelta(p.Old, p.New, coloring)
		if err != nil {
			return err
		}
		if delta == "" {
			continue
		}
		fmt.Fprintf(w, "--- %s\n%s", p.Old.DisplayName(), delta)
	}
	return nil
}

func scriptsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&PairCommandBuilder{
		Name:      "scripts",
		Usage:     "count added and removed blocks per sprite",
		UsageText: "blockdiff scripts [RootDir] [OLD [NEW]] [options]",
		Flags:     []cli.Flag{rawFlag},
		Meta:      meta,
		Action:    scriptsCommandAction,
	}).Build()
}
