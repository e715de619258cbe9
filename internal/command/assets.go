// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/differ"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/output"
)

var assetColumns = []output.Column{
	{Key: "sprite"},
	{Key: "kind"},
	{Key: "name"},
	{Key: "ext"},
	{Key: "size", Transform: "B"},
}

func assetsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &PairActionRunner{
		CommandName: "assets",
		RunFn: func(ctx context.Context, cmd *cli.Command, pair *Pair) error {
			changes := differ.MergedAssets(pair.Old, pair.New)
			return output.Spit(writer(cmd), output.OptionsFrom(cmd), output.Dataset{
				Columns: assetColumns,
				Rows:    assetRows(changes),
				Doc:     changes,
			})
		},
	}
	return runner.Run(ctx, cmd)
}

// assetRows flattens the change lists into table rows: added, removed, then
// modified.
func assetRows(changes differ.AssetChanges) []map[string]interface{} {
	var rows []map[string]interface{}
	for _, list := range [][]differ.AssetChange{changes.Added, changes.Removed, changes.Merged} {
		for _, a := range list {
			rows = append(rows, map[string]interface{}{
				"sprite": a.DisplaySprite(),
				"kind":   a.Kind.String(),
				"name":   a.Name,
				"ext":    a.Ext,
				"size":   len(a.Content),
			})
		}
	}
	return rows
}

func assetsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&PairCommandBuilder{
		Name:      "assets",
		Usage:     "list added, removed and modified costumes and sounds",
		UsageText: "blockdiff assets [RootDir] [OLD [NEW]] [options]",
		Meta:      meta,
		Action:    assetsCommandAction,
	}).Build()
}
