// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/backend"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/output"
	"github.com/tfctl/blockdiff/internal/revutil"
)

var revisionColumns = []output.Column{
	{Key: "id"},
	{Key: "created-at", Title: "created", Transform: "T"},
	{Key: "summary"},
}

func revisionsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	logArgs(m, "revisions")

	be, err := backend.NewBackend(ctx, cmd)
	if err != nil {
		return err
	}
	revisions, err := be.Revisions(ctx)
	if err != nil {
		return err
	}
	revisions = limited(revisions, cmd.Int("limit"))

	rows := make([]map[string]interface{}, 0, len(revisions))
	for _, r := range revisions {
		rows = append(rows, map[string]interface{}{
			"id":         revisionLabel(r),
			"created-at": r.CreatedAt,
			"summary":    r.Summary,
		})
	}

	return output.Spit(writer(cmd), output.OptionsFrom(cmd), output.Dataset{
		Columns: revisionColumns,
		Rows:    rows,
		Doc:     revisions,
	})
}

// limited keeps the first n revisions. n <= 0 keeps all of them.
func limited(revisions []revutil.Revision, n int) []revutil.Revision {
	if n > 0 && len(revisions) > n {
		return revisions[:n]
	}
	return revisions
}

func revisionsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "revisions",
		Usage:     "list the revisions of the project",
		UsageText: "blockdiff revisions [RootDir] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(NewSourceFlags("revisions", meta.Config.Source), NewGlobalFlags("revisions")...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: revisionsCommandAction,
	}
}
