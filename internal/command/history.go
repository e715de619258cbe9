// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/backend"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/output"
	"github.com/tfctl/blockdiff/internal/project"
	"github.com/tfctl/blockdiff/internal/revutil"
)

const defaultHistoryLimit = 10

var historyColumns = []output.Column{
	{Key: "revision"},
	{Key: "created-at", Title: "created", Transform: "T"},
	{Key: "summary"},
	{Key: "change"},
}

type historyEntry struct {
	Revision  string    `json:"revision" yaml:"revision"`
	CreatedAt time.Time `json:"created-at" yaml:"created-at"`
	Summary   string    `json:"summary" yaml:"summary"`
	Commits   []string  `json:"commits" yaml:"commits"`
}

// historyCommandAction summarizes each revision against the one before it,
// newest first.
func historyCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	logArgs(m, "history")

	be, err := backend.NewBackend(ctx, cmd)
	if err != nil {
		return err
	}
	engine, err := NewEngine(cmd)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	revisions, err := be.Revisions(ctx)
	if err != nil {
		return err
	}
	revisions = limited(revisions, limit)

	snaps := map[string]*project.Snapshot{}
	load := func(r revutil.Revision) (*project.Snapshot, error) {
		if s, ok := snaps[r.ID]; ok {
			return s, nil
		}
		spec := r.ID
		if r.Path != "" {
			spec = r.Path
		}
		s, err := LoadSnapshot(ctx, be, spec)
		if err != nil {
			return nil, err
		}
		snaps[r.ID] = s
		return s, nil
	}

	entries := []historyEntry{}
	var rows []map[string]interface{}
	for i := 0; i+1 < len(revisions); i++ {
		newer, older := revisions[i], revisions[i+1]

		newSnap, err := load(newer)
		if err != nil {
			return err
		}
		oldSnap, err := load(older)
		if err != nil {
			return err
		}

		commits, err := engine.Commits(ctx, oldSnap, newSnap)
		if err != nil {
			return err
		}
		entries = append(entries, historyEntry{
			Revision:  newer.ID,
			CreatedAt: newer.CreatedAt,
			Summary:   newer.Summary,
			Commits:   commits,
		})

		if len(commits) == 0 {
			commits = []string{""}
		}
		for _, c := range commits {
			rows = append(rows, map[string]interface{}{
				"revision":   revisionLabel(newer),
				"created-at": newer.CreatedAt,
				"summary":    newer.Summary,
				"change":     c,
			})
		}
	}

	return output.Spit(writer(cmd), output.OptionsFrom(cmd), output.Dataset{
		Columns: historyColumns,
		Rows:    rows,
		Doc:     entries,
	})
}

func historyCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.Config.Source
	flags := NewDifferFlags("history", path)
	flags = append(flags, NewSourceFlags("history", path)...)
	flags = append(flags, NewGlobalFlags("history")...)

	return &cli.Command{
		Name:      "history",
		Usage:     "summarize each revision against the one before it",
		UsageText: "blockdiff history [RootDir] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: historyCommandAction,
	}
}
