// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/backend"
	"github.com/tfctl/blockdiff/internal/canon"
	"github.com/tfctl/blockdiff/internal/driller"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/output"
	"github.com/tfctl/blockdiff/internal/project"
	"github.com/tfctl/blockdiff/internal/revutil"
)

type canonSprite struct {
	Sprite string `json:"sprite" yaml:"sprite"`
	Text   string `json:"text" yaml:"text"`
}

// canonCommandAction prints the canonical text of every sprite at one
// revision, or with --path the value found at that path of the document.
func canonCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	logArgs(m, "canon")

	be, err := backend.NewBackend(ctx, cmd)
	if err != nil {
		return err
	}

	spec := revutil.Worktree
	switch args := specArgs(cmd); len(args) {
	case 0:
	case 1:
		spec = args[0]
	default:
		return fmt.Errorf("expected at most one revision, got %d", len(args))
	}

	raw, err := fetchSnapshot(ctx, be, spec)
	if err != nil {
		return err
	}

	opts := output.OptionsFrom(cmd)

	if path := cmd.String("path"); path != "" {
		doc, err := project.Document(raw)
		if err != nil {
			return err
		}
		found := driller.Driller(doc, path)
		if !found.Exists() {
			return fmt.Errorf("nothing at %q", path)
		}
		return output.SpitLines(writer(cmd), opts, []string{found.String()}, found.Value())
	}

	snap, err := project.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", spec, err)
	}

	sprites, err := canonSprites(snap)
	if err != nil {
		return err
	}

	var lines []string
	for _, s := range sprites {
		lines = append(lines, "== "+s.Sprite+" ==")
		if s.Text != "" {
			lines = append(lines, strings.Split(s.Text, "\n")...)
		}
	}
	return output.SpitLines(writer(cmd), opts, lines, sprites)
}

func canonSprites(snap *project.Snapshot) ([]canonSprite, error) {
	sprites := make([]canonSprite, 0, len(snap.Sprites))
	for _, s := range snap.Sprites {
		text, err := canon.Sprite(s.Blocks, canon.TopLevelIDs(s.Blocks))
		if err != nil {
			return nil, fmt.Errorf("sprite %q: %w", s.Name, err)
		}
		sprites = append(sprites, canonSprite{Sprite: s.DisplayName(), Text: text})
	}
	return sprites, nil
}

func canonCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "canon",
		Usage:     "print the canonical text of every sprite",
		UsageText: "blockdiff canon [RootDir] [REV] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "print the document value at this dot path instead, e.g. targets[Cat].blocks",
			},
		}, NewSourceFlags("canon", meta.Config.Source)...), NewGlobalFlags("canon")...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: canonCommandAction,
	}
}
