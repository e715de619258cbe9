// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/meta"
)

// PairCommandBuilder constructs a cli.Command for subcommands that compare
// two revisions (commits, assets, scripts) using a consistent pattern. The
// builder wires metadata, adds the differ, source and global flags, and sets
// up validators.
type PairCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (pcb *PairCommandBuilder) Build() *cli.Command {
	path := pcb.Meta.Config.Source

	flags := append([]cli.Flag{pickFlag}, pcb.Flags...)
	flags = append(flags, NewDifferFlags(pcb.Name, path)...)
	flags = append(flags, NewSourceFlags(pcb.Name, path)...)
	flags = append(flags, NewGlobalFlags(pcb.Name)...)

	return &cli.Command{
		Name:      pcb.Name,
		Usage:     pcb.Usage,
		UsageText: pcb.UsageText,
		Metadata: map[string]any{
			"meta": pcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: pcb.Action,
	}
}

// PairActionRunner encapsulates the common action pattern of the pair
// commands. It loads both snapshots and hands them to RunFn.
type PairActionRunner struct {
	CommandName string
	RunFn       func(context.Context, *cli.Command, *Pair) error
}

// Run executes the action with the provided context and command.
func (par *PairActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	logArgs(m, par.CommandName)

	pair, err := LoadPair(ctx, cmd)
	if err != nil {
		return err
	}
	if pair == nil {
		return nil
	}

	return par.RunFn(ctx, cmd, pair)
}
