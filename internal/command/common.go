// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/backend"
	"github.com/tfctl/blockdiff/internal/differ"
	"github.com/tfctl/blockdiff/internal/linediff"
	"github.com/tfctl/blockdiff/internal/meta"
	"github.com/tfctl/blockdiff/internal/project"
	"github.com/tfctl/blockdiff/internal/revutil"
)

// selectRevisions is swapped out in tests.
var selectRevisions = differ.SelectRevisions

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer is where command results go.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return cmd.Writer
}

// specArgs returns the positional args after RootDir.
func specArgs(cmd *cli.Command) []string {
	args := cmd.Args().Slice()
	if len(args) > 0 {
		args = args[1:]
	}
	return args
}

// defaultSpecs returns the old and new specs compared when none are given.
func defaultSpecs(be backend.Backend) (string, string) {
	if be.Type() == "git" {
		return "HEAD~1", "HEAD"
	}
	return "~1", "~0"
}

// Pair is two loaded snapshots of one project.
type Pair struct {
	Backend backend.Backend
	OldSpec string
	NewSpec string
	Old     *project.Snapshot
	New     *project.Snapshot
}

// LoadPair resolves the old and new specs from the args (or from --pick) and
// loads both snapshots. It returns nil without error when the picker was
// dismissed.
func LoadPair(ctx context.Context, cmd *cli.Command) (*Pair, error) {
	be, err := backend.NewBackend(ctx, cmd)
	if err != nil {
		return nil, err
	}
	log.Debugf("backend: %s %s", be.Type(), be)

	oldSpec, newSpec := defaultSpecs(be)

	args := specArgs(cmd)
	switch {
	case cmd.Bool("pick"):
		revisions, err := be.Revisions(ctx)
		if err != nil {
			return nil, err
		}
		picked, err := selectRevisions(revisions)
		if err != nil {
			return nil, err
		}
		if len(picked) != 2 { //nolint:mnd
			return nil, nil
		}
		// Picks come back newest first.
		oldSpec, newSpec = picked[1].ID, picked[0].ID
	case len(args) == 1:
		oldSpec = args[0]
	case len(args) == 2: //nolint:mnd
		oldSpec, newSpec = args[0], args[1]
	case len(args) > 2: //nolint:mnd
		return nil, fmt.Errorf("expected at most two revisions, got %d", len(args))
	}
	log.Debugf("comparing %s..%s", oldSpec, newSpec)

	pair := &Pair{Backend: be, OldSpec: oldSpec, NewSpec: newSpec}
	if pair.Old, err = LoadSnapshot(ctx, be, oldSpec); err != nil {
		return nil, err
	}
	if pair.New, err = LoadSnapshot(ctx, be, newSpec); err != nil {
		return nil, err
	}
	return pair, nil
}

// LoadSnapshot fetches and parses one revision.
func LoadSnapshot(ctx context.Context, be backend.Backend, spec string) (*project.Snapshot, error) {
	doc, err := fetchSnapshot(ctx, be, spec)
	if err != nil {
		return nil, err
	}
	snap, err := project.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec, err)
	}
	return snap, nil
}

// fetchSnapshot returns the raw document of one revision. A revision the
// backend cannot produce is a KindLoad error.
func fetchSnapshot(ctx context.Context, be backend.Backend, spec string) ([]byte, error) {
	doc, err := be.Snapshot(ctx, spec)
	if err != nil {
		if project.IsKind(err, project.KindLoad) {
			return nil, err
		}
		return nil, &project.Error{Kind: project.KindLoad, Op: "load " + spec, Err: err}
	}
	return doc, nil
}

// NewEngine builds the differ engine from --differ and --context.
func NewEngine(cmd *cli.Command) (*differ.Engine, error) {
	m := GetMeta(cmd)
	lines, err := linediff.New(cmd.String("differ"), m.RootDir)
	if err != nil {
		return nil, err
	}
	return differ.New(lines, differ.WithContext(cmd.Int("context"))), nil
}

// revisionLabel shortens a revision id for display.
func revisionLabel(r revutil.Revision) string {
	if len(r.ID) > 12 && r.Path == "" { //nolint:mnd
		return r.ID[:12]
	}
	return r.ID
}

func logArgs(m meta.Meta, name string) {
	log.Debugf("%s: executing action for %v", name, m.Args)
}
