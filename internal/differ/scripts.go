// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"

	"github.com/tfctl/blockdiff/internal/canon"
	"github.com/tfctl/blockdiff/internal/linediff"
	"github.com/tfctl/blockdiff/internal/project"
)

// ScriptChanges summarizes the block changes of one sprite. Sprite is the
// display name, with the stage suffix where it applies.
type ScriptChanges struct {
	Sprite  string `json:"sprite" yaml:"sprite"`
	Added   int    `json:"added" yaml:"added"`
	Removed int    `json:"removed" yaml:"removed"`
	OnStage bool   `json:"on-stage" yaml:"on-stage"`
}

// Summary renders the counts as "+A/-R blocks".
func (s ScriptChanges) Summary() string {
	return fmt.Sprintf("+%d/-%d blocks", s.Added, s.Removed)
}

// Format renders "<sprite>: +A/-R blocks".
func (s ScriptChanges) Format() string {
	return s.Sprite + ": " + s.Summary()
}

// Engine computes script changes and commit lines. Lines is the delegated
// line differ; Context is the window handed to it.
type Engine struct {
	Lines   linediff.Differ
	Context int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithContext sets the context window handed to the line differ.
func WithContext(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.Context = n
		}
	}
}

// New returns an Engine delegating line diffs to lines. A nil lines uses the
// in-process differ.
func New(lines linediff.Differ, opts ...Option) *Engine {
	if lines == nil {
		lines = linediff.Difflib{}
	}
	e := &Engine{Lines: lines, Context: linediff.DefaultContext}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SpritePair is one positional pairing of sprites. Either side may be nil
// when the sprite lists differ in length.
type SpritePair struct {
	Old *project.Sprite
	New *project.Sprite
}

// Pair zips the sprite lists of old and new by index. Sprites are not matched
// by name, so inserting a sprite mid-list shifts every pairing after it.
func Pair(old, new *project.Snapshot) []SpritePair {
	var o, n []project.Sprite
	if old != nil {
		o = old.Sprites
	}
	if new != nil {
		n = new.Sprites
	}

	size := max(len(o), len(n))
	pairs := make([]SpritePair, size)
	for i := 0; i < size; i++ {
		if i < len(o) {
			pairs[i].Old = &o[i]
		}
		if i < len(n) {
			pairs[i].New = &n[i]
		}
	}
	return pairs
}

// Scripts returns a ScriptChanges for every positional sprite pair whose
// scripts differ. Any failure aborts the whole comparison and no partial
// result is returned.
func (e *Engine) Scripts(ctx context.Context, old, new *project.Snapshot) ([]ScriptChanges, error) {
	var changes []ScriptChanges

	for i, pair := range Pair(old, new) {
		change, changed, err := e.compare(ctx, pair)
		if err != nil {
			return nil, fmt.Errorf("sprite %d: %w", i, err)
		}
		if changed {
			changes = append(changes, change)
		}
	}

	return changes, nil
}

func (e *Engine) compare(ctx context.Context, pair SpritePair) (ScriptChanges, bool, error) {
	switch {
	case pair.Old == nil && pair.New == nil:
		return ScriptChanges{}, false, nil

	case pair.Old == nil:
		c := ScriptChanges{
			Sprite:  pair.New.DisplayName(),
			Added:   pair.New.Blocks.Count(),
			OnStage: pair.New.IsStage,
		}
		return c, c.Added != 0, nil

	case pair.New == nil:
		c := ScriptChanges{
			Sprite:  pair.Old.DisplayName(),
			Removed: pair.Old.Blocks.Count(),
			OnStage: pair.Old.IsStage,
		}
		return c, c.Removed != 0, nil
	}

	equal, err := BlocksEqual(pair.Old, pair.New)
	if err != nil {
		return ScriptChanges{}, false, err
	}
	if equal {
		return ScriptChanges{}, false, nil
	}

	oldText, err := canon.Sprite(pair.Old.Blocks, canon.TopLevelIDs(pair.Old.Blocks))
	if err != nil {
		return ScriptChanges{}, false, err
	}
	newText, err := canon.Sprite(pair.New.Blocks, canon.TopLevelIDs(pair.New.Blocks))
	if err != nil {
		return ScriptChanges{}, false, err
	}

	counts, err := e.Lines.Diff(ctx, oldText, newText, e.Context)
	if err != nil {
		var pe *project.Error
		if errors.As(err, &pe) {
			return ScriptChanges{}, false, err
		}
		return ScriptChanges{}, false, &project.Error{Kind: project.KindDiff, Op: "line diff", Err: err}
	}
	log.Debugf("sprite %q: added=%d removed=%d", pair.Old.Name, counts.Added, counts.Removed)

	if counts.Zero() {
		return ScriptChanges{}, false, nil
	}

	return ScriptChanges{
		Sprite:  pair.Old.DisplayName(),
		Added:   counts.Added,
		Removed: counts.Removed,
		OnStage: pair.New.IsStage,
	}, true, nil
}

// BlocksEqual reports whether two sprites have structurally identical raw
// block maps: same ids, same block contents, key order ignored.
func BlocksEqual(old, new *project.Sprite) (bool, error) {
	a, b := rawBlocks(old), rawBlocks(new)
	delta, err := gojsondiff.New().Compare(a, b)
	if err != nil {
		return false, project.Errorf(project.KindLoad, "compare blocks", "%w", err)
	}
	return !delta.Modified(), nil
}

func rawBlocks(s *project.Sprite) []byte {
	if s == nil || len(s.RawBlocks) == 0 {
		return []byte("{}")
	}
	return s.RawBlocks
}
