// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"strings"

	"github.com/tfctl/blockdiff/internal/project"
)

// Item is a single (key, value) pair fed to GroupItems.
type Item struct {
	Key   string
	Value string
}

// Group is every value seen for one key, in input order.
type Group struct {
	Key    string
	Values []string
}

// GroupItems groups items by key. Keys keep the order in which they were
// first seen; values keep input order within their key.
func GroupItems(items []Item) []Group {
	var groups []Group
	index := map[string]int{}
	for _, it := range items {
		i, ok := index[it.Key]
		if !ok {
			i = len(groups)
			index[it.Key] = i
			groups = append(groups, Group{Key: it.Key})
		}
		groups[i].Values = append(groups[i].Values, it.Value)
	}
	return groups
}

// FormatAssets turns asset changes into one (sprite, description) item per
// sprite, e.g. ("Cat", "add fish.svg, bowl.png"). Every verb group of a sprite
// is kept; a sprite with mixed verbs gets them comma joined in first-seen
// order.
func FormatAssets(changes []AssetChange, action string) []Item {
	raw := make([]Item, 0, len(changes))
	for _, c := range changes {
		raw = append(raw, Item{
			Key:   c.DisplaySprite(),
			Value: action + " " + c.Name + "." + c.Ext,
		})
	}

	var out []Item
	for _, sprite := range GroupItems(raw) {
		var split []Item
		for _, a := range sprite.Values {
			verb, object, _ := strings.Cut(a, " ")
			split = append(split, Item{Key: verb, Value: object})
		}

		var parts []string
		for _, verb := range GroupItems(split) {
			parts = append(parts, verb.Key+" "+strings.Join(verb.Values, ", "))
		}
		out = append(out, Item{Key: sprite.Key, Value: strings.Join(parts, ", ")})
	}
	return out
}

// Report is the full comparison of two snapshots.
type Report struct {
	Assets  AssetChanges    `json:"assets" yaml:"assets"`
	Scripts []ScriptChanges `json:"scripts" yaml:"scripts"`
	Commits []string        `json:"commits" yaml:"commits"`
}

// Compare computes asset changes, script changes and the commit lines built
// from them. It fails as a whole if the script comparison fails.
func (e *Engine) Compare(ctx context.Context, old, new *project.Snapshot) (*Report, error) {
	scripts, err := e.Scripts(ctx, old, new)
	if err != nil {
		return nil, err
	}
	assets := MergedAssets(old, new)

	return &Report{
		Assets:  assets,
		Scripts: scripts,
		Commits: CommitLines(scripts, assets),
	}, nil
}

// Commits returns one "<sprite>: <change>, <change>" line per affected sprite.
func (e *Engine) Commits(ctx context.Context, old, new *project.Snapshot) ([]string, error) {
	r, err := e.Compare(ctx, old, new)
	if err != nil {
		return nil, err
	}
	return r.Commits, nil
}

// CommitLines groups script summaries followed by added, removed and modified
// assets by sprite.
func CommitLines(scripts []ScriptChanges, assets AssetChanges) []string {
	var items []Item
	for _, s := range scripts {
		items = append(items, Item{Key: s.Sprite, Value: s.Summary()})
	}
	items = append(items, FormatAssets(assets.Added, "add")...)
	items = append(items, FormatAssets(assets.Removed, "remove")...)
	items = append(items, FormatAssets(assets.Merged, "modify")...)

	groups := GroupItems(items)
	commits := make([]string, 0, len(groups))
	for _, g := range groups {
		commits = append(commits, g.Key+": "+strings.Join(g.Values, ", "))
	}
	return commits
}
