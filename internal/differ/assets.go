// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/apex/log"

	"github.com/tfctl/blockdiff/internal/project"
)

// AssetChangeKind marks why an asset appears in a change list.
type AssetChangeKind int

const (
	AssetUnchanged AssetChangeKind = iota
	AssetAdded
	AssetRemoved
	AssetMerged
)

func (k AssetChangeKind) String() string {
	switch k {
	case AssetAdded:
		return "added"
	case AssetRemoved:
		return "removed"
	case AssetMerged:
		return "modified"
	default:
		return ""
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k AssetChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AssetChange is one costume or sound of one sprite. Sprite is the bare
// sprite name; OnStage marks assets of the stage.
type AssetChange struct {
	Sprite  string          `json:"sprite" yaml:"sprite"`
	Name    string          `json:"name" yaml:"name"`
	Path    string          `json:"path" yaml:"path"`
	Ext     string          `json:"ext" yaml:"ext"`
	OnStage bool            `json:"on-stage" yaml:"on-stage"`
	Content []byte          `json:"-" yaml:"-"`
	Kind    AssetChangeKind `json:"kind" yaml:"kind"`
}

// AssetKey is the comparable identity of an AssetChange. Content is excluded.
type AssetKey struct {
	Sprite  string
	Name    string
	Path    string
	Ext     string
	OnStage bool
	Kind    AssetChangeKind
}

// Key returns the identity used for set comparison.
func (a AssetChange) Key() AssetKey {
	return AssetKey{
		Sprite:  a.Sprite,
		Name:    a.Name,
		Path:    a.Path,
		Ext:     a.Ext,
		OnStage: a.OnStage,
		Kind:    a.Kind,
	}
}

// DisplaySprite returns the sprite label used in commit lines.
func (a AssetChange) DisplaySprite() string {
	if a.OnStage {
		return a.Sprite + project.StageSuffix
	}
	return a.Sprite
}

// sameAsset matches assets on identity only (sprite and name), ignoring
// content.
func sameAsset(a, b AssetChange) bool {
	return a.Name == b.Name && a.Sprite == b.Sprite && a.OnStage == b.OnStage
}

// AssetChanges splits asset differences into three disjoint lists.
type AssetChanges struct {
	Added   []AssetChange `json:"added" yaml:"added"`
	Removed []AssetChange `json:"removed" yaml:"removed"`
	Merged  []AssetChange `json:"merged" yaml:"merged"`
}

// Empty reports whether no asset changed.
func (c AssetChanges) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Merged) == 0
}

// Inventory labels every costume and then every sound of every sprite in s.
// Content is attached when s carries the asset's file.
func Inventory(s *project.Snapshot) []AssetChange {
	var out []AssetChange
	if s == nil {
		return out
	}
	for _, sprite := range s.Sprites {
		for _, list := range [][]project.Asset{sprite.Costumes, sprite.Sounds} {
			for _, a := range list {
				out = append(out, AssetChange{
					Sprite:  sprite.Name,
					Name:    a.Name,
					Path:    a.Path,
					Ext:     a.DataFormat,
					OnStage: sprite.IsStage,
					Content: s.Files[a.Path],
				})
			}
		}
	}
	return out
}

// Assets returns, in new's order, every asset of new that has no identical
// counterpart in old. This covers new, renamed and content-modified assets.
// Each result is marked with kind.
func Assets(old, new *project.Snapshot, kind AssetChangeKind) []AssetChange {
	seen := map[AssetKey]struct{}{}
	for _, a := range Inventory(old) {
		seen[a.Key()] = struct{}{}
	}

	var out []AssetChange
	for _, a := range Inventory(new) {
		if _, ok := seen[a.Key()]; ok {
			continue
		}
		a.Kind = kind
		out = append(out, a)
	}
	return out
}

// MergedAssets classifies asset differences between old and new. Each added
// asset is paired with the first still unpaired removed asset of the same
// sprite and name; the pair lands in Merged (carrying the new version) instead
// of in both Added and Removed. Unpaired entries stay where they were, so a
// costume and a sound sharing a name are reported separately.
func MergedAssets(old, new *project.Snapshot) AssetChanges {
	added := Assets(old, new, AssetAdded)
	removed := Assets(new, old, AssetRemoved)

	var changes AssetChanges
	paired := make([]bool, len(removed))
	for _, a := range added {
		j := firstUnpaired(removed, paired, a)
		if j < 0 {
			changes.Added = append(changes.Added, a)
			continue
		}
		paired[j] = true
		a.Kind = AssetMerged
		changes.Merged = append(changes.Merged, a)
	}
	for j, r := range removed {
		if !paired[j] {
			changes.Removed = append(changes.Removed, r)
		}
	}
	log.Debugf("asset changes: added=%d removed=%d merged=%d",
		len(changes.Added), len(changes.Removed), len(changes.Merged))

	return changes
}

func firstUnpaired(list []AssetChange, paired []bool, a AssetChange) int {
	for j, b := range list {
		if !paired[j] && sameAsset(a, b) {
			return j
		}
	}
	return -1
}
