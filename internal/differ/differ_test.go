// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"context"
	"embed"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/blockdiff/internal/project"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// commitTestCase pairs two target lists with the commit lines expected from
// comparing them.
type commitTestCase struct {
	Name    string        `yaml:"name"`
	Old     []interface{} `yaml:"old"`
	New     []interface{} `yaml:"new"`
	Commits []string      `yaml:"commits"`
}

func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// snapshot builds a project document from targets and parses it.
func snapshot(t *testing.T, targets []interface{}) *project.Snapshot {
	t.Helper()
	if targets == nil {
		targets = []interface{}{}
	}
	raw, err := json.Marshal(map[string]interface{}{"targets": targets})
	require.NoError(t, err)
	snap, err := project.Parse(raw)
	require.NoError(t, err)
	return snap
}

func TestCommits(t *testing.T) {
	var tests []commitTestCase
	require.NoError(t, loadTestData("commit_cases.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			old, new := snapshot(t, tt.Old), snapshot(t, tt.New)

			got, err := New(nil).Commits(context.Background(), old, new)
			require.NoError(t, err)

			if len(tt.Commits) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.Commits, got)
		})
	}
}

func TestCompareSelfIsEmpty(t *testing.T) {
	var tests []commitTestCase
	require.NoError(t, loadTestData("commit_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			snap := snapshot(t, tt.New)

			r, err := New(nil).Compare(context.Background(), snap, snap)
			require.NoError(t, err)
			assert.True(t, r.Assets.Empty())
			assert.Empty(t, r.Scripts)
			assert.Empty(t, r.Commits)
		})
	}
}

func TestGroupItems(t *testing.T) {
	got := GroupItems([]Item{
		{Key: "Cat", Value: "+1/-0 blocks"},
		{Key: "Dog", Value: "add a.png"},
		{Key: "Cat", Value: "add fish.svg"},
		{Key: "Dog", Value: "remove b.wav"},
	})

	assert.Equal(t, []Group{
		{Key: "Cat", Values: []string{"+1/-0 blocks", "add fish.svg"}},
		{Key: "Dog", Values: []string{"add a.png", "remove b.wav"}},
	}, got)

	assert.Empty(t, GroupItems(nil))
}

func TestFormatAssets(t *testing.T) {
	changes := []AssetChange{
		{Sprite: "Cat", Name: "fish", Ext: "svg"},
		{Sprite: "Stage", Name: "night", Ext: "png", OnStage: true},
		{Sprite: "Cat", Name: "bowl", Ext: "png"},
	}

	got := FormatAssets(changes, "add")
	assert.Equal(t, []Item{
		{Key: "Cat", Value: "add fish.svg, bowl.png"},
		{Key: "Stage (stage)", Value: "add night.png"},
	}, got)

	assert.Empty(t, FormatAssets(nil, "remove"))
}

func TestCommitLinesOrder(t *testing.T) {
	scripts := []ScriptChanges{{Sprite: "Dog", Added: 2}, {Sprite: "Cat", Removed: 1}}
	assets := AssetChanges{
		Added:   []AssetChange{{Sprite: "Cat", Name: "fish", Ext: "svg"}},
		Removed: []AssetChange{{Sprite: "Bird", Name: "tweet", Ext: "wav"}},
		Merged:  []AssetChange{{Sprite: "Dog", Name: "bone", Ext: "png"}},
	}

	assert.Equal(t, []string{
		"Dog: +2/-0 blocks, modify bone.png",
		"Cat: +0/-1 blocks, add fish.svg",
		"Bird: remove tweet.wav",
	}, CommitLines(scripts, assets))
}
