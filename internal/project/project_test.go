// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package project

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catProject = `{
  "targets": [
    {
      "isStage": true,
      "name": "Stage",
      "blocks": {},
      "costumes": [{"name": "backdrop1", "dataFormat": "svg", "assetId": "cd21", "md5ext": "cd21.svg"}],
      "sounds": []
    },
    {
      "isStage": false,
      "name": "Cat",
      "blocks": {
        "a": {"opcode": "event_whenflagclicked", "next": "b", "parent": null, "inputs": {}, "fields": {}, "topLevel": true},
        "b": {"opcode": "looks_switchcostumeto", "next": null, "parent": "a", "inputs": {"COSTUME": [1, "c"]}, "fields": {}, "topLevel": false},
        "c": {"opcode": "looks_costume", "next": null, "parent": "b", "inputs": {}, "fields": {"COSTUME": ["fish", null]}, "shadow": true, "topLevel": false},
        "v": [12, "score", "var-1", 10, 20]
      },
      "costumes": [{"name": "fish", "dataFormat": "svg", "assetId": "abc123"}],
      "sounds": [{"name": "meow", "dataFormat": "wav", "assetId": "83c3", "md5ext": "83c3.wav"}]
    }
  ]
}`

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(catProject))
	require.NoError(t, err)
	require.Len(t, snap.Sprites, 2)

	stage := snap.Sprites[0]
	assert.True(t, stage.IsStage)
	assert.Equal(t, "Stage (stage)", stage.DisplayName())
	assert.Equal(t, "cd21.svg", stage.Costumes[0].Path)

	cat := snap.Sprites[1]
	assert.Equal(t, "Cat", cat.DisplayName())
	assert.Equal(t, "abc123.svg", cat.Costumes[0].Path, "assetId fallback")
	assert.Equal(t, "83c3.wav", cat.Sounds[0].Path)

	require.Len(t, cat.Blocks, 4)
	assert.True(t, cat.Blocks["a"].TopLevel)
	assert.Equal(t, "b", cat.Blocks["a"].Next)
	assert.Equal(t, "", cat.Blocks["b"].Next)
	assert.True(t, cat.Blocks["v"].Primitive)
	assert.Equal(t, json.Number("1"), cat.Blocks["b"].Inputs["COSTUME"].([]any)[0])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{"targets": [`},
		{name: "no targets", doc: `{"monitors": []}`},
		{name: "targets not array", doc: `{"targets": {}}`},
		{name: "missing name", doc: `{"targets": [{"isStage": false, "blocks": {}}]}`},
		{name: "missing isStage", doc: `{"targets": [{"name": "Cat", "blocks": {}}]}`},
		{name: "missing blocks", doc: `{"targets": [{"name": "Cat", "isStage": false}]}`},
		{name: "blocks not object", doc: `{"targets": [{"name": "Cat", "isStage": false, "blocks": []}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, IsKind(err, KindLoad), "got %v", err)
		})
	}
}

func TestParseArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"project.json": catProject,
		"cd21.svg":     "<svg/>",
		"83c3.wav":     "RIFF",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	assert.True(t, IsArchive(buf.Bytes()))

	snap, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, snap.Sprites, 2)
	assert.Equal(t, []byte("<svg/>"), snap.Files["cd21.svg"])
	assert.NotContains(t, snap.Files, "project.json")

	doc, err := Document(buf.Bytes())
	require.NoError(t, err)
	assert.JSONEq(t, catProject, string(doc))

	doc, err = Document([]byte(catProject))
	require.NoError(t, err)
	assert.Equal(t, catProject, string(doc))
}

func TestParseArchiveWithoutProject(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("cd21.svg")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Parse(buf.Bytes())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindLoad))
}

func TestGraphCount(t *testing.T) {
	g := Graph{
		"a": {Opcode: "control_if"},
		"b": {Opcode: "sensing_touchingobject"},
		"c": {Opcode: "sensing_touchingobjectmenu"},
		"d": {Opcode: "sensing_of_object_menu"},
		"e": {Primitive: true},
		"f": {},
	}
	assert.Equal(t, 3, g.Count())
}

func TestErrorKinds(t *testing.T) {
	err := Errorf(KindGraph, "render", "block %q not found", "x")
	assert.True(t, IsKind(err, KindGraph))
	assert.False(t, IsKind(err, KindDiff))
	assert.EqualError(t, err, `graph error: render: block "x" not found`)
	assert.False(t, IsKind(assert.AnError, KindGraph))
}
