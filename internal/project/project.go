// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// StageSuffix is appended to the stage's name wherever sprites are labeled.
const StageSuffix = " (stage)"

// menuSuffix marks internal dropdown helper blocks that carry no script
// content of their own.
const menuSuffix = "_menu"

// Snapshot is one loaded revision of a project. It is never mutated after
// Parse returns.
type Snapshot struct {
	Sprites []Sprite
	// Files holds the non-project.json members of an .sb3 archive keyed by
	// member name (the asset path). It is empty for bare project.json input.
	Files map[string][]byte
}

// Sprite is a target of the project. The stage is a sprite with IsStage set.
type Sprite struct {
	Name      string
	IsStage   bool
	Costumes  []Asset
	Sounds    []Asset
	Blocks    Graph
	RawBlocks json.RawMessage
}

// DisplayName returns the sprite name, suffixed with " (stage)" for the stage.
func (s Sprite) DisplayName() string {
	if s.IsStage {
		return s.Name + StageSuffix
	}
	return s.Name
}

// Asset is a costume or sound. Path is content addressed.
type Asset struct {
	Name       string
	DataFormat string
	Path       string
}

// Graph maps snapshot-local block ids to blocks. Links between blocks (Next,
// SUBSTACK, CONDITION) are ids into the same map.
type Graph map[string]Block

// Block is a single entry of a sprite's blocks object. Entries serialized as
// arrays (top-level variable and list reporters) are kept as primitives and
// carry no opcode.
type Block struct {
	Opcode    string
	Inputs    map[string]any
	Fields    map[string]any
	Mutation  map[string]any
	Next      string
	TopLevel  bool
	Primitive bool
}

// IsMenu reports whether the block is a dropdown menu helper.
func (b Block) IsMenu() bool {
	return strings.HasSuffix(b.Opcode, menuSuffix)
}

// Count returns the number of blocks in g that represent script content, i.e.
// every block with an opcode that is not a menu helper.
func (g Graph) Count() int {
	n := 0
	for _, b := range g {
		if b.Primitive || b.Opcode == "" || b.IsMenu() {
			continue
		}
		n++
	}
	return n
}

type rawTarget struct {
	Name     string          `json:"name"`
	IsStage  bool            `json:"isStage"`
	Blocks   json.RawMessage `json:"blocks"`
	Costumes []rawAsset      `json:"costumes"`
	Sounds   []rawAsset      `json:"sounds"`
}

type rawAsset struct {
	Name       string `json:"name"`
	DataFormat string `json:"dataFormat"`
	AssetID    string `json:"assetId"`
	MD5Ext     string `json:"md5ext"`
}

type rawBlock struct {
	Opcode   *string        `json:"opcode"`
	Next     *string        `json:"next"`
	Inputs   map[string]any `json:"inputs"`
	Fields   map[string]any `json:"fields"`
	Mutation map[string]any `json:"mutation"`
	TopLevel bool           `json:"topLevel"`
}

// requiredTargetFields must be present on every target for a document to be
// accepted.
var requiredTargetFields = []string{"name", "isStage", "blocks"}

// Parse decodes a project document. The payload may be a bare project.json or
// an .sb3 archive. Missing required fields produce a KindLoad error.
func Parse(doc []byte) (*Snapshot, error) {
	snap := &Snapshot{Files: map[string][]byte{}}

	if IsArchive(doc) {
		var err error
		doc, snap.Files, err = extractArchive(doc)
		if err != nil {
			return nil, err
		}
	}

	if !gjson.ValidBytes(doc) {
		return nil, Errorf(KindLoad, "parse", "document is not valid JSON")
	}

	targets := gjson.GetBytes(doc, "targets")
	if !targets.IsArray() {
		return nil, Errorf(KindLoad, "parse", "missing targets array")
	}
	for i, t := range targets.Array() {
		for _, f := range requiredTargetFields {
			if !t.Get(f).Exists() {
				return nil, Errorf(KindLoad, "parse", "target %d: missing %q", i, f)
			}
		}
		if !t.Get("blocks").IsObject() {
			return nil, Errorf(KindLoad, "parse", "target %d: blocks is not an object", i)
		}
	}

	var raw struct {
		Targets []rawTarget `json:"targets"`
	}
	if err := decode(doc, &raw); err != nil {
		return nil, Errorf(KindLoad, "parse", "failed to decode targets: %w", err)
	}

	for _, t := range raw.Targets {
		sprite, err := newSprite(t)
		if err != nil {
			return nil, err
		}
		snap.Sprites = append(snap.Sprites, sprite)
	}
	log.Debugf("parsed snapshot: sprites=%d files=%d", len(snap.Sprites), len(snap.Files))

	return snap, nil
}

func newSprite(t rawTarget) (Sprite, error) {
	s := Sprite{
		Name:      t.Name,
		IsStage:   t.IsStage,
		RawBlocks: t.Blocks,
		Blocks:    Graph{},
	}

	for _, c := range t.Costumes {
		s.Costumes = append(s.Costumes, c.asset())
	}
	for _, c := range t.Sounds {
		s.Sounds = append(s.Sounds, c.asset())
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(t.Blocks, &entries); err != nil {
		return s, Errorf(KindLoad, "parse", "sprite %q: failed to decode blocks: %w", t.Name, err)
	}

	for id, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 || entry[0] != '{' {
			s.Blocks[id] = Block{Primitive: true}
			continue
		}

		var rb rawBlock
		if err := decode(entry, &rb); err != nil {
			return s, Errorf(KindLoad, "parse", "sprite %q: block %q: %w", t.Name, id, err)
		}

		b := Block{
			Inputs:   rb.Inputs,
			Fields:   rb.Fields,
			Mutation: rb.Mutation,
			TopLevel: rb.TopLevel,
		}
		if rb.Opcode != nil {
			b.Opcode = *rb.Opcode
		}
		if rb.Next != nil {
			b.Next = *rb.Next
		}
		s.Blocks[id] = b
	}

	return s, nil
}

// asset resolves the content-addressed path, preferring md5ext and falling
// back to assetId plus the data format.
func (a rawAsset) asset() Asset {
	path := a.MD5Ext
	if path == "" {
		path = fmt.Sprintf("%s.%s", a.AssetID, a.DataFormat)
	}
	return Asset{Name: a.Name, DataFormat: a.DataFormat, Path: path}
}

// decode unmarshals with UseNumber so numeric literals survive a round trip
// through canonicalization unchanged.
func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
