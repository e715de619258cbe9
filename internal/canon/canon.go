// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package canon

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/tfctl/blockdiff/internal/project"
)

// Placeholder replaces every block id found in rendered inputs, fields and
// mutations.
const Placeholder = "id"

const (
	slotCondition = "CONDITION"
	slotSubstack  = "SUBSTACK"
	slotSubstack2 = "SUBSTACK2"
)

// TopLevelIDs returns the ids of every top-level block in g, sorted.
func TopLevelIDs(g project.Graph) []string {
	var ids []string
	for id, b := range g {
		if b.TopLevel && !b.Primitive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Sprite renders every script rooted at topIDs into one canonical text. The
// output carries no block ids and does not depend on the order of topIDs.
func Sprite(g project.Graph, topIDs []string) (string, error) {
	r := &renderer{blocks: g, active: map[string]bool{}}

	scripts := make([]string, 0, len(topIDs))
	for _, id := range topIDs {
		var buf bytes.Buffer
		if err := r.chain(&buf, id, -1, false); err != nil {
			return "", err
		}
		scripts = append(scripts, buf.String())
	}

	sort.Slice(scripts, func(i, j int) bool {
		li, lj := strings.ToLower(scripts[i]), strings.ToLower(scripts[j])
		if li != lj {
			return li < lj
		}
		return scripts[i] < scripts[j]
	})

	return strings.TrimRight(strings.Join(scripts, "\n"), " \t\r\n"), nil
}

type renderer struct {
	blocks project.Graph
	// active holds the ids of the chains currently being rendered so a link
	// back into one of them fails instead of recursing forever.
	active map[string]bool
}

// chain renders the blocks linked from start through Next. The first line is
// written at depth+1 tabs. With elseBranch set, an "else" marker at depth
// tabs precedes the chain.
func (r *renderer) chain(buf *bytes.Buffer, start string, depth int, elseBranch bool) error {
	var visited []string
	defer func() {
		for _, id := range visited {
			delete(r.active, id)
		}
	}()

	if elseBranch {
		buf.WriteString(strings.Repeat("\t", depth))
		buf.WriteString("else\n")
	}

	for id := start; id != ""; {
		if r.active[id] {
			return project.Errorf(project.KindGraph, "render", "block %q is linked more than once in one script", id)
		}
		r.active[id] = true
		visited = append(visited, id)

		b, ok := r.blocks[id]
		if !ok {
			return project.Errorf(project.KindGraph, "render", "block %q not found", id)
		}
		if b.Primitive || b.Opcode == "" {
			return project.Errorf(project.KindGraph, "render", "block %q has no opcode", id)
		}

		line, err := r.line(b)
		if err != nil {
			return err
		}
		buf.WriteString(strings.Repeat("\t", depth+1))
		buf.WriteString(line)
		buf.WriteByte('\n')

		cond, err := slot(b, id, slotCondition)
		if err != nil {
			return err
		}
		if cond != "" {
			// The condition lands on the owner's line, tab separated.
			buf.Truncate(len(bytes.TrimRight(buf.Bytes(), " \t\r\n")))
			if err := r.chain(buf, cond, 0, false); err != nil {
				return err
			}
		}

		sub, err := slot(b, id, slotSubstack)
		if err != nil {
			return err
		}
		if sub != "" {
			if err := r.chain(buf, sub, depth+1, false); err != nil {
				return err
			}
		}

		sub2, err := slot(b, id, slotSubstack2)
		if err != nil {
			return err
		}
		if sub2 != "" {
			if err := r.chain(buf, sub2, depth+1, true); err != nil {
				return err
			}
		}

		id = b.Next
	}

	return nil
}

// line renders the opcode followed by the non-empty inputs, fields and
// mutation maps.
func (r *renderer) line(b project.Block) (string, error) {
	parts := []string{b.Opcode}
	for _, m := range []map[string]any{b.Inputs, b.Fields, b.Mutation} {
		if len(m) == 0 {
			continue
		}
		s, err := r.encode(m)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

// encode serializes v with every block id replaced by Placeholder. Keys are
// emitted sorted, which json.Marshal guarantees for maps.
func (r *renderer) encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.anonymize(v)); err != nil {
		return "", project.Errorf(project.KindGraph, "render", "failed to encode block data: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (r *renderer) anonymize(v any) any {
	switch v := v.(type) {
	case string:
		if _, ok := r.blocks[v]; ok {
			return Placeholder
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = r.anonymize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			if _, ok := r.blocks[k]; ok {
				k = Placeholder
			}
			out[k] = r.anonymize(e)
		}
		return out
	default:
		return v
	}
}

// slot returns the block id held by a control input such as SUBSTACK. An
// input that is absent, not an array, or holds null yields "". A short array
// or a non-string id is malformed.
func slot(b project.Block, owner string, name string) (string, error) {
	v, ok := b.Inputs[name]
	if !ok {
		return "", nil
	}
	arr, ok := v.([]any)
	if !ok {
		return "", nil
	}
	if len(arr) < 2 {
		return "", project.Errorf(project.KindGraph, "render", "block %q: %s has no block reference", owner, name)
	}
	switch id := arr[1].(type) {
	case nil:
		return "", nil
	case string:
		return id, nil
	default:
		return "", project.Errorf(project.KindGraph, "render", "block %q: %s reference is not an id", owner, name)
	}
}
