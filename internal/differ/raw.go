// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/blockdiff/internal/project"
)

// RawDelta renders the structural difference between two sprites' raw block
// maps in gojsondiff's ASCII format. Identical maps render as "".
func RawDelta(old, new *project.Sprite, coloring bool) (string, error) {
	a, b := rawBlocks(old), rawBlocks(new)
	log.Debugf("raw delta: len=%d %d", len(a), len(b))

	delta, err := gojsondiff.New().Compare(a, b)
	if err != nil {
		return "", fmt.Errorf("failed to compare blocks: %w", err)
	}
	if !delta.Modified() {
		return "", nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(a, &jdoc); err != nil {
		return "", fmt.Errorf("failed to unmarshal blocks: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}

	return formatter.NewAsciiFormatter(jdoc, config).Format(delta)
}
