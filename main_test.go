// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"blockdiff", "commits"},
			expected: []string{"blockdiff", "commits"},
		},
		{
			name:     "no duplicates",
			args:     []string{"blockdiff", "commits", "--output", "text", "--titles"},
			expected: []string{"blockdiff", "commits", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"blockdiff", "commits", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"blockdiff", "commits", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"blockdiff", "commits", "--titles", "--raw", "--titles"},
			expected: []string{"blockdiff", "commits", "--raw", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"blockdiff", "commits", "--output=json", "--titles", "--output=text"},
			expected: []string{"blockdiff", "commits", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"blockdiff", "commits", "--output=json", "--output", "text"},
			expected: []string{"blockdiff", "commits", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"blockdiff", "history", "--differ", "git", "--limit", "5", "--differ", "difflib", "--limit", "3"},
			expected: []string{"blockdiff", "history", "--differ", "difflib", "--limit", "3"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"blockdiff", "commits", "/path/to/project", "--output", "json", "--output", "text"},
			expected: []string{"blockdiff", "commits", "/path/to/project", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"blockdiff", "commits", "-o", "json", "-o", "text"},
			expected: []string{"blockdiff", "commits", "-o", "text"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"blockdiff", "commits", "--color", "--no-color"},
			expected: []string{"blockdiff", "commits", "--color", "--no-color"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"blockdiff", "commits", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"blockdiff", "commits", "--output", "c"},
		},
		{
			name:     "flag at end with no value treated as boolean",
			args:     []string{"blockdiff", "commits", "--titles", "--raw", "--titles"},
			expected: []string{"blockdiff", "commits", "--raw", "--titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"blockdiff", "commits", "--alpha", "--beta", "--gamma"}
	result := deduplicateFlags(args)
	expected := []string{"blockdiff", "commits", "--alpha", "--beta", "--gamma"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	// Positional args after flags should be preserved.
	args := []string{"blockdiff", "commits", "--output", "json", "/path", "--output", "text"}
	result := deduplicateFlags(args)
	expected := []string{"blockdiff", "commits", "/path", "--output", "text"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestInjectEntries(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		key       string
		insertIdx int
		configVal []string
		expected  []string
	}{
		{
			name:      "empty config returns args unchanged",
			args:      []string{"blockdiff", "commits", "--titles"},
			key:       "defaults",
			insertIdx: 2,
			configVal: nil,
			expected:  []string{"blockdiff", "commits", "--titles"},
		},
		{
			name:      "single entry injected",
			args:      []string{"blockdiff", "commits", "--titles"},
			key:       "defaults",
			insertIdx: 2,
			configVal: []string{"--raw"},
			expected:  []string{"blockdiff", "commits", "--raw", "--titles"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"blockdiff", "commits", "--titles"},
			key:       "defaults",
			insertIdx: 2,
			configVal: []string{"--output text"},
			expected:  []string{"blockdiff", "commits", "--output", "text", "--titles"},
		},
		{
			name:      "multiple entries",
			args:      []string{"blockdiff", "commits"},
			key:       "defaults",
			insertIdx: 2,
			configVal: []string{"--raw", "--output json"},
			expected:  []string{"blockdiff", "commits", "--raw", "--output", "json"},
		},
		{
			name:      "insert at index 3",
			args:      []string{"blockdiff", "commits", "/path/to/project", "--titles"},
			key:       "defaults",
			insertIdx: 3,
			configVal: []string{"--raw"},
			expected:  []string{"blockdiff", "commits", "/path/to/project", "--raw", "--titles"},
		},
		{
			name:      "complex multi-word entries",
			args:      []string{"blockdiff", "history"},
			key:       "history.defaults",
			insertIdx: 2,
			configVal: []string{"--differ git", "--limit 5"},
			expected:  []string{"blockdiff", "history", "--differ", "git", "--limit", "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := injectEntries(tt.args, tt.configVal, tt.insertIdx)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("injectEntries() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsBooleanBeforePositional(t *testing.T) {
	// An injected --titles swallowed the revision that followed it.
	args := []string{"blockdiff", "commits", "/path", "--titles", "v1", "--titles"}
	result := deduplicateFlags(args)
	expected := []string{"blockdiff", "commits", "/path", "v1", "--titles"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestInjectEntriesPastEnd(t *testing.T) {
	result := injectEntries([]string{"blockdiff", "commits"}, []string{"--titles"}, 3)
	expected := []string{"blockdiff", "commits", "--titles"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestProcessSetOnly(t *testing.T) {
	// Without config the @set arg is removed and nothing is injected.
	args := []string{"blockdiff", "commits", "/path", "@nosuchset", "--titles"}
	result := processSetOnly(args)
	expected := []string{"blockdiff", "commits", "/path", "--titles"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestHandleNakedCommand(t *testing.T) {
	if got := handleNakedCommand([]string{"blockdiff"}); !reflect.DeepEqual(got, []string{"blockdiff", "--help"}) {
		t.Errorf("got %v", got)
	}
	if got := handleNakedCommand([]string{"blockdiff", "commits"}); !reflect.DeepEqual(got, []string{"blockdiff", "commits"}) {
		t.Errorf("got %v", got)
	}
}
