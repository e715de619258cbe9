// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"sprite": "Cat", "added": 3, "removed": 1},
		{"sprite": "stage", "added": 10, "removed": 0},
		{"sprite": "Bird", "added": 3, "removed": 4},
	}
}

var testColumns = []Column{
	{Key: "sprite", Title: "SPRITE"},
	{Key: "added"},
	{Key: "removed"},
}

func sprites(rows []map[string]interface{}) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r["sprite"].(string))
	}
	return out
}

func TestSortDataset(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "empty spec keeps order", spec: "", wantOrder: []string{"Cat", "stage", "Bird"}},
		{name: "ascending by name", spec: "sprite", wantOrder: []string{"Bird", "Cat", "stage"}},
		{name: "descending by name", spec: "-sprite", wantOrder: []string{"stage", "Cat", "Bird"}},
		{name: "case sensitive", spec: "!sprite", wantOrder: []string{"Bird", "Cat", "stage"}},
		{name: "numeric not lexical", spec: "-added", wantOrder: []string{"stage", "Cat", "Bird"}},
		{name: "multiple fields", spec: "added,-removed", wantOrder: []string{"Bird", "Cat", "stage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := testRows()
			SortDataset(rows, tt.spec)
			assert.Equal(t, tt.wantOrder, sprites(rows))
		})
	}
}

func TestSortDatasetTimes(t *testing.T) {
	now := time.Now()
	rows := []map[string]interface{}{
		{"id": "a", "created": now.Add(-time.Hour)},
		{"id": "b", "created": now},
	}
	SortDataset(rows, "-created")
	assert.Equal(t, "b", rows[0]["id"])
}

func TestFilterDataset(t *testing.T) {
	tests := []struct {
		spec string
		want []string
	}{
		{spec: "", want: []string{"Cat", "stage", "Bird"}},
		{spec: "sprite=Cat", want: []string{"Cat"}},
		{spec: "sprite!=Cat", want: []string{"stage", "Bird"}},
		{spec: "sprite^B", want: []string{"Bird"}},
		{spec: "sprite~STA", want: []string{"stage"}},
		{spec: "sprite/^[A-Z]", want: []string{"Cat", "Bird"}},
		{spec: "added=3,removed=4", want: []string{"Bird"}},
		{spec: "missing=x", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := FilterDataset(testRows(), tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sprites(got))
		})
	}
}

func TestBuildFiltersErrors(t *testing.T) {
	_, err := BuildFilters("sprite")
	assert.Error(t, err)

	_, err = BuildFilters("sprite/[")
	assert.Error(t, err)

	t.Setenv("BLOCKDIFF_FILTER_DELIM", ";")
	f, err := BuildFilters("sprite=a,b;added=1")
	require.NoError(t, err)
	require.Len(t, f, 2)
	assert.Equal(t, "a,b", f[0].Value)
}

func TestInterfaceToString(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "nil custom empty", value: nil, empty: []string{"-"}, want: "-"},
		{name: "empty string", value: "", empty: []string{"-"}, want: "-"},
		{name: "string", value: "Cat", want: "Cat"},
		{name: "zero int", value: 0, want: "0"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(7), want: "7"},
		{name: "float", value: 2.5, want: "2.5"},
		{name: "bool", value: false, want: "false"},
		{name: "number", value: json.Number("10"), want: "10"},
		{name: "time", value: ts, want: "2026-03-01T12:00:00Z"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestColumnTransform(t *testing.T) {
	assert.Equal(t, "2.0 kB", Column{Transform: "B"}.transform(2000))
	assert.Equal(t, "CAT", Column{Transform: "u"}.transform("Cat"))
	assert.Equal(t, "cat", Column{Transform: "l"}.transform("Cat"))
	assert.Equal(t, "-", Column{}.transform(nil))
	assert.Contains(t, Column{Transform: "T"}.transform(time.Now().Add(-3*time.Hour)), "ago")
	assert.Equal(t, "SPRITE", testColumns[0].title())
	assert.Equal(t, "added", testColumns[1].title())
}

func TestSpitText(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Titles: true, Padding: 2, Sort: "sprite", Header: "changes"}
	require.NoError(t, Spit(&buf, opts, Dataset{Columns: testColumns, Rows: testRows()}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "changes")
	assert.Contains(t, lines[1], "SPRITE")
	assert.Contains(t, buf.String(), "Bird")
	assert.Less(t, strings.Index(buf.String(), "Bird"), strings.Index(buf.String(), "stage"))
}

func TestSpitTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Spit(&buf, Options{Titles: true}, Dataset{Columns: testColumns}))
	assert.Empty(t, buf.String())
}

func TestSpitRaw(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: "raw", Filter: "sprite=Cat"}
	require.NoError(t, Spit(&buf, opts, Dataset{Columns: testColumns, Rows: testRows()}))
	assert.Equal(t, "Cat\t3\t1\n", buf.String())
}

func TestSpitJSONUsesDoc(t *testing.T) {
	var buf bytes.Buffer
	doc := map[string]interface{}{"commits": []string{"Cat: add a<b>.svg"}}
	require.NoError(t, Spit(&buf, Options{Format: "json"}, Dataset{Columns: testColumns, Rows: testRows(), Doc: doc}))
	assert.Contains(t, buf.String(), `"Cat: add a<b>.svg"`)
}

func TestSpitYAMLRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Spit(&buf, Options{Format: "yaml", Sort: "-added"}, Dataset{Columns: testColumns, Rows: testRows()}))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "stage", got[0]["sprite"])
}

func TestSpitLines(t *testing.T) {
	lines := []string{"Cat: +3/-1 blocks", "Dog: add bark.png"}

	var buf bytes.Buffer
	require.NoError(t, SpitLines(&buf, Options{}, lines, nil))
	assert.Equal(t, "Cat: +3/-1 blocks\nDog: add bark.png\n", buf.String())

	buf.Reset()
	require.NoError(t, SpitLines(&buf, Options{Format: "raw", Header: "ignored"}, lines, nil))
	assert.Equal(t, "Cat: +3/-1 blocks\nDog: add bark.png\n", buf.String())

	buf.Reset()
	require.NoError(t, SpitLines(&buf, Options{Format: "json"}, lines, lines))
	var got []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, lines, got)
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}
