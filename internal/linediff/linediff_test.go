// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package linediff

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/blockdiff/internal/project"
)

var diffCases = []struct {
	name string
	old  string
	new  string
	want Counts
}{
	{name: "identical", old: "a\nb\nc", new: "a\nb\nc", want: Counts{}},
	{name: "both empty", old: "", new: "", want: Counts{}},
	{name: "all added", old: "", new: "a\n\tb\n\tc", want: Counts{Added: 3}},
	{name: "all removed", old: "a\nb", new: "", want: Counts{Removed: 2}},
	{name: "one replaced", old: "a\nb\nc", new: "a\nx\nc", want: Counts{Added: 1, Removed: 1}},
	{name: "inserted in middle", old: "a\nc", new: "a\nb\nc", want: Counts{Added: 1}},
	{name: "trailing newline ignored", old: "a\nb\n", new: "a\nb", want: Counts{}},
	{name: "mixed", old: "a\nb\nc\nd", new: "b\nc\ne\nf", want: Counts{Added: 2, Removed: 2}},
}

func TestDifflib(t *testing.T) {
	for _, tt := range diffCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Difflib{}.Diff(context.Background(), tt.old, tt.new, DefaultContext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Zero(), got.Zero())
		})
	}
}

func TestDifflibSmallContext(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj"
	new := "A\nb\nc\nd\ne\nf\ng\nh\ni\nJ"
	got, err := Difflib{}.Diff(context.Background(), old, new, 1)
	require.NoError(t, err)
	assert.Equal(t, Counts{Added: 2, Removed: 2}, got)
}

func TestGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not on PATH")
	}

	g := &Git{Dir: t.TempDir()}
	for _, tt := range diffCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Diff(context.Background(), tt.old, tt.new, DefaultContext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGitMissingBinary(t *testing.T) {
	g := &Git{Dir: t.TempDir(), Binary: "blockdiff-no-such-git"}
	_, err := g.Diff(context.Background(), "a", "b", DefaultContext)
	require.Error(t, err)
	assert.True(t, project.IsKind(err, project.KindDiff))
}

func TestGitTempFilesUnderDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a shell script stand-in for git")
	}

	// The stand-in echoes the paths it was handed and fails.
	bin := filepath.Join(t.TempDir(), "fake-git")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\necho \"$@\" >&2\nexit 2\n"), 0o700))

	dir := t.TempDir()
	g := &Git{Dir: dir, Binary: bin}
	_, err := g.Diff(context.Background(), "a", "b", DefaultContext)
	require.Error(t, err)
	assert.True(t, project.IsKind(err, project.KindDiff))
	assert.Contains(t, err.Error(), filepath.Join(dir, ".blockdiff-"))

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, left, "temp files are removed")
}

func TestParseNumstat(t *testing.T) {
	c, err := parseNumstat("3\t1\t/tmp/old => /tmp/new\n")
	require.NoError(t, err)
	assert.Equal(t, Counts{Added: 3, Removed: 1}, c)

	c, err = parseNumstat("")
	require.NoError(t, err)
	assert.True(t, c.Zero())

	_, err = parseNumstat("-\t-\tbinary\n")
	assert.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{}, splitLines(""))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"\n", "a\n"}, splitLines("\na"))
}

func TestNew(t *testing.T) {
	d, err := New("", "")
	require.NoError(t, err)
	assert.IsType(t, Difflib{}, d)

	d, err = New("GIT", "/tmp")
	require.NoError(t, err)
	assert.Equal(t, "/tmp", d.(*Git).Dir)

	_, err = New("patience", "")
	assert.Error(t, err)
}
