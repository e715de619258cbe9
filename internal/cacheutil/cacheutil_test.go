// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(dirEnv, dir)
	t.Setenv(enabledEnv, "1")
	return dir
}

func TestDir(t *testing.T) {
	dir := useCache(t)
	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, dir, got)

	t.Setenv(dirEnv, "")
	got, ok = Dir()
	if ok {
		assert.Equal(t, "blockdiff", filepath.Base(got))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(enabledEnv, tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	dir := filepath.Join(useCache(t), "nested", "cache")
	t.Setenv(dirEnv, dir)

	base, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, base)
	assert.DirExists(t, dir)

	t.Setenv(enabledEnv, "0")
	base, ok, err = EnsureBaseDir()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, base)
}

func TestWriteRead(t *testing.T) {
	useCache(t)
	sub := []string{"bucket", "game.sb3"}

	_, found := Read(sub, "v1")
	assert.False(t, found)

	// Archive bytes must come back untouched, surrounding whitespace included.
	data := []byte("PK\x03\x04 binary \n")
	require.NoError(t, Write(sub, "v1", data))

	p, exists := EntryPath(sub, "v1")
	assert.True(t, exists)
	assert.Equal(t, encodeKey("v1"), filepath.Base(p))

	entry, found := Read(sub, "v1")
	require.True(t, found)
	assert.Equal(t, data, entry.Data)
	assert.Equal(t, "v1", entry.Key)
	assert.Equal(t, p, entry.Path)
}

func TestWriteDisabled(t *testing.T) {
	dir := useCache(t)
	t.Setenv(enabledEnv, "false")

	require.NoError(t, Write([]string{"x"}, "k", []byte("data")))
	assert.NoDirExists(t, filepath.Join(dir, "x"))

	_, found := Read([]string{"x"}, "k")
	assert.False(t, found)
}

func TestFetch(t *testing.T) {
	useCache(t)
	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte("body"), nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch([]string{"s3"}, "v9", fetch)
		require.NoError(t, err)
		assert.Equal(t, "body", string(got))
	}
	assert.Equal(t, 1, calls)

	_, err := Fetch([]string{"s3"}, "v10", func() ([]byte, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	_, found := Read([]string{"s3"}, "v10")
	assert.False(t, found)
}

func TestPurge(t *testing.T) {
	useCache(t)
	require.NoError(t, Write([]string{"p"}, "old", []byte("a")))
	require.NoError(t, Write([]string{"p"}, "new", []byte("b")))

	oldPath, _ := EntryPath([]string{"p"}, "old")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(0))
	assert.FileExists(t, oldPath)

	require.NoError(t, Purge(24))
	assert.NoFileExists(t, oldPath)
	_, found := Read([]string{"p"}, "new")
	assert.True(t, found)
}
