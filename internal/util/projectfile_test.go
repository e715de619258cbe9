// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("{}"), 0o600))
	}
}

func TestProjectFiles(t *testing.T) {
	d := t.TempDir()
	touch(t, d, "b.sb3", "a.sb3", "my-project.json", "notes.txt", "other.json")
	require.NoError(t, os.Mkdir(filepath.Join(d, "dir.sb3"), 0o700))

	files, err := ProjectFiles(d)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"a.sb3", "b.sb3", "my-project.json"}, names)
}

func TestFindProjectFile(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		want    string
		wantErr bool
	}{
		{name: "project_json_wins", files: []string{"a.sb3", "project.json"}, want: "project.json"},
		{name: "first_sb3", files: []string{"z.sb3", "m.sb3"}, want: "m.sb3"},
		{name: "named_json", files: []string{"game-project.json"}, want: "game-project.json"},
		{name: "nothing", files: []string{"readme.md"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := t.TempDir()
			touch(t, d, tt.files...)

			got, err := FindProjectFile(d)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, os.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
