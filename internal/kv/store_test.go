// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFileStore(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	db, err := NewSQLiteStore(filepath.Join(dir, "store.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		BackendMemory: NewMemory(),
		BackendFile:   file,
		BackendSQLite: db,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get("nope")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestStore_SetOverwrite(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k", "one"))
			require.NoError(t, s.Set("k", "two"))
			require.NoError(t, s.Set("other", `["a","b"]`))

			v, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "two", v)

			v, ok, err = s.Get("other")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `["a","b"]`, v)
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("history", `["help"]`))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := second.Get("history")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["help"]`, v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = s.Get("history")
	assert.Error(t, err)

	// A write replaces the corrupt document.
	require.NoError(t, s.Set("history", "[]"))
	v, ok, err := s.Get("history")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestSQLiteStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("history", `["about"]`))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.Get("history")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["about"]`, v)
}

func TestStore_Closed(t *testing.T) {
	dir := t.TempDir()

	file, err := NewFileStore(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.ErrorIs(t, file.Set("k", "v"), ErrClosed)

	db, err := NewSQLiteStore(filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())
	_, _, err = db.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		path    string
		wantErr bool
	}{
		{"", "", false},
		{"memory", "", false},
		{"MEMORY", "", false},
		{"file", filepath.Join(dir, "a.json"), false},
		{"file", "", true},
		{"sqlite", filepath.Join(dir, "a.db"), false},
		{"sqlite", "", true},
		{"redis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend+"|"+tt.path, func(t *testing.T) {
			s, err := Open(tt.backend, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}
}
