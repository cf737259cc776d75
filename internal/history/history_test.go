// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cmdconsole/internal/kv"
)

// =============================================================================
// RECORD TESTS
// =============================================================================

func TestRecord_SuppressesAdjacentDuplicates(t *testing.T) {
	s := New(nil)

	s.Record("help")
	s.Record("help")
	assert.Equal(t, []string{"help"}, s.Entries())

	s.Record("about")
	s.Record("help")
	assert.Equal(t, []string{"help", "about", "help"}, s.Entries())
}

func TestRecord_IgnoresEmpty(t *testing.T) {
	s := New(nil)
	s.Record("")
	assert.Equal(t, 0, s.Len())
}

func TestRecord_EvictsOldest(t *testing.T) {
	s := New(nil, WithCapacity(3))
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		s.Record(line)
	}
	assert.Equal(t, []string{"c", "d", "e"}, s.Entries())
	assert.Equal(t, 3, s.Capacity())
}

func TestRecord_ResetsCursor(t *testing.T) {
	s := New(nil)
	s.Record("a")
	s.Record("b")
	s.Navigate(Older, "")
	require.True(t, s.Navigating())

	s.Record("b") // suppressed duplicate still ends navigation
	assert.Equal(t, -1, s.Cursor())
	assert.Equal(t, 2, s.Len())
}

func TestRecord_InvariantsHoldForRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{"help", "about", "clear", "exit", ""}

	for capacity := 1; capacity <= 5; capacity++ {
		s := New(nil, WithCapacity(capacity))
		for i := 0; i < 500; i++ {
			s.Record(words[rng.Intn(len(words))])

			entries := s.Entries()
			require.LessOrEqual(t, len(entries), capacity)
			for j := 1; j < len(entries); j++ {
				require.NotEqual(t, entries[j-1], entries[j], "adjacent duplicate at %d", j)
			}
		}
	}
}

// =============================================================================
// NAVIGATION TESTS
// =============================================================================

func TestNavigate_NoHistoryIsNoop(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "typing", s.Navigate(Older, "typing"))
	assert.Equal(t, "typing", s.Navigate(Newer, "typing"))
	assert.Equal(t, -1, s.Cursor())
}

func TestNavigate_OrderAndClamp(t *testing.T) {
	s := New(nil)
	s.Record("first")
	s.Record("second")
	s.Record("third")

	assert.Equal(t, "third", s.Navigate(Older, "draft"))
	assert.Equal(t, "second", s.Navigate(Older, "third"))
	assert.Equal(t, "first", s.Navigate(Older, "second"))
	// clamped at the oldest entry
	assert.Equal(t, "first", s.Navigate(Older, "first"))
	assert.Equal(t, 2, s.Cursor())

	assert.Equal(t, "second", s.Navigate(Newer, "first"))
	assert.Equal(t, "third", s.Navigate(Newer, "second"))
	assert.Equal(t, "draft", s.Navigate(Newer, "third"))
	assert.Equal(t, -1, s.Cursor())

	// newer while live leaves the input alone
	assert.Equal(t, "edited", s.Navigate(Newer, "edited"))
}

func TestNavigate_RoundTripRestoresDraft(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("entries=%d", n), func(t *testing.T) {
			s := New(nil)
			for i := 0; i < n; i++ {
				s.Record(fmt.Sprintf("cmd%d", i))
			}

			input := "half-typed"
			for i := 0; i < n; i++ {
				input = s.Navigate(Older, input)
			}
			assert.Equal(t, "cmd0", input)
			for i := 0; i < n; i++ {
				input = s.Navigate(Newer, input)
			}
			assert.Equal(t, "half-typed", input)
			assert.False(t, s.Navigating())
		})
	}
}

func TestClear(t *testing.T) {
	store := kv.NewMemory()
	s := New(store)
	s.Record("a")
	s.Record("b")
	s.Navigate(Older, "x")

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, -1, s.Cursor())
	assert.Equal(t, "x", s.Navigate(Older, "x"))

	raw, ok, err := store.Get(DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestPersistence_RoundTrip(t *testing.T) {
	store := kv.NewMemory()

	s := New(store, WithKey("test.history"))
	s.Record("help")
	s.Record("about")

	raw, ok, err := store.Get("test.history")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["help","about"]`, raw)

	restored := New(store, WithKey("test.history"))
	assert.Equal(t, []string{"help", "about"}, restored.Entries())
}

func TestPersistence_TruncatesToCapacity(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(DefaultKey, `["a","b","c","d"]`))

	s := New(store, WithCapacity(2))
	assert.Equal(t, []string{"c", "d"}, s.Entries())
}

func TestPersistence_CollapsesStoredDuplicates(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(DefaultKey, `["a","a","","b","b","a"]`))

	s := New(store)
	assert.Equal(t, []string{"a", "b", "a"}, s.Entries())
}

func TestPersistence_MalformedIsEmpty(t *testing.T) {
	tests := []string{
		`not json`,
		`{"a":1}`,
		`[1,2,3]`,
		`"help"`,
	}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			store := kv.NewMemory()
			require.NoError(t, store.Set(DefaultKey, raw))

			s := New(store)
			assert.Equal(t, 0, s.Len())

			s.Record("help")
			assert.Equal(t, []string{"help"}, s.Entries())
		})
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingStore) Set(string, string) error         { return errors.New("disk on fire") }
func (failingStore) Close() error                     { return nil }

func TestPersistence_StoreErrorsAreSoft(t *testing.T) {
	s := New(failingStore{})
	assert.Equal(t, 0, s.Len())

	s.Record("help")
	assert.Equal(t, []string{"help"}, s.Entries())
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestPersistence_SQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.db")

	store, err := kv.NewSQLiteStore(path)
	require.NoError(t, err)
	s := New(store)
	s.Record("help")
	s.Record("exit")
	require.NoError(t, store.Close())

	store, err = kv.NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, []string{"help", "exit"}, New(store).Entries())
}
