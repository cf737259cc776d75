// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides the bounded, persisted command history.
package history

import (
	"encoding/json"

	"github.com/jeranaias/cmdconsole/internal/kv"
	"github.com/jeranaias/cmdconsole/internal/logging"
)

const (
	// DefaultCapacity is the number of entries kept when no capacity is given.
	DefaultCapacity = 100

	// DefaultKey is the store key holding the serialized history.
	DefaultKey = "console.history"
)

// Direction selects the navigation movement.
type Direction int

const (
	// Older moves toward the oldest entry (arrow up).
	Older Direction = iota
	// Newer moves back toward live input (arrow down).
	Newer
)

func (d Direction) String() string {
	if d == Older {
		return "older"
	}
	return "newer"
}

// =============================================================================
// STORE
// =============================================================================

// Store is a duplicate-suppressing log of submitted lines, oldest first.
//
// The cursor is -1 while the user is editing live input, 0 for the most
// recent entry, and grows toward older entries.
type Store struct {
	entries  []string
	capacity int
	cursor   int
	pending  string

	store  kv.Store
	key    string
	logger logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity bounds the number of entries. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithKey sets the store key used for persistence.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger for persistence diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store persisted through store and restores saved entries.
// A nil store keeps history in memory only.
func New(store kv.Store, opts ...Option) *Store {
	if store == nil {
		store = kv.NewMemory()
	}

	s := &Store{
		capacity: DefaultCapacity,
		cursor:   -1,
		store:    store,
		key:      DefaultKey,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.restore()
	return s
}

// Record appends line unless it is empty or repeats the last entry.
// Navigation always returns to live input.
func (s *Store) Record(line string) {
	defer s.Reset()

	if line == "" {
		return
	}
	if n := len(s.entries); n > 0 && s.entries[n-1] == line {
		return
	}

	s.entries = append(s.entries, line)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
	s.persist()
}

// Navigate moves through history and returns the text the input should show.
// current is the live input; it is saved when navigation starts and given
// back once the user moves past the most recent entry.
func (s *Store) Navigate(dir Direction, current string) string {
	if len(s.entries) == 0 {
		return current
	}

	switch dir {
	case Older:
		if s.cursor == -1 {
			s.pending = current
		}
		if s.cursor >= len(s.entries)-1 {
			return current
		}
		s.cursor++
		return s.entries[len(s.entries)-1-s.cursor]

	case Newer:
		switch {
		case s.cursor > 0:
			s.cursor--
			return s.entries[len(s.entries)-1-s.cursor]
		case s.cursor == 0:
			s.cursor = -1
			return s.pending
		}
	}

	return current
}

// Clear removes every entry and persists the empty history.
func (s *Store) Clear() {
	s.entries = nil
	s.Reset()
	s.persist()
}

// Reset returns navigation to live input and drops the saved draft.
func (s *Store) Reset() {
	s.cursor = -1
	s.pending = ""
}

// Entries returns a copy of the entries, oldest first.
func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Capacity returns the maximum number of entries.
func (s *Store) Capacity() int {
	return s.capacity
}

// Cursor returns the navigation position (-1 when live).
func (s *Store) Cursor() int {
	return s.cursor
}

// Navigating reports whether the user is browsing history.
func (s *Store) Navigating() bool {
	return s.cursor >= 0
}

// =============================================================================
// PERSISTENCE
// =============================================================================

func (s *Store) persist() {
	entries := s.entries
	if entries == nil {
		entries = []string{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Error("failed to encode history", "err", err)
		return
	}
	if err := s.store.Set(s.key, string(data)); err != nil {
		s.logger.Warn("failed to save history", "key", s.key, "err", err)
	}
}

// restore loads saved entries. Anything unreadable yields an empty history.
func (s *Store) restore() {
	raw, ok, err := s.store.Get(s.key)
	if err != nil {
		s.logger.Warn("failed to load history", "key", s.key, "err", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var saved []string
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		s.logger.Warn("failed to parse history", "key", s.key, "err", err)
		return
	}

	entries := make([]string, 0, len(saved))
	for _, line := range saved {
		if line == "" {
			continue
		}
		if n := len(entries); n > 0 && entries[n-1] == line {
			continue
		}
		entries = append(entries, line)
	}
	if len(entries) > s.capacity {
		entries = entries[len(entries)-s.capacity:]
	}
	s.entries = entries
}
