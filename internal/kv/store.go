// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides the key-value persistence backends used by the console.
package kv

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store is closed")

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Close releases resources held by the store.
	Close() error
}

// =============================================================================
// BACKEND SELECTION
// =============================================================================

const (
	// BackendMemory keeps values in process memory only.
	BackendMemory = "memory"
	// BackendFile keeps values in a single JSON document.
	BackendFile = "file"
	// BackendSQLite keeps values in a SQLite table.
	BackendSQLite = "sqlite"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendSQLite}
}

// Open creates a store for the named backend. path is ignored for memory.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		if path == "" {
			return nil, fmt.Errorf("kv: file backend requires a path")
		}
		return NewFileStore(path)
	case BackendSQLite:
		if path == "" {
			return nil, fmt.Errorf("kv: sqlite backend requires a path")
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("kv: unknown backend %q (want one of %s)", backend, strings.Join(Backends(), ", "))
	}
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
