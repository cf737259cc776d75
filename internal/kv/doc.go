// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides the key-value persistence backends used by the console.
//
// The console core only needs get/set of string values under a fixed key, so
// every backend implements the small Store interface:
//
//   - Memory: process-local map (default, nothing survives a restart)
//   - FileStore: one JSON object file, replaced atomically on every write
//   - SQLiteStore: a kv table in a SQLite database (pure Go driver)
//
// Open selects a backend by name:
//
//	store, err := kv.Open(kv.BackendSQLite, "/home/me/.cmdconsole/console.db")
package kv
