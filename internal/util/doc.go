// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the console packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync, used by the
//     file store and config saving
//
// String Utilities:
//   - TruncateWidth: column-aware truncation with ellipsis
//   - StringWidth: column-aware measuring
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0600)
//
//	line := util.TruncateWidth(entry, 40)
package util
