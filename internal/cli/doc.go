// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the cmdconsole command line.
//
// # Commands
//
//	cmdconsole [--config PATH] [--line] [--store memory|file|sqlite]
//	           [--store-path PATH] [--history-size N]
//	cmdconsole history list [-n N]
//	cmdconsole history clear
//	cmdconsole config path
//	cmdconsole config init [--force]
//	cmdconsole version
//
// # Hosts
//
// The bare command opens the full-screen console when stdin and stdout are
// terminals. With --line, or when either end is redirected, the line host
// runs instead: liner provides editing and tab completion on a terminal,
// and piped input is submitted one line at a time until exit or EOF.
package cli
