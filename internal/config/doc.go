// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for cmdconsole.
//
// # Key Types
//
//   - Config: main configuration structure
//   - ConsoleConfig: prompt, welcome message and history settings
//   - StorageConfig: persistence backend selection
//   - UIConfig: colors and size of the full-screen console
//   - LoggingConfig: diagnostic log settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CMDCONSOLE_*)
//   - ~/.cmdconsole/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Follow edits to the file:
//
//	err = config.Watch(ctx, path, 0, func(cfg *config.Config, err error) {
//	    // apply cfg.UI and cfg.Console.PromptSymbol
//	})
package config
