// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the command definitions and registry for the console.
//
// Commands are registered by name into a Registry. Names are matched without
// regard to case; the registry keeps the lower-cased form as its key and
// remembers registration order for help listings and completion.
//
// # Key Types
//
//   - Command: Action, optional Validator and TabComplete callables
//   - Registry: Name-keyed command store
//   - Console: Capabilities handed to actions and completers
//   - ParseResult: Parsed command name and arguments
//
// # Usage
//
// Register and look up a command:
//
//	reg := commands.NewRegistry()
//	reg.Register("Echo", commands.Command{
//	    Description: "Print arguments",
//	    Action: func(args []string, c commands.Console) error {
//	        c.WriteLine(strings.Join(args, " "))
//	        return nil
//	    },
//	})
//	cmd, ok := reg.Lookup("ECHO") // same definition
package commands
