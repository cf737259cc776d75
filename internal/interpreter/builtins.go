// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package interpreter

import (
	"strings"

	"github.com/jeranaias/cmdconsole/internal/commands"
)

// registerDefaults installs the built-in commands.
func (in *Interpreter) registerDefaults() {
	in.RegisterCommand("help", commands.Command{
		Description: "Display available commands",
		Usage:       "help [command]",
		Action:      helpAction,
		TabComplete: completeCommandName,
	})

	in.RegisterCommand("clear", commands.Command{
		Description: "Clear the console screen",
		Action: func(_ []string, c commands.Console) error {
			c.ClearOutput()
			return nil
		},
	})

	in.RegisterCommand("about", commands.Command{
		Description: "Display information about the console",
		Action: func(_ []string, c commands.Console) error {
			c.WriteLine(in.about)
			return nil
		},
	})

	in.RegisterCommand("clearHistory", commands.Command{
		Description: "Clear the command history",
		Action: func(_ []string, c commands.Console) error {
			if err := c.ClearHistory(); err != nil {
				return err
			}
			c.WriteLine("History cleared.")
			return nil
		},
	})

	in.RegisterCommand("exit", commands.Command{
		Description: "Minimises the console",
		Action: func(_ []string, c commands.Console) error {
			c.Minimize()
			return nil
		},
	})
}

func helpAction(args []string, c commands.Console) error {
	if len(args) > 0 {
		name := commands.Key(args[0])
		cmd, ok := c.Lookup(name)
		if !ok {
			c.WriteLine("Command not found: " + name)
			return nil
		}
		c.WriteLine(cmd.Name + ": " + cmd.Description)
		c.WriteLine("Usage: " + cmd.Usage)
		return nil
	}

	c.WriteLine("Available commands:")
	for cmd := range c.Commands() {
		c.WriteLine("  " + cmd.Name + ": " + cmd.Description)
	}
	c.WriteLine("\nType \"help <command>\" for more information about a specific command.")
	return nil
}

// completeCommandName offers command names for the first help argument.
func completeCommandName(partial string, _ []string, c commands.Console, position int) ([]string, error) {
	if position != 1 {
		return nil, nil
	}

	prefix := commands.Key(partial)
	var names []string
	for cmd := range c.Commands() {
		if key := commands.Key(cmd.Name); strings.HasPrefix(key, prefix) {
			names = append(names, key)
		}
	}
	return names, nil
}
