// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/cmdconsole/internal/commands"
	"github.com/jeranaias/cmdconsole/internal/interpreter"
	"github.com/jeranaias/cmdconsole/internal/util"
)

var themes = []string{"dark", "light", "auto"}

// historyLineWidth bounds entries printed by the history command.
const historyLineWidth = 72

// registerDemoCommands adds the commands shipped with the binary. setTheme
// is nil when the host has no colors to change.
func registerDemoCommands(interp *interpreter.Interpreter, setTheme func(string)) {
	interp.RegisterCommand("echo", commands.Command{
		Description: "Print the arguments",
		Usage:       "echo <text>",
		Action: func(args []string, c commands.Console) error {
			c.WriteLine(strings.Join(args, " "))
			return nil
		},
	})

	interp.RegisterCommand("theme", commands.Command{
		Description: "Switch the color theme",
		Usage:       "theme <dark|light|auto>",
		Validator: func(args []string) bool {
			return len(args) == 1 && validTheme(args[0])
		},
		TabComplete: func(partial string, _ []string, _ commands.Console, position int) ([]string, error) {
			if position != 1 {
				return nil, nil
			}
			var out []string
			for _, t := range themes {
				if strings.HasPrefix(t, strings.ToLower(partial)) {
					out = append(out, t)
				}
			}
			return out, nil
		},
		Action: func(args []string, c commands.Console) error {
			theme := strings.ToLower(args[0])
			if setTheme == nil {
				return errors.New("themes are not supported in line mode")
			}
			setTheme(theme)
			c.WriteLine("Theme set to " + theme + ".")
			return nil
		},
	})

	interp.RegisterCommand("history", commands.Command{
		Description: "List previous commands",
		Validator:   func(args []string) bool { return len(args) == 0 },
		Action: func(_ []string, c commands.Console) error {
			for i, entry := range c.History() {
				c.WriteLine(fmt.Sprintf("%4d  %s", i+1, util.TruncateWidth(entry, historyLineWidth)))
			}
			return nil
		},
	})
}

func validTheme(name string) bool {
	name = strings.ToLower(name)
	for _, t := range themes {
		if t == name {
			return true
		}
	}
	return false
}
