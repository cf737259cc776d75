// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the command definitions and registry for the console.
package commands

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// ActionFunc executes a command with its parsed arguments.
type ActionFunc func(args []string, c Console) error

// ValidatorFunc reports whether args are acceptable for a command.
type ValidatorFunc func(args []string) bool

// CompleteFunc returns candidates for the argument being typed.
//
// partial is the last token of the line, preceding holds the tokens between the
// command name and partial, and position is the 1-based index of partial.
// A nil or empty result means no suggestions.
type CompleteFunc func(partial string, preceding []string, c Console, position int) ([]string, error)

// Command represents a console command that can be executed.
type Command struct {
	// Name is the command name as registered (e.g., "clearHistory")
	Name string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "theme <name>"). Defaults to Name.
	Usage string

	// Action is the function that executes the command. Defaults to a no-op.
	Action ActionFunc

	// Validator rejects bad arguments before Action runs (optional)
	Validator ValidatorFunc

	// TabComplete provides argument completions (optional)
	TabComplete CompleteFunc
}

// Validate runs the command's validator, if any.
func (c *Command) Validate(args []string) error {
	if c.Validator == nil || c.Validator(args) {
		return nil
	}
	return &ValidationError{
		Command: c.Name,
		Message: "invalid arguments",
		Usage:   c.Usage,
	}
}

// CanComplete reports whether the command offers argument completion.
func (c *Command) CanComplete() bool {
	return c.TabComplete != nil
}

// =============================================================================
// CONSOLE CONTEXT
// =============================================================================

// Console is the interpreter surface handed to command actions and completers.
type Console interface {
	// Write appends text to the output without a trailing newline.
	Write(text string)

	// WriteLine appends text followed by a newline.
	WriteLine(text string)

	// ClearOutput clears the visible output. History is untouched.
	ClearOutput()

	// ClearHistory empties the command history.
	ClearHistory() error

	// Minimize asks the presentation layer to hide the console.
	Minimize()

	// Lookup finds a registered command by name (case-insensitive).
	Lookup(name string) (*Command, bool)

	// Commands yields registered commands in registration order.
	Commands() iter.Seq[*Command]

	// History returns recorded lines, oldest first.
	History() []string
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	order    []string
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// Key normalizes a command name to its registry key.
func Key(name string) string {
	return cases.Lower(language.Und).String(name)
}

// Register stores cmd under the lower-cased name, replacing any previous
// definition. A replaced command keeps its original position in the listing.
func (r *Registry) Register(name string, cmd Command) {
	cmd.Name = name
	if cmd.Usage == "" {
		cmd.Usage = name
	}
	if cmd.Action == nil {
		cmd.Action = func([]string, Console) error { return nil }
	}

	key := Key(name)
	if _, exists := r.commands[key]; !exists {
		r.order = append(r.order, key)
	}
	r.commands[key] = &cmd
}

// Lookup retrieves a command by name, ignoring case.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[Key(name)]
	return cmd, ok
}

// All yields registered commands in registration order.
func (r *Registry) All() iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		for _, key := range r.order {
			if !yield(r.commands[key]) {
				return
			}
		}
	}
}

// Names returns the registry keys in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Match returns the registry keys starting with prefix, ignoring case.
func (r *Registry) Match(prefix string) []string {
	prefix = Key(prefix)

	var matches []string
	for _, key := range r.order {
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, key)
		}
	}
	return matches
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}
