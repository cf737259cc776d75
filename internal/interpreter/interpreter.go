// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package interpreter ties the command registry, history and completion
// together behind a presentation Surface.
package interpreter

import (
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/cmdconsole/internal/commands"
	"github.com/jeranaias/cmdconsole/internal/completion"
	"github.com/jeranaias/cmdconsole/internal/history"
	"github.com/jeranaias/cmdconsole/internal/kv"
	"github.com/jeranaias/cmdconsole/internal/logging"
)

const (
	// DefaultPrompt is the symbol echoed before submitted lines.
	DefaultPrompt = ">"

	// DefaultWelcome is written when the console starts.
	DefaultWelcome = "Command Console v1.0.0\nType \"help\" for available commands."

	// DefaultAbout is printed by the about command.
	DefaultAbout = "Command Console - A customizable command console for applications\nType \"help\" to see available commands."
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures an Interpreter.
type Options struct {
	// PromptSymbol is echoed before each submitted line. Defaults to ">".
	PromptSymbol string

	// WelcomeMessage is written at construction. Empty writes nothing.
	WelcomeMessage string

	// HistorySize bounds the history. Defaults to 100.
	HistorySize int

	// HistoryKey is the persistence key for history.
	HistoryKey string

	// Store persists history. Defaults to an in-memory store.
	Store kv.Store

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger logging.Logger

	// AboutText is printed by the about command.
	AboutText string
}

// DefaultOptions returns the options used by the console hosts.
func DefaultOptions() Options {
	return Options{
		PromptSymbol:   DefaultPrompt,
		WelcomeMessage: DefaultWelcome,
		HistorySize:    history.DefaultCapacity,
		HistoryKey:     history.DefaultKey,
		AboutText:      DefaultAbout,
	}
}

// =============================================================================
// INTERPRETER
// =============================================================================

// Interpreter executes submitted lines against registered commands.
//
// It is not safe for concurrent use; hosts deliver one event at a time.
type Interpreter struct {
	surface  Surface
	registry *commands.Registry
	history  *history.Store
	engine   *completion.Engine
	logger   logging.Logger

	id     string
	prompt string
	about  string
}

// New creates an Interpreter writing to surface. Saved history is restored,
// the default commands are registered and the welcome message is written.
func New(surface Surface, opts Options) *Interpreter {
	if opts.PromptSymbol == "" {
		opts.PromptSymbol = DefaultPrompt
	}
	if opts.AboutText == "" {
		opts.AboutText = DefaultAbout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	id := uuid.NewString()
	logger := opts.Logger.With("console", id)

	registry := commands.NewRegistry()
	in := &Interpreter{
		surface:  surface,
		registry: registry,
		history: history.New(opts.Store,
			history.WithCapacity(opts.HistorySize),
			history.WithKey(opts.HistoryKey),
			history.WithLogger(logger),
		),
		engine: completion.New(registry, logger),
		logger: logger,
		id:     id,
		prompt: opts.PromptSymbol,
		about:  opts.AboutText,
	}

	in.registerDefaults()

	if opts.WelcomeMessage != "" {
		in.WriteLine(opts.WelcomeMessage)
	}

	logger.Debug("console started", "history", in.history.Len(), "commands", registry.Len())
	return in
}

// ID returns the instance id used to tag log records.
func (in *Interpreter) ID() string {
	return in.id
}

// Registry returns the command registry.
func (in *Interpreter) Registry() *commands.Registry {
	return in.registry
}

// RegisterCommand adds or replaces a command.
func (in *Interpreter) RegisterCommand(name string, cmd commands.Command) {
	in.registry.Register(name, cmd)
}

// Prompt returns the prompt symbol.
func (in *Interpreter) Prompt() string {
	return in.prompt
}

// SetPrompt changes the prompt symbol. Empty values are ignored.
func (in *Interpreter) SetPrompt(symbol string) {
	if symbol != "" {
		in.prompt = symbol
	}
}

// =============================================================================
// EVENTS
// =============================================================================

// Submit records line in history and runs it. Blank lines are ignored.
// Recording comes first so a command that clears the history also clears
// its own line.
func (in *Interpreter) Submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	in.history.Record(line)
	in.engine.Reset()
	in.surface.SetInput("")

	in.ExecuteCommand(line)
}

// ExecuteCommand echoes and runs text without touching history.
func (in *Interpreter) ExecuteCommand(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	in.WriteLine(in.prompt + " " + text)

	parsed := in.registry.Parse(text)
	if !parsed.Found() {
		in.WriteLine("Command not found: " + parsed.CommandName)
		return
	}

	cmd := parsed.Command
	if err := cmd.Validate(parsed.Args); err != nil {
		in.WriteLine(fmt.Sprintf("Error: Invalid arguments for command '%s'", parsed.CommandName))
		in.WriteLine("Usage: " + cmd.Usage)
		return
	}

	if err := in.run(cmd, parsed.Args); err != nil {
		in.logger.Debug("command failed", "command", parsed.CommandName, "err", err)
		in.WriteLine(fmt.Sprintf("Error executing command '%s': %s", parsed.CommandName, err))
	}
}

// run executes cmd, converting a panic into an error.
func (in *Interpreter) run(cmd *commands.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
			in.logger.Error("command panicked", "command", cmd.Name, "panic", r)
		}
	}()
	return cmd.Action(args, in)
}

// NavigateHistory moves through history and updates the input line.
func (in *Interpreter) NavigateHistory(dir history.Direction) {
	current := in.surface.Input()
	next := in.history.Navigate(dir, current)
	if next == current {
		return
	}
	in.engine.Reset()
	in.surface.SetInput(next)
}

// HandleTabCompletion completes the input line.
func (in *Interpreter) HandleTabCompletion() {
	if out, changed := in.engine.Complete(in.surface.Input(), in); changed {
		in.surface.SetInput(out)
	}
}

// InputChanged tells the interpreter the input line now holds value.
func (in *Interpreter) InputChanged(value string) {
	in.engine.InputChanged(value)
}

// Candidates returns the full-line completions for line.
func (in *Interpreter) Candidates(line string) []string {
	return in.engine.Candidates(line, in)
}

// CompletionState returns the active completion cycle.
func (in *Interpreter) CompletionState() completion.State {
	return in.engine.State()
}

// =============================================================================
// CONSOLE
// =============================================================================

// Write appends text to the output.
func (in *Interpreter) Write(text string) {
	in.surface.Write(text)
}

// WriteLine appends text and a newline to the output.
func (in *Interpreter) WriteLine(text string) {
	in.surface.Write(text + "\n")
}

// ClearOutput clears the output area.
func (in *Interpreter) ClearOutput() {
	in.surface.ClearOutput()
}

// ClearHistory empties and persists the history.
func (in *Interpreter) ClearHistory() error {
	in.history.Clear()
	return nil
}

// Minimize hides the console.
func (in *Interpreter) Minimize() {
	in.surface.Minimize()
}

// Lookup finds a command by name, ignoring case.
func (in *Interpreter) Lookup(name string) (*commands.Command, bool) {
	return in.registry.Lookup(name)
}

// Commands yields commands in registration order.
func (in *Interpreter) Commands() iter.Seq[*commands.Command] {
	return in.registry.All()
}

// History returns the recorded lines, oldest first.
func (in *Interpreter) History() []string {
	return in.history.Entries()
}

var _ commands.Console = (*Interpreter)(nil)
