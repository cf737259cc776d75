// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package completion implements tab completion with candidate cycling.
package completion

import (
	"fmt"

	"github.com/jeranaias/cmdconsole/internal/commands"
	"github.com/jeranaias/cmdconsole/internal/logging"
)

// =============================================================================
// STATE
// =============================================================================

// Mode identifies what an active completion cycle is completing.
type Mode int

const (
	// ModeNone means no cycle is active.
	ModeNone Mode = iota
	// ModeCommand cycles through command names.
	ModeCommand
	// ModeArgument cycles through candidates from a command's completer.
	ModeArgument
)

func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "command"
	case ModeArgument:
		return "argument"
	default:
		return "none"
	}
}

// State describes the active completion cycle. The zero value is inactive.
type State struct {
	Mode       Mode
	Candidates []string
	Index      int

	// Key identifies the cycle: the partial name in command mode, or
	// "<command>-<position>-<partial>" in argument mode.
	Key string

	// OriginalInput is the line as it was before the cycle started.
	OriginalInput string
}

// Active reports whether a cycle is in progress.
func (s State) Active() bool {
	return s.Mode != ModeNone
}

// Current returns the candidate currently applied.
func (s State) Current() string {
	if !s.Active() || len(s.Candidates) == 0 {
		return ""
	}
	return s.Candidates[s.Index]
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine completes command names and arguments against a registry.
//
// Repeated completion of the same ambiguous input steps through the
// candidates. Any edit the engine did not make ends the cycle.
type Engine struct {
	registry *commands.Registry
	logger   logging.Logger

	state       State
	lastWritten string
}

// New creates an Engine for registry.
func New(registry *commands.Registry, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// State returns a copy of the current cycle state.
func (e *Engine) State() State {
	s := e.state
	if s.Candidates != nil {
		s.Candidates = append([]string(nil), s.Candidates...)
	}
	return s
}

// Reset ends any active cycle.
func (e *Engine) Reset() {
	e.state = State{}
	e.lastWritten = ""
}

// InputChanged ends the active cycle when value is not the text the engine
// last wrote into the input.
func (e *Engine) InputChanged(value string) {
	if e.state.Active() && value != e.lastWritten {
		e.Reset()
	}
}

// Complete computes the completion for input and returns the new input and
// whether it differs from input.
func (e *Engine) Complete(input string, c commands.Console) (string, bool) {
	e.InputChanged(input)

	base := input
	if e.state.Active() {
		base = e.state.OriginalInput
	}

	parts := commands.SplitForCompletion(base)
	if len(parts) == 1 {
		return e.completeCommand(input, base, parts[0])
	}
	return e.completeArgument(input, base, parts, c)
}

// Candidates returns every full-line completion for input without touching
// the cycle state.
func (e *Engine) Candidates(input string, c commands.Console) []string {
	parts := commands.SplitForCompletion(input)
	if len(parts) == 1 {
		if parts[0] == "" {
			return nil
		}
		return e.registry.Match(parts[0])
	}

	candidates, ok := e.argumentCandidates(parts, c)
	if !ok {
		return nil
	}

	lines := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		lines = append(lines, replaceLast(parts, candidate))
	}
	return lines
}

// =============================================================================
// COMMAND NAMES
// =============================================================================

func (e *Engine) completeCommand(input, base, partial string) (string, bool) {
	if partial == "" {
		return input, false
	}

	if e.state.Mode == ModeCommand && e.state.Key == partial {
		return e.advance(input)
	}

	matches := e.registry.Match(partial)
	switch len(matches) {
	case 0:
		return input, false
	case 1:
		e.Reset()
		return matches[0], matches[0] != input
	}

	e.state = State{
		Mode:          ModeCommand,
		Candidates:    matches,
		Key:           partial,
		OriginalInput: base,
	}
	return e.apply(input, matches[0])
}

// =============================================================================
// ARGUMENTS
// =============================================================================

func (e *Engine) completeArgument(input, base string, parts []string, c commands.Console) (string, bool) {
	last := len(parts) - 1
	key := fmt.Sprintf("%s-%d-%s", commands.Key(parts[0]), last, parts[last])

	if e.state.Mode == ModeArgument && e.state.Key == key {
		return e.advanceArgument(input, parts)
	}

	candidates, ok := e.argumentCandidates(parts, c)
	if !ok {
		return input, false
	}

	if len(candidates) == 1 {
		e.Reset()
		line := replaceLast(parts, candidates[0])
		return line, line != input
	}

	e.state = State{
		Mode:          ModeArgument,
		Candidates:    append([]string(nil), candidates...),
		Key:           key,
		OriginalInput: base,
	}
	return e.apply(input, replaceLast(parts, candidates[0]))
}

func (e *Engine) advanceArgument(input string, parts []string) (string, bool) {
	e.state.Index = (e.state.Index + 1) % len(e.state.Candidates)
	return e.apply(input, replaceLast(parts, e.state.Current()))
}

// argumentCandidates asks the named command's completer for candidates.
// ok is false when there is nothing to offer.
func (e *Engine) argumentCandidates(parts []string, c commands.Console) ([]string, bool) {
	cmd, found := e.registry.Lookup(parts[0])
	if !found || !cmd.CanComplete() {
		return nil, false
	}

	last := len(parts) - 1
	candidates, err := invoke(cmd, parts[last], parts[1:last], c, last)
	if err != nil {
		e.logger.Warn("completion handler failed",
			"command", cmd.Name, "position", last, "err", err)
		return nil, false
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates, true
}

// invoke runs a completer, converting a panic into an error.
func invoke(cmd *commands.Command, partial string, preceding []string, c commands.Console, position int) (candidates []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in completer: %v", r)
		}
	}()

	// Completers get their own copy so they cannot disturb the line.
	args := append([]string(nil), preceding...)
	return cmd.TabComplete(partial, args, c, position)
}

// =============================================================================
// HELPERS
// =============================================================================

// advance moves a command-name cycle to its next candidate.
func (e *Engine) advance(input string) (string, bool) {
	e.state.Index = (e.state.Index + 1) % len(e.state.Candidates)
	return e.apply(input, e.state.Current())
}

func (e *Engine) apply(input, line string) (string, bool) {
	e.lastWritten = line
	return line, line != input
}

func replaceLast(parts []string, value string) string {
	out := append([]string(nil), parts...)
	out[len(out)-1] = value
	return commands.JoinTokens(out)
}
