// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"

	"github.com/jeranaias/cmdconsole/internal/interpreter"
)

// =============================================================================
// LINE SURFACE
// =============================================================================

// lineSurface prints output straight to a writer. The input line is owned
// by the line editor, so only the last submitted value is tracked.
type lineSurface struct {
	out   io.Writer
	term  *termenv.Output
	tty   bool
	input string
	done  bool
}

func newLineSurface(out io.Writer, tty bool) *lineSurface {
	return &lineSurface{out: out, term: termenv.NewOutput(out), tty: tty}
}

func (s *lineSurface) Write(text string) {
	fmt.Fprint(s.out, text)
}

func (s *lineSurface) ClearOutput() {
	if s.tty {
		s.term.ClearScreen()
	}
}

func (s *lineSurface) Input() string {
	return s.input
}

func (s *lineSurface) SetInput(value string) {
	s.input = value
}

// Minimize ends the line session; there is no hidden state to return to.
func (s *lineSurface) Minimize() {
	s.done = true
}

// =============================================================================
// REPL
// =============================================================================

// runLine runs the console without the full-screen UI. With a terminal on
// both ends it uses liner for editing, history and tab completion;
// otherwise every line of in is submitted in order.
func runLine(s *session, in io.Reader, out io.Writer) error {
	tty := isTerminal(in) && isTerminal(out)
	surface := newLineSurface(out, tty)

	interp := interpreter.New(surface, s.interpreterOptions())
	registerDemoCommands(interp, nil)

	if tty {
		return runLiner(interp, surface)
	}
	return runScanner(interp, surface, in)
}

// runLiner reads lines interactively until exit, Ctrl+C or EOF.
func runLiner(interp *interpreter.Interpreter, surface *lineSurface) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabCircular)
	line.SetCompleter(interp.Candidates)
	syncHistory(line, interp.History())

	for !surface.done {
		text, err := line.Prompt(interp.Prompt() + " ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(surface.out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		// The interpreter echoes the line itself.
		surface.term.CursorPrevLine(1)
		surface.term.ClearLine()
		surface.SetInput(text)
		interp.Submit(text)

		syncHistory(line, interp.History())
	}
	return nil
}

// historyEditor is the part of the line editor that keeps arrow-key history.
type historyEditor interface {
	ClearHistory()
	AppendHistory(item string)
}

// syncHistory replaces the editor's history with entries, so commands that
// change the console history (clearHistory, eviction) show up on the arrow keys.
func syncHistory(ed historyEditor, entries []string) {
	ed.ClearHistory()
	for _, entry := range entries {
		ed.AppendHistory(entry)
	}
}

// runScanner submits each line of in until exit or EOF.
func runScanner(interp *interpreter.Interpreter, surface *lineSurface, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for !surface.done && scanner.Scan() {
		surface.SetInput(scanner.Text())
		interp.Submit(surface.Input())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
