// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console provides the full-screen Bubble Tea host for the command
// console.
package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cmdconsole/internal/config"
	"github.com/jeranaias/cmdconsole/internal/history"
	"github.com/jeranaias/cmdconsole/internal/interpreter"
	"github.com/jeranaias/cmdconsole/internal/logging"
	"github.com/jeranaias/cmdconsole/internal/util"
)

const title = "Command Console"

// ConfigMsg delivers a reloaded configuration to the model.
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the console. It is also the
// interpreter's Surface, so command output lands in its viewport.
type Model struct {
	interp *interpreter.Interpreter
	logger logging.Logger

	keys   KeyMap
	styles Styles
	ui     config.UIConfig

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	output   strings.Builder

	width  int
	height int
	hidden bool
}

// New creates a console model. opts configures the interpreter and ui the
// appearance.
func New(opts interpreter.Options, ui config.UIConfig) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	input := textinput.New()
	input.Focus()

	m := &Model{
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		styles:   NewStyles(ui),
		ui:       ui,
		input:    input,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		hidden:   ui.StartHidden,
	}
	m.interp = interpreter.New(m, opts)
	m.applyPrompt()
	return m
}

// Interpreter returns the interpreter driven by the model.
func (m *Model) Interpreter() *interpreter.Interpreter {
	return m.interp
}

// Hidden reports whether the console is minimized.
func (m *Model) Hidden() bool {
	return m.hidden
}

// Output returns the raw output text.
func (m *Model) Output() string {
	return m.output.String()
}

// =============================================================================
// SURFACE
// =============================================================================

// Write appends text to the output and scrolls to the bottom.
func (m *Model) Write(text string) {
	m.output.WriteString(text)
	m.syncViewport()
}

// ClearOutput empties the output.
func (m *Model) ClearOutput() {
	m.output.Reset()
	m.syncViewport()
}

// Input returns the input line.
func (m *Model) Input() string {
	return m.input.Value()
}

// SetInput replaces the input line and moves the cursor to its end.
func (m *Model) SetInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

// Minimize hides the console until the toggle key is pressed.
func (m *Model) Minimize() {
	m.hidden = true
}

var _ interpreter.Surface = (*Model)(nil)

// =============================================================================
// BUBBLE TEA
// =============================================================================

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case ConfigMsg:
		m.applyConfig(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.hidden = !m.hidden
		if !m.hidden {
			return m, m.input.Focus()
		}
		return m, nil
	}

	if m.hidden {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		m.interp.Submit(m.input.Value())
		return m, nil

	case key.Matches(msg, m.keys.Older):
		m.interp.NavigateHistory(history.Older)
		return m, nil

	case key.Matches(msg, m.keys.Newer):
		m.interp.NavigateHistory(history.Newer)
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		m.interp.HandleTabCompletion()
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.interp.InputChanged(after)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.hidden {
		return m.styles.Badge.Render(">_ " + m.keys.Toggle.Help().Key)
	}

	innerWidth := m.viewport.Width
	header := m.styles.Title.Render(util.TruncateWidth(title, max(innerWidth, 1)))
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.input.View(),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)
	return m.styles.Box.Render(body)
}

// =============================================================================
// LAYOUT AND APPEARANCE
// =============================================================================

// layout sizes the widgets to the terminal and the configured bounds.
func (m *Model) layout() {
	w, h := m.width, m.height
	if m.ui.Width > 0 && m.ui.Width < w {
		w = m.ui.Width
	}
	if m.ui.Height > 0 && m.ui.Height < h {
		h = m.ui.Height
	}

	innerWidth := max(w-m.styles.Box.GetHorizontalFrameSize(), 1)
	// title, input line and key hints
	innerHeight := max(h-m.styles.Box.GetVerticalFrameSize()-3, 1)

	m.viewport.Width = innerWidth
	m.help.Width = innerWidth
	m.viewport.Height = innerHeight
	m.input.Width = max(innerWidth-util.StringWidth(m.input.Prompt)-1, 1)
	m.syncViewport()
}

func (m *Model) syncViewport() {
	content := strings.TrimSuffix(m.output.String(), "\n")
	if m.viewport.Width > 0 {
		content = m.styles.Output.Width(m.viewport.Width).Render(content)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *Model) applyPrompt() {
	m.input.Prompt = m.interp.Prompt() + " "
	m.input.PromptStyle = m.styles.Prompt
	m.input.TextStyle = m.styles.Text
}

// SetTheme switches the color theme ("dark", "light" or "auto").
func (m *Model) SetTheme(theme string) {
	m.ui.Theme = theme
	m.styles = NewStyles(m.ui)
	m.applyPrompt()
	m.layout()
}

// applyConfig updates the prompt symbol and appearance from a reload.
func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed", "err", msg.Err)
		return
	}
	if msg.Config == nil {
		return
	}

	m.ui = msg.Config.UI
	m.styles = NewStyles(m.ui)
	m.interp.SetPrompt(msg.Config.Console.PromptSymbol)
	m.applyPrompt()
	m.layout()
	m.logger.Info("appearance updated", "theme", m.ui.Theme, "prompt", m.interp.Prompt())
}
