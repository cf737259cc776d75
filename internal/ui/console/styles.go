// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/cmdconsole/internal/config"
)

// =============================================================================
// PALETTE
// =============================================================================

type palette struct {
	background lipgloss.TerminalColor
	text       lipgloss.TerminalColor
	prompt     lipgloss.TerminalColor
	muted      lipgloss.TerminalColor
}

var (
	darkPalette = palette{
		background: lipgloss.Color("#000000"),
		text:       lipgloss.Color("#00ff00"),
		prompt:     lipgloss.Color("#00ff00"),
		muted:      lipgloss.Color("#5c5c5c"),
	}

	lightPalette = palette{
		background: lipgloss.Color("#fafafa"),
		text:       lipgloss.Color("#1e1e1e"),
		prompt:     lipgloss.Color("#007700"),
		muted:      lipgloss.Color("#9a9a9a"),
	}

	autoPalette = palette{
		background: lipgloss.AdaptiveColor{Light: "#fafafa", Dark: "#000000"},
		text:       lipgloss.AdaptiveColor{Light: "#1e1e1e", Dark: "#00ff00"},
		prompt:     lipgloss.AdaptiveColor{Light: "#007700", Dark: "#00ff00"},
		muted:      lipgloss.AdaptiveColor{Light: "#9a9a9a", Dark: "#5c5c5c"},
	}
)

func paletteFor(theme string) palette {
	switch theme {
	case "dark":
		return darkPalette
	case "light":
		return lightPalette
	default:
		return autoPalette
	}
}

// =============================================================================
// STYLES
// =============================================================================

// Styles holds the rendered look of the console.
type Styles struct {
	Box    lipgloss.Style
	Title  lipgloss.Style
	Output lipgloss.Style
	Prompt lipgloss.Style
	Text   lipgloss.Style
	Badge  lipgloss.Style
	Hint   lipgloss.Style
}

// NewStyles builds styles from the [ui] configuration. Explicit colors
// override the theme palette.
func NewStyles(ui config.UIConfig) Styles {
	p := paletteFor(ui.Theme)
	if ui.BackgroundColor != "" {
		p.background = lipgloss.Color(ui.BackgroundColor)
	}
	if ui.TextColor != "" {
		p.text = lipgloss.Color(ui.TextColor)
	}
	if ui.PromptColor != "" {
		p.prompt = lipgloss.Color(ui.PromptColor)
	}

	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Background(p.background),
		Title: lipgloss.NewStyle().
			Foreground(p.muted).
			Background(p.background).
			Bold(true),
		Output: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.background),
		Prompt: lipgloss.NewStyle().
			Foreground(p.prompt),
		Text: lipgloss.NewStyle().
			Foreground(p.text),
		Badge: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.background).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		Hint: lipgloss.NewStyle().
			Foreground(p.muted),
	}
}

// ColorProfile returns the profile to render with. NO_COLOR forces plain
// ASCII output.
func ColorProfile() termenv.Profile {
	if termenv.EnvNoColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}
