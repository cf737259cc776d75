// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cmdconsole/internal/config"
	"github.com/jeranaias/cmdconsole/internal/ui/console"
)

// runTUI runs the full-screen console. When the configuration came from a
// file, edits to it are applied live.
func runTUI(ctx context.Context, s *session) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lipgloss.SetColorProfile(console.ColorProfile())

	model := console.New(s.interpreterOptions(), s.cfg.UI)
	registerDemoCommands(model.Interpreter(), model.SetTheme)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if s.configPath != "" {
		err := config.Watch(ctx, s.configPath, config.DefaultDebounce, func(cfg *config.Config, err error) {
			p.Send(console.ConfigMsg{Config: cfg, Err: err})
		})
		if err != nil {
			s.logger.Warn("config watch disabled", "path", s.configPath, "err", err)
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}
