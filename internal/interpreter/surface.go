// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package interpreter

import (
	"strings"
)

// Surface is the presentation layer the interpreter drives.
type Surface interface {
	// Write appends text to the output area.
	Write(text string)

	// ClearOutput removes everything from the output area.
	ClearOutput()

	// Input returns the current contents of the input line.
	Input() string

	// SetInput replaces the contents of the input line.
	SetInput(value string)

	// Minimize hides the console.
	Minimize()
}

// =============================================================================
// BUFFER
// =============================================================================

// Buffer is a headless Surface that keeps output in memory.
type Buffer struct {
	output    strings.Builder
	input     string
	minimized bool
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Write(text string) {
	b.output.WriteString(text)
}

func (b *Buffer) ClearOutput() {
	b.output.Reset()
}

func (b *Buffer) Input() string {
	return b.input
}

func (b *Buffer) SetInput(value string) {
	b.input = value
}

func (b *Buffer) Minimize() {
	b.minimized = true
}

// Output returns everything written since the last clear.
func (b *Buffer) Output() string {
	return b.output.String()
}

// Lines returns the output split into lines, without the final empty line.
func (b *Buffer) Lines() []string {
	out := strings.TrimSuffix(b.output.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Minimized reports whether Minimize has been called.
func (b *Buffer) Minimized() bool {
	return b.minimized
}
