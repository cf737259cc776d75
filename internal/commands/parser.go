// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the command definitions and registry for the console.
package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing a submitted line.
type ParseResult struct {
	// Command is the matched command (nil if not found)
	Command *Command

	// CommandName is the lower-cased first token
	CommandName string

	// Args are the remaining tokens
	Args []string

	// RawInput is the trimmed input line
	RawInput string
}

// Found reports whether the line named a registered command.
func (p ParseResult) Found() bool {
	return p.Command != nil
}

// =============================================================================
// PARSER
// =============================================================================

// Parse splits a line into command name and arguments and looks the name up.
// An empty or blank line yields a zero CommandName.
func (r *Registry) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)

	result := ParseResult{
		RawInput: input,
	}

	parts := Tokenize(input)
	if len(parts) == 0 {
		return result
	}

	result.CommandName = Key(parts[0])
	result.Args = parts[1:]
	result.Command, _ = r.Lookup(result.CommandName)

	return result
}

// Tokenize splits a line on runs of whitespace.
func Tokenize(input string) []string {
	return strings.Fields(input)
}

// SplitForCompletion tokenizes a line for completion. Leading whitespace is
// ignored; trailing whitespace produces a final empty token so that "help "
// completes the first argument instead of the command name.
func SplitForCompletion(input string) []string {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	if input == "" {
		return []string{""}
	}

	parts := strings.Fields(input)
	if last, _ := utf8.DecodeLastRuneInString(input); unicode.IsSpace(last) {
		parts = append(parts, "")
	}
	return parts
}

// JoinTokens rebuilds a line from tokens separated by single spaces.
func JoinTokens(parts []string) string {
	return strings.Join(parts, " ")
}

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError represents an argument validation error.
type ValidationError struct {
	Command string
	Message string
	Usage   string
}

func (e *ValidationError) Error() string {
	msg := e.Command + ": " + e.Message
	if e.Usage != "" {
		msg += " - usage: " + e.Usage
	}
	return msg
}
