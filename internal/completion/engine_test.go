// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cmdconsole/internal/commands"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type completerCall struct {
	partial   string
	preceding []string
	position  int
	console   commands.Console
}

// newTestRegistry registers help, hello, clear, clearHistory and a theme
// command whose completer offers dark, dracula and light.
func newTestRegistry(calls *[]completerCall) *commands.Registry {
	r := commands.NewRegistry()
	r.Register("help", commands.Command{})
	r.Register("hello", commands.Command{})
	r.Register("clear", commands.Command{})
	r.Register("clearHistory", commands.Command{})
	r.Register("theme", commands.Command{
		TabComplete: func(partial string, preceding []string, c commands.Console, position int) ([]string, error) {
			if calls != nil {
				*calls = append(*calls, completerCall{partial, preceding, position, c})
			}
			var out []string
			for _, name := range []string{"dark", "dracula", "light"} {
				if strings.HasPrefix(name, partial) {
					out = append(out, name)
				}
			}
			return out, nil
		},
	})
	return r
}

// tab completes input the way a host does: apply the result, then report
// the change back to the engine.
func tab(e *Engine, input string) string {
	out, _ := e.Complete(input, nil)
	e.InputChanged(out)
	return out
}

// =============================================================================
// COMMAND NAME TESTS
// =============================================================================

func TestComplete_SingleCommandMatch(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	out, changed := e.Complete("th", nil)
	assert.True(t, changed)
	assert.Equal(t, "theme", out)
	assert.False(t, e.State().Active())
	assert.Empty(t, e.State().Current())
}

func TestComplete_CaseInsensitivePrefix(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	out, _ := e.Complete("CLEARH", nil)
	assert.Equal(t, "clearhistory", out)
}

func TestComplete_NoMatchIsNoop(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	out, changed := e.Complete("zz", nil)
	assert.False(t, changed)
	assert.Equal(t, "zz", out)
	assert.False(t, e.State().Active())
}

func TestComplete_EmptyInputIsNoop(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	for _, input := range []string{"", "   "} {
		out, changed := e.Complete(input, nil)
		assert.False(t, changed, "%q", input)
		assert.Equal(t, input, out)
	}
}

func TestComplete_CyclesCommandNames(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	assert.Equal(t, "help", tab(e, "he"))
	state := e.State()
	assert.Equal(t, ModeCommand, state.Mode)
	assert.Equal(t, "he", state.Key)
	assert.Equal(t, "he", state.OriginalInput)
	assert.Equal(t, []string{"help", "hello"}, state.Candidates)
	assert.Equal(t, "help", state.Current())

	assert.Equal(t, "hello", tab(e, "help"))
	assert.Equal(t, "hello", e.State().Current())
	assert.Equal(t, "help", tab(e, "hello"))
	assert.Equal(t, "hello", tab(e, "help"))
}

func TestComplete_CycleVisitsEveryCandidate(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	seen := map[string]int{}
	input := "cl"
	for i := 0; i < 6; i++ {
		input = tab(e, input)
		seen[input]++
	}
	assert.Equal(t, map[string]int{"clear": 3, "clearhistory": 3}, seen)
}

func TestComplete_EditEndsCycle(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	assert.Equal(t, "help", tab(e, "he"))

	e.InputChanged("hel")
	assert.False(t, e.State().Active())

	// "hel" still matches both, so a fresh cycle starts at the first
	assert.Equal(t, "help", tab(e, "hel"))
	assert.Equal(t, "hel", e.State().OriginalInput)
}

func TestComplete_DetectsEditWithoutNotification(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	out, _ := e.Complete("he", nil)
	require.Equal(t, "help", out)

	// Host forgot to call InputChanged; the mismatch is caught on the next tab.
	out, _ = e.Complete("c", nil)
	assert.Equal(t, "clear", out)
	assert.Equal(t, "c", e.State().OriginalInput)
}

func TestInputChanged_OwnWriteKeepsCycle(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	out, _ := e.Complete("he", nil)
	e.InputChanged(out)
	assert.True(t, e.State().Active())
}

func TestReset(t *testing.T) {
	e := New(newTestRegistry(nil), nil)
	tab(e, "he")

	e.Reset()
	assert.Equal(t, State{}, e.State())
}

// =============================================================================
// ARGUMENT TESTS
// =============================================================================

func TestComplete_ArgumentCycle(t *testing.T) {
	var calls []completerCall
	e := New(newTestRegistry(&calls), nil)

	assert.Equal(t, "theme dark", tab(e, "theme d"))
	state := e.State()
	assert.Equal(t, ModeArgument, state.Mode)
	assert.Equal(t, "theme-1-d", state.Key)
	assert.Equal(t, []string{"dark", "dracula"}, state.Candidates)

	assert.Equal(t, "theme dracula", tab(e, "theme dark"))
	assert.Equal(t, "theme dark", tab(e, "theme dracula"))

	// Cycling reuses the stored candidates.
	assert.Len(t, calls, 1)
}

func TestComplete_ArgumentPartialChangeStartsOver(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	assert.Equal(t, "theme dark", tab(e, "theme d"))

	e.InputChanged("theme l")
	out, changed := e.Complete("theme l", nil)
	assert.True(t, changed)
	assert.Equal(t, "theme light", out)
	assert.False(t, e.State().Active())
}

func TestComplete_TrailingSpaceCompletesNextArgument(t *testing.T) {
	var calls []completerCall
	e := New(newTestRegistry(&calls), nil)

	out, changed := e.Complete("theme ", nil)
	assert.True(t, changed)
	assert.Equal(t, "theme dark", out)

	require.Len(t, calls, 1)
	assert.Equal(t, "", calls[0].partial)
	assert.Equal(t, 1, calls[0].position)
	assert.Empty(t, calls[0].preceding)
}

func TestComplete_ArgumentsReceivePrecedingAndPosition(t *testing.T) {
	var calls []completerCall
	e := New(newTestRegistry(&calls), nil)

	out, _ := e.Complete("THEME  one   two li", nil)
	assert.Equal(t, "THEME one two light", out)

	require.Len(t, calls, 1)
	assert.Equal(t, "li", calls[0].partial)
	assert.Equal(t, []string{"one", "two"}, calls[0].preceding)
	assert.Equal(t, 3, calls[0].position)
}

type stubConsole struct{ commands.Console }

func TestComplete_PassesConsole(t *testing.T) {
	var calls []completerCall
	e := New(newTestRegistry(&calls), nil)

	c := &stubConsole{}
	e.Complete("theme d", c)

	require.Len(t, calls, 1)
	assert.Same(t, c, calls[0].console)
}

func TestComplete_ArgumentNoopCases(t *testing.T) {
	r := newTestRegistry(nil)
	r.Register("broken", commands.Command{
		TabComplete: func(string, []string, commands.Console, int) ([]string, error) {
			return nil, errors.New("boom")
		},
	})
	r.Register("panicky", commands.Command{
		TabComplete: func(string, []string, commands.Console, int) ([]string, error) {
			panic("kaboom")
		},
	})
	r.Register("silent", commands.Command{
		TabComplete: func(string, []string, commands.Console, int) ([]string, error) {
			return nil, nil
		},
	})

	tests := []struct {
		name  string
		input string
	}{
		{"unknown command", "nope a"},
		{"no completer", "help a"},
		{"completer error", "broken a"},
		{"completer panic", "panicky a"},
		{"no candidates", "silent a"},
		{"no matching candidate", "theme x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(r, nil)
			out, changed := e.Complete(tt.input, nil)
			assert.False(t, changed)
			assert.Equal(t, tt.input, out)
			assert.False(t, e.State().Active())
		})
	}
}

func TestComplete_FailedArgumentKeepsCycle(t *testing.T) {
	calls := 0
	r := newTestRegistry(nil)
	r.Register("flaky", commands.Command{
		TabComplete: func(string, []string, commands.Console, int) ([]string, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("gone")
			}
			return []string{"one", "two"}, nil
		},
	})
	e := New(r, nil)

	assert.Equal(t, "flaky one", tab(e, "flaky "))
	assert.Equal(t, "flaky two", tab(e, "flaky one"))
	assert.Equal(t, 1, calls)
}

// =============================================================================
// CANDIDATES TESTS
// =============================================================================

func TestCandidates(t *testing.T) {
	e := New(newTestRegistry(nil), nil)

	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"he", []string{"help", "hello"}},
		{"theme d", []string{"theme dark", "theme dracula"}},
		{"theme ", []string{"theme dark", "theme dracula", "theme light"}},
		{"help x", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.Candidates(tt.input, nil), tt.input)
	}
	assert.False(t, e.State().Active())
}
