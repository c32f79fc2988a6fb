package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+k"}, Action: "palette", Scopes: []string{"tab:a"}},
		{Keys: []string{"q"}, Action: "quit", Scopes: []string{"*"}},
	})
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:a") {
		t.Fatalf("expected ctrl+k in tab:a")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:b") {
		t.Fatalf("did not expect ctrl+k in tab:b")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "quit", "tab:b") {
		t.Fatalf("expected q to match wildcard scope")
	}
}

func TestDefaultBindingsScopes(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings())
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	if !reg.IsAction(space, actionTogglePlayback, scopePlayer) {
		t.Fatalf("expected space to toggle playback in player scope")
	}
	if !reg.IsAction(space, actionTogglePlayback, scopeAction) {
		t.Fatalf("expected space to toggle playback while the companion is open")
	}
	esc := tea.KeyMsg{Type: tea.KeyEsc}
	if reg.IsAction(esc, actionBack, scopeCompanionRoot) {
		t.Fatalf("esc must not go back at root")
	}
	if !reg.IsAction(esc, actionBack, scopeEntity) {
		t.Fatalf("expected esc to go back from an entity")
	}
	v := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}}
	if reg.IsAction(v, actionToggleVoice, scopeEntity) {
		t.Fatalf("voice toggle is root only")
	}
	if len(reg.BindingsForScope(scopeVoiceInput)) != 2 {
		t.Fatalf("voice input scope should expose submit and cancel only")
	}
}

func TestApplyActionKeybindingsOverridesKeys(t *testing.T) {
	defaults := DefaultKeyBindings()
	bindings := ApplyActionKeybindings(defaults, map[string][]string{
		actionClose: {"x"},
		"unknown":   {"z"},
	})
	reg := NewKeyRegistry(bindings)
	x := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	c := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}
	if !reg.IsAction(x, actionClose, scopeCompanionRoot) {
		t.Fatalf("expected x to close after override")
	}
	if reg.IsAction(c, actionClose, scopeCompanionRoot) {
		t.Fatalf("expected c to be replaced")
	}
	for _, b := range defaults {
		if b.Action == actionClose && b.Keys[0] != "c" {
			t.Fatalf("override mutated defaults: %v", b.Keys)
		}
	}
}

func TestKeyRegistryActionLookup(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"enter"}, Action: "first", Scopes: []string{"a"}},
		{Keys: []string{"enter"}, Action: "second", Scopes: []string{"a", "b"}},
		{Keys: []string{"x"}, Action: "anywhere"},
	})
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	if got := reg.Action(enter, "a"); got != "first" {
		t.Fatalf("Action(enter, a) = %q, want first", got)
	}
	if got := reg.Action(enter, "b"); got != "second" {
		t.Fatalf("Action(enter, b) = %q, want second", got)
	}
	if got := reg.Action(enter, "c"); got != "" {
		t.Fatalf("Action(enter, c) = %q, want none", got)
	}
	if got := reg.Action(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, "c"); got != "anywhere" {
		t.Fatalf("unscoped binding should apply everywhere, got %q", got)
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, "", "a") {
		t.Fatalf("an unbound key must not match the empty action")
	}
}
