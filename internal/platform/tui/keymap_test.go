package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/liquidsort/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToFrame(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"right letter", runeKey('d'), core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"hint", runeKey('h'), core.ActionHint, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			quit := km.MapKeyToFrame(tt.msg, &frame)
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
			if !frame.Has(tt.action) {
				t.Errorf("frame missing %v", tt.action)
			}
		})
	}
}

func TestDigitsPickCylinders(t *testing.T) {
	km := NewKeyMapper()
	tests := map[rune]int{'1': 0, '5': 4, '9': 8, '0': 9}

	for r, want := range tests {
		frame := core.NewInputFrame()
		km.MapKeyToFrame(runeKey(r), &frame)
		if !frame.Has(core.ActionPick) {
			t.Fatalf("key %q: ActionPick not set", r)
		}
		if frame.Pick != want {
			t.Errorf("key %q: Pick = %d, want %d", r, frame.Pick, want)
		}
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	if km.MapKeyToFrame(runeKey('z'), &frame) {
		t.Error("z must not quit")
	}
	if !frame.Empty() {
		t.Errorf("unexpected actions %v", frame.Actions())
	}
}

func TestMenuKeyMap(t *testing.T) {
	keys := DefaultMenuKeyMap()
	tests := []struct {
		msg     tea.KeyMsg
		binding key.Binding
		name    string
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, keys.Up, "up"},
		{runeKey('j'), keys.Down, "down"},
		{tea.KeyMsg{Type: tea.KeyEnter}, keys.Select, "select"},
		{tea.KeyMsg{Type: tea.KeyTab}, keys.Scores, "scores"},
		{runeKey('q'), keys.Quit, "quit"},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit, "quit"},
	}
	for _, tt := range tests {
		if !key.Matches(tt.msg, tt.binding) {
			t.Errorf("%q should trigger %s", tt.msg.String(), tt.name)
		}
	}
	if key.Matches(runeKey('j'), keys.Up) {
		t.Error("j must not move up")
	}
	if key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, keys.Quit) {
		t.Error("esc must not leave the menu")
	}
}
