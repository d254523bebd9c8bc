package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid"
)

func sendKey(t *testing.T, m SessionModel, msg tea.KeyMsg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func newSession(t *testing.T) SessionModel {
	t.Helper()
	opts := GameOptions{Store: openStore(t), Logger: quietLogger(), Player: "ana"}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	return NewSessionModel(opts, cfg, "session-1")
}

func TestSessionCampaignGoesThroughLevelPicker(t *testing.T) {
	m := newSession(t)
	if !strings.Contains(m.View(), "Select a mode") {
		t.Fatalf("expected mode menu, got:\n%s", m.View())
	}

	// Modes are listed by ID, so the campaign comes first
	m = sendKey(t, m, keyEnter)
	if m.stage != stageLevels || m.pending == nil {
		t.Fatal("campaign selection should open the level picker")
	}
	if !strings.Contains(m.View(), "Select a level:") {
		t.Errorf("expected level picker, got:\n%s", m.View())
	}

	m = sendKey(t, m, keyDown)
	m = sendKey(t, m, keyDown)
	m = sendKey(t, m, keyEnter)
	if m.stage != stagePlaying {
		t.Fatal("choosing a level should start the game")
	}
	if m.pending != nil {
		t.Error("pending game should be handed to the game model")
	}
	if !strings.Contains(m.View(), "Level 2/6") {
		t.Errorf("expected level 2, got:\n%s", m.View())
	}
}

func TestSessionLevelPickerBack(t *testing.T) {
	m := newSession(t)
	m = sendKey(t, m, keyEnter)
	m = sendKey(t, m, keyEsc)

	if m.stage != stageMenu || m.pending != nil || m.game != nil {
		t.Fatalf("back should return to the mode menu, stage %s", m.stage)
	}
	if !strings.Contains(m.View(), "Select a mode") {
		t.Errorf("expected mode menu, got:\n%s", m.View())
	}
}

func TestSessionRandomModeSkipsPicker(t *testing.T) {
	m := newSession(t)
	m = sendKey(t, m, keyDown)
	m = sendKey(t, m, keyEnter)

	if m.stage != stagePlaying {
		t.Fatalf("random mode should start immediately, stage %s", m.stage)
	}
	if id := m.game.game.ID(); id != liquid.IDRandom {
		t.Errorf("started %q", id)
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := newSession(t)
	m = sendKey(t, m, keyTab)
	if m.stage != stageScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Errorf("expected scoreboard, got:\n%s", m.View())
	}

	m = sendKey(t, m, keyEsc)
	if m.stage != stageMenu {
		t.Fatalf("esc should return to the menu, stage %s", m.stage)
	}
}

func TestSessionQuitEndsProgram(t *testing.T) {
	m := newSession(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(SessionModel)

	if m.stage != stageDone || m.View() != "" {
		t.Fatalf("q on the menu should end the session, stage %s", m.stage)
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command should quit the program")
	}
}

func TestSessionResizeReachesNextScreen(t *testing.T) {
	m := newSession(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(SessionModel)

	m = sendKey(t, m, keyTab)
	if m.scores.width != 120 || m.scores.height != 40 {
		t.Errorf("scoreboard size = %dx%d, want 120x40", m.scores.width, m.scores.height)
	}
	if m.SessionID() != "session-1" {
		t.Errorf("SessionID = %q", m.SessionID())
	}
}
