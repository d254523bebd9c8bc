package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestMenuShowsProgress(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(storage.ScoreEntry{GameID: liquid.IDCampaign, Score: 700, Levels: 2}); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"lvl01", "lvl02"} {
		if _, err := store.SaveLevelResult(storage.LevelResult{GameID: liquid.IDCampaign, LevelID: id, Moves: 4}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	items := m.Items()
	if len(items) != 2 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].GameID != liquid.IDCampaign || items[0].HighScore != 700 || items[0].LevelsSolved != 2 {
		t.Errorf("campaign item = %+v", items[0])
	}
	if items[1].HighScore != 0 || items[1].badge() != "" {
		t.Errorf("random item should have no progress: %+v", items[1])
	}

	view := m.View()
	for _, want := range []string{"Select a mode", "best 700 · 2 cleared", "Hand-made levels"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.View(), "Endless generated racks") {
		t.Errorf("description should follow the cursor:\n%s", m.View())
	}
}

func TestMenuNavigationAndChoices(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.GameID != liquid.IDRandom {
		t.Fatalf("up from the top should wrap to the last mode, got %+v", sel)
	}

	m = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m = updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config after resize = %+v", cfg)
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() || m.Selected() != nil {
		t.Error("tab should ask for the scoreboard")
	}

	m = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit with an empty view")
	}
}
