package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/registry"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

const menuBanner = "L I Q U I D   S O R T"

// MenuItem is one selectable mode with its recorded progress.
type MenuItem struct {
	GameID       string
	Title        string
	Description  string
	HighScore    int
	LevelsSolved int
}

// badge summarizes the item's progress, empty for an unplayed mode.
func (it MenuItem) badge() string {
	var parts []string
	if it.HighScore > 0 {
		parts = append(parts, fmt.Sprintf("best %d", it.HighScore))
	}
	if it.LevelsSolved > 0 {
		parts = append(parts, fmt.Sprintf("%d cleared", it.LevelsSolved))
	}
	return strings.Join(parts, " · ")
}

// MenuModel is the mode picker shown before a game starts.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	theme          Theme
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered mode. Progress badges come from
// store, which may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description}
		if store == nil {
			continue
		}
		if stats, err := store.GetGameStats(g.ID); err == nil {
			items[i].HighScore = stats.HighScore
			items[i].LevelsSolved = stats.LevelsSolved
		}
	}

	m := MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		theme:  GetTheme(),
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = core.Wrap(m.cursor-1, len(m.items))
		case key.Matches(msg, m.keys.Down):
			m.cursor = core.Wrap(m.cursor+1, len(m.items))
		case key.Matches(msg, m.keys.Scores):
			m.openScoreboard = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		m.theme.MenuTitle.Render(menuBanner),
		"",
		m.theme.MenuDescription.Render("Select a mode"),
		"",
	}

	titleW := 0
	for _, it := range m.items {
		titleW = max(titleW, lipgloss.Width(it.Title))
	}
	for i, it := range m.items {
		marker, style := "  ", m.theme.MenuItemNormal
		if i == m.cursor {
			marker, style = "> ", m.theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%-*s", marker, titleW, it.Title))
		if b := it.badge(); b != "" {
			line += "  " + m.theme.MenuBadge.Render(b)
		}
		lines = append(lines, line)
	}

	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		lines = append(lines, "", m.theme.MenuDescription.Render(m.items[m.cursor].Description))
	}
	lines = append(lines, "", m.theme.Controls.Render(m.help.View(m.keys)))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, width))
		b.WriteString("\n")
	}
	return b.String()
}

// Items returns the listed modes in display order.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// Selected returns the chosen mode, or nil before a choice.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config with the latest terminal size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text to sit in the middle of width cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the standalone menu program decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu as its own program and reports the choice.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
