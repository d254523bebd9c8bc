package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

// LevelSelection holds the user's choice from the level picker.
type LevelSelection struct {
	Level int // 0 = start from beginning, 1-N = specific level
}

// levelMenuKeys are the picker bindings shown in its help line.
type levelMenuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k levelMenuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

func (k levelMenuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultLevelMenuKeys() levelMenuKeys {
	return levelMenuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// LevelMenuModel is the campaign level picker.
type LevelMenuModel struct {
	cursor       int
	width        int
	height       int
	keys         levelMenuKeys
	help         help.Model
	levelNames   []string
	best         []int // Best moves per level, 0 when unsolved
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
	theme        Theme
}

// NewLevelMenuModel creates the picker. store may be nil.
func NewLevelMenuModel(store *storage.Store, width, height int) LevelMenuModel {
	levelNames := liquid.LevelNames()
	best := make([]int, len(levelNames))

	if store != nil {
		if moves, err := store.BestMoves(liquid.IDCampaign); err == nil {
			for i, id := range liquid.LevelIDs() {
				if i < len(best) {
					best[i] = moves[id]
				}
			}
		}
	}

	if len(levelNames) == 0 {
		levelNames = []string{"No levels found"}
		best = []int{0}
	}

	return LevelMenuModel{
		width:      width,
		height:     height,
		keys:       defaultLevelMenuKeys(),
		help:       help.New(),
		levelNames: levelNames,
		best:       best,
		choosing:   true,
		theme:      GetTheme(),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.levelNames) {
			m.cursor++
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Select):
		m.choosing = false
		m.selection = LevelSelection{Level: m.cursor}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3) // Header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(menuBanner), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	// Row 0 is "Start from Beginning", row i is level i
	end := min(m.scrollOffset+m.visibleItems(), len(m.levelNames)+1)
	for row := m.scrollOffset; row < end; row++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if row == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		if row == 0 {
			b.WriteString(centerText(style.Render(cursor+"Start from Beginning"), m.width))
			b.WriteString("\n")
			continue
		}

		line := style.Render(fmt.Sprintf("%s%2d. %s", cursor, row, m.levelNames[row-1]))
		if best := m.best[row-1]; best > 0 {
			line += m.theme.MenuBadge.Render(fmt.Sprintf("  best %d", best))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.levelNames)+1 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Controls.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker and returns the selection,
// or nil when the player backed out.
func RunLevelSelector(store *storage.Store, cfg core.RuntimeConfig) (*LevelSelection, error) {
	p := tea.NewProgram(NewLevelMenuModel(store, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
