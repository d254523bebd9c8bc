package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/registry"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

const maxScores = 100

// ScoreboardView selects what the scoreboard table lists.
type ScoreboardView int

const (
	ViewScores ScoreboardView = iota // Top session scores
	ViewLevels                       // Best result per cleared level
)

func (v ScoreboardView) String() string {
	if v == ViewLevels {
		return "Levels"
	}
	return "Scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	View     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.View, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.View, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		View:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/levels")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows high scores and level records for every mode.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	view       ScoreboardView
	store      *storage.Store
	rows       []table.Row
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	theme      Theme
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		theme:  GetTheme(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// GameID returns the mode currently shown.
func (m ScoreboardModel) GameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// CurrentView returns whether scores or level records are listed.
func (m ScoreboardModel) CurrentView() ScoreboardView {
	return m.view
}

// Rows returns the rows of the current table.
func (m ScoreboardModel) Rows() []table.Row {
	return m.rows
}

func (m ScoreboardModel) columns() []table.Column {
	avail := max(m.width-8, 40)

	if m.view == ViewLevels {
		return []table.Column{
			{Title: "Level", Width: 10},
			{Title: "Moves", Width: 7},
			{Title: "Time", Width: 8},
			{Title: "Player", Width: min(avail-31, 16)},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Levels", Width: 7},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: min(avail-39, 14)},
	}
}

// reload rebuilds the table for the selected mode and view.
func (m *ScoreboardModel) reload() {
	m.stats = nil
	m.rows = nil

	gameID := m.GameID()
	if m.store != nil && gameID != "" {
		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
		if m.view == ViewLevels {
			m.rows = m.levelRows(gameID)
		} else {
			m.rows = m.scoreRows(gameID)
		}
	}

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = m.theme.MenuItemActive
	m.table.SetStyles(s)
}

func (m *ScoreboardModel) scoreRows(gameID string) []table.Row {
	scores, err := m.store.TopScores(gameID, maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Levels),
			playerLabel(s.Player),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) levelRows(gameID string) []table.Row {
	best, err := m.store.BestMoves(gameID)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		r, err := m.store.BestLevelResult(gameID, id)
		if err != nil || r == nil {
			continue
		}
		rows = append(rows, table.Row{
			id,
			fmt.Sprintf("%d", r.Moves),
			r.Duration.Round(100 * time.Millisecond).String(),
			playerLabel(r.Player),
		})
	}
	return rows
}

func playerLabel(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.gameCursor = core.Wrap(m.gameCursor+1, len(m.games))
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.gameCursor = core.Wrap(m.gameCursor-1, len(m.games))
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(box.Render(m.tableContent()), m.width))
	b.WriteString("\n")

	b.WriteString(m.theme.Controls.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists the modes with the active one highlighted, then the view.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, 0, len(m.games)+1)
	for i, g := range m.games {
		if i == m.gameCursor {
			parts = append(parts, m.theme.MenuItemActive.Render("["+g.Title+"]"))
		} else {
			parts = append(parts, m.theme.MenuItemNormal.Render(" "+g.Title+" "))
		}
	}
	parts = append(parts, m.theme.MenuDescription.Render("· "+m.view.String()))

	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.games) > 0 {
		line = fmt.Sprintf("< %s > · %s", m.games[m.gameCursor].Title, m.view)
	}
	return line
}

// statsLine summarizes the selected mode's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || (m.stats.GamesCount == 0 && m.stats.LevelsSolved == 0) {
		return ""
	}
	return m.theme.MenuDescription.Render(fmt.Sprintf("%d games  |  avg %.0f  |  %d levels solved",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.LevelsSolved))
}

func (m ScoreboardModel) tableContent() string {
	if len(m.rows) > 0 {
		return m.table.View()
	}

	empty := m.theme.MenuDescription.Italic(true).Padding(2, 4)
	if m.view == ViewLevels {
		return empty.Render("No levels cleared yet.")
	}
	return empty.Render("No scores recorded yet.\nPlay a game to set a high score!")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
