package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/registry"
)

// sessionStage is the screen a remote session is showing.
type sessionStage int

const (
	stageMenu sessionStage = iota
	stageLevels
	stageScores
	stagePlaying
	stageDone
)

func (s sessionStage) String() string {
	switch s {
	case stageMenu:
		return "menu"
	case stageLevels:
		return "levels"
	case stageScores:
		return "scores"
	case stagePlaying:
		return "playing"
	case stageDone:
		return "done"
	}
	return "unknown"
}

// SessionModel drives one remote player through the screens that the
// local CLI runs as separate programs:
//
//	menu -> level picker (campaign only) -> game -> menu
//	menu -> scoreboard -> menu
//
// Child models end their own program with tea.Quit when a choice is made.
// Here those commands are dropped and the session switches stage instead.
type SessionModel struct {
	opts   GameOptions
	config core.RuntimeConfig
	id     string
	stage  sessionStage

	menu    MenuModel
	levels  LevelMenuModel
	scores  ScoreboardModel
	game    *GameModel
	pending registry.Game // Waits in stageLevels for a start level
}

// NewSessionModel creates a session that opens on the mode menu.
func NewSessionModel(opts GameOptions, cfg core.RuntimeConfig, sessionID string) SessionModel {
	m := SessionModel{opts: opts, config: cfg, id: sessionID}
	return m.toMenu()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes the message to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	var cmd tea.Cmd
	switch m.stage {
	case stageMenu:
		m, cmd = m.updateMenu(msg)
	case stageLevels:
		m, cmd = m.updateLevels(msg)
	case stageScores:
		m, cmd = m.updateScores(msg)
	case stagePlaying:
		m, cmd = m.updateGame(msg)
	}

	if m.stage == stageDone {
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) toMenu() SessionModel {
	m.stage = stageMenu
	m.game = nil
	m.pending = nil
	m.menu = NewMenuModel(m.opts.Store, m.config)
	return m
}

func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.stage = stageDone
		return m, nil
	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.stage = stageScores
		return m, nil
	case m.menu.Selected() == nil:
		return m, cmd
	}

	id := m.menu.Selected().GameID
	game, err := registry.Create(id)
	if err != nil {
		m.opts.logger().Warn("unknown game selected", "game", id, "error", err)
		return m.toMenu(), nil
	}

	if starter, ok := game.(registry.LevelStarter); ok && starter.HasLevels() {
		m.levels = NewLevelMenuModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.pending = game
		m.stage = stageLevels
		return m, nil
	}
	return m.play(game)
}

func (m SessionModel) updateLevels(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	m.levels = next.(LevelMenuModel)

	switch {
	case m.levels.IsQuitting():
		m.stage = stageDone
		return m, nil
	case m.levels.WantsBack():
		return m.toMenu(), nil
	}

	sel := m.levels.Selected()
	if sel == nil {
		return m, cmd
	}
	game := m.pending
	m.pending = nil
	if starter, ok := game.(registry.LevelStarter); ok {
		starter.StartAt(sel.Level)
	}
	return m.play(game)
}

func (m SessionModel) updateScores(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		m.stage = stageDone
		return m, nil
	case m.scores.IsGoingBack():
		return m.toMenu(), nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm

	switch {
	case gm.BackToMenu():
		m.opts.logger().Info("game left", "game", gm.game.ID(), "score", gm.gameState.Score)
		return m.toMenu(), nil
	case gm.IsQuitting():
		m.stage = stageDone
		return m, nil
	}
	return m, cmd
}

// play starts a freshly seeded game.
func (m SessionModel) play(game registry.Game) (SessionModel, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	m.opts.logger().Info("game started", "game", game.ID())

	gm := NewGameModel(game, m.opts, m.config)
	m.game = &gm
	m.stage = stagePlaying
	return m, gm.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch m.stage {
	case stageMenu:
		return m.menu.View()
	case stageLevels:
		return m.levels.View()
	case stageScores:
		return m.scores.View()
	case stagePlaying:
		return m.game.View()
	}
	return ""
}

// SessionID returns the session's unique identifier.
func (m SessionModel) SessionID() string {
	return m.id
}
