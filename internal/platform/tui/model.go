package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/registry"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

// GameOptions are the collaborators a running game reports to.
// Every field is optional.
type GameOptions struct {
	Store   *storage.Store
	Logger  *log.Logger
	Metrics *Metrics
	Player  string // Recorded with level results
}

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       GameOptions
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	standalone bool // Back to menu ends the program
	scoreSaved bool // Whether score has been saved for current game over
	levels     int  // Levels solved since the last reset
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, opts GameOptions, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	// Back to menu only while paused or after the game ended
	if key.Matches(msg, m.keyMapper.Keys.Menu) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without resize support restart with the new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.levels = 0
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.levels += m.recordEvents(result.Events)

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.opts.Store != nil {
			_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
				GameID: m.game.ID(),
				Player: m.opts.Player,
				Score:  m.gameState.Score,
				Levels: m.levels,
			})
			if err != nil {
				m.logger().Warn("could not save score", "game", m.game.ID(), "error", err)
			}
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordEvents forwards step events to the log, metrics and storage.
// It returns the number of levels solved.
func (m GameModel) recordEvents(events []core.Event) int {
	logger := m.logger()
	solved := 0
	for _, ev := range events {
		logger.Debug("game event",
			"game", m.game.ID(),
			"type", ev.Type,
			"level", ev.Level,
			"source", ev.Source,
			"dest", ev.Dest,
			"count", ev.Count,
			"reason", ev.Reason,
		)
		m.opts.Metrics.Observe(m.game.ID(), ev)

		if ev.Type != core.EventLevelSolved {
			continue
		}
		solved++
		logger.Info("level solved", "game", m.game.ID(), "level", ev.Level, "moves", ev.Moves)
		if m.opts.Store == nil {
			continue
		}
		_, err := m.opts.Store.SaveLevelResult(storage.LevelResult{
			GameID:   m.game.ID(),
			LevelID:  ev.Level,
			Player:   m.opts.Player,
			Moves:    ev.Moves,
			Duration: ticksToDuration(ev.Ticks, m.config.TickRate),
		})
		if err != nil {
			logger.Warn("could not save level result", "level", ev.Level, "error", err)
		}
	}
	return solved
}

func (m GameModel) logger() *log.Logger {
	return m.opts.logger()
}

func (o GameOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".liquidsort", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger().Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger().Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
// It returns when the player quits or goes back to the menu.
func Run(game registry.Game, opts GameOptions, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, opts, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
