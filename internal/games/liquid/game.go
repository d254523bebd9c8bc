// Package liquid provides the liquid sorting puzzle for the platform.
// It drives the rule engine in liquid/core and plays pour animations,
// reporting each finished animation back to the engine's machine.
package liquid

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/liquidsort/internal/config"
	platformcore "github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid/levels"
	"github.com/vovakirdan/liquidsort/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeRandom   Mode = "random"
)

// Game IDs used for registration and score storage.
const (
	IDCampaign = "liquid"
	IDRandom   = "liquid_random"
)

const hintTicks = 180 // ~3s at 60fps

// Game implements the liquid sorting puzzle.
type Game struct {
	mode Mode
	cfg  config.LiquidConfig
	rng  *rand.Rand
	tick uint64

	// Campaign
	allLevels  []levels.Level
	levelIndex int

	// Random mode
	difficulty *config.DifficultyManager
	generated  int // Levels generated so far

	// Current level
	levelID   string
	levelName string
	specs     []core.CylinderSpec
	machine   *core.Machine
	playbacks []*Playback
	pending   []platformcore.Event // Filled by the machine observer during a tick

	cursor     int
	hint       *core.Move
	hintMiss   bool // Last hint request found no move
	hintTicks  int
	levelTicks int

	score       int
	solvedCount int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
	failure         string // Why the game could not start, shown on the game over screen

	startAt int // Campaign level (1-indexed) for the next Reset, 0 for the first
}

var gameConfig = config.DefaultLiquidConfig()

// SetConfig replaces the configuration used by games reset afterwards.
func SetConfig(cfg config.LiquidConfig) {
	gameConfig = cfg
}

// Config returns the configuration new games will use.
func Config() config.LiquidConfig {
	return gameConfig
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDRandom, func() registry.Game {
		return NewRandom()
	})
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewRandom creates an endless game of generated levels.
func NewRandom() *Game {
	return &Game{mode: ModeRandom}
}

// StartAt makes the next Reset begin at the given campaign level
// (1-indexed). It applies once; restarting after game over begins at the
// first level again. Out-of-range values start at the first level.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

// HasLevels reports whether this mode plays a fixed level list.
func (g *Game) HasLevels() bool {
	return g.mode == ModeCampaign
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeRandom {
		return IDRandom
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeRandom {
		return "Liquid Sort (Random)"
	}
	return "Liquid Sort"
}

// Description is the one-line summary shown in menus.
func (g *Game) Description() string {
	if g.mode == ModeRandom {
		return "Endless generated racks, harder with every clear"
	}
	return "Hand-made levels, played in order"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = gameConfig
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.score = 0
	g.solvedCount = 0
	g.generated = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.failure = ""
	g.machine = nil

	switch g.mode {
	case ModeRandom:
		g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
		g.nextRandomLevel()
	default:
		g.resetCampaign()
	}

	g.checkScreenSize()
}

func (g *Game) resetCampaign() {
	all, err := campaignLoader(g.cfg).LoadAll()
	if err != nil || len(all) == 0 {
		g.fail(fmt.Sprintf("no levels found in %s", campaignLoader(g.cfg).Root))
		return
	}
	g.allLevels = all

	g.levelIndex = 0
	if g.startAt > 0 && g.startAt <= len(all) {
		g.levelIndex = g.startAt - 1
	}
	g.startAt = 0

	g.loadCampaignLevel()
}

func (g *Game) loadCampaignLevel() {
	lvl := g.allLevels[g.levelIndex]
	g.startLevel(lvl.ID, lvl.Name, lvl.Specs())
}

func (g *Game) nextRandomLevel() {
	r := g.cfg.Random
	params := core.GenParams{
		Colors:      g.difficulty.Colors(r.Colors, g.solvedCount, len(core.Palette())),
		Capacity:    r.Capacity,
		Empty:       g.difficulty.Empty(r.Empty, g.solvedCount),
		Seed:        g.rng.Uint64() | 1,
		MaxAttempts: r.MaxAttempts,
		MaxStates:   g.cfg.Solver.MaxStates,
	}

	specs, err := core.Generate(params)
	if err != nil {
		g.fail(err.Error())
		return
	}

	g.generated++
	id := fmt.Sprintf("random-%03d", g.generated)
	g.startLevel(id, fmt.Sprintf("Random #%d (%d colors)", g.generated, params.Colors), specs)
}

// startLevel builds a fresh session and machine for a level.
func (g *Game) startLevel(id, name string, specs []core.CylinderSpec) {
	session, err := core.NewSession(specs)
	if err != nil {
		g.fail(fmt.Sprintf("level %s: %v", id, err))
		return
	}

	g.levelID = id
	g.levelName = name
	g.specs = specs
	g.machine = core.NewMachine(session, core.WithObserver(g.observe))
	g.playbacks = nil
	g.cursor = 0
	g.hint = nil
	g.hintMiss = false
	g.hintTicks = 0
	g.levelTicks = 0
	g.levelCleared = false
	g.levelClearTicks = 0
	g.checkScreenSize()
}

func (g *Game) fail(reason string) {
	g.failure = reason
	g.gameOver = true
}

// observe turns machine transitions into platform events and playbacks.
func (g *Game) observe(tr core.Transition) {
	switch tr.Kind {
	case core.TransitionPoured:
		g.playbacks = append(g.playbacks, newPlayback(tr.Source, tr.Dest, tr.Outcome.Events, g.cfg.Animation))
		g.pending = append(g.pending, platformcore.Event{
			Type:   platformcore.EventPourApplied,
			Level:  g.levelID,
			Source: tr.Source,
			Dest:   tr.Dest,
			Count:  tr.Outcome.Count,
		})
	case core.TransitionRejected:
		g.pending = append(g.pending, platformcore.Event{
			Type:   platformcore.EventPourRejected,
			Level:  g.levelID,
			Source: tr.Source,
			Dest:   tr.Dest,
			Reason: tr.Outcome.Reason.String(),
		})
	case core.TransitionReleased:
		g.pending = append(g.pending, platformcore.Event{
			Type:   platformcore.EventAnimationComplete,
			Level:  g.levelID,
			Source: tr.Source,
			Dest:   tr.Dest,
		})
	}
}

// Resize adapts the layout to a new terminal size without touching progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the current level.
func (g *Game) checkScreenSize() {
	minW, minH := 30, 12
	if g.machine != nil {
		s := g.machine.Session()
		capacity := 0
		for _, c := range s.Cylinders() {
			capacity = max(capacity, c.Capacity())
		}
		minW = max(minW, s.Len()*(cylinderWidth+cylinderGap)+2)
		minH = max(minH, rackTop+capacity+4)
	}
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.pending = nil

	if g.tooSmall {
		return g.result()
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	// Restart after the game ended is handled by the platform
	if g.gameOver || g.won {
		return g.result()
	}

	g.levelTicks++
	g.advancePlaybacks()

	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
			g.hintMiss = false
		}
	}

	if g.levelCleared {
		if len(g.playbacks) == 0 {
			g.levelClearTicks++
			if g.levelClearTicks >= g.cfg.Animation.ClearDelayTicks {
				g.advanceLevel()
			}
		}
		return g.result()
	}

	g.handleInput(in)
	return g.result()
}

func (g *Game) result() platformcore.StepResult {
	return platformcore.StepResult{State: g.State(), Events: g.pending}
}

// advancePlaybacks steps every running animation and releases finished sources.
func (g *Game) advancePlaybacks() {
	running := g.playbacks[:0]
	for _, p := range g.playbacks {
		p.Advance()
		if p.Done() {
			g.machine.OnAnimationComplete(p.Source)
			continue
		}
		running = append(running, p)
	}
	g.playbacks = running
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	n := g.machine.Session().Len()

	switch {
	case in.Has(platformcore.ActionRestart):
		g.restartLevel()
	case in.Has(platformcore.ActionLeft):
		g.cursor = platformcore.Wrap(g.cursor-1, n)
	case in.Has(platformcore.ActionRight):
		g.cursor = platformcore.Wrap(g.cursor+1, n)
	case in.Has(platformcore.ActionBack):
		g.machine.Deselect()
	case in.Has(platformcore.ActionHint):
		g.showHint()
	case in.Has(platformcore.ActionPick):
		if in.Pick >= 0 && in.Pick < n {
			g.cursor = in.Pick
			g.selectCylinder(in.Pick)
		}
	case in.Has(platformcore.ActionConfirm):
		g.selectCylinder(g.cursor)
	}
}

func (g *Game) selectCylinder(id int) {
	tr, err := g.machine.Select(id)
	if err != nil {
		return
	}
	if tr.Kind != core.TransitionPoured {
		return
	}

	g.hint = nil
	g.hintMiss = false
	g.hintTicks = 0

	if g.machine.IsSolved() {
		g.onLevelSolved()
	}
}

func (g *Game) onLevelSolved() {
	moves := g.machine.Moves()
	g.levelCleared = true
	g.levelClearTicks = 0
	g.solvedCount++
	g.score += g.cfg.Scoring.LevelScore(moves)
	g.pending = append(g.pending, platformcore.Event{
		Type:  platformcore.EventLevelSolved,
		Level: g.levelID,
		Moves: moves,
		Ticks: g.levelTicks,
	})
}

func (g *Game) showHint() {
	mv, ok := core.Hint(g.machine.Session(), g.cfg.Solver.MaxStates)
	g.hintTicks = hintTicks
	if !ok {
		g.hint = nil
		g.hintMiss = true
		return
	}
	g.hint = &mv
	g.hintMiss = false
}

// restartLevel restores the level's initial layout. Moves reset; score stays.
func (g *Game) restartLevel() {
	g.startLevel(g.levelID, g.levelName, g.specs)
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.mode == ModeRandom {
		g.nextRandomLevel()
		return
	}

	if g.levelIndex >= len(g.allLevels)-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.loadCampaignLevel()
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	moves := 0
	if g.machine != nil {
		moves = g.machine.Moves()
	}
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
		Level:    g.levelID,
		Moves:    moves,
	}
}

// campaignLoader returns the configured level directory or the bundled campaign.
func campaignLoader(cfg config.LiquidConfig) *levels.Loader {
	if cfg.Levels.Dir != "" {
		return levels.NewLoader(cfg.Levels.Dir)
	}
	return levels.Embedded()
}

// CampaignLoader returns the loader for the configured campaign.
func CampaignLoader() *levels.Loader {
	return campaignLoader(gameConfig)
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(LevelNames())
}

// LevelNames returns campaign level names in play order.
func LevelNames() []string {
	all, err := campaignLoader(gameConfig).LoadAll()
	if err != nil {
		return nil
	}
	names := make([]string, len(all))
	for i, lvl := range all {
		names[i] = lvl.Name
	}
	return names
}

// LevelIDs returns campaign level IDs in play order.
func LevelIDs() []string {
	ids, err := campaignLoader(gameConfig).ListIDs()
	if err != nil {
		return nil
	}
	return ids
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→: Move | Enter: Select/Pour | 1-9: Pick | Esc: Drop | H: Hint | R: Restart | P: Pause | Q: Quit"
}
