package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid"
	"github.com/vovakirdan/liquidsort/internal/platform/tui"
	"github.com/vovakirdan/liquidsort/internal/registry"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play the campaign or random mode",
	Long: `Start playing. The default game is the campaign ("liquid"); the
campaign opens a level picker unless --level is given.

Controls:
  Left/Right, A/D  - Move the cursor
  Enter/Space      - Select a cylinder, then pour onto another
  1-9, 0           - Select or pour onto a cylinder directly
  Esc              - Drop the selection
  H                - Hint
  R                - Restart the level
  P                - Pause
  Q/Ctrl+C         - Quit

Difficulty options (random mode):
  easy   - Fewer colors, starts at the lowest difficulty
  normal - Starts at 30% difficulty, progresses to max
  hard   - More colors, starts at 70% difficulty
  fixed  - No progression

Examples:
  liquidsort play
  liquidsort play --level 3
  liquidsort play liquid_random --difficulty hard --seed 42
  liquidsort play --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Campaign level to start at (1-indexed, skips the picker)")
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := liquid.IDCampaign
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'liquidsort list' to see available games", gameID)
	}

	cfg := terminalConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if starter, ok := game.(registry.LevelStarter); ok && starter.HasLevels() {
		level := flagStartLevel
		if level == 0 {
			selection, selErr := tui.RunLevelSelector(store, cfg)
			if selErr != nil {
				return selErr
			}
			if selection == nil {
				return nil
			}
			level = selection.Level
		}
		starter.StartAt(level)
	}

	restore := redirectLogs()
	defer restore()

	logger.Info("game started", "game", gameID, "seed", cfg.Seed)
	if err := tui.Run(game, tui.GameOptions{Store: store, Logger: logger}, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
