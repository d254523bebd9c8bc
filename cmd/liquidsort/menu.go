package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/liquidsort/internal/platform/tui"
	"github.com/vovakirdan/liquidsort/internal/registry"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - High scores
  Q            - Quit

Examples:
  liquidsort menu
  liquidsort menu --fps 30
  liquidsort menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	restore := redirectLogs()
	defer restore()

	cfg := terminalConfig()
	opts := tui.GameOptions{Store: store, Logger: logger}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		gameID := menuResult.GameID
		game, err := registry.Create(gameID)
		if err != nil {
			logger.Error("creating game", "game", gameID, "error", err)
			continue
		}

		if starter, ok := game.(registry.LevelStarter); ok && starter.HasLevels() {
			selection, selErr := tui.RunLevelSelector(store, cfg)
			if selErr != nil {
				return selErr
			}
			if selection == nil {
				continue
			}
			starter.StartAt(selection.Level)
		}

		// Fresh seed per game unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("game started", "game", gameID)
		if err := tui.Run(game, opts, cfg); err != nil {
			logger.Error("running game", "game", gameID, "error", err)
		}
	}
}
