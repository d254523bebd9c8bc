package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/liquidsort/internal/games/liquid"
	"github.com/vovakirdan/liquidsort/internal/registry"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

var (
	flagScoresLevel string
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for a mode, followed by the best
move count for every cleared level. The default mode is the campaign.

Examples:
  liquidsort scores
  liquidsort scores liquid_random
  liquidsort scores --level lvl03
  liquidsort scores liquid_random --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresLevel, "level", "", "Show recent results for one level")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	gameID := liquid.IDCampaign
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'liquidsort list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		return nil
	}

	if flagScoresLevel != "" {
		return printLevelResults(cmd, store, gameID, flagScoresLevel)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'liquidsort play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %-12s  %s\n", "Rank", "Score", "Levels", "Player", "Date")
		fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %-12s  %s\n", "----", "-----", "------", "------", "----")
		for i, entry := range scores {
			fmt.Fprintf(out, "  %-4d  %-10d  %-6d  %-12s  %s\n",
				i+1, entry.Score, entry.Levels, playerName(entry.Player), entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	best, err := store.BestMoves(gameID)
	if err != nil {
		return fmt.Errorf("retrieving level results: %w", err)
	}
	if len(best) == 0 {
		return nil
	}

	ids := make([]string, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Best moves per level:")
	for _, id := range ids {
		fmt.Fprintf(out, "  %-12s  %d\n", id, best[id])
	}
	return nil
}

func printLevelResults(cmd *cobra.Command, store *storage.Store, gameID, levelID string) error {
	out := cmd.OutOrStdout()

	results, err := store.LevelResults(gameID, levelID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Results - %s\n\n", levelID)
	if len(results) == 0 {
		fmt.Fprintln(out, "Level not cleared yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-6s  %-9s  %-12s  %s\n", "Moves", "Time", "Player", "Date")
	fmt.Fprintf(out, "  %-6s  %-9s  %-12s  %s\n", "-----", "----", "------", "----")
	for _, r := range results {
		fmt.Fprintf(out, "  %-6d  %-9s  %-12s  %s\n",
			r.Moves, r.Duration.Round(100*time.Millisecond), playerName(r.Player), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestLevelResult(gameID, levelID)
	if err == nil && best != nil {
		fmt.Fprintf(out, "\nBest: %d moves in %s\n", best.Moves, best.Duration.Round(100*time.Millisecond))
	}
	return nil
}

func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}
