package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/liquidsort/internal/games/liquid"
	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid/levels"
	"github.com/vovakirdan/liquidsort/internal/storage"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var flagSolveSteps bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, validate and solve level files",
	Long: `Tools for level authors.

Level files are YAML documents listing cylinders bottom to top:

  id: lvl07
  name: Twist
  capacity: 4
  cylinders:
    - [red, blue, red, blue]
    - [blue, red, blue, red]
    - []

Examples:
  liquidsort levels list
  liquidsort levels validate ./my-levels
  liquidsort levels solve lvl03 --steps`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaign levels with your best results",
	Args:  cobra.NoArgs,
	RunE:  runLevelsList,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Check level files for structure, color balance and solvability",
	Long: `Validate level files or directories. Without arguments the configured
campaign is checked. Exits non-zero when any file fails.`,
	RunE: runLevelsValidate,
}

var levelsSolveCmd = &cobra.Command{
	Use:   "solve <level-id|file>",
	Short: "Print a shortest solution for a level",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsSolve,
}

func init() {
	levelsSolveCmd.Flags().BoolVar(&flagSolveSteps, "steps", false, "Print the rack after every pour")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsSolveCmd)
}

func runLevelsList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	all, err := liquid.CampaignLoader().LoadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No levels found.")
		return nil
	}

	best := map[string]int{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if b, err := store.BestMoves(liquid.IDCampaign); err == nil {
			best = b
		}
		store.Close()
	} else {
		logger.Debug("scores unavailable", "error", err)
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-20s  %-9s  %s\n", "#", "ID", "Name", "Cylinders", "Best")
	fmt.Fprintf(out, "  %-4s  %-8s  %-20s  %-9s  %s\n", "-", "--", "----", "---------", "----")
	for i, lvl := range all {
		bestStr := dimStyle.Render("-")
		if moves, ok := best[lvl.ID]; ok {
			bestStr = fmt.Sprintf("%d moves", moves)
		}
		fmt.Fprintf(out, "  %-4d  %-8s  %-20s  %-9d  %s\n", i+1, lvl.ID, lvl.Name, len(lvl.Cylinders), bestStr)
	}
	return nil
}

func runLevelsValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	maxStates := liquid.Config().Solver.MaxStates

	var reports []levels.Report
	if len(args) == 0 {
		r, err := liquid.CampaignLoader().Check(maxStates)
		if err != nil {
			return err
		}
		reports = r
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			reports = append(reports, levels.CheckFile(arg, maxStates))
			continue
		}
		r, err := levels.NewLoader(arg).Check(maxStates)
		if err != nil {
			return err
		}
		reports = append(reports, r...)
	}

	failed := printReports(out, reports)
	fmt.Fprintf(out, "\n%d checked, %d failed\n", len(reports), failed)
	if failed > 0 {
		return fmt.Errorf("%d level file(s) failed validation", failed)
	}
	return nil
}

func printReports(out io.Writer, reports []levels.Report) int {
	failed := 0
	for _, r := range reports {
		if r.OK() {
			fmt.Fprintf(out, "%s  %s (%s) solvable in %d moves\n", okStyle.Render("ok  "), r.Path, r.ID, r.Moves)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s  %s: %v\n", failStyle.Render("FAIL"), r.Path, r.Err)
	}
	return failed
}

func runLevelsSolve(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	lvl, err := resolveLevel(args[0])
	if err != nil {
		return err
	}

	sol, err := core.Solve(lvl.Specs(), liquid.Config().Solver.MaxStates)
	switch {
	case errors.Is(err, core.ErrSearchLimit):
		return fmt.Errorf("%s: no solution found within %d states", lvl.ID, sol.States)
	case err != nil:
		return fmt.Errorf("%s: %w", lvl.ID, err)
	}

	session, err := lvl.NewSession()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s - %s\n\n%s\n\n", lvl.ID, lvl.Name, liquid.ASCII(session))
	fmt.Fprintf(out, "Solved in %d moves (%d states searched):\n", len(sol.Moves), sol.States)

	if !flagSolveSteps {
		steps := make([]string, len(sol.Moves))
		for i, mv := range sol.Moves {
			steps[i] = fmt.Sprintf("%d->%d", mv.From+1, mv.To+1)
		}
		fmt.Fprintln(out, "  "+strings.Join(steps, "  "))
		return nil
	}

	m := core.NewMachine(session)
	for i, mv := range sol.Moves {
		outcome, err := m.Pour(mv.From, mv.To)
		if err != nil {
			return err
		}
		if outcome.Rejected() {
			return fmt.Errorf("move %d (%d->%d) rejected: %s", i+1, mv.From+1, mv.To+1, outcome.Reason)
		}
		m.OnAnimationComplete(mv.From)
		fmt.Fprintf(out, "\n%d. pour %d into %d (%d units)\n%s\n", i+1, mv.From+1, mv.To+1, outcome.Count, liquid.ASCII(session))
	}
	if !m.IsSolved() {
		return fmt.Errorf("%s: replay did not reach a solved rack", lvl.ID)
	}
	return nil
}

// resolveLevel treats the argument as a file when it exists on disk,
// otherwise as a campaign level ID.
func resolveLevel(arg string) (levels.Level, error) {
	if _, err := os.Stat(arg); err == nil {
		return (&levels.Loader{Root: filepath.Dir(arg)}).LoadFile(arg)
	}
	return liquid.CampaignLoader().LoadByID(arg)
}
