// liquidsort is a liquid sorting puzzle for the terminal.
//
// Usage:
//
//	liquidsort play [game]       - Play the campaign or random mode
//	liquidsort menu              - Start menu to pick a mode interactively
//	liquidsort list              - List available modes
//	liquidsort levels ...        - List, validate and solve level files
//	liquidsort scores <game>     - Show high scores for a mode
//	liquidsort serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible random levels
//	--db <path>           - Set database path (default: ~/.liquidsort/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--mono                - Monochrome menus
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/liquidsort/internal/config"
	"github.com/vovakirdan/liquidsort/internal/games/liquid"
	"github.com/vovakirdan/liquidsort/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagMono       bool
)

// logger is built in PersistentPreRunE; commands that take over the
// terminal redirect it to a file.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "liquidsort"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "liquidsort",
	Short: "Liquid Sort - sort colored liquids in your terminal",
	Long: `Liquid Sort is a terminal puzzle: pour the top run of one cylinder
onto a matching color until every cylinder holds a single color.

Available commands:
  play     - Play the campaign (or random mode) directly
  menu     - Interactive mode picker
  list     - Show available modes
  levels   - List, validate and solve level files
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  liquidsort play
  liquidsort play liquid_random --difficulty hard
  liquidsort levels validate ./my-levels
  liquidsort serve --ssh :2222 --metrics :9090`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "~/.liquidsort/scores.db", "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.StringVar(&flagLevelsDir, "levels", "", "Directory of campaign level files (default: bundled campaign)")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.BoolVar(&flagMono, "mono", false, "Monochrome menus (also set by NO_COLOR)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup configures logging and installs the game configuration.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)
	logger.SetReportTimestamp(true)

	if flagMono || os.Getenv("NO_COLOR") != "" {
		tui.SetTheme(tui.MonochromeTheme())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	liquid.SetConfig(cfg)
	logger.Debug("config loaded", "levels", cfg.Levels.Dir, "colors", cfg.Random.Colors, "max_states", cfg.Solver.MaxStates)
	return nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.LiquidConfig, error) {
	cfg, err := config.LoadLiquid(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		config.ApplyLiquidPreset(&cfg, preset)
	}

	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// redirectLogs sends log output to ~/.liquidsort/liquidsort.log while the
// terminal is owned by the TUI. The returned function restores stderr.
func redirectLogs() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	dir := filepath.Join(home, ".liquidsort")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	f, err := os.OpenFile(filepath.Join(dir, "liquidsort.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}
