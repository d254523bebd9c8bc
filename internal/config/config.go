// Package config provides YAML-based game configuration loading and
// difficulty management for the liquid sorting game.
package config

import "fmt"

// LiquidConfig contains all configuration for the liquid sorting game.
type LiquidConfig struct {
	Animation  AnimationConfig  `yaml:"animation"`
	Levels     LevelsConfig     `yaml:"levels"`
	Random     RandomConfig     `yaml:"random"`
	Solver     SolverConfig     `yaml:"solver"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// AnimationConfig defines pour animation phase durations in ticks.
type AnimationConfig struct {
	LiftTicks       int `yaml:"lift_ticks"`
	TiltTicks       int `yaml:"tilt_ticks"`
	DrainTicks      int `yaml:"drain_ticks"` // Per unit moved
	UntiltTicks     int `yaml:"untilt_ticks"`
	ReturnTicks     int `yaml:"return_ticks"`
	ClearDelayTicks int `yaml:"clear_delay_ticks"` // Pause after a level is solved
}

// PourTicks returns the full duration of a pour moving count units.
func (a AnimationConfig) PourTicks(count int) int {
	return a.LiftTicks + a.TiltTicks + count*a.DrainTicks + a.UntiltTicks + a.ReturnTicks
}

// LevelsConfig locates campaign levels.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty means the bundled campaign
}

// RandomConfig defines generated level parameters.
type RandomConfig struct {
	Colors      int `yaml:"colors"`
	Capacity    int `yaml:"capacity"`
	Empty       int `yaml:"empty"`
	MaxAttempts int `yaml:"max_attempts"`
}

// SolverConfig bounds solver searches for hints and generation.
type SolverConfig struct {
	MaxStates int `yaml:"max_states"`
}

// ScoringConfig defines points per cleared level.
type ScoringConfig struct {
	LevelPoints int `yaml:"level_points"`
	MoveBonus   int `yaml:"move_bonus"` // Points per move under MoveBudget
	MoveBudget  int `yaml:"move_budget"`
}

// LevelScore returns the points for clearing a level in moves moves.
func (s ScoringConfig) LevelScore(moves int) int {
	return s.LevelPoints + max(0, s.MoveBudget-moves)*s.MoveBonus
}

// DifficultyConfig defines the difficulty progression of random mode.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // ProgressionLevels or ProgressionNone
	MaxAt int    `yaml:"max_at"` // Solved levels at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraColors    int `yaml:"extra_colors"`    // Colors added at max difficulty
	EmptyReduction int `yaml:"empty_reduction"` // Empty cylinders removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the configuration can drive a game.
func (c LiquidConfig) Validate() error {
	a := c.Animation
	for name, v := range map[string]int{
		"animation.lift_ticks":        a.LiftTicks,
		"animation.tilt_ticks":        a.TiltTicks,
		"animation.drain_ticks":       a.DrainTicks,
		"animation.untilt_ticks":      a.UntiltTicks,
		"animation.return_ticks":      a.ReturnTicks,
		"animation.clear_delay_ticks": a.ClearDelayTicks,
	} {
		if v < 0 {
			return fmt.Errorf("config: %s must not be negative", name)
		}
	}
	if c.Random.Colors < 1 {
		return fmt.Errorf("config: random.colors must be positive")
	}
	if c.Random.Capacity < 1 {
		return fmt.Errorf("config: random.capacity must be positive")
	}
	if c.Random.Empty < 0 {
		return fmt.Errorf("config: random.empty must not be negative")
	}
	if c.Solver.MaxStates < 0 {
		return fmt.Errorf("config: solver.max_states must not be negative")
	}
	return nil
}
