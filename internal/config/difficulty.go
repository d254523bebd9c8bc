package config

import "math"

// Progression types accepted in difficulty.progression.type.
const (
	ProgressionLevels = "levels" // Ramp up with every solved level
	ProgressionNone   = "none"
)

// DifficultyManager derives generated level parameters from progress.
// It is immutable once built.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

// NewDifficultyManager creates a new difficulty manager. The initial
// level is clamped to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:     cfg,
		initial: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type == ProgressionLevels
}

// Level returns the difficulty in [0, 1] after solved levels. It rises
// linearly from the initial level and reaches 1 at Progression.MaxAt.
func (d *DifficultyManager) Level(solved int) float64 {
	if !d.IsEnabled() {
		return d.initial
	}
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	progress := clampF(float64(solved)/maxAt, 0.0, 1.0)
	return d.initial + progress*(1.0-d.initial)
}

// Colors returns the number of colors for the next generated level,
// never more than limit.
func (d *DifficultyManager) Colors(base, solved, limit int) int {
	extra := int(d.Level(solved) * float64(d.cfg.Scaling.ExtraColors))
	return min(base+extra, limit)
}

// Empty returns the number of empty cylinders for the next generated level.
// At least one empty cylinder always remains.
func (d *DifficultyManager) Empty(base, solved int) int {
	reduction := int(d.Level(solved) * float64(d.cfg.Scaling.EmptyReduction))
	return max(base-reduction, 1)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
