package config

import (
	_ "embed"
)

//go:embed defaults/liquid.yaml
var defaultLiquidYAML []byte

// DefaultLiquidConfig returns the default liquid sorting configuration.
func DefaultLiquidConfig() LiquidConfig {
	return LiquidConfig{
		Animation: AnimationConfig{
			LiftTicks:       6,
			TiltTicks:       6,
			DrainTicks:      8,
			UntiltTicks:     6,
			ReturnTicks:     6,
			ClearDelayTicks: 60,
		},
		Levels: LevelsConfig{
			Dir: "",
		},
		Random: RandomConfig{
			Colors:      4,
			Capacity:    4,
			Empty:       2,
			MaxAttempts: 20,
		},
		Solver: SolverConfig{
			MaxStates: 200000,
		},
		Scoring: ScoringConfig{
			LevelPoints: 100,
			MoveBonus:   5,
			MoveBudget:  30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLevels,
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				ExtraColors:    3,
				EmptyReduction: 0,
			},
		},
	}
}
