package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadLiquid loads the liquid sorting configuration.
// Search order: customPath -> ~/.liquidsort/configs/liquid.yaml -> ./configs/liquid.yaml -> embedded default
func LoadLiquid(customPath string) (LiquidConfig, error) {
	cfg := DefaultLiquidConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("liquid.yaml"), filepath.Join("configs", "liquid.yaml")} {
		if path == "" {
			continue
		}
		if c, ok := tryLoad(path); ok {
			return c, nil
		}
	}

	// Use embedded default YAML
	var embedded LiquidConfig
	if err := yaml.Unmarshal(defaultLiquidYAML, &embedded); err != nil {
		return DefaultLiquidConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Missing or broken files are skipped.
func tryLoad(path string) (LiquidConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LiquidConfig{}, false
	}
	cfg := DefaultLiquidConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LiquidConfig{}, false
	}
	if cfg.Validate() != nil {
		return LiquidConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".liquidsort", "configs", filename)
}

// ApplyLiquidPreset modifies the config based on a difficulty preset.
func ApplyLiquidPreset(cfg *LiquidConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust generated levels based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Random.Colors = 3
		cfg.Random.Empty = 2
		cfg.Scoring.MoveBudget = cfg.Scoring.MoveBudget * 2 / 3
	case DifficultyHard:
		cfg.Random.Colors = 5
		cfg.Random.Empty = 2
		cfg.Scoring.MoveBudget = cfg.Scoring.MoveBudget * 3 / 2
	}
}
