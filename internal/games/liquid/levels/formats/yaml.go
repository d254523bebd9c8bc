// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
	"gopkg.in/yaml.v3"
)

// DefaultCapacity is used when a level file omits capacity.
const DefaultCapacity = 4

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Capacity  int               `yaml:"capacity,omitempty"`
	Cylinders [][]string        `yaml:"cylinders"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID        string
	Name      string
	Capacity  int
	Cylinders [][]core.Unit // Bottom to top, padded with None to Capacity
	Metadata  map[string]string
}

// ParseYAML parses a YAML level file.
// Cylinder lists run bottom to top and are padded with none up to capacity.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing level id")
	}

	capacity := yl.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	level := Level{
		ID:        yl.ID,
		Name:      yl.Name,
		Capacity:  capacity,
		Cylinders: make([][]core.Unit, len(yl.Cylinders)),
		Metadata:  yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	for i, names := range yl.Cylinders {
		if len(names) > capacity {
			return Level{}, fmt.Errorf("cylinder %d: %d units exceed capacity %d", i, len(names), capacity)
		}
		slots := make([]core.Unit, capacity)
		for j, name := range names {
			u, ok := core.ParseUnit(name)
			if !ok {
				return Level{}, fmt.Errorf("cylinder %d: unknown color %q", i, name)
			}
			slots[j] = u
		}
		level.Cylinders[i] = slots
	}

	// Structural check; rule-level problems surface as ErrInvalidLevelData
	if _, err := core.NewSession(level.Specs()); err != nil {
		return Level{}, err
	}

	return level, nil
}

// Specs converts the parsed cylinders into engine specs.
func (l *Level) Specs() []core.CylinderSpec {
	specs := make([]core.CylinderSpec, len(l.Cylinders))
	for i, col := range l.Cylinders {
		colors := make([]core.Unit, len(col))
		copy(colors, col)
		specs[i] = core.CylinderSpec{Capacity: l.Capacity, Colors: colors}
	}
	return specs
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
