package core

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed is returned when no solvable layout was found within
// the attempt budget.
var ErrGenerationFailed = errors.New("generator: no solvable layout found")

// GenParams configures random level generation.
type GenParams struct {
	Colors      int    // Number of distinct colors (one full cylinder each)
	Capacity    int    // Units per cylinder
	Empty       int    // Extra empty cylinders
	Seed        uint64 // RNG seed for deterministic variety
	MaxAttempts int    // Retry limit for solvability
	MaxStates   int    // Solver budget per attempt
}

// DefaultGenParams returns sensible defaults for level generation.
func DefaultGenParams() GenParams {
	return GenParams{
		Colors:      4,
		Capacity:    4,
		Empty:       2,
		Seed:        0,
		MaxAttempts: 20,
		MaxStates:   DefaultMaxStates,
	}
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Generate produces a shuffled, solvable level.
// Every color fills exactly one cylinder's worth of units; Empty extra
// cylinders start empty. Layouts that are already solved are discarded.
func Generate(p GenParams) ([]CylinderSpec, error) {
	palette := Palette()
	if p.Colors < 1 || p.Colors > len(palette) {
		return nil, fmt.Errorf("generator: colors %d out of range [1, %d]", p.Colors, len(palette))
	}
	if p.Capacity < 1 {
		return nil, fmt.Errorf("generator: capacity %d must be positive", p.Capacity)
	}
	if p.Empty < 0 {
		return nil, fmt.Errorf("generator: empty %d must not be negative", p.Empty)
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	rng := NewRNG(p.Seed)

	for range attempts {
		specs := shuffledLayout(rng, palette[:p.Colors], p.Capacity, p.Empty)

		s, err := NewSession(specs)
		if err != nil {
			return nil, err
		}
		if s.IsSolved() {
			continue
		}
		if _, err := Solve(specs, p.MaxStates); err != nil {
			continue
		}
		return specs, nil
	}

	return nil, ErrGenerationFailed
}

// shuffledLayout deals colors x capacity units into filled cylinders using
// a Fisher-Yates shuffle, then appends the empty cylinders.
func shuffledLayout(rng *SimpleRNG, colors []Unit, capacity, empty int) []CylinderSpec {
	units := make([]Unit, 0, len(colors)*capacity)
	for _, c := range colors {
		for range capacity {
			units = append(units, c)
		}
	}
	for i := len(units) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		units[i], units[j] = units[j], units[i]
	}

	specs := make([]CylinderSpec, 0, len(colors)+empty)
	for i := range colors {
		slots := make([]Unit, capacity)
		copy(slots, units[i*capacity:(i+1)*capacity])
		specs = append(specs, CylinderSpec{Capacity: capacity, Colors: slots})
	}
	for range empty {
		specs = append(specs, CylinderSpec{Capacity: capacity, Colors: make([]Unit, capacity)})
	}
	return specs
}
