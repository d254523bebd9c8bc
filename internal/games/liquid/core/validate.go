package core

import (
	"errors"
	"fmt"
	"sort"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidateLevel performs comprehensive validation of a level layout.
// Checks:
//   - Layout is well formed (ErrInvalidLevelData otherwise)
//   - All cylinders share one capacity
//   - Each color count is a multiple of that capacity
//   - Level is not already solved
//   - Level is solvable within maxStates
func ValidateLevel(specs []CylinderSpec, maxStates int) error {
	s, err := NewSession(specs)
	if err != nil {
		return err
	}

	if err := validateCapacity(s); err != nil {
		return err
	}
	if err := validateColorCounts(s); err != nil {
		return err
	}

	if s.IsSolved() {
		return ValidationError{
			Code:    "ALREADY_SOLVED",
			Message: "level starts in a solved configuration",
		}
	}

	sol, err := Solve(specs, maxStates)
	switch {
	case errors.Is(err, ErrSearchLimit):
		return ValidationError{
			Code:    "SEARCH_LIMIT",
			Message: fmt.Sprintf("no solution within %d states", sol.States),
		}
	case err != nil:
		return ValidationError{
			Code:    "NOT_SOLVABLE",
			Message: fmt.Sprintf("search exhausted after %d states", sol.States),
		}
	}

	return nil
}

// validateCapacity checks that every cylinder has the same capacity.
func validateCapacity(s *Session) error {
	capacity := s.cylinders[0].Capacity()
	for i, c := range s.cylinders {
		if c.Capacity() != capacity {
			return ValidationError{
				Code:    "MIXED_CAPACITY",
				Message: fmt.Sprintf("cylinder %d has capacity %d, expected %d", i, c.Capacity(), capacity),
			}
		}
	}
	return nil
}

// validateColorCounts checks that each color can fill whole cylinders.
func validateColorCounts(s *Session) error {
	capacity := s.cylinders[0].Capacity()
	counts := s.Units()

	// Deterministic iteration
	colors := make([]Unit, 0, len(counts))
	for u := range counts {
		colors = append(colors, u)
	}
	sort.Slice(colors, func(i, j int) bool {
		return colors[i] < colors[j]
	})

	for _, u := range colors {
		if counts[u]%capacity != 0 {
			return ValidationError{
				Code:    "UNEVEN_COLOR",
				Message: fmt.Sprintf("color %s: %d units is not a multiple of capacity %d", u, counts[u], capacity),
			}
		}
	}
	return nil
}
