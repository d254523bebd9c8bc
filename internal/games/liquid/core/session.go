package core

import (
	"fmt"
	"strings"
)

// CylinderSpec is the initial configuration of one cylinder.
type CylinderSpec struct {
	Capacity int
	Colors   []Unit // Bottom to top, len must equal Capacity
}

// Session is the ordered set of cylinders of the current level.
// It aggregates solved state but owns no mutation logic.
type Session struct {
	cylinders []*Cylinder
}

// NewSession builds a session from a level configuration.
// Any malformed cylinder aborts construction with a *LevelDataError.
func NewSession(specs []CylinderSpec) (*Session, error) {
	if len(specs) == 0 {
		return nil, &LevelDataError{Index: -1, Reason: "no cylinders"}
	}

	cylinders := make([]*Cylinder, len(specs))
	for i, spec := range specs {
		if reason := checkColors(spec.Capacity, spec.Colors); reason != "" {
			return nil, &LevelDataError{Index: i, Reason: reason}
		}
		c, err := NewCylinder(spec.Capacity, spec.Colors)
		if err != nil {
			return nil, err
		}
		cylinders[i] = c
	}

	return &Session{cylinders: cylinders}, nil
}

// Len returns the number of cylinders.
func (s *Session) Len() int {
	return len(s.cylinders)
}

// Cylinder returns the cylinder with the given id (its index).
func (s *Session) Cylinder(id int) (*Cylinder, bool) {
	if id < 0 || id >= len(s.cylinders) {
		return nil, false
	}
	return s.cylinders[id], true
}

// Cylinders returns the cylinders in level order.
// The slice is a copy; the cylinders are shared.
func (s *Session) Cylinders() []*Cylinder {
	out := make([]*Cylinder, len(s.cylinders))
	copy(out, s.cylinders)
	return out
}

// IsSolved returns true if every cylinder is empty or solved.
func (s *Session) IsSolved() bool {
	for _, c := range s.cylinders {
		if !c.IsEmpty() && !c.IsSolved() {
			return false
		}
	}
	return true
}

// Units returns the multiset of non-None units across all cylinders.
func (s *Session) Units() map[Unit]int {
	counts := make(map[Unit]int)
	for _, c := range s.cylinders {
		for i := range c.FillCount() {
			counts[c.Slot(i)]++
		}
	}
	return counts
}

// Specs returns the current configuration, suitable for NewSession.
func (s *Session) Specs() []CylinderSpec {
	specs := make([]CylinderSpec, len(s.cylinders))
	for i, c := range s.cylinders {
		specs[i] = CylinderSpec{Capacity: c.Capacity(), Colors: c.Slots()}
	}
	return specs
}

// Key returns a canonical string of the configuration.
// Two sessions with equal keys hold the same units in the same places.
func (s *Session) Key() string {
	var sb strings.Builder
	for i, c := range s.cylinders {
		if i > 0 {
			sb.WriteByte('|')
		}
		for j := range c.FillCount() {
			sb.WriteRune(c.Slot(j).Char())
		}
	}
	return sb.String()
}

// clone returns a deep copy of the session.
func (s *Session) clone() *Session {
	cylinders := make([]*Cylinder, len(s.cylinders))
	for i, c := range s.cylinders {
		cylinders[i] = c.clone()
	}
	return &Session{cylinders: cylinders}
}

// String renders all cylinders on one line.
func (s *Session) String() string {
	parts := make([]string, len(s.cylinders))
	for i, c := range s.cylinders {
		parts[i] = fmt.Sprintf("%d:%s", i, c)
	}
	return strings.Join(parts, " ")
}
