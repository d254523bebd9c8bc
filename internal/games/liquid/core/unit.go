// Package core provides the rule engine for the liquid sorting puzzle.
// This package is UI-agnostic and deterministic: it owns cylinders, pour
// legality, the selection/lock state machine and win detection. Animation
// is left to the caller, which reports completion back through the Machine.
package core

import "strings"

// Unit is one slot's worth of liquid. The zero value None marks an empty slot.
type Unit uint8

const (
	None Unit = iota
	Red
	Green
	Blue
	Yellow
	Purple
	Orange
	Cyan
	Pink
	unitCount // Sentinel value for iteration
)

// String returns the string representation of a unit.
func (u Unit) String() string {
	switch u {
	case None:
		return "none"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	case Orange:
		return "orange"
	case Cyan:
		return "cyan"
	case Pink:
		return "pink"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (u Unit) Char() rune {
	switch u {
	case None:
		return '.'
	case Red:
		return 'R'
	case Green:
		return 'G'
	case Blue:
		return 'B'
	case Yellow:
		return 'Y'
	case Purple:
		return 'P'
	case Orange:
		return 'O'
	case Cyan:
		return 'C'
	case Pink:
		return 'K'
	default:
		return '?'
	}
}

// IsColor reports whether u is a palette color (not None, not out of range).
func (u Unit) IsColor() bool {
	return u > None && u < unitCount
}

// ParseUnit converts a string to a Unit.
// Accepts full names, single letters and "none", "-", "." for an empty slot.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "-", ".", "":
		return None, true
	case "red", "r":
		return Red, true
	case "green", "g":
		return Green, true
	case "blue", "b":
		return Blue, true
	case "yellow", "y":
		return Yellow, true
	case "purple", "p":
		return Purple, true
	case "orange", "o":
		return Orange, true
	case "cyan", "c":
		return Cyan, true
	case "pink", "k":
		return Pink, true
	default:
		return None, false
	}
}

// Palette returns all colors in declaration order, excluding None.
func Palette() []Unit {
	return []Unit{Red, Green, Blue, Yellow, Purple, Orange, Cyan, Pink}
}
