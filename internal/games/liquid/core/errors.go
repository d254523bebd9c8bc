package core

import (
	"errors"
	"fmt"
)

// ErrInvalidLevelData is returned when an initial configuration is malformed.
// Level construction must be aborted.
var ErrInvalidLevelData = errors.New("invalid level data")

// ErrUnknownCylinder is returned when a cylinder id is not part of the session.
var ErrUnknownCylinder = errors.New("unknown cylinder")

// Sentinel errors for rejected pours, see RejectReason.Err.
var (
	ErrSameCylinder    = errors.New("pour: source and destination are the same cylinder")
	ErrSourceEmpty     = errors.New("pour: source cylinder is empty")
	ErrCylinderBusy    = errors.New("pour: cylinder is busy")
	ErrDestinationFull = errors.New("pour: destination cylinder is full")
	ErrColorMismatch   = errors.New("pour: top colors do not match")
)

// LevelDataError describes which cylinder of a configuration is malformed.
// It unwraps to ErrInvalidLevelData.
type LevelDataError struct {
	Index  int // Cylinder index, -1 for session-wide problems
	Reason string
}

func (e *LevelDataError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidLevelData, e.Reason)
	}
	return fmt.Sprintf("%s: cylinder %d: %s", ErrInvalidLevelData, e.Index, e.Reason)
}

func (e *LevelDataError) Unwrap() error {
	return ErrInvalidLevelData
}

// InvariantViolation is the panic value raised when internal state breaks
// the contiguity or derived-flag invariants. It is a programmer error.
type InvariantViolation struct {
	Message string
}

func (v InvariantViolation) Error() string {
	return "invariant violation: " + v.Message
}

func invariantf(format string, args ...any) {
	panic(InvariantViolation{Message: fmt.Sprintf(format, args...)})
}
