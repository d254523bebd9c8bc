package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cyl builds a cylinder whose capacity equals the number of units given.
func cyl(t *testing.T, units ...Unit) *Cylinder {
	t.Helper()
	c, err := NewCylinder(len(units), units)
	require.NoError(t, err)
	return c
}

func TestNewCylinderRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		colors   []Unit
	}{
		{"zero capacity", 0, []Unit{}},
		{"too few units", 4, []Unit{Red, Red, None}},
		{"too many units", 2, []Unit{Red, Red, Red}},
		{"gap below liquid", 4, []Unit{Red, None, Blue, None}},
		{"empty bottom", 3, []Unit{None, Red, Red}},
		{"unknown unit", 2, []Unit{Red, Unit(42)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCylinder(tc.capacity, tc.colors)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, ErrInvalidLevelData), "got %v", err)
		})
	}
}

func TestCylinderDerivedState(t *testing.T) {
	tests := []struct {
		name    string
		units   []Unit
		empty   bool
		full    bool
		solved  bool
		runUnit Unit
		runLen  int
		free    int
	}{
		{"empty", []Unit{None, None, None, None}, true, false, false, None, 0, 4},
		{"single unit", []Unit{Red, None, None, None}, false, false, false, Red, 1, 3},
		{"top run of two", []Unit{Red, Red, Blue, Blue}, false, true, false, Blue, 2, 0},
		{"alternating", []Unit{Red, Green, Red, Green}, false, true, false, Green, 1, 0},
		{"solved", []Unit{Red, Red, Red, Red}, false, true, true, Red, 4, 0},
		{"uniform but not full", []Unit{Red, Red, Red, None}, false, false, false, Red, 3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cyl(t, tc.units...)
			assert.Equal(t, tc.empty, c.IsEmpty(), "IsEmpty")
			assert.Equal(t, tc.full, c.IsFull(), "IsFull")
			assert.Equal(t, tc.solved, c.IsSolved(), "IsSolved")
			u, n := c.TopRun()
			assert.Equal(t, tc.runUnit, u, "TopRun color")
			assert.Equal(t, tc.runLen, n, "TopRun length")
			assert.Equal(t, tc.free, c.FreeCount(), "FreeCount")
			assert.False(t, c.IsLocked())
		})
	}
}

func TestCylinderSlotsAreCopied(t *testing.T) {
	colors := []Unit{Red, Blue, None}
	c := cyl(t, colors...)

	colors[0] = Green
	assert.Equal(t, Red, c.Slot(0), "constructor must copy input")

	slots := c.Slots()
	slots[1] = Green
	assert.Equal(t, Blue, c.Slot(1), "Slots must return a copy")

	assert.Equal(t, None, c.Slot(-1))
	assert.Equal(t, None, c.Slot(3))
}

func TestTransferPreservesContiguity(t *testing.T) {
	c := cyl(t, Red, Blue, None, None)

	c.applyTransferIn([]Unit{Blue, Blue})
	assert.Equal(t, []Unit{Red, Blue, Blue, Blue}, c.Slots())
	assert.True(t, c.IsFull())

	out := c.applyTransferOut(3)
	assert.Equal(t, []Unit{Blue, Blue, Blue}, out)
	assert.Equal(t, []Unit{Red, None, None, None}, c.Slots())
	u, n := c.TopRun()
	assert.Equal(t, Red, u)
	assert.Equal(t, 1, n)
}

func TestTransferOverflowPanics(t *testing.T) {
	c := cyl(t, Red, Red, None)

	assert.PanicsWithValue(t,
		InvariantViolation{Message: "transfer in of 2 units exceeds 1 free slots"},
		func() { c.applyTransferIn([]Unit{Red, Red}) })

	assert.Panics(t, func() { c.applyTransferOut(3) })
	assert.Panics(t, func() { c.applyTransferIn([]Unit{None}) })
}

func TestCylinderString(t *testing.T) {
	c := cyl(t, Red, Green, None, None)
	assert.Equal(t, "[RG..]", c.String())
}

func TestParseUnit(t *testing.T) {
	for _, u := range Palette() {
		got, ok := ParseUnit(u.String())
		assert.True(t, ok, "ParseUnit(%q)", u.String())
		assert.Equal(t, u, got)
	}

	got, ok := ParseUnit(" - ")
	assert.True(t, ok)
	assert.Equal(t, None, got)

	_, ok = ParseUnit("mauve")
	assert.False(t, ok)
}
