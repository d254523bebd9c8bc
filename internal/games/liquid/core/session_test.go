package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionInvalidLevelData(t *testing.T) {
	_, err := NewSession(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLevelData))

	_, err = NewSession([]CylinderSpec{
		{Capacity: 2, Colors: []Unit{Red, Red}},
		{Capacity: 3, Colors: []Unit{None, Blue, None}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLevelData))

	var lde *LevelDataError
	require.True(t, errors.As(err, &lde))
	assert.Equal(t, 1, lde.Index)
	assert.Contains(t, err.Error(), "cylinder 1")
}

func TestSessionIsSolved(t *testing.T) {
	tests := []struct {
		name   string
		specs  []CylinderSpec
		solved bool
	}{
		{
			name: "solved and empty",
			specs: []CylinderSpec{
				{Capacity: 2, Colors: []Unit{Red, Red}},
				{Capacity: 2, Colors: []Unit{None, None}},
			},
			solved: true,
		},
		{
			name: "partial column",
			specs: []CylinderSpec{
				{Capacity: 2, Colors: []Unit{Red, None}},
				{Capacity: 2, Colors: []Unit{Red, None}},
			},
			solved: false,
		},
		{
			name: "mixed full column",
			specs: []CylinderSpec{
				{Capacity: 2, Colors: []Unit{Red, Blue}},
				{Capacity: 2, Colors: []Unit{Blue, Red}},
			},
			solved: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSession(tc.specs)
			require.NoError(t, err)
			assert.Equal(t, tc.solved, s.IsSolved())
		})
	}
}

func TestSessionLookupAndViews(t *testing.T) {
	s, err := NewSession([]CylinderSpec{
		{Capacity: 3, Colors: []Unit{Red, Blue, None}},
		{Capacity: 3, Colors: []Unit{Blue, None, None}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	_, ok := s.Cylinder(2)
	assert.False(t, ok)

	c, ok := s.Cylinder(1)
	require.True(t, ok)
	assert.Same(t, c, s.Cylinders()[1])

	assert.Equal(t, map[Unit]int{Red: 1, Blue: 2}, s.Units())
	assert.Equal(t, "RB|B", s.Key())
	assert.Equal(t, "0:[RB.] 1:[B..]", s.String())

	specs := s.Specs()
	specs[0].Colors[0] = Green
	assert.Equal(t, Red, s.cylinders[0].Slot(0), "Specs must copy")
}

func TestSessionCloneIsIndependent(t *testing.T) {
	s, err := NewSession([]CylinderSpec{
		{Capacity: 2, Colors: []Unit{Red, None}},
		{Capacity: 2, Colors: []Unit{None, None}},
	})
	require.NoError(t, err)

	cp := s.clone()
	a, _ := cp.Cylinder(0)
	b, _ := cp.Cylinder(1)
	require.True(t, TryPour(a, b).Applied)

	assert.Equal(t, "R|", s.Key())
	assert.Equal(t, "|R", cp.Key())
}
