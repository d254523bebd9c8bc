package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryPourMovesTopRun(t *testing.T) {
	src := cyl(t, Red, Red, Blue, Blue)
	dst := cyl(t, Blue, None, None, None)

	out := TryPour(src, dst)

	require.True(t, out.Applied)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, []Unit{Red, Red, None, None}, src.Slots())
	assert.Equal(t, []Unit{Blue, Blue, Blue, None}, dst.Slots())
	assert.Equal(t, []PourEvent{
		{Color: Blue, SourceSlot: 3, DestSlot: 1},
		{Color: Blue, SourceSlot: 2, DestSlot: 2},
	}, out.Events)
}

func TestTryPourAlternatingMovesOneUnit(t *testing.T) {
	src := cyl(t, Red, Green, Red, Green)
	dst := cyl(t, None, None, None, None)

	out := TryPour(src, dst)

	require.True(t, out.Applied)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, []Unit{Red, Green, Red, None}, src.Slots())
	assert.Equal(t, []Unit{Green, None, None, None}, dst.Slots())
	assert.Equal(t, []PourEvent{{Color: Green, SourceSlot: 3, DestSlot: 0}}, out.Events)
}

func TestTryPourBoundedByFreeSpace(t *testing.T) {
	src := cyl(t, Yellow, Yellow, Yellow, None)
	dst := cyl(t, Red, Yellow, None, None)

	out := TryPour(src, dst)

	require.True(t, out.Applied)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, []Unit{Yellow, None, None, None}, src.Slots())
	assert.Equal(t, []Unit{Red, Yellow, Yellow, Yellow}, dst.Slots())
	assert.True(t, dst.IsFull())
	assert.False(t, dst.IsSolved())
}

func TestTryPourCompletesSolvedCylinder(t *testing.T) {
	src := cyl(t, Blue, Red, None, None)
	dst := cyl(t, Red, Red, Red, None)

	out := TryPour(src, dst)

	require.True(t, out.Applied)
	assert.True(t, dst.IsSolved())
	assert.Equal(t, []Unit{Blue, None, None, None}, src.Slots())
}

func TestTryPourRejections(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) (*Cylinder, *Cylinder)
		reason RejectReason
		err    error
	}{
		{
			name: "same cylinder",
			setup: func(t *testing.T) (*Cylinder, *Cylinder) {
				c := cyl(t, Red, None)
				return c, c
			},
			reason: RejectSameCylinder,
			err:    ErrSameCylinder,
		},
		{
			name: "source empty",
			setup: func(t *testing.T) (*Cylinder, *Cylinder) {
				return cyl(t, None, None), cyl(t, Red, None)
			},
			reason: RejectSourceEmpty,
			err:    ErrSourceEmpty,
		},
		{
			name: "source locked",
			setup: func(t *testing.T) (*Cylinder, *Cylinder) {
				src := cyl(t, Red, None)
				src.locked = true
				return src, cyl(t, None, None)
			},
			reason: RejectCylinderBusy,
			err:    ErrCylinderBusy,
		},
		{
			name: "destination locked",
			setup: func(t *testing.T) (*Cylinder, *Cylinder) {
				dst := cyl(t, Red, None)
				dst.locked = true
				return cyl(t, Red, None), dst
			},
			reason: RejectCylinderBusy,
			err:    ErrCylinderBusy,
		},
		{
			name: "destination full",
			setup: func(t *testing.T) (*Cylinder, *Cylinder) {
				return cyl(t, Red, None), cyl(t, Blue, Red)
			},
			reason: RejectDestinationFull,
			err:    ErrDestinationFull,
		},
		{
			name: "color mismatch",
			setup: func(t *testing.T) (*Cylinder, *Cylinder) {
				return cyl(t, Red, Red, Blue, Blue), cyl(t, Red, None, None, None)
			},
			reason: RejectColorMismatch,
			err:    ErrColorMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, dst := tc.setup(t)
			srcBefore, dstBefore := *src.clone(), *dst.clone()

			out := TryPour(src, dst)

			assert.True(t, out.Rejected())
			assert.Equal(t, tc.reason, out.Reason)
			assert.Zero(t, out.Count)
			assert.Empty(t, out.Events)
			assert.True(t, errors.Is(out.Reason.Err(), tc.err))

			// No mutation on rejection
			assert.Equal(t, srcBefore, *src)
			assert.Equal(t, dstBefore, *dst)
		})
	}
}

func TestCheckPourOrder(t *testing.T) {
	// An empty source poured into a full, locked cylinder reports the
	// first failing check.
	src := cyl(t, None, None)
	dst := cyl(t, Red, Red)
	dst.locked = true

	_, reason := CheckPour(src, dst)
	assert.Equal(t, RejectSourceEmpty, reason)

	// Locked beats full
	src = cyl(t, Red, None)
	_, reason = CheckPour(src, dst)
	assert.Equal(t, RejectCylinderBusy, reason)
}

func TestRejectReasonString(t *testing.T) {
	assert.Equal(t, "color_mismatch", RejectColorMismatch.String())
	assert.Nil(t, RejectNone.Err())
}

// TestPourProperties plays random pours on random layouts and checks
// conservation, contiguity, transfer counts and rejection purity.
func TestPourProperties(t *testing.T) {
	rng := NewRNG(7)

	for round := range 200 {
		s := randomSession(t, rng)
		before := s.Units()

		for range 30 {
			i := rng.Intn(s.Len())
			j := rng.Intn(s.Len())
			src, _ := s.Cylinder(i)
			dst, _ := s.Cylinder(j)

			srcBefore := src.Slots()
			dstBefore := dst.Slots()
			_, run := src.TopRun()
			free := dst.FreeCount()

			out := TryPour(src, dst)

			if out.Rejected() {
				require.Equal(t, srcBefore, src.Slots(), "round %d: rejected pour mutated source", round)
				require.Equal(t, dstBefore, dst.Slots(), "round %d: rejected pour mutated destination", round)
				continue
			}

			require.Equal(t, min(run, free), out.Count, "round %d", round)
			require.GreaterOrEqual(t, out.Count, 1)
			require.Len(t, out.Events, out.Count)
			require.Equal(t, before, s.Units(), "round %d: units not conserved", round)

			for _, c := range s.Cylinders() {
				seenEmpty := false
				for _, u := range c.Slots() {
					if u == None {
						seenEmpty = true
						continue
					}
					require.False(t, seenEmpty, "round %d: gap in %s", round, c)
				}
				require.Equal(t, c.IsFull() && isUniform(c), c.IsSolved())
			}
		}
	}
}

func isUniform(c *Cylinder) bool {
	for i := 1; i < c.FillCount(); i++ {
		if c.Slot(i) != c.Slot(0) {
			return false
		}
	}
	return true
}

// randomSession builds a session of random contiguous columns.
func randomSession(t *testing.T, rng *SimpleRNG) *Session {
	t.Helper()
	capacity := 2 + rng.Intn(4)
	n := 2 + rng.Intn(5)
	palette := Palette()[:3]

	specs := make([]CylinderSpec, n)
	for i := range specs {
		colors := make([]Unit, capacity)
		fill := rng.Intn(capacity + 1)
		for k := range fill {
			colors[k] = palette[rng.Intn(len(palette))]
		}
		specs[i] = CylinderSpec{Capacity: capacity, Colors: colors}
	}

	s, err := NewSession(specs)
	require.NoError(t, err)
	return s
}
