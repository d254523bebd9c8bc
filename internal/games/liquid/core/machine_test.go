package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T, columns ...[]Unit) *Machine {
	t.Helper()
	specs := make([]CylinderSpec, len(columns))
	for i, col := range columns {
		specs[i] = CylinderSpec{Capacity: len(col), Colors: col}
	}
	s, err := NewSession(specs)
	require.NoError(t, err)
	return NewMachine(s)
}

func slotsOf(t *testing.T, m *Machine, id int) []Unit {
	t.Helper()
	c, ok := m.Session().Cylinder(id)
	require.True(t, ok)
	return c.Slots()
}

func TestMachineSelectAndDeselect(t *testing.T) {
	m := newMachine(t,
		[]Unit{Red, Blue, None, None},
		[]Unit{None, None, None, None},
	)
	assert.Equal(t, StateIdle, m.State())

	tr, err := m.Select(0)
	require.NoError(t, err)
	assert.Equal(t, TransitionSelected, tr.Kind)
	assert.Equal(t, StateSelected, m.State())
	id, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, 0, id)

	// Re-selecting the same cylinder deselects
	tr, err = m.Select(0)
	require.NoError(t, err)
	assert.Equal(t, TransitionDeselected, tr.Kind)
	assert.Equal(t, StateIdle, m.State())

	// Explicit Deselect
	_, _ = m.Select(0)
	m.Deselect()
	_, ok = m.Selected()
	assert.False(t, ok)
	m.Deselect() // no-op
	assert.Equal(t, StateIdle, m.State())
}

func TestMachineIgnoresEmptyAndSolvedSources(t *testing.T) {
	m := newMachine(t,
		[]Unit{None, None},
		[]Unit{Red, Red},
	)

	tr, err := m.Select(0)
	require.NoError(t, err)
	assert.Equal(t, TransitionIgnored, tr.Kind)

	tr, err = m.Select(1)
	require.NoError(t, err)
	assert.Equal(t, TransitionIgnored, tr.Kind)

	assert.Equal(t, StateIdle, m.State())
}

func TestMachineUnknownCylinder(t *testing.T) {
	m := newMachine(t, []Unit{Red, None})

	_, err := m.Select(3)
	assert.True(t, errors.Is(err, ErrUnknownCylinder))

	_, err = m.Pour(0, -1)
	assert.True(t, errors.Is(err, ErrUnknownCylinder))
}

func TestMachineRejectedPourReturnsToIdle(t *testing.T) {
	m := newMachine(t,
		[]Unit{Red, Blue, None},
		[]Unit{Red, None, None},
	)

	_, _ = m.Select(0)
	tr, err := m.Select(1)
	require.NoError(t, err)

	assert.Equal(t, TransitionRejected, tr.Kind)
	assert.Equal(t, RejectColorMismatch, tr.Outcome.Reason)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 0, m.Moves())
	assert.Equal(t, []Unit{Red, Blue, None}, slotsOf(t, m, 0))
	assert.Equal(t, []Unit{Red, None, None}, slotsOf(t, m, 1))
}

func TestMachinePourLocksSourceUntilComplete(t *testing.T) {
	m := newMachine(t,
		[]Unit{Red, Red, Blue, Blue},
		[]Unit{Blue, None, None, None},
		[]Unit{Red, Red, None, None},
	)

	_, _ = m.Select(0)
	tr, err := m.Select(1)
	require.NoError(t, err)
	require.Equal(t, TransitionPoured, tr.Kind)
	assert.Equal(t, 2, tr.Outcome.Count)

	src, _ := m.Session().Cylinder(0)
	assert.True(t, src.IsLocked())
	assert.Equal(t, StatePouring, m.State())
	_, ok := m.Selected()
	assert.False(t, ok, "selection must not persist through the animation")
	assert.Equal(t, []Flight{{Source: 0, Dest: 1, Events: tr.Outcome.Events}}, m.InFlight())

	// Locked cylinder cannot be selected in any state
	tr, _ = m.Select(0)
	assert.Equal(t, TransitionIgnored, tr.Kind)

	// Other cylinders stay selectable, but the locked one is no target
	tr, _ = m.Select(2)
	assert.Equal(t, TransitionSelected, tr.Kind)
	tr, _ = m.Select(0)
	assert.Equal(t, TransitionIgnored, tr.Kind)
	assert.Equal(t, StateSelected, m.State())
	m.Deselect()

	// A direct pour into the locked cylinder is busy
	out, err := m.Pour(2, 0)
	require.NoError(t, err)
	assert.Equal(t, RejectCylinderBusy, out.Reason)

	assert.False(t, m.OnAnimationComplete(1), "destination has no pour in flight")
	assert.True(t, m.OnAnimationComplete(0))
	assert.False(t, src.IsLocked())
	assert.Equal(t, StateIdle, m.State())
	assert.False(t, m.OnAnimationComplete(0), "second completion is a no-op")

	tr, _ = m.Select(0)
	assert.Equal(t, TransitionSelected, tr.Kind)
}

func TestMachineConcurrentFlights(t *testing.T) {
	m := newMachine(t,
		[]Unit{Red, None, None},
		[]Unit{Blue, None, None},
		[]Unit{None, None, None},
		[]Unit{None, None, None},
	)

	_, err := m.Pour(0, 2)
	require.NoError(t, err)
	_, err = m.Pour(1, 3)
	require.NoError(t, err)

	flights := m.InFlight()
	require.Len(t, flights, 2)
	assert.Equal(t, 0, flights[0].Source)
	assert.Equal(t, 1, flights[1].Source)
	assert.Equal(t, 2, m.Moves())

	assert.True(t, m.OnAnimationComplete(1))
	assert.Equal(t, StatePouring, m.State())
	assert.True(t, m.OnAnimationComplete(0))
	assert.Equal(t, StateIdle, m.State())
}

func TestMachineObserver(t *testing.T) {
	var kinds []TransitionKind
	s, err := NewSession([]CylinderSpec{
		{Capacity: 2, Colors: []Unit{Red, None}},
		{Capacity: 2, Colors: []Unit{Red, None}},
	})
	require.NoError(t, err)
	m := NewMachine(s, WithObserver(func(tr Transition) {
		kinds = append(kinds, tr.Kind)
	}))

	_, _ = m.Select(0)
	_, _ = m.Select(1)
	m.OnAnimationComplete(0)

	assert.Equal(t, []TransitionKind{TransitionSelected, TransitionPoured, TransitionReleased}, kinds)
	assert.True(t, m.IsSolved())
}

// Scenario: the run of two Blue units moves onto a Blue-topped destination,
// then the source stays unselectable until its animation completes.
func TestScenarioLockAfterAcceptedPour(t *testing.T) {
	m := newMachine(t,
		[]Unit{Red, Red, Blue, Blue},
		[]Unit{Blue, None, None, None},
	)

	_, _ = m.Select(0)
	tr, err := m.Select(1)
	require.NoError(t, err)
	require.Equal(t, TransitionPoured, tr.Kind)
	assert.Equal(t, []Unit{Red, Red, None, None}, slotsOf(t, m, 0))
	assert.Equal(t, []Unit{Blue, Blue, Blue, None}, slotsOf(t, m, 1))

	tr, _ = m.Select(0)
	assert.Equal(t, TransitionIgnored, tr.Kind)
	assert.Equal(t, StatePouring, m.State())

	require.True(t, m.OnAnimationComplete(0))
	tr, _ = m.Select(0)
	assert.Equal(t, TransitionSelected, tr.Kind)
}

// Scenario: a single-color full cylinder is a full destination; nothing moves.
func TestScenarioPourOntoSolvedCylinder(t *testing.T) {
	m := newMachine(t,
		[]Unit{Red, Red, Red, Red},
		[]Unit{Blue, None, None, None},
	)

	tr, _ := m.Select(1)
	require.Equal(t, TransitionSelected, tr.Kind)
	tr, err := m.Select(0)
	require.NoError(t, err)

	assert.Equal(t, TransitionRejected, tr.Kind)
	assert.Equal(t, RejectDestinationFull, tr.Outcome.Reason)
	assert.Equal(t, []Unit{Red, Red, Red, Red}, slotsOf(t, m, 0))
	assert.Equal(t, []Unit{Blue, None, None, None}, slotsOf(t, m, 1))
	assert.Equal(t, StateIdle, m.State())
}
