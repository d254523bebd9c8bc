package core

import "fmt"

// State is the coarse state of the selection machine.
type State uint8

const (
	StateIdle     State = iota // Nothing selected, no pour awaiting completion
	StateSelected              // A source cylinder is selected
	StatePouring               // Nothing selected, one or more pours animating
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StatePouring:
		return "pouring"
	default:
		return "unknown"
	}
}

// TransitionKind describes what a Select or Pour call did.
type TransitionKind uint8

const (
	TransitionIgnored    TransitionKind = iota // No-op (locked, empty, solved)
	TransitionSelected                         // Idle -> Selected
	TransitionDeselected                       // Selected(c) -> Idle via select(c) or Deselect
	TransitionRejected                         // Pour attempted and rejected, selection cleared
	TransitionPoured                           // Pour applied, source locked
	TransitionReleased                         // Animation completed, source unlocked
)

// String returns the string representation of a transition kind.
func (k TransitionKind) String() string {
	switch k {
	case TransitionIgnored:
		return "ignored"
	case TransitionSelected:
		return "selected"
	case TransitionDeselected:
		return "deselected"
	case TransitionRejected:
		return "rejected"
	case TransitionPoured:
		return "poured"
	case TransitionReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Transition is reported for every call that reaches the machine.
type Transition struct {
	Kind    TransitionKind
	Source  int // -1 when not applicable
	Dest    int // -1 when not applicable
	Outcome PourOutcome
}

// Flight is a pour that has been applied but whose animation has not
// completed yet.
type Flight struct {
	Source int
	Dest   int
	Events []PourEvent
}

// Observer is notified of every transition, after state has changed.
type Observer func(Transition)

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithObserver registers a transition observer.
func WithObserver(o Observer) MachineOption {
	return func(m *Machine) {
		m.observer = o
	}
}

// Machine is the selection state machine. It tracks the active source,
// locks the source of every applied pour until the presentation layer
// reports completion, and counts moves.
type Machine struct {
	session  *Session
	selected int // -1 when nothing is selected
	flights  []Flight
	moves    int
	observer Observer
}

// NewMachine creates a machine in the Idle state over the given session.
func NewMachine(s *Session, opts ...MachineOption) *Machine {
	m := &Machine{
		session:  s,
		selected: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the session this machine drives.
func (m *Machine) Session() *Session {
	return m.session
}

// State returns the current coarse state.
func (m *Machine) State() State {
	switch {
	case m.selected >= 0:
		return StateSelected
	case len(m.flights) > 0:
		return StatePouring
	default:
		return StateIdle
	}
}

// Selected returns the selected cylinder id, if any.
func (m *Machine) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// Moves returns the number of applied pours.
func (m *Machine) Moves() int {
	return m.moves
}

// IsSolved reports whether the session is solved.
func (m *Machine) IsSolved() bool {
	return m.session.IsSolved()
}

// InFlight returns the pours awaiting animation completion, oldest first.
func (m *Machine) InFlight() []Flight {
	out := make([]Flight, len(m.flights))
	copy(out, m.flights)
	return out
}

// Select handles a click on cylinder id.
//
//   - a locked cylinder is ignored in any state
//   - Idle: selects id if it is non-empty and not solved
//   - Selected(id): deselects
//   - Selected(c), c != id: pours c into id
func (m *Machine) Select(id int) (Transition, error) {
	c, ok := m.session.Cylinder(id)
	if !ok {
		return Transition{}, fmt.Errorf("select %d: %w", id, ErrUnknownCylinder)
	}

	if c.IsLocked() {
		return m.emit(Transition{Kind: TransitionIgnored, Source: m.selected, Dest: id}), nil
	}

	if m.selected < 0 {
		if c.IsEmpty() || c.IsSolved() {
			return m.emit(Transition{Kind: TransitionIgnored, Source: -1, Dest: id}), nil
		}
		m.selected = id
		return m.emit(Transition{Kind: TransitionSelected, Source: id, Dest: -1}), nil
	}

	if m.selected == id {
		m.selected = -1
		return m.emit(Transition{Kind: TransitionDeselected, Source: id, Dest: -1}), nil
	}

	src := m.selected
	outcome, err := m.pour(src, id)
	if err != nil {
		return Transition{}, err
	}
	return m.emit(pourTransition(src, id, outcome)), nil
}

// Deselect clears the selection. No-op when nothing is selected.
func (m *Machine) Deselect() {
	if m.selected < 0 {
		return
	}
	src := m.selected
	m.selected = -1
	m.emit(Transition{Kind: TransitionDeselected, Source: src, Dest: -1})
}

// Pour attempts to pour src into dst directly, bypassing selection.
// The selection is cleared whatever the outcome.
func (m *Machine) Pour(src, dst int) (PourOutcome, error) {
	outcome, err := m.pour(src, dst)
	if err != nil {
		return PourOutcome{}, err
	}
	m.emit(pourTransition(src, dst, outcome))
	return outcome, nil
}

func (m *Machine) pour(src, dst int) (PourOutcome, error) {
	from, ok := m.session.Cylinder(src)
	if !ok {
		return PourOutcome{}, fmt.Errorf("pour %d->%d: source: %w", src, dst, ErrUnknownCylinder)
	}
	to, ok := m.session.Cylinder(dst)
	if !ok {
		return PourOutcome{}, fmt.Errorf("pour %d->%d: destination: %w", src, dst, ErrUnknownCylinder)
	}

	m.selected = -1

	outcome := TryPour(from, to)
	if outcome.Applied {
		from.locked = true
		m.flights = append(m.flights, Flight{Source: src, Dest: dst, Events: outcome.Events})
		m.moves++
	}
	return outcome, nil
}

// OnAnimationComplete releases the lock held by the pour out of id.
// Returns false if id has no pour in flight.
func (m *Machine) OnAnimationComplete(id int) bool {
	for i, f := range m.flights {
		if f.Source != id {
			continue
		}
		m.flights = append(m.flights[:i], m.flights[i+1:]...)
		if c, ok := m.session.Cylinder(id); ok {
			c.locked = false
		}
		m.emit(Transition{Kind: TransitionReleased, Source: f.Source, Dest: f.Dest})
		return true
	}
	return false
}

func (m *Machine) emit(t Transition) Transition {
	if m.observer != nil {
		m.observer(t)
	}
	return t
}

func pourTransition(src, dst int, outcome PourOutcome) Transition {
	kind := TransitionRejected
	if outcome.Applied {
		kind = TransitionPoured
	}
	return Transition{Kind: kind, Source: src, Dest: dst, Outcome: outcome}
}
