package core

import (
	"fmt"
	"strings"
)

// Cylinder is a capacity-bounded stack of liquid units.
// Slots are indexed bottom (0) to top (Capacity-1) and always filled
// contiguously from the bottom.
type Cylinder struct {
	slots  []Unit
	fill   int // Number of filled slots; slots[fill:] are None
	locked bool

	// Derived state, recomputed after every mutation
	empty   bool
	full    bool
	solved  bool
	runUnit Unit
	runLen  int
}

// NewCylinder creates a cylinder from its initial colors, bottom to top.
// Fails with ErrInvalidLevelData if the length does not match capacity,
// a value is outside the palette, or a None slot sits below a filled one.
func NewCylinder(capacity int, colors []Unit) (*Cylinder, error) {
	if reason := checkColors(capacity, colors); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLevelData, reason)
	}

	slots := make([]Unit, capacity)
	copy(slots, colors)
	fill := 0
	for fill < capacity && slots[fill] != None {
		fill++
	}

	c := &Cylinder{slots: slots, fill: fill}
	c.derive()
	return c, nil
}

// checkColors returns why an initial assignment is malformed, or "".
func checkColors(capacity int, colors []Unit) string {
	if capacity < 1 {
		return fmt.Sprintf("capacity %d must be positive", capacity)
	}
	if len(colors) != capacity {
		return fmt.Sprintf("%d units for capacity %d", len(colors), capacity)
	}
	seenEmpty := false
	for i, u := range colors {
		switch {
		case u == None:
			seenEmpty = true
		case !u.IsColor():
			return fmt.Sprintf("slot %d has unknown unit %d", i, u)
		case seenEmpty:
			return fmt.Sprintf("slot %d is filled above an empty slot", i)
		}
	}
	return ""
}

// derive recomputes the cached flags and top run, then checks invariants.
func (c *Cylinder) derive() {
	c.empty = c.fill == 0
	c.full = c.fill == len(c.slots)

	c.runUnit, c.runLen = None, 0
	if !c.empty {
		c.runUnit = c.slots[c.fill-1]
		for i := c.fill - 1; i >= 0 && c.slots[i] == c.runUnit; i-- {
			c.runLen++
		}
	}
	c.solved = c.full && c.runLen == len(c.slots)

	c.checkInvariant()
}

// checkInvariant panics if the slots are not contiguous from the bottom.
func (c *Cylinder) checkInvariant() {
	for i, u := range c.slots {
		if i < c.fill && u == None {
			invariantf("slot %d empty below fill level %d", i, c.fill)
		}
		if i >= c.fill && u != None {
			invariantf("slot %d filled above fill level %d", i, c.fill)
		}
	}
}

// Capacity returns the number of slots.
func (c *Cylinder) Capacity() int {
	return len(c.slots)
}

// Slot returns the unit at index i (0 is the bottom).
// Returns None for out-of-range indices.
func (c *Cylinder) Slot(i int) Unit {
	if i < 0 || i >= len(c.slots) {
		return None
	}
	return c.slots[i]
}

// Slots returns a copy of the slots, bottom to top.
func (c *Cylinder) Slots() []Unit {
	out := make([]Unit, len(c.slots))
	copy(out, c.slots)
	return out
}

// IsEmpty returns true if every slot is None.
func (c *Cylinder) IsEmpty() bool {
	return c.empty
}

// IsFull returns true if no slot is None.
func (c *Cylinder) IsFull() bool {
	return c.full
}

// IsSolved returns true if the cylinder is full and single-colored.
func (c *Cylinder) IsSolved() bool {
	return c.solved
}

// IsLocked returns true while a pour out of this cylinder is animating.
func (c *Cylinder) IsLocked() bool {
	return c.locked
}

// TopRun returns the color and length of the maximal same-color block at
// the top of the liquid column. Length is 0 only when the cylinder is empty.
func (c *Cylinder) TopRun() (Unit, int) {
	return c.runUnit, c.runLen
}

// FreeCount returns the number of None slots.
func (c *Cylinder) FreeCount() int {
	return len(c.slots) - c.fill
}

// FillCount returns the number of filled slots.
func (c *Cylinder) FillCount() int {
	return c.fill
}

// applyTransferIn writes units at the lowest free slots, upward.
func (c *Cylinder) applyTransferIn(units []Unit) {
	if len(units) > c.FreeCount() {
		invariantf("transfer in of %d units exceeds %d free slots", len(units), c.FreeCount())
	}
	for _, u := range units {
		if !u.IsColor() {
			invariantf("transfer in of non-color unit %d", u)
		}
		c.slots[c.fill] = u
		c.fill++
	}
	c.derive()
}

// applyTransferOut clears count slots from the top and returns the removed
// units in removal order (top first).
func (c *Cylinder) applyTransferOut(count int) []Unit {
	if count > c.fill {
		invariantf("transfer out of %d units exceeds fill %d", count, c.fill)
	}
	out := make([]Unit, 0, count)
	for range count {
		c.fill--
		out = append(out, c.slots[c.fill])
		c.slots[c.fill] = None
	}
	c.derive()
	return out
}

// clone returns a deep copy, including the lock flag.
func (c *Cylinder) clone() *Cylinder {
	cp := *c
	cp.slots = make([]Unit, len(c.slots))
	copy(cp.slots, c.slots)
	return &cp
}

// String renders the slots bottom to top, e.g. "[RRB.]".
func (c *Cylinder) String() string {
	var sb strings.Builder
	sb.Grow(len(c.slots) + 2)
	sb.WriteByte('[')
	for _, u := range c.slots {
		sb.WriteRune(u.Char())
	}
	sb.WriteByte(']')
	return sb.String()
}
