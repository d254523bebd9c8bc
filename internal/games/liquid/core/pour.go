package core

// RejectReason explains why a pour was not applied.
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectSameCylinder
	RejectSourceEmpty
	RejectCylinderBusy
	RejectDestinationFull
	RejectColorMismatch
)

// String returns the string representation of a reject reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectSameCylinder:
		return "same_cylinder"
	case RejectSourceEmpty:
		return "source_empty"
	case RejectCylinderBusy:
		return "cylinder_busy"
	case RejectDestinationFull:
		return "destination_full"
	case RejectColorMismatch:
		return "color_mismatch"
	default:
		return "unknown"
	}
}

// Err maps the reason to its sentinel error, or nil for RejectNone.
func (r RejectReason) Err() error {
	switch r {
	case RejectSameCylinder:
		return ErrSameCylinder
	case RejectSourceEmpty:
		return ErrSourceEmpty
	case RejectCylinderBusy:
		return ErrCylinderBusy
	case RejectDestinationFull:
		return ErrDestinationFull
	case RejectColorMismatch:
		return ErrColorMismatch
	default:
		return nil
	}
}

// PourEvent records a single unit leaving the source and landing in the
// destination.
type PourEvent struct {
	Color      Unit
	SourceSlot int
	DestSlot   int
}

// PourOutcome is the result of an attempted pour.
type PourOutcome struct {
	Applied bool
	Reason  RejectReason // Valid only when Applied is false
	Count   int          // Units moved; 0 when rejected
	Events  []PourEvent  // Ordered: source top-down, destination bottom-up
}

// Rejected returns true if the pour was not applied.
func (o PourOutcome) Rejected() bool {
	return !o.Applied
}

func rejected(r RejectReason) PourOutcome {
	return PourOutcome{Reason: r}
}

// CheckPour evaluates legality without mutating either cylinder.
// Returns the number of units that would move, or the reject reason.
//
// Checks, in order:
//  1. Source and destination are the same cylinder
//  2. Source is empty
//  3. Either cylinder is locked
//  4. Destination is full
//  5. Destination is non-empty and its top color differs from the source's
func CheckPour(src, dst *Cylinder) (int, RejectReason) {
	if src == dst {
		return 0, RejectSameCylinder
	}
	if src.IsEmpty() {
		return 0, RejectSourceEmpty
	}
	if src.IsLocked() || dst.IsLocked() {
		return 0, RejectCylinderBusy
	}
	if dst.IsFull() {
		return 0, RejectDestinationFull
	}

	srcColor, runLen := src.TopRun()
	if !dst.IsEmpty() {
		if dstColor, _ := dst.TopRun(); dstColor != srcColor {
			return 0, RejectColorMismatch
		}
	}

	return min(runLen, dst.FreeCount()), RejectNone
}

// TryPour moves the source's top run (bounded by the destination's free
// space) into the destination. Rejections leave both cylinders untouched.
func TryPour(src, dst *Cylinder) PourOutcome {
	count, reason := CheckPour(src, dst)
	if reason != RejectNone {
		return rejected(reason)
	}

	srcTop := src.FillCount() - 1
	dstBase := dst.FillCount()

	moved := src.applyTransferOut(count)
	dst.applyTransferIn(moved)

	events := make([]PourEvent, count)
	for i, u := range moved {
		events[i] = PourEvent{
			Color:      u,
			SourceSlot: srcTop - i,
			DestSlot:   dstBase + i,
		}
	}

	return PourOutcome{
		Applied: true,
		Count:   count,
		Events:  events,
	}
}
