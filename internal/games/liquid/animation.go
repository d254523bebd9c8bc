package liquid

import (
	"github.com/vovakirdan/liquidsort/internal/config"
	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
)

// Phase is a stage of the pour animation.
type Phase int

const (
	PhaseLift   Phase = iota // Source rises out of the rack
	PhaseTilt                // Source tips toward the destination
	PhaseDrain               // One step per unit moved
	PhaseUntilt              // Source rights itself
	PhaseReturn              // Source drops back into place
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLift:
		return "lift"
	case PhaseTilt:
		return "tilt"
	case PhaseDrain:
		return "drain"
	case PhaseUntilt:
		return "untilt"
	case PhaseReturn:
		return "return"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Playback animates one accepted pour. The engine has already moved the
// units; the playback only decides what the player sees until it is done,
// at which point the game reports completion to the machine.
type Playback struct {
	Source int
	Dest   int
	Events []core.PourEvent

	timing  config.AnimationConfig
	phase   Phase
	ticks   int // Ticks spent in the current phase (or current drain step)
	drained int // Events already shown as moved
}

func newPlayback(source, dest int, events []core.PourEvent, timing config.AnimationConfig) *Playback {
	return &Playback{
		Source: source,
		Dest:   dest,
		Events: events,
		timing: timing,
	}
}

// Phase returns the current phase.
func (p *Playback) Phase() Phase {
	return p.phase
}

// Drained returns how many units have visibly moved.
func (p *Playback) Drained() int {
	return p.drained
}

// Done reports whether the animation has finished.
func (p *Playback) Done() bool {
	return p.phase == PhaseDone
}

// Advance moves the animation forward by one tick.
// Phases with zero duration are skipped within the same tick.
func (p *Playback) Advance() {
	if p.phase == PhaseDone {
		return
	}
	p.ticks++
	for p.phase != PhaseDone && p.ticks >= p.duration() {
		p.ticks -= p.duration()
		p.next()
	}
}

func (p *Playback) duration() int {
	switch p.phase {
	case PhaseLift:
		return p.timing.LiftTicks
	case PhaseTilt:
		return p.timing.TiltTicks
	case PhaseDrain:
		return p.timing.DrainTicks
	case PhaseUntilt:
		return p.timing.UntiltTicks
	case PhaseReturn:
		return p.timing.ReturnTicks
	default:
		return 0
	}
}

func (p *Playback) next() {
	if p.phase == PhaseDrain {
		p.drained++
		if p.drained < len(p.Events) {
			return
		}
	}
	p.phase++
}

// Offset returns the screen displacement of the source cylinder.
func (p *Playback) Offset() (dx, dy int) {
	switch p.phase {
	case PhaseLift:
		if p.ticks*2 >= p.timing.LiftTicks {
			return 0, -1
		}
		return 0, 0
	case PhaseTilt, PhaseDrain, PhaseUntilt:
		if p.Dest > p.Source {
			return 1, -1
		}
		return -1, -1
	case PhaseReturn:
		if p.ticks*2 < p.timing.ReturnTicks {
			return 0, -1
		}
		return 0, 0
	default:
		return 0, 0
	}
}

// Tilted reports whether the source is drawn tipped over.
func (p *Playback) Tilted() bool {
	return p.phase == PhaseTilt || p.phase == PhaseDrain || p.phase == PhaseUntilt
}

// overlay rewrites displayed slots so units not yet drained still appear
// in the source and not in the destination.
func (p *Playback) overlay(slots [][]core.Unit) {
	for _, ev := range p.Events[p.drained:] {
		if p.Dest < len(slots) && ev.DestSlot < len(slots[p.Dest]) {
			slots[p.Dest][ev.DestSlot] = core.None
		}
		if p.Source < len(slots) && ev.SourceSlot < len(slots[p.Source]) {
			slots[p.Source][ev.SourceSlot] = ev.Color
		}
	}
}
