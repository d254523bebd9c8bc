package core

// Action is a semantic input, decoupled from the keys that produce it.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Move cursor left
	ActionRight          // Move cursor right
	ActionConfirm        // Select or pour onto the cursor cylinder
	ActionPick           // Select or pour onto InputFrame.Pick directly
	ActionBack           // Drop the current selection
	ActionHint           // Show the next solver move
	ActionRestart        // Restart the level
	ActionPause          // Pause/unpause game
	ActionQuit           // Exit game/session
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Confirm", "Pick", "Back", "Hint", "Restart", "Pause", "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions triggered during one simulation tick.
// The zero value is an empty frame.
type InputFrame struct {
	set uint32

	// Pick is the zero-based cylinder chosen with ActionPick.
	Pick int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	f.set |= 1 << a
}

// SetPick marks ActionPick for the given cylinder index.
func (f *InputFrame) SetPick(index int) {
	f.Set(ActionPick)
	f.Pick = index
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return f.set&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.set == 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}
