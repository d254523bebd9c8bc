package core

import (
	"reflect"
	"testing"
)

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionHint)
	f.SetPick(4)
	f.Set(ActionNone)
	f.Set(Action(99))

	if !f.Has(ActionHint) || !f.Has(ActionPick) {
		t.Errorf("expected Hint and Pick, got %v", f.Actions())
	}
	if f.Has(ActionNone) || f.Has(Action(99)) {
		t.Error("None and out-of-range actions must never be set")
	}
	if f.Pick != 4 {
		t.Errorf("Pick = %d, expected 4", f.Pick)
	}
	if got := f.Actions(); !reflect.DeepEqual(got, []Action{ActionPick, ActionHint}) {
		t.Errorf("Actions() = %v", got)
	}

	f.Clear()
	if !f.Empty() || f.Pick != 0 {
		t.Errorf("Clear left %v pick=%d", f.Actions(), f.Pick)
	}
}

func TestActionString(t *testing.T) {
	if ActionRestart.String() != "Restart" {
		t.Errorf("ActionRestart.String() = %q", ActionRestart.String())
	}
	if Action(-1).String() != "Unknown" || actionCount.String() != "Unknown" {
		t.Error("out-of-range actions should print Unknown")
	}
}
