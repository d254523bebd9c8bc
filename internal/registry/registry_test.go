package registry

import (
	"testing"

	"github.com/vovakirdan/liquidsort/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegistryRegisterAndCreate(t *testing.T) {
	r := New()
	r.Register("b", func() Game { return &stubGame{id: "b"} })
	r.Register("a", func() Game { return &stubGame{id: "a"} })

	list := r.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("List() = %+v, expected a, b", list)
	}
	if list[0].Title != "Stub a" {
		t.Errorf("Title = %q, expected %q", list[0].Title, "Stub a")
	}

	g, err := r.Create("b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "b" {
		t.Errorf("Create returned game %q", g.ID())
	}

	if !r.Exists("a") || r.Exists("c") {
		t.Error("Exists reported wrong membership")
	}
	if _, err := r.Create("c"); err == nil {
		t.Error("Create of unknown game should fail")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", func() Game { return &stubGame{id: "a"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	r.Register("a", func() Game { return &stubGame{id: "a"} })
}

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return "about " + g.id }

func TestRegistryInfo(t *testing.T) {
	r := New()
	r.Register("plain", func() Game { return &stubGame{id: "plain"} })
	r.Register("told", func() Game { return &describedGame{stubGame{id: "told"}} })

	info, ok := r.Info("told")
	if !ok || info.Description != "about told" || info.Title != "Stub told" {
		t.Errorf("Info(told) = %+v, %v", info, ok)
	}
	info, ok = r.Info("plain")
	if !ok || info.Description != "" {
		t.Errorf("Info(plain) = %+v, %v", info, ok)
	}
	if _, ok := r.Info("missing"); ok {
		t.Error("Info of unknown game should report false")
	}
}

func TestRegistryEmptyIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("empty ID should panic")
		}
	}()
	New().Register("", func() Game { return &stubGame{} })
}
