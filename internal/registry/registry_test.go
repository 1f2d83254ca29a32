package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bubblepop/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return stubGame{id: "test_b"} })
	Register("test_a", func() Game { return stubGame{id: "test_a"} })

	if !Exists("test_a") {
		t.Error("Exists(test_a) = false, expected true")
	}
	if Exists("test_missing") {
		t.Error("Exists(test_missing) = true, expected false")
	}

	g, err := Create("test_a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "test_a" {
		t.Errorf("ID() = %q, expected test_a", g.ID())
	}

	if _, err := Create("test_missing"); err == nil || !strings.Contains(err.Error(), "unknown game") {
		t.Errorf("Create(test_missing) error = %v, expected unknown game", err)
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "test_") {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("Title = %q, expected %q", info.Title, "Stub "+info.ID)
			}
		}
	}
	if strings.Join(ids, ",") != "test_a,test_b" {
		t.Errorf("List() IDs = %v, expected sorted [test_a test_b]", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register did not panic")
		}
	}()
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })
}
