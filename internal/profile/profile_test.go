package profile

import (
	"fmt"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// openTestData points gdata at a temporary home so tests never touch real saves.
func openTestData(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	data, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("bubblepop_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("cannot open gdata for testing: %v", err)
	}
	return data
}

func TestMemoryOnlyManager(t *testing.T) {
	m := New(nil, nil)

	if m.Persistent() {
		t.Error("nil-backed manager reports persistent")
	}
	if got := m.HighestStage("bubblepop"); got != 0 {
		t.Errorf("HighestStage = %d, expected 0", got)
	}

	changed, err := m.RecordStage("bubblepop", 3)
	if err != nil || !changed {
		t.Errorf("RecordStage(3) = %v, %v, expected true, nil", changed, err)
	}
	changed, _ = m.RecordStage("bubblepop", 2)
	if changed {
		t.Error("RecordStage(2) after 3 should not change the record")
	}
	if got := m.HighestStage("bubblepop"); got != 3 {
		t.Errorf("HighestStage = %d, expected 3", got)
	}
	if err := m.Save(); err != nil {
		t.Errorf("Save() on memory manager = %v, expected nil", err)
	}
}

func TestProgressPersists(t *testing.T) {
	data := openTestData(t)

	m := New(data, nil)
	if !m.Persistent() {
		t.Fatal("gdata-backed manager reports not persistent")
	}
	if _, err := m.RecordStage("bubblepop", 4); err != nil {
		t.Fatalf("RecordStage failed: %v", err)
	}
	if _, err := m.RecordStage("bubblepop_endless", 11); err != nil {
		t.Fatalf("RecordStage failed: %v", err)
	}
	if err := m.SetLastDifficulty("hard"); err != nil {
		t.Fatalf("SetLastDifficulty failed: %v", err)
	}

	reloaded := New(data, nil)
	if got := reloaded.HighestStage("bubblepop"); got != 4 {
		t.Errorf("reloaded HighestStage = %d, expected 4", got)
	}
	if got := reloaded.HighestStage("bubblepop_endless"); got != 11 {
		t.Errorf("reloaded endless HighestStage = %d, expected 11", got)
	}
	if got := reloaded.LastDifficulty(); got != "hard" {
		t.Errorf("reloaded LastDifficulty = %q, expected hard", got)
	}
}

func TestCorruptProgressFallsBack(t *testing.T) {
	data := openTestData(t)

	if err := data.SaveObjectProp(progressObject, progressProperty, []byte("highest_stage: [oops")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	m := New(data, nil)
	if got := m.HighestStage("bubblepop"); got != 0 {
		t.Errorf("HighestStage after corrupt load = %d, expected 0", got)
	}
	if err := m.Load(); err == nil {
		t.Error("Load() on corrupt data = nil error")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	m := New(nil, nil)
	m.RecordStage("bubblepop", 2)

	snap := m.Snapshot()
	snap.HighestStage["bubblepop"] = 99

	if got := m.HighestStage("bubblepop"); got != 2 {
		t.Errorf("HighestStage after snapshot edit = %d, expected 2", got)
	}
}
