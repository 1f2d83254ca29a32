package stages_test

import (
	"testing"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/stages"
)

var (
	_ core.StageSource = (*stages.Loader)(nil)
	_ core.StageSource = (*stages.Generator)(nil)
)

func TestLoaderLoadAll(t *testing.T) {
	loader := stages.NewLoader("testdata", 6, 8)

	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	expected := []string{"Stage 1", "Obstacle Course", "Stage 10", "bad", "extra"}
	if len(all) != len(expected) {
		t.Fatalf("loaded %d stages, expected %d", len(all), len(expected))
	}
	for i, name := range expected {
		if all[i].Name != name {
			t.Errorf("stage %d name = %q, expected %q", i, all[i].Name, name)
		}
		if len(all[i].Cells) != 6 || len(all[i].Cells[0]) != 8 {
			t.Errorf("stage %q is %dx%d, expected 6x8", name, len(all[i].Cells), len(all[i].Cells[0]))
		}
	}
}

func TestLoaderNormalizesSymbols(t *testing.T) {
	loader := stages.NewLoader("testdata", 6, 8)

	st, ok := loader.Stage(0)
	if !ok {
		t.Fatal("Stage(0) missing")
	}

	testCases := []struct {
		row, col int
		symbol   rune
	}{
		{0, 0, 'R'},
		{0, 2, 'B'},
		{0, 3, '.'},
		{1, 0, 'Y'},
		{1, 1, 'G'},
		{1, 2, '.'},
		{5, 7, '.'},
	}
	for _, tc := range testCases {
		if got := st.Cells[tc.row][tc.col].Symbol(); got != tc.symbol {
			t.Errorf("cell (%d, %d) = %c, expected %c", tc.row, tc.col, got, tc.symbol)
		}
	}
}

func TestLoaderYAMLStage(t *testing.T) {
	loader := stages.NewLoader("testdata", 6, 8)

	st, ok := loader.Stage(1)
	if !ok {
		t.Fatal("Stage(1) missing")
	}
	row0 := string([]rune{st.Cells[0][0].Symbol(), st.Cells[0][1].Symbol(), st.Cells[0][2].Symbol(), st.Cells[0][3].Symbol()})
	row1 := string([]rune{st.Cells[1][0].Symbol(), st.Cells[1][1].Symbol(), st.Cells[1][2].Symbol(), st.Cells[1][3].Symbol()})
	if row0 != "RN.B" || row1 != "./GY" {
		t.Errorf("rows = %q %q, expected %q %q", row0, row1, "RN.B", "./GY")
	}
}

func TestLoaderTruncatesWideRows(t *testing.T) {
	loader := stages.NewLoader("testdata", 6, 8)

	st, _ := loader.Stage(2)
	for c := 0; c < 8; c++ {
		if !st.Cells[0][c].IsColor() {
			t.Errorf("cell (0, %d) lost", c)
		}
	}
}

func TestLoaderMalformedIsEmpty(t *testing.T) {
	loader := stages.NewLoader("testdata", 6, 8)

	st, ok := loader.Stage(3)
	if !ok {
		t.Fatal("Stage(3) missing")
	}
	for r, row := range st.Cells {
		for c, cell := range row {
			if !cell.IsEmpty() {
				t.Errorf("malformed stage has %c at (%d, %d)", cell.Symbol(), r, c)
			}
		}
	}
}

func TestLoaderOutOfRange(t *testing.T) {
	loader := stages.NewLoader("testdata", 6, 8)

	if _, ok := loader.Stage(-1); ok {
		t.Error("Stage(-1) = ok")
	}
	if _, ok := loader.Stage(loader.Count()); ok {
		t.Error("Stage(Count()) = ok")
	}
}

func TestLoaderMissingDirectory(t *testing.T) {
	loader := stages.NewLoader("testdata/does-not-exist", 6, 8)

	if _, err := loader.LoadAll(); err == nil {
		t.Error("LoadAll on missing directory = nil error")
	}
	if loader.Count() != 0 {
		t.Errorf("Count() = %d, expected 0", loader.Count())
	}
}

func TestLoadFile(t *testing.T) {
	st, err := stages.LoadFile("testdata/nested/stage2.yaml", 6, 8)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if st.Number != 2 || st.Name != "Obstacle Course" {
		t.Errorf("LoadFile = %d %q, expected 2 %q", st.Number, st.Name, "Obstacle Course")
	}

	if _, err := stages.LoadFile("testdata/missing.csv", 6, 8); err == nil {
		t.Error("LoadFile on missing file = nil error")
	}
}

func TestBuiltinStages(t *testing.T) {
	loader := stages.Builtin(6, 8)

	if loader.Count() < 5 {
		t.Fatalf("Count() = %d, expected at least 5", loader.Count())
	}
	for i, name := range loader.Names() {
		st, _ := loader.Stage(i)
		colors := 0
		for _, row := range st.Cells {
			for _, cell := range row {
				if cell.IsColor() {
					colors++
				}
			}
		}
		if colors == 0 {
			t.Errorf("builtin %q has no bubbles", name)
		}
	}
}

func TestBuiltinStagesAreAnchored(t *testing.T) {
	cfg := core.DefaultConfig()
	loader := stages.Builtin(cfg.Geometry.Rows, cfg.Geometry.Cols)

	for i := 0; i < loader.Count(); i++ {
		st, _ := loader.Stage(i)
		g := core.NewGrid(cfg.Geometry, cfg.BubbleRadius, nil)
		g.Load(st.Cells)
		if n := g.DropHanging(); n != 0 {
			t.Errorf("builtin %q has %d bubbles not connected to the ceiling", st.Name, n)
		}
	}
}
