package stages

import (
	"fmt"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// Generator builds random stages for endless mode. It never runs out.
// The same seed and index always produce the same stage.
type Generator struct {
	Rows int
	Cols int
	Seed uint64

	// ObstaclePercent is the chance, from the third stage on, that a filled
	// cell below row 0 becomes an obstacle instead of a bubble.
	ObstaclePercent int
}

// NewGenerator creates a generator with the default obstacle density.
func NewGenerator(rows, cols int, seed uint64) *Generator {
	return &Generator{Rows: rows, Cols: cols, Seed: seed, ObstaclePercent: 8}
}

// Stage implements core.StageSource.
func (g *Generator) Stage(index int) (core.Stage, bool) {
	if index < 0 {
		return core.Stage{}, false
	}
	rng := core.NewRNG(g.Seed ^ (uint64(index)+1)*0x9E3779B97F4A7C15) //#nosec G115 -- index is non-negative

	// Later stages fill more rows with more colors.
	filled := min(g.Rows-1, 2+index/2)
	palette := core.AllColors()[:min(len(core.AllColors()), 2+index/2)]

	cells := core.EmptyMatrix(g.Rows, g.Cols)
	for r := 0; r < filled; r++ {
		for c := 0; c < g.Cols; c++ {
			if index >= 2 && r > 0 && rng.Intn(100) < g.ObstaclePercent {
				cells[r][c] = core.ObstacleCell()
				continue
			}
			cells[r][c] = core.ColorCell(palette[rng.Intn(len(palette))])
		}
	}
	return core.Stage{Name: fmt.Sprintf("Endless %d", index+1), Cells: cells}, true
}
