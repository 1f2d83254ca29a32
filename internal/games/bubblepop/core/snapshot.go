package core

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Snapshot is the engine state flattened to primitive values.
// Positions are stored in thousandths of a pixel.
type Snapshot struct {
	Tick       uint64
	Status     Status
	Shot       ShotState
	Stage      int
	Score      int
	Shots      int
	TotalShots int
	Cooldown   int
	WallOffset int64
	Items      Inventory

	CannonAngle int64

	CurrentX, CurrentY, CurrentAngle int64
	CurrentColor                     int // -1 when nothing is loaded
	NextColor                        int

	// Cells holds one entry per cell in row-major order: kind*16 + color.
	Cells []int

	RNGState uint64
}

func fixed(v float64) int64 {
	return int64(math.Round(v * 1000))
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         e.tick,
		Status:       e.status,
		Shot:         e.shot,
		Stage:        e.stage,
		Score:        e.score,
		Shots:        e.shots,
		TotalShots:   e.totalShots,
		Cooldown:     e.cooldown,
		WallOffset:   fixed(e.grid.WallOffset()),
		Items:        e.items,
		CannonAngle:  fixed(e.cannon.Angle),
		CurrentColor: -1,
		NextColor:    -1,
		RNGState:     e.rng.State(),
	}

	if e.current != nil {
		s.CurrentX = fixed(e.current.X)
		s.CurrentY = fixed(e.current.Y)
		s.CurrentAngle = fixed(e.current.Angle)
		s.CurrentColor = int(e.current.Color)
	}
	if e.next != nil {
		s.NextColor = int(e.next.Color)
	}

	geo := e.cfg.Geometry
	s.Cells = make([]int, 0, geo.Rows*geo.Cols)
	for r := 0; r < geo.Rows; r++ {
		for c := 0; c < geo.Cols; c++ {
			cell := e.grid.Cell(r, c)
			s.Cells = append(s.Cells, int(cell.Kind)*16+int(cell.Color))
		}
	}
	return s
}

// Hash returns an FNV-1a hash of the snapshot for determinism checks.
func (s *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%d;S:%d;Sh:%d;St:%d;Sc:%d;", s.Tick, s.Status, s.Shot, s.Stage, s.Score)
	fmt.Fprintf(h, "N:%d/%d/%d;W:%d;", s.Shots, s.TotalShots, s.Cooldown, s.WallOffset)
	fmt.Fprintf(h, "I:%d,%d,%d;A:%d;", s.Items.Swap, s.Items.Raise, s.Items.Rainbow, s.CannonAngle)
	fmt.Fprintf(h, "C:%d,%d,%d,%d;X:%d;", s.CurrentX, s.CurrentY, s.CurrentAngle, s.CurrentColor, s.NextColor)
	fmt.Fprintf(h, "G:")
	for _, v := range s.Cells {
		fmt.Fprintf(h, "%d,", v)
	}
	fmt.Fprintf(h, ";R:%d", s.RNGState)
	return h.Sum64()
}
