package core

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"
)

// ErrOutOfBounds is returned when a placement targets a cell outside the grid.
var ErrOutOfBounds = errors.New("placement out of bounds")

// Obstacle is a static occupant of a cell.
type Obstacle struct {
	X, Y   float64
	Radius float64
	Row    int
	Col    int
}

// Grid owns the cell matrix and every attached bubble and obstacle.
// Cell contents and the registries always agree: a color cell has exactly
// one bubble at its coordinate, an obstacle cell exactly one obstacle.
type Grid struct {
	geo        Geometry
	radius     float64
	cells      [][]Cell
	bubbles    map[Coord]*Bubble
	obstacles  map[Coord]*Obstacle
	wallOffset float64
	logger     *log.Logger
}

// NewGrid creates an empty grid. Attached bubbles and obstacles get the given
// radius. A nil logger discards warnings.
func NewGrid(geo Geometry, radius float64, logger *log.Logger) *Grid {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Grid{
		geo:       geo,
		radius:    radius,
		cells:     EmptyMatrix(geo.Rows, geo.Cols),
		bubbles:   make(map[Coord]*Bubble),
		obstacles: make(map[Coord]*Obstacle),
		logger:    logger,
	}
}

// Geometry returns the grid's layout.
func (g *Grid) Geometry() Geometry {
	return g.geo
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.geo.Rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.geo.Cols }

// WallOffset returns how far the ceiling has descended in pixels.
func (g *Grid) WallOffset() float64 {
	return g.wallOffset
}

// CeilingY returns the current y coordinate of the ceiling line.
func (g *Grid) CeilingY() float64 {
	return g.geo.YOffset + g.wallOffset
}

// InBounds returns true if the cell is within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return g.geo.InBounds(row, col)
}

// Cell returns the contents of a cell. Out-of-bounds cells read as empty.
func (g *Grid) Cell(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Empty()
	}
	return g.cells[row][col]
}

// CellCenter returns the pixel center of a cell at the current wall offset.
func (g *Grid) CellCenter(row, col int) (x, y float64) {
	return g.geo.CellCenter(row, col, g.wallOffset)
}

// ScreenToGrid maps a pixel position to a clamped cell.
func (g *Grid) ScreenToGrid(x, y float64) (row, col int) {
	return g.geo.ScreenToGrid(x, y, g.wallOffset)
}

// Load replaces the grid contents with a copy of matrix and resets the wall.
// Missing rows or columns become empty; extra ones are dropped.
func (g *Grid) Load(matrix [][]Cell) {
	g.cells = EmptyMatrix(g.geo.Rows, g.geo.Cols)
	g.bubbles = make(map[Coord]*Bubble)
	g.obstacles = make(map[Coord]*Obstacle)
	g.wallOffset = 0

	for r := 0; r < g.geo.Rows && r < len(matrix); r++ {
		for c := 0; c < g.geo.Cols && c < len(matrix[r]); c++ {
			cell := matrix[r][c]
			if cell.Kind == CellColor && cell.Color >= ColorCount {
				cell = Empty()
			}
			g.cells[r][c] = cell

			switch cell.Kind {
			case CellColor:
				x, y := g.CellCenter(r, c)
				b := NewBubble(x, y, cell.Color, g.radius, 0)
				b.State = Attached
				b.Row, b.Col = r, c
				g.bubbles[RC(r, c)] = b
			case CellObstacle:
				x, y := g.CellCenter(r, c)
				g.obstacles[RC(r, c)] = &Obstacle{X: x, Y: y, Radius: g.radius, Row: r, Col: c}
			}
		}
	}
}

// PlaceBubble attaches b at (row, col) and takes ownership of it.
// It returns the coordinate actually written, which differs from the request
// only when the target holds the legacy blocked marker.
func (g *Grid) PlaceBubble(b *Bubble, row, col int) (Coord, error) {
	if !g.InBounds(row, col) {
		g.logger.Warn("placement out of bounds", "row", row, "col", col)
		return Coord{}, fmt.Errorf("place bubble at %s: %w", RC(row, col), ErrOutOfBounds)
	}

	if g.cells[row][col].Kind == CellBlocked {
		col = clampInt(col+1, 0, g.geo.Cols-1)
	}

	at := RC(row, col)
	switch g.cells[row][col].Kind {
	case CellColor:
		g.logger.Warn("overwriting attached bubble", "row", row, "col", col)
	case CellObstacle:
		g.logger.Warn("overwriting obstacle", "row", row, "col", col)
		delete(g.obstacles, at)
	}

	g.cells[row][col] = ColorCell(b.Color)
	b.X, b.Y = g.CellCenter(row, col)
	b.State = Attached
	b.Row, b.Col = row, col
	b.Radius = g.radius
	g.bubbles[at] = b
	return at, nil
}

// NearestEmptyCell returns the cell a bubble at (x, y) should settle into.
// When the containing cell is taken, the closest empty neighbor wins (first
// found on ties). With no empty neighbor the containing cell is returned
// anyway and a warning is logged.
func (g *Grid) NearestEmptyCell(x, y float64) Coord {
	row, col := g.ScreenToGrid(x, y)
	if !g.cells[row][col].IsOccupied() {
		return RC(row, col)
	}

	best := RC(row, col)
	bestDist := math.Inf(1)
	found := false
	for _, n := range g.geo.Neighbors(row, col) {
		if !g.InBounds(n.Row, n.Col) || !g.cells[n.Row][n.Col].IsEmpty() {
			continue
		}
		nx, ny := g.CellCenter(n.Row, n.Col)
		d := (x-nx)*(x-nx) + (y-ny)*(y-ny)
		if d < bestDist {
			bestDist = d
			best = n
			found = true
		}
	}

	if !found {
		g.logger.Warn("no empty cell nearby, forcing placement", "row", row, "col", col)
	}
	return best
}

// SameColorComponent returns every cell of the given color reachable from
// (row, col) through same-color neighbors.
func (g *Grid) SameColorComponent(row, col int, color Color) []Coord {
	return g.flood([]Coord{RC(row, col)}, func(c Cell) bool {
		return c.Kind == CellColor && c.Color == color
	})
}

// CeilingReachable returns every color cell connected to row 0 through
// color cells of any color.
func (g *Grid) CeilingReachable() map[Coord]bool {
	var seeds []Coord
	for c := 0; c < g.geo.Cols; c++ {
		if g.geo.Rows > 0 && g.cells[0][c].IsColor() {
			seeds = append(seeds, RC(0, c))
		}
	}
	reached := g.flood(seeds, Cell.IsColor)

	set := make(map[Coord]bool, len(reached))
	for _, c := range reached {
		set[c] = true
	}
	return set
}

// flood runs an iterative depth-first search from seeds over cells accepted
// by pass. Results are unique and in visit order.
func (g *Grid) flood(seeds []Coord, pass func(Cell) bool) []Coord {
	visited := make(map[Coord]bool)
	var out []Coord

	stack := append([]Coord(nil), seeds...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.InBounds(cur.Row, cur.Col) || visited[cur] {
			continue
		}
		if !pass(g.cells[cur.Row][cur.Col]) {
			continue
		}
		visited[cur] = true
		out = append(out, cur)

		for _, n := range g.geo.Neighbors(cur.Row, cur.Col) {
			if !visited[n] {
				stack = append(stack, n)
			}
		}
	}
	return out
}

// RemoveCells empties every listed cell and drops its registry entry.
func (g *Grid) RemoveCells(coords []Coord) {
	for _, c := range coords {
		if !g.InBounds(c.Row, c.Col) {
			continue
		}
		g.cells[c.Row][c.Col] = Empty()
		delete(g.bubbles, c)
		delete(g.obstacles, c)
	}
}

// DropHanging removes every color cell no longer connected to the ceiling
// and returns how many fell.
func (g *Grid) DropHanging() int {
	connected := g.CeilingReachable()

	var hanging []Coord
	for r := 0; r < g.geo.Rows; r++ {
		for c := 0; c < g.geo.Cols; c++ {
			at := RC(r, c)
			if g.cells[r][c].IsColor() && !connected[at] {
				hanging = append(hanging, at)
			}
		}
	}
	g.RemoveCells(hanging)
	return len(hanging)
}

// DropWall lowers the ceiling by one cell.
func (g *Grid) DropWall() {
	g.wallOffset += g.geo.CellSize
	g.reposition()
}

// RaiseWall lifts the ceiling by one cell, never above its starting height.
// It reports whether the wall moved.
func (g *Grid) RaiseWall() bool {
	if g.wallOffset <= 0 {
		return false
	}
	g.wallOffset = math.Max(0, g.wallOffset-g.geo.CellSize)
	g.reposition()
	return true
}

// reposition moves every occupant to its cell center at the current offset.
func (g *Grid) reposition() {
	for at, b := range g.bubbles {
		b.X, b.Y = g.CellCenter(at.Row, at.Col)
	}
	for at, o := range g.obstacles {
		o.X, o.Y = g.CellCenter(at.Row, at.Col)
	}
}

// Bubbles returns copies of all attached bubbles in row-major order.
func (g *Grid) Bubbles() []Bubble {
	out := make([]Bubble, 0, len(g.bubbles))
	for _, b := range g.bubbles {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Obstacles returns copies of all obstacles in row-major order.
func (g *Grid) Obstacles() []Obstacle {
	out := make([]Obstacle, 0, len(g.obstacles))
	for _, o := range g.obstacles {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// ColorCounts returns how many attached bubbles each color has.
func (g *Grid) ColorCounts() [ColorCount]int {
	var counts [ColorCount]int
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.IsColor() {
				counts[cell.Color]++
			}
		}
	}
	return counts
}

// ColorsPresent returns the colors on the grid in enumeration order.
func (g *Grid) ColorsPresent() []Color {
	counts := g.ColorCounts()
	var out []Color
	for _, c := range AllColors() {
		if counts[c] > 0 {
			out = append(out, c)
		}
	}
	return out
}

// IsCleared returns true if no color bubble remains. Obstacles do not count.
func (g *Grid) IsCleared() bool {
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.IsColor() {
				return false
			}
		}
	}
	return true
}

// LowestBubbleBottom returns the largest bottom edge among attached bubbles,
// or 0 when there are none.
func (g *Grid) LowestBubbleBottom() float64 {
	lowest := 0.0
	for _, b := range g.bubbles {
		lowest = math.Max(lowest, b.Bottom())
	}
	return lowest
}

// Matrix returns a copy of the cell matrix.
func (g *Grid) Matrix() [][]Cell {
	m := EmptyMatrix(g.geo.Rows, g.geo.Cols)
	for r := range g.cells {
		copy(m[r], g.cells[r])
	}
	return m
}

// CheckInvariant verifies that cells and registries agree.
func (g *Grid) CheckInvariant() error {
	colorCells, obstacleCells := 0, 0
	for r := 0; r < g.geo.Rows; r++ {
		for c := 0; c < g.geo.Cols; c++ {
			at := RC(r, c)
			cell := g.cells[r][c]
			b, hasBubble := g.bubbles[at]
			_, hasObstacle := g.obstacles[at]

			switch cell.Kind {
			case CellColor:
				colorCells++
				if !hasBubble {
					return fmt.Errorf("color cell %s has no bubble", at)
				}
				if b.Color != cell.Color || b.Row != r || b.Col != c {
					return fmt.Errorf("bubble at %s disagrees with its cell", at)
				}
			case CellObstacle:
				obstacleCells++
				if !hasObstacle {
					return fmt.Errorf("obstacle cell %s has no obstacle", at)
				}
			default:
				if hasBubble || hasObstacle {
					return fmt.Errorf("%s cell %s is registered", cell.Kind, at)
				}
			}
		}
	}
	if colorCells != len(g.bubbles) {
		return fmt.Errorf("%d color cells but %d bubbles", colorCells, len(g.bubbles))
	}
	if obstacleCells != len(g.obstacles) {
		return fmt.Errorf("%d obstacle cells but %d obstacles", obstacleCells, len(g.obstacles))
	}
	return nil
}
