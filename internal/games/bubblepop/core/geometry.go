package core

import "math"

// Geometry converts between grid cells and pixel positions on a brick-row
// hex layout: even rows are left-aligned, odd rows sit half a cell right.
type Geometry struct {
	Rows     int
	Cols     int
	CellSize float64
	XOffset  float64
	YOffset  float64
}

// neighbor offsets in the order left, upper-left, upper-right, right,
// lower-right, lower-left.
var (
	evenRowDR = [6]int{0, -1, -1, 0, 1, 1}
	evenRowDC = [6]int{-1, -1, 0, 1, 0, -1}
	oddRowDR  = [6]int{0, -1, -1, 0, 1, 1}
	oddRowDC  = [6]int{-1, 0, 1, 1, 1, 0}
)

// InBounds returns true if the cell is within the grid.
func (g Geometry) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// rowShift returns the horizontal shift applied to a row.
func (g Geometry) rowShift(row int) float64 {
	if row%2 != 0 {
		return g.CellSize / 2
	}
	return 0
}

// CellCenter returns the pixel center of a cell for a given ceiling offset.
func (g Geometry) CellCenter(row, col int, wallOffset float64) (x, y float64) {
	half := g.CellSize / 2
	x = float64(col)*g.CellSize + half + g.XOffset + g.rowShift(row)
	y = float64(row)*g.CellSize + half + wallOffset + g.YOffset
	return x, y
}

// ScreenToGrid maps a pixel position to the cell containing it.
// Both outputs are clamped to the grid.
func (g Geometry) ScreenToGrid(x, y, wallOffset float64) (row, col int) {
	row = int(math.Floor((y - wallOffset - g.YOffset) / g.CellSize))
	row = clampInt(row, 0, g.Rows-1)
	col = int(math.Floor((x - g.XOffset - g.rowShift(row)) / g.CellSize))
	col = clampInt(col, 0, g.Cols-1)
	return row, col
}

// Neighbors returns the six hex-adjacent coordinates, possibly out of bounds.
func (g Geometry) Neighbors(row, col int) [6]Coord {
	dr, dc := evenRowDR, evenRowDC
	if row%2 != 0 {
		dr, dc = oddRowDR, oddRowDC
	}
	var out [6]Coord
	for i := range out {
		out[i] = Coord{Row: row + dr[i], Col: col + dc[i]}
	}
	return out
}

// FieldLeft returns the x coordinate of the left play-field wall.
func (g Geometry) FieldLeft() float64 {
	return g.XOffset
}

// FieldRight returns the x coordinate of the right play-field wall.
// The extra half cell leaves room for the last bubble of an odd row.
func (g Geometry) FieldRight() float64 {
	return g.XOffset + float64(g.Cols)*g.CellSize + g.CellSize/2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
