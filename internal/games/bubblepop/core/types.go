// Package core provides the hex grid, projectile and turn engine for Bubble Pop.
// This package is UI-agnostic and deterministic for a given seed.
package core

import "fmt"

// Coord identifies a grid cell by row and column.
type Coord struct {
	Row int
	Col int
}

// RC is a shorthand constructor for Coord.
func RC(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a compact representation for logs and test output.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// CellKind tags what occupies a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellColor
	CellObstacle
	CellBlocked // legacy '/' marker, nudges placement one column right
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellColor:
		return "color"
	case CellObstacle:
		return "obstacle"
	case CellBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Cell is a single grid slot.
type Cell struct {
	Kind  CellKind
	Color Color // Valid only when Kind is CellColor
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Kind: CellEmpty}
}

// ColorCell returns a cell holding a bubble of the given color.
func ColorCell(c Color) Cell {
	return Cell{Kind: CellColor, Color: c}
}

// ObstacleCell returns an obstacle cell.
func ObstacleCell() Cell {
	return Cell{Kind: CellObstacle}
}

// BlockedCell returns the legacy blocked marker.
func BlockedCell() Cell {
	return Cell{Kind: CellBlocked}
}

// IsEmpty reports whether nothing occupies the cell.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// IsColor reports whether the cell holds a color bubble.
func (c Cell) IsColor() bool {
	return c.Kind == CellColor
}

// IsObstacle reports whether the cell holds an obstacle.
func (c Cell) IsObstacle() bool {
	return c.Kind == CellObstacle
}

// IsOccupied reports whether a projectile cannot land in the cell as-is.
func (c Cell) IsOccupied() bool {
	return c.Kind != CellEmpty
}

// Symbol returns the stage-file symbol for the cell.
func (c Cell) Symbol() rune {
	switch c.Kind {
	case CellColor:
		return c.Color.Char()
	case CellObstacle:
		return 'N'
	case CellBlocked:
		return '/'
	default:
		return '.'
	}
}

// EmptyMatrix returns a rows x cols matrix of empty cells.
func EmptyMatrix(rows, cols int) [][]Cell {
	m := make([][]Cell, rows)
	for r := range m {
		m[r] = make([]Cell, cols)
	}
	return m
}
