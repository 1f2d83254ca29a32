// Package formats parses and writes stage files.
package formats

import (
	"strings"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// ParseSymbol converts one stage-file symbol to a cell.
// Unknown symbols, blanks, '.' and 'X' are empty.
func ParseSymbol(s string) core.Cell {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "", ".", "X":
		return core.Empty()
	case "N":
		return core.ObstacleCell()
	case "/":
		return core.BlockedCell()
	}
	if len(s) == 1 {
		if c, ok := core.ParseColor(s); ok {
			return core.ColorCell(c)
		}
	}
	return core.Empty()
}

// fit pads or truncates m to rows x cols.
func fit(m [][]core.Cell, rows, cols int) [][]core.Cell {
	out := core.EmptyMatrix(rows, cols)
	for r := 0; r < rows && r < len(m); r++ {
		copy(out[r], m[r])
	}
	return out
}
