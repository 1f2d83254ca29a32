package formats

import (
	"fmt"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"gopkg.in/yaml.v3"
)

// YAMLStage represents the YAML structure for a stage file.
type YAMLStage struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"` // one symbol per character
}

// Stage is a parsed stage ready for the loader.
type Stage struct {
	ID    string
	Name  string
	Cells [][]core.Cell
}

// ParseYAML parses a YAML stage file. Like ParseCSV it always returns a
// usable matrix.
func ParseYAML(data []byte, rows, cols int) (Stage, error) {
	var ys YAMLStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Stage{Cells: core.EmptyMatrix(rows, cols)}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	m := make([][]core.Cell, 0, len(ys.Rows))
	for _, line := range ys.Rows {
		row := make([]core.Cell, 0, len(line))
		for _, ch := range line {
			if ch == ' ' || ch == ',' {
				continue
			}
			row = append(row, ParseSymbol(string(ch)))
		}
		m = append(m, row)
	}

	return Stage{
		ID:    ys.ID,
		Name:  ys.Name,
		Cells: fit(m, rows, cols),
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".csv", ".yaml", ".yml"}
}
