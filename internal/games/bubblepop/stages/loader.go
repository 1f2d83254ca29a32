// Package stages provides stage loading for Bubble Pop.
// This package depends on core but core does not depend on stages.
package stages

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/stages/formats"
)

// Stage is a loaded stage file.
type Stage struct {
	Number int // from stageN in the file name, 0 if absent
	Name   string
	Path   string
	Cells  [][]core.Cell
}

// Loader reads every stage file under a directory and serves them in order.
// It implements core.StageSource.
type Loader struct {
	Root   string
	Rows   int
	Cols   int
	Logger *log.Logger

	fsys   fs.FS
	stages []Stage
	loaded bool
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string, rows, cols int) *Loader {
	return &Loader{Root: root, Rows: rows, Cols: cols, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over any file system, rooted at its top.
func NewFSLoader(fsys fs.FS, rows, cols int) *Loader {
	return &Loader{Root: ".", Rows: rows, Cols: cols, fsys: fsys}
}

var stageNumber = regexp.MustCompile(`(?i)^stage(\d+)$`)

// LoadAll scans the tree and loads every supported file.
// Files named stageN come first in numeric order, the rest follow by path.
// Unreadable files are skipped; malformed ones load as empty stages.
func (l *Loader) LoadAll() ([]Stage, error) {
	logger := l.logger()
	var stages []Stage

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			logger.Warn("skipping unreadable stage", "path", p, "error", err)
			return nil
		}

		st, err := l.parse(p, data)
		if err != nil {
			logger.Warn("malformed stage, using an empty board", "path", p, "error", err)
		}
		stages = append(stages, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(stages, func(i, j int) bool {
		a, b := stages[i], stages[j]
		switch {
		case a.Number > 0 && b.Number > 0 && a.Number != b.Number:
			return a.Number < b.Number
		case a.Number > 0 && b.Number == 0:
			return true
		case a.Number == 0 && b.Number > 0:
			return false
		}
		return a.Path < b.Path
	})

	l.stages = stages
	l.loaded = true
	return stages, nil
}

// LoadFile loads a single stage file from the local disk.
func LoadFile(p string, rows, cols int) (Stage, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Stage{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	l := &Loader{Rows: rows, Cols: cols}
	st, err := l.parse(filepath.ToSlash(p), data)
	if err != nil {
		return st, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return st, nil
}

// parse routes to the right format. The returned stage is usable even
// when err is not nil.
func (l *Loader) parse(p string, data []byte) (Stage, error) {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	st := Stage{Path: p, Name: base}
	if m := stageNumber.FindStringSubmatch(base); m != nil {
		st.Number, _ = strconv.Atoi(m[1])
		st.Name = "Stage " + m[1]
	}

	var err error
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		var ys formats.Stage
		ys, err = formats.ParseYAML(data, l.Rows, l.Cols)
		st.Cells = ys.Cells
		if ys.Name != "" {
			st.Name = ys.Name
		}
	default:
		st.Cells, err = formats.ParseCSV(data, l.Rows, l.Cols)
	}
	return st, err
}

// ensure loads the tree once, logging a failed walk.
func (l *Loader) ensure() {
	if l.loaded {
		return
	}
	if _, err := l.LoadAll(); err != nil {
		l.logger().Warn("stage directory unavailable", "root", l.Root, "error", err)
		l.loaded = true
	}
}

// Stage implements core.StageSource.
func (l *Loader) Stage(index int) (core.Stage, bool) {
	l.ensure()
	if index < 0 || index >= len(l.stages) {
		return core.Stage{}, false
	}
	st := l.stages[index]
	return core.Stage{Name: st.Name, Cells: st.Cells}, true
}

// Count returns the number of stages found.
func (l *Loader) Count() int {
	l.ensure()
	return len(l.stages)
}

// Names returns stage names in play order.
func (l *Loader) Names() []string {
	l.ensure()
	names := make([]string, len(l.stages))
	for i, st := range l.stages {
		names[i] = st.Name
	}
	return names
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
