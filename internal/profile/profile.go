// Package profile keeps per-player progress between sessions: the furthest
// stage reached in each mode and the last difficulty preset used.
//
// Progress is stored through gdata so it lands in the platform's data
// directory. A Manager without a gdata backend keeps progress in memory only.
package profile

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name for saved progress.
const AppName = "bubblepop"

const (
	progressObject   = "profile"
	progressProperty = "progress"
)

// Progress is the persisted player state.
type Progress struct {
	// HighestStage maps a game ID to the furthest 1-based stage reached.
	HighestStage   map[string]int `yaml:"highest_stage"`
	LastDifficulty string         `yaml:"last_difficulty"`
}

func newProgress() Progress {
	return Progress{HighestStage: make(map[string]int)}
}

// Manager loads and saves Progress.
type Manager struct {
	mu       sync.Mutex
	data     *gdata.Manager // nil means memory only
	progress Progress
	logger   *log.Logger
}

// Open creates a gdata-backed manager for appName.
// If the data directory cannot be opened the manager falls back to memory
// and the error is returned alongside it.
func Open(appName string, logger *log.Logger) (*Manager, error) {
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		m := New(nil, logger)
		return m, fmt.Errorf("profile: open data dir: %w", err)
	}
	return New(data, logger), nil
}

// New wraps an existing gdata manager, which may be nil.
func New(data *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{
		data:     data,
		progress: newProgress(),
		logger:   logger,
	}
	if err := m.Load(); err != nil {
		logger.Warn("using empty profile", "err", err)
	}
	return m
}

// Persistent reports whether progress survives the process.
func (m *Manager) Persistent() bool {
	return m.data != nil
}

// Load replaces the in-memory progress with the saved copy.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.progress = newProgress()
	if m.data == nil || !m.data.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("profile: load: %w", err)
	}
	var p Progress
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("profile: decode: %w", err)
	}
	if p.HighestStage == nil {
		p.HighestStage = make(map[string]int)
	}
	m.progress = p
	return nil
}

// Save writes the current progress. Memory-only managers do nothing.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if m.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(m.progress)
	if err != nil {
		return fmt.Errorf("profile: encode: %w", err)
	}
	if err := m.data.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("profile: save: %w", err)
	}
	m.logger.Debug("profile saved")
	return nil
}

// HighestStage returns the furthest stage reached in gameID, or 0.
func (m *Manager) HighestStage(gameID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress.HighestStage[gameID]
}

// RecordStage raises the highest stage for gameID and saves when it changed.
// It reports whether a new record was set.
func (m *Manager) RecordStage(gameID string, stage int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stage <= m.progress.HighestStage[gameID] {
		return false, nil
	}
	m.progress.HighestStage[gameID] = stage
	return true, m.saveLocked()
}

// LastDifficulty returns the last preset name, or "" if none was recorded.
func (m *Manager) LastDifficulty() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress.LastDifficulty
}

// SetLastDifficulty remembers the preset and saves.
func (m *Manager) SetLastDifficulty(preset string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.progress.LastDifficulty == preset {
		return nil
	}
	m.progress.LastDifficulty = preset
	return m.saveLocked()
}

// Snapshot returns a copy of the current progress.
func (m *Manager) Snapshot() Progress {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := Progress{
		HighestStage:   make(map[string]int, len(m.progress.HighestStage)),
		LastDifficulty: m.progress.LastDifficulty,
	}
	for k, v := range m.progress.HighestStage {
		p.HighestStage[k] = v
	}
	return p
}
