// Package config provides YAML-based game configuration loading and
// difficulty management for Bubble Pop.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// BubblePopConfig contains all configuration for the Bubble Pop game.
type BubblePopConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Bubble     BubbleConfig     `yaml:"bubble"`
	Cannon     CannonConfig     `yaml:"cannon"`
	Rules      RulesConfig      `yaml:"rules"`
	Items      ItemsConfig      `yaml:"items"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board layout in world pixels.
type GridConfig struct {
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	CellSize  float64 `yaml:"cell_size"`
	XOffset   float64 `yaml:"x_offset"`
	YOffset   float64 `yaml:"y_offset"`
	FieldRows int     `yaml:"field_rows"` // play-field height in cells, cannon row included
}

// BubbleConfig defines bubble size and flight.
type BubbleConfig struct {
	Radius           float64 `yaml:"radius"`
	Speed            float64 `yaml:"speed"`             // pixels per tick
	CollisionEpsilon float64 `yaml:"collision_epsilon"` // contact fires this many pixels early
}

// CannonConfig defines the aim range in degrees (90 = straight up).
type CannonConfig struct {
	MinAngle      float64 `yaml:"min_angle"`
	MaxAngle      float64 `yaml:"max_angle"`
	StartAngle    float64 `yaml:"start_angle"`
	RotationSpeed float64 `yaml:"rotation_speed"` // degrees per tick
}

// RulesConfig defines matching and scoring.
type RulesConfig struct {
	MatchThreshold  int `yaml:"match_threshold"`
	PointsPerBubble int `yaml:"points_per_bubble"`
	LaunchCooldown  int `yaml:"launch_cooldown"` // attached shots per wall drop
}

// ItemsConfig is the starting inventory of each item.
type ItemsConfig struct {
	Swap    int `yaml:"swap"`
	Raise   int `yaml:"raise"`
	Rainbow int `yaml:"rainbow"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	CooldownReduction int `yaml:"cooldown_reduction"` // shots removed from the cooldown at max difficulty
	MinCooldown       int `yaml:"min_cooldown"`
}

// Engine converts the file layout into the engine's rule set.
func (c BubblePopConfig) Engine() core.Config {
	return core.Config{
		Geometry: core.Geometry{
			Rows:     c.Grid.Rows,
			Cols:     c.Grid.Cols,
			CellSize: c.Grid.CellSize,
			XOffset:  c.Grid.XOffset,
			YOffset:  c.Grid.YOffset,
		},
		FieldRows:        c.Grid.FieldRows,
		BubbleRadius:     c.Bubble.Radius,
		BubbleSpeed:      c.Bubble.Speed,
		CollisionEpsilon: c.Bubble.CollisionEpsilon,
		MatchThreshold:   c.Rules.MatchThreshold,
		PointsPerBubble:  c.Rules.PointsPerBubble,
		LaunchCooldown:   c.Rules.LaunchCooldown,
		Cannon: core.CannonConfig{
			MinAngle:      c.Cannon.MinAngle,
			MaxAngle:      c.Cannon.MaxAngle,
			StartAngle:    c.Cannon.StartAngle,
			RotationSpeed: c.Cannon.RotationSpeed,
		},
		Items: core.Inventory{
			Swap:    c.Items.Swap,
			Raise:   c.Items.Raise,
			Rainbow: c.Items.Rainbow,
		},
	}
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports settings that would make the game unplayable.
func (c BubblePopConfig) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Items.Swap < 0 || c.Items.Raise < 0 || c.Items.Rainbow < 0 {
		return fmt.Errorf("%w: item counts must not be negative", ErrInvalidConfig)
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		return fmt.Errorf("%w: unknown progression type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
