package core

import (
	"errors"
	"fmt"
)

// CannonConfig defines aim limits and rotation speed in degrees.
type CannonConfig struct {
	MinAngle      float64
	MaxAngle      float64
	StartAngle    float64
	RotationSpeed float64
}

// Inventory counts the remaining uses of each item.
type Inventory struct {
	Swap    int
	Raise   int
	Rainbow int
}

// Config is the immutable rule set handed to the engine.
type Config struct {
	Geometry Geometry

	// FieldRows is the play-field height in cells, measured from YOffset.
	// The cannon sits one cell above the bottom of the field.
	FieldRows int

	BubbleRadius     float64
	BubbleSpeed      float64
	CollisionEpsilon float64

	MatchThreshold  int
	PointsPerBubble int
	LaunchCooldown  int

	Cannon CannonConfig
	Items  Inventory
}

// DefaultConfig returns the classic 6x8 board.
func DefaultConfig() Config {
	return Config{
		Geometry: Geometry{
			Rows:     6,
			Cols:     8,
			CellSize: 100,
			XOffset:  0,
			YOffset:  30,
		},
		FieldRows:        10,
		BubbleRadius:     47,
		BubbleSpeed:      30,
		CollisionEpsilon: 2,
		MatchThreshold:   3,
		PointsPerBubble:  10,
		LaunchCooldown:   4,
		Cannon: CannonConfig{
			MinAngle:      10,
			MaxAngle:      170,
			StartAngle:    90,
			RotationSpeed: 4,
		},
		Items: Inventory{Swap: 3, Raise: 3, Rainbow: 3},
	}
}

// CannonPosition returns where bubbles are launched from.
func (c Config) CannonPosition() (x, y float64) {
	g := c.Geometry
	x = (g.FieldLeft() + g.FieldRight()) / 2
	y = g.YOffset + float64(c.FieldRows-1)*g.CellSize
	return x, y
}

// DangerLine returns the y coordinate that attached bubbles must not cross.
func (c Config) DangerLine() float64 {
	_, y := c.CannonPosition()
	return y - c.Geometry.CellSize*0.5
}

// Validate reports the first setting that makes the board unplayable.
func (c Config) Validate() error {
	g := c.Geometry
	switch {
	case g.Rows < 1 || g.Cols < 1:
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", g.Rows, g.Cols)
	case g.CellSize <= 0:
		return errors.New("cell size must be positive")
	case c.FieldRows <= g.Rows:
		return fmt.Errorf("field rows (%d) must exceed grid rows (%d)", c.FieldRows, g.Rows)
	case c.BubbleRadius <= 0 || c.BubbleRadius*2 > g.CellSize:
		return fmt.Errorf("bubble radius %.1f does not fit cell size %.1f", c.BubbleRadius, g.CellSize)
	case c.BubbleSpeed <= 0:
		return errors.New("bubble speed must be positive")
	case c.CollisionEpsilon < 0 || c.CollisionEpsilon >= c.BubbleRadius:
		return fmt.Errorf("collision epsilon %.1f out of range", c.CollisionEpsilon)
	case c.BubbleSpeed > 2*c.BubbleRadius-c.CollisionEpsilon:
		// A faster shot could step over a bubble between two ticks.
		return fmt.Errorf("bubble speed %.1f exceeds %.1f per tick", c.BubbleSpeed, 2*c.BubbleRadius-c.CollisionEpsilon)
	case c.MatchThreshold < 2:
		return fmt.Errorf("match threshold must be at least 2, got %d", c.MatchThreshold)
	case c.LaunchCooldown < 1:
		return fmt.Errorf("launch cooldown must be at least 1, got %d", c.LaunchCooldown)
	case c.Cannon.MinAngle >= c.Cannon.MaxAngle:
		return errors.New("cannon min angle must be below max angle")
	case c.Cannon.MinAngle <= 0 || c.Cannon.MaxAngle >= 180:
		return errors.New("cannon angles must stay inside (0, 180)")
	}
	return nil
}
