package core

// Cannon holds the aim state used when firing.
type Cannon struct {
	X, Y          float64
	Angle         float64
	MinAngle      float64
	MaxAngle      float64
	RotationSpeed float64
}

// NewCannon creates a cannon at (x, y) aimed according to cfg.
func NewCannon(x, y float64, cfg CannonConfig) Cannon {
	c := Cannon{
		X:             x,
		Y:             y,
		MinAngle:      cfg.MinAngle,
		MaxAngle:      cfg.MaxAngle,
		RotationSpeed: cfg.RotationSpeed,
	}
	c.Angle = clampF(cfg.StartAngle, c.MinAngle, c.MaxAngle)
	return c
}

// Rotate turns the cannon by delta degrees, clamped to its range.
// Positive values aim further left.
func (c *Cannon) Rotate(delta float64) {
	c.Angle = clampF(c.Angle+delta, c.MinAngle, c.MaxAngle)
}

// Step rotates by one rotation step in the given direction (-1, 0 or 1).
func (c *Cannon) Step(dir int) {
	c.Rotate(float64(dir) * c.RotationSpeed)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
