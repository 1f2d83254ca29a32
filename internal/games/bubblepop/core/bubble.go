package core

import "math"

// Attachment describes whether a bubble is flying or fixed in the grid.
type Attachment uint8

const (
	InFlight Attachment = iota
	Attached
)

// Bubble is a colored ball, either in flight or attached to a cell.
type Bubble struct {
	X, Y   float64
	Color  Color
	Radius float64
	State  Attachment

	// Row and Col are valid only when State is Attached.
	Row int
	Col int

	// Angle (degrees, 90 = straight up) and Speed matter only in flight.
	Angle float64
	Speed float64
}

// NewBubble creates a bubble resting at (x, y).
func NewBubble(x, y float64, color Color, radius, speed float64) *Bubble {
	return &Bubble{
		X:      x,
		Y:      y,
		Color:  color,
		Radius: radius,
		State:  InFlight,
		Row:    -1,
		Col:    -1,
		Angle:  90,
		Speed:  speed,
	}
}

// Fire launches the bubble at the given angle.
func (b *Bubble) Fire(angle float64) {
	b.State = InFlight
	b.Angle = angle
	b.Row, b.Col = -1, -1
}

// Move advances the bubble one tick and reflects it off the vertical walls
// at left and right.
func (b *Bubble) Move(left, right float64) {
	rad := b.Angle * math.Pi / 180
	b.X += b.Speed * math.Cos(rad)
	b.Y -= b.Speed * math.Sin(rad)

	if b.X-b.Radius < left {
		b.X = left + b.Radius
		b.Angle = 180 - b.Angle
	} else if b.X+b.Radius > right {
		b.X = right - b.Radius
		b.Angle = 180 - b.Angle
	}
}

// Top returns the y coordinate of the bubble's top edge.
func (b *Bubble) Top() float64 {
	return b.Y - b.Radius
}

// Bottom returns the y coordinate of the bubble's bottom edge.
func (b *Bubble) Bottom() float64 {
	return b.Y + b.Radius
}

// Touches reports whether the bubble overlaps a circle at (x, y) with radius r,
// triggering epsilon pixels early.
func (b *Bubble) Touches(x, y, r, epsilon float64) bool {
	return math.Hypot(b.X-x, b.Y-y) <= b.Radius+r-epsilon
}
