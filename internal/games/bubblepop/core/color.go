package core

import "strings"

// Color is a bubble color. The declaration order is the tie-break order.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorBlue
	ColorGreen
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	default:
		return "unknown"
	}
}

// Char returns the stage-file code for the color.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorBlue:
		return 'B'
	case ColorGreen:
		return 'G'
	default:
		return '?'
	}
}

// ParseColor converts a code or name to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	default:
		return ColorRed, false
	}
}

// AllColors returns every color in enumeration order.
func AllColors() []Color {
	return []Color{ColorRed, ColorYellow, ColorBlue, ColorGreen}
}
