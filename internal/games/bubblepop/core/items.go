package core

import (
	"errors"
	"fmt"
)

// Item refusals. A refused item is not consumed.
var (
	ErrNoItems    = errors.New("no items left")
	ErrNoBubble   = errors.New("no bubble loaded")
	ErrWallAtTop  = errors.New("wall is already at the top")
	ErrNotPlaying = errors.New("run is not in progress")
)

// UseSwap exchanges the colors of the current and next bubble.
func (e *Engine) UseSwap() error {
	if err := e.canUse(e.items.Swap, "swap"); err != nil {
		return err
	}
	if e.current == nil || e.next == nil {
		return fmt.Errorf("swap: %w", ErrNoBubble)
	}
	e.current.Color, e.next.Color = e.next.Color, e.current.Color
	e.items.Swap--
	return nil
}

// UseRaise lifts the wall by one cell.
func (e *Engine) UseRaise() error {
	if err := e.canUse(e.items.Raise, "raise"); err != nil {
		return err
	}
	if !e.grid.RaiseWall() {
		return fmt.Errorf("raise: %w", ErrWallAtTop)
	}
	e.items.Raise--
	return nil
}

// UseRainbow recolors the current bubble to the most common grid color.
func (e *Engine) UseRainbow() error {
	if err := e.canUse(e.items.Rainbow, "rainbow"); err != nil {
		return err
	}
	if e.current == nil {
		return fmt.Errorf("rainbow: %w", ErrNoBubble)
	}
	e.current.Color = e.rainbowColor()
	e.items.Rainbow--
	return nil
}

func (e *Engine) canUse(left int, name string) error {
	if e.status != StatusPlaying {
		return fmt.Errorf("%s: %w", name, ErrNotPlaying)
	}
	if left <= 0 {
		return fmt.Errorf("%s: %w", name, ErrNoItems)
	}
	return nil
}

// rainbowColor picks the color with the most attached bubbles, earlier
// colors winning ties, or a random color on an empty grid.
func (e *Engine) rainbowColor() Color {
	counts := e.grid.ColorCounts()
	best, bestCount := ColorRed, 0
	for _, c := range AllColors() {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	if bestCount == 0 {
		all := AllColors()
		return all[e.rng.Intn(len(all))]
	}
	return best
}
