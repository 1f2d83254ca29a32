package bubblepop

import (
	"fmt"
	"math"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

const (
	hudHeight  = 2
	panelWidth = 22
	aimSteps   = 16
	aimStride  = 25.0 // world units between aim dots
)

// layout maps world coordinates to screen cells.
type layout struct {
	cw, ch int // terminal chars per grid cell
	ox, oy int // screen position of the field's top-left corner
	fieldW int
	fieldH int
	left   float64
	top    float64
	cell   float64
}

// sx returns the screen column of world x.
func (l layout) sx(x float64) int {
	return l.ox + int(math.Floor((x-l.left)/l.cell*float64(l.cw)))
}

// sy returns the screen row of world y.
func (l layout) sy(y float64) int {
	return l.oy + int(math.Floor((y-l.top)/l.cell*float64(l.ch)))
}

// computeLayout picks the largest cell scale that fits the screen.
// It returns false when even the small scale does not fit.
func computeLayout(v core.View, w, h int) (layout, bool) {
	widthCells := (v.FieldRight - v.FieldLeft) / v.CellSize
	heightCells := (v.FieldBottom - v.FieldTop) / v.CellSize

	for _, scale := range [][2]int{{4, 2}, {2, 1}} {
		l := layout{
			cw:     scale[0],
			ch:     scale[1],
			fieldW: int(math.Ceil(widthCells * float64(scale[0]))),
			fieldH: int(math.Ceil(heightCells * float64(scale[1]))),
			left:   v.FieldLeft,
			top:    v.FieldTop,
			cell:   v.CellSize,
		}
		needW := l.fieldW + 3 + panelWidth
		needH := hudHeight + l.fieldH + 3
		if w < needW || h < needH {
			continue
		}
		l.ox = (w-needW)/2 + 1
		l.oy = hudHeight + 1
		return l, true
	}
	return layout{}, false
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		g.renderHUD(dst, core.View{})
		msg := "No stages found"
		if g.loadErr != nil {
			msg = truncate(g.loadErr.Error(), dst.Width()-6)
		}
		renderOverlay(dst, msg, "Press R to retry, Q to quit")
		return
	}

	v := g.engine.View()
	g.renderHUD(dst, v)

	l, ok := computeLayout(v, dst.Width(), dst.Height())
	if !ok {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderField(dst, l, v)
	g.renderPanel(dst, l, v)
	g.renderStatus(dst)

	switch {
	case v.Status == core.StatusWon:
		renderOverlay(dst, "You Win!", fmt.Sprintf("Score %d. Press R to play again", v.Score))
	case v.Status == core.StatusGameOver:
		renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case g.bannerTicks > 0:
		renderOverlay(dst, g.banner, v.StageName)
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen, v core.View) {
	hud := " " + g.Title()
	if g.engine != nil {
		hud += fmt.Sprintf(" | Score: %d | Stage: %s | %s", v.Score, g.stageLabel(v), g.preset)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

func (g *Game) stageLabel(v core.View) string {
	if g.stageCount > 0 {
		return fmt.Sprintf("%d/%d", v.Stage+1, g.stageCount)
	}
	return fmt.Sprintf("%d", v.Stage+1)
}

// renderField draws the walls, the ceiling, bubbles and the cannon.
func (g *Game) renderField(dst *platformcore.Screen, l layout, v core.View) {
	dst.DrawBox(platformcore.NewRect(l.ox-1, l.oy-1, l.fieldW+2, l.fieldH+2), platformcore.ColorGray)

	// Descended wall between the field top and the ceiling.
	for y := l.oy; y < l.sy(v.CeilingY) && y < l.oy+l.fieldH; y++ {
		dst.DrawHLine(l.ox, y, l.fieldW, '▒', platformcore.ColorGray)
	}

	danger := l.sy(v.DangerLine)
	dst.DrawHLine(l.ox, danger, l.fieldW, '┄', platformcore.ColorRed)

	for _, o := range v.Obstacles {
		drawObstacle(dst, l, o)
	}
	for _, b := range v.Bubbles {
		drawBubble(dst, l, b)
	}

	if !v.InFlight && v.HasCurrent {
		drawAimGuide(dst, l, v)
	}

	base := l.sy(v.CannonY + v.CellSize/2)
	baseW := l.cw + 2
	dst.DrawHLine(l.sx(v.CannonX)-baseW/2, base, baseW, '═', platformcore.ColorWhite)

	if v.HasCurrent {
		drawBubble(dst, l, v.Current)
	}
}

// drawAimGuide plots the first stretch of the shot path, reflecting off
// the side walls the same way the engine does.
func drawAimGuide(dst *platformcore.Screen, l layout, v core.View) {
	x, y := v.CannonX, v.CannonY
	angle := v.CannonAngle
	r := v.Current.Radius

	for i := 0; i < aimSteps; i++ {
		rad := angle * math.Pi / 180
		x += aimStride * math.Cos(rad)
		y -= aimStride * math.Sin(rad)
		if x-r < v.FieldLeft {
			x = v.FieldLeft + r
			angle = 180 - angle
		} else if x+r > v.FieldRight {
			x = v.FieldRight - r
			angle = 180 - angle
		}
		if y-r <= v.CeilingY {
			return
		}
		if i < 2 {
			continue // Inside the loaded bubble
		}
		dst.SetWithColor(l.sx(x), l.sy(y), '·', platformcore.ColorWhite)
	}
}

// drawBubble draws one bubble as a cell-sized glyph centered on its position.
func drawBubble(dst *platformcore.Screen, l layout, b core.BubbleView) {
	x := l.sx(b.X - l.cell/2)
	y := l.sy(b.Y - l.cell/2)
	c := colorFor(b.Color)

	if l.cw >= 4 {
		dst.DrawTextWithColor(x, y, "╭██╮", c)
		dst.DrawTextWithColor(x, y+1, "╰██╯", c)
		return
	}
	dst.DrawTextWithColor(x, y, "()", c)
}

func drawObstacle(dst *platformcore.Screen, l layout, o core.ObstacleView) {
	x := l.sx(o.X - l.cell/2)
	y := l.sy(o.Y - l.cell/2)

	if l.cw >= 4 {
		dst.DrawTextWithColor(x, y, "[▓▓]", platformcore.ColorGray)
		dst.DrawTextWithColor(x, y+1, "[▓▓]", platformcore.ColorGray)
		return
	}
	dst.DrawTextWithColor(x, y, "##", platformcore.ColorGray)
}

// renderPanel draws score, next bubble, wall timer, items and keys.
func (g *Game) renderPanel(dst *platformcore.Screen, l layout, v core.View) {
	px := l.ox + l.fieldW + 2
	py := l.oy

	line := func(text string, c platformcore.Color) {
		dst.DrawTextWithColor(px, py, truncate(text, panelWidth-1), c)
		py++
	}

	line("SCORE", platformcore.ColorGray)
	line(fmt.Sprintf("%d", v.Score), platformcore.ColorBrightWhite)
	py++
	line("STAGE "+g.stageLabel(v), platformcore.ColorGray)
	line(v.StageName, platformcore.ColorBrightWhite)
	py++

	dst.DrawTextWithColor(px, py, "NEXT", platformcore.ColorGray)
	if v.HasNext {
		dst.DrawTextWithColor(px+5, py, "●", colorFor(v.Next.Color))
		dst.DrawTextWithColor(px+7, py, v.Next.Color.String(), colorFor(v.Next.Color))
	}
	py++
	line(fmt.Sprintf("DROP IN %d", max(1, v.ShotsUntilDrop)), platformcore.ColorGray)
	py++

	line("ITEMS", platformcore.ColorGray)
	line(fmt.Sprintf("1 Swap     x%d", v.Items.Swap), itemColor(v.Items.Swap))
	line(fmt.Sprintf("2 Raise    x%d", v.Items.Raise), itemColor(v.Items.Raise))
	line(fmt.Sprintf("3 Rainbow  x%d", v.Items.Rainbow), itemColor(v.Items.Rainbow))

	if py+4 > l.oy+l.fieldH {
		return
	}
	py++
	line("←/→ aim  Space fire", platformcore.ColorGray)
	line("P pause  R restart", platformcore.ColorGray)
	line("Q quit", platformcore.ColorGray)
}

func itemColor(left int) platformcore.Color {
	if left > 0 {
		return platformcore.ColorBrightYellow
	}
	return platformcore.ColorGray
}

// renderStatus draws the latest event message on the bottom line.
func (g *Game) renderStatus(dst *platformcore.Screen) {
	y := dst.Height() - 1
	if g.statusTicks > 0 && g.status != "" {
		dst.DrawTextWithColor(1, y, g.status, platformcore.ColorBrightWhite)
		return
	}
	dst.DrawTextWithColor(1, y, "←/→: Aim | Space: Fire | 1/2/3: Items | P: Pause | Q: Quit", platformcore.ColorGray)
}

// renderOverlay draws a centered box with two lines of text.
func renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	boxH := 5
	box := platformcore.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorWhite)
}

// colorFor maps bubble colors to screen colors.
func colorFor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorBrightRed
	case core.ColorYellow:
		return platformcore.ColorBrightYellow
	case core.ColorBlue:
		return platformcore.ColorBrightBlue
	case core.ColorGreen:
		return platformcore.ColorBrightGreen
	default:
		return platformcore.ColorWhite
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
