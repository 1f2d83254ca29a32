package core

// BubbleView is a read-only copy of a bubble for rendering.
type BubbleView struct {
	X, Y   float64
	Radius float64
	Color  Color
}

// ObstacleView is a read-only copy of an obstacle for rendering.
type ObstacleView struct {
	X, Y   float64
	Radius float64
}

// View is everything a renderer needs, copied out of the engine.
type View struct {
	Bubbles   []BubbleView
	Obstacles []ObstacleView

	Current    BubbleView
	HasCurrent bool
	Next       BubbleView
	HasNext    bool
	InFlight   bool

	CannonX, CannonY float64
	CannonAngle      float64

	FieldLeft   float64
	FieldRight  float64
	FieldTop    float64
	FieldBottom float64
	CeilingY    float64
	DangerLine  float64
	WallOffset  float64
	CellSize    float64

	Score          int
	Stage          int
	StageName      string
	Items          Inventory
	ShotsUntilDrop int
	Status         Status
}

// View returns a snapshot of the render state.
func (e *Engine) View() View {
	geo := e.cfg.Geometry
	v := View{
		CannonX:        e.cannon.X,
		CannonY:        e.cannon.Y,
		CannonAngle:    e.cannon.Angle,
		FieldLeft:      geo.FieldLeft(),
		FieldRight:     geo.FieldRight(),
		FieldTop:       geo.YOffset,
		FieldBottom:    geo.YOffset + float64(e.cfg.FieldRows)*geo.CellSize,
		CeilingY:       e.grid.CeilingY(),
		DangerLine:     e.cfg.DangerLine(),
		WallOffset:     e.grid.WallOffset(),
		CellSize:       geo.CellSize,
		Score:          e.score,
		Stage:          e.stage,
		StageName:      e.stageName,
		Items:          e.items,
		ShotsUntilDrop: e.ShotsUntilDrop(),
		Status:         e.status,
		InFlight:       e.shot == ShotInFlight,
	}

	for _, b := range e.grid.Bubbles() {
		v.Bubbles = append(v.Bubbles, BubbleView{X: b.X, Y: b.Y, Radius: b.Radius, Color: b.Color})
	}
	for _, o := range e.grid.Obstacles() {
		v.Obstacles = append(v.Obstacles, ObstacleView{X: o.X, Y: o.Y, Radius: o.Radius})
	}

	if e.current != nil {
		v.Current = BubbleView{X: e.current.X, Y: e.current.Y, Radius: e.current.Radius, Color: e.current.Color}
		v.HasCurrent = true
	}
	if e.next != nil {
		v.Next = BubbleView{X: e.next.X, Y: e.next.Y, Radius: e.next.Radius, Color: e.next.Color}
		v.HasNext = true
	}
	return v
}

// Matrix returns a copy of the current cell matrix.
func (e *Engine) Matrix() [][]Cell {
	return e.grid.Matrix()
}
