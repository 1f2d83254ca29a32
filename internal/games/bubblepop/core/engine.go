package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNoStages is returned when the stage source cannot supply the first stage.
var ErrNoStages = errors.New("no stages available")

// Stage is one board layout supplied by a StageSource.
type Stage struct {
	Name  string
	Cells [][]Cell
}

// StageSource supplies stage layouts by zero-based index.
type StageSource interface {
	// Stage returns the layout at index and false when no such stage exists.
	Stage(index int) (Stage, bool)
}

// ShotState tracks the current shot.
type ShotState uint8

const (
	ShotIdle ShotState = iota
	ShotInFlight
	ShotResolving
)

// String returns the string representation of a shot state.
func (s ShotState) String() string {
	switch s {
	case ShotIdle:
		return "idle"
	case ShotInFlight:
		return "in_flight"
	case ShotResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Status is the state of the whole run.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusGameOver
	StatusWon
)

// String returns the string representation of a run status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "game_over"
	case StatusWon:
		return "won"
	default:
		return "unknown"
	}
}

// TickInput is the player input for one tick.
type TickInput struct {
	Aim  int  // +1 rotates left, -1 rotates right, 0 holds
	Fire bool // launch the current bubble if none is airborne
}

// TickResult reports what happened during one tick.
type TickResult struct {
	Events []Event
	Status Status
}

// contact is what an in-flight bubble hit this tick.
type contact uint8

const (
	contactNone contact = iota
	contactCeiling
	contactBubble
	contactObstacle
)

// Engine runs the shot, match and stage rules on top of a Grid.
type Engine struct {
	cfg    Config
	grid   *Grid
	cannon Cannon
	source StageSource
	rng    *RNG
	logger *log.Logger
	hooks  Hooks

	current *Bubble // owned by the engine until attached
	next    *Bubble
	shot    ShotState

	status     Status
	stage      int
	stageName  string
	score      int
	shots      int // attached shots since the last wall drop
	totalShots int
	popped     int
	cooldown   int
	items      Inventory
	tick       uint64

	events []Event
}

// NewEngine creates an engine. Call Start before the first Update.
// A nil logger discards warnings.
func NewEngine(cfg Config, source StageSource, seed uint64, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if source == nil {
		return nil, ErrNoStages
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cx, cy := cfg.CannonPosition()
	return &Engine{
		cfg:      cfg,
		grid:     NewGrid(cfg.Geometry, cfg.BubbleRadius, logger),
		cannon:   NewCannon(cx, cy, cfg.Cannon),
		source:   source,
		rng:      NewRNG(seed),
		logger:   logger,
		cooldown: cfg.LaunchCooldown,
		items:    cfg.Items,
	}, nil
}

// SetHooks installs event callbacks.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// SetLaunchCooldown changes how many attached shots lower the wall.
// Values below 1 are ignored.
func (e *Engine) SetLaunchCooldown(n int) {
	if n >= 1 {
		e.cooldown = n
	}
}

// Start begins a fresh run at the first stage.
func (e *Engine) Start() error {
	return e.StartAt(0)
}

// StartAt begins a fresh run at the given stage index.
func (e *Engine) StartAt(index int) error {
	e.status = StatusPlaying
	e.score = 0
	e.totalShots = 0
	e.popped = 0
	e.tick = 0
	e.items = e.cfg.Items
	e.events = nil
	cx, cy := e.cfg.CannonPosition()
	e.cannon = NewCannon(cx, cy, e.cfg.Cannon)

	if !e.loadStage(index) {
		return fmt.Errorf("start at stage %d: %w", index+1, ErrNoStages)
	}
	return nil
}

// loadStage installs a stage and prepares a fresh pair of bubbles.
func (e *Engine) loadStage(index int) bool {
	st, ok := e.source.Stage(index)
	if !ok {
		return false
	}
	e.stage = index
	e.stageName = st.Name
	e.grid.Load(st.Cells)
	e.current, e.next = nil, nil
	e.shot = ShotIdle
	e.shots = 0
	e.prepareBubbles()
	e.logger.Debug("stage loaded", "stage", index+1, "name", st.Name)
	return true
}

// Update advances the simulation by one tick.
func (e *Engine) Update(in TickInput) TickResult {
	e.events = nil
	if e.status != StatusPlaying {
		return TickResult{Status: e.status}
	}
	e.tick++

	if in.Aim != 0 {
		e.cannon.Step(in.Aim)
	}
	if in.Fire {
		e.Fire()
	}
	if e.shot == ShotInFlight {
		e.advanceShot()
	}
	e.checkProgress()

	return TickResult{Events: e.events, Status: e.status}
}

// Fire launches the current bubble along the cannon's aim.
// It returns false when a shot is already airborne or nothing is loaded.
func (e *Engine) Fire() bool {
	if e.status != StatusPlaying || e.shot != ShotIdle || e.current == nil {
		return false
	}
	e.current.Fire(e.cannon.Angle)
	e.shot = ShotInFlight
	return true
}

// Aim rotates the cannon by delta degrees. Positive values aim further left.
func (e *Engine) Aim(delta float64) {
	e.cannon.Rotate(delta)
}

// advanceShot moves the projectile and resolves any contact.
func (e *Engine) advanceShot() {
	b := e.current
	geo := e.cfg.Geometry
	b.Move(geo.FieldLeft(), geo.FieldRight())

	hit := e.detectContact(b)
	if hit == contactNone {
		if b.Y < -b.Radius {
			e.logger.Debug("shot left the field", "x", b.X, "y", b.Y)
			e.current = nil
			e.shot = ShotIdle
			e.prepareBubbles()
		}
		return
	}
	e.resolve(hit)
}

// detectContact tests ceiling, bubbles and obstacles in that order.
func (e *Engine) detectContact(b *Bubble) contact {
	if b.Top() <= e.grid.CeilingY() {
		return contactCeiling
	}
	eps := e.cfg.CollisionEpsilon
	for _, other := range e.grid.bubbles {
		if b.Touches(other.X, other.Y, other.Radius, eps) {
			return contactBubble
		}
	}
	for _, o := range e.grid.obstacles {
		if b.Touches(o.X, o.Y, o.Radius, eps) {
			return contactObstacle
		}
	}
	return contactNone
}

// resolve attaches the current bubble and runs matching and bookkeeping
// within the same tick.
func (e *Engine) resolve(hit contact) {
	e.shot = ShotResolving
	b := e.current
	e.current = nil

	target := e.grid.NearestEmptyCell(b.X, b.Y)
	if hit == contactCeiling {
		target.Row = 0
	}

	at, err := e.grid.PlaceBubble(b, target.Row, target.Col)
	switch {
	case err != nil:
		e.logger.Warn("shot could not attach", "error", err)
	case hit == contactObstacle:
		e.emit(Event{Kind: EventTap})
	default:
		e.popIfMatch(at)
	}

	e.shots++
	e.totalShots++
	if e.shots >= e.cooldown {
		e.grid.DropWall()
		e.shots = 0
		e.emit(Event{Kind: EventWallDrop})
	}

	e.prepareBubbles()
	e.shot = ShotIdle
}

// popIfMatch removes the cluster at the landing cell if it is large enough.
func (e *Engine) popIfMatch(at Coord) {
	cell := e.grid.Cell(at.Row, at.Col)
	if !cell.IsColor() {
		e.emit(Event{Kind: EventTap})
		return
	}

	cluster := e.grid.SameColorComponent(at.Row, at.Col, cell.Color)
	if len(cluster) < e.cfg.MatchThreshold {
		e.emit(Event{Kind: EventTap})
		return
	}

	e.grid.RemoveCells(cluster)
	dropped := e.grid.DropHanging()
	e.score += len(cluster) * e.cfg.PointsPerBubble
	e.popped += len(cluster) + dropped
	e.emit(Event{Kind: EventPop, Count: len(cluster), Dropped: dropped})
}

// checkProgress handles stage clear, the win state and the danger line.
func (e *Engine) checkProgress() {
	if e.grid.IsCleared() {
		e.emit(Event{Kind: EventStageClear, Stage: e.stage})
		if !e.loadStage(e.stage + 1) {
			e.status = StatusWon
			e.emit(Event{Kind: EventGameWin})
			return
		}
	}

	if e.grid.LowestBubbleBottom() > e.cfg.DangerLine() {
		e.status = StatusGameOver
		e.emit(Event{Kind: EventGameOver})
	}
}

// prepareBubbles promotes the queued bubble and spawns a new one behind it.
func (e *Engine) prepareBubbles() {
	if e.next != nil {
		e.current = e.next
	} else {
		e.current = e.spawn()
	}
	e.current.X, e.current.Y = e.cannon.X, e.cannon.Y
	e.current.State = InFlight
	e.next = e.spawn()
}

// spawn creates a bubble at the cannon in a color present on the grid,
// or any color when the grid has none.
func (e *Engine) spawn() *Bubble {
	palette := e.grid.ColorsPresent()
	if len(palette) == 0 {
		palette = AllColors()
	}
	color := palette[e.rng.Intn(len(palette))]
	return NewBubble(e.cannon.X, e.cannon.Y, color, e.cfg.BubbleRadius, e.cfg.BubbleSpeed)
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
	e.hooks.dispatch(ev)
}

// IsStageCleared returns true if no color bubble remains on the grid.
func (e *Engine) IsStageCleared() bool {
	return e.grid.IsCleared()
}

// IsGameOver returns true if an attached bubble crossed the danger line.
func (e *Engine) IsGameOver() bool {
	return e.grid.LowestBubbleBottom() > e.cfg.DangerLine()
}

// Status returns the run status.
func (e *Engine) Status() Status { return e.status }

// Shot returns the current shot state.
func (e *Engine) Shot() ShotState { return e.shot }

// Score returns the accumulated score.
func (e *Engine) Score() int { return e.score }

// StageIndex returns the zero-based index of the current stage.
func (e *Engine) StageIndex() int { return e.stage }

// StageName returns the name of the current stage.
func (e *Engine) StageName() string { return e.stageName }

// Items returns the remaining item inventory.
func (e *Engine) Items() Inventory { return e.items }

// TotalShots returns the number of shots that attached during the run.
func (e *Engine) TotalShots() int { return e.totalShots }

// Popped returns how many bubbles were removed by pops and drops.
func (e *Engine) Popped() int { return e.popped }

// ShotsUntilDrop returns how many more attached shots lower the wall.
func (e *Engine) ShotsUntilDrop() int { return max(1, e.cooldown-e.shots) }

// CannonAngle returns the current aim in degrees.
func (e *Engine) CannonAngle() float64 { return e.cannon.Angle }

// Cell returns the contents of a grid cell.
func (e *Engine) Cell(row, col int) Cell { return e.grid.Cell(row, col) }

// WallOffset returns how far the ceiling has descended.
func (e *Engine) WallOffset() float64 { return e.grid.WallOffset() }

// Config returns the engine's rule set.
func (e *Engine) Config() Config { return e.cfg }
