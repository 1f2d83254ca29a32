package core

import (
	"errors"
	"testing"
)

// stageList serves stages from memory.
type stageList []Stage

func (s stageList) Stage(index int) (Stage, bool) {
	if index < 0 || index >= len(s) {
		return Stage{}, false
	}
	return s[index], true
}

func cells(rows ...string) [][]Cell {
	m := make([][]Cell, len(rows))
	for r, row := range rows {
		for _, ch := range row {
			switch ch {
			case '.':
				m[r] = append(m[r], Empty())
			case 'N':
				m[r] = append(m[r], ObstacleCell())
			case '/':
				m[r] = append(m[r], BlockedCell())
			default:
				c, _ := ParseColor(string(ch))
				m[r] = append(m[r], ColorCell(c))
			}
		}
	}
	return m
}

func newEngine(t *testing.T, stages ...[][]Cell) *Engine {
	t.Helper()
	var src stageList
	for i, s := range stages {
		src = append(src, Stage{Name: "stage " + string(rune('A'+i)), Cells: s})
	}
	e, err := NewEngine(DefaultConfig(), src, 1, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e
}

// shootUp fires straight up and runs ticks until the shot settles.
func shootUp(t *testing.T, e *Engine) []Event {
	t.Helper()
	res := e.Update(TickInput{Fire: true})
	events := append([]Event(nil), res.Events...)
	for i := 0; i < 100 && e.Shot() == ShotInFlight; i++ {
		res = e.Update(TickInput{})
		events = append(events, res.Events...)
	}
	if e.Shot() == ShotInFlight {
		t.Fatal("shot never settled")
	}
	return events
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func sameKinds(a []EventKind, b ...EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewEngineErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MatchThreshold = 0
	if _, err := NewEngine(cfg, stageList{}, 1, nil); err == nil {
		t.Error("NewEngine with invalid config = nil error")
	}

	if _, err := NewEngine(DefaultConfig(), nil, 1, nil); !errors.Is(err, ErrNoStages) {
		t.Errorf("NewEngine with nil source error = %v, expected ErrNoStages", err)
	}

	e, err := NewEngine(DefaultConfig(), stageList{}, 1, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.Start(); !errors.Is(err, ErrNoStages) {
		t.Errorf("Start with no stages error = %v, expected ErrNoStages", err)
	}
}

func TestStartPreparesBubbles(t *testing.T) {
	e := newEngine(t, cells("BBBB....", "B......."))

	if e.current == nil || e.next == nil {
		t.Fatal("current or next bubble missing after Start")
	}
	if e.current.Color != ColorBlue || e.next.Color != ColorBlue {
		t.Errorf("spawned %v and %v on an all-blue stage", e.current.Color, e.next.Color)
	}
	cx, cy := e.cfg.CannonPosition()
	if e.current.X != cx || e.current.Y != cy {
		t.Errorf("current bubble at (%.1f, %.1f), expected cannon (%.1f, %.1f)", e.current.X, e.current.Y, cx, cy)
	}
	if e.Status() != StatusPlaying || e.Shot() != ShotIdle {
		t.Errorf("status %v shot %v after Start", e.Status(), e.Shot())
	}
	if e.StageName() != "stage A" {
		t.Errorf("StageName() = %q, expected %q", e.StageName(), "stage A")
	}
}

func TestClusterPopScoring(t *testing.T) {
	e := newEngine(t, cells("B..RR..."))

	popped := 0
	e.SetHooks(Hooks{OnPop: func(n int) { popped = n }})
	e.current.Color = ColorRed

	events := shootUp(t, e)
	if !sameKinds(kinds(events), EventPop) {
		t.Fatalf("events = %v, expected [pop]", kinds(events))
	}
	if events[0].Count != 3 || events[0].Dropped != 0 {
		t.Errorf("pop count %d dropped %d, expected 3 and 0", events[0].Count, events[0].Dropped)
	}
	if e.Score() != 30 {
		t.Errorf("Score() = %d, expected 30", e.Score())
	}
	if popped != 3 {
		t.Errorf("OnPop received %d, expected 3", popped)
	}
	for _, at := range []Coord{RC(0, 3), RC(0, 4), RC(1, 3)} {
		if !e.Cell(at.Row, at.Col).IsEmpty() {
			t.Errorf("cell %v not cleared", at)
		}
	}
	if e.TotalShots() != 1 || e.ShotsUntilDrop() != 3 {
		t.Errorf("TotalShots() = %d, ShotsUntilDrop() = %d, expected 1 and 3", e.TotalShots(), e.ShotsUntilDrop())
	}
	if err := e.grid.CheckInvariant(); err != nil {
		t.Errorf("invariant: %v", err)
	}
}

func TestPopDropsHangingBubbles(t *testing.T) {
	// Reds hold up a green pair below them.
	e := newEngine(t, cells(
		"Y..RR...",
		"........",
		"...GG...",
	))
	e.grid.PlaceBubble(NewBubble(0, 0, ColorRed, 47, 0), 1, 4)

	// Hand-attach the red that closes the cluster, then pop it.
	at, err := e.grid.PlaceBubble(NewBubble(0, 0, ColorRed, 47, 0), 1, 3)
	if err != nil {
		t.Fatalf("PlaceBubble: %v", err)
	}
	e.popIfMatch(at)

	if len(e.events) != 1 || e.events[0].Kind != EventPop {
		t.Fatalf("events = %v, expected one pop", kinds(e.events))
	}
	if e.events[0].Count != 4 || e.events[0].Dropped != 2 {
		t.Errorf("pop count %d dropped %d, expected 4 and 2", e.events[0].Count, e.events[0].Dropped)
	}
	if e.Score() != 40 {
		t.Errorf("Score() = %d, expected 40 (dropped bubbles score nothing)", e.Score())
	}
	if e.Popped() != 6 {
		t.Errorf("Popped() = %d, expected 6", e.Popped())
	}
	if !e.Cell(0, 0).IsColor() {
		t.Error("ceiling bubble fell")
	}
}

func TestSmallClusterTaps(t *testing.T) {
	e := newEngine(t, cells("B..RR..."))
	e.current.Color = ColorBlue

	events := shootUp(t, e)
	if !sameKinds(kinds(events), EventTap) {
		t.Fatalf("events = %v, expected [tap]", kinds(events))
	}
	if c := e.Cell(1, 3); !c.IsColor() || c.Color != ColorBlue {
		t.Errorf("cell (1,3) = %v, expected blue bubble", c.Kind)
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", e.Score())
	}
}

func TestObstacleContactSkipsMatching(t *testing.T) {
	e := newEngine(t, cells("B..NN..."))
	e.current.Color = ColorBlue

	events := shootUp(t, e)
	if !sameKinds(kinds(events), EventTap) {
		t.Fatalf("events = %v, expected [tap]", kinds(events))
	}
	if c := e.Cell(1, 3); !c.IsColor() {
		t.Errorf("cell (1,3) = %v, expected bubble under the obstacles", c.Kind)
	}
	if e.TotalShots() != 1 {
		t.Errorf("TotalShots() = %d, expected 1", e.TotalShots())
	}
}

func TestCeilingContact(t *testing.T) {
	e := newEngine(t, cells("B......."))
	e.current.Color = ColorRed

	events := shootUp(t, e)
	if !sameKinds(kinds(events), EventTap) {
		t.Fatalf("events = %v, expected [tap]", kinds(events))
	}
	if c := e.Cell(0, 4); !c.IsColor() || c.Color != ColorRed {
		t.Errorf("cell (0,4) = %v, expected red bubble on the ceiling", c.Kind)
	}
}

func TestWallDropAfterCooldown(t *testing.T) {
	e := newEngine(t, cells("B......."))
	e.SetLaunchCooldown(1)
	e.current.Color = ColorRed

	events := shootUp(t, e)
	if !sameKinds(kinds(events), EventTap, EventWallDrop) {
		t.Fatalf("events = %v, expected [tap wall_drop]", kinds(events))
	}
	if e.WallOffset() != 100 {
		t.Errorf("WallOffset() = %.0f, expected 100", e.WallOffset())
	}
	if e.ShotsUntilDrop() != 1 {
		t.Errorf("ShotsUntilDrop() = %d, expected 1", e.ShotsUntilDrop())
	}

	e.SetLaunchCooldown(0)
	if e.cooldown != 1 {
		t.Errorf("cooldown = %d after SetLaunchCooldown(0), expected 1", e.cooldown)
	}
}

func TestStageClearAndWin(t *testing.T) {
	e := newEngine(t, cells("...RR..."))
	e.current.Color = ColorRed

	events := shootUp(t, e)
	if !sameKinds(kinds(events), EventPop, EventStageClear, EventGameWin) {
		t.Fatalf("events = %v, expected [pop stage_clear game_win]", kinds(events))
	}
	if e.Status() != StatusWon {
		t.Errorf("Status() = %v, expected won", e.Status())
	}

	res := e.Update(TickInput{Fire: true})
	if len(res.Events) != 0 || res.Status != StatusWon {
		t.Errorf("Update after win = %v events, status %v", len(res.Events), res.Status)
	}
}

func TestStageClearAdvances(t *testing.T) {
	e := newEngine(t, cells("...RR..."), cells("G......."))
	e.current.Color = ColorRed

	events := shootUp(t, e)
	if !sameKinds(kinds(events), EventPop, EventStageClear) {
		t.Fatalf("events = %v, expected [pop stage_clear]", kinds(events))
	}
	if e.StageIndex() != 1 || e.StageName() != "stage B" {
		t.Errorf("stage = %d %q, expected 1 %q", e.StageIndex(), e.StageName(), "stage B")
	}
	if e.Status() != StatusPlaying {
		t.Errorf("Status() = %v, expected playing", e.Status())
	}
	if e.Score() != 30 {
		t.Errorf("Score() = %d, expected score carried over as 30", e.Score())
	}
	if e.current.Color != ColorGreen {
		t.Errorf("current color = %v, expected green from the new stage", e.current.Color)
	}
}

func TestObstacleOnlyStageIsCleared(t *testing.T) {
	e := newEngine(t, cells("NN..NN..", "...N...."))

	if !e.IsStageCleared() {
		t.Fatal("IsStageCleared() = false on a stage with only obstacles")
	}
	res := e.Update(TickInput{})
	if !sameKinds(kinds(res.Events), EventStageClear, EventGameWin) {
		t.Errorf("events = %v, expected [stage_clear game_win]", kinds(res.Events))
	}
}

func TestGameOverAtDangerLine(t *testing.T) {
	e := newEngine(t, cells(
		"R.......",
		"R.......",
		"R.......",
		"R.......",
		"R.......",
		"R.......",
	))

	over := false
	e.SetHooks(Hooks{OnGameOver: func() { over = true }})

	e.grid.DropWall()
	e.grid.DropWall()
	if res := e.Update(TickInput{}); res.Status != StatusPlaying {
		t.Fatalf("status after two drops = %v, expected playing", res.Status)
	}

	e.grid.DropWall()
	res := e.Update(TickInput{})
	if res.Status != StatusGameOver || !sameKinds(kinds(res.Events), EventGameOver) {
		t.Fatalf("Update = %v %v, expected game_over", res.Status, kinds(res.Events))
	}
	if !over || !e.IsGameOver() {
		t.Error("game over not reported")
	}
	if e.Fire() {
		t.Error("Fire() after game over = true")
	}
}

func TestFireWhileInFlight(t *testing.T) {
	e := newEngine(t, cells("B......."))

	if !e.Fire() {
		t.Fatal("first Fire() = false")
	}
	if e.Fire() {
		t.Error("second Fire() while airborne = true")
	}
}

func TestAimInput(t *testing.T) {
	e := newEngine(t, cells("B......."))

	e.Update(TickInput{Aim: 1})
	if e.CannonAngle() != 94 {
		t.Errorf("CannonAngle() = %.1f, expected 94", e.CannonAngle())
	}
	e.Update(TickInput{Aim: -1})
	e.Update(TickInput{Aim: -1})
	if e.CannonAngle() != 86 {
		t.Errorf("CannonAngle() = %.1f, expected 86", e.CannonAngle())
	}
	e.Aim(-500)
	if e.CannonAngle() != 10 {
		t.Errorf("CannonAngle() = %.1f, expected 10", e.CannonAngle())
	}
}

func TestBankShotSettles(t *testing.T) {
	e := newEngine(t, cells("RRRRRRRR", "YYYYYYYY"))
	e.Aim(-70)

	events := shootUp(t, e)
	if len(events) == 0 {
		t.Fatal("bank shot produced no events")
	}
	if err := e.grid.CheckInvariant(); err != nil {
		t.Errorf("invariant: %v", err)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []uint64 {
		e := newEngine(t, cells("RYBGRYBG", "GBYRGBYR", "RRYYBBGG"))
		var hashes []uint64
		for i := 0; i < 400 && e.Status() == StatusPlaying; i++ {
			in := TickInput{Fire: i%25 == 0}
			switch (i / 40) % 3 {
			case 0:
				in.Aim = 1
			case 1:
				in.Aim = -1
			}
			e.Update(in)
			s := e.Snapshot()
			hashes = append(hashes, s.Hash())
		}
		return hashes
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs lasted %d and %d ticks", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hash mismatch at tick %d", i)
		}
	}
}
