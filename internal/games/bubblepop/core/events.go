package core

// EventKind identifies a notification emitted by the engine.
type EventKind uint8

const (
	EventPop EventKind = iota
	EventTap
	EventWallDrop
	EventStageClear
	EventGameOver
	EventGameWin
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventPop:
		return "pop"
	case EventTap:
		return "tap"
	case EventWallDrop:
		return "wall_drop"
	case EventStageClear:
		return "stage_clear"
	case EventGameOver:
		return "game_over"
	case EventGameWin:
		return "game_win"
	default:
		return "unknown"
	}
}

// Event is a side-effect-free notification about something that happened
// during a tick.
type Event struct {
	Kind    EventKind
	Count   int // EventPop: size of the popped cluster
	Dropped int // EventPop: hanging bubbles that fell afterwards
	Stage   int // EventStageClear: index of the cleared stage
}

// Hooks receives engine events as they happen. Every field is optional.
type Hooks struct {
	OnPop        func(count int)
	OnTap        func()
	OnWallDrop   func()
	OnStageClear func(stage int)
	OnGameOver   func()
	OnGameWin    func()
}

// dispatch calls the hook matching ev, if any.
func (h Hooks) dispatch(ev Event) {
	switch ev.Kind {
	case EventPop:
		if h.OnPop != nil {
			h.OnPop(ev.Count)
		}
	case EventTap:
		if h.OnTap != nil {
			h.OnTap()
		}
	case EventWallDrop:
		if h.OnWallDrop != nil {
			h.OnWallDrop()
		}
	case EventStageClear:
		if h.OnStageClear != nil {
			h.OnStageClear(ev.Stage)
		}
	case EventGameOver:
		if h.OnGameOver != nil {
			h.OnGameOver()
		}
	case EventGameWin:
		if h.OnGameWin != nil {
			h.OnGameWin()
		}
	}
}
