// Package bubblepop adapts the hex bubble-shooter engine to the platform:
// it maps actions to engine input, turns events into status messages and
// draws the engine view into a character screen.
package bubblepop

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/stages"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

// Game IDs used for registration and score storage.
const (
	CampaignID = "bubblepop"
	EndlessID  = "bubblepop_endless"
)

// Mode selects where stages come from.
type Mode int

const (
	ModeCampaign Mode = iota // numbered stage files, ends in a win
	ModeEndless              // generated stages forever
)

// bannerSeconds is how long the stage-clear banner stays up.
const bannerSeconds = 2

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset string
	stageDir         string
	startStage       int
	gameLogger       *log.Logger
)

// SetConfigPath selects a custom YAML config. Empty uses the search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects easy, normal, hard or fixed.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStageDir makes the campaign read stage files from dir instead of the
// built-in set.
func SetStageDir(dir string) {
	stageDir = dir
}

// SetStartStage sets the starting stage (1-indexed). 0 means the first.
func SetStartStage(stage int) {
	startStage = stage
}

// SetLogger routes engine and loader warnings. Nil discards them.
func SetLogger(l *log.Logger) {
	gameLogger = l
}

// StageNames lists the campaign stages the next Reset would load.
func StageNames() []string {
	cfg, _ := config.LoadBubblePop(configPath)
	var loader *stages.Loader
	if stageDir != "" {
		loader = stages.NewLoader(stageDir, cfg.Grid.Rows, cfg.Grid.Cols)
	} else {
		loader = stages.Builtin(cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if gameLogger != nil {
		loader.Logger = gameLogger
	}
	return loader.Names()
}

func init() {
	registry.Register(CampaignID, func() registry.Game {
		return New(ModeCampaign)
	})
	registry.Register(EndlessID, func() registry.Game {
		return New(ModeEndless)
	})
}

// Game implements registry.Game on top of core.Engine.
type Game struct {
	mode   Mode
	logger *log.Logger

	cfg        config.BubblePopConfig
	preset     config.DifficultyPreset
	difficulty *config.DifficultyManager
	engine     *core.Engine
	stageCount int // 0 when unbounded
	loadErr    error

	// Per-instance overrides of the package settings, used by SSH sessions.
	presetName string
	startAt    int

	seed     int64
	tickRate int
	screenW  int
	screenH  int

	tick        uint64
	paused      bool
	banner      string
	bannerTicks int
	status      string
	statusTicks int
}

// New creates a game in the given mode. Call Reset before Step.
func New(mode Mode) *Game {
	return &Game{
		mode:     mode,
		logger:   log.New(io.Discard),
		tickRate: platformcore.DefaultConfig().TickRate,
	}
}

// Configure overrides the package-level difficulty and start stage for
// this instance only. Empty or zero values fall back to the package settings.
func (g *Game) Configure(preset string, stage int) {
	g.presetName = preset
	g.startAt = stage
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return EndlessID
	}
	return CampaignID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Bubble Pop Endless"
	}
	return "Bubble Pop"
}

// Reset loads config and stages and starts a fresh run.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if gameLogger != nil {
		g.logger = gameLogger
	}
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	g.tick = 0
	g.paused = false
	g.banner, g.bannerTicks = "", 0
	g.status, g.statusTicks = "", 0
	g.loadErr = nil
	g.engine = nil

	g.loadConfig()

	source, count, err := g.stageSource()
	if err != nil {
		g.loadErr = err
		g.logger.Error("no stages", "err", err)
		return
	}
	g.stageCount = count

	engine, err := core.NewEngine(g.cfg.Engine(), source, uint64(cfg.Seed), g.logger) //#nosec G115
	if err != nil {
		g.loadErr = err
		g.logger.Error("engine setup failed", "err", err)
		return
	}

	index := 0
	first := startStage
	if g.startAt > 0 {
		first = g.startAt
	}
	if first > 0 {
		index = first - 1
		if count > 0 && index >= count {
			index = count - 1
		}
		startStage, g.startAt = 0, 0 // Reset after use
	}
	if err := engine.StartAt(index); err != nil {
		g.loadErr = err
		g.logger.Error("cannot start run", "stage", index+1, "err", err)
		return
	}
	g.engine = engine
	g.applyDifficulty()
}

// loadConfig reads the YAML config and applies the difficulty preset.
// Any failure leaves the defaults in place.
func (g *Game) loadConfig() {
	cfg, err := config.LoadBubblePop(configPath)
	if err != nil {
		g.logger.Warn("using default config", "path", configPath, "err", err)
	}

	name := difficultyPreset
	if g.presetName != "" {
		name = g.presetName
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		g.logger.Warn("unknown difficulty, using normal", "preset", name)
		preset = config.DifficultyNormal
	}
	config.ApplyBubblePopPreset(&cfg, preset)

	g.cfg = cfg
	g.preset = preset
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
}

// stageSource builds the stage supplier for the mode and reports how many
// stages it holds (0 for unbounded sources).
func (g *Game) stageSource() (core.StageSource, int, error) {
	rows, cols := g.cfg.Grid.Rows, g.cfg.Grid.Cols

	if g.mode == ModeEndless {
		return stages.NewGenerator(rows, cols, uint64(g.seed)), 0, nil //#nosec G115
	}

	var loader *stages.Loader
	if stageDir != "" {
		loader = stages.NewLoader(stageDir, rows, cols)
	} else {
		loader = stages.Builtin(rows, cols)
	}
	loader.Logger = g.logger
	if _, err := loader.LoadAll(); err != nil {
		return nil, 0, err
	}
	if loader.Count() == 0 {
		return nil, 0, fmt.Errorf("stage directory %q: %w", loader.Root, core.ErrNoStages)
	}
	return loader, loader.Count(), nil
}

// applyDifficulty updates the wall-drop cooldown from current progress.
func (g *Game) applyDifficulty() {
	if g.engine == nil || !g.difficulty.IsEnabled() {
		return
	}
	base := g.cfg.Rules.LaunchCooldown
	g.engine.SetLaunchCooldown(g.difficulty.Cooldown(base, g.engine.Score(), int(g.tick))) //#nosec G115
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	var messages []string

	if g.bannerTicks > 0 {
		g.bannerTicks--
	}
	if g.statusTicks > 0 {
		g.statusTicks--
	}

	state := g.State()
	if input.Has(platformcore.ActionRestart) && (state.GameOver || g.loadErr != nil) {
		g.Reset(platformcore.RuntimeConfig{
			Seed:     g.seed + 1,
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return platformcore.StepResult{State: g.State()}
	}

	if input.Has(platformcore.ActionPause) && g.engine != nil && !state.GameOver {
		g.paused = !g.paused
	}

	if g.engine == nil || g.paused || state.GameOver {
		return platformcore.StepResult{State: g.State()}
	}

	messages = append(messages, g.useItems(input)...)

	result := g.engine.Update(core.TickInput{
		Aim:  input.Aim(),
		Fire: input.Has(platformcore.ActionFire),
	})
	for _, ev := range result.Events {
		if msg := g.describe(ev); msg != "" {
			messages = append(messages, msg)
		}
	}
	g.applyDifficulty()

	if len(messages) > 0 {
		g.showStatus(messages[len(messages)-1])
	}
	return platformcore.StepResult{State: g.State(), Messages: messages}
}

// useItems applies item actions in key order and returns refusal or
// confirmation messages.
func (g *Game) useItems(input platformcore.InputFrame) []string {
	var out []string
	items := []struct {
		action platformcore.Action
		name   string
		use    func() error
	}{
		{platformcore.ActionSwap, "Swap", g.engine.UseSwap},
		{platformcore.ActionRaise, "Raise", g.engine.UseRaise},
		{platformcore.ActionRainbow, "Rainbow", g.engine.UseRainbow},
	}
	for _, it := range items {
		if !input.Has(it.action) {
			continue
		}
		if err := it.use(); err != nil {
			out = append(out, refusal(it.name, err))
			continue
		}
		out = append(out, it.name+" used")
	}
	return out
}

func refusal(name string, err error) string {
	switch {
	case errors.Is(err, core.ErrNoItems):
		return name + ": none left"
	case errors.Is(err, core.ErrWallAtTop):
		return name + ": wall is already at the top"
	case errors.Is(err, core.ErrNoBubble):
		return name + ": no bubble loaded"
	default:
		return name + ": " + err.Error()
	}
}

// describe turns an engine event into a status message.
func (g *Game) describe(ev core.Event) string {
	switch ev.Kind {
	case core.EventPop:
		if ev.Dropped > 0 {
			return fmt.Sprintf("Pop! %d bubbles, %d dropped", ev.Count, ev.Dropped)
		}
		return fmt.Sprintf("Pop! %d bubbles", ev.Count)
	case core.EventTap:
		return "tap"
	case core.EventWallDrop:
		return "The wall drops!"
	case core.EventStageClear:
		g.banner = fmt.Sprintf("Stage %d clear!", ev.Stage+1)
		g.bannerTicks = bannerSeconds * g.tickRate
		return g.banner
	case core.EventGameOver:
		return "Game over"
	case core.EventGameWin:
		return "All stages cleared!"
	}
	return ""
}

func (g *Game) showStatus(msg string) {
	g.status = msg
	g.statusTicks = bannerSeconds * g.tickRate
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{GameOver: g.loadErr != nil}
	}
	status := g.engine.Status()
	return platformcore.GameState{
		Score:    g.engine.Score(),
		Level:    g.engine.StageIndex() + 1,
		GameOver: status != core.StatusPlaying,
		Won:      status == core.StatusWon,
		Paused:   g.paused,
	}
}

// Summary reports the run for the history table.
func (g *Game) Summary() registry.RunSummary {
	s := registry.RunSummary{
		Difficulty: string(g.preset),
		Ticks:      g.tick,
	}
	if g.engine == nil {
		return s
	}
	s.Stage = g.engine.StageIndex() + 1
	s.StageName = g.engine.StageName()
	s.Shots = g.engine.TotalShots()
	s.Popped = g.engine.Popped()
	s.Won = g.engine.Status() == core.StatusWon
	return s
}

// Engine exposes the running engine, or nil before a successful Reset.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// StageCount returns the number of campaign stages, or 0 in endless mode.
func (g *Game) StageCount() int {
	return g.stageCount
}
