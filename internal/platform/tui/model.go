package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/profile"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// Options wires the model to persistence. Every field is optional.
type Options struct {
	Store   *storage.Store
	Profile *profile.Manager
	Logger  *log.Logger

	// AllowBack lets b/esc leave a paused or finished game instead of
	// quitting the program.
	AllowBack bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	bestStage  int
	runSaved   bool // Whether the current run has been recorded
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if opts.Profile != nil {
		m.bestStage = opts.Profile.HighestStage(game.ID())
	}
	return m
}

// Init starts the tick loop. Call Start first so the game has been reset.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Start resets the game and returns a model ready for tea.NewProgram.
func (m Model) Start() Model {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	}

	wantsBack := action == core.ActionBack || msg.String() == "esc"
	if m.opts.AllowBack && wantsBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.finishRun()
		m.backToMenu = true
		return m, tea.Quit // Embedding models drop this and show their menu
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		m.runSaved = false // restarted
	}
	for _, msg := range result.Messages {
		m.opts.Logger.Debug("game event", "game", m.game.ID(), "msg", msg)
	}

	m.recordProgress()
	if m.gameState.GameOver {
		m.finishRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// recordProgress saves a newly reached stage to the profile.
func (m *Model) recordProgress() {
	if m.opts.Profile == nil || m.gameState.Level <= m.bestStage {
		return
	}
	m.bestStage = m.gameState.Level
	if _, err := m.opts.Profile.RecordStage(m.game.ID(), m.bestStage); err != nil {
		m.opts.Logger.Warn("cannot save progress", "err", err)
	}
}

// finishRun stores the score and run summary once per run.
func (m *Model) finishRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	store := m.opts.Store
	if store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.opts.Logger.Warn("cannot save score", "err", err)
		}
	}

	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	sum := s.Summary()
	if sum.Shots == 0 && m.gameState.Score == 0 {
		return
	}
	rate := max(1, m.config.TickRate)
	_, err := store.SaveRun(storage.RunRecord{
		GameID:       m.game.ID(),
		Stage:        sum.Stage,
		StageName:    sum.StageName,
		Score:        m.gameState.Score,
		Shots:        sum.Shots,
		Popped:       sum.Popped,
		Won:          sum.Won,
		Difficulty:   sum.Difficulty,
		DurationSecs: int(sum.Ticks) / rate, //#nosec G115
	})
	if err != nil {
		m.opts.Logger.Warn("cannot save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for one game.
// It returns true when the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts).Start()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
