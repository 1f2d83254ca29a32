package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
)

// difficulties is the cycle order of the difficulty entry.
var difficulties = []string{"easy", "normal", "hard", "fixed"}

type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryContinue
	entrySelectStage
	entryEndless
	entryDifficulty
	entryScores
)

// MenuOptions seeds the main menu.
type MenuOptions struct {
	StageNames []string
	Highest    int    // furthest campaign stage reached, enables Continue
	Difficulty string // preselected preset
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	StartStage      int // 1-based, 0 for the first stage
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	entries     []menuEntry
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	theme       Theme
	opts        MenuOptions
	difficulty  int
	stageSelect *StageSelectModel
	result      MenuResult
	done        bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(opts MenuOptions, cfg core.RuntimeConfig) MenuModel {
	entries := []menuEntry{entryCampaign}
	if opts.Highest > 1 && len(opts.StageNames) > 0 {
		entries = append(entries, entryContinue)
	}
	entries = append(entries, entrySelectStage, entryEndless, entryDifficulty, entryScores)

	m := MenuModel{
		entries:   entries,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     DefaultTheme(),
		opts:      opts,
	}
	m.difficulty = 1
	for i, d := range difficulties {
		if d == opts.Difficulty {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.stageSelect != nil {
		return m.updateStageSelect(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) updateStageSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.stageSelect.Update(msg)
	sel, ok := next.(StageSelectModel)
	if !ok {
		return m, nil
	}
	switch {
	case sel.IsQuitting():
		return m.finish(MenuResult{Quit: true})
	case sel.WantsBack():
		m.stageSelect = nil
	case sel.Chosen() > 0:
		return m.finish(MenuResult{GameID: bubblepop.CampaignID, StartStage: sel.Chosen()})
	default:
		m.stageSelect = &sel
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.entries[m.cursor] == entryDifficulty {
			m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)
		}
	case MenuActionRight:
		if m.entries[m.cursor] == entryDifficulty {
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		}
	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})
	case MenuActionSelect:
		return m.activate()
	}
	return m, nil
}

// activate runs the entry under the cursor.
func (m MenuModel) activate() (tea.Model, tea.Cmd) {
	switch m.entries[m.cursor] {
	case entryCampaign:
		return m.finish(MenuResult{GameID: bubblepop.CampaignID})
	case entryContinue:
		return m.finish(MenuResult{GameID: bubblepop.CampaignID, StartStage: m.opts.Highest})
	case entrySelectStage:
		sel := NewStageSelectModel(m.opts.StageNames, m.opts.Highest, m.width, m.height)
		m.stageSelect = &sel
	case entryEndless:
		return m.finish(MenuResult{GameID: bubblepop.EndlessID})
	case entryDifficulty:
		m.difficulty = (m.difficulty + 1) % len(difficulties)
	case entryScores:
		return m.finish(MenuResult{WantsScoreboard: true})
	}
	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Difficulty = difficulties[m.difficulty]
	r.Config = m.config
	m.result = r
	m.done = true
	return m, tea.Quit
}

func (m MenuModel) label(e menuEntry) string {
	switch e {
	case entryCampaign:
		return "Campaign"
	case entryContinue:
		name := ""
		if m.opts.Highest <= len(m.opts.StageNames) {
			name = ": " + m.opts.StageNames[m.opts.Highest-1]
		}
		return "Continue" + name
	case entrySelectStage:
		return "Select Stage"
	case entryEndless:
		return "Endless"
	case entryDifficulty:
		return "Difficulty: < " + difficulties[m.difficulty] + " >"
	case entryScores:
		return "High Scores"
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}
	if m.stageSelect != nil {
		return m.stageSelect.View()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("B U B B L E   P O P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Description.Render("Pop three of a kind before the wall comes down"), m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		style := m.theme.Item
		cursor := "  "
		if i == m.cursor {
			style = m.theme.ItemActive
			cursor = "> "
		}
		b.WriteString(centerText(style.Render(cursor+m.label(e)+"  "), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Left/Right: Difficulty  |  Tab: Scores  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")
	return b.String()
}

// Result returns the menu outcome once the menu has finished.
func (m MenuModel) Result() (MenuResult, bool) {
	return m.result, m.done
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(opts MenuOptions, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(opts, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	result, done := m.Result()
	if !done {
		return MenuResult{Config: m.config, Quit: true}, nil
	}
	return result, nil
}
