package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// StageSelectModel is the campaign stage picker. Stages past the furthest
// one reached are shown dimmed but stay selectable.
type StageSelectModel struct {
	names        []string
	highest      int // furthest 1-based stage reached, 0 if none
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	theme        Theme
	chosen       int // 1-based stage, 0 while choosing
	back         bool
	quitting     bool
}

// NewStageSelectModel creates a picker over the given stage names.
func NewStageSelectModel(names []string, highest, width, height int) StageSelectModel {
	m := StageSelectModel{
		names:     names,
		highest:   highest,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     DefaultTheme(),
	}
	if highest > 0 && highest <= len(names) {
		m.cursor = highest - 1
	}
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m StageSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StageSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m StageSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.names) > 0 {
			m.chosen = m.cursor + 1
		}
	case MenuActionBack:
		m.back = true
	}
	m.updateScroll()
	return m, nil
}

func (m StageSelectModel) visibleItems() int {
	return max(3, m.height-10) // header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *StageSelectModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the stage list.
func (m StageSelectModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("S E L E C T   S T A G E"), m.width))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(centerText(m.theme.Description.Render("No stages found"), m.width))
		b.WriteString("\n")
	}

	end := min(len(m.names), m.scrollOffset+m.visibleItems())
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		mark := " "
		style := m.theme.Item
		if i < m.highest {
			mark = "✓"
		} else if i > m.highest {
			style = m.theme.ItemLocked
		}
		if i == m.cursor {
			style = m.theme.ItemActive
		}
		line := style.Render(fmt.Sprintf(" %s %2d. %-20s ", mark, i+1, m.names[i]))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(m.names) {
		b.WriteString(centerText(m.theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected 1-based stage, or 0 while still choosing.
func (m StageSelectModel) Chosen() int {
	return m.chosen
}

// WantsBack returns true if user pressed back.
func (m StageSelectModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m StageSelectModel) IsQuitting() bool {
	return m.quitting
}
