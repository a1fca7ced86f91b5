package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// menuEntry is either a difficulty preset or one of the extra actions.
type menuEntry struct {
	preset     config.DifficultyPreset
	title      string
	desc       string
	scoreboard bool
	quit       bool
}

var menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	entries        []menuEntry
	cursor         int
	width          int
	height         int
	best           int
	keyMapper      *KeyMapper
	quitting       bool
	selected       config.DifficultyPreset // Set when user picks a preset
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The cursor starts on Normal.
// store may be nil, in which case no best score is shown.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	entries := make([]menuEntry, 0, len(config.Presets)+2)
	cursor := 0
	for i, p := range config.Presets {
		if p == config.DifficultyNormal {
			cursor = i
		}
		entries = append(entries, menuEntry{preset: p, title: p.Title(), desc: p.Description()})
	}
	entries = append(entries,
		menuEntry{title: "High Scores", desc: "Best runs per difficulty", scoreboard: true},
		menuEntry{title: "Quit", quit: true},
	)

	best := 0
	if store != nil {
		if b, err := store.BestScore(""); err == nil {
			best = b
		}
	}

	return MenuModel{
		entries:   entries,
		cursor:    cursor,
		width:     width,
		height:    height,
		best:      best,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		e := m.entries[m.cursor]
		switch {
		case e.quit:
			m.quitting = true
		case e.scoreboard:
			m.openScoreboard = true
		default:
			m.selected = e.preset
		}
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  S N A K E  "), m.width))
	b.WriteString("\n\n")

	if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best: %d", m.best), m.width))
		b.WriteString("\n\n")
	}

	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+e.title, m.width))
		b.WriteString("\n")
	}

	if desc := m.entries[m.cursor].desc; desc != "" {
		b.WriteString("\n")
		b.WriteString(centerText(desc, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen preset, or "" if none was chosen.
func (m MenuModel) Selected() config.DifficultyPreset {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (width, height int) {
	return m.width, m.height
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Preset          config.DifficultyPreset
	Width           int
	Height          int
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, width, height int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}
	return m.Result(), nil
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Width: m.width, Height: m.height}
	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.quitting || m.selected == "":
		result.Quit = true
	default:
		result.Preset = m.selected
	}
	return result
}
