package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Publisher receives a snapshot whenever the visible state changes.
type Publisher interface {
	Broadcast(s snake.Snapshot)
}

// Options wires a game session to its collaborators. Only Game is required.
type Options struct {
	Game       snake.Config
	HighScores snake.HighScores
	Store      *storage.Store // Run history; nil disables it
	Audio      audio.Player
	Spectators Publisher
	Palette    config.PaletteConfig
	Preset     config.DifficultyPreset
	Player     string
	TickRate   int // Frames per second
	Width      int
	Height     int
	Logger     *log.Logger

	// Embedded makes Quit return to the caller's menu instead of ending
	// the program. Close still ends it.
	Embedded bool
}

// Model is the Bubble Tea model for a snake session.
type Model struct {
	game    *snake.Game
	screen  *core.Screen
	theme   Theme
	keys    *KeyMapper
	help    help.Model
	opts    Options
	logger  *log.Logger
	pending []core.Intent // Intents queued since the last frame
	held    bool          // Window was too small on the last frame

	lastSteps  uint64
	lastStatus snake.Status

	quitting   bool
	closed     bool // Window close, as opposed to quit after game over
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for one session.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	if opts.Game.Seed == 0 {
		opts.Game.Seed = time.Now().UnixNano()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Silent{}
	}
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}
	if opts.Preset == "" {
		opts.Preset = config.DifficultyNormal
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = opts.Width

	return Model{
		game:   snake.New(opts.Game, opts.HighScores),
		screen: core.NewScreen(opts.Width, boardHeight(opts.Height)),
		theme:  NewTheme(opts.Palette),
		keys:   NewKeyMapper(),
		help:   h,
		opts:   opts,
		logger: logger,
	}
}

// NewOptions derives session options from the loaded configuration and a
// difficulty preset. The seed is left at 0 (time based).
func NewOptions(cfg config.Config, preset config.DifficultyPreset) Options {
	config.ApplyPreset(&cfg, preset)
	return Options{
		Game: snake.Config{
			Grid:       cfg.Grid(),
			BaseSpeed:  cfg.Speed.Base,
			SpeedEvery: cfg.Speed.IncreaseEvery,
			LevelEvery: cfg.Levels.AdvanceEvery,
		},
		Palette:  cfg.Palette,
		Preset:   preset,
		TickRate: cfg.Display.RefreshRate,
	}
}

// boardHeight reserves the bottom row for the key help.
func boardHeight(h int) int {
	return max(h-1, 0)
}

// Init starts a fresh run and the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(time.Now())
	if m.opts.Spectators != nil {
		m.opts.Spectators.Broadcast(m.game.Snapshot())
	}
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board keeps its size; a small window only pauses stepping.
		m.screen.Resize(msg.Width, boardHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the intent for the next frame. Close is honoured at once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	in := m.keys.MapKey(msg)
	switch in.Kind {
	case core.IntentNone:
		return m, nil
	case core.IntentClose:
		m.quitting = true
		m.closed = true
		return m, tea.Quit
	}

	m.pending = append(m.pending, in)
	return m, nil
}

// handleTick applies queued intents in arrival order, then advances the
// simulation if the window is large enough.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, in := range m.pending {
		if !m.game.Handle(in, now) {
			continue
		}
		m.pending = nil
		if m.opts.Embedded {
			// Stop ticking; the session switches back to its menu.
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	m.pending = nil

	if m.game.Fits(m.screen.Width(), m.screen.Height()) {
		if m.held {
			m.held = false
			m.game.RestartStepTimer(now)
		}
		for _, ev := range m.game.Update(now) {
			m.handleEvent(ev, now)
		}
	} else {
		m.held = true
	}

	m.publish()
	return m, tickCmd(m.opts.TickRate)
}

func (m *Model) handleEvent(ev snake.Event, now time.Time) {
	switch ev.Kind {
	case snake.EventFoodEaten:
		m.opts.Audio.Play(audio.CueFood)
	case snake.EventLevelUp:
		m.logger.Debug("level up", "level", ev.Level, "score", ev.Score)
	case snake.EventGameOver:
		m.opts.Audio.Play(audio.CueGameOver)
		m.saveRun(ev, now)
	}
}

// saveRun records a finished run. Failures are logged, never fatal.
func (m *Model) saveRun(ev snake.Event, now time.Time) {
	m.logger.Info("game over", "score", ev.Score, "level", ev.Level, "cause", ev.Cause)
	if m.opts.Store == nil {
		return
	}

	_, err := m.opts.Store.SaveRun(storage.Run{
		Player:   m.opts.Player,
		Score:    ev.Score,
		Level:    ev.Level,
		Length:   m.game.Snake().Len(),
		Cause:    string(ev.Cause),
		Preset:   string(m.opts.Preset),
		Duration: m.game.Elapsed(now),
	})
	if err != nil {
		m.logger.Warn("cannot save run", "err", err)
	}
}

// publish sends a snapshot to spectators after a step or state change.
func (m *Model) publish() {
	steps, status := m.game.Steps(), m.game.Status()
	if steps == m.lastSteps && status == m.lastStatus {
		return
	}
	m.lastSteps, m.lastStatus = steps, status
	if m.opts.Spectators != nil {
		m.opts.Spectators.Broadcast(m.game.Snapshot())
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return m.theme.RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys)
}

// Game returns the running game.
func (m Model) Game() *snake.Game {
	return m.game
}

// BackToMenu reports whether the player quit to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Closed reports whether the player closed the window.
func (m Model) Closed() bool {
	return m.closed
}

// Run starts the Bubble Tea program for one session. closed reports a
// window close, which callers running a menu loop treat as exit.
func Run(opts Options) (closed bool, err error) {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return !ok || m.Closed(), nil
}
