package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type recordingPlayer struct {
	cues []audio.Cue
}

func (p *recordingPlayer) Play(c audio.Cue) { p.cues = append(p.cues, c) }

type recordingPublisher struct {
	snaps []snake.Snapshot
}

func (p *recordingPublisher) Broadcast(s snake.Snapshot) { p.snaps = append(p.snaps, s) }

// testClock hands out strictly increasing frame times, one second apart,
// so every tick performs exactly one grid step.
type testClock struct {
	now time.Time
}

func (c *testClock) next() TickMsg {
	c.now = c.now.Add(time.Second)
	return TickMsg(c.now)
}

func testOptions() Options {
	opts := NewOptions(config.Default(), config.DifficultyNormal)
	opts.Game.Seed = 42
	opts.Width, opts.Height = 80, 24
	return opts
}

func startModel(t *testing.T, opts Options) (Model, *testClock) {
	t.Helper()
	m := NewModel(opts)
	m.Init()
	return m, &testClock{now: time.Now()}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// playUntilOver ticks until the snake hits something.
func playUntilOver(t *testing.T, m Model, clock *testClock) Model {
	t.Helper()
	for range 200 {
		m, _ = update(t, m, clock.next())
		if m.Game().Status() == snake.StatusGameOver {
			return m
		}
	}
	t.Fatal("game never ended")
	return m
}

func TestNewOptionsAppliesPreset(t *testing.T) {
	opts := NewOptions(config.Default(), config.DifficultyHard)
	if opts.Game.BaseSpeed != 14 || opts.Game.SpeedEvery != 3 {
		t.Errorf("hard preset not applied: %+v", opts.Game)
	}
	if opts.Game.Grid != (core.Grid{Width: 30, Height: 20}) {
		t.Errorf("grid = %+v, expected 30x20", opts.Game.Grid)
	}
	if opts.TickRate != 60 || opts.Preset != config.DifficultyHard {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestCloseQuitsImmediately(t *testing.T) {
	m, _ := startModel(t, testOptions())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit at once")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestQuitIgnoredWhilePlaying(t *testing.T) {
	m, clock := startModel(t, testOptions())

	m, _ = update(t, m, runeKey('q'))
	m, cmd := update(t, m, clock.next())
	if isQuit(cmd) {
		t.Error("quit while playing should be ignored")
	}
	if m.Game().Status() != snake.StatusPlaying {
		t.Errorf("status = %s, expected playing", m.Game().Status())
	}
}

func TestQueuedIntentsApplyOnTick(t *testing.T) {
	m, clock := startModel(t, testOptions())
	start := m.Game().Snake().Head()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Game().Direction() != core.Right {
		t.Fatal("intent applied before the frame")
	}

	m, _ = update(t, m, clock.next())
	expected := start.Add(core.Up)
	if head := m.Game().Snake().Head(); head != expected {
		t.Errorf("head = %v, expected %v", head, expected)
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m, clock := startModel(t, testOptions())

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, clock.next())
	steps := m.Game().Steps()

	for range 3 {
		m, _ = update(t, m, clock.next())
	}
	if m.Game().Status() != snake.StatusPaused || m.Game().Steps() != steps {
		t.Errorf("paused game moved: status=%s steps=%d", m.Game().Status(), m.Game().Steps())
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, clock.next())
	m, _ = update(t, m, clock.next())
	if m.Game().Steps() == steps {
		t.Error("game did not resume")
	}
}

func TestSmallWindowHoldsGame(t *testing.T) {
	m, clock := startModel(t, testOptions())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	m, _ = update(t, m, clock.next())
	if m.Game().Steps() != 0 {
		t.Errorf("game stepped in a too-small window")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, clock.next())
	if m.Game().Steps() != 0 {
		t.Errorf("steps = %d on the first frame after resize, expected 0", m.Game().Steps())
	}

	m, _ = update(t, m, clock.next())
	if m.Game().Steps() != 1 {
		t.Errorf("steps = %d one interval after resize, expected 1", m.Game().Steps())
	}
}

func TestGameOverRestartAndQuit(t *testing.T) {
	player := &recordingPlayer{}
	opts := testOptions()
	opts.Audio = player
	m, clock := startModel(t, opts)

	m = playUntilOver(t, m, clock)
	if len(player.cues) == 0 || player.cues[len(player.cues)-1] != audio.CueGameOver {
		t.Errorf("cues = %v, expected game over cue last", player.cues)
	}

	m, _ = update(t, m, runeKey('r'))
	m, cmd := update(t, m, clock.next())
	if isQuit(cmd) || m.Game().Status() != snake.StatusPlaying {
		t.Fatalf("restart failed: status=%s", m.Game().Status())
	}
	if m.Game().Score() != 0 || m.Game().Snake().Len() != 1 {
		t.Error("restart did not reset the run")
	}

	m = playUntilOver(t, m, clock)
	m, _ = update(t, m, runeKey('q'))
	_, cmd = update(t, m, clock.next())
	if !isQuit(cmd) {
		t.Error("quit after game over should end the program")
	}
}

func TestEmbeddedQuitReturnsToMenu(t *testing.T) {
	opts := testOptions()
	opts.Embedded = true
	m, clock := startModel(t, opts)

	m = playUntilOver(t, m, clock)
	m, _ = update(t, m, runeKey('q'))
	m, cmd := update(t, m, clock.next())
	if isQuit(cmd) {
		t.Error("embedded quit must not end the program")
	}
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after quit")
	}
}

func TestGameOverSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := testOptions()
	opts.Store = store
	opts.Player = "alice"
	m, clock := startModel(t, opts)
	m = playUntilOver(t, m, clock)

	runs, err := store.TopRuns(10, "")
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Player != "alice" || r.Preset != "normal" || r.Cause != string(m.Game().Cause()) {
		t.Errorf("unexpected run: %+v", r)
	}
	if r.Score != m.Game().Score() {
		t.Errorf("run score = %d, expected %d", r.Score, m.Game().Score())
	}
}

func TestSpectatorsSeeSteps(t *testing.T) {
	pub := &recordingPublisher{}
	opts := testOptions()
	opts.Spectators = pub
	m, clock := startModel(t, opts)

	if len(pub.snaps) != 1 {
		t.Fatalf("published %d snapshots on start, expected 1", len(pub.snaps))
	}

	m, _ = update(t, m, clock.next())
	m, _ = update(t, m, clock.next())
	if len(pub.snaps) != 3 {
		t.Errorf("published %d snapshots, expected 3", len(pub.snaps))
	}
	if last := pub.snaps[len(pub.snaps)-1]; last.Steps != m.Game().Steps() {
		t.Errorf("last snapshot at step %d, expected %d", last.Steps, m.Game().Steps())
	}

	// Pausing changes state without a step.
	m, _ = update(t, m, runeKey('p'))
	update(t, m, clock.next())
	if last := pub.snaps[len(pub.snaps)-1]; last.Status != snake.StatusPaused {
		t.Errorf("last status = %s, expected paused", last.Status)
	}
}

func TestViewShowsBoardAndHelp(t *testing.T) {
	m, _ := startModel(t, testOptions())
	view := m.View()

	for _, want := range []string{"Score: 0", "Level: 1", "pause"} {
		if !containsPlain(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
