package snake

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/highscore"
)

// memScores is an in-memory HighScores that records saves.
type memScores struct {
	best  int
	saves []int
}

func (m *memScores) Load() int { return m.best }

func (m *memScores) Submit(score int) (int, error) {
	if score > m.best {
		m.best = score
		m.saves = append(m.saves, score)
	}
	return m.best, nil
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, scores HighScores) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	g := New(cfg, scores)
	g.Reset(epoch)
	return g
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(t, &memScores{best: 7})

	if g.Snake().Len() != 1 {
		t.Errorf("initial length = %d, expected 1", g.Snake().Len())
	}
	if g.Snake().Head() != g.Grid().Center() {
		t.Errorf("initial head = %v, expected board center %v", g.Snake().Head(), g.Grid().Center())
	}
	if g.Direction() != core.Right {
		t.Errorf("initial direction = %v, expected right", g.Direction())
	}
	if g.Score() != 0 || g.Level() != 1 || g.Status() != StatusPlaying {
		t.Errorf("unexpected initial state: score=%d level=%d status=%s", g.Score(), g.Level(), g.Status())
	}
	if g.HighScore() != 7 {
		t.Errorf("HighScore() = %d, expected 7 from store", g.HighScore())
	}
	if g.Snake().Contains(g.Food()) || g.Obstacles().Contains(g.Food()) {
		t.Errorf("food %v placed on snake or obstacle", g.Food())
	}
}

func TestThreeStepsWithoutFood(t *testing.T) {
	g := newTestGame(t, nil)
	g.food = core.Cell{X: 0, Y: 0}
	start := g.Snake().Head()

	for range 3 {
		if events := g.Step(); len(events) != 0 {
			t.Fatalf("unexpected events: %+v", events)
		}
	}

	head := g.Snake().Head()
	if head.X != start.X+3 || head.Y != start.Y {
		t.Errorf("head = %v, expected %v", head, core.Cell{X: start.X + 3, Y: start.Y})
	}
	if g.Snake().Len() != 1 {
		t.Errorf("length = %d, expected 1", g.Snake().Len())
	}
}

func TestEatFood(t *testing.T) {
	g := newTestGame(t, nil)
	g.food = g.Snake().Head().Add(core.Right)

	events := g.Step()

	if len(events) != 1 || events[0].Kind != EventFoodEaten {
		t.Fatalf("events = %+v, expected one EventFoodEaten", events)
	}
	if g.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", g.Score())
	}
	if g.Snake().Len() != 2 {
		t.Errorf("length = %d, expected 2", g.Snake().Len())
	}
	if g.Snake().Contains(g.Food()) {
		t.Errorf("food %v relocated onto the snake", g.Food())
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		stored     int
		expectHigh int
		expectSave bool
	}{
		{"score below high score", 2, 5, 5, false},
		{"score equal to high score", 5, 5, 5, false},
		{"score beats high score", 8, 5, 8, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scores := &memScores{best: tc.stored}
			g := newTestGame(t, scores)
			g.snake = NewSnake(core.Cell{X: 0, Y: 10})
			g.score = tc.score
			g.Handle(core.Move(core.Left), epoch)

			events := g.Step()

			if g.Status() != StatusGameOver || g.Cause() != CauseWall {
				t.Fatalf("status=%s cause=%q, expected game over by wall", g.Status(), g.Cause())
			}
			if len(events) != 1 || events[0].Kind != EventGameOver || events[0].Cause != CauseWall {
				t.Errorf("events = %+v, expected one wall EventGameOver", events)
			}
			if g.HighScore() != tc.expectHigh {
				t.Errorf("HighScore() = %d, expected %d", g.HighScore(), tc.expectHigh)
			}
			if saved := len(scores.saves) > 0; saved != tc.expectSave {
				t.Errorf("saved = %v, expected %v", saved, tc.expectSave)
			}
		})
	}
}

func TestSharedHighScoreNeverDrops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")
	scores := highscore.NewFile(path, nil)
	if _, err := scores.Submit(5); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	a := newTestGame(t, scores)
	b := newTestGame(t, scores)

	crash := func(g *Game, score int) {
		g.snake = NewSnake(core.Cell{X: 0, Y: 10})
		g.score = score
		g.Handle(core.Move(core.Left), epoch)
		g.Step()
		if g.Status() != StatusGameOver {
			t.Fatalf("status = %s, expected game over", g.Status())
		}
	}

	crash(b, 20)
	if got := scores.Load(); got != 20 {
		t.Fatalf("stored high score = %d, expected 20", got)
	}

	// a still holds the best read at its start.
	crash(a, 6)
	if got := scores.Load(); got != 20 {
		t.Errorf("stored high score = %d after a lower run, expected 20", got)
	}
	if a.HighScore() != 20 {
		t.Errorf("HighScore() = %d, expected the shared best 20", a.HighScore())
	}
}

func TestObstacleCollision(t *testing.T) {
	g := newTestGame(t, nil)
	g.snake = NewSnake(core.Cell{X: 4, Y: 5})
	g.food = core.Cell{X: 0, Y: 0}

	g.Step()

	if g.Cause() != CauseObstacle {
		t.Errorf("Cause() = %q, expected obstacle at (5,5)", g.Cause())
	}
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(t, nil)
	g.food = core.Cell{X: 0, Y: 0}
	// Head (10,10) facing left with the body curled below it; turning down
	// runs into the segment at (10,11).
	g.snake = &Snake{body: []core.Cell{
		{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 11}, {X: 10, Y: 11}, {X: 9, Y: 11},
	}}
	g.dir = core.Left
	g.pending = core.Left

	g.Handle(core.Move(core.Down), epoch)
	g.Step()

	if g.Cause() != CauseSelf {
		t.Errorf("Cause() = %q, expected self", g.Cause())
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	scores := &memScores{best: 3}
	g := newTestGame(t, scores)
	g.snake = NewSnake(core.Cell{X: 0, Y: 0})
	g.score = 4
	g.Handle(core.Move(core.Up), epoch)
	g.Step()
	if g.Status() != StatusGameOver {
		t.Fatalf("expected game over, got %s", g.Status())
	}

	// Another session raised the stored high score meanwhile.
	scores.best = 42

	if exit := g.Handle(core.Restart(), epoch.Add(time.Second)); exit {
		t.Fatal("restart should not exit")
	}

	if g.Status() != StatusPlaying || g.Score() != 0 || g.Level() != 1 || g.Cause() != CauseNone {
		t.Errorf("unexpected state after restart: status=%s score=%d level=%d cause=%q",
			g.Status(), g.Score(), g.Level(), g.Cause())
	}
	if g.Snake().Len() != 1 || g.Snake().Head() != g.Grid().Center() {
		t.Errorf("snake not reset: %v", g.Snake().Body())
	}
	if g.Obstacles().Len() != 4 {
		t.Errorf("obstacles not reset to level 1, got %d cells", g.Obstacles().Len())
	}
	if g.HighScore() != 42 {
		t.Errorf("HighScore() = %d, expected reloaded 42", g.HighScore())
	}
}

func TestQuitOnlyAfterGameOver(t *testing.T) {
	g := newTestGame(t, nil)

	if g.Handle(core.Quit(), epoch) {
		t.Error("quit while playing should be ignored")
	}
	if g.Handle(core.Restart(), epoch); g.Status() != StatusPlaying {
		t.Error("restart while playing should be ignored")
	}

	g.finish(CauseWall)
	if !g.Handle(core.Quit(), epoch) {
		t.Error("quit after game over should exit")
	}
}

func TestCloseAlwaysExits(t *testing.T) {
	g := newTestGame(t, nil)
	for _, status := range []Status{StatusPlaying, StatusPaused, StatusGameOver} {
		g.status = status
		if !g.Handle(core.Close(), epoch) {
			t.Errorf("close in %s should exit", status)
		}
	}
}

func TestReversalRejected(t *testing.T) {
	g := newTestGame(t, nil)

	// Length 1 may reverse freely.
	g.Handle(core.Move(core.Left), epoch)
	if g.pending != core.Left {
		t.Errorf("length-1 reversal rejected, pending = %v", g.pending)
	}
	g.pending = core.Right

	g.food = g.Snake().Head().Add(core.Right)
	g.Step()
	if g.Snake().Len() != 2 {
		t.Fatalf("expected length 2, got %d", g.Snake().Len())
	}

	for _, d := range core.Directions {
		g.pending = core.Right
		g.Handle(core.Move(d), epoch)
		if d == core.Left {
			if g.pending != core.Right {
				t.Errorf("reversal to %v accepted", d)
			}
			continue
		}
		if g.pending != d {
			t.Errorf("turn to %v rejected", d)
		}
	}
}

func TestBufferedTurnsCannotReverse(t *testing.T) {
	g := newTestGame(t, nil)
	g.snake = &Snake{body: []core.Cell{{X: 10, Y: 10}, {X: 9, Y: 10}}}
	g.food = core.Cell{X: 0, Y: 0}

	// Up then Left inside one interval: Left opposes the last executed step.
	g.Handle(core.Move(core.Up), epoch)
	g.Handle(core.Move(core.Left), epoch)
	g.Step()

	if g.Status() != StatusPlaying {
		t.Fatalf("snake died: %q", g.Cause())
	}
	if g.Snake().Head() != (core.Cell{X: 10, Y: 9}) {
		t.Errorf("head = %v, expected (10,9)", g.Snake().Head())
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, nil)
	g.food = core.Cell{X: 0, Y: 0}

	g.Handle(core.TogglePause(), epoch)
	if g.Status() != StatusPaused {
		t.Fatalf("Status() = %s, expected paused", g.Status())
	}

	g.Handle(core.Move(core.Up), epoch)
	if g.pending != core.Right {
		t.Error("direction changes should be ignored while paused")
	}
	if events := g.Update(epoch.Add(time.Hour)); events != nil || g.Steps() != 0 {
		t.Error("paused game should not step")
	}

	resume := epoch.Add(2 * time.Hour)
	g.Handle(core.TogglePause(), resume)
	if g.Status() != StatusPlaying {
		t.Fatalf("Status() = %s, expected playing", g.Status())
	}
	// Timer restarts on resume.
	g.Update(resume.Add(g.MoveInterval() - time.Millisecond))
	if g.Steps() != 0 {
		t.Error("should not step before a full interval after resume")
	}
	g.Update(resume.Add(g.MoveInterval()))
	if g.Steps() != 1 {
		t.Errorf("Steps() = %d, expected 1", g.Steps())
	}
}

func TestUpdateInterval(t *testing.T) {
	g := newTestGame(t, nil)
	g.food = core.Cell{X: 0, Y: 0}
	interval := g.MoveInterval()

	if interval != 100*time.Millisecond {
		t.Fatalf("MoveInterval() = %v, expected 100ms at base speed 10", interval)
	}

	now := epoch
	for i := 1; i <= 3; i++ {
		g.Update(now.Add(interval / 2))
		now = now.Add(interval)
		g.Update(now)
		if g.Steps() != uint64(i) {
			t.Fatalf("after %d intervals Steps() = %d", i, g.Steps())
		}
	}
}

func TestLevelUp(t *testing.T) {
	g := newTestGame(t, nil)
	g.snake = NewSnake(core.Cell{X: 2, Y: 2})
	g.score = 9
	g.food = core.Cell{X: 3, Y: 2}

	events := g.Step()

	if g.Level() != 2 || g.Score() != 10 {
		t.Fatalf("level=%d score=%d, expected level 2 at score 10", g.Level(), g.Score())
	}
	var sawLevelUp bool
	for _, ev := range events {
		if ev.Kind == EventLevelUp && ev.Level == 2 {
			sawLevelUp = true
		}
	}
	if !sawLevelUp {
		t.Errorf("events = %+v, expected EventLevelUp", events)
	}
	if g.Obstacles().Len() != 9 {
		t.Errorf("obstacles = %d cells, expected the level 2 cross", g.Obstacles().Len())
	}
	if g.Obstacles().Contains(g.Food()) {
		t.Error("food left under an obstacle")
	}
	if g.Speed() != 12 {
		t.Errorf("Speed() = %d, expected 12", g.Speed())
	}
}

func TestRandomLevelAvoidsSnake(t *testing.T) {
	g := newTestGame(t, nil)
	g.snake = &Snake{body: []core.Cell{{X: 8, Y: 8}, {X: 7, Y: 8}, {X: 6, Y: 8}}}
	g.level = 2
	g.score = 19
	g.food = core.Cell{X: 9, Y: 8}

	g.Step()

	if g.Level() != 3 {
		t.Fatalf("Level() = %d, expected 3", g.Level())
	}
	if g.Obstacles().Len() != 9 {
		t.Errorf("obstacles = %d, expected 9", g.Obstacles().Len())
	}
	ahead := g.Snake().Head().Add(g.Direction())
	for c := range g.Obstacles() {
		if g.Snake().Contains(c) || c == g.Food() || c == ahead {
			t.Errorf("obstacle %v placed on snake, food or the cell ahead", c)
		}
	}
}

func TestBoardFull(t *testing.T) {
	cfg := Config{Grid: core.Grid{Width: 2, Height: 1}, BaseSpeed: 10, SpeedEvery: 5, LevelEvery: 10}
	scores := &memScores{}
	g := New(cfg, scores)
	g.Reset(epoch)

	if g.Food() != (core.Cell{X: 0, Y: 0}) {
		t.Fatalf("Food() = %v, expected the only free cell", g.Food())
	}

	g.Handle(core.Move(core.Left), epoch)
	events := g.Step()

	if g.Status() != StatusGameOver || g.Cause() != CauseBoardFull {
		t.Fatalf("status=%s cause=%q, expected board full", g.Status(), g.Cause())
	}
	if len(events) != 2 || events[0].Kind != EventFoodEaten || events[1].Kind != EventGameOver {
		t.Errorf("events = %+v, expected food then game over", events)
	}
	if scores.best != 1 {
		t.Errorf("high score = %d, expected 1", scores.best)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 12345

	run := func() Snapshot {
		g := New(cfg, nil)
		g.Reset(epoch)
		turns := map[int]core.Direction{3: core.Down, 6: core.Left, 12: core.Up, 20: core.Right}
		for i := range 40 {
			if d, ok := turns[i]; ok {
				g.Handle(core.Move(d), epoch)
			}
			g.Step()
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, nil)
	w, h := RequiredSize(g.Grid())
	if w != 62 || h != 23 {
		t.Fatalf("RequiredSize() = %dx%d, expected 62x23", w, h)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") || !strings.Contains(screen.Row(0), "Level: 1") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}

	ox := (80 - w) / 2
	head := g.Snake().Head()
	glyph := screen.GetGlyph(ox+1+head.X*2, 2+head.Y)
	if glyph.Rune != '█' || glyph.Color != core.ColorSnakeHead {
		t.Errorf("head glyph = %+v", glyph)
	}

	g.Handle(core.TogglePause(), epoch)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	g.Handle(core.TogglePause(), epoch)
	g.finish(CauseWall)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Press R to Restart or Q to Quit") {
		t.Error("game over overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, nil)
	screen := core.NewScreen(40, 10)

	if g.Fits(40, 10) {
		t.Fatal("40x10 should not fit a 30x20 board")
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small overlay missing")
	}
}
