package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Status is the state machine position of a run.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "game_over"
)

// HighScores persists the best score across runs. Submit stores score only
// when it beats the stored value and returns the best score afterwards; it
// must compare and write atomically when the store is shared.
type HighScores interface {
	Load() int
	Submit(score int) (best int, err error)
}

type noScores struct{}

func (noScores) Load() int { return 0 }
func (noScores) Submit(score int) (int, error) { return score, nil }

// Config holds the gameplay settings fixed for a run.
type Config struct {
	Grid       core.Grid
	BaseSpeed  int   // Steps per second at score 0
	SpeedEvery int   // Points per +1 speed; <= 0 disables growth
	LevelEvery int   // Points per level; <= 0 keeps level 1
	Seed       int64 // RNG seed for food and obstacles
}

// DefaultConfig returns the classic settings on a 30x20 board.
func DefaultConfig() Config {
	return Config{
		Grid:       core.Grid{Width: 30, Height: 20},
		BaseSpeed:  10,
		SpeedEvery: 5,
		LevelEvery: DefaultLevelEvery,
	}
}

// EventKind discriminates game events.
type EventKind int

const (
	EventFoodEaten EventKind = iota
	EventLevelUp
	EventGameOver
)

// Event is emitted by a grid step for the audio, persistence and
// spectator collaborators.
type Event struct {
	Kind  EventKind
	Cause Cause // Set for EventGameOver
	Score int
	Level int
}

// Game owns the whole state of one snake session. It is not safe for
// concurrent use; the platform loop is its only caller.
type Game struct {
	cfg    Config
	rng    *rand.Rand
	scores HighScores

	snake     *Snake
	dir       core.Direction // Direction of the last executed step
	pending   core.Direction // Direction the next step will take
	food      core.Cell
	obstacles Obstacles

	score     int
	level     int // Last applied level
	highScore int
	status    Status
	cause     Cause

	started  time.Time
	lastStep time.Time
	steps    uint64
}

// New creates a game. scores may be nil, in which case nothing is persisted.
// Call Reset before the first Update.
func New(cfg Config, scores HighScores) *Game {
	if scores == nil {
		scores = noScores{}
	}
	return &Game{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		scores: scores,
	}
}

// Reset starts a fresh run: length-1 snake on the board center heading
// right, score 0, level 1 obstacles, new food and the high score re-read
// from the store. The RNG keeps its sequence across restarts.
func (g *Game) Reset(now time.Time) {
	g.snake = NewSnake(g.cfg.Grid.Center())
	g.dir = core.Right
	g.pending = core.Right
	g.score = 0
	g.level = 1
	g.status = StatusPlaying
	g.cause = CauseNone
	g.highScore = g.scores.Load()
	g.started = now
	g.lastStep = now
	g.steps = 0

	g.obstacles = ObstaclesForLevel(1, g.cfg.Grid, g.rng, g.snake)
	if err := g.respawnFood(); err != nil {
		g.finish(CauseBoardFull)
	}
}

// Handle applies one player intent. It reports whether the process should
// exit. Moves and pause toggles outside their states are ignored, as are
// reversals while the snake is longer than one cell.
func (g *Game) Handle(in core.Intent, now time.Time) (exit bool) {
	if in.Kind == core.IntentClose {
		return true
	}

	switch g.status {
	case StatusPlaying:
		switch in.Kind {
		case core.IntentMove:
			g.steer(in.Dir)
		case core.IntentTogglePause:
			g.status = StatusPaused
		}
	case StatusPaused:
		if in.Kind == core.IntentTogglePause {
			g.status = StatusPlaying
			g.lastStep = now
		}
	case StatusGameOver:
		switch in.Kind {
		case core.IntentRestart:
			g.Reset(now)
		case core.IntentQuit:
			return true
		}
	}
	return false
}

// steer buffers a direction for the next step. The reversal check runs
// against the last executed step so several turns inside one interval
// cannot add up to a U-turn.
func (g *Game) steer(d core.Direction) {
	if !d.Valid() {
		return
	}
	if g.snake.Len() > 1 && d.IsOpposite(g.dir) {
		return
	}
	g.pending = d
}

// Update performs one grid step when the game is playing and the move
// interval has elapsed since the previous step.
func (g *Game) Update(now time.Time) []Event {
	if g.status != StatusPlaying {
		return nil
	}
	if now.Sub(g.lastStep) < g.MoveInterval() {
		return nil
	}
	g.lastStep = now
	return g.Step()
}

// Step advances the snake one cell regardless of timing: move with food
// consumption, then the collision check, then the level check.
func (g *Game) Step() []Event {
	if g.status != StatusPlaying {
		return nil
	}

	var events []Event

	g.dir = g.pending
	next := g.snake.Head().Add(g.dir)
	grow := next == g.food
	g.snake.Move(g.dir, grow)
	g.steps++

	if grow {
		g.score++
		events = append(events, g.event(EventFoodEaten))
		if err := g.respawnFood(); err != nil {
			return append(events, g.finish(CauseBoardFull))
		}
	}

	if cause := Collide(g.snake, g.cfg.Grid, g.obstacles); cause != CauseNone {
		return append(events, g.finish(cause))
	}

	if lvl := Level(g.score, g.cfg.LevelEvery); lvl > g.level {
		g.level = lvl
		ahead := cellSet(g.snake.Head().Add(g.dir))
		g.obstacles = ObstaclesForLevel(lvl, g.cfg.Grid, g.rng, g.snake, cellSet(g.food), ahead)
		events = append(events, g.event(EventLevelUp))
		if g.obstacles.Contains(g.food) {
			if err := g.respawnFood(); err != nil {
				return append(events, g.finish(CauseBoardFull))
			}
		}
	}

	return events
}

// RestartStepTimer makes the next step wait a full interval from now. The
// platform calls it when a held board becomes visible again.
func (g *Game) RestartStepTimer(now time.Time) {
	g.lastStep = now
}

func (g *Game) respawnFood() error {
	food, err := PlaceFood(g.rng, g.cfg.Grid, g.snake, g.obstacles)
	if err != nil {
		return err
	}
	g.food = food
	return nil
}

// finish ends the run and raises the stored high score when beaten.
func (g *Game) finish(cause Cause) Event {
	g.status = StatusGameOver
	g.cause = cause
	if g.score > g.highScore {
		best, err := g.scores.Submit(g.score)
		if err != nil {
			// Best-effort save; the run still shows its own record.
			best = g.score
		}
		g.highScore = best
	}
	return g.event(EventGameOver)
}

func (g *Game) event(kind EventKind) Event {
	ev := Event{Kind: kind, Score: g.score, Level: g.level}
	if kind == EventGameOver {
		ev.Cause = g.cause
	}
	return ev
}

// Speed returns the current speed in steps per second.
func (g *Game) Speed() int {
	return Speed(g.score, g.cfg.BaseSpeed, g.cfg.SpeedEvery)
}

// MoveInterval returns the current minimum time between grid steps.
func (g *Game) MoveInterval() time.Duration {
	return MoveInterval(g.Speed())
}

func (g *Game) Grid() core.Grid { return g.cfg.Grid }
func (g *Game) Score() int { return g.score }
func (g *Game) Level() int { return g.level }
func (g *Game) HighScore() int { return g.highScore }
func (g *Game) Status() Status { return g.status }
func (g *Game) Cause() Cause { return g.cause }
func (g *Game) Direction() core.Direction { return g.dir }
func (g *Game) Food() core.Cell { return g.food }
func (g *Game) Obstacles() Obstacles { return g.obstacles }
func (g *Game) Snake() *Snake { return g.snake }
func (g *Game) Steps() uint64 { return g.steps }

// Elapsed returns the time since the run started.
func (g *Game) Elapsed(now time.Time) time.Duration {
	return now.Sub(g.started)
}
