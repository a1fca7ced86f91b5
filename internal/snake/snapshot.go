package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the observable game state for determinism testing and
// the spectator feed.
type Snapshot struct {
	Steps      uint64         `json:"steps"`
	Status     Status         `json:"status"`
	Cause      Cause          `json:"cause,omitempty"`
	Score      int            `json:"score"`
	Level      int            `json:"level"`
	HighScore  int            `json:"high_score"`
	Speed      int            `json:"speed"`
	IntervalMs int64          `json:"interval_ms"`
	Direction  core.Direction `json:"direction"`
	Grid       core.Grid      `json:"grid"`
	Snake      []core.Cell    `json:"snake"`
	Food       core.Cell      `json:"food"`
	Obstacles  []core.Cell    `json:"obstacles"`
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Steps:      g.steps,
		Status:     g.status,
		Cause:      g.cause,
		Score:      g.score,
		Level:      g.level,
		HighScore:  g.highScore,
		Speed:      g.Speed(),
		IntervalMs: g.MoveInterval().Milliseconds(),
		Direction:  g.dir,
		Grid:       g.cfg.Grid,
		Snake:      g.snake.Body(),
		Food:       g.food,
		Obstacles:  g.obstacles.Cells(),
	}
}

// Head returns the head cell of the snapshot.
func (s Snapshot) Head() core.Cell {
	if len(s.Snake) == 0 {
		return core.Cell{}
	}
	return s.Snake[0]
}
