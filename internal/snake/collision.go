package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Cause records why a run ended.
type Cause string

const (
	CauseNone      Cause = ""
	CauseWall      Cause = "wall"
	CauseSelf      Cause = "self"
	CauseObstacle  Cause = "obstacle"
	CauseBoardFull Cause = "board_full" // No cell left for food; counts as a win
)

// HitsWall reports whether head lies outside the board.
func HitsWall(head core.Cell, grid core.Grid) bool {
	return !grid.Contains(head)
}

// HitsSelf reports whether body[0] appears again later in body.
func HitsSelf(body []core.Cell) bool {
	if len(body) < 2 {
		return false
	}
	head := body[0]
	for _, seg := range body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// HitsObstacle reports whether head is a blocked cell.
func HitsObstacle(head core.Cell, obstacles Obstacles) bool {
	return obstacles.Contains(head)
}

// Collide evaluates wall, self and obstacle in that order and returns the
// first cause found, or CauseNone.
func Collide(s *Snake, grid core.Grid, obstacles Obstacles) Cause {
	head := s.Head()
	switch {
	case HitsWall(head, grid):
		return CauseWall
	case s.HitsSelf():
		return CauseSelf
	case HitsObstacle(head, obstacles):
		return CauseObstacle
	}
	return CauseNone
}
