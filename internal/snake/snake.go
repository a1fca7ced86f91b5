// Package snake implements the snake game: the body, food and obstacle
// placement, collision rules, speed and level progression, and the
// playing/paused/game-over state machine that ties them together.
package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snake is the ordered list of occupied cells, head first.
type Snake struct {
	body []core.Cell
}

// NewSnake creates a snake of length 1 at the given cell.
func NewSnake(head core.Cell) *Snake {
	return &Snake{body: []core.Cell{head}}
}

// Move prepends head+dir and drops the tail unless grow is set.
// No bounds checking: an out-of-grid head is valid state and is
// detected by HitsWall.
func (s *Snake) Move(dir core.Direction, grow bool) {
	next := s.Head().Add(dir)

	s.body = append(s.body, core.Cell{})
	copy(s.body[1:], s.body)
	s.body[0] = next

	if !grow {
		s.body = s.body[:len(s.body)-1]
	}
}

// Head returns the first cell. It panics on an empty body, which
// cannot happen after NewSnake.
func (s *Snake) Head() core.Cell {
	return s.body[0]
}

// Contains reports whether any segment occupies c.
func (s *Snake) Contains(c core.Cell) bool {
	for _, seg := range s.body {
		if seg == c {
			return true
		}
	}
	return false
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []core.Cell {
	out := make([]core.Cell, len(s.body))
	copy(out, s.body)
	return out
}

// HitsSelf reports whether the head overlaps another segment.
func (s *Snake) HitsSelf() bool {
	return HitsSelf(s.body)
}
