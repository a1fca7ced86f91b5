package snake

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	cornerInset    = 5  // Level 1 obstacles sit this far in from each corner
	crossArm       = 2  // Level 2 cross extends this far from the center
	interiorMargin = 2  // Random obstacles keep off the outer two rings
	perLevel       = 3  // Random obstacles per level number
	maxRandom      = 20 // Cap on random obstacles
)

// Obstacles is the set of blocked cells for the current level.
type Obstacles map[core.Cell]struct{}

// NewObstacles builds a set from cells, dropping any outside grid.
func NewObstacles(grid core.Grid, cells ...core.Cell) Obstacles {
	o := make(Obstacles, len(cells))
	for _, c := range cells {
		if grid.Contains(c) {
			o[c] = struct{}{}
		}
	}
	return o
}

// Contains reports whether c is blocked.
func (o Obstacles) Contains(c core.Cell) bool {
	_, ok := o[c]
	return ok
}

// Len returns the number of blocked cells.
func (o Obstacles) Len() int {
	return len(o)
}

// Cells returns the blocked cells ordered by row, then column.
func (o Obstacles) Cells() []core.Cell {
	cells := make([]core.Cell, 0, len(o))
	for c := range o {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b core.Cell) int {
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
	return cells
}

// ObstaclesForLevel generates the obstacle set for a level.
//
// Level 1 places one block near each corner, level 2 a cross on the board
// center. From level 3 on, min(level*3, 20) distinct blocks are drawn from
// the interior; those draws skip every cell claimed by avoid so a level
// change never drops a block under the snake or the food.
func ObstaclesForLevel(level int, grid core.Grid, rng *rand.Rand, avoid ...Occupier) Obstacles {
	switch {
	case level <= 1:
		w, h := grid.Width, grid.Height
		return NewObstacles(grid,
			core.Cell{X: cornerInset, Y: cornerInset},
			core.Cell{X: w - cornerInset - 1, Y: cornerInset},
			core.Cell{X: cornerInset, Y: h - cornerInset - 1},
			core.Cell{X: w - cornerInset - 1, Y: h - cornerInset - 1},
		)
	case level == 2:
		center := grid.Center()
		cells := make([]core.Cell, 0, 4*crossArm+2)
		for i := -crossArm; i <= crossArm; i++ {
			cells = append(cells,
				core.Cell{X: center.X + i, Y: center.Y},
				core.Cell{X: center.X, Y: center.Y + i},
			)
		}
		return NewObstacles(grid, cells...)
	default:
		return randomObstacles(min(level*perLevel, maxRandom), grid, rng, avoid)
	}
}

// randomObstacles draws n distinct interior cells with a partial shuffle.
// Fewer are returned when the interior has less than n free cells.
func randomObstacles(n int, grid core.Grid, rng *rand.Rand, avoid []Occupier) Obstacles {
	var pool []core.Cell
	for y := interiorMargin; y <= grid.Height-interiorMargin-1; y++ {
		for x := interiorMargin; x <= grid.Width-interiorMargin-1; x++ {
			c := core.Cell{X: x, Y: y}
			if !occupied(c, avoid) {
				pool = append(pool, c)
			}
		}
	}

	n = min(n, len(pool))
	for i := range n {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return NewObstacles(grid, pool[:n]...)
}
