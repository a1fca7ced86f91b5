package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrNoSpaceAvailable is returned when every grid cell is excluded.
var ErrNoSpaceAvailable = errors.New("snake: no free cell available")

// Occupier is anything that claims grid cells: the snake body, the
// obstacle set, a single food cell.
type Occupier interface {
	Contains(c core.Cell) bool
}

// cellSet adapts a single cell to Occupier.
type cellSet core.Cell

func (s cellSet) Contains(c core.Cell) bool {
	return core.Cell(s) == c
}

// freeCells lists the cells of grid not claimed by any occupier, row by row.
func freeCells(grid core.Grid, excluded ...Occupier) []core.Cell {
	free := make([]core.Cell, 0, grid.Area())
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := core.Cell{X: x, Y: y}
			if !occupied(c, excluded) {
				free = append(free, c)
			}
		}
	}
	return free
}

func occupied(c core.Cell, by []Occupier) bool {
	for _, o := range by {
		if o != nil && o.Contains(c) {
			return true
		}
	}
	return false
}

// PlaceFood picks a cell uniformly at random among the grid cells that no
// occupier claims. It fails with ErrNoSpaceAvailable when the board is full.
func PlaceFood(rng *rand.Rand, grid core.Grid, excluded ...Occupier) (core.Cell, error) {
	free := freeCells(grid, excluded...)
	if len(free) == 0 {
		return core.Cell{}, ErrNoSpaceAvailable
	}
	return free[rng.Intn(len(free))], nil
}
