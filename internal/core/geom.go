// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"errors"
	"fmt"
)

// Cell is one discrete grid position.
type Cell struct {
	X int `json:"x"` // Column
	Y int `json:"y"` // Row
}

// Add returns the cell reached by moving one step in direction d.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// String returns the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit vector along one grid axis.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// The four valid directions. Rows grow downwards.
var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Directions lists every valid direction.
var Directions = []Direction{Up, Down, Left, Right}

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsOpposite reports whether d points exactly against other.
func (d Direction) IsOpposite(other Direction) bool {
	return d == other.Opposite()
}

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errors.New("invalid direction")
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "up":
		*d = Up
	case "down":
		*d = Down
	case "left":
		*d = Left
	case "right":
		*d = Right
	default:
		return errors.New("invalid direction")
	}
	return nil
}

// Grid holds the board dimensions in cells.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewGrid derives board dimensions from a window size and a cell size.
// A non-positive cell size yields an empty grid.
func NewGrid(windowW, windowH, cellSize int) Grid {
	if cellSize <= 0 {
		return Grid{}
	}
	return Grid{Width: windowW / cellSize, Height: windowH / cellSize}
}

// Contains reports whether c lies inside [0, Width) x [0, Height).
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Center returns the middle cell of the board.
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2, Y: g.Height / 2}
}

// Area returns the number of cells on the board.
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
