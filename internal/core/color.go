package core

// Color is the semantic role of a screen glyph. The platform maps each role
// to a concrete terminal color from the configured palette.
type Color uint8

// Roles for game elements.
const (
	ColorDefault Color = iota
	ColorGrid
	ColorSnakeHead
	ColorSnakeBody
	ColorFood
	ColorObstacle
	ColorText
	ColorOverlay
)
