package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	cellCols  = 2 // Terminal columns per grid cell
	hudHeight = 1
)

// RequiredSize returns the smallest screen that fits the HUD and the boxed board.
func RequiredSize(grid core.Grid) (w, h int) {
	return grid.Width*cellCols + 2, grid.Height + 2 + hudHeight
}

// Fits reports whether a screen of w x h can show the whole board.
func (g *Game) Fits(w, h int) bool {
	rw, rh := RequiredSize(g.cfg.Grid)
	return w >= rw && h >= rh
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if !g.Fits(dst.Width(), dst.Height()) {
		renderOverlay(dst, core.ColorText, "Window too small", "Resize to continue")
		return
	}

	g.renderHUD(dst)

	bw, bh := RequiredSize(g.cfg.Grid)
	board := core.NewRect((dst.Width()-bw)/2, hudHeight, bw, bh-hudHeight)
	dst.DrawBox(board, core.ColorGrid)

	ox, oy := board.X+1, board.Y+1
	draw := func(c core.Cell, glyph string, color core.Color) {
		if !g.cfg.Grid.Contains(c) {
			return
		}
		dst.DrawText(ox+c.X*cellCols, oy+c.Y, glyph, color)
	}

	for y := 0; y < g.cfg.Grid.Height; y++ {
		for x := 0; x < g.cfg.Grid.Width; x++ {
			draw(core.Cell{X: x, Y: y}, "· ", core.ColorGrid)
		}
	}
	for c := range g.obstacles {
		draw(c, "▒▒", core.ColorObstacle)
	}
	draw(g.food, "● ", core.ColorFood)

	body := g.snake.body
	for i := len(body) - 1; i > 0; i-- {
		draw(body[i], "▓▓", core.ColorSnakeBody)
	}
	// Head last so it stays visible over a colliding segment
	draw(body[0], "██", core.ColorSnakeHead)

	switch {
	case g.status == StatusPaused:
		renderOverlay(dst, core.ColorOverlay, "PAUSED", "Press P to Resume")
	case g.status == StatusGameOver && g.cause == CauseBoardFull:
		renderOverlay(dst, core.ColorOverlay, "BOARD FULL",
			fmt.Sprintf("Final Score: %d", g.score), "Press R to Restart or Q to Quit")
	case g.status == StatusGameOver:
		renderOverlay(dst, core.ColorOverlay, "GAME OVER",
			fmt.Sprintf("Score: %d", g.score), "Press R to Restart or Q to Quit")
	}
}

// renderHUD draws the status line above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score: %d  Speed: %d  High Score: %d  Level: %d",
		g.score, g.Speed(), g.highScore, g.level)
	dst.DrawText(0, 0, hud, core.ColorText)
}

// renderOverlay draws a framed message box in the middle of the screen.
func renderOverlay(dst *core.Screen, color core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}

	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', color)
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i*2, l, color)
	}
}
