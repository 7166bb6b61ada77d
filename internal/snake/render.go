package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		need := fmt.Sprintf("Need %dx%d, have %dx%d", g.frame.W, g.frame.Bottom(), g.screenW, g.screenH)
		g.renderOverlay(dst, "Window too small", need)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(g.frame, core.ColorGray)

	theme := g.cfg.Theme
	for y := range g.height {
		for x := range g.width {
			g.drawCell(dst, core.Pt(x, y), theme.Empty)
		}
	}
	if g.hasFood {
		g.drawCell(dst, g.food, theme.Food)
	}
	for i := len(g.snake) - 1; i > 0; i-- {
		g.drawCell(dst, g.snake[i], theme.Body)
	}
	if len(g.snake) > 0 {
		g.drawCell(dst, g.snake[0], theme.Head)
	}

	switch {
	case g.won:
		g.renderOverlay(dst, "Board Cleared!", fmt.Sprintf("Final Score: %d", g.score), "Enter/R: Play again  B: Menu  Q: Quit")
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d", g.score), "Enter/R: Play again  B: Menu  Q: Quit")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawCell draws one board cell as a two-column sprite.
func (g *Game) drawCell(dst *core.Screen, p core.Point, s config.Sprite) {
	sx := g.frame.X + 1 + p.X*2
	sy := g.frame.Y + 1 + p.Y
	runes := s.Runes()
	color := s.Resolved()
	dst.SetColored(sx, sy, runes[0], color)
	dst.SetColored(sx+1, sy, runes[1], color)
}

// renderHUD draws the status line above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	color, _ := core.ParseColor(g.cfg.Theme.ScoreColor)
	left := fmt.Sprintf("%d", g.score)
	right := fmt.Sprintf("Level %d  Length %d  Best %d", g.level, len(g.snake), max(g.best, g.score))

	dst.DrawTextColored(g.frame.X, 0, left, color)
	x := max(g.frame.X+len(left)+2, g.frame.Right()-len(right))
	dst.DrawTextColored(x, 0, right, core.ColorGray)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, title string, lines ...string) {
	color, _ := core.ParseColor(g.cfg.Theme.MessageColor)

	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	dst.DrawTextCentered(box.Y+1, title, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.ColorDefault)
	}
}
