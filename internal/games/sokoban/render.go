package sokoban

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

const (
	cellWidth      = 2 // Terminal columns per grid cell
	hudHeight      = 4 // Title, stats, status and a blank line
	footerHeight   = 2
	minScreenWidth = 40
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.renderError(dst)
		return
	}
	if g.scene == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	rows, cols := g.scene.Size()
	boardW := cols * cellWidth
	boardX := platformcore.Max(0, (dst.Width()-boardW)/2)
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	dst.DrawTextCentered(dst.Height()-1, g.Controls(), platformcore.ColorGray)
	// Overlays may be wider than the board, so they center on the full band.
	g.renderOverlays(dst, platformcore.NewRect(0, boardY, dst.Width(), rows))
}

// renderError shows why no level could be loaded.
func (g *Game) renderError(dst *platformcore.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Could not load levels", platformcore.ColorBrightRed)
	dst.DrawTextCentered(y, g.loadErr.Error(), platformcore.ColorDefault)
	dst.DrawTextCentered(y+2, "Press Q to quit", platformcore.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorDefault)
}

// renderHUD draws the level name, counters and status line.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	title := fmt.Sprintf("%s - %s", g.Title(), g.level.Title())
	dst.DrawTextCentered(0, title, platformcore.ColorBrightCyan)

	hints := "∞"
	if left := g.HintsLeft(); left >= 0 {
		hints = fmt.Sprintf("%d", left)
	}
	stats := fmt.Sprintf("Level %d/%d  Moves: %d  Pushes: %d  Hints: %s",
		g.levelIndex+1, len(g.allLevels), g.scene.Moves(), g.scene.Pushes(), hints)
	dst.DrawTextCentered(1, stats, platformcore.ColorDefault)

	if g.status != "" {
		dst.DrawTextCentered(2, g.status, platformcore.ColorYellow)
	}
}

// renderBoard draws the grid. Walls fill both columns of a cell.
func (g *Game) renderBoard(dst *platformcore.Screen, boardX, boardY int) {
	for r, row := range g.scene.Grid() {
		for c, cell := range row {
			glyph := g.glyph(cell)
			x := boardX + c*cellWidth
			dst.SetColored(x, boardY+r, glyph.Rune(), glyph.ColorValue())
			if cell == core.Wall {
				dst.SetColored(x+1, boardY+r, glyph.Rune(), glyph.ColorValue())
			}
		}
	}
}

// glyph returns the configured glyph for a cell.
func (g *Game) glyph(c core.Cell) config.Glyph {
	glyphs := g.cfg.Glyphs
	switch c {
	case core.Wall:
		return glyphs.Wall
	case core.Target:
		return glyphs.Target
	case core.Case:
		return glyphs.Case
	case core.CaseOnTarget:
		return glyphs.CaseOnTarget
	case core.Player:
		return glyphs.Player
	case core.PlayerOnTarget:
		return glyphs.PlayerOnTarget
	default:
		return glyphs.Ground
	}
}

// renderOverlays draws game state overlays centered on area.
func (g *Game) renderOverlays(dst *platformcore.Screen, area platformcore.Rect) {

	if g.paused {
		g.drawOverlay(dst, area, "PAUSED", "Press P to resume")
		return
	}

	if g.won {
		if g.mode == ModeSingle {
			g.drawOverlay(dst, area, "LEVEL COMPLETE!", g.level.Title(), "Press R to play again")
			return
		}
		cleared := fmt.Sprintf("Levels solved: %d", g.cleared)
		g.drawOverlay(dst, area, "ALL LEVELS SOLVED!", cleared, "Press R to play again")
		return
	}

	if g.levelCleared {
		counts := fmt.Sprintf("Moves: %d  Pushes: %d", g.scene.Moves(), g.scene.Pushes())
		next := "Press Enter for the next level"
		switch {
		case g.mode == ModeSingle || g.levelIndex >= len(g.allLevels)-1:
			next = "Press Enter to finish"
		case g.cfg.Gameplay.AutoAdvance:
			next = fmt.Sprintf("Next: %s", g.allLevels[g.levelIndex+1].Title())
		}
		g.drawOverlay(dst, area, "LEVEL SOLVED!", counts, next)
	}
}

// drawOverlay draws a text overlay centered on area.
func (g *Game) drawOverlay(dst *platformcore.Screen, area platformcore.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = platformcore.Max(maxLen, len([]rune(line)))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	centerX := box.X + box.W/2

	dst.FillRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColored(x, box.Y+1+i, line, platformcore.ColorBrightYellow)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | U: Undo | R: Restart | ?: Hint | P: Pause | Q: Quit"
}
