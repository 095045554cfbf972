package sokoban

import (
	"fmt"

	"github.com/vovakirdan/sokoban/internal/core"
)

const (
	hudHeight    = 2 // title line and separator
	footerHeight = 1 // status message
	cellWidth    = 2 // terminal columns per board cell
)

// MinScreenSize returns the smallest screen that fits the current level.
func (g *Game) MinScreenSize() (w, h int) {
	return max(g.width*cellWidth, 40), g.height + hudHeight + footerHeight
}

func (g *Game) tooSmall(w, h int) bool {
	minW, minH := g.MinScreenSize()
	return w < minW || h < minH
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall(dst.Width(), dst.Height()) {
		minW, minH := g.MinScreenSize()
		g.renderOverlay(dst, core.ColorYellow, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	state := g.engine.State()
	ox := (dst.Width() - g.width*cellWidth) / 2
	oy := hudHeight + (dst.Height()-hudHeight-footerHeight-g.height)/2
	g.renderBoard(dst, state, ox, oy)

	g.confetti.render(dst)

	if state.Won {
		hint := "n: next level   r: replay   u: undo"
		if !g.HasNext() {
			hint = "Pack finished!   r: replay   esc: menu"
		}
		g.renderOverlay(dst, core.ColorBrightGreen, "Level complete!", g.WinMessage(), hint)
	}

	if g.message != "" {
		dst.DrawTextCenteredWithColor(dst.Height()-1, g.message, core.ColorYellow)
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	left := fmt.Sprintf(" %s  Level %d/%d: %s", g.pack.Title, g.index+1, g.pack.Count(), g.level.Name)
	right := fmt.Sprintf("Moves: %d  Undo: %d ", g.engine.Moves(), g.engine.HistoryLen())

	dst.DrawText(0, 0, left)
	dst.DrawTextWithColor(dst.Width()-len(right), 0, right, core.ColorCyan)

	for x := range dst.Width() {
		dst.SetWithColor(x, 1, '─', core.ColorGray)
	}
}

// renderBoard draws walls, floor, targets, boxes and the player.
func (g *Game) renderBoard(dst *core.Screen, s GameState, ox, oy int) {
	walls := positionSet(s.Walls)
	targets := positionSet(s.Targets)
	boxes := positionSet(s.Boxes)

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := core.Pt(x, y)
			_, wall := walls[p]
			_, target := targets[p]
			_, box := boxes[p]

			tile := g.theme.Floor
			switch {
			case wall:
				tile = g.theme.Wall
			case p == s.Player && target:
				tile = g.theme.PlayerOnTarget
			case p == s.Player:
				tile = g.theme.Player
			case box && target:
				tile = g.theme.BoxOnTarget
			case box:
				tile = g.theme.Box
			case target:
				tile = g.theme.Target
			}

			sx := ox + x*cellWidth
			sy := oy + y
			dst.SetWithColor(sx, sy, tile.Glyph[0], tile.Color)
			dst.SetWithColor(sx+1, sy, tile.Glyph[1], tile.Color)
		}
	}
}

// renderOverlay draws a centered box with one line of text per entry.
func (g *Game) renderOverlay(dst *core.Screen, c core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}

	box := dst.Bounds().Centered(maxLen+4, len(lines)*2+1)
	box.X = max(box.X, 0)
	box.Y = max(box.Y, hudHeight)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, c)
	dst.DrawTextCenteredWithColor(box.Y+1, lines[0], c)
	for i, l := range lines[1:] {
		dst.DrawTextCentered(box.Y+3+i*2, l)
	}
}

func positionSet(ps []Position) map[Position]struct{} {
	set := make(map[Position]struct{}, len(ps))
	for _, p := range ps {
		set[p] = struct{}{}
	}
	return set
}
