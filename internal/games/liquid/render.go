package liquid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/liquidsort/internal/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
)

// Layout constants, in terminal cells.
const (
	cylinderWidth = 4 // Border, two liquid columns, border
	cylinderGap   = 2
	rackTop       = 5 // First row of the tallest cylinder's opening
	unitGlyph     = '█'
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	if g.machine == nil {
		g.drawOverlay(dst, "CANNOT START", g.failure, "Press Q to quit")
		return
	}

	g.renderHUD(dst)
	g.renderRack(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorGray)
}

// renderHUD draws title, level and score.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	dst.DrawTextCentered(0, g.Title(), platformcore.ColorBrightWhite)

	left := fmt.Sprintf("Score: %d", g.score)
	dst.DrawText(1, 1, left)

	right := fmt.Sprintf("Moves: %d", g.machine.Moves())
	dst.DrawText(g.screenW-utf8.RuneCountInString(right)-1, 1, right)

	level := g.levelName
	if g.mode == ModeCampaign {
		level = fmt.Sprintf("Level %d/%d: %s", g.levelIndex+1, len(g.allLevels), g.levelName)
	}
	dst.DrawTextCentered(2, level, platformcore.ColorGray)
}

// rackOrigin returns the x of the first cylinder and the y of the rack floor.
func (g *Game) rackOrigin() (x, floorY int) {
	s := g.machine.Session()
	capacity := 0
	for _, c := range s.Cylinders() {
		capacity = max(capacity, c.Capacity())
	}
	total := s.Len()*(cylinderWidth+cylinderGap) - cylinderGap
	return (g.screenW - total) / 2, rackTop + capacity
}

// displaySlots returns what each cylinder should look like this frame:
// engine state with undrained units of running pours put back.
func (g *Game) displaySlots() [][]core.Unit {
	cyls := g.machine.Session().Cylinders()
	slots := make([][]core.Unit, len(cyls))
	for i, c := range cyls {
		slots[i] = c.Slots()
	}
	// Newest first, so older pours are restored on top of the undone newer ones
	for i := len(g.playbacks) - 1; i >= 0; i-- {
		g.playbacks[i].overlay(slots)
	}
	return slots
}

// renderRack draws every cylinder, the cursor and the hint arrow.
func (g *Game) renderRack(dst *platformcore.Screen) {
	originX, floorY := g.rackOrigin()
	slots := g.displaySlots()
	selected, hasSelection := g.machine.Selected()

	offsets := make(map[int][2]int)
	tilted := make(map[int]bool)
	for _, p := range g.playbacks {
		dx, dy := p.Offset()
		offsets[p.Source] = [2]int{dx, dy}
		tilted[p.Source] = p.Tilted()
	}

	for i, c := range g.machine.Session().Cylinders() {
		x := originX + i*(cylinderWidth+cylinderGap)
		y := floorY
		if off, ok := offsets[i]; ok {
			x += off[0]
			y += off[1]
		} else if hasSelection && selected == i {
			y-- // Selected cylinder is lifted
		}

		frame := platformcore.ColorGray
		switch {
		case c.IsSolved():
			frame = platformcore.ColorWhite
		case hasSelection && selected == i:
			frame = platformcore.ColorHighlight
		}
		g.drawCylinder(dst, x, y, slots[i], frame, tilted[i])

		baseX := originX + i*(cylinderWidth+cylinderGap)
		label := fmt.Sprintf("%d", i+1)
		dst.DrawText(baseX+1, floorY+2, label)
		if i == g.cursor {
			dst.DrawTextColor(baseX+1, floorY+3, "^^", platformcore.ColorHighlight)
		}
	}

	if g.hint != nil {
		g.renderHint(dst, originX, floorY)
	}
}

// drawCylinder draws one cylinder whose floor border sits on row floorY.
func (g *Game) drawCylinder(dst *platformcore.Screen, x, floorY int, slots []core.Unit, frame platformcore.Color, tilted bool) {
	for i, u := range slots {
		y := floorY - 1 - i
		dst.SetColor(x, y, '│', frame)
		dst.SetColor(x+cylinderWidth-1, y, '│', frame)
		if u != core.None {
			color := unitColor(u)
			dst.SetColor(x+1, y, unitGlyph, color)
			dst.SetColor(x+2, y, unitGlyph, color)
		}
	}
	dst.SetColor(x, floorY, '└', frame)
	dst.SetColor(x+1, floorY, '─', frame)
	dst.SetColor(x+2, floorY, '─', frame)
	dst.SetColor(x+3, floorY, '┘', frame)

	if tilted {
		top := floorY - len(slots) - 1
		dst.SetColor(x+1, top, '~', frame)
		dst.SetColor(x+2, top, '~', frame)
	}
}

// renderHint draws an arrow from the hinted source to its destination.
func (g *Game) renderHint(dst *platformcore.Screen, originX, floorY int) {
	from := originX + g.hint.From*(cylinderWidth+cylinderGap) + 1
	to := originX + g.hint.To*(cylinderWidth+cylinderGap) + 1
	y := floorY + 4

	lo, hi := min(from, to), max(from, to)
	for x := lo; x <= hi+1; x++ {
		dst.SetColor(x, y, '─', platformcore.ColorYellow)
	}
	dst.SetColor(from, y, 'o', platformcore.ColorYellow)
	if to > from {
		dst.SetColor(hi+1, y, '>', platformcore.ColorYellow)
	} else {
		dst.SetColor(lo, y, '<', platformcore.ColorYellow)
	}
}

// renderFooter draws status text and the hint message.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := g.screenH - 1
	var status string
	switch {
	case g.hintMiss:
		status = "No solution from here - press R to restart the level"
	case g.hint != nil:
		status = fmt.Sprintf("Hint: pour %d into %d", g.hint.From+1, g.hint.To+1)
	default:
		if id, ok := g.machine.Selected(); ok {
			status = fmt.Sprintf("Cylinder %d selected - choose a destination", id+1)
		}
	}
	if status != "" {
		dst.DrawTextCentered(y, status, platformcore.ColorYellow)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen) {
	switch {
	case g.paused:
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	case g.won:
		g.drawOverlay(dst, "CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, "GAME OVER", g.failure, "Press R to restart")
	case g.levelCleared && len(g.playbacks) == 0:
		lines := []string{"SORTED!", fmt.Sprintf("Solved in %d moves", g.machine.Moves())}
		if g.mode == ModeCampaign && g.levelIndex >= len(g.allLevels)-1 {
			lines = append(lines, "Final level complete!")
		}
		g.drawOverlay(dst, lines...)
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *platformcore.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := platformcore.CenteredRect(maxLen+4, len(lines)+2, g.screenW, g.screenH)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)

	inner := box.Inner()
	for i, line := range lines {
		x := inner.X + (inner.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, inner.Y+i, line)
	}
}

// unitColor maps a liquid to its screen color.
func unitColor(u core.Unit) platformcore.Color {
	switch u {
	case core.Red:
		return platformcore.ColorRed
	case core.Green:
		return platformcore.ColorGreen
	case core.Blue:
		return platformcore.ColorBlue
	case core.Yellow:
		return platformcore.ColorYellow
	case core.Purple:
		return platformcore.ColorPurple
	case core.Orange:
		return platformcore.ColorOrange
	case core.Cyan:
		return platformcore.ColorCyan
	case core.Pink:
		return platformcore.ColorPink
	default:
		return platformcore.ColorDefault
	}
}

// ASCII renders the current rack as plain text rows, top to bottom,
// one column per cylinder. Used by the CLI solver output and tests.
func ASCII(s *core.Session) string {
	capacity := 0
	for _, c := range s.Cylinders() {
		capacity = max(capacity, c.Capacity())
	}

	var sb strings.Builder
	for row := capacity - 1; row >= 0; row-- {
		for i, c := range s.Cylinders() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if row >= c.Capacity() {
				sb.WriteString("   ")
				continue
			}
			sb.WriteByte('|')
			sb.WriteRune(c.Slot(row).Char())
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	for i := range s.Len() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf(" %d ", (i+1)%10))
	}
	return sb.String()
}
