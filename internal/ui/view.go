package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dkaspar/mazerover/internal/maze"
)

// View draws the engine's discovered map to the screen.
type View struct {
	screen *Screen
}

// NewView creates a view on the given screen.
func NewView(screen *Screen) *View {
	return &View{screen: screen}
}

// Render draws the map with the rover, the pending route, and any status
// lines below it. Map columns are double-spaced so the grid reads square.
func (v *View) Render(m *maze.Maze, lines ...string) {
	v.screen.Clear()

	min, max := m.Bounds()
	pos := m.Position()
	route := m.Route()
	waypoint := make(map[maze.Position]int, len(route))
	for i, p := range route {
		waypoint[p] = i
	}

	for y := min.Y - 1; y <= max.Y+1; y++ {
		for x := min.X - 1; x <= max.X+1; x++ {
			p := maze.Position{X: x, Y: y}
			sx := (x - min.X + 1) * 2
			sy := y - min.Y + 1
			r, style := v.cell(m, p, pos, waypoint, len(route))
			v.screen.SetContent(sx, sy, r, style)
		}
	}

	base := max.Y - min.Y + 4
	for i, line := range lines {
		v.message(line, base+i)
	}

	v.screen.Show()
}

// cell picks the rune and style for one drawn position.
func (v *View) cell(m *maze.Maze, p, pos maze.Position, waypoint map[maze.Position]int, routeLen int) (rune, tcell.Style) {
	if p == pos {
		return m.Heading().Rune(), tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	}
	if i, ok := waypoint[p]; ok {
		return '*', tcell.StyleDefault.Foreground(RouteColor(i, routeLen))
	}
	if k, ok := m.KindAt(p); ok {
		return k.Rune(), tcell.StyleDefault.Foreground(KindColor(k))
	}
	return '.', tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
}

// message writes one status line at the given row.
func (v *View) message(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		v.screen.SetContent(i, y, ch, style)
	}
}
