package maze

import "strings"

// Render draws the discovered map as text, one glyph per cell followed by
// a space. The rover shows as an arrow for its heading, pending route
// cells as '*', undiscovered positions as '.'. The grid spans the
// bounding box of all discovered cells plus a one-cell margin; y grows
// downward.
func (m *Maze) Render() string {
	min, max := m.bounds()
	onRoute := make(map[Position]bool, len(m.route))
	for _, p := range m.route {
		onRoute[p] = true
	}
	var b strings.Builder
	for y := min.Y - 1; y <= max.Y+1; y++ {
		for x := min.X - 1; x <= max.X+1; x++ {
			p := Position{x, y}
			r := '.'
			switch {
			case p == m.pos:
				r = m.heading.Rune()
			case onRoute[p]:
				r = '*'
			default:
				if c, ok := m.cells[p]; ok {
					r = c.Kind.Rune()
				}
			}
			b.WriteRune(r)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
