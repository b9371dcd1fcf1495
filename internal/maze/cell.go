package maze

import "fmt"

// Position identifies a cell by its grid coordinates.
type Position struct {
	X, Y int
}

// String returns the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Kind classifies a discovered cell.
type Kind int

const (
	// KindStart is the cell the rover booted on. It is never reassigned.
	KindStart Kind = iota
	// KindUnknown is a cell that has been seen through an opening but
	// not yet entered.
	KindUnknown
	// KindEmpty is a plain visited cell.
	KindEmpty
	// KindCheckpoint is a visited cell marked as a recovery target.
	KindCheckpoint
	// KindBlue is a visited cell with blue flooring.
	KindBlue
	// KindVictim is a visited cell where a victim was identified.
	KindVictim
	// KindRamp is a visited cell holding a ramp.
	KindRamp
	// KindBlack is an impassable hazard cell. Searches never cross it.
	KindBlack
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindUnknown:
		return "unknown"
	case KindEmpty:
		return "empty"
	case KindCheckpoint:
		return "checkpoint"
	case KindBlue:
		return "blue"
	case KindVictim:
		return "victim"
	case KindRamp:
		return "ramp"
	case KindBlack:
		return "black"
	default:
		return "invalid"
	}
}

// Rune returns the map glyph for this kind.
func (k Kind) Rune() rune {
	switch k {
	case KindStart:
		return 'S'
	case KindUnknown:
		return '?'
	case KindEmpty:
		return ' '
	case KindCheckpoint:
		return 'C'
	case KindBlue:
		return 'B'
	case KindVictim:
		return 'V'
	case KindRamp:
		return 'R'
	case KindBlack:
		return '█'
	default:
		return '!'
	}
}

// Cell is a single discovered location: its classification and up to one
// neighbor link per direction. Cells are identified by their key in the
// engine's store, not by a coordinate stored inside.
type Cell struct {
	Kind   Kind
	links  [4]Position
	linked [4]bool
}

// Neighbor returns the linked neighbor in direction d, if the link has
// been established.
func (c *Cell) Neighbor(d Direction) (Position, bool) {
	if !c.linked[d] {
		return Position{}, false
	}
	return c.links[d], true
}

// link records a neighbor in direction d. The first link wins; relinking
// an occupied direction is a no-op.
func (c *Cell) link(d Direction, p Position) {
	if c.linked[d] {
		return
	}
	c.links[d] = p
	c.linked[d] = true
}

// degree returns the number of linked directions.
func (c *Cell) degree() int {
	n := 0
	for _, ok := range c.linked {
		if ok {
			n++
		}
	}
	return n
}
