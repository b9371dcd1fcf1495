package maze

// Direction is one of the four headings the rover can face or move in.
// The grid's y axis grows downward, so Up means y-1.
type Direction int

const (
	// Up decreases y by one cell.
	Up Direction = iota
	// Down increases y by one cell.
	Down
	// Left decreases x by one cell.
	Left
	// Right increases x by one cell.
	Right
)

// AllDirections returns every direction in the fixed enumeration order
// used for searches and scans. The order is part of the engine's
// determinism contract: two engines fed the same reports take the same
// moves.
func AllDirections() [4]Direction {
	return [4]Direction{Up, Down, Left, Right}
}

// Right returns the direction rotated 90 degrees clockwise.
func (d Direction) Right() Direction {
	switch d {
	case Up:
		return Right
	case Down:
		return Left
	case Left:
		return Up
	default:
		return Down
	}
}

// Left returns the direction rotated 90 degrees counter-clockwise.
func (d Direction) Left() Direction {
	switch d {
	case Up:
		return Left
	case Down:
		return Right
	case Left:
		return Down
	default:
		return Up
	}
}

// Back returns the opposite direction.
func (d Direction) Back() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the coordinate change of one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// Rune returns the arrow glyph used to draw the rover's heading.
func (d Direction) Rune() rune {
	switch d {
	case Up:
		return '^'
	case Down:
		return 'v'
	case Left:
		return '<'
	default:
		return '>'
	}
}
