package sensors

import "github.com/dkaspar/mazerover/internal/maze"

// Relative is a body-relative sensing side.
type Relative int

const (
	// Front is the side the rover is facing.
	Front Relative = iota
	// RightSide is 90 degrees clockwise from Front.
	RightSide
	// Back is opposite Front.
	Back
	// LeftSide is 90 degrees counter-clockwise from Front.
	LeftSide
)

// Sides returns every side in the order a wall scan sweeps them.
func Sides() [4]Relative {
	return [4]Relative{Front, RightSide, Back, LeftSide}
}

// String returns the side name.
func (r Relative) String() string {
	switch r {
	case Front:
		return "front"
	case RightSide:
		return "right"
	case Back:
		return "back"
	default:
		return "left"
	}
}

// Absolute maps the side to a grid direction given the rover's heading.
func (r Relative) Absolute(heading maze.Direction) maze.Direction {
	switch r {
	case Front:
		return heading
	case RightSide:
		return heading.Right()
	case Back:
		return heading.Back()
	default:
		return heading.Left()
	}
}

// Rangefinder measures the distance to the nearest obstacle on one side
// of the rover, in meters.
type Rangefinder interface {
	Range(side Relative) (float64, error)
}
