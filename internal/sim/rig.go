// Package sim drives a run against an embedded course instead of real
// hardware. The rig keeps the rover's true pose in course coordinates,
// answers the same sensing contracts the hardware does, refuses to enter
// black-floored cells, and loses traction on the course's trouble spots.
package sim

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/dkaspar/mazerover/internal/maze"
	"github.com/dkaspar/mazerover/internal/scenario"
)

var (
	// ErrBlockedByWall is returned by Advance when the commanded move
	// would drive through a closed side.
	ErrBlockedByWall = errors.New("sim: wall in the way")

	// ErrHazardAhead is returned by Advance when the next cell has black
	// flooring. The rig stays where it is.
	ErrHazardAhead = errors.New("sim: black floor ahead, refusing to enter")

	// ErrSensorGlitch is a transient sensing fault. Reads succeed again
	// shortly after.
	ErrSensorGlitch = errors.New("sim: transient sensor fault")
)

// Rig is a simulated rover on a course. Commands arrive in the rover's
// boot frame, where Up is whatever the rover faced at power-on; the rig
// rotates them into course coordinates. Methods are safe for concurrent
// use, so an attitude poller can sample while the mission drives.
type Rig struct {
	course *scenario.Def

	mu     sync.Mutex
	rng    *rand.Rand
	x, y   int
	facing maze.Direction
	turns  int

	lastCheckpoint scenario.Point
	stuckPending   bool
	stuckFired     map[scenario.Point]bool

	flakiness float64
}

// NewRig places a rover on the course's start cell, facing the course's
// boot heading. The rng drives sensor jitter and must not be shared.
func NewRig(course *scenario.Def, rng *rand.Rand) (*Rig, error) {
	heading, err := course.StartHeading()
	if err != nil {
		return nil, err
	}
	return &Rig{
		course:         course,
		rng:            rng,
		x:              course.Start.X,
		y:              course.Start.Y,
		facing:         heading,
		turns:          turnsFromUp(heading),
		lastCheckpoint: course.Start,
		stuckFired:     make(map[scenario.Point]bool),
	}, nil
}

// turnsFromUp counts the clockwise quarter turns taking Up to d.
func turnsFromUp(d maze.Direction) int {
	switch d {
	case maze.Up:
		return 0
	case maze.Right:
		return 1
	case maze.Down:
		return 2
	default:
		return 3
	}
}

// world rotates a boot-frame direction into course coordinates.
func (r *Rig) world(d maze.Direction) maze.Direction {
	for i := 0; i < r.turns; i++ {
		d = d.Right()
	}
	return d
}

// Pose returns the rover's cell and facing in course coordinates.
func (r *Rig) Pose() (x, y int, facing maze.Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y, r.facing
}

// SetFlakiness sets the probability in [0,1] that any single sensor read
// fails with ErrSensorGlitch.
func (r *Rig) SetFlakiness(p float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flakiness = p
}

// Advance drives the rover one cell in the boot-frame direction d. The
// rover first swings to face that way, so a refused move still leaves it
// facing the trouble. Entering a trouble spot wedges the drivetrain; see
// Stuck.
func (r *Rig) Advance(d maze.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wd := r.world(d)
	if !r.course.OpenAt(r.x, r.y, wd) {
		return ErrBlockedByWall
	}
	dx, dy := wd.Delta()
	nx, ny := r.x+dx, r.y+dy
	r.facing = wd
	if r.course.GlyphAt(nx, ny) == scenario.GlyphHazard {
		return ErrHazardAhead
	}
	r.x, r.y = nx, ny
	if r.course.GlyphAt(nx, ny) == scenario.GlyphCheckpoint {
		r.lastCheckpoint = scenario.Point{X: nx, Y: ny}
	}
	p := scenario.Point{X: nx, Y: ny}
	if r.course.IsStuck(nx, ny) && !r.stuckFired[p] {
		r.stuckFired[p] = true
		r.stuckPending = true
	}
	return nil
}

// Stuck reports whether the drivetrain is currently wedged. A stuck rover
// keeps its pose until Reposition is called.
func (r *Rig) Stuck() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stuckPending
}

// Reposition lifts the rover back onto the last checkpoint cell it
// crossed, or the start cell if it never crossed one. The facing is kept.
// Each trouble spot wedges the drivetrain only once.
func (r *Rig) Reposition() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y = r.lastCheckpoint.X, r.lastCheckpoint.Y
	r.stuckPending = false
}
