// Package maze implements the rover's incremental mapping and navigation
// engine. It builds a graph of discovered cells from wall reports, tags
// cells with floor and victim classifications, picks the next heading with
// a greedy scan backed by breadth-first rerouting, and rewinds to the last
// checkpoint on lack of progress. The engine performs no I/O and is not
// safe for concurrent use; callers serialize all operations.
package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrHazardAtStart is returned by AddBlack when the rover still sits
	// on the start cell, which can never become a hazard.
	ErrHazardAtStart = errors.New("maze: start cell cannot be marked as a hazard")

	// ErrNoRetreatCell is returned by AddBlack when the cell behind the
	// rover has never been discovered, leaving nowhere to retreat to.
	ErrNoRetreatCell = errors.New("maze: no discovered cell behind the rover")
)

// Maze is the engine state: the store of discovered cells, the rover's
// logical position and heading, the pending route, and the last
// checkpoint. Cells are stored under fixed internal coordinates; a
// translation offset keeps every externally visible coordinate
// non-negative without ever rewriting the store.
type Maze struct {
	cells   map[Position]*Cell
	pos     Position
	heading Direction
	last    Position
	route   []Position
	offset  Position
}

// New returns an engine holding a single start cell at the origin, with
// the rover on it facing Up. The start cell doubles as the initial
// checkpoint.
func New() *Maze {
	m := &Maze{
		cells:   make(map[Position]*Cell),
		heading: Up,
	}
	m.cells[m.pos] = &Cell{Kind: KindStart}
	m.last = m.pos
	return m
}

// AddCell reports an opening from the rover's cell in direction d. A new
// neighbor starts as Unknown; an existing one is linked and left alone.
// Links are recorded on both cells, so repeated reports are no-ops.
func (m *Maze) AddCell(d Direction) {
	dx, dy := d.Delta()
	np := Position{m.pos.X + dx, m.pos.Y + dy}
	if _, ok := m.cells[np]; !ok {
		if np.X+m.offset.X < 0 {
			m.offset.X++
		}
		if np.Y+m.offset.Y < 0 {
			m.offset.Y++
		}
		m.cells[np] = &Cell{Kind: KindUnknown}
	}
	m.cells[m.pos].link(d, np)
	m.cells[np].link(d.Back(), m.pos)
}

// AddCheckpoint marks the rover's cell as a checkpoint and records it as
// the target for LackOfProgress.
func (m *Maze) AddCheckpoint() {
	m.setKind(KindCheckpoint)
	m.last = m.pos
}

// AddVictim marks the rover's cell as holding a victim.
func (m *Maze) AddVictim() {
	m.setKind(KindVictim)
}

// AddRamp marks the rover's cell as holding a ramp.
func (m *Maze) AddRamp() {
	m.setKind(KindRamp)
}

// AddBlue marks the rover's cell as blue flooring.
func (m *Maze) AddBlue() {
	m.setKind(KindBlue)
}

// setKind reassigns the current cell's kind. The start cell keeps its
// kind no matter what is reported on it.
func (m *Maze) setKind(k Kind) {
	c := m.cells[m.pos]
	if c.Kind == KindStart {
		return
	}
	c.Kind = k
}

// AddBlack marks the cell the rover just tried to enter as an impassable
// hazard and retreats the rover one cell opposite its heading. The
// heading itself is unchanged. Any pending route is abandoned, since it
// was planned before the hazard was known. On error the engine state is
// untouched.
func (m *Maze) AddBlack() error {
	cur := m.cells[m.pos]
	if cur.Kind == KindStart {
		return ErrHazardAtStart
	}
	dx, dy := m.heading.Delta()
	back := Position{m.pos.X - dx, m.pos.Y - dy}
	if _, ok := m.cells[back]; !ok {
		return ErrNoRetreatCell
	}
	cur.Kind = KindBlack
	m.pos = back
	m.route = nil
	return nil
}

// LackOfProgress rewinds the rover's logical position to the last
// checkpoint and abandons any pending route. Only engine state moves;
// bringing the physical rover back to the checkpoint is the caller's
// job.
func (m *Maze) LackOfProgress() {
	m.pos = m.last
	m.route = nil
}

// MoveOne advances the rover one cell. It picks the heading, updates the
// position, and promotes a first-visited Unknown cell to Empty. The
// second return is false once exploration has finished: no Unknown cell
// is reachable and the rover is back on the start cell.
func (m *Maze) MoveOne() (Direction, bool) {
	d, ok := m.nextHeading()
	if !ok {
		return 0, false
	}
	m.heading = d
	dx, dy := d.Delta()
	m.pos = Position{m.pos.X + dx, m.pos.Y + dy}
	if c := m.cells[m.pos]; c.Kind == KindUnknown {
		c.Kind = KindEmpty
	}
	return d, true
}

// nextHeading applies the exploration policy: follow the pending route,
// else scan right, straight, left, back for an adjacent Unknown cell,
// else plan a route to the nearest Unknown cell, else head home to the
// start cell, else report done.
func (m *Maze) nextHeading() (Direction, bool) {
	if len(m.route) > 0 {
		next := m.route[0]
		m.route = m.route[1:]
		return m.headingTo(next), true
	}
	cur := m.cells[m.pos]
	scan := [4]Direction{m.heading.Right(), m.heading, m.heading.Left(), m.heading.Back()}
	for _, d := range scan {
		if np, ok := cur.Neighbor(d); ok && m.cells[np].Kind == KindUnknown {
			return d, true
		}
	}
	for _, target := range [2]Kind{KindUnknown, KindStart} {
		if path := m.search(target); len(path) > 0 {
			m.route = path[1:]
			return m.headingTo(path[0]), true
		}
	}
	return 0, false
}

// headingTo converts an adjacent waypoint into the heading that reaches
// it. A non-adjacent waypoint means the planner handed out a corrupt
// route; there is no way to continue from that.
func (m *Maze) headingTo(next Position) Direction {
	for _, d := range AllDirections() {
		dx, dy := d.Delta()
		if (Position{m.pos.X + dx, m.pos.Y + dy}) == next {
			return d
		}
	}
	panic(fmt.Sprintf("maze: route waypoint %v is not adjacent to %v", next, m.pos))
}

// ext translates an internal position into the normalized external
// labeling, which never goes negative.
func (m *Maze) ext(p Position) Position {
	return Position{p.X + m.offset.X, p.Y + m.offset.Y}
}

// unext translates an external position back to internal coordinates.
func (m *Maze) unext(p Position) Position {
	return Position{p.X - m.offset.X, p.Y - m.offset.Y}
}

// Position returns the rover's cell in normalized coordinates.
func (m *Maze) Position() Position {
	return m.ext(m.pos)
}

// Heading returns the rover's current heading.
func (m *Maze) Heading() Direction {
	return m.heading
}

// Checkpoint returns the last recorded checkpoint in normalized
// coordinates.
func (m *Maze) Checkpoint() Position {
	return m.ext(m.last)
}

// Size returns the number of discovered cells, hazards included.
func (m *Maze) Size() int {
	return len(m.cells)
}

// KindAt returns the classification of the cell at the normalized
// position p, if discovered.
func (m *Maze) KindAt(p Position) (Kind, bool) {
	c, ok := m.cells[m.unext(p)]
	if !ok {
		return 0, false
	}
	return c.Kind, true
}

// Linked returns the neighbor of the cell at the normalized position p in
// direction d, if that cell exists and the link has been established.
func (m *Maze) Linked(p Position, d Direction) (Position, bool) {
	c, ok := m.cells[m.unext(p)]
	if !ok {
		return Position{}, false
	}
	np, ok := c.Neighbor(d)
	if !ok {
		return Position{}, false
	}
	return m.ext(np), true
}

// Route returns a copy of the pending route in normalized coordinates,
// oldest waypoint first. It is nil when no route is pending.
func (m *Maze) Route() []Position {
	if len(m.route) == 0 {
		return nil
	}
	out := make([]Position, len(m.route))
	for i, p := range m.route {
		out[i] = m.ext(p)
	}
	return out
}

// Bounds returns the normalized bounding box of all discovered cells.
func (m *Maze) Bounds() (min, max Position) {
	a, b := m.bounds()
	return m.ext(a), m.ext(b)
}

// bounds computes the bounding box in internal coordinates. The store
// always holds at least the start cell.
func (m *Maze) bounds() (min, max Position) {
	first := true
	for p := range m.cells {
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}
