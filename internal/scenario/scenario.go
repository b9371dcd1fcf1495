package scenario

import (
	"fmt"

	"github.com/dkaspar/mazerover/internal/maze"
)

// Cell glyphs used in a course's cells rows.
const (
	GlyphPlain      = '.'
	GlyphCheckpoint = 'C'
	GlyphBlue       = 'B'
	GlyphVictim     = 'V'
	GlyphRamp       = 'R'
	GlyphHazard     = '#'
)

// Point is a cell coordinate inside a course grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Def defines one course loaded from JSON.
//
// Open holds one lowercase hex digit per cell: a bitmask of the sides the
// cell opens toward, bit 1<<d for direction d. Cells holds one glyph per
// cell describing what the rover finds there. Stuck lists cells where the
// drivetrain loses traction and the run needs a recovery.
type Def struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Start   Point    `json:"start"`
	Heading string   `json:"heading"`
	Open    []string `json:"open"`
	Cells   []string `json:"cells"`
	Stuck   []Point  `json:"stuck,omitempty"`
}

// OpenAt reports whether the cell at (x, y) opens toward dir. Positions
// off the grid never open anywhere.
func (d *Def) OpenAt(x, y int, dir maze.Direction) bool {
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return false
	}
	return d.maskAt(x, y)&(1<<uint(dir)) != 0
}

// maskAt decodes the open-side bitmask for the cell at (x, y).
func (d *Def) maskAt(x, y int) uint8 {
	c := d.Open[y][x]
	switch {
	case c >= '0' && c <= '9':
		return uint8(c - '0')
	case c >= 'a' && c <= 'f':
		return uint8(c-'a') + 10
	}
	return 0
}

// GlyphAt returns the cell glyph at (x, y), or GlyphPlain off the grid.
func (d *Def) GlyphAt(x, y int) byte {
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return GlyphPlain
	}
	return d.Cells[y][x]
}

// IsStuck reports whether (x, y) is listed as a traction trouble spot.
func (d *Def) IsStuck(x, y int) bool {
	for _, p := range d.Stuck {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// StartHeading returns the rover's boot facing in grid coordinates.
func (d *Def) StartHeading() (maze.Direction, error) {
	switch d.Heading {
	case "up":
		return maze.Up, nil
	case "down":
		return maze.Down, nil
	case "left":
		return maze.Left, nil
	case "right":
		return maze.Right, nil
	}
	return 0, fmt.Errorf("scenario %s: unknown heading %q", d.ID, d.Heading)
}

// Validate checks the course for internal consistency: row shapes, known
// glyphs and wall digits, a sane start cell, and openings that agree from
// both sides and never lead off the grid.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("scenario: missing id")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("scenario %s: bad dimensions %dx%d", d.ID, d.Width, d.Height)
	}
	if len(d.Open) != d.Height || len(d.Cells) != d.Height {
		return fmt.Errorf("scenario %s: want %d rows, got %d open and %d cells",
			d.ID, d.Height, len(d.Open), len(d.Cells))
	}
	for y := 0; y < d.Height; y++ {
		if len(d.Open[y]) != d.Width {
			return fmt.Errorf("scenario %s: open row %d is %d cells wide, want %d",
				d.ID, y, len(d.Open[y]), d.Width)
		}
		if len(d.Cells[y]) != d.Width {
			return fmt.Errorf("scenario %s: cells row %d is %d cells wide, want %d",
				d.ID, y, len(d.Cells[y]), d.Width)
		}
		for x := 0; x < d.Width; x++ {
			if c := d.Open[y][x]; !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
				return fmt.Errorf("scenario %s: bad wall digit %q at (%d,%d)", d.ID, c, x, y)
			}
			switch d.Cells[y][x] {
			case GlyphPlain, GlyphCheckpoint, GlyphBlue, GlyphVictim, GlyphRamp, GlyphHazard:
			default:
				return fmt.Errorf("scenario %s: bad cell glyph %q at (%d,%d)", d.ID, d.Cells[y][x], x, y)
			}
		}
	}

	if d.Start.X < 0 || d.Start.Y < 0 || d.Start.X >= d.Width || d.Start.Y >= d.Height {
		return fmt.Errorf("scenario %s: start %v is off the grid", d.ID, d.Start)
	}
	if d.GlyphAt(d.Start.X, d.Start.Y) == GlyphHazard {
		return fmt.Errorf("scenario %s: start cell is a hazard", d.ID)
	}
	if _, err := d.StartHeading(); err != nil {
		return err
	}

	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			for _, dir := range maze.AllDirections() {
				if !d.OpenAt(x, y, dir) {
					continue
				}
				dx, dy := dir.Delta()
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= d.Width || ny >= d.Height {
					return fmt.Errorf("scenario %s: cell (%d,%d) opens %v off the grid", d.ID, x, y, dir)
				}
				if !d.OpenAt(nx, ny, dir.Back()) {
					return fmt.Errorf("scenario %s: opening %v from (%d,%d) is not mirrored at (%d,%d)",
						d.ID, dir, x, y, nx, ny)
				}
			}
		}
	}

	for _, p := range d.Stuck {
		if p.X < 0 || p.Y < 0 || p.X >= d.Width || p.Y >= d.Height {
			return fmt.Errorf("scenario %s: stuck point %v is off the grid", d.ID, p)
		}
	}
	return nil
}
