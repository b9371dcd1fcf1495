package sim

import (
	"image"

	"github.com/dkaspar/mazerover/internal/maze"
	"github.com/dkaspar/mazerover/internal/scenario"
	"github.com/dkaspar/mazerover/internal/sensors"
	"github.com/dkaspar/mazerover/internal/vision"
)

const (
	// CellSize is the course grid pitch in meters.
	CellSize = 0.30

	// wallGap is the distance from the rover's center to a closed wall
	// of its own cell.
	wallGap = 0.12

	// RampPitch is the nominal incline of a ramp cell, in degrees.
	RampPitch = 16.0
)

// Range measures the distance to the nearest wall on the given side of
// the rover's current facing, in meters, with a little jitter.
func (r *Rig) Range(side sensors.Relative) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.glitch() {
		return 0, ErrSensorGlitch
	}
	wd := side.Absolute(r.facing)
	x, y, run := r.x, r.y, 0
	for r.course.OpenAt(x, y, wd) {
		dx, dy := wd.Delta()
		x, y = x+dx, y+dy
		run++
	}
	return wallGap + CellSize*float64(run) + r.jitter(0.01), nil
}

// Sample reports the rover's attitude. Ramp cells pitch the body up;
// everything else is level apart from jitter. Yaw follows the facing.
func (r *Rig) Sample() (sensors.Attitude, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.glitch() {
		return sensors.Attitude{}, ErrSensorGlitch
	}
	a := sensors.Attitude{
		Roll:  r.jitter(0.8),
		Pitch: r.jitter(0.8),
		Yaw:   yawDegrees(r.facing) + r.jitter(0.8),
	}
	if r.course.GlyphAt(r.x, r.y) == scenario.GlyphRamp {
		a.Pitch = RampPitch + r.jitter(0.8)
	}
	return a, nil
}

// Detections returns the classifier hits for the current camera frame.
// A victim cell yields a steady, well-framed hit whose label is fixed by
// the cell, so consecutive frames agree. A flaky rig occasionally adds a
// weak spurious hit for the gate to throw away.
func (r *Rig) Detections() []vision.Detection {
	r.mu.Lock()
	defer r.mu.Unlock()
	var frame []vision.Detection
	if r.course.GlyphAt(r.x, r.y) == scenario.GlyphVictim {
		x0 := 40 + r.rng.Intn(20)
		y0 := 30 + r.rng.Intn(20)
		frame = append(frame, vision.Detection{
			Label:      victimLabel(r.x, r.y),
			Confidence: 0.85 + r.rng.Float64()*0.1,
			Box:        image.Rect(x0, y0, x0+40, y0+40),
		})
	}
	if r.flakiness > 0 && r.rng.Float64() < r.flakiness {
		labels := vision.KnownLabels()
		frame = append(frame, vision.Detection{
			Label:      labels[r.rng.Intn(len(labels))],
			Confidence: 0.1 + r.rng.Float64()*0.2,
			Box:        image.Rect(0, 0, 6, 6),
		})
	}
	return frame
}

// Floor returns the floor glyph under the rover.
func (r *Rig) Floor() byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.course.GlyphAt(r.x, r.y)
}

// victimLabel fixes which victim code a cell shows, keyed off its
// coordinates so every visit and every frame agree.
func victimLabel(x, y int) string {
	labels := vision.KnownLabels()
	return labels[(x*31+y*17)%len(labels)]
}

// yawDegrees maps a course facing to a compass angle.
func yawDegrees(d maze.Direction) float64 {
	switch d {
	case maze.Up:
		return 0
	case maze.Right:
		return 90
	case maze.Down:
		return 180
	default:
		return 270
	}
}

// jitter returns uniform noise in [-span/2, span/2).
func (r *Rig) jitter(span float64) float64 {
	return (r.rng.Float64() - 0.5) * span
}

// glitch rolls the transient-fault probability.
func (r *Rig) glitch() bool {
	return r.flakiness > 0 && r.rng.Float64() < r.flakiness
}
