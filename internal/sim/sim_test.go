package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/dkaspar/mazerover/internal/maze"
	"github.com/dkaspar/mazerover/internal/scenario"
	"github.com/dkaspar/mazerover/internal/sensors"
	"github.com/dkaspar/mazerover/internal/vision"
)

var (
	_ sensors.Rangefinder = (*Rig)(nil)
	_ sensors.Sampler     = (*Rig)(nil)
)

func newTestRig(t *testing.T, courseID string, seed int64) *Rig {
	t.Helper()
	course := scenario.MustLoadRegistry().GetByID(courseID)
	if course == nil {
		t.Fatalf("course %q not found", courseID)
	}
	rig, err := NewRig(course, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewRig() error: %v", err)
	}
	return rig
}

func mustAdvance(t *testing.T, rig *Rig, d maze.Direction) {
	t.Helper()
	if err := rig.Advance(d); err != nil {
		t.Fatalf("Advance(%v) error: %v", d, err)
	}
}

func TestRigBootAndRanging(t *testing.T) {
	rig := newTestRig(t, "hazard", 1)

	x, y, facing := rig.Pose()
	if x != 0 || y != 1 || facing != maze.Up {
		t.Fatalf("Pose() = (%d,%d,%v), want (0,1,up)", x, y, facing)
	}

	// One open cell ahead, then a wall.
	front, err := rig.Range(sensors.Front)
	if err != nil {
		t.Fatalf("Range(front) error: %v", err)
	}
	if front < 0.30 || front > 0.50 {
		t.Errorf("Range(front) = %v, want about 0.42", front)
	}

	// The left side and the rear are the course border.
	for _, side := range []sensors.Relative{sensors.LeftSide, sensors.Back} {
		got, err := rig.Range(side)
		if err != nil {
			t.Fatalf("Range(%v) error: %v", side, err)
		}
		if got > 0.20 {
			t.Errorf("Range(%v) = %v, want under 0.20", side, got)
		}
	}

	// The bottom corridor runs three open cells to the right.
	right, err := rig.Range(sensors.RightSide)
	if err != nil {
		t.Fatalf("Range(right) error: %v", err)
	}
	if right < 0.90 {
		t.Errorf("Range(right) = %v, want over 0.90", right)
	}
}

func TestRigFrameMapping(t *testing.T) {
	// The rover boots facing right, so boot-frame Up drives +x.
	rig := newTestRig(t, "straight", 2)

	mustAdvance(t, rig, maze.Up)
	x, y, facing := rig.Pose()
	if x != 1 || y != 0 || facing != maze.Right {
		t.Fatalf("Pose() = (%d,%d,%v), want (1,0,right)", x, y, facing)
	}
	if g := rig.Floor(); g != scenario.GlyphCheckpoint {
		t.Errorf("Floor() = %q, want %q", g, scenario.GlyphCheckpoint)
	}

	mustAdvance(t, rig, maze.Up)
	front, err := rig.Range(sensors.Front)
	if err != nil {
		t.Fatalf("Range(front) error: %v", err)
	}
	if front > 0.20 {
		t.Errorf("Range(front) at the end wall = %v, want under 0.20", front)
	}

	// The corridor ends here.
	if err := rig.Advance(maze.Up); !errors.Is(err, ErrBlockedByWall) {
		t.Fatalf("Advance(up) = %v, want %v", err, ErrBlockedByWall)
	}
	if x, y, _ := rig.Pose(); x != 2 || y != 0 {
		t.Errorf("Pose() after refused move = (%d,%d), want (2,0)", x, y)
	}

	// Boot-frame Down drives back -x.
	mustAdvance(t, rig, maze.Down)
	x, y, facing = rig.Pose()
	if x != 1 || y != 0 || facing != maze.Left {
		t.Errorf("Pose() = (%d,%d,%v), want (1,0,left)", x, y, facing)
	}
}

func TestRigRefusesHazard(t *testing.T) {
	rig := newTestRig(t, "hazard", 3)

	mustAdvance(t, rig, maze.Up)
	mustAdvance(t, rig, maze.Right)

	err := rig.Advance(maze.Right)
	if !errors.Is(err, ErrHazardAhead) {
		t.Fatalf("Advance(right) = %v, want %v", err, ErrHazardAhead)
	}
	x, y, facing := rig.Pose()
	if x != 1 || y != 0 {
		t.Errorf("Pose() after refusal = (%d,%d), want (1,0)", x, y)
	}
	if facing != maze.Right {
		t.Errorf("facing after refusal = %v, want right", facing)
	}
}

func TestRigStuckAndReposition(t *testing.T) {
	rig := newTestRig(t, "hazard", 4)

	mustAdvance(t, rig, maze.Up)
	mustAdvance(t, rig, maze.Right)
	mustAdvance(t, rig, maze.Left)
	mustAdvance(t, rig, maze.Down)
	mustAdvance(t, rig, maze.Right)

	// On the ramp cell the body pitches up.
	a, err := rig.Sample()
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	if a.Pitch < 15 {
		t.Errorf("ramp pitch = %v, want at least 15", a.Pitch)
	}
	if a.Yaw < 89 || a.Yaw > 91 {
		t.Errorf("yaw facing right = %v, want about 90", a.Yaw)
	}

	// The next cell is a trouble spot.
	mustAdvance(t, rig, maze.Right)
	if !rig.Stuck() {
		t.Fatal("Stuck() = false after entering the trouble spot")
	}

	// No checkpoint was crossed, so recovery goes back to the start.
	rig.Reposition()
	if rig.Stuck() {
		t.Error("Stuck() = true after Reposition")
	}
	x, y, facing := rig.Pose()
	if x != 0 || y != 1 {
		t.Errorf("Pose() after Reposition = (%d,%d), want (0,1)", x, y)
	}
	if facing != maze.Right {
		t.Errorf("facing after Reposition = %v, want right", facing)
	}

	// Each trouble spot only fires once.
	mustAdvance(t, rig, maze.Right)
	mustAdvance(t, rig, maze.Right)
	if rig.Stuck() {
		t.Error("Stuck() = true on the second crossing")
	}
}

func TestRigDetectionsAndFloor(t *testing.T) {
	// The loop course boots facing down, so boot-frame Left drives +x.
	rig := newTestRig(t, "loop", 5)

	if frame := rig.Detections(); len(frame) != 0 {
		t.Fatalf("Detections() on a plain cell = %v, want none", frame)
	}

	mustAdvance(t, rig, maze.Left)
	mustAdvance(t, rig, maze.Left)

	frame := rig.Detections()
	if len(frame) != 1 {
		t.Fatalf("Detections() on the victim cell = %d hits, want 1", len(frame))
	}
	d := frame[0]
	if d.Label != vision.LabelRed {
		t.Errorf("detection label = %q, want %q", d.Label, vision.LabelRed)
	}
	if d.Confidence < 0.85 || d.Confidence > 0.95 {
		t.Errorf("detection confidence = %v, want within [0.85,0.95]", d.Confidence)
	}

	// Consecutive frames agree, so a debouncing gate confirms on the
	// second one.
	gate := vision.NewInterpreter(0.5, 100, 2)
	if got := gate.Feed(frame); len(got) != 0 {
		t.Fatalf("first frame confirmed %v", got)
	}
	if got := gate.Feed(rig.Detections()); len(got) != 1 || got[0] != vision.LabelRed {
		t.Fatalf("second frame = %v, want [RED]", got)
	}

	// Down the right side to the blue cell, then along to the checkpoint.
	mustAdvance(t, rig, maze.Up)
	mustAdvance(t, rig, maze.Up)
	if g := rig.Floor(); g != scenario.GlyphBlue {
		t.Errorf("Floor() = %q, want %q", g, scenario.GlyphBlue)
	}
	mustAdvance(t, rig, maze.Right)
	mustAdvance(t, rig, maze.Right)
	if g := rig.Floor(); g != scenario.GlyphCheckpoint {
		t.Errorf("Floor() = %q, want %q", g, scenario.GlyphCheckpoint)
	}

	// The crossed checkpoint is now the recovery spot.
	mustAdvance(t, rig, maze.Down)
	rig.Reposition()
	if x, y, _ := rig.Pose(); x != 0 || y != 2 {
		t.Errorf("Pose() after Reposition = (%d,%d), want (0,2)", x, y)
	}
}

func TestRigFlakiness(t *testing.T) {
	rig := newTestRig(t, "straight", 6)

	rig.SetFlakiness(1)
	if _, err := rig.Range(sensors.Front); !errors.Is(err, ErrSensorGlitch) {
		t.Errorf("Range() = %v, want %v", err, ErrSensorGlitch)
	}
	if _, err := rig.Sample(); !errors.Is(err, ErrSensorGlitch) {
		t.Errorf("Sample() = %v, want %v", err, ErrSensorGlitch)
	}

	rig.SetFlakiness(0)
	if _, err := rig.Range(sensors.Front); err != nil {
		t.Errorf("Range() = %v, want nil", err)
	}
}
