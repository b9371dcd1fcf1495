package mission

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dkaspar/mazerover/internal/maze"
	"github.com/dkaspar/mazerover/internal/scenario"
	"github.com/dkaspar/mazerover/internal/sensors"
	"github.com/dkaspar/mazerover/internal/sim"
)

// simConfig returns a headless, noise-free setup for driving embedded
// courses in tests.
func simConfig(course string) Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeSim
	cfg.Course = course
	cfg.Seed = 7
	cfg.Flakiness = 0
	cfg.Headless = true
	cfg.Telemetry = false
	cfg.StepDelay = 0
	cfg.PollInterval = time.Millisecond
	return cfg
}

func TestMissionStraight(t *testing.T) {
	stats, err := New(simConfig("straight")).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !stats.Finished {
		t.Error("mission did not finish")
	}
	if stats.Steps != 4 {
		t.Errorf("Steps = %d, want 4", stats.Steps)
	}
	if stats.Cells != 3 {
		t.Errorf("Cells = %d, want 3", stats.Cells)
	}
	if stats.Checkpoints != 1 {
		t.Errorf("Checkpoints = %d, want 1", stats.Checkpoints)
	}
	if stats.Victims != 0 || stats.Hazards != 0 || stats.Recoveries != 0 {
		t.Errorf("unexpected events: victims %d hazards %d recoveries %d",
			stats.Victims, stats.Hazards, stats.Recoveries)
	}
	if stats.Retries != 0 {
		t.Errorf("Retries = %d, want 0 on a noise-free run", stats.Retries)
	}

	// Back home facing down, the corridor mapped out above the start.
	want := ". . . \n" +
		".   . \n" +
		". C . \n" +
		". v . \n" +
		". . . \n"
	if stats.FinalMap != want {
		t.Errorf("FinalMap =\n%s\nwant\n%s", stats.FinalMap, want)
	}

	if !strings.Contains(stats.Summary(), stats.RunID) {
		t.Error("Summary() does not mention the run ID")
	}
}

func TestMissionLoop(t *testing.T) {
	stats, err := New(simConfig("loop")).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !stats.Finished {
		t.Error("mission did not finish")
	}
	if stats.Cells != 8 {
		t.Errorf("Cells = %d, want 8 (the sealed center stays unmapped)", stats.Cells)
	}
	if stats.Steps < 8 {
		t.Errorf("Steps = %d, want at least one full lap", stats.Steps)
	}
	if stats.Victims != 1 {
		t.Errorf("Victims = %d, want 1", stats.Victims)
	}
	if stats.Blues != 1 {
		t.Errorf("Blues = %d, want 1", stats.Blues)
	}
	if stats.Checkpoints != 1 {
		t.Errorf("Checkpoints = %d, want 1", stats.Checkpoints)
	}
	if stats.Hazards != 0 || stats.Recoveries != 0 {
		t.Errorf("unexpected events: hazards %d recoveries %d", stats.Hazards, stats.Recoveries)
	}

	for _, glyph := range []string{"V", "B", "C"} {
		if !strings.Contains(stats.FinalMap, glyph) {
			t.Errorf("FinalMap lacks %q:\n%s", glyph, stats.FinalMap)
		}
	}
}

func TestMissionHazard(t *testing.T) {
	stats, err := New(simConfig("hazard")).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !stats.Finished {
		t.Error("mission did not finish")
	}
	if stats.Steps != 14 {
		t.Errorf("Steps = %d, want 14", stats.Steps)
	}
	if stats.Cells != 8 {
		t.Errorf("Cells = %d, want 8", stats.Cells)
	}
	if stats.Hazards != 1 {
		t.Errorf("Hazards = %d, want 1", stats.Hazards)
	}
	if stats.Recoveries != 1 {
		t.Errorf("Recoveries = %d, want 1", stats.Recoveries)
	}
	if stats.Ramps != 1 {
		t.Errorf("Ramps = %d, want 1", stats.Ramps)
	}
	if stats.Victims != 0 || stats.Blues != 0 || stats.Checkpoints != 0 {
		t.Errorf("unexpected tags: victims %d blues %d checkpoints %d",
			stats.Victims, stats.Blues, stats.Checkpoints)
	}

	if !strings.Contains(stats.FinalMap, "█") {
		t.Errorf("FinalMap lacks the black tile:\n%s", stats.FinalMap)
	}
	if !strings.Contains(stats.FinalMap, "R") {
		t.Errorf("FinalMap lacks the ramp:\n%s", stats.FinalMap)
	}
}

func TestMissionUnknownCourse(t *testing.T) {
	stats, err := New(simConfig("atlantis")).Run(context.Background())
	if err == nil {
		t.Fatal("Run() with an unknown course returned nil error")
	}
	if !strings.Contains(err.Error(), "atlantis") {
		t.Errorf("error %q does not name the course", err)
	}
	if stats.Cells != 1 {
		t.Errorf("Cells = %d, want the untouched start cell", stats.Cells)
	}
}

func TestMissionCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(simConfig("loop")).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestSensorRetryGivesUp(t *testing.T) {
	cfg := simConfig("straight")
	cfg.SensorRetries = 3
	m := New(cfg)

	course := scenario.MustLoadRegistry().GetByID("straight")
	rig, err := sim.NewRig(course, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewRig() error: %v", err)
	}
	rig.SetFlakiness(1)
	m.rig = rig

	if _, err := m.readRange(context.Background(), sensors.Front); !errors.Is(err, sim.ErrSensorGlitch) {
		t.Errorf("readRange() error = %v, want %v", err, sim.ErrSensorGlitch)
	}
	if m.stats.Retries == 0 {
		t.Error("no retries recorded for a permanently glitching sensor")
	}
}

func TestSensorRetrySucceeds(t *testing.T) {
	m := New(simConfig("straight"))

	course := scenario.MustLoadRegistry().GetByID("straight")
	rig, err := sim.NewRig(course, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewRig() error: %v", err)
	}
	m.rig = rig

	// Two open cells ahead of the start.
	dist, err := m.readRange(context.Background(), sensors.Front)
	if err != nil {
		t.Fatalf("readRange() error: %v", err)
	}
	if dist < 0.70 || dist > 0.75 {
		t.Errorf("readRange(front) = %v, want about 0.72", dist)
	}
	if m.stats.Retries != 0 {
		t.Errorf("Retries = %d, want 0", m.stats.Retries)
	}
}

func TestManualKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeManual
	m := New(cfg)

	key := func(k tcell.Key, r rune) {
		m.handleKeyEvent(tcell.NewEventKey(k, r, tcell.ModNone))
	}

	key(tcell.KeyUp, 0)
	if m.maze.Size() != 2 {
		t.Fatalf("Size after reporting an opening = %d, want 2", m.maze.Size())
	}
	key(tcell.KeyRune, ' ')
	if m.stats.Steps != 1 {
		t.Errorf("Steps after moving = %d, want 1", m.stats.Steps)
	}
	if got := m.maze.Position(); got != (maze.Position{X: 0, Y: 0}) {
		t.Errorf("Position = %v, want (0,0)", got)
	}

	key(tcell.KeyRune, 'c')
	if m.stats.Checkpoints != 1 {
		t.Errorf("Checkpoints = %d, want 1", m.stats.Checkpoints)
	}
	if k, _ := m.maze.KindAt(m.maze.Position()); k != maze.KindCheckpoint {
		t.Errorf("KindAt = %v, want checkpoint", k)
	}

	key(tcell.KeyRune, 'k')
	if m.stats.Hazards != 1 {
		t.Errorf("Hazards = %d, want 1", m.stats.Hazards)
	}
	if got := m.maze.Position(); got != (maze.Position{X: 0, Y: 1}) {
		t.Errorf("Position after hazard = %v, want back on the start", got)
	}

	m.running = true
	key(tcell.KeyRune, 'q')
	if m.running {
		t.Error("q did not stop the loop")
	}
}
