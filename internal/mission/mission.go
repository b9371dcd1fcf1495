package mission

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dkaspar/mazerover/internal/maze"
	"github.com/dkaspar/mazerover/internal/scenario"
	"github.com/dkaspar/mazerover/internal/sensors"
	"github.com/dkaspar/mazerover/internal/sim"
	"github.com/dkaspar/mazerover/internal/telemetry"
	"github.com/dkaspar/mazerover/internal/ui"
	"github.com/dkaspar/mazerover/internal/vision"
)

// Mission owns one run of the rover: the map being built, the rig being
// driven, and the sensing pipeline between them.
type Mission struct {
	cfg    Config
	seed   int64
	tracer trace.Tracer

	maze   *maze.Maze
	rig    *sim.Rig
	orient *sensors.Orientation
	gate   *vision.Interpreter

	screen  *ui.Screen
	view    *ui.View
	running bool

	lastMessage string
	stats       Stats
}

// New prepares a mission with an empty map. A zero seed is replaced by a
// time-based one.
func New(cfg Config) *Mission {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tracer := telemetry.Tracer("mission")
	if !cfg.Telemetry {
		tracer = telemetry.NoopTracer()
	}
	return &Mission{
		cfg:    cfg,
		seed:   seed,
		tracer: tracer,
		maze:   maze.New(),
		stats: Stats{
			RunID:  uuid.NewString(),
			Course: cfg.Course,
			Seed:   seed,
		},
	}
}

// Run executes the mission until the map is complete, the operator quits,
// or something breaks. The returned stats are valid either way.
func (m *Mission) Run(ctx context.Context) (*Stats, error) {
	ctx, span := m.tracer.Start(ctx, "mission.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", m.stats.RunID),
		attribute.String("run.mode", m.cfg.Mode.String()),
		attribute.String("run.course", m.cfg.Course),
		attribute.Int64("run.seed", m.seed),
	)

	var err error
	switch m.cfg.Mode {
	case ModeSim:
		err = m.runSim(ctx)
	case ModeManual:
		err = m.runManual(ctx)
	default:
		err = fmt.Errorf("mission: unknown mode %d", m.cfg.Mode)
	}

	m.stats.Cells = m.maze.Size()
	m.stats.FinalMap = m.maze.Render()
	span.SetAttributes(
		attribute.Int("run.steps", m.stats.Steps),
		attribute.Int("run.cells", m.stats.Cells),
		attribute.Int("run.victims", m.stats.Victims),
		attribute.Int("run.hazards", m.stats.Hazards),
		attribute.Int("run.recoveries", m.stats.Recoveries),
		attribute.Bool("run.finished", m.stats.Finished),
	)
	return &m.stats, err
}

func (m *Mission) runSim(ctx context.Context) error {
	registry, err := scenario.LoadRegistry()
	if err != nil {
		return fmt.Errorf("loading courses: %w", err)
	}
	course := registry.GetByID(m.cfg.Course)
	if course == nil {
		return fmt.Errorf("unknown course %q, have %v", m.cfg.Course, registry.IDs())
	}

	rig, err := sim.NewRig(course, rand.New(rand.NewSource(m.seed)))
	if err != nil {
		return fmt.Errorf("placing rover: %w", err)
	}
	rig.SetFlakiness(m.cfg.Flakiness)
	m.rig = rig

	m.orient = sensors.NewOrientation(rig, m.cfg.PollInterval)
	defer m.orient.Stop()
	m.gate = vision.NewInterpreter(m.cfg.MinConfidence, m.cfg.MinArea, m.cfg.DebounceHits)

	var events chan tcell.Event
	if !m.cfg.Headless {
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("opening screen: %w", err)
		}
		defer screen.Close()
		m.screen = screen
		m.view = ui.NewView(screen)

		events = make(chan tcell.Event, 8)
		go func() {
			for {
				ev := screen.PollEvent()
				if ev == nil {
					return
				}
				events <- ev
			}
		}()
	}

	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.cfg.MaxSteps > 0 && iter >= m.cfg.MaxSteps {
			return fmt.Errorf("step budget %d exhausted before mapping finished", m.cfg.MaxSteps)
		}

		done, err := m.step(ctx)
		if err != nil {
			return err
		}
		if m.view != nil {
			m.renderSim()
			select {
			case ev := <-events:
				if m.spectatorQuit(ev) {
					return nil
				}
			case <-time.After(m.cfg.StepDelay):
			}
		}
		if done {
			return nil
		}
	}
}

// step runs one sense-tag-move cycle. It reports done once the explorer
// is back on the start cell with nothing left to visit.
func (m *Mission) step(ctx context.Context) (bool, error) {
	ctx, span := m.tracer.Start(ctx, "mission.step")
	defer span.End()

	from := m.maze.Position()
	span.SetAttributes(
		attribute.String("step.pos", from.String()),
		attribute.String("step.heading", m.maze.Heading().String()),
		attribute.Int("step.route", len(m.maze.Route())),
	)

	if err := m.senseWalls(ctx); err != nil {
		return false, err
	}
	if err := m.senseSurroundings(ctx); err != nil {
		return false, err
	}

	// A wedged drivetrain is noticed after the cell was sensed, so a
	// trouble spot on a checkpoint is tagged before the map rewinds.
	if m.rig.Stuck() {
		m.stats.Recoveries++
		m.maze.LackOfProgress()
		m.rig.Reposition()
		m.gate.Reset()
		span.AddEvent("wheels wedged, lifted back to checkpoint")
	}

	d, ok := m.maze.MoveOne()
	if !ok {
		m.stats.Finished = true
		return true, nil
	}
	span.SetAttributes(attribute.String("step.move", d.String()))

	switch err := m.rig.Advance(d); {
	case errors.Is(err, sim.ErrHazardAhead):
		m.stats.Hazards++
		if berr := m.maze.AddBlack(); berr != nil {
			return false, fmt.Errorf("hazard at %s: %w", m.maze.Position(), berr)
		}
		span.AddEvent("black floor refused")
	case err != nil:
		return false, fmt.Errorf("advance %s from %s: %w", d, from, err)
	default:
		m.stats.Steps++
		m.gate.Reset()
	}
	return false, nil
}

// senseWalls ranges all four sides and reports every opening to the map.
func (m *Mission) senseWalls(ctx context.Context) error {
	for _, side := range sensors.Sides() {
		dist, err := m.readRange(ctx, side)
		if err != nil {
			return err
		}
		if dist >= m.cfg.OpenThreshold {
			m.maze.AddCell(side.Absolute(m.maze.Heading()))
		}
	}
	return nil
}

// senseSurroundings tags the current cell from the floor sensor, the
// camera and the attitude. The start cell takes no tags.
func (m *Mission) senseSurroundings(ctx context.Context) error {
	kind, ok := m.maze.KindAt(m.maze.Position())
	if !ok || kind == maze.KindStart {
		return nil
	}

	switch m.rig.Floor() {
	case scenario.GlyphCheckpoint:
		m.tagCheckpoint()
	case scenario.GlyphBlue:
		m.tagBlue()
	}

	// The camera runs faster than the rover drives, so one stop yields
	// enough frames for the gate to confirm a label.
	var seen []string
	for i := 0; i < m.cfg.DebounceHits; i++ {
		seen = append(seen, m.gate.Feed(m.rig.Detections())...)
	}
	if len(seen) > 0 {
		m.tagVictim()
	}

	att, err := m.readAttitude(ctx)
	if err != nil {
		return err
	}
	if math.Abs(att.Pitch) >= m.cfg.RampPitch {
		m.tagRamp()
	}
	return nil
}

// readRange reads one side's distance, retrying transient faults with
// exponential backoff.
func (m *Mission) readRange(ctx context.Context, side sensors.Relative) (float64, error) {
	dist, err := backoff.Retry(ctx, func() (float64, error) {
		d, rerr := m.rig.Range(side)
		if rerr != nil && !errors.Is(rerr, sim.ErrSensorGlitch) {
			return 0, backoff.Permanent(rerr)
		}
		return d, rerr
	}, m.retryOptions()...)
	if err != nil {
		return 0, fmt.Errorf("ranging %s: %w", side, err)
	}
	return dist, nil
}

// readAttitude forces a fresh orientation sample, retrying transient
// faults with exponential backoff.
func (m *Mission) readAttitude(ctx context.Context) (sensors.Attitude, error) {
	att, err := backoff.Retry(ctx, func() (sensors.Attitude, error) {
		a, rerr := m.orient.Refresh()
		if rerr != nil && !errors.Is(rerr, sim.ErrSensorGlitch) {
			return sensors.Attitude{}, backoff.Permanent(rerr)
		}
		return a, rerr
	}, m.retryOptions()...)
	if err != nil {
		return sensors.Attitude{}, fmt.Errorf("sampling attitude: %w", err)
	}
	return att, nil
}

func (m *Mission) retryOptions() []backoff.RetryOption {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Millisecond
	bo.MaxInterval = 20 * time.Millisecond
	return []backoff.RetryOption{
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(m.cfg.SensorRetries),
		backoff.WithNotify(func(error, time.Duration) { m.stats.Retries++ }),
	}
}

// Tagging helpers count each cell once, on the visit that changed it.

func (m *Mission) tagCheckpoint() {
	if k, ok := m.maze.KindAt(m.maze.Position()); ok && k != maze.KindStart && k != maze.KindCheckpoint {
		m.stats.Checkpoints++
	}
	m.maze.AddCheckpoint()
}

func (m *Mission) tagBlue() {
	if k, ok := m.maze.KindAt(m.maze.Position()); ok && k != maze.KindStart && k != maze.KindBlue {
		m.stats.Blues++
	}
	m.maze.AddBlue()
}

func (m *Mission) tagVictim() {
	if k, ok := m.maze.KindAt(m.maze.Position()); ok && k != maze.KindStart && k != maze.KindVictim {
		m.stats.Victims++
	}
	m.maze.AddVictim()
}

func (m *Mission) tagRamp() {
	if k, ok := m.maze.KindAt(m.maze.Position()); ok && k != maze.KindStart && k != maze.KindRamp {
		m.stats.Ramps++
	}
	m.maze.AddRamp()
}

func (m *Mission) renderSim() {
	att, _ := m.orient.Current()
	m.view.Render(m.maze,
		fmt.Sprintf("course %s | step %d | pos %s heading %s",
			m.cfg.Course, m.stats.Steps, m.maze.Position(), m.maze.Heading()),
		fmt.Sprintf("pitch %.1f yaw %.0f | victims %d hazards %d recoveries %d",
			att.Pitch, att.Yaw, m.stats.Victims, m.stats.Hazards, m.stats.Recoveries),
		"q quits",
	)
}

// spectatorQuit handles one terminal event during a sim run and reports
// whether the operator asked to stop watching.
func (m *Mission) spectatorQuit(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		m.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
		}
	}
	return false
}
