package mission

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dkaspar/mazerover/internal/maze"
	"github.com/dkaspar/mazerover/internal/ui"
)

// runManual maps a maze from keyboard reports instead of a rig. Arrow
// keys report openings, letters tag the current cell, space asks the
// explorer for its next move.
func (m *Mission) runManual(ctx context.Context) error {
	_, span := m.tracer.Start(ctx, "mission.manual")
	defer span.End()

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}
	defer screen.Close()
	m.screen = screen
	m.view = ui.NewView(screen)

	m.running = true
	m.lastMessage = "report openings with the arrow keys"
	for m.running {
		m.renderManual()
		m.handleInput()
	}
	return nil
}

func (m *Mission) renderManual() {
	m.view.Render(m.maze,
		fmt.Sprintf("pos %s heading %s | cells %d steps %d",
			m.maze.Position(), m.maze.Heading(), m.maze.Size(), m.stats.Steps),
		"arrows or U/D/L/R: openings  c/v/b/r: tag  k: black  p: rewind  space: move  q: quit",
		m.lastMessage,
	)
}

func (m *Mission) handleInput() {
	ev := m.screen.PollEvent()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		m.handleKeyEvent(ev)
	case *tcell.EventResize:
		m.screen.Sync()
	}
}

func (m *Mission) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		m.running = false
	case tcell.KeyUp:
		m.reportOpening(maze.Up)
	case tcell.KeyDown:
		m.reportOpening(maze.Down)
	case tcell.KeyLeft:
		m.reportOpening(maze.Left)
	case tcell.KeyRight:
		m.reportOpening(maze.Right)
	case tcell.KeyRune:
		m.handleRune(ev.Rune())
	}
}

func (m *Mission) handleRune(r rune) {
	switch r {
	case 'q':
		m.running = false
	case 'U':
		m.reportOpening(maze.Up)
	case 'D':
		m.reportOpening(maze.Down)
	case 'L':
		m.reportOpening(maze.Left)
	case 'R':
		m.reportOpening(maze.Right)
	case 'c':
		m.tagCheckpoint()
		m.lastMessage = "checkpoint tagged at " + m.maze.Position().String()
	case 'v':
		m.tagVictim()
		m.lastMessage = "victim tagged at " + m.maze.Position().String()
	case 'b':
		m.tagBlue()
		m.lastMessage = "blue tile tagged at " + m.maze.Position().String()
	case 'r':
		m.tagRamp()
		m.lastMessage = "ramp tagged at " + m.maze.Position().String()
	case 'k':
		if err := m.maze.AddBlack(); err != nil {
			m.lastMessage = err.Error()
		} else {
			m.stats.Hazards++
			m.lastMessage = "black tile marked, backed off to " + m.maze.Position().String()
		}
	case 'p':
		m.maze.LackOfProgress()
		m.stats.Recoveries++
		m.lastMessage = "rewound to checkpoint " + m.maze.Position().String()
	case ' ':
		m.moveOnce()
	}
}

func (m *Mission) reportOpening(d maze.Direction) {
	m.maze.AddCell(d)
	m.lastMessage = "opening " + d.String()
}

func (m *Mission) moveOnce() {
	d, ok := m.maze.MoveOne()
	if !ok {
		m.stats.Finished = true
		m.lastMessage = "mapping complete, nowhere left to go"
		return
	}
	m.stats.Steps++
	m.lastMessage = "moved " + d.String()
}
