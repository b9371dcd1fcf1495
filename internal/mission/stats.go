package mission

import (
	"fmt"
	"strings"
)

// Stats summarizes one mission run.
type Stats struct {
	// RunID uniquely identifies the run in traces and logs.
	RunID string
	// Course and Seed pin down what was driven and how the noise rolled.
	Course string
	Seed   int64

	// Steps counts completed cell-to-cell moves.
	Steps int
	// Cells is the number of cells in the map when the run ended.
	Cells int

	Victims     int
	Checkpoints int
	Blues       int
	Ramps       int
	Hazards     int
	Recoveries  int
	// Retries counts sensor reads that had to be repeated.
	Retries int

	// Finished is true when the rover got back to the start cell with
	// nothing left to explore.
	Finished bool
	// FinalMap is the rendered map at the end of the run.
	FinalMap string
}

// Summary returns a multi-line, human-readable account of the run.
func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s on %q (seed %d)\n", s.RunID, s.Course, s.Seed)
	fmt.Fprintf(&b, "  steps %d, cells mapped %d, finished %v\n", s.Steps, s.Cells, s.Finished)
	fmt.Fprintf(&b, "  victims %d, checkpoints %d, blue tiles %d, ramps %d\n", s.Victims, s.Checkpoints, s.Blues, s.Ramps)
	fmt.Fprintf(&b, "  hazards %d, recoveries %d, sensor retries %d", s.Hazards, s.Recoveries, s.Retries)
	return b.String()
}
