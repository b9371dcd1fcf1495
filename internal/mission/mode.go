// Package mission provides the run loop tying the mapping engine to a
// rover: sensing walls and floors, feeding the map, executing moves, and
// recovering from hazards and stalls.
package mission

// Mode selects what actually drives the rover during a run.
type Mode int

const (
	// ModeSim drives a simulated rig over an embedded course.
	ModeSim Mode = iota
	// ModeManual takes wall reports and tags from the keyboard.
	ModeManual
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeSim:
		return "sim"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "sim":
		return ModeSim, true
	case "manual":
		return ModeManual, true
	}
	return 0, false
}
