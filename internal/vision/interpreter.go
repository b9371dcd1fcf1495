package vision

import "sort"

// Interpreter accumulates classifier frames and decides when a sighting
// is real. A label counts only above the confidence floor and box size
// floor, must persist for hits consecutive frames to confirm, and stays
// suppressed until it leaves the frame so a victim is not reported again
// on every subsequent frame.
type Interpreter struct {
	minConfidence float64
	minArea       int
	hits          int

	streak     map[string]int
	suppressed map[string]bool
}

// NewInterpreter creates an interpreter. hits is clamped to at least 1.
func NewInterpreter(minConfidence float64, minArea, hits int) *Interpreter {
	if hits < 1 {
		hits = 1
	}
	return &Interpreter{
		minConfidence: minConfidence,
		minArea:       minArea,
		hits:          hits,
		streak:        make(map[string]int),
		suppressed:    make(map[string]bool),
	}
}

// Feed processes one frame and returns the labels it confirms, sorted.
func (i *Interpreter) Feed(frame []Detection) []string {
	present := make(map[string]bool)
	for _, d := range frame {
		if !KnownLabel(d.Label) {
			continue
		}
		if d.Confidence < i.minConfidence {
			continue
		}
		if d.Box.Dx()*d.Box.Dy() < i.minArea {
			continue
		}
		present[d.Label] = true
	}

	var confirmed []string
	for label := range present {
		i.streak[label]++
		if i.streak[label] >= i.hits && !i.suppressed[label] {
			i.suppressed[label] = true
			confirmed = append(confirmed, label)
		}
	}

	// A label that left the frame starts over next time it shows up.
	for label := range i.streak {
		if !present[label] {
			delete(i.streak, label)
			delete(i.suppressed, label)
		}
	}

	sort.Strings(confirmed)
	return confirmed
}

// Reset drops all streaks and suppressions, for when the rover enters a
// new cell and the scene changes entirely.
func (i *Interpreter) Reset() {
	i.streak = make(map[string]int)
	i.suppressed = make(map[string]bool)
}
