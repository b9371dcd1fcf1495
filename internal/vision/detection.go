// Package vision turns raw victim-classifier output into confirmed
// sightings. Frames arrive as labeled boxes with confidences; the
// interpreter gates out weak hits and debounces the rest so one victim
// is reported exactly once while the rover drives past it.
package vision

import "image"

// Classifier labels for the victim codes posted on maze walls: colored
// markers and rescue-kit letters.
const (
	LabelGreen  = "GREEN"
	LabelH      = "H"
	LabelRed    = "RED"
	LabelS      = "S"
	LabelU      = "U"
	LabelYellow = "YELLOW"
)

// KnownLabels returns every label the classifier can produce.
func KnownLabels() []string {
	return []string{LabelGreen, LabelH, LabelRed, LabelS, LabelU, LabelYellow}
}

// KnownLabel reports whether label is one the classifier can produce.
func KnownLabel(label string) bool {
	switch label {
	case LabelGreen, LabelH, LabelRed, LabelS, LabelU, LabelYellow:
		return true
	}
	return false
}

// Detection is one raw classifier hit in a single camera frame.
type Detection struct {
	Label      string
	Confidence float64
	Box        image.Rectangle
}
