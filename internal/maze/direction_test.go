package maze

import "testing"

func TestDirectionRotations(t *testing.T) {
	tests := []struct {
		d     Direction
		right Direction
		left  Direction
		back  Direction
	}{
		{Up, Right, Left, Down},
		{Right, Down, Up, Left},
		{Down, Left, Right, Up},
		{Left, Up, Down, Right},
	}

	for _, tt := range tests {
		if got := tt.d.Right(); got != tt.right {
			t.Errorf("%v.Right() = %v, want %v", tt.d, got, tt.right)
		}
		if got := tt.d.Left(); got != tt.left {
			t.Errorf("%v.Left() = %v, want %v", tt.d, got, tt.left)
		}
		if got := tt.d.Back(); got != tt.back {
			t.Errorf("%v.Back() = %v, want %v", tt.d, got, tt.back)
		}
	}
}

func TestDirectionRoundTrips(t *testing.T) {
	for _, d := range AllDirections() {
		if got := d.Back().Back(); got != d {
			t.Errorf("%v.Back().Back() = %v, want %v", d, got, d)
		}
		if got := d.Right().Left(); got != d {
			t.Errorf("%v.Right().Left() = %v, want %v", d, got, d)
		}
		if got := d.Right().Right(); got != d.Back() {
			t.Errorf("%v.Right().Right() = %v, want %v", d, got, d.Back())
		}
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		d      Direction
		dx, dy int
	}{
		{Up, 0, -1},
		{Down, 0, 1},
		{Left, -1, 0},
		{Right, 1, 0},
	}

	for _, tt := range tests {
		dx, dy := tt.d.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", tt.d, dx, dy, tt.dx, tt.dy)
		}
	}

	// A step and a step back cancel out.
	for _, d := range AllDirections() {
		dx, dy := d.Delta()
		bx, by := d.Back().Delta()
		if dx+bx != 0 || dy+by != 0 {
			t.Errorf("%v and %v deltas do not cancel", d, d.Back())
		}
	}
}

func TestAllDirectionsOrder(t *testing.T) {
	// Searches and scans rely on this exact order.
	want := [4]Direction{Up, Down, Left, Right}
	if got := AllDirections(); got != want {
		t.Errorf("AllDirections() = %v, want %v", got, want)
	}
}
