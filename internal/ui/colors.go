package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dkaspar/mazerover/internal/maze"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	// Remove leading # if present
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	// Parse RGB components
	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// kindColors is the map palette, one color per cell classification.
var kindColors = map[maze.Kind]tcell.Color{
	maze.KindStart:      MustParseHexColor("#50FA7B"),
	maze.KindUnknown:    MustParseHexColor("#6272A4"),
	maze.KindEmpty:      MustParseHexColor("#F8F8F2"),
	maze.KindCheckpoint: MustParseHexColor("#8BE9FD"),
	maze.KindBlue:       MustParseHexColor("#4D7CFF"),
	maze.KindVictim:     MustParseHexColor("#FF5555"),
	maze.KindRamp:       MustParseHexColor("#FFB86C"),
	maze.KindBlack:      MustParseHexColor("#44475A"),
}

// KindColor returns the palette color for a cell classification.
func KindColor(k maze.Kind) tcell.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return tcell.ColorDefault
}

var (
	routeNear = mustHex("#f1fa8c")
	routeFar  = mustHex("#ff79c6")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RouteColor shades waypoint i of an n-step route, fading from the
// rover's end of the route to the target's.
func RouteColor(i, n int) tcell.Color {
	t := 0.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	c := routeNear.BlendLab(routeFar, t).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
