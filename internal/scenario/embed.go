// Package scenario provides embedded course definitions and utilities for
// loading them. A course describes the ground truth a simulated run drives
// against: cell openings, floor markings, victims, and trouble spots.
package scenario

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
