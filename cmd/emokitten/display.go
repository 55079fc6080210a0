package main

import (
	"fmt"
	"io"
	"strings"
)

// StarDisplay renders each intensity as a labelled row of stars, one star
// per two intensity units. Intensity 0 prints an empty row, 127 prints 63
// stars, keeping rows within a standard terminal width.
type StarDisplay struct {
	w io.Writer
}

// NewStarDisplay returns a display writing to w.
func NewStarDisplay(w io.Writer) *StarDisplay {
	return &StarDisplay{w: w}
}

// Render writes one row. Write errors are ignored; a broken pipe ends the
// program through the surrounding signal handling.
func (d *StarDisplay) Render(label string, intensity int) {
	if intensity < 0 {
		intensity = 0
	}

	fmt.Fprintf(d.w, "%s: %s\n", label, strings.Repeat("*", intensity/2))
}
