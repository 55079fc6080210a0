// Package stream models lazily-produced sample sequences as pull-based
// stages. A stage produces one multi-channel sample per pull; composition
// chains stages into pipelines without any read-ahead, so each stage keeps
// O(1) buffering regardless of stream length.
package stream

import "errors"

// Sample is one multi-channel measurement: a fixed-length vector with one
// value per channel. The width of the first sample a stage observes is
// binding for the rest of the stream.
type Sample []float64

// Width returns the number of channels in the sample.
func (s Sample) Width() int {
	return len(s)
}

// ErrEndOfStream signals normal, non-failure termination of a stream.
// Stages propagate it upward unchanged.
var ErrEndOfStream = errors.New("stream: end of stream")

// ErrWidthMismatch is returned when a stage observes a sample whose width
// differs from the width established on first use. The stage is unusable
// afterwards; there is no recovery.
var ErrWidthMismatch = errors.New("stream: channel width mismatch")

// Stage is a pull-based stream processor. Each Pull produces the next
// output sample, requesting input from upstream on demand. After a Pull
// returns a non-nil error, the stage must not be pulled again.
//
// Streams are forward-only and consumed exactly once.
type Stage interface {
	Pull() (Sample, error)
}
