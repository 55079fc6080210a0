// Package iir applies recursive filter coefficients to a sample stream,
// one multi-channel sample at a time.
//
// The filter keeps a single (order+1) x width delay buffer and updates it
// with the direct-form recursion
//
//	v[0] = x - a[1]*v[1] - ... - a[n]*v[n]
//	y    = b[0]*v[0] + b[1]*v[1] + ... + b[n]*v[n]
//
// followed by a one-row shift of the buffer. The output is computed before
// the shift; the freshly combined row becomes v[1] on the next call. One
// output sample is produced for every input sample, with no startup skip.
package iir

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/openyou/emokitten/dsp/core"
	"github.com/openyou/emokitten/dsp/filter/design"
	"github.com/openyou/emokitten/dsp/stream"
)

// Filter is a streaming recursive filter. The delay buffer is allocated on
// the first processed sample, which fixes the channel width for the
// filter's lifetime. A Filter is single-owner: it must only be invoked from
// one goroutine.
type Filter struct {
	b, a []float64

	// state has len(b) rows of one delayed combination each; nil until the
	// first sample establishes the width.
	state [][]float64
	tmp   []float64
}

// New returns a Filter for the given coefficients. The denominator is
// renormalized if A[0] != 1; shorter of B/A is zero-padded so both tap
// sequences share one delay buffer.
func New(c design.Coefficients) *Filter {
	taps := max(len(c.B), len(c.A))
	if taps == 0 {
		taps = 1
	}

	b := make([]float64, taps)
	copy(b, c.B)

	a := make([]float64, taps)
	copy(a, c.A)

	if len(c.A) > 0 && a[0] != 1 && a[0] != 0 {
		inv := 1 / a[0]
		for i := range taps {
			b[i] *= inv
			a[i] *= inv
		}
	}

	return &Filter{b: b, a: a}
}

// Width returns the channel width established by the first sample, or 0
// while the filter is still uninitialized.
func (f *Filter) Width() int {
	if f.state == nil {
		return 0
	}

	return len(f.state[0])
}

// Reset discards the delay buffer. The next sample re-establishes the
// width.
func (f *Filter) Reset() {
	f.state = nil
	f.tmp = nil
}

// ProcessSample consumes one input sample and emits one output sample of
// the same width. A sample whose width differs from the first one fails
// with stream.ErrWidthMismatch; the filter must then be discarded.
func (f *Filter) ProcessSample(x stream.Sample) (stream.Sample, error) {
	width := len(x)

	if f.state == nil {
		f.state = make([][]float64, len(f.b))
		for i := range f.state {
			f.state[i] = make([]float64, width)
		}

		f.tmp = make([]float64, width)
	} else if got := len(f.state[0]); got != width {
		return nil, fmt.Errorf("%w: sample width %d, stream width %d",
			stream.ErrWidthMismatch, width, got)
	}

	taps := len(f.b)

	// Feedback combination into row 0, using the previous iteration's
	// delayed rows.
	v0 := f.state[0]
	copy(v0, x)

	for i := 1; i < taps; i++ {
		if f.a[i] == 0 {
			continue
		}

		vecmath.ScaleBlock(f.tmp, f.state[i], -f.a[i])
		vecmath.AddBlockInPlace(v0, f.tmp)
	}

	for j, v := range v0 {
		v0[j] = core.FlushDenormals(v)
	}

	// Feed-forward combination, before the shift.
	y := make(stream.Sample, width)

	for i := range taps {
		if f.b[i] == 0 {
			continue
		}

		vecmath.ScaleBlock(f.tmp, f.state[i], f.b[i])
		vecmath.AddBlockInPlace(y, f.tmp)
	}

	// Shift by rotating row headers: the old last row becomes the scratch
	// row 0 and is fully overwritten on the next call.
	spare := f.state[taps-1]
	for i := taps - 1; i > 0; i-- {
		f.state[i] = f.state[i-1]
	}
	f.state[0] = spare

	return y, nil
}

type filterStage struct {
	src stream.Stage
	f   *Filter
}

// NewStage wraps a Filter as a pull-based stage over src. End of stream
// and errors from upstream propagate unchanged.
func NewStage(src stream.Stage, f *Filter) stream.Stage {
	return &filterStage{src: src, f: f}
}

func (s *filterStage) Pull() (stream.Sample, error) {
	x, err := s.src.Pull()
	if err != nil {
		return nil, err
	}

	return s.f.ProcessSample(x)
}
