package stream

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

type absStage struct {
	src Stage
}

// Abs rectifies a stream elementwise: y[i] = |x[i]|. Stateless; output
// width equals input width. It never fails on its own account.
func Abs(src Stage) Stage {
	return &absStage{src: src}
}

func (a *absStage) Pull() (Sample, error) {
	x, err := a.src.Pull()
	if err != nil {
		return nil, err
	}

	y := make(Sample, len(x))
	for i, v := range x {
		y[i] = math.Abs(v)
	}

	return y, nil
}

type scaleStage struct {
	src  Stage
	gain float64
}

// Scale multiplies every element of the stream by gain.
func Scale(src Stage, gain float64) Stage {
	return &scaleStage{src: src, gain: gain}
}

func (s *scaleStage) Pull() (Sample, error) {
	x, err := s.src.Pull()
	if err != nil {
		return nil, err
	}

	y := make(Sample, len(x))
	vecmath.ScaleBlock(y, x, s.gain)

	return y, nil
}

type ratioStage struct {
	num Stage
	den Stage
}

// Ratio divides two synchronized streams elementwise, pulling one sample
// from each input per step. Division by zero follows IEEE-754 semantics:
// signed infinity or NaN flow downstream as ordinary values, never as
// errors, since the stage cannot validate denominators without consuming
// extra context. Inputs of differing widths fail with ErrWidthMismatch.
// The output ends when either input ends.
func Ratio(num, den Stage) Stage {
	return &ratioStage{num: num, den: den}
}

func (r *ratioStage) Pull() (Sample, error) {
	n, err := r.num.Pull()
	if err != nil {
		return nil, err
	}

	d, err := r.den.Pull()
	if err != nil {
		return nil, err
	}

	if len(n) != len(d) {
		return nil, fmt.Errorf("%w: numerator width %d, denominator width %d",
			ErrWidthMismatch, len(n), len(d))
	}

	y := make(Sample, len(n))
	for i := range n {
		y[i] = n[i] / d[i]
	}

	return y, nil
}
