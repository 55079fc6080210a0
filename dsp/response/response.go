// Package response computes the magnitude frequency response of a designed
// filter from its impulse response. It backs the filterinfo diagnostics
// command; the streaming pipeline itself never touches the frequency
// domain.
package response

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/openyou/emokitten/dsp/filter/design"
	"github.com/openyou/emokitten/dsp/filter/iir"
	"github.com/openyou/emokitten/dsp/stream"
)

// NextPow2 returns the smallest power of two >= n (minimum 2).
func NextPow2(n int) int {
	size := 2
	for size < n {
		size *= 2
	}

	return size
}

// Magnitude returns |H| over the non-negative frequency bins of an
// FFT of the filter's impulse response, truncated to NextPow2(n) points.
// The result has NextPow2(n)/2+1 entries; bin i corresponds to frequency
// i*sampleRate/NextPow2(n).
//
// The truncation is accurate as long as the impulse response has decayed
// within the window, which holds for any comfortably stable design when n
// spans a few filter time constants.
func Magnitude(c design.Coefficients, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("response: %d points, want >= 2", n)
	}

	size := NextPow2(n)

	f := iir.New(c)
	in := make([]complex128, size)
	x := stream.Sample{0}

	for i := range size {
		x[0] = 0
		if i == 0 {
			x[0] = 1
		}

		y, err := f.ProcessSample(x)
		if err != nil {
			return nil, fmt.Errorf("response: impulse response: %w", err)
		}

		in[i] = complex(y[0], 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	half := size/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for i := range half {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}
