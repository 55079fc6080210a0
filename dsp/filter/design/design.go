package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/openyou/emokitten/internal/polyroot"
)

// Type selects the filter response shape.
type Type int

const (
	// Lowpass passes frequencies below the single cutoff.
	Lowpass Type = iota

	// Highpass passes frequencies above the single cutoff.
	Highpass

	// Bandpass passes frequencies between the two cutoffs.
	Bandpass
)

// String returns the lowercase name of the filter type.
func (t Type) String() string {
	switch t {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ErrInvalidCutoff is returned when a cutoff does not normalize into the
// open interval (0, 1) against the Nyquist frequency, or when the cutoff
// count does not match the filter type.
var ErrInvalidCutoff = errors.New("design: invalid cutoff frequency")

// ErrIllConditioned is returned when a design produces non-finite
// coefficients or poles on or outside the unit circle. Callers must not
// proceed with such a filter.
var ErrIllConditioned = errors.New("design: ill-conditioned filter")

// stabilityMargin is the minimum distance a pole must keep from the unit
// circle before a design is rejected.
const stabilityMargin = 1e-7

// Coefficients holds the transfer function of a recursive filter as two
// polynomial tap sequences of equal length n+1, where n is the effective
// filter order. A is normalized so that A[0] == 1.
type Coefficients struct {
	B []float64 // feedforward (numerator)
	A []float64 // feedback (denominator)
}

// Order returns the effective polynomial order of the filter.
func (c Coefficients) Order() int {
	return len(c.A) - 1
}

// Butterworth designs a maximally-flat recursive filter.
//
// cutoffHz carries one frequency for Lowpass and Highpass, and a rising
// pair for Bandpass. Frequencies are normalized against nyquistHz and must
// fall strictly inside (0, nyquistHz). The returned coefficients have
// order+1 taps for Lowpass/Highpass and 2*order+1 taps for Bandpass.
//
// The function is pure: identical arguments yield identical coefficients.
func Butterworth(order int, cutoffHz []float64, typ Type, nyquistHz float64) (Coefficients, error) {
	wn, err := normalizeCutoffs(order, cutoffHz, typ, nyquistHz)
	if err != nil {
		return Coefficients{}, err
	}

	zeros, poles, gain := butterworthPrototype(order)

	// Pre-warp the band edges so the bilinear transform lands them exactly.
	warped := make([]float64, len(wn))
	for i, w := range wn {
		warped[i] = 2 * internalRate * math.Tan(math.Pi*w/2)
	}

	switch typ {
	case Lowpass:
		zeros, poles, gain = lowpassTransform(zeros, poles, gain, warped[0])
	case Highpass:
		zeros, poles, gain = highpassTransform(zeros, poles, gain, warped[0])
	case Bandpass:
		zeros, poles, gain = bandpassTransform(zeros, poles, gain, warped[0], warped[1])
	default:
		return Coefficients{}, fmt.Errorf("%w: unknown filter type %v", ErrInvalidCutoff, typ)
	}

	zeros, poles, gain = bilinear(zeros, poles, gain)

	b := polyFromRoots(zeros)
	for i := range b {
		b[i] *= gain
	}

	a := polyFromRoots(poles)

	coeffs := Coefficients{B: b, A: a}
	if err := validate(coeffs); err != nil {
		return Coefficients{}, err
	}

	return coeffs, nil
}

func normalizeCutoffs(order int, cutoffHz []float64, typ Type, nyquistHz float64) ([]float64, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: order %d, want >= 1", ErrInvalidCutoff, order)
	}

	if nyquistHz <= 0 || math.IsNaN(nyquistHz) || math.IsInf(nyquistHz, 0) {
		return nil, fmt.Errorf("%w: nyquist %v Hz", ErrInvalidCutoff, nyquistHz)
	}

	want := 1
	if typ == Bandpass {
		want = 2
	}

	if len(cutoffHz) != want {
		return nil, fmt.Errorf("%w: %s needs %d cutoff(s), got %d",
			ErrInvalidCutoff, typ, want, len(cutoffHz))
	}

	wn := make([]float64, len(cutoffHz))
	for i, f := range cutoffHz {
		w := f / nyquistHz
		if !(w > 0 && w < 1) {
			return nil, fmt.Errorf("%w: %v Hz normalizes to %v, want within (0, 1)",
				ErrInvalidCutoff, f, w)
		}

		wn[i] = w
	}

	if typ == Bandpass && wn[0] >= wn[1] {
		return nil, fmt.Errorf("%w: band edges %v Hz and %v Hz must rise",
			ErrInvalidCutoff, cutoffHz[0], cutoffHz[1])
	}

	return wn, nil
}

func validate(c Coefficients) error {
	for _, v := range c.B {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite feedforward coefficient", ErrIllConditioned)
		}
	}

	for _, v := range c.A {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite feedback coefficient", ErrIllConditioned)
		}
	}

	radius, err := polyroot.MaxRadius(c.A)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllConditioned, err)
	}

	if radius >= 1-stabilityMargin {
		return fmt.Errorf("%w: pole radius %.9f too close to the unit circle",
			ErrIllConditioned, radius)
	}

	return nil
}
