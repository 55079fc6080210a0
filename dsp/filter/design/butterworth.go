package design

import (
	"math"
	"math/cmplx"
)

// internalRate is the fixed sample rate the analog-side math is carried out
// against. Band edges are expressed as normalized fractions of Nyquist, so
// only the tan() pre-warp and the bilinear constant depend on it; the value
// cancels out of the final digital coefficients.
const internalRate = 2.0

// butterworthPrototype returns the poles of the normalized analog
// Butterworth lowpass prototype: evenly spaced on the left half of the unit
// circle, no finite zeros, unity gain.
func butterworthPrototype(order int) (zeros, poles []complex128, gain float64) {
	poles = make([]complex128, order)
	for k := range order {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		poles[k] = complex(-math.Sin(theta), math.Cos(theta))
	}

	return nil, poles, 1
}

// lowpassTransform moves the prototype cutoff from 1 rad/s to wo.
func lowpassTransform(zeros, poles []complex128, gain, wo float64) ([]complex128, []complex128, float64) {
	w := complex(wo, 0)

	z := make([]complex128, len(zeros))
	for i, r := range zeros {
		z[i] = r * w
	}

	p := make([]complex128, len(poles))
	for i, r := range poles {
		p[i] = r * w
	}

	gain *= math.Pow(wo, float64(len(poles)-len(zeros)))

	return z, p, gain
}

// highpassTransform inverts the prototype response about wo.
func highpassTransform(zeros, poles []complex128, gain, wo float64) ([]complex128, []complex128, float64) {
	w := complex(wo, 0)
	relDegree := len(poles) - len(zeros)

	z := make([]complex128, 0, len(zeros)+relDegree)
	for _, r := range zeros {
		z = append(z, w/r)
	}

	p := make([]complex128, len(poles))
	for i, r := range poles {
		p[i] = w / r
	}

	// s -> wo/s maps the gain by prod(-z)/prod(-p).
	num := complex(1, 0)
	for _, r := range zeros {
		num *= -r
	}

	den := complex(1, 0)
	for _, r := range poles {
		den *= -r
	}

	gain *= real(num / den)

	// The inversion leaves relDegree zeros at the origin.
	for range relDegree {
		z = append(z, 0)
	}

	return z, p, gain
}

// bandpassTransform expands the prototype passband to [w1, w2], doubling
// the pole count.
func bandpassTransform(zeros, poles []complex128, gain, w1, w2 float64) ([]complex128, []complex128, float64) {
	bw := w2 - w1
	wo := math.Sqrt(w1 * w2)
	relDegree := len(poles) - len(zeros)

	split := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		for _, r := range roots {
			s := r * complex(bw/2, 0)
			d := cmplx.Sqrt(s*s - complex(wo*wo, 0))
			out = append(out, s+d, s-d)
		}

		return out
	}

	z := split(zeros)
	p := split(poles)

	for range relDegree {
		z = append(z, 0)
	}

	gain *= math.Pow(bw, float64(relDegree))

	return z, p, gain
}

// bilinear maps analog zeros, poles and gain into the z-domain via the
// bilinear transform s -> 2*fs*(z-1)/(z+1). Excess poles contribute zeros
// at z = -1 so that numerator and denominator end up with equal degree.
func bilinear(zeros, poles []complex128, gain float64) ([]complex128, []complex128, float64) {
	fs2 := complex(2*internalRate, 0)
	relDegree := len(poles) - len(zeros)

	z := make([]complex128, 0, len(poles))
	num := complex(1, 0)
	for _, r := range zeros {
		z = append(z, (fs2+r)/(fs2-r))
		num *= fs2 - r
	}

	p := make([]complex128, len(poles))
	den := complex(1, 0)
	for i, r := range poles {
		p[i] = (fs2 + r) / (fs2 - r)
		den *= fs2 - r
	}

	for range relDegree {
		z = append(z, -1)
	}

	gain *= real(num / den)

	return z, p, gain
}

// polyFromRoots expands a set of roots into monic real polynomial
// coefficients in descending power order. Roots are expected to be real or
// to occur in conjugate pairs; residual imaginary parts from rounding are
// discarded.
func polyFromRoots(roots []complex128) []float64 {
	poly := make([]complex128, 1, len(roots)+1)
	poly[0] = 1

	for _, r := range roots {
		next := make([]complex128, len(poly)+1)
		for i, c := range poly {
			next[i] += c
			next[i+1] -= c * r
		}

		poly = next
	}

	out := make([]float64, len(poly))
	for i, c := range poly {
		out[i] = real(c)
	}

	return out
}
