package numeric

import "math"

// phasorStep returns the per-sample rotation (cos, sin) for a normalized
// angular increment dphi (cycles/sample) so the inner loops below can
// advance a running phasor by one complex multiply per sample instead of
// calling math.Sin/math.Cos per sample.
func phasorStep(dphi float64) (cosStep, sinStep float64) {
	theta := 2 * math.Pi * dphi
	return math.Cos(theta), math.Sin(theta)
}

// clampRange clips [start, start+n) to the valid index range of a length-N
// buffer, returning the portion that actually overlaps. Writes outside
// [0, N) are silently dropped per spec.
func clampRange(start, n, bufLen int) (s, e int) {
	s = start
	e = start + n
	if s < 0 {
		s = 0
	}
	if e > bufLen {
		e = bufLen
	}
	if e < s {
		e = s
	}
	return s, e
}

// MixAddPlateau adds gain*exp(i*2*pi*dphi*k) to target[start:start+n],
// where k is the sample offset from start (not from 0), clipped to the
// buffer. Used for the constant (plateau) region of a composite envelope.
func MixAddPlateau(target *Buffer, start, n int, gain complex128, dphi float64) {
	s, e := clampRange(start, n, target.Len())
	if s >= e {
		return
	}
	cosStep, sinStep := phasorStep(dphi)
	// Advance the phasor to the first clipped sample before the main loop.
	pr, pi := 1.0, 0.0
	for k := start; k < s; k++ {
		pr, pi = pr*cosStep-pi*sinStep, pr*sinStep+pi*cosStep
	}
	gr, gi := real(gain), imag(gain)
	realOnly := target.RealOnly
	for i := s; i < e; i++ {
		cr := gr*pr - gi*pi
		ci := gr*pi + gi*pr
		target.I[i] += cr
		target.Q[i] += ci
		if ci != 0 {
			realOnly = false
		}
		pr, pi = pr*cosStep-pi*sinStep, pr*sinStep+pi*cosStep
	}
	target.RealOnly = realOnly
}

// MixAdd adds source[k]*gain*exp(i*2*pi*dphi*k) to target at offset start,
// for k in [0, len(source)), clipped to the target buffer.
func MixAdd(target *Buffer, start int, source *Buffer, gain complex128, dphi float64) {
	mixAddWeighted(target, start, source, gain, 0, dphi, nil)
}

// MixAddDrag adds (source[k]*gain + deriv(source)[k]*dragGain) *
// exp(i*2*pi*dphi*k) to target at offset start. deriv is the central
// difference of source (forward/backward at the ends, step = 1 sample).
// dragGain already folds in the caller's drag_coef scaled by fs (drag_coef
// has units of seconds; the derivative below is per-sample, not per-second).
func MixAddDrag(target *Buffer, start int, source *Buffer, gain, dragGain complex128, dphi float64) {
	if dragGain == 0 {
		MixAdd(target, start, source, gain, dphi)
		return
	}
	deriv := centralDifference(source)
	mixAddWeighted(target, start, source, gain, dragGain, dphi, deriv)
}

// mixAddWeighted is the shared core of MixAdd/MixAddDrag: it walks source
// (and, if non-nil, deriv) in lockstep with an incrementally rotated
// phasor, writing into target at the clipped overlap with [start,
// start+len(source)).
func mixAddWeighted(target *Buffer, start int, source *Buffer, gain, dragGain complex128, dphi float64, deriv []float64) {
	n := source.Len()
	s, e := clampRange(start, n, target.Len())
	if s >= e {
		return
	}
	cosStep, sinStep := phasorStep(dphi)
	pr, pi := 1.0, 0.0
	for k := start; k < s; k++ {
		pr, pi = pr*cosStep-pi*sinStep, pr*sinStep+pi*cosStep
	}
	gr, gi := real(gain), imag(gain)
	dgr, dgi := real(dragGain), imag(dragGain)
	realOnly := target.RealOnly
	for i := s; i < e; i++ {
		k := i - start
		sv := source.I[k] // envelopes are real-valued by construction
		var vr, vi float64
		vr = sv * gr
		vi = sv * gi
		if deriv != nil {
			dv := deriv[k]
			vr += dv * dgr
			vi += dv * dgi
		}
		cr := vr*pr - vi*pi
		ci := vr*pi + vi*pr
		target.I[i] += cr
		target.Q[i] += ci
		if ci != 0 {
			realOnly = false
		}
		pr, pi = pr*cosStep-pi*sinStep, pr*sinStep+pi*cosStep
	}
	target.RealOnly = realOnly
}

// centralDifference returns the derivative of source.I scaled by the
// sample step (1 sample), using central differences in the interior and
// one-sided differences at the ends.
func centralDifference(source *Buffer) []float64 {
	n := source.Len()
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		return out
	}
	out[0] = source.I[1] - source.I[0]
	out[n-1] = source.I[n-1] - source.I[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (source.I[i+1] - source.I[i-1]) / 2
	}
	return out
}

// IqTransform applies an affine 2x2 calibration plus DC offset to buf
// in place: I' = a*I + b*Q + iOff, Q' = c*I + d*Q + qOff.
func IqTransform(buf *Buffer, a, b, c, d, iOff, qOff float64) {
	for k := range buf.I {
		i, q := buf.I[k], buf.Q[k]
		buf.I[k] = a*i + b*q + iOff
		buf.Q[k] = c*i + d*q + qOff
	}
	buf.RealOnly = false
}

// LinearInterp evaluates the piecewise-linear function defined by xs/ys
// (xs strictly increasing) at u, saturating at the boundary values outside
// the table's domain.
func LinearInterp(xs, ys []float64, u float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if n == 1 || u <= xs[0] {
		return ys[0]
	}
	if u >= xs[n-1] {
		return ys[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= u {
			lo = mid
		} else {
			hi = mid
		}
	}
	x0, x1 := xs[lo], xs[hi]
	y0, y1 := ys[lo], ys[hi]
	if x1 == x0 {
		return y0
	}
	t := (u - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}
