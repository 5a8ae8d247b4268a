package numeric

import "math"

// BiquadCoeffs holds one direct-form II transposed biquad section's
// coefficients, already normalized so a0 = 1 (the b0/b1/b2/a1/a2 form most
// filter design formulas emit).
type BiquadCoeffs struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// biquadState is the two-element state carried between samples by one
// section, independently per real axis (I and Q are filtered as two
// unrelated real signals, matching spec.md's "over real axes
// independently").
type biquadState struct {
	s0, s1 float64
}

func (st *biquadState) step(c BiquadCoeffs, x float64) float64 {
	y := c.B0*x + st.s0
	st.s0 = c.B1*x + st.s1 - c.A1*y
	st.s1 = c.B2*x - c.A2*y
	return y
}

// BiquadCascade applies a sequence of biquad sections in series to a
// buffer's I and Q channels independently, in place.
type BiquadCascade struct {
	Sections []BiquadCoeffs
}

// Apply runs the cascade over buf in place.
func (c *BiquadCascade) Apply(buf *Buffer) {
	if c == nil || len(c.Sections) == 0 {
		return
	}
	stateI := make([]biquadState, len(c.Sections))
	stateQ := make([]biquadState, len(c.Sections))
	for k := range buf.I {
		vi := buf.I[k]
		for si, sec := range c.Sections {
			vi = stateI[si].step(sec, vi)
		}
		buf.I[k] = vi
		if !buf.RealOnly {
			vq := buf.Q[k]
			for si, sec := range c.Sections {
				vq = stateQ[si].step(sec, vq)
			}
			buf.Q[k] = vq
		}
	}
}

// FIR applies a linear convolution with taps to buf's I and Q channels
// independently, in place, using a causal (zero-history-prefixed)
// convolution so the output has the same length as the input.
type FIR struct {
	Taps []float64
}

// Apply runs the FIR filter over buf in place.
func (f *FIR) Apply(buf *Buffer) {
	if f == nil || len(f.Taps) == 0 {
		return
	}
	buf.I = convolveSame(buf.I, f.Taps)
	if !buf.RealOnly {
		buf.Q = convolveSame(buf.Q, f.Taps)
	}
}

func convolveSame(x, taps []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for t, tap := range taps {
			j := i - t
			if j < 0 {
				continue
			}
			acc += tap * x[j]
		}
		out[i] = acc
	}
	return out
}

// Delay applies an integer-sample shift to buf in place: positive delay
// shifts samples toward higher indices, zero-filling the head. Sub-sample
// delay is reserved (per spec) but not implemented.
func Delay(buf *Buffer, delaySeconds, sampleRate float64) {
	shift := int(math.Round(delaySeconds * sampleRate))
	if shift == 0 {
		return
	}
	n := buf.Len()
	if shift >= n || shift <= -n {
		buf.Zero()
		return
	}
	shiftReal(buf.I, shift)
	if !buf.RealOnly {
		shiftReal(buf.Q, shift)
	}
}

func shiftReal(x []float64, shift int) {
	n := len(x)
	if shift > 0 {
		for i := n - 1; i >= shift; i-- {
			x[i] = x[i-shift]
		}
		for i := 0; i < shift && i < n; i++ {
			x[i] = 0
		}
	} else {
		shift = -shift
		for i := 0; i < n-shift; i++ {
			x[i] = x[i+shift]
		}
		for i := n - shift; i < n; i++ {
			x[i] = 0
		}
	}
}
