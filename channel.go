package pulseforge

import "math"

// Channel is one output channel's static configuration (§3): carrier
// frequency, sample rate, output length, delay, alignment grid, and the
// optional IQ calibration and biquad+FIR filter chain applied after
// sampling. Immutable once a run starts.
type Channel struct {
	Name       string
	F0         float64 // carrier frequency, Hz
	SampleRate float64 // Hz
	N          int     // output length, samples
	Delay      float64 // seconds
	AlignLevel int     // grid snap = 2^AlignLevel samples

	Calibration *Calibration
	Biquads     []BiquadSection
	FIRTaps     []float64
}

// Calibration is the optional 2x2 affine IQ transform plus DC offsets
// applied to a channel's samples after filtering (§4.6 step 7).
type Calibration struct {
	A, B, C, D float64
	IOffset    float64
	QOffset    float64
}

// BiquadSection is one direct-form II transposed biquad stage, already
// normalized so a0 = 1.
type BiquadSection struct {
	B0, B1, B2 float64
	A1, A2     float64
}

func (c Channel) validate(index int) error {
	if c.SampleRate <= 0 || math.IsInf(c.SampleRate, 0) || math.IsNaN(c.SampleRate) {
		return newErr(InvalidArgument, "Channel", "channel %d (%q): sample rate must be positive and finite, got %g", index, c.Name, c.SampleRate)
	}
	if c.N < 0 {
		return newErr(InvalidArgument, "Channel", "channel %d (%q): N must be non-negative, got %d", index, c.Name, c.N)
	}
	if c.Delay < 0 || math.IsInf(c.Delay, 0) || math.IsNaN(c.Delay) {
		return newErr(InvalidArgument, "Channel", "channel %d (%q): delay must be finite and non-negative, got %g", index, c.Name, c.Delay)
	}
	if math.IsNaN(c.F0) || math.IsInf(c.F0, 0) {
		return newErr(InvalidArgument, "Channel", "channel %d (%q): f0 must be finite, got %g", index, c.Name, c.F0)
	}
	return nil
}
