package pulseforge

import (
	"math"

	"github.com/kbergen/pulseforge/internal/envelope"
	"github.com/kbergen/pulseforge/internal/numeric"
	"github.com/kbergen/pulseforge/internal/postprocess"
	"github.com/kbergen/pulseforge/internal/schedule"
	"github.com/kbergen/pulseforge/internal/tracker"
)

// Waveform is one channel's rendered output: parallel I and Q real arrays,
// each of length equal to the channel's N.
type Waveform struct {
	I, Q []float64
}

// Run compiles req's schedule tree into sampled I/Q waveforms, one per
// channel (§4.6): validate, measure/arrange/render the tree against a
// tracker, then sample, filter, and calibrate each channel's accumulated
// pulse list.
func Run(req Request) (map[string]Waveform, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	desired, err := req.Root.Measure(math.Inf(1))
	if err != nil {
		return nil, err
	}

	opts := req.Options
	ctx := schedule.ArrangeContext{TimeTolerance: opts.TimeTolerance, AllowOversize: opts.AllowOversize}
	if err := req.Root.Arrange(ctx, 0, desired); err != nil {
		return nil, err
	}

	cfgs := make(map[int]tracker.ChannelConfig, len(req.Channels))
	for i, c := range req.Channels {
		cfgs[i] = tracker.ChannelConfig{
			F0:         c.F0,
			SampleRate: c.SampleRate,
			Delay:      c.Delay,
			AlignLevel: c.AlignLevel,
			N:          c.N,
		}
	}
	trk := tracker.NewTracker(cfgs, opts.AmpTolerance, opts.PhaseTolerance)

	if err := req.Root.Render(0, trk); err != nil {
		return nil, err
	}
	if err := trk.Err(); err != nil {
		return nil, err
	}
	if trk.Oversize() && !opts.AllowOversize {
		return nil, newErr(Oversize, "Run", "one or more Play instructions landed entirely outside their channel's sample range")
	}

	cache := envelope.NewCache(shapeTable{shapes: req.Shapes})
	pool := numeric.NewPool()

	out := make(map[string]Waveform, len(req.Channels))
	for i, c := range req.Channels {
		state, _ := trk.State(i)
		buf, err := renderChannel(c, state.PulseList(), cache, pool)
		if err != nil {
			return nil, err
		}
		out[c.Name] = Waveform{I: buf.I, Q: buf.Q}
	}
	return out, nil
}

// renderChannel builds and evaluates the post-process graph for one
// channel: Source -> [biquads + FIR] -> optional Calibration. The
// channel's delay is applied earlier, in the tracker's pulse-index math.
func renderChannel(c Channel, pulses *tracker.PulseList, cache *envelope.Cache, pool *numeric.Pool) (*numeric.Buffer, error) {
	src := &postprocess.Source{
		Pulses:     pulses,
		Cache:      cache,
		SampleRate: c.SampleRate,
		N:          c.N,
	}

	chain := postprocess.NewChain()
	if len(c.Biquads) > 0 || len(c.FIRTaps) > 0 {
		cascade := &numeric.BiquadCascade{Sections: toBiquadCoeffs(c.Biquads)}
		fir := &numeric.FIR{Taps: c.FIRTaps}
		chain.Add(&postprocess.FilterNode{Cascade: cascade, FIR: fir})
	}
	// Delay is already folded into each pulse's start index by
	// State.indexAt (§3: i_frac_start = align_ceil((t_start + delay)*fs)),
	// so no DelayNode runs here; adding one would shift the buffer a
	// second time.
	if c.Calibration != nil {
		cal := c.Calibration
		chain.Add(&postprocess.CalibrationNode{A: cal.A, B: cal.B, C: cal.C, D: cal.D, IOff: cal.IOffset, QOff: cal.QOffset})
	}

	return postprocess.Evaluate(src, chain, pool)
}

func toBiquadCoeffs(secs []BiquadSection) []numeric.BiquadCoeffs {
	out := make([]numeric.BiquadCoeffs, len(secs))
	for i, s := range secs {
		out[i] = numeric.BiquadCoeffs{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2}
	}
	return out
}
