// Package postprocess turns a channel's pulse list into its final sampled
// buffer: source -> filter -> (optional calibration) -> sink (§4.5), with a
// DelayNode available as an extra integer-sample shift stage, built the same way the teacher composes effects.Effector stages
// into an effects.Chain, generalized from frame-at-a-time stereo processing
// to whole-buffer block processing since a run's full waveform length is
// known up front.
package postprocess

import (
	"github.com/kbergen/pulseforge/internal/envelope"
	"github.com/kbergen/pulseforge/internal/numeric"
	"github.com/kbergen/pulseforge/internal/tracker"
)

// Node processes a sample buffer in place.
type Node interface {
	Run(buf *numeric.Buffer) error
}

// Chain applies a sequence of Nodes in order, mirroring effects.Chain.
type Chain struct {
	nodes []Node
}

// NewChain builds a Chain over the given nodes, in order.
func NewChain(nodes ...Node) *Chain { return &Chain{nodes: nodes} }

// Add appends n to the end of the chain.
func (c *Chain) Add(n Node) { c.nodes = append(c.nodes, n) }

// Run applies every node in order, stopping at the first error.
func (c *Chain) Run(buf *numeric.Buffer) error {
	for _, n := range c.nodes {
		if err := n.Run(buf); err != nil {
			return err
		}
	}
	return nil
}

// Source samples one channel's accumulated pulse list into a fresh buffer:
// for each EnvelopeInfo bucket, the cached envelope is fetched once and
// every pulse in that bucket is mixed in via MixAddDrag; plateau entries
// (degenerate width=0 pulses) go straight through MixAddPlateau without
// touching the envelope cache, per §4.5.
type Source struct {
	Pulses     *tracker.PulseList
	Cache      *envelope.Cache
	SampleRate float64
	N          int
}

// Sample renders the source into a freshly rented buffer of length N. The
// caller owns the returned buffer and must return it to pool when done.
func (s *Source) Sample(pool *numeric.Pool) *numeric.Buffer {
	buf := pool.Rent(s.N)
	for info, entries := range s.Pulses.Entries {
		env := s.Cache.Get(info)
		envBuf := &numeric.Buffer{I: env, Q: make([]float64, len(env)), RealOnly: true}
		for _, e := range entries {
			dphi := e.Freq / s.SampleRate
			numeric.MixAddDrag(buf, e.StartSample, envBuf, e.Gain, e.DragGain, dphi)
		}
	}
	for _, p := range s.Pulses.Plateaus {
		dphi := p.Freq / s.SampleRate
		numeric.MixAddPlateau(buf, p.StartSample, p.Length, p.Gain, dphi)
	}
	return buf
}

// FilterNode applies a channel's biquad cascade followed by its FIR taps.
// A nil Cascade or FIR is a no-op (both guard nil receivers), matching a
// channel that configured neither.
type FilterNode struct {
	Cascade *numeric.BiquadCascade
	FIR     *numeric.FIR
}

func (f *FilterNode) Run(buf *numeric.Buffer) error {
	f.Cascade.Apply(buf)
	f.FIR.Apply(buf)
	return nil
}

// DelayNode shifts the buffer by round(DelaySeconds*SampleRate) samples.
// renderChannel does not add one: the channel delay enters through each
// pulse's start index instead.
type DelayNode struct {
	DelaySeconds float64
	SampleRate   float64
}

func (d *DelayNode) Run(buf *numeric.Buffer) error {
	numeric.Delay(buf, d.DelaySeconds, d.SampleRate)
	return nil
}

// CalibrationNode applies a channel's affine IQ calibration, if configured.
type CalibrationNode struct {
	A, B, C, D float64
	IOff, QOff float64
}

func (c *CalibrationNode) Run(buf *numeric.Buffer) error {
	numeric.IqTransform(buf, c.A, c.B, c.C, c.D, c.IOff, c.QOff)
	return nil
}

// Evaluate samples src and runs the result through chain, returning the
// final buffer. On error the rented buffer is returned to pool before the
// error propagates, matching the teacher's Chain.Reset() sweep on every
// exit path.
func Evaluate(src *Source, chain *Chain, pool *numeric.Pool) (*numeric.Buffer, error) {
	buf := src.Sample(pool)
	if err := chain.Run(buf); err != nil {
		pool.Return(buf)
		return nil, err
	}
	return buf, nil
}
