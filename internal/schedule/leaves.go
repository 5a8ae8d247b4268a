package schedule

import (
	"math"

	"github.com/kbergen/pulseforge/internal/pferr"
)

// Play schedules one pulse on a channel: a shape+width+plateau envelope, a
// frequency/phase offset applied on top of the channel's oscillator state,
// an amplitude, and a DRAG coefficient. When flexible is true the plateau
// stretches to fill whatever duration the layout gives it; otherwise the
// node's duration is always width+plateau.
type Play struct {
	*Base
	channel                    int
	shapeID                    int
	width, plateau             float64
	freqP, phiP, amp, dragCoef float64
	flexible                   bool
	renderedPlateau            float64
}

// NewPlay constructs a Play leaf. shapeID < 0 means rectangular (no shape).
func NewPlay(channel, shapeID int, width, plateau, freqP, phiP, amp, dragCoef float64, flexible bool, opts ...Option) (*Play, error) {
	if width < 0 || math.IsInf(width, 0) || math.IsNaN(width) {
		return nil, pferr.New(pferr.InvalidArgument, "Play", "width must be finite and non-negative, got %g", width)
	}
	if plateau < 0 || math.IsInf(plateau, 0) || math.IsNaN(plateau) {
		return nil, pferr.New(pferr.InvalidArgument, "Play", "plateau must be finite and non-negative, got %g", plateau)
	}
	p := &Play{
		channel: channel, shapeID: shapeID, width: width, plateau: plateau,
		freqP: freqP, phiP: phiP, amp: amp, dragCoef: dragCoef, flexible: flexible,
	}
	attrs := DefaultAttrs()
	if flexible {
		// A flexible Play's whole point is to absorb whatever final
		// duration it's given into its plateau; default it to stretch so
		// that happens without every caller having to ask for it.
		attrs.Alignment = AlignStretch
	}
	p.Base = NewBase(p, applyOptions(attrs, opts), "Play")
	return p, nil
}

func (p *Play) measureOverride(available float64) (float64, error) {
	if p.flexible {
		return p.width, nil
	}
	return p.width + p.plateau, nil
}

func (p *Play) arrangeOverride(ctx ArrangeContext, time, duration float64) (float64, error) {
	if p.flexible {
		p.renderedPlateau = duration - p.width
		if p.renderedPlateau < 0 {
			p.renderedPlateau = 0
		}
		return duration, nil
	}
	p.renderedPlateau = p.plateau
	return p.width + p.plateau, nil
}

func (p *Play) renderOverride(time float64, r Renderer) error {
	r.Play(p.channel, p.shapeID, p.width, p.renderedPlateau, p.freqP, p.phiP, p.amp, p.dragCoef, time)
	return nil
}

func (p *Play) channels() map[int]bool { return map[int]bool{p.channel: true} }

// Channel returns the channel id this Play targets.
func (p *Play) Channel() int { return p.channel }

// ShapeID returns the envelope shape id this Play references, or a
// negative value for rectangular.
func (p *Play) ShapeID() int { return p.shapeID }

// zeroLeaf implements the shared measure/arrange behavior ("zero duration")
// of every non-Play leaf; concrete leaves only need renderOverride and
// channels().
type zeroLeaf struct{}

func (zeroLeaf) measureOverride(float64) (float64, error) { return 0, nil }
func (zeroLeaf) arrangeOverride(ArrangeContext, float64, float64) (float64, error) {
	return 0, nil
}

// ShiftPhase adds dphi (cycles) to a channel's phase offset at render time.
type ShiftPhase struct {
	*Base
	zeroLeaf
	channel int
	dphi    float64
}

func NewShiftPhase(channel int, dphi float64, opts ...Option) *ShiftPhase {
	s := &ShiftPhase{channel: channel, dphi: dphi}
	s.Base = NewBase(s, applyOptions(DefaultAttrs(), opts), "ShiftPhase")
	return s
}
func (s *ShiftPhase) renderOverride(time float64, r Renderer) error {
	r.ShiftPhase(s.channel, s.dphi)
	return nil
}
func (s *ShiftPhase) channels() map[int]bool { return map[int]bool{s.channel: true} }

// SetPhase sets a channel's phase so that Δf·t + φ equals phi at render time.
type SetPhase struct {
	*Base
	zeroLeaf
	channel int
	phi     float64
}

func NewSetPhase(channel int, phi float64, opts ...Option) *SetPhase {
	s := &SetPhase{channel: channel, phi: phi}
	s.Base = NewBase(s, applyOptions(DefaultAttrs(), opts), "SetPhase")
	return s
}
func (s *SetPhase) renderOverride(time float64, r Renderer) error {
	r.SetPhase(s.channel, s.phi, time)
	return nil
}
func (s *SetPhase) channels() map[int]bool { return map[int]bool{s.channel: true} }

// ShiftFreq lowers a channel's frequency offset by df (Hz) at render time
// (Δf ← Δf − df).
type ShiftFreq struct {
	*Base
	zeroLeaf
	channel int
	df      float64
}

func NewShiftFreq(channel int, df float64, opts ...Option) *ShiftFreq {
	s := &ShiftFreq{channel: channel, df: df}
	s.Base = NewBase(s, applyOptions(DefaultAttrs(), opts), "ShiftFreq")
	return s
}
func (s *ShiftFreq) renderOverride(time float64, r Renderer) error {
	r.ShiftFreq(s.channel, s.df, time)
	return nil
}
func (s *ShiftFreq) channels() map[int]bool { return map[int]bool{s.channel: true} }

// SetFreq sets a channel's frequency offset to f (Hz) at render time.
type SetFreq struct {
	*Base
	zeroLeaf
	channel int
	f       float64
}

func NewSetFreq(channel int, f float64, opts ...Option) *SetFreq {
	s := &SetFreq{channel: channel, f: f}
	s.Base = NewBase(s, applyOptions(DefaultAttrs(), opts), "SetFreq")
	return s
}
func (s *SetFreq) renderOverride(time float64, r Renderer) error {
	r.SetFreq(s.channel, s.f, time)
	return nil
}
func (s *SetFreq) channels() map[int]bool { return map[int]bool{s.channel: true} }

// SwapPhase exchanges the carrier phase of two channels at render time.
type SwapPhase struct {
	*Base
	zeroLeaf
	ch1, ch2 int
}

func NewSwapPhase(ch1, ch2 int, opts ...Option) *SwapPhase {
	s := &SwapPhase{ch1: ch1, ch2: ch2}
	s.Base = NewBase(s, applyOptions(DefaultAttrs(), opts), "SwapPhase")
	return s
}
func (s *SwapPhase) renderOverride(time float64, r Renderer) error {
	r.SwapPhase(s.ch1, s.ch2, time)
	return nil
}
func (s *SwapPhase) channels() map[int]bool { return map[int]bool{s.ch1: true, s.ch2: true} }

// Barrier synchronizes every channel touched so far in its enclosing Stack
// to the furthest point reached; it carries no channels of its own, which
// is what a Stack reads as "sync everything" (§4.1).
type Barrier struct {
	*Base
	zeroLeaf
}

func NewBarrier(opts ...Option) *Barrier {
	b := &Barrier{}
	b.Base = NewBase(b, applyOptions(DefaultAttrs(), opts), "Barrier")
	return b
}
func (b *Barrier) renderOverride(time float64, r Renderer) error { return nil }
func (b *Barrier) channels() map[int]bool                        { return map[int]bool{} }
