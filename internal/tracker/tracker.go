package tracker

import (
	"math"
	"math/cmplx"

	"github.com/kbergen/pulseforge/internal/envelope"
)

// ChannelConfig is the static, per-channel configuration the tracker needs
// to turn a schedule-relative time into a sample index: carrier frequency,
// sample rate, output delay, alignment level, and the render length used
// for out-of-range pulse detection.
type ChannelConfig struct {
	F0         float64
	SampleRate float64
	Delay      float64
	AlignLevel int
	N          int
}

// State is the oscillator state for a single channel: carrier plus
// accumulated frequency/phase offsets, and the pulse list the channel has
// produced so far.
type State struct {
	cfg      ChannelConfig
	deltaF   float64
	phi      float64 // cycles
	pulses   *PulseList
	tol      mergeTolerance
	oversize bool
}

// NewState returns a fresh oscillator state for one channel.
func NewState(cfg ChannelConfig, ampTolerance, phaseTolerance float64) *State {
	return &State{
		cfg:    cfg,
		pulses: NewPulseList(),
		tol:    mergeTolerance{Amp: ampTolerance, Phase: phaseTolerance},
	}
}

// PulseList returns the pulses accumulated so far.
func (s *State) PulseList() *PulseList { return s.pulses }

// Oversize reports whether any Play on this channel landed entirely outside
// [0, N): the caller is expected to surface this as an Oversize error.
func (s *State) Oversize() bool { return s.oversize }

// ShiftPhase adds dphi (cycles) to the channel's phase offset. Time
// independent: it does not touch Δf·t + φ continuity because it carries no
// time argument.
func (s *State) ShiftPhase(dphi float64) { s.phi += dphi }

// SetPhase sets phi so that Δf·t + φ equals the given target phase (cycles)
// at time t, leaving Δf unchanged.
func (s *State) SetPhase(phi, t float64) { s.phi = phi - s.deltaF*t }

// setDeltaF changes the channel's frequency offset to newDeltaF at time t,
// adjusting phi so that Δf·t + φ is preserved across the change.
func (s *State) setDeltaF(newDeltaF, t float64) {
	s.phi += (s.deltaF - newDeltaF) * t
	s.deltaF = newDeltaF
}

// ShiftFreq lowers the channel's frequency offset by df (Hz) at time t
// (Δf ← Δf − df), preserving Δf·t + φ across the change.
func (s *State) ShiftFreq(df, t float64) { s.setDeltaF(s.deltaF-df, t) }

// SetFreq sets the channel's frequency offset to f (Hz) at time t,
// preserving Δf·t + φ across the change.
func (s *State) SetFreq(f, t float64) { s.setDeltaF(f, t) }

// Freq returns the channel's current effective oscillator frequency
// (carrier plus accumulated offset).
func (s *State) Freq() float64 { return s.cfg.F0 + s.deltaF }

// Phase returns the channel's current accumulated phase offset, in cycles.
func (s *State) Phase() float64 { return s.phi }

// SwapPhase exchanges the full carrier phases (f0+Δf)·t + φ of two channels
// at time t, by reassigning only φ on each side; Δf is left unchanged on
// both. It is a free function rather than a method since it mutates both
// sides.
func SwapPhase(a, b *State, t float64) {
	totalA := (a.cfg.F0+a.deltaF)*t + a.phi
	totalB := (b.cfg.F0+b.deltaF)*t + b.phi
	a.phi = totalB - (a.cfg.F0+a.deltaF)*t
	b.phi = totalA - (b.cfg.F0+b.deltaF)*t
}

// alignSnap snaps raw (a fractional sample index) to the nearest multiple
// of 2^alignLevel samples, rounding half to even.
func alignSnap(raw float64, alignLevel int) float64 {
	step := math.Pow(2, float64(alignLevel))
	return math.RoundToEven(raw/step) * step
}

// indexAt converts an absolute schedule time (seconds) into a start sample
// index and the sub-sample offset (in [0,1)) of the envelope cache key.
func (s *State) indexAt(t float64) (start int, offset float64) {
	iFrac := alignSnap((t+s.cfg.Delay)*s.cfg.SampleRate, s.cfg.AlignLevel)
	start = int(math.Ceil(iFrac))
	offset = float64(start) - iFrac
	return start, offset
}

// Play enqueues a pulse at absolute time t with the given envelope shape,
// width, plateau, phase offset phiP (cycles), amplitude amp, and DRAG
// coefficient. shapeID < 0 means rectangular.
func (s *State) Play(t float64, shapeID int, width, plateau, freqP, phiP, amp, dragCoef float64) {
	start, offset := s.indexAt(t)
	total := s.Freq()
	freq := total + freqP
	phi := total*t + s.phi + phiP
	gain := cmplx.Rect(amp, 2*math.Pi*phi)

	if width == 0 {
		length := int(math.Ceil(plateau*s.cfg.SampleRate)) + 1
		if start+length <= 0 || start >= s.cfg.N {
			s.oversize = true
			return
		}
		s.pulses.addPlateau(PlateauEntry{
			StartSample: start,
			Length:      length,
			Freq:        freq,
			Gain:        gain,
		}, s.tol)
		return
	}

	info := envelope.Info{
		ShapeID:     shapeID,
		Width:       width,
		Plateau:     plateau,
		IndexOffset: offset,
		SampleRate:  s.cfg.SampleRate,
	}
	length := info.Len()
	if start+length <= 0 || start >= s.cfg.N {
		s.oversize = true
		return
	}
	// drag_coef has units of seconds; the central-difference derivative used
	// downstream is per-sample, so fold in fs here to make the correction a
	// true time derivative (see numeric.MixAddDrag).
	dragGain := gain * complex(0, dragCoef*s.cfg.SampleRate)
	s.pulses.addShaped(info, PulseEntry{
		StartSample: start,
		Freq:        freq,
		Gain:        gain,
		DragGain:    dragGain,
	}, s.tol)
}

func gainsMergeable(a, b complex128, tol mergeTolerance) bool {
	ampA, phaseA := cmplx.Abs(a), cmplx.Phase(a)
	ampB, phaseB := cmplx.Abs(b), cmplx.Phase(b)
	if math.Abs(ampA-ampB) > tol.Amp {
		return false
	}
	// Phase difference wrapped into [-0.5, 0.5] cycles; tol.Phase is in cycles.
	dphase := math.Remainder(phaseA-phaseB, 2*math.Pi) / (2 * math.Pi)
	return math.Abs(dphase) <= tol.Phase
}
