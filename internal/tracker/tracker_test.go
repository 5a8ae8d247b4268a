package tracker

import (
	"math"
	"math/cmplx"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %f, want %f (tol %f)", msg, got, want, tol)
	}
}

func testCfg() ChannelConfig {
	return ChannelConfig{F0: 0, SampleRate: 1e9, Delay: 0, AlignLevel: 0, N: 10_000}
}

func TestPlayOnCarrierProducesRealGain(t *testing.T) {
	s := NewState(testCfg(), 1e-6, 1e-6)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 1, 0)
	var entry PulseEntry
	for _, bucket := range s.pulses.Entries {
		entry = bucket[0]
	}
	approxEqual(t, real(entry.Gain), 1, 1e-9, "on-carrier real gain")
	approxEqual(t, imag(entry.Gain), 0, 1e-9, "on-carrier imag gain")
}

func TestShiftPhaseRotatesGainByQuarterTurn(t *testing.T) {
	s := NewState(testCfg(), 1e-6, 1e-6)
	s.ShiftPhase(0.25) // +90 degrees
	s.Play(0, -1, 0, 10e-9, 0, 0, 1, 0)
	entry := s.pulses.Plateaus[0]
	approxEqual(t, real(entry.Gain), 0, 1e-9, "shifted real part")
	approxEqual(t, imag(entry.Gain), 1, 1e-9, "shifted imag part")
}

func TestSwapPhaseExchangesCarrierPhaseAtTimeLeavingDeltaFUnchanged(t *testing.T) {
	cfgA := testCfg()
	cfgA.F0 = 100e6
	cfgB := testCfg()
	cfgB.F0 = 250e6
	a := NewState(cfgA, 1e-6, 1e-6)
	b := NewState(cfgB, 1e-6, 1e-6)
	const t0 = 600e-9
	a.ShiftPhase(0.1)
	b.ShiftPhase(0.2)
	totalABefore := (a.cfg.F0+a.deltaF)*t0 + a.Phase()
	totalBBefore := (b.cfg.F0+b.deltaF)*t0 + b.Phase()

	SwapPhase(a, b, t0)

	totalAAfter := (a.cfg.F0+a.deltaF)*t0 + a.Phase()
	totalBAfter := (b.cfg.F0+b.deltaF)*t0 + b.Phase()
	approxEqual(t, totalAAfter, totalBBefore, 1e-9, "a's carrier phase after swap should equal b's before")
	approxEqual(t, totalBAfter, totalABefore, 1e-9, "b's carrier phase after swap should equal a's before")
	approxEqual(t, a.deltaF, 0, 1e-9, "a's delta-f must be unchanged by swap")
	approxEqual(t, b.deltaF, 0, 1e-9, "b's delta-f must be unchanged by swap")
}

func TestShiftFreqPreservesDeltaFTimesTPlusPhi(t *testing.T) {
	cfg := testCfg()
	cfg.F0 = 1e6
	s := NewState(cfg, 1e-6, 1e-6)
	const t0 = 200e-9
	before := s.deltaF*t0 + s.Phase()
	s.ShiftFreq(500e3, t0)
	after := s.deltaF*t0 + s.Phase()
	approxEqual(t, after, before, 1e-9, "Δf·t+φ must be preserved across ShiftFreq")
	approxEqual(t, s.deltaF, -500e3, 1e-6, "ShiftFreq(δf) sets Δf -= δf per spec")
}

func TestSetFreqPreservesDeltaFTimesTPlusPhi(t *testing.T) {
	cfg := testCfg()
	cfg.F0 = 1e6
	s := NewState(cfg, 1e-6, 1e-6)
	const t0 = 200e-9
	before := s.deltaF*t0 + s.Phase()
	s.SetFreq(2e6, t0)
	after := s.deltaF*t0 + s.Phase()
	approxEqual(t, after, before, 1e-9, "Δf·t+φ must be preserved across SetFreq")
	approxEqual(t, s.deltaF, 2e6, 1e-6, "SetFreq sets Δf directly")
}

func TestSetPhaseTargetsDeltaFTimesTPlusPhi(t *testing.T) {
	s := NewState(testCfg(), 1e-6, 1e-6)
	s.SetFreq(1e6, 0)
	const t0 = 100e-9
	s.SetPhase(0.3, t0)
	got := s.deltaF*t0 + s.Phase()
	approxEqual(t, got, 0.3, 1e-9, "SetPhase must make Δf·t+φ equal the target")
}

func TestPlayMergesNearIdenticalPulsesAtSameIndex(t *testing.T) {
	s := NewState(testCfg(), 0.01, 0.01)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 1, 0)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 1.001, 0)
	total := 0
	for _, bucket := range s.pulses.Entries {
		total += len(bucket)
	}
	if total != 1 {
		t.Fatalf("expected the two near-identical pulses to merge into one entry, got %d", total)
	}
}

func TestPlayKeepsPulsesSeparateOutsideTolerance(t *testing.T) {
	s := NewState(testCfg(), 1e-6, 1e-6)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 1, 0)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 2, 0)
	total := 0
	for _, bucket := range s.pulses.Entries {
		total += len(bucket)
	}
	if total != 2 {
		t.Fatalf("expected the dissimilar pulses to stay separate, got %d entries", total)
	}
}

func TestPlayEntirelyBeforeZeroIsOversize(t *testing.T) {
	cfg := testCfg()
	cfg.N = 100
	s := NewState(cfg, 1e-6, 1e-6)
	s.Play(-1, 0, 10e-9, 0, 0, 0, 1, 0) // starts far negative, short support
	if !s.Oversize() {
		t.Fatal("expected a pulse entirely before sample 0 to be flagged oversize")
	}
}

func TestPlayEntirelyAfterNIsOversize(t *testing.T) {
	cfg := testCfg()
	cfg.N = 10
	s := NewState(cfg, 1e-6, 1e-6)
	s.Play(1, -1, 0, 1e-9, 0, 0, 1, 0) // well past N=10 samples at fs=1e9
	if !s.Oversize() {
		t.Fatal("expected a pulse entirely past N to be flagged oversize")
	}
}

func TestPlayWithinBoundsIsNotOversize(t *testing.T) {
	s := NewState(testCfg(), 1e-6, 1e-6)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 1, 0)
	if s.Oversize() {
		t.Fatal("expected an in-bounds pulse to not be flagged oversize")
	}
}

func TestIndexAtSnapsToAlignmentGrid(t *testing.T) {
	cfg := testCfg()
	cfg.AlignLevel = 2 // grid of 4 samples
	s := NewState(cfg, 1e-6, 1e-6)
	start, offset := s.indexAt(10.4e-9) // raw index 10.4 samples
	if start%4 != 0 {
		t.Fatalf("expected start snapped to a multiple of 4, got %d", start)
	}
	if offset < 0 || offset >= 1 {
		t.Fatalf("expected offset in [0,1), got %f", offset)
	}
}

func TestPlayDragGainIsOrthogonalToCarrierGain(t *testing.T) {
	s := NewState(testCfg(), 1e-6, 1e-6)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 1, 0.5)
	var entry PulseEntry
	for _, bucket := range s.pulses.Entries {
		entry = bucket[0]
	}
	// gain is on-carrier real; dragGain = gain * i*dragCoef*fs must be purely
	// imaginary (the quadrature axis), scaled by the channel's sample rate.
	approxEqual(t, real(entry.DragGain), 0, 1e-9, "drag gain real part")
	approxEqual(t, imag(entry.DragGain), 0.5*testCfg().SampleRate, 1, "drag gain imag part")
}

func TestPlayBucketsByEnvelopeInfo(t *testing.T) {
	s := NewState(testCfg(), 1e-6, 1e-6)
	s.Play(100e-9, 0, 100e-9, 0, 0, 0, 1, 0)
	s.Play(200e-9, 1, 50e-9, 0, 0, 0, 1, 0)
	if len(s.pulses.Entries) != 2 {
		t.Fatalf("expected two distinct envelope-info buckets, got %d", len(s.pulses.Entries))
	}
}

func TestGainsMergeableRespectsPhaseWraparound(t *testing.T) {
	tol := mergeTolerance{Amp: 0.1, Phase: 0.1}
	a := cmplx.Rect(1, 3.13)
	b := cmplx.Rect(1, -3.13)
	if !gainsMergeable(a, b, tol) {
		t.Fatal("expected phases just across the +-pi wraparound to be treated as close")
	}
}
