// Package tracker implements the per-channel phase/frequency oscillator
// state machine (PhaseTrackerState) and the pulse list it accumulates
// while a schedule tree is rendered.
package tracker

import "github.com/kbergen/pulseforge/internal/envelope"

// PulseEntry is one scheduled pulse within an envelope-info bucket: a start
// sample index, the effective oscillator frequency at that pulse (used to
// derive the per-sample rotation during sampling), and the complex gain
// already evaluated at the pulse's start phase.
type PulseEntry struct {
	StartSample int
	Freq        float64
	Gain        complex128
	DragGain    complex128
}

// PlateauEntry is a degenerate (width=0) pulse: a pure constant segment of
// the given length, handled directly with MixAddPlateau instead of going
// through the envelope cache.
type PlateauEntry struct {
	StartSample int
	Length      int
	Freq        float64
	Gain        complex128
}

// PulseList accumulates, per channel, pulses bucketed by EnvelopeInfo
// (the sub-sample-offset slot they share), plus a separate plateau
// accumulator for zero-width (pure rectangular) pulses.
type PulseList struct {
	Entries  map[envelope.Info][]PulseEntry
	Plateaus []PlateauEntry
}

// NewPulseList returns an empty pulse list.
func NewPulseList() *PulseList {
	return &PulseList{Entries: make(map[envelope.Info][]PulseEntry)}
}

// mergeTolerance bounds how close two pulses at the same start sample and
// envelope-info bucket must be (in gain magnitude and phase) to be summed
// into a single entry instead of appended separately.
type mergeTolerance struct {
	Amp   float64
	Phase float64
}

func (pl *PulseList) addShaped(info envelope.Info, entry PulseEntry, tol mergeTolerance) {
	bucket := pl.Entries[info]
	for i := range bucket {
		existing := &bucket[i]
		if existing.StartSample != entry.StartSample || existing.Freq != entry.Freq {
			continue
		}
		if gainsMergeable(existing.Gain, entry.Gain, tol) {
			existing.Gain += entry.Gain
			existing.DragGain += entry.DragGain
			return
		}
	}
	pl.Entries[info] = append(bucket, entry)
}

func (pl *PulseList) addPlateau(entry PlateauEntry, tol mergeTolerance) {
	for i := range pl.Plateaus {
		existing := &pl.Plateaus[i]
		if existing.StartSample != entry.StartSample || existing.Length != entry.Length || existing.Freq != entry.Freq {
			continue
		}
		if gainsMergeable(existing.Gain, entry.Gain, tol) {
			existing.Gain += entry.Gain
			return
		}
	}
	pl.Plateaus = append(pl.Plateaus, entry)
}
