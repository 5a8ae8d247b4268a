package tracker

import "github.com/kbergen/pulseforge/internal/pferr"

// Tracker fans the schedule tree's Renderer calls out to one State per
// channel. It structurally satisfies schedule.Renderer without
// internal/schedule importing this package, avoiding an import cycle
// (internal/schedule sits below internal/tracker in the dependency order).
type Tracker struct {
	states   map[int]*State
	order    []int
	cfgs     map[int]ChannelConfig
	ampTol   float64
	phaseTol float64
	err      error // first out-of-range channel reference seen during render
}

// NewTracker builds a Tracker with one State per entry in cfgs.
func NewTracker(cfgs map[int]ChannelConfig, ampTolerance, phaseTolerance float64) *Tracker {
	t := &Tracker{
		states:   make(map[int]*State, len(cfgs)),
		cfgs:     cfgs,
		ampTol:   ampTolerance,
		phaseTol: phaseTolerance,
	}
	for ch, cfg := range cfgs {
		t.states[ch] = NewState(cfg, ampTolerance, phaseTolerance)
		t.order = append(t.order, ch)
	}
	return t
}

func (t *Tracker) state(ch int) (*State, error) {
	s, ok := t.states[ch]
	if !ok {
		err := pferr.New(pferr.OutOfRange, "Tracker", "channel %d is not configured", ch)
		if t.err == nil {
			t.err = err
		}
		return nil, err
	}
	return s, nil
}

// Err returns the first out-of-range channel reference encountered during
// render, if any. Renderer's methods carry no error return (schedule
// elements are built against a known channel set and never expected to
// reference a missing one), so the orchestrator checks this after render
// completes instead.
func (t *Tracker) Err() error { return t.err }

// Channels returns the set of configured channel ids.
func (t *Tracker) Channels() []int { return append([]int(nil), t.order...) }

// State returns the oscillator state for ch, for callers that need direct
// access to its pulse list after a render pass.
func (t *Tracker) State(ch int) (*State, bool) {
	s, ok := t.states[ch]
	return s, ok
}

// Oversize reports whether any channel produced a Play landing entirely
// outside its sample range.
func (t *Tracker) Oversize() bool {
	for _, ch := range t.order {
		if t.states[ch].Oversize() {
			return true
		}
	}
	return false
}

func (t *Tracker) ShiftPhase(ch int, dphi float64) {
	if s, err := t.state(ch); err == nil {
		s.ShiftPhase(dphi)
	}
}

func (t *Tracker) SetPhase(ch int, phi, time float64) {
	if s, err := t.state(ch); err == nil {
		s.SetPhase(phi, time)
	}
}

func (t *Tracker) ShiftFreq(ch int, df, time float64) {
	if s, err := t.state(ch); err == nil {
		s.ShiftFreq(df, time)
	}
}

func (t *Tracker) SetFreq(ch int, f, time float64) {
	if s, err := t.state(ch); err == nil {
		s.SetFreq(f, time)
	}
}

func (t *Tracker) SwapPhase(ch1, ch2 int, time float64) {
	a, errA := t.state(ch1)
	b, errB := t.state(ch2)
	if errA != nil || errB != nil {
		return
	}
	SwapPhase(a, b, time)
}

func (t *Tracker) Play(ch int, shapeID int, width, plateau, freqP, phiP, amp, dragCoef, time float64) {
	if s, err := t.state(ch); err == nil {
		s.Play(time, shapeID, width, plateau, freqP, phiP, amp, dragCoef)
	}
}
