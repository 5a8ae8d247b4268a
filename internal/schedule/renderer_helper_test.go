package schedule

// recordingRenderer is a fake Renderer used across tests to capture
// emitted instructions in order, the way a real tracker.Tracker would
// apply them.
type recordingRenderer struct {
	shiftPhases []shiftPhaseCall
	setPhases   []setPhaseCall
	shiftFreqs  []shiftFreqCall
	setFreqs    []setFreqCall
	swapPhases  []swapPhaseCall
	plays       []playCall
}

type shiftPhaseCall struct {
	ch   int
	dphi float64
}
type setPhaseCall struct {
	ch     int
	phi, t float64
}
type shiftFreqCall struct {
	ch int
	df float64
	t  float64
}
type setFreqCall struct {
	ch int
	f  float64
	t  float64
}
type swapPhaseCall struct {
	ch1, ch2 int
	t        float64
}
type playCall struct {
	ch                         int
	shapeID                    int
	width, plateau             float64
	freqP, phiP, amp, dragCoef float64
	t                          float64
}

func (r *recordingRenderer) ShiftPhase(ch int, dphi float64) {
	r.shiftPhases = append(r.shiftPhases, shiftPhaseCall{ch, dphi})
}
func (r *recordingRenderer) SetPhase(ch int, phi, t float64) {
	r.setPhases = append(r.setPhases, setPhaseCall{ch, phi, t})
}
func (r *recordingRenderer) ShiftFreq(ch int, df, t float64) {
	r.shiftFreqs = append(r.shiftFreqs, shiftFreqCall{ch, df, t})
}
func (r *recordingRenderer) SetFreq(ch int, f, t float64) {
	r.setFreqs = append(r.setFreqs, setFreqCall{ch, f, t})
}
func (r *recordingRenderer) SwapPhase(ch1, ch2 int, t float64) {
	r.swapPhases = append(r.swapPhases, swapPhaseCall{ch1, ch2, t})
}
func (r *recordingRenderer) Play(ch int, shapeID int, width, plateau, freqP, phiP, amp, dragCoef, t float64) {
	r.plays = append(r.plays, playCall{ch, shapeID, width, plateau, freqP, phiP, amp, dragCoef, t})
}
