package schedule

// Renderer receives the instructions a schedule tree emits during render,
// at the absolute time each leaf was arranged to. Channel ids are plain
// indices into the request's channel table. The concrete implementation is
// internal/tracker's multi-channel Tracker; this interface exists so
// internal/schedule never needs to import internal/tracker.
type Renderer interface {
	ShiftPhase(ch int, dphi float64)
	SetPhase(ch int, phi, t float64)
	ShiftFreq(ch int, df, t float64)
	SetFreq(ch int, f, t float64)
	SwapPhase(ch1, ch2 int, t float64)
	Play(ch int, shapeID int, width, plateau, freqP, phiP, amp, dragCoef, t float64)
}
