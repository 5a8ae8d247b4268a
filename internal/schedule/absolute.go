package schedule

import (
	"math"

	"github.com/kbergen/pulseforge/internal/pferr"
)

// Absolute places each child at a fixed, caller-given offset from its own
// start, independent of the others. Default alignment is stretch.
type Absolute struct {
	*Base
	container
	offsets []float64
}

// NewAbsolute constructs an empty Absolute container.
func NewAbsolute(opts ...Option) *Absolute {
	attrs := DefaultAttrs()
	attrs.Alignment = AlignStretch
	a := &Absolute{}
	a.Base = NewBase(a, applyOptions(attrs, opts), "Absolute")
	return a
}

// Add attaches child at the given non-negative offset.
func (a *Absolute) Add(child Element, offset float64) error {
	if offset < 0 || math.IsNaN(offset) {
		return pferr.New(pferr.InvalidArgument, "Absolute", "offset must be non-negative, got %g", offset)
	}
	if err := a.container.add(a, child); err != nil {
		return err
	}
	a.offsets = append(a.offsets, offset)
	return nil
}

func (a *Absolute) measureOverride(available float64) (float64, error) {
	var max float64
	for i, child := range a.children {
		childAvail := available - a.offsets[i]
		if childAvail < 0 {
			childAvail = 0
		}
		d, err := child.Measure(childAvail)
		if err != nil {
			return 0, err
		}
		if end := a.offsets[i] + d; end > max {
			max = end
		}
	}
	return max, nil
}

func (a *Absolute) arrangeOverride(ctx ArrangeContext, time, duration float64) (float64, error) {
	for i, child := range a.children {
		if err := child.Arrange(ctx, time+a.offsets[i], child.DesiredDuration()); err != nil {
			return 0, err
		}
	}
	return duration, nil
}

func (a *Absolute) renderOverride(time float64, r Renderer) error {
	for _, child := range a.children {
		if err := child.Render(0, r); err != nil {
			return err
		}
	}
	return nil
}

func (a *Absolute) channels() map[int]bool {
	out := make(map[int]bool)
	for _, child := range a.children {
		for ch := range child.Channels() {
			out[ch] = true
		}
	}
	return out
}
