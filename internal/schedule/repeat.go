package schedule

import (
	"math"

	"github.com/kbergen/pulseforge/internal/pferr"
)

// Repeat lays out count copies of one template child back to back, each
// separated by spacing, splitting whatever final duration it receives
// evenly across the copies (§4.1). The child is measured once and arranged
// at every copy's start; Render re-arranges it at each copy's start before
// rendering that copy.
type Repeat struct {
	*Base
	child      Element
	count      int
	spacing    float64
	perCopy    float64
	copyStarts []float64 // absolute
	ctx        ArrangeContext
}

// NewRepeat constructs a Repeat wrapping child, played count times with
// spacing seconds between the end of one copy and the start of the next.
func NewRepeat(child Element, count int, spacing float64, opts ...Option) (*Repeat, error) {
	if count < 0 {
		return nil, pferr.New(pferr.InvalidArgument, "Repeat", "count must be >= 0, got %d", count)
	}
	if spacing < 0 || math.IsNaN(spacing) {
		return nil, pferr.New(pferr.InvalidArgument, "Repeat", "spacing must be non-negative, got %g", spacing)
	}
	attrs := DefaultAttrs()
	attrs.Alignment = AlignStretch
	r := &Repeat{child: child, count: count, spacing: spacing}
	r.Base = NewBase(r, applyOptions(attrs, opts), "Repeat")
	if err := child.attach(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (rp *Repeat) measureOverride(available float64) (float64, error) {
	if rp.count == 0 {
		rp.perCopy = 0
		return 0, nil
	}
	n := float64(rp.count)
	totalSpacing := rp.spacing * (n - 1)
	per := (available - totalSpacing) / n
	if math.IsInf(available, 1) {
		per = math.Inf(1)
	} else if per < 0 {
		per = 0
	}
	d, err := rp.child.Measure(per)
	if err != nil {
		return 0, err
	}
	rp.perCopy = d
	return d*n + totalSpacing, nil
}

func (rp *Repeat) arrangeOverride(ctx ArrangeContext, time, duration float64) (float64, error) {
	if rp.count == 0 {
		rp.copyStarts = nil
		return 0, nil
	}
	n := float64(rp.count)
	totalSpacing := rp.spacing * (n - 1)
	per := (duration - totalSpacing) / n
	if per < 0 {
		per = 0
	}
	rp.perCopy = per
	rp.copyStarts = make([]float64, rp.count)
	rp.ctx = ctx
	stride := per + rp.spacing
	for k := 0; k < rp.count; k++ {
		start := time + float64(k)*stride
		rp.copyStarts[k] = start
		if err := rp.child.Arrange(ctx, start, per); err != nil {
			return 0, err
		}
	}
	return duration, nil
}

func (rp *Repeat) renderOverride(time float64, r Renderer) error {
	// The single child subtree was last left arranged at copy count-1's
	// position; re-arrange it at each copy's own absolute start immediately
	// before rendering it, since a container's cached actual_time chain is
	// fully absolute and Render never re-derives it from a passed-in time.
	for _, start := range rp.copyStarts {
		if err := rp.child.Arrange(rp.ctx, start, rp.perCopy); err != nil {
			return err
		}
		if err := rp.child.Render(0, r); err != nil {
			return err
		}
	}
	return nil
}

func (rp *Repeat) channels() map[int]bool { return rp.child.Channels() }
