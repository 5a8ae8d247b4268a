// Package schedule implements the schedule element tree: the abstract
// measure/arrange/render lifecycle (§4.1) shared by every leaf and
// container, and the concrete node types built on it.
package schedule

import (
	"math"

	"github.com/kbergen/pulseforge/internal/pferr"
)

// Alignment controls how a node is positioned within a span larger than
// its own desired duration.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Margin is the (start, end) spacing reserved around a node's content.
type Margin struct {
	Start, End float64
}

func (m Margin) total() float64 { return m.Start + m.End }

// Attrs holds the layout attributes every schedule node carries.
type Attrs struct {
	Margin      Margin
	Alignment   Alignment
	Visible     bool
	Duration    *float64
	MinDuration float64
	MaxDuration float64 // +Inf if unset
}

// DefaultAttrs returns the attribute set used when a node is constructed
// with no options: zero margin, start alignment, visible, unconstrained
// duration range. Containers override Alignment to AlignStretch in their
// own constructors, per spec.
func DefaultAttrs() Attrs {
	return Attrs{Alignment: AlignStart, Visible: true, MaxDuration: math.Inf(1)}
}

// ArrangeContext carries the run-wide options that affect arrange: the
// oversize tolerance and whether exceeding it is a hard error.
type ArrangeContext struct {
	TimeTolerance float64
	AllowOversize bool
}

// Element is the public interface every schedule node satisfies: the
// tagged-variant dispatch described in spec.md's design notes, implemented
// here as an interface rather than a closed sum type since Go has no sum
// types, with Base supplying the shared lifecycle and a small `core`
// interface supplying each concrete type's own behavior.
type Element interface {
	Measure(available float64) (float64, error)
	Arrange(ctx ArrangeContext, time, finalDuration float64) error
	Render(time float64, r Renderer) error

	Channels() map[int]bool
	DesiredDuration() float64
	UnclippedDesiredDuration() float64
	ActualTime() float64
	ActualDuration() float64

	attach(parent Element) error
}

// core is implemented by each concrete node type; Base calls into it to
// perform the type-specific part of measure/arrange/render. This is Go's
// usual substitute for the "virtual self" pattern spec.md's design notes
// ask for without inheritance.
type core interface {
	measureOverride(available float64) (float64, error)
	arrangeOverride(ctx ArrangeContext, time, duration float64) (float64, error)
	renderOverride(time float64, r Renderer) error
	channels() map[int]bool
}

// Base implements the common measure/arrange/render bookkeeping described
// in spec.md §4.1: clamping against min/max/duration, margin handling,
// alignment, attach-once parent tracking, and the InvalidState/Oversize
// error conditions. Concrete node types embed *Base and provide a `core`.
type Base struct {
	attrs Attrs
	self  core
	name  string // for error messages ("Play", "Stack", ...), never user data

	parent    Element
	measuring bool
	measured  bool
	arranged  bool

	clampedMin, clampedMax float64 // min'/max' cached from measure, reused at arrange
	rawMeasured            float64 // measureOverride's own return value, pre-clamp

	desired          float64
	unclippedDesired float64
	actualTime       float64
	actualDuration   float64
}

// NewBase wires a concrete node's core into a fresh Base with the given
// attributes and a name used only in error messages.
func NewBase(self core, attrs Attrs, name string) *Base {
	return &Base{attrs: attrs, self: self, name: name}
}

func clampValue(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// effectiveMinMax resolves Duration/MinDuration/MaxDuration into the
// (min', max') pair spec.md §4.1 clamps available/final duration to.
func (b *Base) effectiveMinMax() (float64, float64) {
	lo, hi := b.attrs.MinDuration, b.attrs.MaxDuration
	if b.attrs.Duration != nil {
		lo, hi = *b.attrs.Duration, *b.attrs.Duration
	}
	return clampValue(lo, b.attrs.MinDuration, b.attrs.MaxDuration), clampValue(hi, b.attrs.MinDuration, b.attrs.MaxDuration)
}

// Measure computes and caches desired_duration and unclipped_desired_duration.
func (b *Base) Measure(available float64) (float64, error) {
	if b.measuring {
		return 0, pferr.New(pferr.InvalidState, b.name, "recursive measure")
	}
	b.measuring = true
	defer func() { b.measuring = false }()

	marginTotal := b.attrs.Margin.total()
	minP, maxP := b.effectiveMinMax()
	b.clampedMin, b.clampedMax = minP, maxP

	inner := available - marginTotal
	clamped := clampValue(inner, minP, maxP)

	measured, err := b.self.measureOverride(clamped)
	if err != nil {
		return 0, err
	}
	b.rawMeasured = measured

	b.desired = math.Min(clampValue(measured, minP, maxP)+marginTotal, available)
	b.unclippedDesired = math.Max(measured+marginTotal, 0)
	b.measured = true
	return b.desired, nil
}

// Arrange places the node at time with the given final duration, applying
// the node's own alignment within any slack beyond its desired size.
func (b *Base) Arrange(ctx ArrangeContext, time, finalDuration float64) error {
	if !b.measured {
		return pferr.New(pferr.InvalidState, b.name, "arrange before measure")
	}
	if finalDuration < b.unclippedDesired-ctx.TimeTolerance && !ctx.AllowOversize {
		return pferr.New(pferr.Oversize, b.name, "final duration %g < unclipped desired %g", finalDuration, b.unclippedDesired)
	}

	innerTime := time + b.attrs.Margin.Start
	innerFinal := finalDuration - b.attrs.Margin.total()
	clampedFinal := clampValue(innerFinal, b.clampedMin, b.clampedMax)

	contentTime, contentDuration := innerTime, clampedFinal
	if b.attrs.Alignment != AlignStretch {
		own := clampValue(b.rawMeasured, b.clampedMin, b.clampedMax)
		slack := clampedFinal - own
		if slack < 0 {
			slack = 0
		}
		switch b.attrs.Alignment {
		case AlignCenter:
			contentTime = innerTime + slack/2
		case AlignEnd:
			contentTime = innerTime + slack
		}
		contentDuration = own
	}

	actual, err := b.self.arrangeOverride(ctx, contentTime, contentDuration)
	if err != nil {
		return err
	}
	b.actualTime = contentTime
	b.actualDuration = actual
	b.arranged = true
	return nil
}

// Render emits this node's instructions, skipping entirely when the node
// is invisible.
func (b *Base) Render(time float64, r Renderer) error {
	if !b.arranged {
		return pferr.New(pferr.InvalidState, b.name, "render before arrange")
	}
	if !b.attrs.Visible {
		return nil
	}
	return b.self.renderOverride(time+b.actualTime, r)
}

// Channels returns the node's touched-channel set, delegating to core.
func (b *Base) Channels() map[int]bool { return b.self.channels() }

// DesiredDuration returns the cached measure output.
func (b *Base) DesiredDuration() float64 { return b.desired }

// UnclippedDesiredDuration returns the cached measure output.
func (b *Base) UnclippedDesiredDuration() float64 { return b.unclippedDesired }

// ActualTime returns the cached arrange output.
func (b *Base) ActualTime() float64 { return b.actualTime }

// ActualDuration returns the cached arrange output.
func (b *Base) ActualDuration() float64 { return b.actualDuration }

// attach marks this node as belonging to parent, failing InvalidState if it
// already belongs to one.
func (b *Base) attach(parent Element) error {
	if b.parent != nil {
		return pferr.New(pferr.InvalidState, b.name, "node already attached to a parent")
	}
	b.parent = parent
	return nil
}
