package schedule

// Option configures a node's layout attributes at construction, following
// the teacher's PlayerOption functional-options pattern (WithSynthMode,
// WithLoopPlayback, WithSampleTap in player.go) instead of requiring every
// caller to populate a struct literal.
type Option func(*Attrs)

// WithMargin sets the (start, end) margin around the node's content.
func WithMargin(start, end float64) Option {
	return func(a *Attrs) { a.Margin = Margin{Start: start, End: end} }
}

// WithAlignment overrides the node's default alignment.
func WithAlignment(align Alignment) Option {
	return func(a *Attrs) { a.Alignment = align }
}

// WithVisibility sets whether the node renders at all.
func WithVisibility(visible bool) Option {
	return func(a *Attrs) { a.Visible = visible }
}

// WithDuration fixes both the node's min and max duration to d.
func WithDuration(d float64) Option {
	return func(a *Attrs) { a.Duration = &d }
}

// WithMinDuration sets a lower bound on the node's duration.
func WithMinDuration(d float64) Option {
	return func(a *Attrs) { a.MinDuration = d }
}

// WithMaxDuration sets an upper bound on the node's duration.
func WithMaxDuration(d float64) Option {
	return func(a *Attrs) { a.MaxDuration = d }
}

func applyOptions(attrs Attrs, opts []Option) Attrs {
	for _, opt := range opts {
		opt(&attrs)
	}
	return attrs
}
