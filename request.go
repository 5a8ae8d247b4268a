package pulseforge

import (
	"math"

	"github.com/kbergen/pulseforge/internal/schedule"
)

// Options carries the run-wide tolerances and oversize policy (§7).
type Options struct {
	TimeTolerance  float64
	AmpTolerance   float64
	PhaseTolerance float64
	AllowOversize  bool
}

// DefaultOptions returns the spec's default tolerances (§7): picosecond-
// scale time tolerance, amp_tolerance = 0.1/2^16 (a tenth of one 16-bit DAC
// step), phase_tolerance = 1e-4 cycles, oversize treated as a hard
// error.
func DefaultOptions() Options {
	return Options{
		TimeTolerance:  1e-12,
		AmpTolerance:   0.1 / 65536,
		PhaseTolerance: 1e-4,
		AllowOversize:  false,
	}
}

// Request is the primary entry point's input (§6): the channel and shape
// tables, the root schedule element, and the run's tolerance options.
type Request struct {
	Channels []Channel
	Shapes   []Shape
	Root     schedule.Element
	Options  Options
}

// validate checks the request-level invariants from §4.6 step 1 and §7's
// InvalidArgument cases: channel and shape record well-formedness, unique
// channel names, and — by walking the schedule tree — that every Play's
// channel id is in range and its shape id is either -1 or in range.
func (r Request) validate() error {
	if r.Root == nil {
		return newErr(InvalidArgument, "Request", "root schedule element must not be nil")
	}
	seen := make(map[string]bool, len(r.Channels))
	for i, c := range r.Channels {
		if err := c.validate(i); err != nil {
			return err
		}
		if c.Name == "" {
			return newErr(InvalidArgument, "Request", "channel %d has an empty name", i)
		}
		if seen[c.Name] {
			return newErr(InvalidArgument, "Request", "duplicate channel name %q", c.Name)
		}
		seen[c.Name] = true
	}
	for i, s := range r.Shapes {
		if err := s.validate(i); err != nil {
			return err
		}
	}
	if math.IsNaN(r.Options.TimeTolerance) || r.Options.TimeTolerance < 0 {
		return newErr(InvalidArgument, "Request", "time_tolerance must be non-negative, got %g", r.Options.TimeTolerance)
	}
	return schedule.Walk(r.Root, func(e schedule.Element) error {
		play, ok := e.(*schedule.Play)
		if !ok {
			return nil
		}
		if play.Channel() < 0 || play.Channel() >= len(r.Channels) {
			return newErr(InvalidArgument, "Play", "channel id %d out of range for %d channels", play.Channel(), len(r.Channels))
		}
		if play.ShapeID() < -1 || play.ShapeID() >= len(r.Shapes) {
			return newErr(InvalidArgument, "Play", "shape id %d must be -1 (rectangular) or a valid shape index, have %d shapes", play.ShapeID(), len(r.Shapes))
		}
		return nil
	})
}
