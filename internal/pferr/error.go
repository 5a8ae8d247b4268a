// Package pferr defines the classified error type shared by every layer of
// the pulse-scheduling pipeline (tracker, schedule, postprocess) and
// re-exported at the root package boundary.
package pferr

import "fmt"

// Kind classifies an Error the way the orchestrator boundary needs to tell
// them apart; it is not itself an error type.
type Kind int

const (
	// InvalidArgument covers negative widths, min>max, non-finite
	// attributes, unknown channel/shape ids, duplicate channel names.
	InvalidArgument Kind = iota
	// InvalidState covers arrange before measure, render before arrange,
	// reattaching a node that already has a parent, recursive measure.
	InvalidState
	// Oversize covers unclipped > final + time_tolerance when
	// allow_oversize is false.
	Oversize
	// OutOfRange covers a pulse start or env-info offset not in [0,1).
	OutOfRange
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidState:
		return "InvalidState"
	case Oversize:
		return "Oversize"
	case OutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// Error is the single error type produced anywhere in the pipeline. Element
// identifies the offending schedule node or channel when known; it is
// empty for request-level validation failures.
type Error struct {
	Kind    Kind
	Element string
	Msg     string
}

func (e *Error) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Element, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is lets errors.Is(err, &Error{Kind: X}) match on Kind alone, the way
// callers are expected to test for a particular error class.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a classified Error, following the teacher's repeated
// fmt.Errorf("... %d", x) call sites but carrying a Kind and Element.
func New(kind Kind, element, format string, args ...any) *Error {
	return &Error{Kind: kind, Element: element, Msg: fmt.Sprintf(format, args...)}
}
