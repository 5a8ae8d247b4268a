package pulseforge

import "github.com/kbergen/pulseforge/internal/pferr"

// Kind classifies an Error; see InvalidArgument, InvalidState, Oversize,
// OutOfRange below.
type Kind = pferr.Kind

// Error kind values, re-exported at the package boundary so callers can
// test errors.As(err, &perr); perr.Kind == pulseforge.InvalidArgument
// without reaching into internal/pferr themselves.
const (
	InvalidArgument = pferr.InvalidArgument
	InvalidState    = pferr.InvalidState
	Oversize        = pferr.Oversize
	OutOfRange      = pferr.OutOfRange
)

// Error is the classified error type produced anywhere in the pipeline.
type Error = pferr.Error

// newErr builds a classified Error, the root package's own thin wrapper
// around pferr.New so call sites here read the same way the rest of the
// pipeline's error construction does.
func newErr(kind Kind, element, format string, args ...any) error {
	return pferr.New(kind, element, format, args...)
}
