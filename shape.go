package pulseforge

import "github.com/kbergen/pulseforge/internal/envelope"

// ShapeKind identifies which closed-form or table-driven envelope shape a
// Shape value uses.
type ShapeKind = envelope.ShapeKind

const (
	Hann     = envelope.Hann
	Triangle = envelope.Triangle
	Interp   = envelope.Interp
)

// Shape is one named entry in a request's shape table (§3), referenced by
// Play nodes via its index. Interp shapes carry their own xs/ys table; xs
// must be strictly increasing and within [-0.5, 0.5].
type Shape struct {
	Kind ShapeKind
	Xs   []float64
	Ys   []float64
}

func (s Shape) toEnvelope() envelope.Shape {
	return envelope.Shape{Kind: s.Kind, Xs: s.Xs, Ys: s.Ys}
}

func (s Shape) validate(index int) error {
	if s.Kind != Interp {
		return nil
	}
	if len(s.Xs) != len(s.Ys) {
		return newErr(InvalidArgument, "Shape", "shape %d: xs and ys must have equal length, got %d and %d", index, len(s.Xs), len(s.Ys))
	}
	for i := 1; i < len(s.Xs); i++ {
		if s.Xs[i] <= s.Xs[i-1] {
			return newErr(InvalidArgument, "Shape", "shape %d: xs must be strictly increasing, got %g then %g", index, s.Xs[i-1], s.Xs[i])
		}
	}
	for i, x := range s.Xs {
		if x < -0.5 || x > 0.5 {
			return newErr(InvalidArgument, "Shape", "shape %d: xs[%d]=%g out of [-0.5, 0.5]", index, i, x)
		}
	}
	return nil
}

// shapeTable adapts a Request's Shapes slice to envelope.ShapeTable.
type shapeTable struct {
	shapes []Shape
}

func (t shapeTable) Shape(id int) (envelope.Shape, bool) {
	if id < 0 || id >= len(t.shapes) {
		return envelope.Shape{}, false
	}
	return t.shapes[id].toEnvelope(), true
}
