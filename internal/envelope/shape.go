// Package envelope computes and caches sampled pulse envelopes: the Hann,
// Triangle, and piecewise-linear Interp shapes, and the width/plateau
// composition that turns a shape into a finite-support envelope.
package envelope

import "math"

// ShapeKind identifies which closed-form or table-driven shape a Shape
// value uses.
type ShapeKind int

const (
	Hann ShapeKind = iota
	Triangle
	Interp
)

// Shape defines value(u) for u in [-0.5, 0.5], 0 outside. Interp shapes
// carry their own xs/ys table; Hann and Triangle are closed-form.
type Shape struct {
	Kind ShapeKind
	// Xs, Ys define an Interp shape: Xs strictly increasing, both in
	// [-0.5, 0.5]. Unused for Hann/Triangle.
	Xs, Ys []float64
}

// Value evaluates the shape at u, returning 0 outside [-0.5, 0.5].
func (s Shape) Value(u float64) float64 {
	if u < -0.5 || u > 0.5 {
		return 0
	}
	switch s.Kind {
	case Hann:
		return 0.5 * (1 + math.Cos(2*math.Pi*u))
	case Triangle:
		return 1 - 2*math.Abs(u)
	case Interp:
		return interpValue(s.Xs, s.Ys, u)
	default:
		return 0
	}
}

// EdgeValue returns shape(0.5), the value a plateau holds at: 0 for
// Hann/Triangle, the last table value for Interp.
func (s Shape) EdgeValue() float64 {
	switch s.Kind {
	case Hann, Triangle:
		return 0
	case Interp:
		if len(s.Ys) == 0 {
			return 0
		}
		return s.Ys[len(s.Ys)-1]
	default:
		return 0
	}
}

func interpValue(xs, ys []float64, u float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if u <= xs[0] {
		return ys[0]
	}
	if u >= xs[n-1] {
		return ys[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= u {
			lo = mid
		} else {
			hi = mid
		}
	}
	x0, x1 := xs[lo], xs[hi]
	y0, y1 := ys[lo], ys[hi]
	if x1 == x0 {
		return y0
	}
	t := (u - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}
