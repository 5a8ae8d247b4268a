package envelope

import "math"

// Envelope is (shape-id or none, width, plateau): the domain is
// [-width/2, width/2+plateau]. ShapeID < 0 means rectangular (constant 1).
type Envelope struct {
	ShapeID int // -1 = no shape (rectangular)
	Width   float64
	Plateau float64
}

// Info is the cache key for a rendered envelope: equality is exact on all
// fields (tolerances, if any, are applied only when this value is built).
type Info struct {
	ShapeID     int
	Width       float64
	Plateau     float64
	IndexOffset float64 // in [0, 1)
	SampleRate  float64
}

// Len returns the sample count of the rendered buffer for this envelope:
// ceil((width+plateau)*fs) + 1.
func (in Info) Len() int {
	return int(math.Ceil((in.Width+in.Plateau)*in.SampleRate)) + 1
}

// Sample computes one complex-valued (but purely real) envelope sample
// array of length in.Len(), sampled at (k - indexOffset)/fs for integer k,
// against the given shape lookup (nil shape => rectangular).
func Sample(in Info, shape *Shape) []float64 {
	n := in.Len()
	out := make([]float64, n)
	halfWidth := in.Width / 2
	for k := 0; k < n; k++ {
		t := (float64(k) - in.IndexOffset) / in.SampleRate
		out[k] = valueAt(t, in.Width, in.Plateau, halfWidth, shape)
	}
	return out
}

// valueAt evaluates the composite (shape + plateau) envelope at time offset
// t from the start of the envelope's domain (t=0 is -width/2).
func valueAt(t, width, plateau, halfWidth float64, shape *Shape) float64 {
	// t is measured from the start of the domain; recenter to the
	// pre-plateau half-shape's own u in [-0.5, 0.5].
	if width == 0 {
		if shape == nil {
			if t >= 0 && t <= plateau {
				return 1
			}
			return 0
		}
		if t >= 0 && t <= plateau {
			return shape.EdgeValue()
		}
		return 0
	}
	switch {
	case t < halfWidth:
		u := t/width - 0.5
		return shapeValue(shape, u)
	case t <= halfWidth+plateau:
		return edgeValue(shape)
	default:
		u := (t-plateau)/width - 0.5
		return shapeValue(shape, u)
	}
}

func shapeValue(shape *Shape, u float64) float64 {
	if shape == nil {
		if u < -0.5 || u > 0.5 {
			return 0
		}
		return 1
	}
	return shape.Value(u)
}

func edgeValue(shape *Shape) float64 {
	if shape == nil {
		return 1
	}
	return shape.EdgeValue()
}
