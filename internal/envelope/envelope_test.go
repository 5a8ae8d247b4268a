package envelope

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %f, want %f (tol %f)", msg, got, want, tol)
	}
}

func TestHannShapeEndpointsAndPeak(t *testing.T) {
	s := Shape{Kind: Hann}
	approxEqual(t, s.Value(-0.5), 0, 1e-12, "hann at -0.5")
	approxEqual(t, s.Value(0.5), 0, 1e-12, "hann at 0.5")
	approxEqual(t, s.Value(0), 1, 1e-12, "hann at 0")
	approxEqual(t, s.Value(0.6), 0, 1e-12, "hann outside domain")
}

func TestTriangleShape(t *testing.T) {
	s := Shape{Kind: Triangle}
	approxEqual(t, s.Value(0), 1, 1e-12, "triangle peak")
	approxEqual(t, s.Value(-0.5), 0, 1e-12, "triangle left edge")
	approxEqual(t, s.Value(0.25), 0.5, 1e-12, "triangle quarter point")
}

func TestInterpShapeSaturatesAtTableBoundary(t *testing.T) {
	// xs only spans [-0.3, 0.3]; u values inside the shape's [-0.5, 0.5]
	// domain but outside the table must saturate to the nearest table edge.
	s := Shape{Kind: Interp, Xs: []float64{-0.3, 0, 0.3}, Ys: []float64{0.2, 1, 0.4}}
	approxEqual(t, s.Value(-0.5), 0.2, 1e-12, "interp saturates below table range")
	approxEqual(t, s.Value(0.5), 0.4, 1e-12, "interp saturates above table range")
	approxEqual(t, s.Value(-10), 0, 1e-12, "value is 0 outside the [-0.5, 0.5] domain")
	approxEqual(t, s.EdgeValue(), 0.4, 1e-12, "interp edge value is last y")
}

func TestRectangularEnvelopeIsConstantOverDomain(t *testing.T) {
	in := Info{ShapeID: -1, Width: 100e-9, Plateau: 0, SampleRate: 1e9}
	samples := Sample(in, nil)
	for i, v := range samples {
		approxEqual(t, v, 1, 1e-9, "rectangular sample "+string(rune('0'+i%10)))
	}
}

func TestHannEnvelopeWithPlateauIsFlatInMiddle(t *testing.T) {
	shape := Shape{Kind: Hann}
	in := Info{ShapeID: 0, Width: 100e-9, Plateau: 50e-9, SampleRate: 2e9}
	samples := Sample(in, &shape)
	mid := len(samples) / 2
	approxEqual(t, samples[mid], 0, 1e-9, "hann plateau value is shape(0.5)=0")
}

func TestEnvelopeLenFormula(t *testing.T) {
	in := Info{Width: 100e-9, Plateau: 200e-9, SampleRate: 2e9}
	// (100ns+200ns)*2e9 = 600 samples exactly -> ceil = 600, +1 = 601
	if got := in.Len(); got != 601 {
		t.Fatalf("expected 601 samples, got %d", got)
	}
}

type fakeShapeTable struct {
	shapes map[int]Shape
}

func (f fakeShapeTable) Shape(id int) (Shape, bool) {
	s, ok := f.shapes[id]
	return s, ok
}

func TestCacheComputesOncePerDistinctInfo(t *testing.T) {
	c := NewCache(fakeShapeTable{shapes: map[int]Shape{0: {Kind: Hann}}})
	in := Info{ShapeID: 0, Width: 100e-9, Plateau: 0, SampleRate: 1e9}
	a := c.Get(in)
	b := c.Get(in)
	if c.Computations() != 1 {
		t.Fatalf("expected exactly 1 computation, got %d", c.Computations())
	}
	if &a[0] != &b[0] {
		t.Error("expected cache hit to return the same backing array")
	}
}

func TestCacheDistinguishesIndexOffset(t *testing.T) {
	c := NewCache(fakeShapeTable{shapes: map[int]Shape{0: {Kind: Hann}}})
	c.Get(Info{ShapeID: 0, Width: 100e-9, SampleRate: 1e9, IndexOffset: 0})
	c.Get(Info{ShapeID: 0, Width: 100e-9, SampleRate: 1e9, IndexOffset: 0.5})
	if c.Computations() != 2 {
		t.Fatalf("expected 2 distinct computations, got %d", c.Computations())
	}
}
