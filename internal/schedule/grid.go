package schedule

import (
	"math"
	"sort"

	"github.com/kbergen/pulseforge/internal/pferr"
)

// ColumnKind identifies how a Grid column is sized.
type ColumnKind int

const (
	ColAuto ColumnKind = iota
	ColStar
	ColFixed
)

// Column is one Grid column: Auto sizes to content, Star takes a share of
// leftover space proportional to Value (its weight, > 0), Fixed is always
// Value seconds wide.
type Column struct {
	Kind  ColumnKind
	Value float64
}

// Grid lays children out in typed columns (§4.1): Auto columns size to
// their single-column children's content, Star columns split whatever
// duration is left over proportionally to their weight, Fixed columns never
// change size. Default alignment is stretch.
type Grid struct {
	*Base
	container
	columns []Column

	colStart []int
	colSpan  []int

	colWidths     []float64 // per-column measured width, cached from measure
	childDesired  []float64
	measuredTotal float64
	finalWidths   []float64 // per-column arranged width, cached from arrange
}

// NewGrid constructs an empty Grid with the given column definitions.
func NewGrid(columns []Column, opts ...Option) (*Grid, error) {
	for i, c := range columns {
		if c.Kind == ColStar && c.Value <= 0 {
			return nil, pferr.New(pferr.InvalidArgument, "Grid", "star column %d must have weight > 0, got %g", i, c.Value)
		}
		if c.Kind == ColFixed && c.Value < 0 {
			return nil, pferr.New(pferr.InvalidArgument, "Grid", "fixed column %d must be non-negative, got %g", i, c.Value)
		}
	}
	attrs := DefaultAttrs()
	attrs.Alignment = AlignStretch
	g := &Grid{columns: append([]Column(nil), columns...)}
	g.Base = NewBase(g, applyOptions(attrs, opts), "Grid")
	return g, nil
}

// Add attaches child spanning [col, col+span) columns.
func (g *Grid) Add(child Element, col, span int) error {
	if col < 0 || span < 1 || col+span > len(g.columns) {
		return pferr.New(pferr.InvalidArgument, "Grid", "column span [%d,%d) out of range for %d columns", col, col+span, len(g.columns))
	}
	if err := g.container.add(g, child); err != nil {
		return err
	}
	g.colStart = append(g.colStart, col)
	g.colSpan = append(g.colSpan, span)
	return nil
}

func (g *Grid) measureOverride(available float64) (float64, error) {
	n := len(g.columns)
	g.colWidths = make([]float64, n)
	for i, c := range g.columns {
		if c.Kind == ColFixed {
			g.colWidths[i] = c.Value
		}
	}
	g.childDesired = make([]float64, len(g.children))

	// Pass 1: single-column children size Auto/Star columns to content.
	for idx, child := range g.children {
		if g.colSpan[idx] != 1 {
			continue
		}
		col := g.colStart[idx]
		avail := math.Inf(1)
		if g.columns[col].Kind == ColFixed {
			avail = g.colWidths[col]
		}
		d, err := child.Measure(avail)
		if err != nil {
			return 0, err
		}
		g.childDesired[idx] = d
		if g.columns[col].Kind != ColFixed && d > g.colWidths[col] {
			g.colWidths[col] = d
		}
	}

	// Pass 2: multi-column spans grow their columns to cover any deficit.
	for idx, child := range g.children {
		span := g.colSpan[idx]
		if span == 1 {
			continue
		}
		col := g.colStart[idx]
		d, err := child.Measure(math.Inf(1))
		if err != nil {
			return 0, err
		}
		g.childDesired[idx] = d

		var total float64
		for c := col; c < col+span; c++ {
			total += g.colWidths[c]
		}
		if total >= d {
			continue
		}
		deficit := d - total

		var starCols, autoCols []int
		for c := col; c < col+span; c++ {
			switch g.columns[c].Kind {
			case ColStar:
				starCols = append(starCols, c)
			case ColAuto:
				autoCols = append(autoCols, c)
			}
		}
		if len(starCols) > 0 {
			sizes := make([]float64, len(starCols))
			weights := make([]float64, len(starCols))
			for k, c := range starCols {
				sizes[k] = g.colWidths[c]
				weights[k] = g.columns[c].Value
			}
			grown := starExpand(sizes, weights, deficit)
			for k, c := range starCols {
				if grown[k] > g.colWidths[c] {
					g.colWidths[c] = grown[k]
				}
			}
		} else if len(autoCols) > 0 {
			share := deficit / float64(len(autoCols))
			for _, c := range autoCols {
				g.colWidths[c] += share
			}
		}
		// All-Fixed span with a deficit: nothing left to grow; the
		// overflow surfaces as an Oversize error when the child arranges.
	}

	var total float64
	for _, w := range g.colWidths {
		total += w
	}
	g.measuredTotal = total
	return total, nil
}

func (g *Grid) arrangeOverride(ctx ArrangeContext, time, duration float64) (float64, error) {
	var nonStarTotal float64
	var starCols []int
	for i, c := range g.columns {
		if c.Kind == ColStar {
			starCols = append(starCols, i)
		} else {
			nonStarTotal += g.colWidths[i]
		}
	}

	finalWidths := append([]float64(nil), g.colWidths...)
	if len(starCols) > 0 {
		sizes := make([]float64, len(starCols))
		weights := make([]float64, len(starCols))
		for k, c := range starCols {
			sizes[k] = g.colWidths[c]
			weights[k] = g.columns[c].Value
		}
		var minTotal float64
		for _, s := range sizes {
			minTotal += s
		}
		extra := duration - nonStarTotal - minTotal
		if extra < 0 {
			extra = 0
		}
		grown := starExpand(sizes, weights, extra)
		for k, c := range starCols {
			finalWidths[c] = grown[k]
		}
	}
	g.finalWidths = finalWidths

	offsets := make([]float64, len(g.columns))
	var acc float64
	for i, w := range finalWidths {
		offsets[i] = acc
		acc += w
	}

	for idx, child := range g.children {
		col, span := g.colStart[idx], g.colSpan[idx]
		var spanWidth float64
		for c := col; c < col+span; c++ {
			spanWidth += finalWidths[c]
		}
		if err := child.Arrange(ctx, time+offsets[col], spanWidth); err != nil {
			return 0, err
		}
	}
	return duration, nil
}

func (g *Grid) renderOverride(time float64, r Renderer) error {
	for _, child := range g.children {
		if err := child.Render(0, r); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) channels() map[int]bool {
	out := make(map[int]bool)
	for _, child := range g.children {
		for ch := range child.Channels() {
			out[ch] = true
		}
	}
	return out
}

// ColumnWidths returns the arranged width of every column, for tests
// asserting the Star ratio property.
func (g *Grid) ColumnWidths() []float64 { return append([]float64(nil), g.finalWidths...) }

// starExpand implements the ratio-equalization algorithm (§4.1): columns
// are ordered by size/weight ascending, and the minimal prefix whose
// equalized ratio does not exceed the next unclaimed column's own ratio is
// raised to that common ratio; the remainder keeps its original size.
func starExpand(sizes, weights []float64, remaining float64) []float64 {
	n := len(sizes)
	result := append([]float64(nil), sizes...)
	if n == 0 {
		return result
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return sizes[order[a]]/weights[order[a]] < sizes[order[b]]/weights[order[b]]
	})

	var cumSize, cumWeight float64
	for k := 0; k < n; k++ {
		i := order[k]
		cumSize += sizes[i]
		cumWeight += weights[i]
		ratio := (cumSize + remaining) / cumWeight
		claim := k == n-1
		if !claim {
			next := order[k+1]
			claim = ratio <= sizes[next]/weights[next]
		}
		if claim {
			for j := 0; j <= k; j++ {
				idx := order[j]
				result[idx] = weights[idx] * ratio
			}
			return result
		}
	}
	return result
}
