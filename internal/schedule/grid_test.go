package schedule

import "testing"

func TestGridFixedColumnsStayFixed(t *testing.T) {
	g, err := NewGrid([]Column{{Kind: ColFixed, Value: 40e-9}, {Kind: ColAuto}, {Kind: ColFixed, Value: 40e-9}})
	if err != nil {
		t.Fatal(err)
	}
	mid := mustPlay(t, 0, -1, 60e-9, 0, 0, 0, 1, 0, false)
	if err := g.Add(mid, 1, 1); err != nil {
		t.Fatal(err)
	}
	r := runTree(t, g, 1e-6, arrangeCtx)
	widths := g.ColumnWidths()
	if widths[0] != 40e-9 || widths[2] != 40e-9 {
		t.Errorf("fixed columns changed size: %v", widths)
	}
	if widths[1] != 60e-9 {
		t.Errorf("auto column = %v, want 60e-9 (content size)", widths[1])
	}
	if r.plays[0].t != 40e-9 {
		t.Errorf("mid play at %v, want 40e-9 (after first fixed column)", r.plays[0].t)
	}
}

// TestGridWorkedRepeatExample mirrors the spec's worked example: a three
// column grid [40e-9, auto, 40e-9] whose middle column hosts a
// Repeat(Play(width=60e-9), count=3, spacing=30e-9), expecting the middle
// column to measure to 240e-9 and the grid total to 320e-9.
func TestGridWorkedRepeatExample(t *testing.T) {
	g, err := NewGrid([]Column{{Kind: ColFixed, Value: 40e-9}, {Kind: ColAuto}, {Kind: ColFixed, Value: 40e-9}})
	if err != nil {
		t.Fatal(err)
	}
	leaf := mustPlay(t, 0, -1, 60e-9, 0, 0, 0, 1, 0, false)
	rep, err := NewRepeat(leaf, 3, 30e-9)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Add(rep, 1, 1); err != nil {
		t.Fatal(err)
	}
	desired, err := g.Measure(1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Arrange(arrangeCtx, 0, desired); err != nil {
		t.Fatal(err)
	}
	approxEqual(t, g.ColumnWidths()[1], 240e-9, 1e-15, "middle column width")
	approxEqual(t, desired, 320e-9, 1e-15, "grid total width")
}

func TestGridStarColumnsSplitRatio(t *testing.T) {
	g, err := NewGrid([]Column{{Kind: ColStar, Value: 1}, {Kind: ColStar, Value: 3}})
	if err != nil {
		t.Fatal(err)
	}
	a := mustPlay(t, 0, -1, 10e-9, 0, 0, 0, 1, 0, false)
	b := mustPlay(t, 1, -1, 10e-9, 0, 0, 0, 1, 0, false)
	if err := g.Add(a, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(b, 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Measure(1e-6); err != nil {
		t.Fatal(err)
	}
	if err := g.Arrange(arrangeCtx, 0, 400e-9); err != nil {
		t.Fatal(err)
	}
	widths := g.ColumnWidths()
	approxEqual(t, widths[0], 100e-9, 1e-15, "star weight 1 column")
	approxEqual(t, widths[1], 300e-9, 1e-15, "star weight 3 column")
}

func TestGridMultiSpanGrowsAutoColumnsEqually(t *testing.T) {
	g, err := NewGrid([]Column{{Kind: ColAuto}, {Kind: ColAuto}})
	if err != nil {
		t.Fatal(err)
	}
	wide := mustPlay(t, 0, -1, 100e-9, 0, 0, 0, 1, 0, false)
	if err := g.Add(wide, 0, 2); err != nil {
		t.Fatal(err)
	}
	desired, err := g.Measure(1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Arrange(arrangeCtx, 0, desired); err != nil {
		t.Fatal(err)
	}
	widths := g.ColumnWidths()
	approxEqual(t, widths[0], 50e-9, 1e-15, "first auto column share")
	approxEqual(t, widths[1], 50e-9, 1e-15, "second auto column share")
}

func TestGridRejectsInvalidColumnSpec(t *testing.T) {
	if _, err := NewGrid([]Column{{Kind: ColStar, Value: 0}}); err == nil {
		t.Error("expected error for zero-weight star column")
	}
	if _, err := NewGrid([]Column{{Kind: ColFixed, Value: -1}}); err == nil {
		t.Error("expected error for negative fixed column")
	}
}

func TestGridAddRejectsOutOfRangeSpan(t *testing.T) {
	g, err := NewGrid([]Column{{Kind: ColAuto}, {Kind: ColAuto}})
	if err != nil {
		t.Fatal(err)
	}
	p := mustPlay(t, 0, -1, 10e-9, 0, 0, 0, 1, 0, false)
	if err := g.Add(p, 1, 2); err == nil {
		t.Error("expected error for span exceeding column count")
	}
}
