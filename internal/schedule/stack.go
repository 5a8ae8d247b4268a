package schedule

// Stack lays out children that may share channels but must not overlap on
// any one of them: each child starts at the maximum cursor across the
// channels it touches (§4.1). Forward stacks from time 0; backward mirrors
// the same layout from the final duration's right edge.
type Stack struct {
	*Base
	container
	backward bool

	childStarts []float64
	measuredEnd float64
}

// NewStack constructs an empty Stack. Pass backward=true for right-to-left
// packing.
func NewStack(backward bool, opts ...Option) *Stack {
	attrs := DefaultAttrs()
	attrs.Alignment = AlignStretch
	s := &Stack{backward: backward}
	s.Base = NewBase(s, applyOptions(attrs, opts), "Stack")
	return s
}

// Add attaches child to this Stack.
func (s *Stack) Add(child Element) error { return s.container.add(s, child) }

func (s *Stack) measureOverride(available float64) (float64, error) {
	cursor := make(map[int]float64)
	var globalMax, barrierFloor float64
	s.childStarts = make([]float64, len(s.children))

	for k := range s.children {
		// A backward stack packs its children in reverse order, measuring
		// starts from the right edge; they are turned back into left-edge
		// starts after the loop.
		i := k
		if s.backward {
			i = len(s.children) - 1 - k
		}
		child := s.children[i]
		chChannels := child.Channels()
		var start float64
		if len(chChannels) == 0 {
			start = globalMax
		} else {
			// A channel touched for the first time still has to respect
			// any barrier that already passed, even though it never
			// picked up a cursor entry of its own.
			start = barrierFloor
			for ch := range chChannels {
				if v, ok := cursor[ch]; ok && v > start {
					start = v
				}
			}
		}
		childAvail := available - start
		if childAvail < 0 {
			childAvail = 0
		}
		desired, err := child.Measure(childAvail)
		if err != nil {
			return 0, err
		}
		s.childStarts[i] = start
		end := start + desired
		if len(chChannels) == 0 {
			barrierFloor = end
			for ch := range cursor {
				cursor[ch] = end
			}
		} else {
			for ch := range chChannels {
				cursor[ch] = end
			}
		}
		if end > globalMax {
			globalMax = end
		}
	}
	if s.backward {
		for i, child := range s.children {
			s.childStarts[i] = globalMax - s.childStarts[i] - child.DesiredDuration()
		}
	}
	s.measuredEnd = globalMax
	return globalMax, nil
}

func (s *Stack) arrangeOverride(ctx ArrangeContext, time, duration float64) (float64, error) {
	slack := duration - s.measuredEnd
	if slack < 0 {
		slack = 0
	}
	for i, child := range s.children {
		start := s.childStarts[i]
		if s.backward {
			start += slack
		}
		if err := child.Arrange(ctx, time+start, child.DesiredDuration()); err != nil {
			return 0, err
		}
	}
	return duration, nil
}

func (s *Stack) renderOverride(time float64, r Renderer) error {
	// Children's actual_time is already an absolute coordinate (arrange
	// recurses with absolute times throughout), so render recurses with 0:
	// the child's own Base.Render adds its actual_time back in.
	for _, child := range s.children {
		if err := child.Render(0, r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stack) channels() map[int]bool {
	out := make(map[int]bool)
	for _, child := range s.children {
		for ch := range child.Channels() {
			out[ch] = true
		}
	}
	return out
}
