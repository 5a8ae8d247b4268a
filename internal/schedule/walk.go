package schedule

// Children returns e's immediate children, for callers that need to walk
// the tree generically (request-level validation, diagnostics) without
// every container type exposing its own traversal method. Leaves return
// nil.
func Children(e Element) []Element {
	switch n := e.(type) {
	case *Stack:
		return n.children
	case *Absolute:
		return n.children
	case *Grid:
		return n.children
	case *Repeat:
		if n.child == nil {
			return nil
		}
		return []Element{n.child}
	default:
		return nil
	}
}

// Walk calls visit on e and every descendant, pre-order, stopping at the
// first error.
func Walk(e Element, visit func(Element) error) error {
	if err := visit(e); err != nil {
		return err
	}
	for _, child := range Children(e) {
		if err := Walk(child, visit); err != nil {
			return err
		}
	}
	return nil
}
