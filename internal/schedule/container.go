package schedule

// container is the child-list bookkeeping shared by every container node
// type: Stack, Absolute, Grid, Repeat all embed it.
type container struct {
	children []Element
}

// add attaches child to self (failing InvalidState if child already has a
// parent) and appends it to the child list.
func (c *container) add(self Element, child Element) error {
	if err := child.attach(self); err != nil {
		return err
	}
	c.children = append(c.children, child)
	return nil
}
