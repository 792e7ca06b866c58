package suggest

// Cursor tracks the highlighted suggestion for keyboard navigation.
// Index -1 means nothing is highlighted; movement clamps to [-1, size-1]
// with no wraparound.
type Cursor struct {
	index int
	size  int
}

// NewCursor returns a cursor over an empty list with no highlight.
func NewCursor() Cursor {
	return Cursor{index: -1}
}

// Reset rebinds the cursor to a recomputed list and clears the highlight.
func (c *Cursor) Reset(size int) {
	c.index = -1
	c.size = size
}

// Down moves the highlight one entry down and returns the new index.
func (c *Cursor) Down() int {
	if c.index < c.size-1 {
		c.index++
	}
	return c.index
}

// Up moves the highlight one entry up, back to no highlight at -1.
func (c *Cursor) Up() int {
	if c.index > -1 {
		c.index--
	}
	return c.index
}

// Index returns the highlighted position, -1 when nothing is highlighted.
func (c *Cursor) Index() int {
	return c.index
}

// HasSelection reports whether an entry is highlighted.
func (c *Cursor) HasSelection() bool {
	return c.index >= 0
}
