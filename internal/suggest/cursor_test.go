package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorStartsWithoutHighlight(t *testing.T) {
	c := NewCursor()
	assert.Equal(t, -1, c.Index())
	assert.False(t, c.HasSelection())
}

func TestCursorDownClampsAtLastEntry(t *testing.T) {
	c := NewCursor()
	c.Reset(3)

	assert.Equal(t, 0, c.Down())
	assert.Equal(t, 1, c.Down())
	assert.Equal(t, 2, c.Down())
	assert.Equal(t, 2, c.Down(), "no wraparound past the last entry")
}

func TestCursorUpClampsAtNoHighlight(t *testing.T) {
	c := NewCursor()
	c.Reset(2)
	c.Down()

	assert.Equal(t, -1, c.Up())
	assert.Equal(t, -1, c.Up(), "no wraparound above -1")
}

func TestCursorDownOnEmptyListStaysUnhighlighted(t *testing.T) {
	c := NewCursor()
	c.Reset(0)

	assert.Equal(t, -1, c.Down())
	assert.False(t, c.HasSelection())
}

func TestCursorResetClearsHighlight(t *testing.T) {
	c := NewCursor()
	c.Reset(3)
	c.Down()
	c.Down()

	c.Reset(1)

	assert.Equal(t, -1, c.Index())
}
