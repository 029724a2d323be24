package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitterStartsAtHalfWidthClamped(t *testing.T) {
	s := NewSplitter(1200)
	assert.Equal(t, 600, s.Width())

	narrow := NewSplitter(500)
	assert.Equal(t, MinPreviewWidth, narrow.Width())
}

func TestDragMovesAgainstDelta(t *testing.T) {
	s := NewSplitter(1200)

	// Dragging right shrinks the preview
	assert.Equal(t, 550, s.Drag(50))
	// Dragging left grows it
	assert.Equal(t, 650, s.Drag(-100))
}

func TestDragClampsToBounds(t *testing.T) {
	s := NewSplitter(1200)

	assert.Equal(t, MinPreviewWidth, s.Drag(10000))
	assert.Equal(t, 1200-300, s.Drag(-10000))
}

func TestDragNeverLeavesBounds(t *testing.T) {
	s := NewSplitter(1000)
	deltas := []int{-5000, 37, -1, 900, -900, 0, 12345, -12345, 251, -499}

	for _, delta := range deltas {
		width := s.Drag(delta)
		assert.GreaterOrEqual(t, width, MinPreviewWidth)
		assert.LessOrEqual(t, width, 1000-300)
	}
}

func TestResizeReclamps(t *testing.T) {
	s := NewSplitter(1200)
	s.Drag(-10000) // pin to max: 900

	assert.Equal(t, 500, s.Resize(800))
	assert.Equal(t, MinPreviewWidth, s.Resize(400))
}
