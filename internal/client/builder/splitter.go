package builder

// MinPreviewWidth is the narrowest the preview pane may get.
const MinPreviewWidth = 200

// chatPanelReserve is the width always left for the chat column.
const chatPanelReserve = 300

// Splitter tracks the draggable divider between chat and preview.
// Dragging right shrinks the preview, so the next width is the current
// width minus the horizontal delta.
type Splitter struct {
	width          int
	containerWidth int
}

// NewSplitter creates a splitter for a container, starting at half the
// container width.
func NewSplitter(containerWidth int) *Splitter {
	s := &Splitter{containerWidth: containerWidth}
	s.width = s.clamp(containerWidth / 2)
	return s
}

// Drag moves the divider by deltaX pixels and returns the clamped
// preview width.
func (s *Splitter) Drag(deltaX int) int {
	s.width = s.clamp(s.width - deltaX)
	return s.width
}

// Resize re-clamps the preview width for a new container width.
func (s *Splitter) Resize(containerWidth int) int {
	s.containerWidth = containerWidth
	s.width = s.clamp(s.width)
	return s.width
}

// Width returns the current preview width.
func (s *Splitter) Width() int { return s.width }

func (s *Splitter) clamp(width int) int {
	max := s.containerWidth - chatPanelReserve
	if width > max {
		width = max
	}
	if width < MinPreviewWidth {
		width = MinPreviewWidth
	}
	return width
}
