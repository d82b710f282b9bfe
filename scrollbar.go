package recycler

// MinThumbExtent is the smallest thumb length in pixels.
const MinThumbExtent float32 = 20

// ScrollbarState stores the normalized metrics a ScrollRect pushes and turns
// them into track and thumb rectangles. It implements Scrollbar.
type ScrollbarState struct {
	Value float32 // Position in [0,1]
	Size  float32 // Thumb size in (0,1]
}

var _ Scrollbar = (*ScrollbarState)(nil)

// NewScrollbarState returns a scrollbar showing the whole content.
func NewScrollbarState() *ScrollbarState {
	return &ScrollbarState{Size: 1}
}

// SetValue implements Scrollbar.
func (s *ScrollbarState) SetValue(v float32) { s.Value = clampf(v, 0, 1) }

// SetSize implements Scrollbar.
func (s *ScrollbarState) SetSize(size float32) { s.Size = clampf(size, 0, 1) }

// Visible reports whether the content is larger than the viewport.
func (s *ScrollbarState) Visible() bool { return s.Size < 1 }

// ThumbRect returns the thumb inside track. The thumb runs along the track's
// longer axis for the given direction and is never shorter than
// MinThumbExtent unless the track itself is.
func (s *ScrollbarState) ThumbRect(track Rect, dir Direction) Rect {
	ax := verticalAxis
	if dir == Horizontal {
		ax = horizontalAxis
	}
	length := ax.extent(track)
	thumb := minf(length, maxf(MinThumbExtent, length*s.Size))
	pos := ax.start(track) + s.Value*(length-thumb)
	return ax.rect(pos, ax.crossStart(track), thumb, ax.crossExtent(track))
}

// ValueAt maps a point on the track to a scroll value, centering the thumb
// on it. Used for click-to-jump on the track.
func (s *ScrollbarState) ValueAt(track Rect, dir Direction, p Vec2) float32 {
	ax := verticalAxis
	if dir == Horizontal {
		ax = horizontalAxis
	}
	length := ax.extent(track)
	thumb := minf(length, maxf(MinThumbExtent, length*s.Size))
	travel := length - thumb
	if travel <= 0 {
		return 0
	}
	return clampf((ax.main(p)-ax.start(track)-thumb/2)/travel, 0, 1)
}
