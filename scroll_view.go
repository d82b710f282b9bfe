package recycler

// Scroll input tuning.
const (
	DefaultWheelStep float32 = 30  // Pixels per wheel notch
	pageFraction     float32 = 0.8 // PageUp/PageDown scroll 80% of the viewport
	keyLineFactor    float32 = 0.1 // Arrow keys scroll 10% of the viewport
)

// ScrollView is a minimal scroll container implementing Host. It owns the
// content position, clamps it to the content bounds and notifies listeners
// whenever it changes. It has no inertia.
type ScrollView struct {
	// WheelStep is the content distance per wheel notch.
	WheelStep float32

	viewport    Rect
	contentPos  Vec2 // Screen position of the content's top-left corner
	contentSize Vec2
	vertical    bool
	horizontal  bool

	dragging      bool
	dragStart     Vec2 // Mouse position when the drag started
	dragStartPos  Vec2 // Content position when the drag started
	listeners     []func()
	notifications int
}

// NewScrollView creates a scroll view whose content starts at the viewport's
// top-left corner.
func NewScrollView(viewport Rect) *ScrollView {
	return &ScrollView{
		WheelStep:  DefaultWheelStep,
		viewport:   viewport,
		contentPos: viewport.Min(),
		vertical:   true,
	}
}

// OnScroll registers a listener called after every content position change
// caused by input or SetContentPosition.
func (v *ScrollView) OnScroll(fn func()) {
	v.listeners = append(v.listeners, fn)
}

// Viewport implements Host.
func (v *ScrollView) Viewport() Corners { return v.viewport.Corners() }

// Content implements Host.
func (v *ScrollView) Content() Corners { return v.ContentRect().Corners() }

// ContentRect returns the content rectangle in screen space.
func (v *ScrollView) ContentRect() Rect {
	return Rect{X: v.contentPos.X, Y: v.contentPos.Y, W: v.contentSize.X, H: v.contentSize.Y}
}

// ViewportRect returns the viewport rectangle.
func (v *ScrollView) ViewportRect() Rect { return v.viewport }

// ContentPosition implements Host.
func (v *ScrollView) ContentPosition() Vec2 { return v.contentPos }

// OffsetContent implements Host. Drag anchors move with the content so an
// ongoing drag continues seamlessly.
func (v *ScrollView) OffsetContent(d Vec2) {
	v.contentPos = v.contentPos.Add(d)
	v.dragStartPos = v.dragStartPos.Add(d)
}

// SetContentSize implements Host.
func (v *ScrollView) SetContentSize(size Vec2) { v.contentSize = size }

// LockAxes implements Host.
func (v *ScrollView) LockAxes(vertical, horizontal bool) {
	v.vertical = vertical
	v.horizontal = horizontal
}

// StopMovement implements Host.
func (v *ScrollView) StopMovement() { v.dragging = false }

// SetViewport resizes the viewport. Callers reload the recycler afterwards.
func (v *ScrollView) SetViewport(r Rect) {
	v.contentPos = v.contentPos.Add(r.Min().Sub(v.viewport.Min()))
	v.viewport = r
}

// Dragging reports whether a content drag is in progress.
func (v *ScrollView) Dragging() bool { return v.dragging }

// Notifications returns how many times listeners were notified.
func (v *ScrollView) Notifications() int { return v.notifications }

// ScrollBy moves the content by d on the unlocked axes.
func (v *ScrollView) ScrollBy(d Vec2) {
	v.SetContentPosition(v.contentPos.Add(d))
}

// SetContentPosition moves the content, clamped to its bounds, and notifies
// listeners if the position changed.
func (v *ScrollView) SetContentPosition(p Vec2) {
	if !v.horizontal {
		p.X = v.contentPos.X
	}
	if !v.vertical {
		p.Y = v.contentPos.Y
	}
	p = v.clamp(p)
	if p == v.contentPos {
		return
	}
	v.contentPos = p
	v.notify()
}

// clamp keeps the content covering the viewport on each scrollable axis.
func (v *ScrollView) clamp(p Vec2) Vec2 {
	if v.vertical {
		minY := v.viewport.Y + v.viewport.H - v.contentSize.Y
		p.Y = clampf(p.Y, minf(minY, v.viewport.Y), v.viewport.Y)
	}
	if v.horizontal {
		minX := v.viewport.X + v.viewport.W - v.contentSize.X
		p.X = clampf(p.X, minf(minX, v.viewport.X), v.viewport.X)
	}
	return p
}

func (v *ScrollView) notify() {
	v.notifications++
	for _, fn := range v.listeners {
		fn()
	}
}

// HandleInput applies wheel, keyboard and drag input while the mouse is
// over the viewport.
func (v *ScrollView) HandleInput(input *InputState) {
	if input == nil {
		return
	}
	mouse := Vec2{X: input.MouseX, Y: input.MouseY}
	hovered := v.viewport.Contains(mouse)

	// Ongoing drag continues outside the viewport until release.
	if v.dragging {
		if input.MouseDown(MouseButtonLeft) {
			v.SetContentPosition(v.dragStartPos.Add(mouse.Sub(v.dragStart)))
		} else {
			v.dragging = false
		}
		return
	}
	if !hovered {
		return
	}

	if input.MouseClicked(MouseButtonLeft) {
		v.dragging = true
		v.dragStart = mouse
		v.dragStartPos = v.contentPos
		return
	}

	if input.MouseWheelX != 0 || input.MouseWheelY != 0 {
		wheel := Vec2{X: input.MouseWheelX, Y: input.MouseWheelY}
		if v.horizontal && !v.vertical && wheel.X == 0 {
			// Vertical wheels scroll horizontal-only views.
			wheel.X = wheel.Y
		}
		v.ScrollBy(wheel.Mul(v.WheelStep))
	}

	page := v.mainExtent() * pageFraction
	line := v.mainExtent() * keyLineFactor
	switch {
	case input.KeyPressed(KeyPageDown):
		v.ScrollBy(v.mainVec(-page))
	case input.KeyPressed(KeyPageUp):
		v.ScrollBy(v.mainVec(page))
	case input.KeyRepeated(KeyDown), input.KeyRepeated(KeyRight):
		v.ScrollBy(v.mainVec(-line))
	case input.KeyRepeated(KeyUp), input.KeyRepeated(KeyLeft):
		v.ScrollBy(v.mainVec(line))
	case input.KeyPressed(KeyHome):
		v.SetContentPosition(v.viewport.Min())
	case input.KeyPressed(KeyEnd):
		v.SetContentPosition(v.viewport.Max().Sub(v.contentSize))
	}
}

func (v *ScrollView) mainExtent() float32 {
	if v.vertical {
		return v.viewport.H
	}
	return v.viewport.W
}

func (v *ScrollView) mainVec(d float32) Vec2 {
	if v.vertical {
		return Vec2{Y: d}
	}
	return Vec2{X: d}
}
