package recycler

// DebugOverlay draws the recycler's working rectangles on top of the
// content: the viewport, the recyclable region (viewport grown by the
// threshold), the instantiated content and every bound cell.
type DebugOverlay struct {
	ViewportColor   uint32
	RecyclableColor uint32
	ContentColor    uint32
	CellColor       uint32
	InactiveColor   uint32
	Thickness       float32
}

// NewDebugOverlay returns an overlay with the default palette.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		ViewportColor:   ColorGreen,
		RecyclableColor: ColorYellow,
		ContentColor:    ColorMagenta,
		CellColor:       ColorCyan,
		InactiveColor:   RGBA(128, 128, 128, 96),
		Thickness:       1,
	}
}

// Draw appends the overlay for engine at geo to dl. Inactive cells are drawn
// only when InactiveColor is not transparent.
func (o *DebugOverlay) Draw(dl *DrawList, engine Engine, geo Geometry) {
	if dl == nil || engine == nil {
		return
	}
	snap := engine.Snapshot(geo)
	for _, c := range snap.Cells {
		color := o.CellColor
		if !c.Active {
			color = o.InactiveColor
		}
		dl.AddRectOutline(c.Rect, color, o.Thickness)
	}
	dl.AddRectOutline(snap.Content, o.ContentColor, o.Thickness)
	dl.AddRectOutline(snap.Recyclable, o.RecyclableColor, o.Thickness)
	dl.AddRectOutline(snap.Viewport, o.ViewportColor, o.Thickness*2)
}
