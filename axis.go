package recycler

// axis maps main/cross coordinates onto X/Y. The main axis is the scroll
// axis; the cross axis is split into segments in grid mode.
type axis struct {
	horizontal bool
}

var (
	verticalAxis   = axis{horizontal: false}
	horizontalAxis = axis{horizontal: true}
)

func (a axis) main(v Vec2) float32 {
	if a.horizontal {
		return v.X
	}
	return v.Y
}

func (a axis) cross(v Vec2) float32 {
	if a.horizontal {
		return v.Y
	}
	return v.X
}

func (a axis) vec(main, cross float32) Vec2 {
	if a.horizontal {
		return Vec2{X: main, Y: cross}
	}
	return Vec2{X: cross, Y: main}
}

// start returns the main-axis start of r.
func (a axis) start(r Rect) float32 { return a.main(r.Min()) }

// end returns the main-axis end of r.
func (a axis) end(r Rect) float32 { return a.main(r.Max()) }

// extent returns the main-axis size of r.
func (a axis) extent(r Rect) float32 { return a.main(r.Size()) }

func (a axis) crossStart(r Rect) float32  { return a.cross(r.Min()) }
func (a axis) crossExtent(r Rect) float32 { return a.cross(r.Size()) }

func (a axis) rect(mainPos, crossPos, mainExt, crossExt float32) Rect {
	p := a.vec(mainPos, crossPos)
	s := a.vec(mainExt, crossExt)
	return Rect{X: p.X, Y: p.Y, W: s.X, H: s.Y}
}

// withStart returns r moved so its main-axis start is pos.
func (a axis) withStart(r Rect, pos float32) Rect {
	if a.horizontal {
		r.X = pos
	} else {
		r.Y = pos
	}
	return r
}

func (a axis) padStart(p Padding) float32 {
	if a.horizontal {
		return p.Left
	}
	return p.Top
}

func (a axis) padEnd(p Padding) float32 {
	if a.horizontal {
		return p.Right
	}
	return p.Bottom
}

func (a axis) crossPadStart(p Padding) float32 {
	if a.horizontal {
		return p.Top
	}
	return p.Left
}

func (a axis) crossPadEnd(p Padding) float32 {
	if a.horizontal {
		return p.Bottom
	}
	return p.Right
}
