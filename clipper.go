package recycler

// CellClipper narrows a pool down to the cells a renderer actually has to
// draw. Pooled cells extend past the viewport by design; drawing only the
// clipped range keeps per-frame work proportional to what is visible.
//
// Usage:
//
//	clip := recycler.ClipCells(sr.Cells(), view.ContentRect(), view.ViewportRect())
//	for i := clip.Start; i < clip.End; i++ {
//	    c := cells[i]
//	    draw(c, clip.ScreenRect(c))
//	}
type CellClipper struct {
	Start  int  // First visible cell in layout order (inclusive)
	End    int  // Last visible cell in layout order (exclusive)
	Origin Vec2 // Content origin in screen space
}

// ClipCells returns the range of active cells that intersect viewport.
// cells must be in layout order, as returned by Engine.Cells.
func ClipCells(cells []*Cell, content, viewport Rect) CellClipper {
	clip := CellClipper{Start: len(cells), End: len(cells), Origin: content.Min()}
	for i, c := range cells {
		if !c.Active || !clip.ScreenRect(c).Intersects(viewport) {
			continue
		}
		if clip.Start == len(cells) {
			clip.Start = i
		}
		clip.End = i + 1
	}
	if clip.Start == len(cells) {
		clip.Start, clip.End = 0, 0
	}
	return clip
}

// Count returns the number of cells in the clipped range.
func (c CellClipper) Count() int { return c.End - c.Start }

// ScreenRect returns the cell's rectangle in screen space.
func (c CellClipper) ScreenRect(cell *Cell) Rect {
	return cell.Rect.Translate(c.Origin)
}
