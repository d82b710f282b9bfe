package demo

import "github.com/go-theft-auto/recycler"

// ViewportColor is the background behind the tiles.
var ViewportColor = recycler.RGBA(0x1e, 0x1e, 0x24, 0xff)

// DrawTiles paints the active tiles that intersect viewport and returns the
// clipped range so callers can draw labels on top.
func DrawTiles(dl *recycler.DrawList, cells []*recycler.Cell, content, viewport recycler.Rect) recycler.CellClipper {
	dl.AddRect(viewport, ViewportColor)
	dl.PushClipRect(viewport)
	defer dl.PopClipRect()

	clip := recycler.ClipCells(cells, content, viewport)
	for _, cell := range cells[clip.Start:clip.End] {
		if tile, ok := cell.View.(*Tile); ok && cell.Active {
			dl.AddRect(clip.ScreenRect(cell), tile.Color)
		}
	}
	return clip
}

// DrawScrollbar paints the track and thumb when the content overflows.
func DrawScrollbar(dl *recycler.DrawList, sb *recycler.ScrollbarState, track recycler.Rect, dir recycler.Direction) {
	if !sb.Visible() {
		return
	}
	dl.AddRect(track, recycler.ColorDarkGray)
	dl.AddRect(sb.ThumbRect(track, dir), recycler.ColorGray)
}
