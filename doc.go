/*
Package recycler virtualizes scrollable lists and grids by recycling a small,
bounded pool of cell views as the viewport scrolls.

# Overview

A list of a million items needs only enough cells to cover the viewport plus
a margin. When a row of cells scrolls far enough out of view it is moved to
the opposite end of the pool and rebound to the next data index. The content
rectangle is then shifted back by one row pitch so nothing visibly jumps.

The package is split into three layers:

  - Engine (VerticalStrategy, HorizontalStrategy): the recycling algorithm.
    It owns the pool and the cell layout in content space and never moves
    the content itself; every operation returns a correction the host adds
    to its content position.
  - ScrollRect: the controller that owns one engine, forwards the host's
    scroll notifications and applies corrections.
  - Host (ScrollView): the scroll container that owns the physical content
    position. ScrollView is a minimal implementation driven by InputState.

# Quick Start

	view := recycler.NewScrollView(recycler.Rect{X: 0, Y: 0, W: 400, H: 600})
	scrollbar := recycler.NewScrollbarState()
	sr := recycler.NewScrollRect(view,
	    recycler.WithPrototype(recycler.Rect{W: 400, H: 48}),
	    recycler.WithSpacing(4),
	    recycler.WithScrollbar(scrollbar),
	)
	view.OnScroll(sr.OnValueChanged)
	sr.Initialize(items, nil)

	for !window.ShouldClose() {
	    view.HandleInput(input)
	    sr.Update() // advances initialization, one batch per frame

	    cells := sr.Cells()
	    clip := recycler.ClipCells(cells, view.ContentRect(), view.ViewportRect())
	    for _, c := range cells[clip.Start:clip.End] {
	        drawTile(c.View, clip.ScreenRect(c))
	    }
	}

items implements DataSource:

	type Items []string

	func (it Items) ItemCount() int { return len(it) }

	func (it Items) SetCell(cell *recycler.Cell, index int) {
	    cell.View.(*Tile).Label = it[index]
	}

# Coordinates

Screen space is y-down. Scrolling forward (toward later items) decreases the
content position along the scroll axis. Cell rectangles are content-local;
translate them by the content position, or use CellClipper.ScreenRect, to
draw them.

# Pool Sizing

The pool holds rows of Segments cells. Its row count covers at least 1.5
viewports, or the viewport plus one leaving and one entering row, whichever
is larger. It never exceeds the number of data rows, and never drops below
MinPoolSize cells. A row is recycled once it is more than RecyclingThreshold
cell extents past the viewport edge; TuneThreshold derives the threshold from
the viewport instead.

# Initialization

Initialize builds the pool cooperatively: each Update creates and binds at
most BatchSize cells so large pools do not stall a frame. InitializeSync
builds everything at once. JumpToCell calls made before the pool is ready are
queued and applied when it is. ReloadData rebuilds the pool from index zero
and reuses the existing cells when the layout did not change.

# Keyboard Shortcuts Reference

ScrollView reacts to input while the mouse is over its viewport:

	Mouse Wheel      Scroll by WheelStep per notch
	Click+Drag       Drag the content (continues outside the viewport)
	Page Up          Scroll back by 80% of the viewport
	Page Down        Scroll forward by 80% of the viewport
	Arrow keys       Scroll by 10% of the viewport (repeats while held)
	Home             Scroll to the first item
	End              Scroll to the end of the instantiated content

# Debugging

Snapshot captures the engine's computed geometry without changing it;
Snapshot.Validate checks the pool invariants and Snapshot.JSON encodes it for
inspection. DebugOverlay draws the viewport, the recyclable region, the
content and every cell into a DrawList. SetVerbose enables per-recycle debug
logging.
*/
package recycler
