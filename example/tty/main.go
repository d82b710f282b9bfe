// Tty renders a recycled list or grid in the terminal.
//
//	go run ./example/tty -items 500 -segments 4
//
// Wheel, drag, arrows, PgUp/PgDn and Home/End scroll. Clicking the
// scrollbar column jumps there. d toggles the debug overlay, j jumps to a
// random item, r reloads, s writes a JSON snapshot and q quits.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/fulldump/goconfig"
	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/recycler"
	"github.com/go-theft-auto/recycler/backend/terminal"
	"github.com/go-theft-auto/recycler/internal/demo"
)

// terminalDefaults adapts the pixel-based demo defaults to character cells.
func terminalDefaults() demo.Configuration {
	c := demo.Default()
	c.Items = 500
	c.Spacing = 0
	c.CellWidth = 24
	c.CellHeight = 3
	c.Aspect = false
	return c
}

func main() {
	c := terminalDefaults()
	goconfig.Read(&c)

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
		return
	}

	if err := run(c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the terminal demo state.
type app struct {
	cfg       demo.Configuration
	dir       recycler.Direction
	screen    *terminal.Screen
	view      *recycler.ScrollView
	sr        *recycler.ScrollRect
	scrollbar *recycler.ScrollbarState
	items     *demo.Items
	overlay   *recycler.DebugOverlay
	ticker    *edgeTicker
	track     recycler.Rect
	debug     bool
	status    string
}

func run(c demo.Configuration) error {
	// Logs would corrupt the terminal; keep them off unless asked for.
	recycler.SetVerbose(c.Verbose)

	opts, err := c.Options()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	dir, _ := demo.ParseDirection(c.Direction)

	screen, err := terminal.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	a := &app{
		cfg:       c,
		dir:       dir,
		screen:    screen,
		scrollbar: recycler.NewScrollbarState(),
		items:     demo.NewItems(c.Items),
		overlay:   recycler.NewDebugOverlay(),
		debug:     c.Debug,
	}
	a.overlay.InactiveColor = recycler.ColorTransparent

	if c.Sound {
		a.ticker, err = newEdgeTicker()
		if err != nil {
			a.status = fmt.Sprintf("sound disabled: %v", err)
		}
	}
	defer a.ticker.Close()

	viewport, track := a.layout()
	a.track = track
	a.view = recycler.NewScrollView(viewport)
	a.view.WheelStep = 1
	a.sr = recycler.NewScrollRect(a.view, append(opts, recycler.WithScrollbar(a.scrollbar))...)
	a.view.OnScroll(a.onScroll)
	a.sr.Initialize(a.items, nil)

	return a.loop()
}

func (a *app) loop() error {
	frame := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer frame.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.Tcell().PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	a.screen.Begin(0)
	for {
		select {
		case ev := <-events:
			switch a.screen.HandleEvent(ev) {
			case terminal.ActionQuit:
				return nil
			case terminal.ActionResize:
				viewport, track := a.layout()
				a.track = track
				a.view.SetViewport(viewport)
				a.sr.ReloadData(nil, nil)
			}

		case now := <-frame.C:
			a.update()
			a.draw()
			a.screen.Begin(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}

// layout reserves the last row for the status line and one column or row for
// the scrollbar.
func (a *app) layout() (viewport, track recycler.Rect) {
	size := a.screen.Size()
	body := recycler.Rect{W: size.W, H: max(size.H-1, 0)}
	if a.dir == recycler.Horizontal {
		viewport = recycler.Rect{W: body.W, H: max(body.H-1, 0)}
		track = recycler.Rect{Y: body.H - 1, W: body.W, H: 1}
		return viewport, track
	}
	viewport = recycler.Rect{W: max(body.W-1, 0), H: body.H}
	track = recycler.Rect{X: body.W - 1, W: 1, H: body.H}
	return viewport, track
}

func (a *app) onScroll() {
	before := a.scrollbar.Value
	a.sr.OnValueChanged()
	after := a.scrollbar.Value
	if a.scrollbar.Visible() && after != before && (after == 0 || after == 1) {
		a.ticker.Tick()
	}
}

func (a *app) update() {
	in := a.screen.Input()
	a.view.HandleInput(in)
	a.sr.Update()

	mouse := recycler.Vec2{X: in.MouseX, Y: in.MouseY}
	switch {
	case in.KeyPressed(recycler.KeyD):
		a.debug = !a.debug
	case in.KeyPressed(recycler.KeyJ) && a.items.ItemCount() > 0:
		index := rand.IntN(a.items.ItemCount())
		a.sr.JumpToCell(index)
		a.status = fmt.Sprintf("jumped to %d", index)
	case in.KeyPressed(recycler.KeyR) && a.sr.IsInitialized():
		a.items = demo.NewItems(rand.IntN(2*a.cfg.Items + 1))
		a.sr.ReloadData(a.items, nil)
		a.status = fmt.Sprintf("reloaded %d items", a.items.ItemCount())
	case in.KeyPressed(recycler.KeyS):
		if err := a.cfg.WriteSnapshot(a.sr.Snapshot()); err != nil {
			a.status = err.Error()
		} else {
			a.status = "snapshot written to " + a.cfg.Snapshot
		}
	case in.MouseClicked(recycler.MouseButtonLeft) && a.track.Contains(mouse):
		a.sr.ScrollToValue(a.scrollbar.ValueAt(a.track, a.dir, mouse))
	}
}

func (a *app) draw() {
	a.screen.Clear()
	vp := a.view.ViewportRect()

	dl := recycler.AcquireDrawList()
	defer recycler.ReleaseDrawList(dl)

	cells := a.sr.Cells()
	clip := demo.DrawTiles(dl, cells, a.view.ContentRect(), vp)
	if a.debug && a.sr.Engine() != nil {
		dl.PushClipRect(vp)
		a.overlay.Draw(dl, a.sr.Engine(), recycler.GeometryFromRects(vp, a.view.ContentRect()))
		dl.PopClipRect()
	}
	demo.DrawScrollbar(dl, a.scrollbar, a.track, a.dir)
	a.screen.Render(dl)

	// Labels go on top of the painted tiles.
	for _, cell := range cells[clip.Start:clip.End] {
		tile, ok := cell.View.(*demo.Tile)
		if !ok || !cell.Active {
			continue
		}
		r := clip.ScreenRect(cell)
		x, y := int(r.X+0.5), int(r.Y+r.H/2)
		if float32(y) < vp.Y || float32(y) >= vp.Y+vp.H {
			continue
		}
		x = max(x, int(vp.X))
		width := int(min(r.X+r.W, vp.X+vp.W)) - x
		a.screen.DrawText(x+1, y, width-1, tile.Label, tcell.ColorWhite)
	}

	snap := a.sr.Snapshot()
	first, lastIdx := snap.BoundRange()
	line := fmt.Sprintf(" %s | %d items | pool %d | bound %d..%d | %.0f%%  %s",
		snap.State, snap.ItemCount, snap.PoolSize, first, lastIdx, a.scrollbar.Value*100, a.status)
	size := a.screen.Size()
	a.screen.DrawText(0, int(size.H)-1, int(size.W), line, tcell.ColorYellow)
	a.screen.Show()
}
