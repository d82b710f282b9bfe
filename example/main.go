// Example renders a recycled list or grid in a GLFW window.
//
// Prerequisites:
//
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/ -items 5000 -segments 3
//
// Wheel, drag, arrows, PageUp/PageDown and Home/End scroll. Clicking the
// scrollbar track jumps there. D toggles the debug overlay, J jumps to a
// random item, R reloads with a different item count and S writes a JSON
// snapshot.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/fulldump/goconfig"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/recycler"
	"github.com/go-theft-auto/recycler/backend/opengl"
	"github.com/go-theft-auto/recycler/internal/demo"
)

const (
	windowWidth    = 800
	windowHeight   = 600
	windowTitle    = "recycler example"
	margin         = 24
	scrollbarWidth = 10
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	c := demo.Default()
	goconfig.Read(&c)

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	if err := run(c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// layout splits the window into the list viewport and the scrollbar track.
func layout(w, h int, dir recycler.Direction) (viewport, track recycler.Rect) {
	inner := recycler.Rect{X: margin, Y: margin, W: float32(w) - 2*margin, H: float32(h) - 2*margin}
	if dir == recycler.Horizontal {
		viewport = recycler.Rect{X: inner.X, Y: inner.Y, W: inner.W, H: inner.H - scrollbarWidth - 4}
		track = recycler.Rect{X: inner.X, Y: inner.Y + inner.H - scrollbarWidth, W: inner.W, H: scrollbarWidth}
		return viewport, track
	}
	viewport = recycler.Rect{X: inner.X, Y: inner.Y, W: inner.W - scrollbarWidth - 4, H: inner.H}
	track = recycler.Rect{X: inner.X + inner.W - scrollbarWidth, Y: inner.Y, W: scrollbarWidth, H: inner.H}
	return viewport, track
}

func run(c demo.Configuration) error {
	recycler.SetVerbose(c.Verbose)

	opts, err := c.Options()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	dir, _ := demo.ParseDirection(c.Direction)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()
	input := opengl.NewGLFWInputAdapter(window)

	viewport, track := layout(windowWidth, windowHeight, dir)
	view := recycler.NewScrollView(viewport)
	scrollbar := recycler.NewScrollbarState()
	sr := recycler.NewScrollRect(view, append(opts, recycler.WithScrollbar(scrollbar))...)
	view.OnScroll(sr.OnValueChanged)

	items := demo.NewItems(c.Items)
	sr.Initialize(items, func() { sr.UpdateScrollbars() })

	overlay := recycler.NewDebugOverlay()
	debug := c.Debug
	winW, winH := windowWidth, windowHeight
	last := time.Now()

	for !window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		input.Begin(dt)
		glfw.PollEvents()
		in := input.Input()

		if w, h := window.GetSize(); w != winW || h != winH {
			winW, winH = w, h
			renderer.Resize(w, h)
			viewport, track = layout(w, h, dir)
			view.SetViewport(viewport)
			sr.ReloadData(nil, nil)
		}

		view.HandleInput(in)
		sr.Update()

		mouse := recycler.Vec2{X: in.MouseX, Y: in.MouseY}
		switch {
		case in.KeyPressed(recycler.KeyEscape):
			window.SetShouldClose(true)
		case in.KeyPressed(recycler.KeyD):
			debug = !debug
		case in.KeyPressed(recycler.KeyJ) && items.ItemCount() > 0:
			sr.JumpToCell(rand.IntN(items.ItemCount()))
		case in.KeyPressed(recycler.KeyR) && sr.IsInitialized():
			items = demo.NewItems(rand.IntN(2*c.Items + 1))
			sr.ReloadData(items, nil)
		case in.KeyPressed(recycler.KeyS):
			if err := c.WriteSnapshot(sr.Snapshot()); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case in.MouseClicked(recycler.MouseButtonLeft) && track.Contains(mouse):
			sr.ScrollToValue(scrollbar.ValueAt(track, dir, mouse))
		}

		fw, fh := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		dl := recycler.AcquireDrawList()
		draw(dl, sr, view, scrollbar, track, dir)
		if debug && sr.Engine() != nil {
			overlay.Draw(dl, sr.Engine(), recycler.GeometryFromRects(view.ViewportRect(), view.ContentRect()))
		}
		err := renderer.Render(dl)
		recycler.ReleaseDrawList(dl)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}
	return nil
}

func draw(dl *recycler.DrawList, sr *recycler.ScrollRect, view *recycler.ScrollView,
	sb *recycler.ScrollbarState, track recycler.Rect, dir recycler.Direction) {
	demo.DrawTiles(dl, sr.Cells(), view.ContentRect(), view.ViewportRect())
	demo.DrawScrollbar(dl, sb, track, dir)
}
