// Command gen renders the recycler in a few representative states, captures
// framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/recycler"
	"github.com/go-theft-auto/recycler/backend/opengl"
	"github.com/go-theft-auto/recycler/internal/demo"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single recycler state to capture.
type screenshot struct {
	name   string // filename without extension
	width  int    // viewport width
	height int    // viewport height
	items  int    // item count
	debug  bool   // draw the debug overlay

	config func(c *demo.Configuration)
	setup  func(view *recycler.ScrollView, sr *recycler.ScrollRect) // scroll state before capture
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

const (
	margin         = 16
	scrollbarWidth = 8
)

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only update the renderer projection. The hidden window stays at
	// 800x600, larger than every screenshot.
	renderer.Resize(s.width, s.height)

	c := demo.Default()
	c.Items = s.items
	c.BatchSize = 0
	if s.config != nil {
		s.config(&c)
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	dir, _ := demo.ParseDirection(c.Direction)

	viewport := recycler.Rect{X: margin, Y: margin,
		W: float32(s.width) - 2*margin - scrollbarWidth - 4, H: float32(s.height) - 2*margin}
	track := recycler.Rect{X: viewport.X + viewport.W + 4, Y: margin, W: scrollbarWidth, H: viewport.H}
	if dir == recycler.Horizontal {
		viewport = recycler.Rect{X: margin, Y: margin,
			W: float32(s.width) - 2*margin, H: float32(s.height) - 2*margin - scrollbarWidth - 4}
		track = recycler.Rect{X: margin, Y: viewport.Y + viewport.H + 4, W: viewport.W, H: scrollbarWidth}
	}

	// Fresh scroll rect per screenshot to avoid state leaking between captures.
	view := recycler.NewScrollView(viewport)
	sb := recycler.NewScrollbarState()
	sr := recycler.NewScrollRect(view, append(opts, recycler.WithScrollbar(sb))...)
	view.OnScroll(sr.OnValueChanged)
	sr.InitializeSync(demo.NewItems(c.Items), nil)
	if s.setup != nil {
		s.setup(view, sr)
	}

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := recycler.AcquireDrawList()
	defer recycler.ReleaseDrawList(dl)
	demo.DrawTiles(dl, sr.Cells(), view.ContentRect(), viewport)
	demo.DrawScrollbar(dl, sb, track, dir)
	if s.debug {
		recycler.NewDebugOverlay().Draw(dl, sr.Engine(), recycler.GeometryFromRects(viewport, view.ContentRect()))
	}
	if err := renderer.Render(dl); err != nil {
		return err
	}

	// Read pixels
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the list of states to capture.
func buildScreenshots() []screenshot {
	grid := func(segments int) func(c *demo.Configuration) {
		return func(c *demo.Configuration) {
			c.Segments = segments
			c.CellWidth, c.CellHeight = 120, 120
		}
	}
	return []screenshot{
		{name: "list", width: 480, height: 360, items: 1000},
		{
			name: "list_scrolled", width: 480, height: 360, items: 1000,
			setup: func(view *recycler.ScrollView, _ *recycler.ScrollRect) {
				for range 40 {
					view.ScrollBy(recycler.Vec2{Y: -37})
				}
			},
		},
		{
			name: "list_debug", width: 480, height: 360, items: 1000, debug: true,
			setup: func(view *recycler.ScrollView, _ *recycler.ScrollRect) {
				view.ScrollBy(recycler.Vec2{Y: -75})
			},
		},
		{
			name: "grid_end", width: 520, height: 400, items: 97, config: grid(4),
			setup: func(_ *recycler.ScrollView, sr *recycler.ScrollRect) {
				sr.JumpToCell(96)
			},
		},
		{
			name: "horizontal", width: 600, height: 240, items: 300, debug: true,
			config: func(c *demo.Configuration) {
				c.Direction = "horizontal"
				c.CellWidth, c.CellHeight = 80, 200
			},
			setup: func(_ *recycler.ScrollView, sr *recycler.ScrollRect) {
				sr.ScrollToValue(0.5)
			},
		},
		{name: "short_list", width: 480, height: 360, items: 3},
	}
}
