// Package terminal renders recycler draw lists into a tcell screen and maps
// tcell events onto recycler input state. One terminal cell is one unit of
// layout space.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/recycler"
)

// Screen wraps a tcell screen for recycler demos.
type Screen struct {
	screen tcell.Screen
	input  *recycler.InputState
	base   tcell.Style
}

// NewScreen initializes the terminal and enables mouse reporting.
func NewScreen() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewScreenFrom(screen), nil
}

// NewScreenFrom wraps an already initialized tcell screen, such as a
// simulation screen in tests.
func NewScreenFrom(screen tcell.Screen) *Screen {
	screen.EnableMouse()
	screen.HideCursor()
	return &Screen{
		screen: screen,
		input:  recycler.NewInputState(),
		base:   tcell.StyleDefault,
	}
}

// Tcell returns the wrapped screen.
func (s *Screen) Tcell() tcell.Screen { return s.screen }

// Size returns the terminal size in cells.
func (s *Screen) Size() recycler.Rect {
	w, h := s.screen.Size()
	return recycler.Rect{W: float32(w), H: float32(h)}
}

// Close restores the terminal.
func (s *Screen) Close() { s.screen.Fini() }

// Clear blanks the back buffer.
func (s *Screen) Clear() { s.screen.Clear() }

// Show flushes the back buffer to the terminal.
func (s *Screen) Show() { s.screen.Show() }

// Render rasterizes dl into the back buffer. A cell is painted when its
// center lies inside a quad and its clip rectangle. Quads are painted in
// submission order, so later quads win.
func (s *Screen) Render(dl *recycler.DrawList) {
	if dl == nil || len(dl.VtxBuffer) == 0 {
		return
	}
	dl.Finalize()
	for _, cmd := range dl.CmdBuffer {
		idx := dl.IdxBuffer[cmd.IndexOffset : cmd.IndexOffset+cmd.ElemCount]
		for q := 0; q+6 <= len(idx); q += 6 {
			tl := dl.VtxBuffer[cmd.VertexOffset+uint32(idx[q])]
			br := dl.VtxBuffer[cmd.VertexOffset+uint32(idx[q+2])]
			s.fill(tl.Pos, br.Pos, cmd.ClipRect, tl.Color)
		}
	}
}

func (s *Screen) fill(tl, br [2]float32, clip [4]float32, color uint32) {
	_, _, _, a := recycler.UnpackRGBA(color)
	if a < 0x40 {
		return
	}
	style := s.base.Background(Color(color))
	w, h := s.screen.Size()
	x0 := max(ceilCell(max(tl[0], clip[0])), 0)
	y0 := max(ceilCell(max(tl[1], clip[1])), 0)
	x1 := min(ceilCell(min(br[0], clip[2])), w)
	y1 := min(ceilCell(min(br[1], clip[3])), h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mainc, combc, old, _ := s.screen.GetContent(x, y)
			fg, _, _ := old.Decompose()
			s.screen.SetContent(x, y, mainc, combc, style.Foreground(fg))
		}
	}
}

// ceilCell returns the first cell whose center (i+0.5) is at or after v.
func ceilCell(v float32) int {
	i := int(v)
	if float32(i)+0.5 < v {
		i++
	}
	return i
}

// DrawText writes text at (x, y), truncated to width cells. Wide runes take
// two cells. The existing background is kept.
func (s *Screen) DrawText(x, y, width int, text string, fg tcell.Color) {
	if width <= 0 {
		return
	}
	text = runewidth.Truncate(text, width, "…")
	for _, r := range text {
		_, _, old, _ := s.screen.GetContent(x, y)
		s.screen.SetContent(x, y, r, nil, old.Foreground(fg))
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// Color converts a packed 0xAABBGGRR color to a tcell color.
func Color(c uint32) tcell.Color {
	r, g, b, _ := recycler.UnpackRGBA(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Action is what the demo loop should do after an event.
type Action int

const (
	ActionNone Action = iota
	ActionResize
	ActionQuit
)

// Begin clears per-frame input state.
func (s *Screen) Begin(dt float32) {
	s.input.Reset()
	s.input.UpdateKeyRepeat(dt)
}

// Input returns the input collected since Begin.
func (s *Screen) Input() *recycler.InputState { return s.input }

// HandleEvent folds ev into the input state.
func (s *Screen) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		return ActionResize
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return ActionQuit
		}
		if k := mapKey(ev); k != recycler.KeyNone {
			s.input.PressKey(k)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		s.input.SetMousePos(float32(x)+0.5, float32(y)+0.5)
		buttons := ev.Buttons()
		s.input.SetMouseButton(recycler.MouseButtonLeft, buttons&tcell.Button1 != 0)
		s.input.SetMouseButton(recycler.MouseButtonRight, buttons&tcell.Button2 != 0)
		switch {
		case buttons&tcell.WheelUp != 0:
			s.input.AddMouseWheel(0, 1)
		case buttons&tcell.WheelDown != 0:
			s.input.AddMouseWheel(0, -1)
		case buttons&tcell.WheelLeft != 0:
			s.input.AddMouseWheel(1, 0)
		case buttons&tcell.WheelRight != 0:
			s.input.AddMouseWheel(-1, 0)
		}
	}
	return ActionNone
}

func mapKey(ev *tcell.EventKey) recycler.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return recycler.KeyUp
	case tcell.KeyDown:
		return recycler.KeyDown
	case tcell.KeyLeft:
		return recycler.KeyLeft
	case tcell.KeyRight:
		return recycler.KeyRight
	case tcell.KeyPgUp:
		return recycler.KeyPageUp
	case tcell.KeyPgDn:
		return recycler.KeyPageDown
	case tcell.KeyHome:
		return recycler.KeyHome
	case tcell.KeyEnd:
		return recycler.KeyEnd
	case tcell.KeyEnter:
		return recycler.KeyEnter
	case tcell.KeyEscape:
		return recycler.KeyEscape
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'd':
			return recycler.KeyD
		case 'j':
			return recycler.KeyJ
		case 'r':
			return recycler.KeyR
		case 's':
			return recycler.KeyS
		}
	}
	return recycler.KeyNone
}
