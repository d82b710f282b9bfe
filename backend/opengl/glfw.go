package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/recycler"
)

// GLFWInputAdapter adapts GLFW callbacks to recycler.InputState.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *recycler.InputState
}

// NewGLFWInputAdapter installs input callbacks on window.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	a := &GLFWInputAdapter{
		window: window,
		input:  recycler.NewInputState(),
	}
	window.SetKeyCallback(a.keyCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	return a
}

// Begin clears per-frame state. Call it before glfw.PollEvents so callbacks
// accumulate into a fresh frame.
func (a *GLFWInputAdapter) Begin(dt float32) {
	a.input.Reset()
	a.input.UpdateKeyRepeat(dt)
}

// Input returns the input state collected since Begin.
func (a *GLFWInputAdapter) Input() *recycler.InputState {
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))
	a.input.ModCtrl = a.window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightControl) == glfw.Press
	a.input.ModShift = a.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightShift) == glfw.Press
	return a.input
}

func (a *GLFWInputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := mapKey(key)
	if k == recycler.KeyNone {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := mapMouseButton(button)
	if b < 0 {
		return
	}
	a.input.SetMouseButton(b, action == glfw.Press)
}

func (a *GLFWInputAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.input.AddMouseWheel(float32(xoff), float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

var glfwKeys = map[glfw.Key]recycler.Key{
	glfw.KeyLeft:     recycler.KeyLeft,
	glfw.KeyRight:    recycler.KeyRight,
	glfw.KeyUp:       recycler.KeyUp,
	glfw.KeyDown:     recycler.KeyDown,
	glfw.KeyPageUp:   recycler.KeyPageUp,
	glfw.KeyPageDown: recycler.KeyPageDown,
	glfw.KeyHome:     recycler.KeyHome,
	glfw.KeyEnd:      recycler.KeyEnd,
	glfw.KeyEnter:    recycler.KeyEnter,
	glfw.KeyEscape:   recycler.KeyEscape,
	glfw.KeyD:        recycler.KeyD,
	glfw.KeyJ:        recycler.KeyJ,
	glfw.KeyR:        recycler.KeyR,
	glfw.KeyS:        recycler.KeyS,
}

func mapKey(key glfw.Key) recycler.Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return recycler.KeyNone
}

func mapMouseButton(button glfw.MouseButton) recycler.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return recycler.MouseButtonLeft
	case glfw.MouseButtonRight:
		return recycler.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return recycler.MouseButtonMiddle
	default:
		return -1
	}
}
