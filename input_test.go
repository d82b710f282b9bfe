package recycler

import "testing"

func TestInputState_MouseEdges(t *testing.T) {
	s := NewInputState()
	s.SetMouseButton(MouseButtonLeft, true)
	if !s.MouseClicked(MouseButtonLeft) || !s.MouseDown(MouseButtonLeft) {
		t.Fatal("press should report clicked and down")
	}

	s.Reset()
	s.SetMouseButton(MouseButtonLeft, true)
	if s.MouseClicked(MouseButtonLeft) {
		t.Error("held button should not click again")
	}

	s.Reset()
	s.SetMouseButton(MouseButtonLeft, false)
	if !s.MouseReleased(MouseButtonLeft) || s.MouseDown(MouseButtonLeft) {
		t.Error("release should report released and up")
	}

	// Out of range buttons are ignored.
	s.SetMouseButton(MouseButtonCount, true)
	if s.MouseDown(MouseButtonCount) || s.MouseClicked(-1) || s.MouseReleased(MouseButtonCount) {
		t.Error("invalid buttons should report false")
	}
}

func TestInputState_Wheel(t *testing.T) {
	s := NewInputState()
	s.AddMouseWheel(1, -1)
	s.AddMouseWheel(0, -2)
	if s.MouseWheelX != 1 || s.MouseWheelY != -3 {
		t.Errorf("wheel = %v,%v", s.MouseWheelX, s.MouseWheelY)
	}
	s.Reset()
	if s.MouseWheelX != 0 || s.MouseWheelY != 0 {
		t.Error("Reset should clear the wheel")
	}
}

func TestInputState_KeyRepeat(t *testing.T) {
	s := NewInputState()
	const dt = float32(1) / 60

	s.SetKey(KeyDown, true)
	if !s.KeyRepeated(KeyDown) || !s.KeyPressed(KeyDown) {
		t.Fatal("initial press should repeat")
	}

	repeats := 0
	for frame := 0; frame < 60; frame++ {
		s.Reset()
		s.UpdateKeyRepeat(dt)
		if s.KeyRepeated(KeyDown) {
			repeats++
		}
	}
	// One second held: 0.4s delay, then one repeat per 30ms.
	if repeats < 17 || repeats > 22 {
		t.Errorf("repeats in one second = %d", repeats)
	}

	s.Reset()
	s.SetKey(KeyDown, false)
	if s.KeyRepeated(KeyDown) || s.KeyDown(KeyDown) {
		t.Error("released key should not repeat")
	}
}

func TestInputState_PressKey(t *testing.T) {
	s := NewInputState()
	s.PressKey(KeyJ)
	if !s.KeyPressed(KeyJ) || s.KeyDown(KeyJ) {
		t.Error("PressKey should press without holding")
	}
	s.Reset()
	if s.KeyPressed(KeyJ) {
		t.Error("press should last one frame")
	}
	s.PressKey(KeyCount)
	if s.KeyPressed(KeyCount) || s.KeyRepeated(-1) {
		t.Error("invalid keys should report false")
	}
}

func TestKeyString(t *testing.T) {
	if KeyPageDown.String() != "PgDn" || KeyCount.String() != "?" || Key(-1).String() != "?" {
		t.Error("unexpected key names")
	}
}
