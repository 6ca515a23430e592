package platform

import (
	"github.com/gekko3d/ascent"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// PointerScale converts cursor pixels to hand-control units.
const PointerScale = 0.1

var controlKeys = map[ascent.Control][]glfw.Key{
	ascent.ControlForward:     {glfw.KeyW, glfw.KeyUp},
	ascent.ControlBack:        {glfw.KeyS, glfw.KeyDown},
	ascent.ControlStrafeLeft:  {glfw.KeyA, glfw.KeyLeft},
	ascent.ControlStrafeRight: {glfw.KeyD, glfw.KeyRight},
	ascent.ControlJump:        {glfw.KeySpace},
	ascent.ControlSnapshot:    {glfw.KeyF12},
	ascent.ControlQuit:        {glfw.KeyEscape},
}

var controlButtons = map[ascent.Control]glfw.MouseButton{
	ascent.ControlLeftHand:  glfw.MouseButtonLeft,
	ascent.ControlRightHand: glfw.MouseButtonRight,
}

// Input polls a window. The cursor is captured so pointer motion is
// unbounded; screen-down motion maps to negative pointer Y.
type Input struct {
	window *Window
	lastX  float64
	lastY  float64
	primed bool
}

func NewInput(w *Window) *Input {
	w.glfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		w.glfw.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	return &Input{window: w}
}

func (in *Input) Poll() ascent.Sample {
	glfw.PollEvents()
	win := in.window.glfw

	var s ascent.Sample
	for control, keys := range controlKeys {
		for _, key := range keys {
			if win.GetKey(key) == glfw.Press {
				s.Held[control] = true
			}
		}
	}
	for control, button := range controlButtons {
		if win.GetMouseButton(button) == glfw.Press {
			s.Held[control] = true
		}
	}
	if win.ShouldClose() {
		s.Held[ascent.ControlQuit] = true
	}

	x, y := win.GetCursorPos()
	if in.primed {
		s.Pointer = mgl32.Vec2{
			float32(x-in.lastX) * PointerScale,
			-float32(y-in.lastY) * PointerScale,
		}
	}
	in.lastX, in.lastY, in.primed = x, y, true

	in.window.Width, in.window.Height = win.GetSize()
	return s
}

var _ ascent.InputSource = (*Input)(nil)
