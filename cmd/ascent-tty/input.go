package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/ascent"
	"github.com/go-gl/mathgl/mgl32"
)

// Terminals report key presses but not releases, so movement keys count as
// held for a short window after each press (or auto-repeat).
const holdWindow = 180 * time.Millisecond

// mouseScale converts terminal cells of mouse motion to pointer units.
const mouseScale = 0.5

var keyControls = map[rune]ascent.Control{
	'w': ascent.ControlForward,
	's': ascent.ControlBack,
	'a': ascent.ControlStrafeLeft,
	'd': ascent.ControlStrafeRight,
	' ': ascent.ControlJump,
}

// ttyInput turns tcell events into samples. q and e toggle the left and
// right hand controls; mouse buttons hold them; arrow keys and mouse motion
// move the pointer.
type ttyInput struct {
	events  <-chan tcell.Event
	pulses  map[ascent.Control]time.Time
	toggled [2]bool
	buttons [2]bool
	pointer mgl32.Vec2
	mouseX  int
	mouseY  int
	primed  bool
	quit    bool
	resized bool
}

func newTTYInput(events <-chan tcell.Event) *ttyInput {
	return &ttyInput{events: events, pulses: make(map[ascent.Control]time.Time)}
}

func (in *ttyInput) Poll() ascent.Sample {
drain:
	for {
		select {
		case ev := <-in.events:
			in.handle(ev)
		default:
			break drain
		}
	}

	var s ascent.Sample
	now := time.Now()
	for control, at := range in.pulses {
		if now.Sub(at) < holdWindow {
			s.Held[control] = true
		}
	}
	s.Held[ascent.ControlLeftHand] = in.toggled[0] || in.buttons[0]
	s.Held[ascent.ControlRightHand] = in.toggled[1] || in.buttons[1]
	s.Held[ascent.ControlQuit] = in.quit
	s.Pointer = in.pointer
	in.pointer = mgl32.Vec2{}
	return s
}

func (in *ttyInput) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			in.quit = true
		case tcell.KeyUp:
			in.pointer[1] += 1
		case tcell.KeyDown:
			in.pointer[1] -= 1
		case tcell.KeyLeft:
			in.pointer[0] -= 1
		case tcell.KeyRight:
			in.pointer[0] += 1
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case 'q':
				in.toggled[0] = !in.toggled[0]
			case 'e':
				in.toggled[1] = !in.toggled[1]
			default:
				if control, ok := keyControls[r]; ok {
					in.pulses[control] = time.Now()
				}
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if in.primed {
			in.pointer = in.pointer.Add(mgl32.Vec2{float32(x-in.mouseX) * mouseScale, -float32(y-in.mouseY) * mouseScale})
		}
		in.mouseX, in.mouseY, in.primed = x, y, true

		buttons := ev.Buttons()
		in.buttons[0] = buttons&tcell.Button1 != 0
		in.buttons[1] = buttons&tcell.Button2 != 0
	case *tcell.EventResize:
		in.resized = true
	}
}

var _ ascent.InputSource = (*ttyInput)(nil)
