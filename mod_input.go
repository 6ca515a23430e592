package ascent

import (
	"github.com/gekko3d/ascent/climbrt/hand"
	"github.com/gekko3d/ascent/climbrt/locomotion"
	"github.com/go-gl/mathgl/mgl32"
)

type Control int

const (
	ControlLeftHand Control = iota
	ControlRightHand
	ControlForward
	ControlBack
	ControlStrafeLeft
	ControlStrafeRight
	ControlJump
	ControlSnapshot
	ControlQuit
	controlCount
)

var controlNames = [controlCount]string{
	"left_hand", "right_hand", "forward", "back", "strafe_left", "strafe_right", "jump", "snapshot", "quit",
}

func (c Control) String() string {
	if c < 0 || c >= controlCount {
		return "unknown"
	}
	return controlNames[c]
}

// Sample is the raw device state read once per frame.
type Sample struct {
	Held [controlCount]bool
	// Pointer is the pointer motion since the previous sample, already
	// scaled to hand-control units.
	Pointer mgl32.Vec2
	// ViewRight and ViewUp orient hand motion; zero means the body's basis.
	ViewRight mgl32.Vec3
	ViewUp    mgl32.Vec3
}

type InputSource interface {
	Poll() Sample
}

type InputSourceFunc func() Sample

func (f InputSourceFunc) Poll() Sample {
	return f()
}

// Input latches edges and accumulates pointer motion across frames until the
// fixed stages consume them, so a frame that runs no tick loses nothing.
type Input struct {
	Held         [controlCount]bool
	JustPressed  [controlCount]bool
	JustReleased [controlCount]bool

	Pointer   mgl32.Vec2
	ViewRight mgl32.Vec3
	ViewUp    mgl32.Vec3
}

func (in *Input) latch(s Sample) {
	for c := Control(0); c < controlCount; c++ {
		if s.Held[c] && !in.Held[c] {
			in.JustPressed[c] = true
		}
		if !s.Held[c] && in.Held[c] {
			in.JustReleased[c] = true
		}
		in.Held[c] = s.Held[c]
	}
	in.Pointer = in.Pointer.Add(s.Pointer)
	in.ViewRight = s.ViewRight
	in.ViewUp = s.ViewUp
}

// TakePressed reports and clears a latched press.
func (in *Input) TakePressed(c Control) bool {
	v := in.JustPressed[c]
	in.JustPressed[c] = false
	return v
}

func (in *Input) TakeReleased(c Control) bool {
	v := in.JustReleased[c]
	in.JustReleased[c] = false
	return v
}

// TakeHands builds one tick of hand input, consuming hand edges and the
// accumulated pointer motion.
func (in *Input) TakeHands() hand.Input {
	out := hand.Input{
		Pointer:   in.Pointer,
		ViewRight: in.ViewRight,
		ViewUp:    in.ViewUp,
	}
	out.Pressed[hand.Left] = in.TakePressed(ControlLeftHand)
	out.Pressed[hand.Right] = in.TakePressed(ControlRightHand)
	out.Released[hand.Left] = in.TakeReleased(ControlLeftHand)
	out.Released[hand.Right] = in.TakeReleased(ControlRightHand)
	out.Held[hand.Left] = in.Held[ControlLeftHand]
	out.Held[hand.Right] = in.Held[ControlRightHand]
	in.Pointer = mgl32.Vec2{}
	return out
}

// TakeLocomotion reads held movement and consumes the jump edge.
func (in *Input) TakeLocomotion() locomotion.Input {
	var move mgl32.Vec2
	if in.Held[ControlForward] {
		move[1]++
	}
	if in.Held[ControlBack] {
		move[1]--
	}
	if in.Held[ControlStrafeRight] {
		move[0]++
	}
	if in.Held[ControlStrafeLeft] {
		move[0]--
	}
	return locomotion.Input{
		Move: move,
		Jump: in.TakePressed(ControlJump),
	}
}

type InputDevice struct {
	Source InputSource
}

type InputModule struct {
	Source InputSource
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{}, &InputDevice{Source: mod.Source})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(cmd *Commands, device *InputDevice, input *Input) {
	if device.Source == nil {
		return
	}
	input.latch(device.Source.Poll())

	if input.TakePressed(ControlQuit) {
		cmd.Logger().Infof("input: quit requested")
		cmd.Quit()
	}
}
