// Package hand implements the per-hand anchor state machine and the
// two-hand pair that drives it from input.
package hand

import (
	"fmt"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/go-gl/mathgl/mgl32"
)

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Other returns the opposite hand.
func (s Side) Other() Side {
	return 1 - s
}

type State int

const (
	Free State = iota
	Dragging
	Grabbed
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Dragging:
		return "dragging"
	case Grabbed:
		return "grabbed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Anchor is one hand. Its fields change only through the transition methods,
// which keep the grab point defined exactly while the state is Grabbed.
type Anchor struct {
	side         Side
	state        State
	targetOffset mgl32.Vec3
	point        grab.GrabPoint
}

func newAnchor(side Side, rest mgl32.Vec3) Anchor {
	return Anchor{side: side, state: Free, targetOffset: rest}
}

func (a *Anchor) Side() Side { return a.side }
func (a *Anchor) State() State { return a.state }
func (a *Anchor) TargetOffset() mgl32.Vec3 { return a.targetOffset }
func (a *Anchor) IsGrabbed() bool { return a.state == Grabbed }
func (a *Anchor) IsDragging() bool { return a.state == Dragging }
func (a *Anchor) GrabbedShape() collision.ShapeId {
	if a.state != Grabbed {
		return collision.NoShape
	}
	return a.point.Shape
}

// GrabPoint reports the anchored point; ok is false unless Grabbed.
func (a *Anchor) GrabPoint() (grab.GrabPoint, bool) {
	if a.state != Grabbed {
		return grab.GrabPoint{}, false
	}
	return a.point, true
}

// WorldPosition is the grab point while Grabbed, otherwise the body
// position plus the target offset.
func (a *Anchor) WorldPosition(bodyPos mgl32.Vec3) mgl32.Vec3 {
	if a.state == Grabbed {
		return a.point.Position
	}
	return bodyPos.Add(a.targetOffset)
}

func (a *Anchor) beginDrag() {
	a.state = Dragging
}

func (a *Anchor) stopDrag() {
	if a.state == Dragging {
		a.state = Free
	}
}

func (a *Anchor) attach(p grab.GrabPoint, bodyPos mgl32.Vec3) {
	a.state = Grabbed
	a.point = p
	a.targetOffset = p.Position.Sub(bodyPos)
}

// detach re-bases the target offset on the hand's last world position.
func (a *Anchor) detach(bodyPos mgl32.Vec3) {
	handPos := a.WorldPosition(bodyPos)
	a.state = Free
	a.point = grab.GrabPoint{}
	a.targetOffset = handPos.Sub(bodyPos)
}
