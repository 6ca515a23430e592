package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

var (
	Up      = mgl32.Vec3{0, 1, 0}
	Down    = mgl32.Vec3{0, -1, 0}
	Forward = mgl32.Vec3{0, 0, 1}
	Back    = mgl32.Vec3{0, 0, -1}
	Right   = mgl32.Vec3{1, 0, 0}
	Left    = mgl32.Vec3{-1, 0, 0}
)

// Transform places the climbing body in the world. Rotation only ever holds
// yaw; head pitch is owned by the look controller and never reaches here.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform(position mgl32.Vec3, yawDeg float32) *Transform {
	return &Transform{
		Position: position,
		Rotation: YawRotation(yawDeg),
	}
}

func YawRotation(yawDeg float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(yawDeg), Up)
}

func (t *Transform) SetYaw(yawDeg float32) {
	t.Rotation = YawRotation(yawDeg)
}

// Forward is +Z rotated by yaw.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(Forward)
}

// Right is +X rotated by yaw.
func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(Right)
}

func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(Up)
}

// ToWorld maps a body-local offset into a world-space offset (rotation only).
func (t *Transform) ToWorld(local mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(local)
}

// FlatForward and FlatRight are the facing-plane axes used for walking.
func (t *Transform) FlatForward() mgl32.Vec3 {
	return Flatten(t.Forward())
}

func (t *Transform) FlatRight() mgl32.Vec3 {
	return Flatten(t.Right())
}
