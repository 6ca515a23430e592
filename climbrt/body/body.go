// Package body holds the simulated climber: a rigid capsule with velocity,
// gravity and damping flags, and a pending kinematic move.
package body

import (
	"math"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type Config struct {
	Mass          float32 `yaml:"mass"`
	HalfHeight    float32 `yaml:"half_height"`
	Radius        float32 `yaml:"radius"`
	LinearDamping float32 `yaml:"linear_damping"`
}

func DefaultConfig() Config {
	return Config{
		Mass:          1,
		HalfHeight:    1,
		Radius:        0.5,
		LinearDamping: 2,
	}
}

// Body is the climbing subject. Position is the capsule center.
type Body struct {
	Position       mgl32.Vec3
	Velocity       mgl32.Vec3
	Yaw            float32
	Mass           float32
	GravityEnabled bool
	LinearDamping  float32
	Climbing       bool

	HalfHeight float32
	Radius     float32

	// Shape is the body's own collider, if it has one in the world.
	Shape collision.ShapeId

	force mgl32.Vec3
	move  mgl32.Vec3
}

func New(cfg Config, position mgl32.Vec3, yawDeg float32) *Body {
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	return &Body{
		Position:       position,
		Yaw:            yawDeg,
		Mass:           cfg.Mass,
		GravityEnabled: true,
		LinearDamping:  cfg.LinearDamping,
		HalfHeight:     cfg.HalfHeight,
		Radius:         cfg.Radius,
	}
}

func (b *Body) Transform() core.Transform {
	return *core.NewTransform(b.Position, b.Yaw)
}

// Feet is the lowest point of the capsule.
func (b *Body) Feet() mgl32.Vec3 {
	return b.Position.Sub(mgl32.Vec3{0, b.HalfHeight, 0})
}

func (b *Body) ApplyImpulse(impulse mgl32.Vec3) {
	b.Velocity = b.Velocity.Add(impulse.Mul(1.0 / b.Mass))
}

// ApplyForce integrates a force into velocity immediately.
func (b *Body) ApplyForce(force mgl32.Vec3, dt float32) {
	b.Velocity = b.Velocity.Add(force.Mul(dt / b.Mass))
}

// AddForce accumulates a force for the next Integrate.
func (b *Body) AddForce(force mgl32.Vec3) {
	b.force = b.force.Add(force)
}

// MovePosition queues a kinematic displacement, resolved against the world
// together with the velocity displacement on the next physics step.
func (b *Body) MovePosition(target mgl32.Vec3) {
	b.move = b.move.Add(target.Sub(b.Position))
}

func (b *Body) Move(displacement mgl32.Vec3) {
	b.move = b.move.Add(displacement)
}

// Integrate applies gravity, accumulated forces and damping to velocity and
// returns the displacement for this step, pending moves included. Accumulators
// are cleared.
func (b *Body) Integrate(gravity mgl32.Vec3, dt float32) mgl32.Vec3 {
	if b.GravityEnabled {
		b.Velocity = b.Velocity.Add(gravity.Mul(dt))
	}
	b.Velocity = b.Velocity.Add(b.force.Mul(dt / b.Mass))
	b.force = mgl32.Vec3{}

	if b.LinearDamping > 0 {
		b.Velocity = b.Velocity.Mul(mgl32.Clamp(1-b.LinearDamping*dt, 0, 1))
	}

	displacement := b.Velocity.Mul(dt).Add(b.move)
	b.move = mgl32.Vec3{}

	l := float64(displacement.Len())
	if math.IsNaN(l) || math.IsInf(l, 0) {
		b.Velocity = mgl32.Vec3{}
		return mgl32.Vec3{}
	}
	return displacement
}

// PendingMove is the kinematic displacement queued this step.
func (b *Body) PendingMove() mgl32.Vec3 {
	return b.move
}
