// Package locomotion moves the body on the ground or on the wall, depending
// on whether any hand is anchored.
package locomotion

import (
	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type Config struct {
	MoveSpeed           float32 `yaml:"move_speed"`
	ClimbSpeed          float32 `yaml:"climb_speed"`
	JumpForce           float32 `yaml:"jump_force"`
	SlopeBlockDeg       float32 `yaml:"slope_block_deg"`
	JumpSlopeDeg        float32 `yaml:"jump_slope_deg"`
	ProbeLift           float32 `yaml:"probe_lift"`
	GroundCheckDistance float32 `yaml:"ground_check_distance"`
	SlopeProbeDepth     float32 `yaml:"slope_probe_depth"`
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:           5,
		ClimbSpeed:          3,
		JumpForce:           8,
		SlopeBlockDeg:       30,
		JumpSlopeDeg:        60,
		ProbeLift:           0.1,
		GroundCheckDistance: 0.1,
		SlopeProbeDepth:     1.0,
	}
}

// Input is the directional and jump input for one tick. Move.X strafes,
// Move.Y is forward.
type Input struct {
	Move mgl32.Vec2
	Jump bool
}

// Climber is the view of the force model the controller defers to.
type Climber interface {
	IsClimbing() bool
	ClimbingMovement(requested mgl32.Vec3) mgl32.Vec3
}

type Logger = core.Logger

type Mode int

const (
	Grounded Mode = iota
	Climbing
)

func (m Mode) String() string {
	if m == Climbing {
		return "climbing"
	}
	return "grounded"
}

// Controller holds no state of its own beyond last-tick diagnostics; the
// mode is derived from the climber every tick.
type Controller struct {
	cfg   Config
	query collision.SpatialQuery
	log   Logger

	grounded    bool
	groundSlope float32
	blocked     bool
	blockSlope  float32
	mode        Mode
}

func New(cfg Config, query collision.SpatialQuery, log Logger) *Controller {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Controller{cfg: cfg, query: query, log: log}
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) IsGrounded() bool {
	return c.grounded
}

// GroundSlope is the slope of the last ground hit, in degrees.
func (c *Controller) GroundSlope() float32 {
	return c.groundSlope
}

// Blocked reports whether the last tick's ground movement hit the slope gate.
func (c *Controller) Blocked() (bool, float32) {
	return c.blocked, c.blockSlope
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// CheckGrounded probes below the body. Ground steeper than the jump slope
// does not count.
func (c *Controller) CheckGrounded(b *body.Body) bool {
	origin := b.Position.Add(core.Up.Mul(c.cfg.ProbeLift))
	reach := b.HalfHeight + c.cfg.ProbeLift + c.cfg.GroundCheckDistance

	c.grounded = false
	c.groundSlope = 0
	hit, ok := c.query.Raycast(origin, core.Down, reach)
	if !ok {
		return false
	}
	c.groundSlope = core.SlopeDeg(hit.Normal)
	if c.groundSlope > c.cfg.JumpSlopeDeg {
		c.log.Debugf("ground too steep (%.1f°)", c.groundSlope)
		return false
	}
	c.grounded = true
	return true
}

// Jump applies the jump impulse when grounded and not climbing. It reports
// whether the jump happened.
func (c *Controller) Jump(b *body.Body, climbing bool) bool {
	switch {
	case climbing:
		c.log.Debugf("can't jump while climbing")
		return false
	case !c.grounded:
		c.log.Debugf("can't jump, not grounded")
		return false
	}
	b.ApplyImpulse(core.Up.Mul(c.cfg.JumpForce))
	c.log.Debugf("jump, force %.1f", c.cfg.JumpForce)
	return true
}

// Step runs one tick: grounded check, jump, then movement. It returns the
// displacement queued on the body.
func (c *Controller) Step(b *body.Body, climber Climber, in Input, dt float32) mgl32.Vec3 {
	climbing := climber != nil && climber.IsClimbing()
	c.mode = Grounded
	if climbing {
		c.mode = Climbing
	}

	c.CheckGrounded(b)
	if in.Jump {
		c.Jump(b, climbing)
	}

	tr := b.Transform()
	var displacement mgl32.Vec3
	if climbing {
		c.blocked = false
		displacement = climber.ClimbingMovement(c.ClimbVelocity(tr, in.Move)).Mul(dt)
	} else {
		displacement = c.groundDisplacement(b, c.GroundVelocity(tr, in.Move), dt)
	}
	b.Move(displacement)
	return displacement
}

// GroundVelocity maps input onto the facing plane at walking speed.
func (c *Controller) GroundVelocity(tr core.Transform, move mgl32.Vec2) mgl32.Vec3 {
	forward, right := tr.FlatForward(), tr.FlatRight()
	return forward.Mul(move.Y()).Add(right.Mul(move.X())).Mul(c.cfg.MoveSpeed)
}

// ClimbVelocity maps input for climbing: forward climbs up, backward steps
// away from the wall, strafing moves sideways.
func (c *Controller) ClimbVelocity(tr core.Transform, move mgl32.Vec2) mgl32.Vec3 {
	forward, right := tr.FlatForward(), tr.FlatRight()
	up := max(0, move.Y())
	back := min(0, move.Y())

	v := core.Up.Mul(up)
	v = v.Add(forward.Mul(back))
	v = v.Add(right.Mul(move.X()))
	return v.Mul(c.cfg.ClimbSpeed)
}

// groundDisplacement applies the slope gate: the surface under the intended
// next position must not be steeper than the block angle.
func (c *Controller) groundDisplacement(b *body.Body, velocity mgl32.Vec3, dt float32) mgl32.Vec3 {
	c.blocked = false
	c.blockSlope = 0

	step := velocity.Mul(dt)
	if step.Len() == 0 {
		return step
	}

	next := b.Position.Add(step)
	origin := next.Add(core.Up.Mul(c.cfg.ProbeLift))
	reach := b.HalfHeight + c.cfg.ProbeLift + c.cfg.SlopeProbeDepth
	if hit, ok := c.query.Raycast(origin, core.Down, reach); ok {
		slope := core.SlopeDeg(hit.Normal)
		if slope > c.cfg.SlopeBlockDeg {
			c.blocked = true
			c.blockSlope = slope
			c.log.Debugf("blocked, slope too steep (%.1f°)", slope)
			return mgl32.Vec3{}
		}
	}
	return step
}
