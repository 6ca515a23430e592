// Package climb turns anchored hands into forces on the body.
package climb

import (
	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/core"
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/gekko3d/ascent/climbrt/hand"
	"github.com/go-gl/mathgl/mgl32"
)

// Anchors is the read side of the hand pair the model needs.
type Anchors interface {
	AnyGrabbed() bool
	BothGrabbed() bool
	GrabbedCentroid() (mgl32.Vec3, bool)
}

type Logger = core.Logger

// Model is the climbing force model. It owns the climbing flag of the body
// and the transitions between ground and climbing physics.
type Model struct {
	cfg     Config
	gravity mgl32.Vec3
	log     Logger

	climbing    bool
	pendingPull mgl32.Vec3
	reach       float32

	// Last tick's diagnostics.
	target     mgl32.Vec3
	lastForce  mgl32.Vec3
	closeRange bool
}

// New builds a model. gravity is the world gravity; reach is the hand reach
// used for the leash.
func New(cfg Config, gravity mgl32.Vec3, reach float32, log Logger) *Model {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Model{
		cfg:     cfg,
		gravity: gravity,
		reach:   reach,
		log:     log,
	}
}

func (m *Model) Config() Config {
	return m.cfg
}

func (m *Model) IsClimbing() bool {
	return m.climbing
}

// Target is the pull target of the last applied tick.
func (m *Model) Target() mgl32.Vec3 {
	return m.target
}

// LastForce is the pull force applied in the last tick, zero when the body
// was inside the close threshold.
func (m *Model) LastForce() mgl32.Vec3 {
	return m.lastForce
}

// RequestPull queues an extra force for the next force application.
func (m *Model) RequestPull(force mgl32.Vec3) {
	m.pendingPull = m.pendingPull.Add(force)
}

func (m *Model) OnHandGrabbed(side hand.Side, p grab.GrabPoint) {
	m.log.Debugf("%s hand anchored on %s", side, p)
}

func (m *Model) OnHandReleased(side hand.Side) {
	m.log.Debugf("%s hand let go", side)
}

// Sync derives the climbing state from the anchors and runs the enter or
// exit transition when it changes.
func (m *Model) Sync(b *body.Body, anchors Anchors) {
	climbing := anchors.AnyGrabbed()
	if climbing == m.climbing {
		return
	}
	m.climbing = climbing
	b.Climbing = climbing
	if climbing {
		m.start(b)
	} else {
		m.stop(b)
	}
}

func (m *Model) start(b *body.Body) {
	b.GravityEnabled = false
	b.Velocity = b.Velocity.Mul(m.cfg.EntryVelocityScale)
	b.LinearDamping = m.cfg.ClimbDamping
	m.log.Infof("started")
}

func (m *Model) stop(b *body.Body) {
	b.GravityEnabled = true
	b.LinearDamping = m.cfg.StandardDamping
	m.pendingPull = mgl32.Vec3{}
	m.log.Infof("stopped")
}

// Step syncs the climbing state and, while climbing, applies the pull
// forces and the leash. It returns whether forces were applied.
func (m *Model) Step(b *body.Body, anchors Anchors, dt float32) bool {
	m.Sync(b, anchors)
	if !m.climbing {
		m.pendingPull = mgl32.Vec3{}
		return false
	}
	centroid, ok := anchors.GrabbedCentroid()
	if !ok {
		return false
	}
	m.ApplyClimbingForces(b, centroid, anchors.BothGrabbed(), dt)
	m.Leash(b, centroid, dt)
	return true
}

// ApplyClimbingForces pulls the body toward the hang point below centroid.
// Far from it the pull is integrated and velocity capped; close to it the
// velocity is damped instead.
func (m *Model) ApplyClimbingForces(b *body.Body, centroid mgl32.Vec3, both bool, dt float32) {
	m.target = centroid.Sub(mgl32.Vec3{0, m.cfg.HangOffset, 0})
	toTarget := m.target.Sub(b.Position)
	distance := toTarget.Len()

	if m.pendingPull.Len() > 0 {
		b.ApplyForce(m.pendingPull, dt)
		m.pendingPull = mgl32.Vec3{}
	}

	if distance > m.cfg.CloseThreshold {
		m.closeRange = false
		magnitude := min(distance*m.cfg.PullStrength, m.cfg.PullStrength*2)
		force := toTarget.Mul(magnitude / distance)

		compensation := m.cfg.GravityCompensation
		if both {
			compensation = 1
		}
		force[1] += m.gravity.Y() * compensation

		m.lastForce = force
		b.ApplyForce(force, dt)
	} else {
		m.closeRange = true
		m.lastForce = mgl32.Vec3{}
		b.Velocity = b.Velocity.Mul(m.cfg.CloseDamping)
	}
	b.Velocity = core.ClampLength(b.Velocity, m.cfg.MaxVelocity)
}

// InCloseRange reports whether the last application damped instead of pulled.
func (m *Model) InCloseRange() bool {
	return m.closeRange
}

// Leash eases the body back inside reach of the grip centroid.
func (m *Model) Leash(b *body.Body, centroid mgl32.Vec3, dt float32) {
	maxDist := m.reach * m.cfg.LeashFraction
	toBody := b.Position.Sub(centroid)
	if toBody.Len() <= maxDist {
		return
	}
	target := centroid.Add(toBody.Normalize().Mul(maxDist))
	b.MovePosition(core.Lerp(b.Position, target, dt*m.cfg.LeashRate))
}

// ClimbingMovement scales requested movement while climbing.
func (m *Model) ClimbingMovement(requested mgl32.Vec3) mgl32.Vec3 {
	if !m.climbing {
		return requested
	}
	return requested.Mul(m.cfg.MovementScale)
}
