package ascent

import (
	"math"

	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// PhysicsWorld moves the body through the static world. The body collides
// as a capsule approximated by three spheres along its axis.
type PhysicsWorld struct {
	Gravity mgl32.Vec3
	// SweepStep is the largest increment tested per axis.
	SweepStep float32
	// Refinements is the number of halvings used to close the gap to a
	// contact once a sweep increment collides.
	Refinements     int
	MaxDisplacement float32
}

func NewPhysicsWorld(cfg PhysicsConfig) *PhysicsWorld {
	pw := &PhysicsWorld{
		Gravity:         cfg.Gravity,
		SweepStep:       cfg.SweepStep,
		Refinements:     cfg.Refinements,
		MaxDisplacement: 10.0,
	}
	if pw.SweepStep <= 0 {
		pw.SweepStep = 0.1
	}
	if pw.Refinements < 0 {
		pw.Refinements = 0
	}
	return pw
}

type PhysicsModule struct {
	Config PhysicsConfig
}

func (m PhysicsModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewPhysicsWorld(m.Config))

	app.UseSystem(
		System(physicsSystem).
			InStage(PhysicsStep),
	)
}

func physicsSystem(t *Time, physics *PhysicsWorld, world *collision.World, b *body.Body) {
	physics.Step(world, b, t.FixedSeconds())
}

// Step integrates the body and resolves its displacement axis by axis, Y
// first so ground contact settles before sliding.
func (pw *PhysicsWorld) Step(query collision.SpatialQuery, b *body.Body, dt float32) {
	if dt <= 0 || dt > 1.0 { // Safety cap for dt
		return
	}

	displacement := b.Integrate(pw.Gravity, dt)
	displacement = core.ClampLength(displacement, pw.MaxDisplacement)

	pos, vel := b.Position, b.Velocity
	for _, axis := range [3]int{1, 0, 2} {
		pos, vel = pw.resolveAxis(query, b, pos, vel, displacement[axis], axis)
	}
	b.Position = pos
	b.Velocity = vel
}

func (pw *PhysicsWorld) resolveAxis(query collision.SpatialQuery, b *body.Body, pos, vel mgl32.Vec3, dist float32, axis int) (mgl32.Vec3, mgl32.Vec3) {
	if math.Abs(float64(dist)) < 0.0001 {
		return pos, vel
	}

	sign := float32(1)
	if dist < 0 {
		sign = -1
	}
	// A body that starts inside geometry may move as long as it does not
	// sink deeper.
	allowed := pw.Penetration(query, b, pos)
	blocked := func(p mgl32.Vec3) bool {
		return pw.Penetration(query, b, p) > allowed
	}

	remaining := dist * sign
	for remaining > 0 {
		move := min(pw.SweepStep, remaining)

		testPos := pos
		testPos[axis] += sign * move
		if !blocked(testPos) {
			pos = testPos
			remaining -= move
			continue
		}

		lo, hi := float32(0), move
		for i := 0; i < pw.Refinements; i++ {
			mid := (lo + hi) / 2
			probe := pos
			probe[axis] += sign * mid
			if blocked(probe) {
				hi = mid
			} else {
				lo = mid
			}
		}
		pos[axis] += sign * lo
		if vel[axis]*sign > 0 {
			vel[axis] = 0
		}
		break
	}

	return pos, vel
}

// Penetration is the deepest overlap of the body's spheres at pos with any
// solid shape other than the body itself; zero when free.
func (pw *PhysicsWorld) Penetration(query collision.SpatialQuery, b *body.Body, pos mgl32.Vec3) float32 {
	r := b.Radius
	if r <= 0 {
		return 0
	}
	offset := max(b.HalfHeight-r, 0)
	centers := [3]mgl32.Vec3{
		pos.Sub(mgl32.Vec3{0, offset, 0}),
		pos,
		pos.Add(mgl32.Vec3{0, offset, 0}),
	}

	var depth float32
	for _, c := range centers {
		for _, s := range query.OverlapSphere(c, r) {
			if s.Trigger || s.HasTag(collision.TagBody) || s.Id == b.Shape {
				continue
			}
			closest, ok := query.ClosestPoint(s.Id, c)
			if !ok {
				continue
			}
			if d := r - closest.Sub(c).Len(); d > depth {
				depth = d
			}
		}
	}
	return depth
}
