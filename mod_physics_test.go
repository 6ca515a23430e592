package ascent

import (
	"math"
	"testing"

	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tick = float32(1.0 / 60.0)

func floorWorld() *collision.World {
	world := collision.NewWorld(DefaultCellSize)
	world.AddBox(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{20, 0.5, 20}, mgl32.QuatIdent())
	return world
}

func newPhysics() *PhysicsWorld {
	return NewPhysicsWorld(DefaultConfig().Physics)
}

func TestPhysics_BodyFallsAndRestsOnFloor(t *testing.T) {
	world := floorWorld()
	pw := newPhysics()
	b := body.New(body.DefaultConfig(), mgl32.Vec3{0, 3, 0}, 0)

	for i := 0; i < 180; i++ {
		pw.Step(world, b, tick)
	}

	assert.InDelta(t, 1.0, b.Position.Y(), 0.01, "capsule bottom should rest on the floor")
	assert.GreaterOrEqual(t, b.Position.Y(), float32(0.999), "capsule must not sink into the floor")
	assert.InDelta(t, 0, b.Velocity.Y(), 0.2)
}

func TestPhysics_WallStopsHorizontalMove(t *testing.T) {
	world := collision.NewWorld(DefaultCellSize)
	world.AddBox(mgl32.Vec3{2.5, 1, 0}, mgl32.Vec3{0.5, 2, 2}, mgl32.QuatIdent())
	pw := newPhysics()

	b := body.New(body.DefaultConfig(), mgl32.Vec3{0, 1, 0}, 0)
	b.GravityEnabled = false
	b.Velocity = mgl32.Vec3{3, 0, 0}
	b.Move(mgl32.Vec3{5, 0, 0})

	pw.Step(world, b, tick)

	assert.InDelta(t, 1.5, b.Position.X(), 0.01)
	assert.LessOrEqual(t, b.Position.X(), float32(1.5001))
	assert.Equal(t, float32(0), b.Velocity.X(), "velocity into the wall is cancelled")
}

func TestPhysics_SlidesAlongWall(t *testing.T) {
	world := collision.NewWorld(DefaultCellSize)
	world.AddBox(mgl32.Vec3{0, 1, 1.5}, mgl32.Vec3{4, 2, 0.5}, mgl32.QuatIdent())
	pw := newPhysics()

	b := body.New(body.DefaultConfig(), mgl32.Vec3{0, 1, 0}, 0)
	b.GravityEnabled = false
	b.Move(mgl32.Vec3{0.5, 0, 0.5})

	pw.Step(world, b, tick)

	assert.InDelta(t, 0.5, b.Position.X(), 1e-4, "tangential motion is kept")
	assert.InDelta(t, 0.5, b.Position.Z(), 0.01, "normal motion stops at the wall face")
}

func TestPhysics_TriggersDoNotBlock(t *testing.T) {
	world := collision.NewWorld(DefaultCellSize)
	world.AddBox(mgl32.Vec3{1.5, 1, 0}, mgl32.Vec3{0.5, 1, 1}, mgl32.QuatIdent(), collision.AsTrigger())
	pw := newPhysics()

	b := body.New(body.DefaultConfig(), mgl32.Vec3{0, 1, 0}, 0)
	b.GravityEnabled = false
	b.Move(mgl32.Vec3{3, 0, 0})
	pw.Step(world, b, tick)

	assert.InDelta(t, 3, b.Position.X(), 1e-4)
}

func TestPhysics_InvalidDtIsSkipped(t *testing.T) {
	world := floorWorld()
	pw := newPhysics()
	b := body.New(body.DefaultConfig(), mgl32.Vec3{0, 3, 0}, 0)
	b.Velocity = mgl32.Vec3{1, 0, 0}

	for _, dt := range []float32{0, -0.1, 1.5} {
		pw.Step(world, b, dt)
	}
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, b.Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, b.Velocity)
}

func TestPhysics_NaNVelocityIsZeroed(t *testing.T) {
	world := floorWorld()
	pw := newPhysics()
	b := body.New(body.DefaultConfig(), mgl32.Vec3{0, 3, 0}, 0)
	b.Velocity = mgl32.Vec3{float32(math.NaN()), 0, 0}

	pw.Step(world, b, tick)

	assert.Equal(t, mgl32.Vec3{}, b.Velocity)
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, b.Position)
}

func TestPhysics_PenetratingBodyCanEscape(t *testing.T) {
	world := floorWorld()
	pw := newPhysics()
	b := body.New(body.DefaultConfig(), mgl32.Vec3{0, 0.9, 0}, 0)
	b.GravityEnabled = false

	assert.InDelta(t, 0.1, pw.Penetration(world, b, b.Position), 1e-4)

	b.Move(mgl32.Vec3{0, 0.3, 0})
	pw.Step(world, b, tick)
	assert.InDelta(t, 1.2, b.Position.Y(), 1e-4)

	// Sinking further stays blocked.
	b.Position = mgl32.Vec3{0, 0.9, 0}
	b.Move(mgl32.Vec3{0, -0.3, 0})
	pw.Step(world, b, tick)
	assert.InDelta(t, 0.9, b.Position.Y(), 1e-3)
}
