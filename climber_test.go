package ascent

import (
	"strings"
	"testing"
	"time"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/feedback"
	"github.com/gekko3d/ascent/climbrt/hand"
	"github.com/gekko3d/ascent/climbrt/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// near compares vectors by distance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

// holdScene is a floor with one climbable sphere ahead of the spawn point,
// mirror-symmetric about x = 0.
func holdScene() *scene.SceneDef {
	return &scene.SceneDef{
		Name:  "hold",
		Spawn: scene.SpawnDef{Position: mgl32.Vec3{0, 1, 0}},
		Objects: []scene.ObjectDef{
			{Name: "floor", Shape: "box", Position: mgl32.Vec3{0, -0.5, 0}, HalfExtents: mgl32.Vec3{20, 0.5, 20}},
			{Name: "hold", Shape: "sphere", Position: mgl32.Vec3{0, 2.1, 1.1}, Radius: 0.3, Climbable: true},
		},
	}
}

type rig struct {
	t       *testing.T
	app     *App
	input   *scriptedInput
	frames  *feedback.Recorder
	climber *Climber
	frame   time.Duration
}

func newRig(t *testing.T) *rig {
	cfg := DefaultConfig()
	input := &scriptedInput{}
	frames := &feedback.Recorder{}
	app := NewApp(cfg, Options{Scene: holdScene(), Input: input, Sink: frames})

	climber, ok := Resource[Climber](app)
	require.True(t, ok)
	return &rig{t: t, app: app, input: input, frames: frames, climber: climber, frame: cfg.FixedStep()}
}

// step runs one frame (one fixed tick) per sample and checks that gravity
// is on exactly when no hand holds on.
func (r *rig) step(samples ...Sample) {
	r.t.Helper()
	for _, s := range samples {
		r.input.push(s)
		r.app.Step(r.frame)

		b, hands := r.climber.Body, r.climber.Hands
		if b.GravityEnabled == hands.AnyGrabbed() {
			r.t.Fatalf("gravity %v with %d hands grabbed", b.GravityEnabled, hands.GrabbedCount())
		}
		if b.Climbing != hands.AnyGrabbed() {
			r.t.Fatalf("climbing flag %v with %d hands grabbed", b.Climbing, hands.GrabbedCount())
		}
	}
}

func (r *rig) idle(n int) {
	r.t.Helper()
	for i := 0; i < n; i++ {
		r.step(Sample{})
	}
}

func handControl(side hand.Side) Control {
	if side == hand.Left {
		return ControlLeftHand
	}
	return ControlRightHand
}

// grab presses and releases a hand control over two frames.
func (r *rig) grab(side hand.Side) {
	r.t.Helper()
	r.step(held(handControl(side)), Sample{})
}

func TestClimber_GrabStartsClimbing(t *testing.T) {
	r := newRig(t)
	r.idle(5)
	assert.False(t, r.climber.Climb.IsClimbing())

	r.grab(hand.Left)
	require.True(t, r.climber.Hands.Hand(hand.Left).IsGrabbed(), "left hand should find the hold")
	assert.Equal(t, hand.Free, r.climber.Hands.Hand(hand.Right).State())
	assert.True(t, r.climber.Climb.IsClimbing())
	assert.Contains(t, r.climber.String(), "climb")

	target := r.climber.Climb.Target()
	before := r.climber.Body.Position.Sub(target).Len()
	r.idle(90)
	after := r.climber.Body.Position.Sub(target).Len()
	assert.Less(t, after, before, "body is pulled toward the hang point")
	assert.LessOrEqual(t, r.climber.Body.Velocity.Len(), DefaultConfig().Climb.MaxVelocity+1e-4)

	// Pressing a grabbed hand lets go before dragging it again.
	r.step(held(ControlLeftHand))
	assert.True(t, r.climber.Hands.Hand(hand.Left).IsDragging())
	assert.False(t, r.climber.Climb.IsClimbing())
	assert.True(t, r.climber.Body.GravityEnabled)
}

func TestClimber_JumpLeavesGroundNextTick(t *testing.T) {
	r := newRig(t)
	r.idle(10)
	require.True(t, r.climber.Locomotion.IsGrounded())
	rest := r.climber.Body.Position.Y()

	r.step(held(ControlJump))
	r.step(Sample{})

	assert.False(t, r.climber.Locomotion.IsGrounded())
	assert.Greater(t, r.climber.Body.Position.Y(), rest+0.05)

	// Gravity brings it back.
	r.idle(120)
	assert.True(t, r.climber.Locomotion.IsGrounded())
	assert.InDelta(t, rest, r.climber.Body.Position.Y(), 0.01)
}

func TestClimber_HandsAreMirrorSymmetric(t *testing.T) {
	left, right := newRig(t), newRig(t)

	left.grab(hand.Left)
	right.grab(hand.Right)
	require.True(t, left.climber.Hands.Hand(hand.Left).IsGrabbed())
	require.True(t, right.climber.Hands.Hand(hand.Right).IsGrabbed())

	lp, _ := left.climber.Hands.Hand(hand.Left).GrabPoint()
	rp, _ := right.climber.Hands.Hand(hand.Right).GrabPoint()
	assert.Equal(t, lp.Kind, rp.Kind)
	assert.InDelta(t, -lp.Position.X(), rp.Position.X(), 1e-3)

	for i := 0; i < 60; i++ {
		left.idle(1)
		right.idle(1)

		a, b := left.climber.Body.Position, right.climber.Body.Position
		if !near(mgl32.Vec3{-a.X(), a.Y(), a.Z()}, b, 1e-3) {
			t.Fatalf("tick %d: left-hand body %v is not the mirror of right-hand body %v", i, a, b)
		}
	}
}

func TestClimber_TwoHandOrderDoesNotMatter(t *testing.T) {
	for _, order := range [][2]hand.Side{{hand.Left, hand.Right}, {hand.Right, hand.Left}} {
		r := newRig(t)
		r.grab(order[0])
		r.grab(order[1])

		hands := r.climber.Hands
		if got := hands.GrabbedCount(); got != 2 {
			t.Errorf("%s then %s: expected both hands grabbed, got %d", order[0], order[1], got)
		}
		if !hands.AnyGrabbed() || r.climber.Body.GravityEnabled {
			t.Errorf("%s then %s: gravity %v with %d hands grabbed", order[0], order[1], r.climber.Body.GravityEnabled, hands.GrabbedCount())
		}
		assert.True(t, r.climber.Climb.IsClimbing())
	}
}

func TestClimber_RemovedHoldKeepsAnchorPinned(t *testing.T) {
	r := newRig(t)
	r.grab(hand.Left)
	left := r.climber.Hands.Hand(hand.Left)
	require.True(t, left.IsGrabbed())
	point, _ := left.GrabPoint()

	world, ok := Resource[collision.World](r.app)
	require.True(t, ok)
	require.True(t, world.Remove(left.GrabbedShape()))
	_, ok = world.Lookup(left.GrabbedShape())
	require.False(t, ok, "handle is dangling")

	r.idle(30)
	assert.True(t, left.IsGrabbed())
	assert.Equal(t, point.Position, left.WorldPosition(r.climber.Body.Position), "anchor stays at the last grab point")
	assert.True(t, r.climber.Climb.IsClimbing())

	r.step(held(ControlLeftHand))
	assert.True(t, left.IsDragging())
	assert.False(t, r.climber.Climb.IsClimbing())
	assert.True(t, r.climber.Body.GravityEnabled)
}

func TestClimber_FeedbackFollowsDraggedHand(t *testing.T) {
	r := newRig(t)

	r.step(held(ControlRightHand))
	require.True(t, r.climber.Hands.Hand(hand.Right).IsDragging())
	assert.NotEmpty(t, r.frames.Last.Indicators, "grab points near the dragged hand are shown")
	assert.LessOrEqual(t, len(r.frames.Last.Indicators), DefaultConfig().Hands.IndicatorPool)
	// Body, two hands with their reach lines, and the ghost of the dragged hand.
	assert.Len(t, r.frames.Last.Gizmos, 6)

	r.step(Sample{})
	assert.Empty(t, r.frames.Last.Indicators)
	assert.Len(t, r.frames.Last.Gizmos, 5)
	assert.Equal(t, uint64(2), r.frames.Last.Number)
}

func TestClimber_StringReportsState(t *testing.T) {
	r := newRig(t)
	r.idle(1)
	s := r.climber.String()
	assert.True(t, strings.HasPrefix(s, "ground"), s)
	assert.Contains(t, s, "L=free")
}
