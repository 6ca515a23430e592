package ascent

import (
	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/feedback"
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/gekko3d/ascent/climbrt/hand"
	"github.com/go-gl/mathgl/mgl32"
)

const handGizmoRadius = 0.15

// FeedbackState builds one feedback frame per app frame and hands it to the
// sink. Gizmos is reused between frames.
type FeedbackState struct {
	Sink      feedback.Sink
	ShowWorld bool
	Gizmos    []feedback.Gizmo
	Frames    uint64
}

// FeedbackModule shows grab points near the dragged hand and debug gizmos for
// the hands and body. A nil sink still refreshes the indicator pool.
type FeedbackModule struct {
	Sink feedback.Sink
	// ShowWorld adds the bounds of every solid shape to each frame.
	ShowWorld bool
}

func (mod FeedbackModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&FeedbackState{Sink: mod.Sink, ShowWorld: mod.ShowWorld})
	app.UseSystem(
		System(feedbackSystem).
			InStage(PostUpdate),
	)
}

func feedbackSystem(cmd *Commands, fb *FeedbackState, world *collision.World, b *body.Body, hands *hand.Pair, detector *grab.Detector, indicators *feedback.Indicators) {
	cfg := hands.Config()

	if side, ok := hands.Dragged(); ok {
		pos := hands.Hand(side).WorldPosition(b.Position)
		radius := cfg.SearchRadius()
		points := detector.FindGrabPoints(pos, radius)
		if dropped := indicators.Refresh(pos, radius, points); dropped > 0 {
			cmd.Logger().Debugf("feedback: %d grab points beyond the indicator pool", dropped)
		}
	} else {
		indicators.Clear()
	}

	fb.Gizmos = fb.Gizmos[:0]
	if fb.ShowWorld {
		fb.Gizmos = appendWorldGizmos(fb.Gizmos, world)
	}
	fb.Gizmos = appendHandGizmos(fb.Gizmos, b, hands)
	fb.Frames++

	if fb.Sink == nil {
		return
	}
	fb.Sink.Present(&feedback.Frame{
		Number:     fb.Frames,
		Indicators: indicators.Active(),
		Gizmos:     fb.Gizmos,
	})
}

func appendHandGizmos(gizmos []feedback.Gizmo, b *body.Body, hands *hand.Pair) []feedback.Gizmo {
	cfg := hands.Config()
	colors := [2][2][4]float32{
		hand.Left:  {feedback.ColorGreen, feedback.ColorGreenGhost},
		hand.Right: {feedback.ColorBlue, feedback.ColorBlueGhost},
	}

	gizmos = append(gizmos, feedback.NewGizmoCube(
		b.Position,
		mgl32.Vec3{2 * b.Radius, 2 * b.HalfHeight, 2 * b.Radius},
		feedback.ColorGrey,
	))
	for _, side := range [2]hand.Side{hand.Left, hand.Right} {
		a := hands.Hand(side)
		pos := a.WorldPosition(b.Position)
		gizmos = append(gizmos,
			feedback.NewGizmoSphere(pos, handGizmoRadius, colors[side][0]),
			feedback.NewGizmoLine(b.Position, pos, colors[side][0]),
		)
		if a.IsDragging() {
			gizmos = append(gizmos, feedback.NewGizmoSphere(pos, cfg.GrabRadius, colors[side][1]))
		}
	}
	return gizmos
}

func appendWorldGizmos(gizmos []feedback.Gizmo, world *collision.World) []feedback.Gizmo {
	for _, s := range world.Shapes() {
		if s.Trigger {
			continue
		}
		color := feedback.ColorGrey
		if s.Climbable() {
			color = [4]float32{0.8, 0.6, 0.3, 1}
		}
		gizmos = append(gizmos, feedback.NewGizmoCube(s.Bounds.Center(), s.Bounds.Size(), color))
	}
	return gizmos
}
