package ascent

import (
	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/climb"
	"github.com/gekko3d/ascent/climbrt/hand"
)

// ClimbModule derives the climbing state from the anchors and applies the
// climbing forces. It runs after the hands so a grab made this tick already
// counts.
type ClimbModule struct{}

func (mod ClimbModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(climbSystem).
			InStage(ClimbForces),
	)
}

func climbSystem(t *Time, b *body.Body, hands *hand.Pair, model *climb.Model) {
	model.Step(b, hands, t.FixedSeconds())
}
