package ascent

import (
	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/climb"
	"github.com/gekko3d/ascent/climbrt/locomotion"
)

type LocomotionModule struct{}

func (mod LocomotionModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(locomotionSystem).
			InStage(Locomotion),
	)
}

func locomotionSystem(t *Time, input *Input, b *body.Body, model *climb.Model, controller *locomotion.Controller) {
	controller.Step(b, model, input.TakeLocomotion(), t.FixedSeconds())
}
