package ascent

import (
	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/hand"
)

// HandsModule runs hand control edges and hand motion each fixed tick.
type HandsModule struct{}

func (mod HandsModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(handsSystem).
			InStage(HandUpdate),
	)
}

func handsSystem(t *Time, input *Input, b *body.Body, hands *hand.Pair) {
	hands.Tick(input.TakeHands(), b.Transform(), t.FixedSeconds())
}
