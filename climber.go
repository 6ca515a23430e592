package ascent

import (
	"fmt"

	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/climb"
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/feedback"
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/gekko3d/ascent/climbrt/hand"
	"github.com/gekko3d/ascent/climbrt/locomotion"
	"github.com/go-gl/mathgl/mgl32"
)

// Climber is one assembled climbing subject: the body and every component
// that reads or moves it.
type Climber struct {
	Body       *body.Body
	Hands      *hand.Pair
	Climb      *climb.Model
	Locomotion *locomotion.Controller
	Detector   *grab.Detector
	Indicators *feedback.Indicators
}

// NewClimber wires the components around a new body. The force model is
// both the hands' listener and their pull requester.
func NewClimber(cfg Config, query collision.SpatialQuery, position mgl32.Vec3, yawDeg float32, log Logger) *Climber {
	if log == nil {
		log = NewNopLogger()
	}
	b := body.New(cfg.Body, position, yawDeg)
	detector := grab.NewDetector(query, cfg.Detector, b.Shape)
	model := climb.New(cfg.Climb, cfg.Physics.Gravity, cfg.Hands.Reach, Scoped(log, "climb"))
	pair := hand.NewPair(cfg.Hands, detector,
		hand.WithListener(model),
		hand.WithPullRequester(model),
		hand.WithLogger(Scoped(log, "hands")),
	)

	return &Climber{
		Body:       b,
		Hands:      pair,
		Climb:      model,
		Locomotion: locomotion.New(cfg.Locomotion, query, Scoped(log, "locomotion")),
		Detector:   detector,
		Indicators: feedback.NewIndicators(cfg.Hands.IndicatorPool, cfg.Hands.IndicatorSize),
	}
}

// String is a one-line status, used for window titles and logs.
func (c *Climber) String() string {
	mode := "ground"
	if c.Climb.IsClimbing() {
		mode = "climb"
	}
	p := c.Body.Position
	return fmt.Sprintf("%s pos=(%.2f, %.2f, %.2f) L=%s R=%s grounded=%v",
		mode, p.X(), p.Y(), p.Z(),
		c.Hands.Hand(hand.Left).State(), c.Hands.Hand(hand.Right).State(),
		c.Locomotion.IsGrounded())
}

// ClimberModule spawns a climber into the collision world at the scene's
// spawn point, or at Position when no scene was loaded.
type ClimberModule struct {
	Config   Config
	Position mgl32.Vec3
	Yaw      float32
}

func (m ClimberModule) Install(app *App, cmd *Commands) {
	world, ok := Resource[collision.World](app)
	if !ok {
		panic("ClimberModule needs a collision world; install CollisionModule first")
	}

	pos, yaw := m.Position, m.Yaw
	if info, ok := Resource[SceneInfo](app); ok && info.Def != nil {
		pos, yaw = info.Def.Spawn.Position, info.Def.Spawn.Yaw
	}

	c := NewClimber(m.Config, world, pos, yaw, app.Logger())
	cmd.AddResources(c, c.Body, c.Hands, c.Climb, c.Locomotion, c.Detector, c.Indicators)
	app.Logger().Infof("climber: spawned at (%.2f, %.2f, %.2f) yaw %.0f", pos.X(), pos.Y(), pos.Z(), yaw)
}
