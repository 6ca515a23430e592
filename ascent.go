// Package ascent is a first-person climbing simulation: two independently
// controlled hands anchor onto grab points discovered on nearby geometry and
// pull the body along, while a locomotion controller handles walking,
// jumping and slope limits.
//
// The package holds the app runner and the modules that wire the climbrt
// components into fixed simulation stages.
package ascent

import (
	"github.com/gekko3d/ascent/climbrt/feedback"
	"github.com/gekko3d/ascent/climbrt/scene"
)

// Options are the outer collaborators of a simulation app.
type Options struct {
	Scene  *scene.SceneDef
	Input  InputSource
	Sink   feedback.Sink
	Logger Logger
	// ShowWorld draws shape bounds into every feedback frame.
	ShowWorld bool
	// FrameRate caps App.Run; zero runs unthrottled.
	FrameRate int
}

// Modules lists the standard module set in install order.
func Modules(cfg Config, opts Options) []Module {
	return []Module{
		LoggingModule{Prefix: "ascent", Debug: cfg.Debug, Logger: opts.Logger},
		TimeModule{FixedStep: cfg.FixedStep(), MaxTicks: cfg.Physics.MaxTicks, FrameRate: opts.FrameRate},
		InputModule{Source: opts.Input},
		CollisionModule{Scene: opts.Scene},
		ClimberModule{Config: cfg},
		HandsModule{},
		ClimbModule{},
		LocomotionModule{},
		PhysicsModule{Config: cfg.Physics},
		FeedbackModule{Sink: opts.Sink, ShowWorld: opts.ShowWorld},
	}
}

// NewApp builds a ready-to-step simulation.
func NewApp(cfg Config, opts Options) *App {
	return NewAppBuilder().
		UseModule(Modules(cfg, opts)...).
		Build()
}
