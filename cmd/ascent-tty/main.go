// Command ascent-tty runs the climbing simulation in a terminal, drawn as a
// side view.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/ascent"
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/scene"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	sceneFlag  = flag.String("scene", "", "YAML scene file; the built-in crag when empty")
	fpsFlag    = flag.Int("fps", 30, "frame rate")
)

func main() {
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "ascent-tty crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	err = run(screen)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(screen tcell.Screen) error {
	cfg := ascent.DefaultConfig()
	if *configFlag != "" {
		loaded, err := ascent.LoadConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	def := scene.DemoCrag()
	if *sceneFlag != "" {
		loaded, err := scene.Load(*sceneFlag)
		if err != nil {
			return err
		}
		def = loaded
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	view := &sideView{screen: screen}
	input := newTTYInput(events)
	// Logging would scribble over the screen.
	app := ascent.NewApp(cfg, ascent.Options{
		Scene:     def,
		Input:     input,
		Sink:      view,
		Logger:    ascent.NewNopLogger(),
		FrameRate: *fpsFlag,
	})
	app.UseSystem(ascent.System(func(world *collision.World, c *ascent.Climber) {
		if input.resized {
			screen.Sync()
			input.resized = false
		}
		view.draw(world, c)
	}).InStage(ascent.PostUpdate))

	app.Run()
	return nil
}
