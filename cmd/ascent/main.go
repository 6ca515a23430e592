// Command ascent runs the climbing simulation in a GLFW window. The mouse
// buttons drive the hands, WASD walks, space jumps, F12 saves a debug view
// and Escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gekko3d/ascent"
	"github.com/gekko3d/ascent/climbrt/debugviz"
	"github.com/gekko3d/ascent/climbrt/scene"
	"github.com/gekko3d/ascent/platform"
	"github.com/joho/godotenv"
)

var (
	configFlag    = flag.String("config", "", "YAML config file, watched for changes (env ASCENT_CONFIG)")
	sceneFlag     = flag.String("scene", "", "YAML scene file; the built-in crag when empty (env ASCENT_SCENE)")
	debugFlag     = flag.Bool("debug", false, "debug logging (env ASCENT_DEBUG)")
	snapshotsFlag = flag.String("snapshots", ".", "directory for F12 debug snapshots")
	fpsFlag       = flag.Int("fps", 120, "frame rate cap")
)

func main() {
	logger := ascent.NewDefaultLogger("ascent", false)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("env: %v", err)
	}
	flag.Parse()

	if err := run(logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger *ascent.DefaultLogger) error {
	configPath := firstNonEmpty(*configFlag, os.Getenv("ASCENT_CONFIG"))
	scenePath := firstNonEmpty(*sceneFlag, os.Getenv("ASCENT_SCENE"))
	debug := *debugFlag
	if v, err := strconv.ParseBool(os.Getenv("ASCENT_DEBUG")); err == nil {
		debug = debug || v
	}

	cfg := ascent.DefaultConfig()
	if configPath != "" {
		loaded, err := ascent.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Debug = cfg.Debug || debug
	logger.SetDebug(cfg.Debug)

	def := scene.DemoCrag()
	if scenePath != "" {
		loaded, err := scene.Load(scenePath)
		if err != nil {
			return err
		}
		def = loaded
	}

	win, err := platform.NewWindow(1280, 720, "Ascent")
	if err != nil {
		return err
	}
	defer win.Close()
	input := platform.NewInput(win)
	view := debugviz.New(960, 540, 48)

	var watcher *ascent.ConfigWatcher
	if configPath != "" {
		if watcher, err = ascent.WatchConfig(configPath); err != nil {
			logger.Warnf("config: not watching %s: %v", configPath, err)
		} else {
			defer watcher.Close()
		}
	}

	d := &driver{win: win, view: view, logger: logger, snapshots: *snapshotsFlag}
	app := d.build(cfg, def, input)
	interval := time.Second / time.Duration(max(*fpsFlag, 1))

	last := time.Now()
	for !app.Quitting() {
		if watcher != nil {
			select {
			case next := <-watcher.Configs:
				// Components copy their config at construction, so a new
				// config means a new climber.
				next.Debug = next.Debug || debug
				logger.SetDebug(next.Debug)
				logger.Infof("config: %s reloaded, respawning", configPath)
				app = d.build(next, def, input)
			case err := <-watcher.Errors:
				logger.Warnf("config: keeping previous config: %v", err)
			default:
			}
		}

		now := time.Now()
		app.Step(now.Sub(last))
		last = now

		if spent := time.Since(now); spent < interval {
			time.Sleep(interval - spent)
		}
	}
	return nil
}

type driver struct {
	win       *platform.Window
	view      *debugviz.Renderer
	logger    ascent.Logger
	snapshots string
}

func (d *driver) build(cfg ascent.Config, def *scene.SceneDef, input ascent.InputSource) *ascent.App {
	app := ascent.NewApp(cfg, ascent.Options{
		Scene:     def,
		Input:     input,
		Sink:      d.view,
		Logger:    d.logger,
		ShowWorld: true,
	})
	app.UseSystem(ascent.System(d.frame).InStage(ascent.PostUpdate))
	return app
}

// frame follows the climber with the debug view, updates the title and
// saves snapshots on request.
func (d *driver) frame(t *ascent.Time, input *ascent.Input, c *ascent.Climber) {
	d.view.Center = c.Body.Position
	if t.Frames%15 == 0 {
		d.win.SetStatus(c.String())
	}
	if !input.TakePressed(ascent.ControlSnapshot) {
		return
	}
	path := filepath.Join(d.snapshots, fmt.Sprintf("ascent-%06d.png", d.view.Frame()))
	if err := d.view.SavePNG(path); err != nil {
		d.logger.Warnf("snapshot: %v", err)
		return
	}
	d.logger.Infof("snapshot: saved %s", path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
