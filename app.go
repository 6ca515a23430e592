package ascent

import (
	"fmt"
	"reflect"
	"runtime"
	"time"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	modules   []Module
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	quit      bool
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Run steps the app with wall-clock frame times until a system asks to quit.
func (app *App) Run() {
	clock := app.clock()
	last := time.Now()

	for !app.quit {
		now := time.Now()
		app.Step(now.Sub(last))
		last = now

		if clock.FrameInterval > 0 {
			if spent := time.Since(now); spent < clock.FrameInterval {
				time.Sleep(clock.FrameInterval - spent)
			}
		}
	}
	app.Logger().Infof("app: quit after %d ticks", clock.Ticks)
}

// Step runs one frame. Dynamic stages run once; each contiguous group of
// fixed stages runs once per whole fixed step accumulated in the clock.
func (app *App) Step(frameDt time.Duration) {
	clock := app.clock()
	ticks := clock.advance(frameDt)

	for i := 0; i < len(app.stages); {
		stage := app.stages[i]
		if stage.UpdateType == DynamicUpdate {
			app.callStage(stage)
			i++
			continue
		}

		j := i
		for j < len(app.stages) && app.stages[j].UpdateType == FixedUpdate {
			j++
		}
		for tick := 0; tick < ticks; tick++ {
			for _, fixed := range app.stages[i:j] {
				app.callStage(fixed)
			}
			clock.Ticks++
		}
		i = j
	}
}

// Quitting reports whether a system asked the app to stop.
func (app *App) Quitting() bool {
	return app.quit
}

func (app *App) clock() *Time {
	if res, ok := app.resources[reflect.TypeOf(Time{})]; ok {
		return res.(*Time)
	}
	panic("Time resource is missing; install TimeModule")
}

func (app *App) callStage(stage Stage) {
	for _, system := range app.systems[stage.Name] {
		app.callSystem(system)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource looks up a resource by its pointer type, e.g. Resource[body.Body](app).
func Resource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return res.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
