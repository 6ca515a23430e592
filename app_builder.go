package ascent

import (
	"reflect"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

// NewAppBuilder starts from the default stage list: input and frame work
// around the fixed simulation stages.
func NewAppBuilder() *AppBuilder {
	app := &App{
		resources: make(map[reflect.Type]any),
		systems:   make(map[string][]systemFn),
	}
	for _, stage := range DefaultStages() {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return &AppBuilder{app: app}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs modules in the order they were added. Modules that create
// resources from other resources must come after them.
func (b *AppBuilder) Build() *App {
	app := b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		module.Install(app, commands)
	}
	app.modules = b.modules

	return app
}
