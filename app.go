package meadow

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

// App owns every resource and runs the registered systems stage by stage,
// once per host frame. It is single threaded: the host calls Tick from its
// render loop and pushes input in between.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	modules   []Module
	frames    uint64
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		app.modules = append(app.modules, module)
		module.Install(app, cmd)
	}
	return app
}

// Tick runs every stage once.
func (app *App) Tick() {
	prof, profiling := Resource[Profiler](app)
	if profiling {
		prof.Reset()
	}
	for _, stage := range app.stages {
		if profiling {
			prof.BeginScope(stage.Name)
		}
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		if profiling {
			prof.EndScope(stage.Name)
		}
	}
	app.frames++
}

// RunFrames ticks n times; used by headless drivers and tests.
func (app *App) RunFrames(n int) {
	for i := 0; i < n; i++ {
		app.Tick()
	}
}

func (app *App) Frames() uint64 { return app.frames }

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the installed resource of type T.
func Resource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

// mustResource is Resource for module installs that depend on an earlier
// module.
func mustResource[T any](app *App, installer string) *T {
	res, ok := Resource[T](app)
	if !ok {
		var zero T
		msg := fmt.Sprintf("%s requires %T; install its module first", installer, zero)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}
	return res
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
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
