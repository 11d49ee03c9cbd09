package gekko

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type App struct {
	modules          []Module
	stages           []Stage
	systemsStateless map[string][]systemFn
	resources        map[reflect.Type]any

	exitRequested bool
	abortErrs     []error
}

type Module interface {
	Install(app *App, cmd *Commands)
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Run executes all stages once per tick until a system requests exit.
func (app *App) Run() {
	app.Logger().Debugf("running %d stages", len(app.stages))
	for !app.exitRequested {
		app.Step()
	}
	app.Logger().Infof("exit requested, stopping")
}

// Step runs every stage exactly once.
func (app *App) Step() {
	for _, stage := range app.stages {
		for _, system := range app.systemsStateless[stage.Name] {
			app.callSystem(system)
		}
	}
}

func (app *App) ExitRequested() bool {
	return app.exitRequested
}

func (app *App) requestExit() {
	app.exitRequested = true
}

func (app *App) abort(err error) {
	if err == nil {
		return
	}
	app.abortErrs = append(app.abortErrs, err)
}

func (app *App) startupError() error {
	return errors.Join(app.abortErrs...)
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

func (app *App) hasResource(t reflect.Type) bool {
	_, ok := app.resources[t]
	return ok
}

// Resource looks up a resource by its pointer type.
func Resource[T any](app *App) (*T, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r, ok := app.resources[t]
	if !ok {
		return nil, false
	}
	typed, ok := r.(*T)
	return typed, ok
}

func (app *App) callSystem(system systemFn) {
	app.callSystemInternal(system)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystemInternal(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("system %s: parameter %d must be a pointer, got %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(), i, argType))
		}
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
