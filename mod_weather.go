package meadow

import (
	"github.com/gekko3d/meadow/weather"
)

// Weather wraps the interpolation engine as an App resource. Only
// weatherSystem advances it.
type Weather struct {
	Table  *weather.Table
	Engine *weather.Engine
	logger Logger
}

// SetTarget redirects the engine; unknown names fall back to the default
// state and are logged rather than propagated.
func (w *Weather) SetTarget(name string) {
	if err := w.Engine.SetTarget(name); err != nil {
		w.logger.Warnf("Weather target: %v; using %q", err, w.Engine.Target())
		return
	}
	w.logger.Debugf("Weather target -> %s", name)
}

func (w *Weather) Current() weather.EnvironmentState {
	return w.Engine.Current()
}

type WeatherModule struct {
	Config WeatherConfig
}

func (mod WeatherModule) Install(app *App, cmd *Commands) {
	table, err := weather.NewTable(mod.Config.Order, mod.Config.States, mod.Config.Default)
	if err != nil {
		cmd.Logger().Errorf("Weather table: %v", err)
		panic(err)
	}
	cmd.AddResources(&Weather{
		Table:  table,
		Engine: weather.NewEngine(table, mod.Config.Transition),
		logger: cmd.Logger(),
	})
	cmd.UseSystem(System(weatherSystem).InStage(Update))
}

func weatherSystem(t *Time, w *Weather) {
	if w.Engine.Advance(t.DtSeconds()) {
		w.logger.Debugf("Weather settled on %s", w.Engine.Target())
	}
}
