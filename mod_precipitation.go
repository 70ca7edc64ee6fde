package meadow

import (
	"github.com/gekko3d/meadow/precip"
)

// Precipitation holds the rain and snow pools and the static cloud layout.
type Precipitation struct {
	Rain   *precip.Pool
	Snow   *precip.Pool
	Clouds []precip.Cloud
}

type PrecipitationModule struct {
	Config PrecipitationConfig
	Rand   precip.Source
}

func (mod PrecipitationModule) Install(app *App, cmd *Commands) {
	mustResource[Weather](app, "PrecipitationModule")

	cmd.AddResources(&Precipitation{
		Rain:   precip.NewRain(mod.Config.Rain, mod.Rand),
		Snow:   precip.NewSnow(mod.Config.Snow, mod.Rand),
		Clouds: precip.Clouds(mod.Config.Clouds, precip.DefaultCloudRange, mod.Rand),
	})
	cmd.UseSystem(System(precipitationSystem).InStage(PostUpdate))
}

// precipitationSystem only simulates a pool while its weather contributes.
func precipitationSystem(t *Time, w *Weather, p *Precipitation) {
	dt := float32(t.DtSeconds())
	if dt <= 0 {
		return
	}
	env := w.Current()
	if env.RainIntensity > 0 {
		p.Rain.Step(dt, float32(env.RainIntensity))
	}
	if env.SnowIntensity > 0 {
		p.Snow.Step(dt, float32(env.SnowIntensity))
	}
}
