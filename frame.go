package meadow

import (
	"sync/atomic"

	"github.com/gekko3d/meadow/precip"
	"github.com/gekko3d/meadow/sections"
	"github.com/gekko3d/meadow/weather"
)

// PointCloud is one precipitation layer ready for upload as a points buffer.
type PointCloud struct {
	Positions []float32 // packed xyz
	Size      float32
	Color     weather.Color
	Opacity   float32
}

func (p PointCloud) Visible() bool { return p.Opacity > 0 && len(p.Positions) > 0 }

// Frame is everything a renderer needs to draw one frame. Frames are
// immutable once published.
type Frame struct {
	Index uint64

	// Time feeds the grass sway uniform and runs at a quarter of wall time.
	Time float32

	Environment weather.EnvironmentState
	FogColor    [3]float32 // RGB of Environment.Fog.Color in [0,1]
	Lights      []Light

	GustAmplitude float32
	GustDirection float32

	Section        string
	ScrollProgress float64
	Overlay        sections.Overlay

	Rain   PointCloud
	Snow   PointCloud
	Clouds []precip.Cloud
}

// FrameContainer hands the latest frame to a renderer that may run on
// another goroutine.
type FrameContainer struct {
	latest atomic.Pointer[Frame]
	prof   *Profiler
}

func (c *FrameContainer) Update(f *Frame) {
	c.latest.Store(f)
}

func (c *FrameContainer) Get() *Frame {
	return c.latest.Load()
}

var (
	rainColor = weather.MustHex("#88ccee")
	snowColor = weather.MustHex("#ffffff")
)

// FrameModule publishes a Frame at the end of every tick. It must be
// installed last.
type FrameModule struct{}

func (FrameModule) Install(app *App, cmd *Commands) {
	mustResource[Weather](app, "FrameModule")
	mustResource[Gust](app, "FrameModule")
	mustResource[Sections](app, "FrameModule")
	mustResource[Precipitation](app, "FrameModule")
	prof, _ := Resource[Profiler](app)
	cmd.AddResources(&FrameContainer{prof: prof})
	cmd.UseSystem(System(frameSystem).InStage(PreRender))
}

func frameSystem(t *Time, w *Weather, g *Gust, s *Sections, p *Precipitation, out *FrameContainer) {
	now := t.Seconds()
	env := w.Current()
	overlay := s.Controller.Frame(now)

	f := &Frame{
		Time:           float32(now / 4),
		Environment:    env,
		FogColor:       env.Fog.Color.RGB32(),
		Lights:         SceneLights(env),
		GustAmplitude:  g.Amplitude,
		GustDirection:  g.Direction,
		Section:        overlay.Section,
		ScrollProgress: overlay.ScrollProgress,
		Overlay:        overlay,
	}
	if prev := out.Get(); prev != nil {
		f.Index = prev.Index + 1
	}

	if env.RainIntensity > 0 {
		f.Rain = PointCloud{
			Positions: append([]float32(nil), p.Rain.Positions()...),
			Size:      0.1,
			Color:     rainColor,
			Opacity:   float32(0.8 * env.RainIntensity),
		}
	}
	if env.SnowIntensity > 0 {
		f.Snow = PointCloud{
			Positions: append([]float32(nil), p.Snow.Positions()...),
			Size:      0.4,
			Color:     snowColor,
			Opacity:   float32(0.9 * env.SnowIntensity),
		}
	}
	if env.CloudDensity > 0 {
		f.Clouds = make([]precip.Cloud, len(p.Clouds))
		for i, c := range p.Clouds {
			c.Opacity *= float32(env.CloudDensity)
			f.Clouds[i] = c
		}
	}

	out.Update(f)

	if prof := out.prof; prof != nil {
		prof.SetCount("rain_points", len(f.Rain.Positions)/3)
		prof.SetCount("snow_points", len(f.Snow.Positions)/3)
		prof.SetCount("cloud_puffs", len(f.Clouds))
		prof.SetCount("streaks", len(f.Overlay.Streaks))
	}
}
