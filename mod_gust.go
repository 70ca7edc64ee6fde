package meadow

import (
	"github.com/gekko3d/meadow/gust"
)

// Gust owns the gust envelope and the uniform values sampled from it this
// frame.
type Gust struct {
	Envelope  gust.Envelope
	Amplitude float32
	Direction float32
	logger    Logger
}

// Trigger is called directly by the section controller on every accepted
// transition.
func (g *Gust) Trigger(peak float64, direction int, durationSec float64, now float64) {
	g.Envelope.Trigger(peak, direction, durationSec, now)
	g.logger.Debugf("Gust peak=%.2f dir=%d duration=%.2fs", g.Envelope.Peak(), g.Envelope.Direction(), g.Envelope.Duration())
}

type GustModule struct{}

func (mod GustModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Gust{Direction: 1, logger: cmd.Logger()})
	cmd.UseSystem(System(gustSystem).InStage(PostUpdate))
}

func gustSystem(t *Time, g *Gust) {
	g.Amplitude, g.Direction = g.Envelope.Uniforms(t.Seconds())
}
