package sections

import (
	"github.com/gekko3d/meadow/timeline"
	"github.com/google/uuid"
)

const (
	propOverlay      = "overlay"
	propWeatherLayer = "weather_layer"
	propScroll       = "scroll"

	streakTravel = 200.0 // percent of the streak's own width
)

// Streak is one decorative wind line for the current frame.
type Streak struct {
	TopPercent float64
	XPercent   float64
	Opacity    float64
}

// Overlay is the per-frame snapshot of everything the transition animates.
type Overlay struct {
	TransitionID        uuid.UUID
	Visible             bool
	Opacity             float64
	WeatherLayerOpacity float64
	Streaks             []Streak
	Direction           int

	Index          int
	Section        string
	ScrollPosition float64 // in sections
	ScrollProgress float64 // in [0,1]
	ScrollX        float64 // horizontal page offset in pixels
}

type streakSpec struct {
	top  float64
	loop timeline.Loop
}

type sequence struct {
	id        uuid.UUID
	start     float64
	direction int
	tl        *timeline.Timeline
	streaks   []streakSpec
}

func newSequence(cfg Config, ch Change, rng Source) *sequence {
	scrollEase, ok := timeline.EasingByName(cfg.ScrollEase)
	if !ok {
		scrollEase = timeline.CubicOut
	}
	tl := timeline.New(
		map[string]float64{
			propOverlay:      0,
			propWeatherLayer: 1,
			propScroll:       float64(ch.From),
		},
		timeline.Track{Property: propOverlay, Start: 0, Duration: 0.3, Ease: timeline.Power2Out, From: timeline.From(0), To: 1},
		timeline.Track{Property: propOverlay, Start: 1.95, Duration: 0.35, Ease: timeline.Power2In, To: 0},
		timeline.Track{Property: propWeatherLayer, Start: 0, Duration: 0.35, Ease: timeline.Power1Out, To: 0.25},
		timeline.Track{Property: propWeatherLayer, Start: 1.8, Duration: 0.35, Ease: timeline.Power1Out, To: 1},
		timeline.Track{Property: propScroll, Start: 0, Duration: cfg.ScrollDuration, Ease: scrollEase, To: float64(ch.To)},
	)

	streaks := make([]streakSpec, cfg.StreakCount)
	for i := range streaks {
		period := 0.5 + rng.Float64()
		streaks[i] = streakSpec{
			top: float64(i+1) * (100 / float64(cfg.StreakCount+1)),
			// A negative delay of up to 2 s means the loop is already under way.
			loop: timeline.Loop{Period: period, Offset: rng.Float64() * 2},
		}
	}

	return &sequence{
		id:        ch.ID,
		start:     ch.At,
		direction: ch.Direction,
		tl:        tl,
		streaks:   streaks,
	}
}

// Frame samples the overlay at now. While idle the overlay is hidden and
// the scroll readout rests on the current section.
func (c *Controller) Frame(now float64) Overlay {
	c.advanceTimers(now)

	pos := float64(c.index)
	out := Overlay{
		WeatherLayerOpacity: 1,
		Index:               c.index,
		Section:             c.Section(),
	}

	if seq := c.seq; seq != nil {
		elapsed := now - seq.start
		out.TransitionID = seq.id
		out.Visible = true
		out.Direction = seq.direction
		out.Opacity = seq.tl.Value(propOverlay, elapsed)
		out.WeatherLayerOpacity = seq.tl.Value(propWeatherLayer, elapsed)
		pos = seq.tl.Value(propScroll, elapsed)

		from, to := streakTravel, -streakTravel
		if seq.direction < 0 {
			from, to = -streakTravel, streakTravel
		}
		out.Streaks = make([]Streak, len(seq.streaks))
		for i, s := range seq.streaks {
			p := s.loop.Progress(elapsed)
			out.Streaks[i] = Streak{
				TopPercent: s.top,
				XPercent:   from + (to-from)*p,
				Opacity:    1 - p,
			}
		}
	}

	out.ScrollPosition = pos
	if n := len(c.cfg.Sections); n > 1 {
		out.ScrollProgress = pos / float64(n-1)
	}
	out.ScrollX = -pos * c.width
	return out
}
