package meadow

import (
	"time"
)

// Time is the frame clock. Elapsed and Dt are derived from Now at the start of
// every frame so all systems in a frame agree on the time.
type Time struct {
	Start time.Time
	Now   time.Time
	Dt    time.Duration
}

// Seconds is the time elapsed since the app started.
func (t *Time) Seconds() float64 {
	return t.Now.Sub(t.Start).Seconds()
}

func (t *Time) DtSeconds() float64 {
	return t.Dt.Seconds()
}

// TimeModule installs the frame clock. Clock defaults to time.Now; hosts and
// tests can substitute their own.
type TimeModule struct {
	Clock func() time.Time
}

type frameClock struct {
	now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Clock
	if now == nil {
		now = time.Now
	}
	start := now()
	cmd.AddResources(
		&Time{Start: start, Now: start},
		&frameClock{now: now},
	)
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(clock *frameClock, timeResource *Time) {
	now := clock.now()

	timeResource.Dt = now.Sub(timeResource.Now)
	if timeResource.Dt < 0 {
		timeResource.Dt = 0
	}
	timeResource.Now = now
}

// ManualClock is a deterministic clock advanced explicitly.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
