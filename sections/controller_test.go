package sections

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gustCall struct {
	peak      float64
	direction int
	duration  float64
	now       float64
}

type recordingGust struct {
	calls []gustCall
}

func (g *recordingGust) Trigger(peak float64, direction int, durationSec float64, now float64) {
	g.calls = append(g.calls, gustCall{peak, direction, durationSec, now})
}

type fixedViewport struct{ w, h float64 }

func (v fixedViewport) ViewportSize() (float64, float64) { return v.w, v.h }

func newTestController(t *testing.T, opts ...Option) (*Controller, *recordingGust, *[]Change) {
	t.Helper()
	gust := &recordingGust{}
	changes := &[]Change{}
	opts = append([]Option{
		WithRand(rand.New(rand.NewSource(1))),
		WithViewport(1000, 800),
		WithListener(func(c Change) { *changes = append(*changes, c) }),
	}, opts...)
	c, err := NewController(DefaultConfig(), gust, opts...)
	require.NoError(t, err)
	return c, gust, changes
}

func TestController_GoTo(t *testing.T) {
	c, gust, changes := newTestController(t)

	assert.Equal(t, Idle, c.Phase())
	assert.Equal(t, "sunny", c.Section())

	require.True(t, c.GoTo(2, 1.0))
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, "snow", c.Section())
	assert.True(t, c.Transitioning())
	assert.InDelta(t, 3.2, c.ReleaseAt(), 1e-9)

	require.Len(t, *changes, 1)
	ch := (*changes)[0]
	assert.Equal(t, 0, ch.From)
	assert.Equal(t, 2, ch.To)
	assert.Equal(t, "snow", ch.Name)
	assert.Equal(t, 1, ch.Direction)

	require.Len(t, gust.calls, 1)
	assert.Equal(t, gustCall{0.8, 1, 2.0, 1.0}, gust.calls[0])
}

func TestController_DropsWhileTransitioning(t *testing.T) {
	c, gust, changes := newTestController(t)
	require.True(t, c.GoTo(1, 0))

	release := c.ReleaseAt()
	assert.False(t, c.GoTo(3, 1.0))
	assert.False(t, c.Key(KeyArrowRight, 2.0))
	assert.Equal(t, 1, c.Index())
	assert.True(t, c.Transitioning())
	assert.Equal(t, release, c.ReleaseAt())
	assert.Len(t, *changes, 1)
	assert.Len(t, gust.calls, 1)

	c.Tick(2.2, nil)
	assert.Equal(t, Idle, c.Phase())
	assert.True(t, c.GoTo(3, 2.3))
	assert.Len(t, *changes, 2)
	assert.NotEqual(t, (*changes)[0].ID, (*changes)[1].ID)
}

func TestController_SameIndexIsNoop(t *testing.T) {
	c, gust, changes := newTestController(t)
	assert.False(t, c.GoTo(0, 0))
	assert.Equal(t, Idle, c.Phase())
	assert.Empty(t, *changes)
	assert.Empty(t, gust.calls)
}

func TestController_ClampsOutOfRange(t *testing.T) {
	c, _, _ := newTestController(t)
	require.True(t, c.GoTo(2, 0))
	c.Tick(5, nil)

	assert.True(t, c.GoTo(-5, 6))
	assert.Equal(t, 0, c.Index())
	c.Tick(10, nil)

	assert.True(t, c.GoTo(99, 11))
	assert.Equal(t, 3, c.Index())
	c.Tick(20, nil)
	assert.False(t, c.GoTo(42, 21), "already at the last section")
}

func TestController_BackwardDirection(t *testing.T) {
	c, gust, _ := newTestController(t)
	require.True(t, c.GoTo(3, 0))
	c.Tick(3, nil)
	require.True(t, c.Key(KeyArrowLeft, 3))
	assert.Equal(t, 2, c.Index())
	require.Len(t, gust.calls, 2)
	assert.Equal(t, -1, gust.calls[1].direction)
}

func TestController_WheelAccumulatesToOneTransition(t *testing.T) {
	c, gust, changes := newTestController(t)
	c.Tick(0, fixedViewport{1000, 800})

	// threshold = 800 * 0.18 = 144
	assert.False(t, c.Wheel(WheelEvent{DeltaY: 60}, 0.00))
	assert.False(t, c.Wheel(WheelEvent{DeltaY: 60}, 0.05))
	assert.True(t, c.Wheel(WheelEvent{DeltaY: 60}, 0.10))
	assert.Equal(t, 0.0, c.WheelAccumulator())

	// More wheel while locked is dropped entirely.
	for i := 0; i < 20; i++ {
		assert.False(t, c.Wheel(WheelEvent{DeltaY: 100}, 0.2+float64(i)*0.05))
	}

	assert.Equal(t, 1, c.Index())
	assert.Len(t, *changes, 1)
	require.Len(t, gust.calls, 1)
	assert.Equal(t, 1, gust.calls[0].direction)

	c.Tick(2.29, nil)
	assert.True(t, c.Transitioning())
	c.Tick(2.31, nil)
	assert.False(t, c.Transitioning())
	assert.Equal(t, 0.0, c.WheelAccumulator())
}

func TestController_WheelAccumulatorResetsAfterIdle(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.False(t, c.Wheel(WheelEvent{DeltaY: 100}, 0))
	assert.Equal(t, 100.0, c.WheelAccumulator())

	c.Tick(0.1, nil)
	assert.Equal(t, 100.0, c.WheelAccumulator())
	c.Tick(0.16, nil)
	assert.Equal(t, 0.0, c.WheelAccumulator())

	// A slow scroll never crosses the threshold.
	for i := 0; i < 10; i++ {
		assert.False(t, c.Wheel(WheelEvent{DeltaY: 100}, 1+float64(i)*0.2))
	}
	assert.Equal(t, 0, c.Index())
}

func TestController_WheelUpGoesBack(t *testing.T) {
	c, _, _ := newTestController(t, WithViewport(1000, 500))
	require.True(t, c.GoTo(2, 0))
	c.Tick(3, nil)

	assert.True(t, c.Wheel(WheelEvent{DeltaY: -91}, 3))
	assert.Equal(t, 1, c.Index())
}

func TestController_HorizontalWheel(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.False(t, c.Wheel(WheelEvent{DeltaX: 9, DeltaY: 1}, 0), "below horizontal minimum")
	assert.False(t, c.Wheel(WheelEvent{DeltaX: 20, DeltaY: 30}, 0), "vertical dominant")
	assert.True(t, c.Wheel(WheelEvent{DeltaX: 20, DeltaY: 5}, 0.5))
	assert.Equal(t, 1, c.Index())

	c.Tick(3, nil)
	assert.True(t, c.Wheel(WheelEvent{DeltaX: -40}, 3))
	assert.Equal(t, 0, c.Index())
}

func TestController_Touch(t *testing.T) {
	c, _, _ := newTestController(t)
	// swipe threshold = min(1000, 800) * 0.12 = 96

	c.TouchStart(500, 400, 0)
	assert.False(t, c.TouchEnd(420, 400, 0.1), "too short")

	c.TouchStart(500, 400, 0.2)
	assert.False(t, c.TouchEnd(300, 150, 0.3), "vertical dominant")

	c.TouchStart(500, 400, 0.4)
	assert.True(t, c.TouchEnd(300, 390, 0.5), "swipe left advances")
	assert.Equal(t, 1, c.Index())

	c.Tick(3, nil)
	c.TouchStart(100, 400, 3)
	assert.True(t, c.TouchEnd(400, 400, 3.1), "swipe right goes back")
	assert.Equal(t, 0, c.Index())

	assert.False(t, c.TouchEnd(0, 0, 6), "end without start")
}

func TestController_ScrollTo(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.False(t, c.ScrollTo(0.1, 0))
	assert.True(t, c.ScrollTo(0.6, 0))
	assert.Equal(t, 2, c.Index())
	c.Tick(3, nil)
	assert.True(t, c.ScrollTo(1.0, 3))
	assert.Equal(t, 3, c.Index())
}

func TestController_InitialSectionFromFragment(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSection = "#snow"
	c, err := NewController(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, "#snow", c.Fragment())

	cfg.InitialSection = "#monsoon"
	c, err = NewController(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Index())

	assert.True(t, c.GoToName("#clouds", 0))
	assert.False(t, c.GoToName("fog", 5))
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Sections = nil
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Sections = []string{"sunny", "sunny"}
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.ScrollEase = "bounce.out"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.TransitionDuration = 0
	assert.Error(t, bad.Validate())

	_, err := NewController(bad, nil)
	assert.Error(t, err)
}

func TestController_Announce(t *testing.T) {
	c, gust, changes := newTestController(t)

	ch := c.Announce(0)
	require.Len(t, *changes, 1)
	assert.Equal(t, ch, (*changes)[0])
	assert.Equal(t, "sunny", ch.Name)
	assert.Equal(t, 0, ch.From)
	assert.Equal(t, 0, ch.To)
	assert.Equal(t, 0, ch.Direction)
	assert.Empty(t, gust.calls)
	assert.Equal(t, Idle, c.Phase())
}
