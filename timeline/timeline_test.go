package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func overlay() *Timeline {
	return New(
		map[string]float64{"overlay": 0, "layer": 1},
		Track{Property: "overlay", Start: 0, Duration: 0.3, Ease: Power2Out, From: From(0), To: 1},
		Track{Property: "overlay", Start: 1.95, Duration: 0.35, Ease: Power2In, To: 0},
		Track{Property: "layer", Start: 0, Duration: 0.35, Ease: Power1Out, To: 0.25},
		Track{Property: "layer", Start: 1.8, Duration: 0.35, Ease: Power1Out, To: 1},
	)
}

func TestTimeline_Value(t *testing.T) {
	tl := overlay()

	tests := []struct {
		property string
		elapsed  float64
		want     float64
	}{
		{"overlay", 0, 0},
		{"overlay", 0.3, 1},
		{"overlay", 1.0, 1},
		{"overlay", 1.95, 1},
		{"overlay", 2.3, 0},
		{"layer", 0, 1},
		{"layer", 0.35, 0.25},
		{"layer", 1.8, 0.25},
		{"layer", 2.15, 1},
		{"layer", 5, 1},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, tl.Value(tc.property, tc.elapsed), 1e-9, "%s@%v", tc.property, tc.elapsed)
	}

	// Halfway through the fade-in with power2.out: 1 - 0.5^3.
	assert.InDelta(t, 0.875, tl.Value("overlay", 0.15), 1e-9)
	assert.InDelta(t, 2.3, tl.Duration(), 1e-9)
	assert.False(t, tl.Done(2.2))
	assert.True(t, tl.Done(2.3))
}

func TestTimeline_ToTrackStartsFromCurrentValue(t *testing.T) {
	tl := New(map[string]float64{"x": 5}, Track{Property: "x", Start: 1, Duration: 1, To: 7})
	assert.Equal(t, 5.0, tl.Value("x", 0.5))
	assert.InDelta(t, 6.0, tl.Value("x", 1.5), 1e-9)
	assert.Equal(t, 7.0, tl.Value("x", 3))
}

func TestTimeline_Values(t *testing.T) {
	tl := New(nil, Track{Property: "y", Duration: 2, From: From(0), To: 4})
	vals := tl.Values(1)
	assert.InDelta(t, 2.0, vals["y"], 1e-9)
}

func TestLoop_Progress(t *testing.T) {
	l := Loop{Period: 2, Offset: 0.5}
	assert.InDelta(t, 0.25, l.Progress(0), 1e-9)
	assert.InDelta(t, 0.75, l.Progress(1), 1e-9)
	assert.InDelta(t, 0.25, l.Progress(2), 1e-9)
	assert.Equal(t, 0.0, Loop{}.Progress(3))
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "power1.in", "power1.out", "power2.in", "power2.out", "cubic.out", "smoothstep"} {
		e, ok := EasingByName(name)
		assert.True(t, ok, name)
		assert.InDelta(t, 0, e(0), 1e-12, name)
		assert.InDelta(t, 1, e(1), 1e-12, name)
	}
	_, ok := EasingByName("bounce")
	assert.False(t, ok)
}
