package gust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope_InertBeforeTrigger(t *testing.T) {
	var e Envelope
	for _, now := range []float64{0, 0.5, 10} {
		assert.Equal(t, 0.0, e.Sample(now))
	}
	amp, dir := e.Uniforms(1)
	assert.Equal(t, float32(0), amp)
	assert.Equal(t, float32(1), dir)
}

func TestEnvelope_Boundaries(t *testing.T) {
	var e Envelope
	e.Trigger(0.8, 1, 2.0, 10)

	assert.Equal(t, 0.0, e.Sample(10), "phase 0")
	assert.True(t, e.Active())
	assert.Greater(t, e.Sample(10.5), 0.0)
	assert.Equal(t, 0.0, e.Sample(12), "phase 1")
	assert.False(t, e.Active())
	assert.Equal(t, 0.0, e.Sample(11), "stays inactive until retriggered")
}

func TestEnvelope_NeverExceedsPeak(t *testing.T) {
	var e Envelope
	e.Trigger(0.8, -1, 2.0, 0)
	maxSeen := 0.0
	for i := 0; i <= 200; i++ {
		v := e.Sample(float64(i) * 0.01)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 0.8)
		maxSeen = max(maxSeen, v)
	}
	assert.Greater(t, maxSeen, 0.3)
}

func TestEnvelope_KnownValue(t *testing.T) {
	var e Envelope
	e.Trigger(1, 1, 2, 0)
	// phase 0.25: smooth = 0.15625, wave = 1.
	assert.InDelta(t, 0.15625, e.Sample(0.5), 1e-12)
}

func TestEnvelope_ClampsParameters(t *testing.T) {
	var e Envelope
	e.Trigger(3, 0, -1, 0)
	assert.Equal(t, 1.0, e.Peak())
	assert.Equal(t, MinDuration, e.Duration())
	assert.Equal(t, 1, e.Direction())

	e.Trigger(-2, -7, 0.1, 0)
	assert.Equal(t, 0.0, e.Peak())
	assert.Equal(t, -1, e.Direction())
	assert.Equal(t, 0.0, e.Sample(0.2))
}

func TestEnvelope_RetriggerRestarts(t *testing.T) {
	var e Envelope
	e.Trigger(0.8, 1, 2, 0)
	e.Sample(1.0)

	e.Trigger(0.5, -1, 1, 1.5)
	assert.Equal(t, 0.0, e.Sample(1.5))
	assert.Equal(t, -1, e.Direction())
	assert.True(t, e.Active())
	assert.Equal(t, 0.0, e.Sample(2.5))
	assert.False(t, e.Active())
}
