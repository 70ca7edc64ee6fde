// Package gust implements the one-shot wind gust envelope fed to the grass
// vertex shader.
package gust

import "math"

const MinDuration = 0.5

// Envelope is a single scripted gust. The zero value is inert.
type Envelope struct {
	peak      float64
	direction int
	duration  float64
	start     float64
	active    bool
}

// Trigger restarts the envelope at now with the given parameters. Peak is
// clamped to [0,1], duration to at least MinDuration and direction to its
// sign (zero counts as forward).
func (e *Envelope) Trigger(peak float64, direction int, durationSec float64, now float64) {
	if math.IsNaN(peak) {
		peak = 0
	}
	if math.IsNaN(durationSec) || durationSec < MinDuration {
		durationSec = MinDuration
	}
	dir := 1
	if direction < 0 {
		dir = -1
	}
	*e = Envelope{
		peak:      math.Max(0, math.Min(1, peak)),
		direction: dir,
		duration:  durationSec,
		start:     now,
		active:    true,
	}
}

// Sample returns the gust amplitude at now. Once the envelope has run its
// full duration it deactivates and keeps returning 0 until retriggered.
func (e *Envelope) Sample(now float64) float64 {
	if !e.active {
		return 0
	}
	phase := (now - e.start) / e.duration
	if phase >= 1 {
		e.active = false
		return 0
	}
	if phase <= 0 {
		return 0
	}
	smooth := phase * phase * (3 - 2*phase)
	wave := 0.5 + 0.5*math.Sin(phase*2*math.Pi)
	return e.peak * smooth * wave
}

// Uniforms returns the values bound to the gust shader uniforms.
func (e *Envelope) Uniforms(now float64) (amplitude float32, direction float32) {
	amplitude = float32(e.Sample(now))
	if e.direction == 0 {
		return amplitude, 1
	}
	return amplitude, float32(e.direction)
}

func (e *Envelope) Active() bool { return e.active }

func (e *Envelope) Peak() float64 { return e.peak }

func (e *Envelope) Direction() int { return e.direction }

func (e *Envelope) Duration() float64 { return e.duration }
