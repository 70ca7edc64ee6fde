// Package timeline evaluates declarative property tracks against elapsed
// time. Nothing here schedules work; callers pass the clock in.
package timeline

import "math"

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func Power1In(t float64) float64 { return t * t }

func Power1Out(t float64) float64 { return 1 - (1-t)*(1-t) }

func Power2In(t float64) float64 { return t * t * t }

func Power2Out(t float64) float64 { return 1 - math.Pow(1-t, 3) }

// CubicOut is the scroll easing, identical in shape to Power2Out.
func CubicOut(t float64) float64 { return Power2Out(t) }

func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

var easings = map[string]Easing{
	"linear":     Linear,
	"power1.in":  Power1In,
	"power1.out": Power1Out,
	"power2.in":  Power2In,
	"power2.out": Power2Out,
	"cubic.out":  CubicOut,
	"smoothstep": Smoothstep,
}

// EasingByName resolves the names used in configuration files.
func EasingByName(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
