package meadow

import (
	"github.com/gekko3d/meadow/weather"
)

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
	LightTypeAmbient     LightType = 3
)

// Light is the renderer-facing description of one scene light.
type Light struct {
	Type      LightType
	Color     [3]float32 // RGB
	Intensity float32
	Position  [3]float32 // point lights only
}

var pointLightPosition = [3]float32{10, 10, 10}

// SceneLights derives the ambient and point light from the live environment.
func SceneLights(env weather.EnvironmentState) []Light {
	white := [3]float32{1, 1, 1}
	return []Light{
		{Type: LightTypeAmbient, Color: white, Intensity: float32(env.Ambient)},
		{Type: LightTypePoint, Color: white, Intensity: float32(env.PointLight), Position: pointLightPosition},
	}
}
