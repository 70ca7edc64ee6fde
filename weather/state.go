// Package weather holds the named environment bundles and the engine that
// blends the live environment toward whichever bundle is targeted.
package weather

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an RGB color that reads and writes as a "#rrggbb" string.
type Color struct {
	colorful.Color
}

func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{c}, nil
}

// MustHex is Hex for package-level tables.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp blends linearly in RGB space.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{c.Color.BlendRgb(to.Color, t)}
}

func (c Color) RGB32() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := Hex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Fog struct {
	Color Color   `yaml:"color"`
	Near  float64 `yaml:"near"`
	Far   float64 `yaml:"far"`
}

// Sky mirrors the parameters of a Preetham-style sky shader.
type Sky struct {
	SunPosition     mgl64.Vec3 `yaml:"sun_position"`
	Inclination     float64    `yaml:"inclination"`
	Azimuth         float64    `yaml:"azimuth"`
	MieCoefficient  float64    `yaml:"mie_coefficient"`
	MieDirectionalG float64    `yaml:"mie_directional_g"`
	Rayleigh        float64    `yaml:"rayleigh"`
	Turbidity       float64    `yaml:"turbidity"`
}

// EnvironmentState is one full set of lighting, fog, sky and precipitation
// inputs consumed by the renderer.
type EnvironmentState struct {
	Ambient       float64 `yaml:"ambient"`
	PointLight    float64 `yaml:"point_light"`
	Fog           Fog     `yaml:"fog"`
	Sky           Sky     `yaml:"sky"`
	CloudDensity  float64 `yaml:"cloud_density"`
	RainIntensity float64 `yaml:"rain_intensity"`
	SnowIntensity float64 `yaml:"snow_intensity"`
}

// Validate reports the first broken range constraint.
func (s EnvironmentState) Validate() error {
	switch {
	case s.Ambient < 0:
		return fmt.Errorf("ambient must be >= 0, got %v", s.Ambient)
	case s.PointLight < 0:
		return fmt.Errorf("point light must be >= 0, got %v", s.PointLight)
	case s.Fog.Near >= s.Fog.Far:
		return fmt.Errorf("fog near (%v) must be below far (%v)", s.Fog.Near, s.Fog.Far)
	case s.Sky.Turbidity <= 0:
		return fmt.Errorf("sky turbidity must be positive, got %v", s.Sky.Turbidity)
	case s.Sky.Rayleigh < 0 || s.Sky.MieCoefficient < 0:
		return fmt.Errorf("sky rayleigh and mie coefficient must be >= 0")
	}
	for name, v := range map[string]float64{
		"cloud density":  s.CloudDensity,
		"rain intensity": s.RainIntensity,
		"snow intensity": s.SnowIntensity,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}
	return nil
}

// Blend moves every field of s toward to by factor t.
func (s EnvironmentState) Blend(to EnvironmentState, t float64) EnvironmentState {
	return EnvironmentState{
		Ambient:    lerp(s.Ambient, to.Ambient, t),
		PointLight: lerp(s.PointLight, to.PointLight, t),
		Fog: Fog{
			Color: s.Fog.Color.Lerp(to.Fog.Color, t),
			Near:  lerp(s.Fog.Near, to.Fog.Near, t),
			Far:   lerp(s.Fog.Far, to.Fog.Far, t),
		},
		Sky: Sky{
			SunPosition: mgl64.Vec3{
				lerp(s.Sky.SunPosition[0], to.Sky.SunPosition[0], t),
				lerp(s.Sky.SunPosition[1], to.Sky.SunPosition[1], t),
				lerp(s.Sky.SunPosition[2], to.Sky.SunPosition[2], t),
			},
			Inclination:     lerp(s.Sky.Inclination, to.Sky.Inclination, t),
			Azimuth:         lerp(s.Sky.Azimuth, to.Sky.Azimuth, t),
			MieCoefficient:  lerp(s.Sky.MieCoefficient, to.Sky.MieCoefficient, t),
			MieDirectionalG: lerp(s.Sky.MieDirectionalG, to.Sky.MieDirectionalG, t),
			Rayleigh:        lerp(s.Sky.Rayleigh, to.Sky.Rayleigh, t),
			Turbidity:       lerp(s.Sky.Turbidity, to.Sky.Turbidity, t),
		},
		CloudDensity:  lerp(s.CloudDensity, to.CloudDensity, t),
		RainIntensity: lerp(s.RainIntensity, to.RainIntensity, t),
		SnowIntensity: lerp(s.SnowIntensity, to.SnowIntensity, t),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// StateSet maps state names to states. Decoding YAML into a populated set
// overlays each named state field by field, so a document only has to list
// what it changes.
type StateSet map[string]EnvironmentState

func (s *StateSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: weather states must be a mapping", node.Line)
	}
	if *s == nil {
		*s = make(StateSet)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		st := (*s)[name]
		if err := node.Content[i+1].Decode(&st); err != nil {
			return fmt.Errorf("weather state %q: %w", name, err)
		}
		(*s)[name] = st
	}
	return nil
}

// DefaultStates returns the stock sunny, rain, snow and clouds bundles.
func DefaultStates() StateSet {
	return StateSet{
		"sunny": {
			Ambient:    1.2,
			PointLight: 1.8,
			Fog:        Fog{Color: MustHex("#cce0ff"), Near: 50, Far: 500},
			Sky: Sky{
				SunPosition:     mgl64.Vec3{100, 20, 100},
				Inclination:     0.49,
				Azimuth:         0.25,
				MieCoefficient:  0.005,
				MieDirectionalG: 0.8,
				Rayleigh:        1,
				Turbidity:       8,
			},
		},
		"rain": {
			Ambient:    0.15,
			PointLight: 0.5,
			Fog:        Fog{Color: MustHex("#555566"), Near: 20, Far: 200},
			Sky: Sky{
				SunPosition:     mgl64.Vec3{50, 10, 50},
				Inclination:     0.6,
				Azimuth:         0.3,
				MieCoefficient:  0.02,
				MieDirectionalG: 0.7,
				Rayleigh:        2,
				Turbidity:       15,
			},
			CloudDensity:  0.8,
			RainIntensity: 1.0,
		},
		"snow": {
			Ambient:    0.6,
			PointLight: 1.2,
			Fog:        Fog{Color: MustHex("#eeeeff"), Near: 30, Far: 300},
			Sky: Sky{
				SunPosition:     mgl64.Vec3{30, 5, 30},
				Inclination:     0.7,
				Azimuth:         0.4,
				MieCoefficient:  0.015,
				MieDirectionalG: 0.6,
				Rayleigh:        1.5,
				Turbidity:       20,
			},
			CloudDensity:  0.9,
			SnowIntensity: 1.0,
		},
		"clouds": {
			Ambient:    0.35,
			PointLight: 0.8,
			Fog:        Fog{Color: MustHex("#aaaaaa"), Near: 40, Far: 400},
			Sky: Sky{
				SunPosition:     mgl64.Vec3{70, 15, 70},
				Inclination:     0.55,
				Azimuth:         0.35,
				MieCoefficient:  0.01,
				MieDirectionalG: 0.75,
				Rayleigh:        1.2,
				Turbidity:       12,
			},
			CloudDensity: 0.6,
		},
	}
}

// DefaultOrder is the registration order of DefaultStates.
var DefaultOrder = []string{"sunny", "rain", "snow", "clouds"}
