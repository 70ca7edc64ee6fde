package meadow

import (
	"fmt"
	"os"

	"github.com/gekko3d/meadow/field"
	"github.com/gekko3d/meadow/sections"
	"github.com/gekko3d/meadow/weather"
	"gopkg.in/yaml.v3"
)

type BladeConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Joints int     `yaml:"joints"`
}

type FieldConfig struct {
	Width     float32 `yaml:"width"`
	Instances int     `yaml:"instances"`
}

type GroundConfig struct {
	Width    float32       `yaml:"width"`
	Segments int           `yaml:"segments"`
	Color    weather.Color `yaml:"color"`
}

type GrassConfig struct {
	Blade  BladeConfig  `yaml:"blade"`
	Field  FieldConfig  `yaml:"field"`
	Ground GroundConfig `yaml:"ground"`
}

type WeatherConfig struct {
	Default    string           `yaml:"default"`
	Order      []string         `yaml:"order"`
	States     weather.StateSet `yaml:"states"`
	Transition weather.Options  `yaml:"transition"`
}

type PrecipitationConfig struct {
	Rain   int `yaml:"rain"`
	Snow   int `yaml:"snow"`
	Clouds int `yaml:"clouds"`
}

type LoggingConfig struct {
	Prefix string `yaml:"prefix"`
	Level  string `yaml:"level"`
}

// Config is the whole static configuration of a meadow app.
type Config struct {
	Grass         GrassConfig         `yaml:"grass"`
	Weather       WeatherConfig       `yaml:"weather"`
	Sections      sections.Config     `yaml:"sections"`
	Precipitation PrecipitationConfig `yaml:"precipitation"`
	Logging       LoggingConfig       `yaml:"logging"`
}

func DefaultConfig() Config {
	return Config{
		Grass: GrassConfig{
			Blade: BladeConfig{Width: 0.08, Height: 1, Joints: 5},
			Field: FieldConfig{Width: 60, Instances: 100000},
			Ground: GroundConfig{
				Width:    60,
				Segments: 32,
				Color:    weather.MustHex("#543b0e"),
			},
		},
		Weather: WeatherConfig{
			Default:    "sunny",
			Order:      append([]string(nil), weather.DefaultOrder...),
			States:     weather.DefaultStates(),
			Transition: weather.DefaultOptions(),
		},
		Sections: sections.DefaultConfig(),
		Precipitation: PrecipitationConfig{
			Rain:   10000,
			Snow:   1500,
			Clouds: 100,
		},
		Logging: LoggingConfig{Prefix: "meadow", Level: "info"},
	}
}

// ParseConfig overlays YAML data onto the defaults. Keys missing from data keep
// their default values, including the fields of a default weather state that
// data only partly overrides.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the config back to YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks everything that would otherwise fail at install time.
func (c Config) Validate() error {
	g := c.Grass
	switch {
	case g.Field.Instances <= 0:
		return fmt.Errorf("invalid config: grass.field.instances must be positive, got %d", g.Field.Instances)
	case g.Field.Width <= 0:
		return fmt.Errorf("invalid config: grass.field.width must be positive, got %v", g.Field.Width)
	case g.Blade.Width <= 0 || g.Blade.Height <= 0 || g.Blade.Joints <= 0:
		return fmt.Errorf("invalid config: grass.blade dimensions must be positive")
	case g.Ground.Width <= 0 || g.Ground.Segments <= 0:
		return fmt.Errorf("invalid config: grass.ground width and segments must be positive")
	case !field.BladeJointsFit(g.Blade.Joints):
		return fmt.Errorf("invalid config: grass.blade.joints %d exceeds 16-bit mesh indices", g.Blade.Joints)
	case !field.GroundSegmentsFit(g.Ground.Segments):
		return fmt.Errorf("invalid config: grass.ground.segments %d exceeds 16-bit mesh indices", g.Ground.Segments)
	}

	table, err := c.weatherTable()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Sections.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, name := range c.Sections.Sections {
		if !table.Has(name) {
			return fmt.Errorf("invalid config: section %q has no weather state", name)
		}
	}

	p := c.Precipitation
	if p.Rain < 0 || p.Snow < 0 || p.Clouds < 0 {
		return fmt.Errorf("invalid config: precipitation counts must be >= 0")
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) weatherTable() (*weather.Table, error) {
	return weather.NewTable(c.Weather.Order, c.Weather.States, c.Weather.Default)
}
