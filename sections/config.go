package sections

import (
	"fmt"
	"strings"

	"github.com/gekko3d/meadow/timeline"
)

// Config holds the navigation tuning knobs. The ratios and delays are
// empirical defaults and safe to tune.
type Config struct {
	Sections       []string `yaml:"names"`
	InitialSection string   `yaml:"initial"`

	TransitionDuration float64 `yaml:"transition_duration"`
	ScrollDuration     float64 `yaml:"scroll_duration"`
	ScrollEase         string  `yaml:"scroll_ease"`

	WheelTriggerRatio  float64 `yaml:"wheel_trigger_ratio"`
	WheelHorizontalMin float64 `yaml:"wheel_horizontal_min"`
	AccumulatorReset   float64 `yaml:"accumulator_reset"`
	SwipeRatio         float64 `yaml:"swipe_ratio"`

	GustPeak     float64 `yaml:"gust_peak"`
	GustDuration float64 `yaml:"gust_duration"`

	StreakCount int `yaml:"streak_count"`
}

func DefaultConfig() Config {
	return Config{
		Sections:           []string{"sunny", "rain", "snow", "clouds"},
		TransitionDuration: 2.2,
		ScrollDuration:     1.0,
		ScrollEase:         "cubic.out",
		WheelTriggerRatio:  0.18,
		WheelHorizontalMin: 10,
		AccumulatorReset:   0.16,
		SwipeRatio:         0.12,
		GustPeak:           0.8,
		GustDuration:       2.0,
		StreakCount:        10,
	}
}

func (c Config) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("sections: at least one section is required")
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if s == "" {
			return fmt.Errorf("sections: empty section name")
		}
		if seen[s] {
			return fmt.Errorf("sections: duplicate section %q", s)
		}
		seen[s] = true
	}
	if c.TransitionDuration <= 0 {
		return fmt.Errorf("sections: transition_duration must be positive, got %v", c.TransitionDuration)
	}
	if c.ScrollDuration < 0 || c.ScrollDuration > c.TransitionDuration {
		return fmt.Errorf("sections: scroll_duration must be within [0, transition_duration], got %v", c.ScrollDuration)
	}
	if _, ok := timeline.EasingByName(c.ScrollEase); !ok {
		return fmt.Errorf("sections: unknown scroll_ease %q", c.ScrollEase)
	}
	if c.WheelTriggerRatio <= 0 || c.SwipeRatio <= 0 {
		return fmt.Errorf("sections: wheel_trigger_ratio and swipe_ratio must be positive")
	}
	if c.AccumulatorReset <= 0 {
		return fmt.Errorf("sections: accumulator_reset must be positive, got %v", c.AccumulatorReset)
	}
	if c.StreakCount < 0 {
		return fmt.Errorf("sections: streak_count must be >= 0, got %d", c.StreakCount)
	}
	return nil
}

// IndexOf resolves a section name or URL fragment ("#rain") to its index.
func (c Config) IndexOf(nameOrFragment string) (int, bool) {
	name := strings.TrimPrefix(strings.TrimSpace(nameOrFragment), "#")
	for i, s := range c.Sections {
		if s == name {
			return i, true
		}
	}
	return 0, false
}
