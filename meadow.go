// Package meadow assembles the grass field, the weather engine, the gust
// envelope and the section controller into one App that a host ticks once
// per rendered frame and reads Frames from.
package meadow

import (
	"fmt"
	"time"

	"github.com/gekko3d/meadow/field"
	"github.com/gekko3d/meadow/precip"
	"github.com/gekko3d/meadow/sections"
)

type options struct {
	clock         func() time.Time
	logger        Logger
	ground        field.HeightFunc
	fieldOpts     []field.Option
	sectionOpts   []sections.Option
	precipRand    precip.Source
	onChange      func(sections.Change)
	width, height float64
	profile       bool
}

type Option func(*options)

// WithClock replaces time.Now as the frame clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithLogger installs l instead of a DefaultLogger built from the config. l
// must be a pointer.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithGround(h field.HeightFunc) Option {
	return func(o *options) { o.ground = h }
}

func WithFieldOptions(opts ...field.Option) Option {
	return func(o *options) { o.fieldOpts = append(o.fieldOpts, opts...) }
}

func WithSectionOptions(opts ...sections.Option) Option {
	return func(o *options) { o.sectionOpts = append(o.sectionOpts, opts...) }
}

func WithPrecipitationRand(src precip.Source) Option {
	return func(o *options) { o.precipRand = src }
}

// OnSectionChange registers a host callback for accepted transitions, e.g. to
// rewrite the URL fragment.
func OnSectionChange(fn func(sections.Change)) Option {
	return func(o *options) { o.onChange = fn }
}

func WithViewport(width, height float64) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithProfiler installs a Profiler that times every stage.
func WithProfiler() Option {
	return func(o *options) { o.profile = true }
}

// New validates cfg and builds a fully wired App.
func New(cfg Config, opts ...Option) (app *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	level, _ := ParseLogLevel(cfg.Logging.Level)

	// Module installs panic on wiring errors Validate cannot see, such as a
	// non-pointer logger.
	defer func() {
		if r := recover(); r != nil {
			app = nil
			if e, ok := r.(error); ok {
				err = fmt.Errorf("install meadow: %w", e)
				return
			}
			err = fmt.Errorf("install meadow: %v", r)
		}
	}()

	builder := NewAppBuilder().UseModule(LoggingModule{
		Prefix: cfg.Logging.Prefix,
		Level:  level,
		Logger: o.logger,
	})
	if o.profile {
		builder.UseModule(ProfilerModule{})
	}
	app = builder.
		UseModule(
			TimeModule{Clock: o.clock},
			InputModule{ViewportWidth: o.width, ViewportHeight: o.height},
			FieldModule{Grass: cfg.Grass, Ground: o.ground, Options: o.fieldOpts},
			WeatherModule{Config: cfg.Weather},
			GustModule{},
			SectionsModule{Config: cfg.Sections, OnChange: o.onChange, Options: o.sectionOpts},
			PrecipitationModule{Config: cfg.Precipitation, Rand: o.precipRand},
			FrameModule{},
		).
		Build()
	return app, nil
}
