package meadow

import (
	"github.com/gekko3d/meadow/sections"
)

// Sections exposes the navigation controller. The controller is the only
// writer of the section index; everything else reads it.
type Sections struct {
	Controller *sections.Controller
}

func (s *Sections) Current() string { return s.Controller.Section() }

// SectionsModule wires input to the controller, the controller to the weather
// target and the gust envelope. It must be installed after WeatherModule,
// GustModule and InputModule.
type SectionsModule struct {
	Config   sections.Config
	OnChange func(sections.Change)
	Options  []sections.Option
}

func (mod SectionsModule) Install(app *App, cmd *Commands) {
	w := mustResource[Weather](app, "SectionsModule")
	g := mustResource[Gust](app, "SectionsModule")
	input := mustResource[Input](app, "SectionsModule")
	logger := cmd.Logger()

	onChange := func(ch sections.Change) {
		if ch.Direction == 0 {
			logger.Infof("Starting at section %s (%s)", ch.Name, ch.ID)
		} else {
			logger.Infof("Section %s -> %s (transition %s)", mod.Config.Sections[ch.From], ch.Name, ch.ID)
		}
		w.SetTarget(ch.Name)
		if mod.OnChange != nil {
			mod.OnChange(ch)
		}
	}

	opts := append([]sections.Option{
		sections.WithViewport(input.ViewportSize()),
		sections.WithListener(onChange),
	}, mod.Options...)
	ctrl, err := sections.NewController(mod.Config, g, opts...)
	if err != nil {
		logger.Errorf("Sections: %v", err)
		panic(err)
	}

	if mod.Config.InitialSection != "" {
		if _, ok := mod.Config.IndexOf(mod.Config.InitialSection); !ok {
			logger.Warnf("Initial section %q unknown; starting at %s", mod.Config.InitialSection, ctrl.Section())
		}
	}
	ctrl.Announce(0)

	cmd.AddResources(&Sections{Controller: ctrl})
	cmd.UseSystem(System(sectionsSystem).InStage(PreUpdate))
}

func sectionsSystem(t *Time, input *Input, s *Sections) {
	now := t.Seconds()
	ctrl := s.Controller
	ctrl.Tick(now, input)

	for _, ev := range input.Events {
		switch e := ev.(type) {
		case WheelEvent:
			ctrl.Wheel(sections.WheelEvent{DeltaX: e.DeltaX, DeltaY: e.DeltaY}, now)
		case TouchStartEvent:
			ctrl.TouchStart(e.X, e.Y, now)
		case TouchEndEvent:
			ctrl.TouchEnd(e.X, e.Y, now)
		case ScrollEvent:
			ctrl.ScrollTo(e.Progress, now)
		}
	}

	if input.JustPressed[KeyRight] {
		ctrl.Key(sections.KeyArrowRight, now)
	}
	if input.JustPressed[KeyLeft] {
		ctrl.Key(sections.KeyArrowLeft, now)
	}
}
