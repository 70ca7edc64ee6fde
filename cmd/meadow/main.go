// Command meadow runs a meadow app headless: it ticks a fixed number of
// frames on a simulated clock, scrolls through every section and reports
// what a renderer would have received.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gekko3d/meadow"
	"github.com/gekko3d/meadow/field"
	"github.com/gekko3d/meadow/sections"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; defaults are used when empty")
	frames := flag.Int("frames", 900, "frames to simulate")
	fps := flag.Int("fps", 60, "simulated frame rate")
	every := flag.Duration("every", 3*time.Second, "simulated time between scripted scroll gestures")
	seed := flag.Int64("seed", 1, "random seed for the field and precipitation")
	profile := flag.Bool("profile", false, "print stage timings of the last frame")
	dump := flag.Bool("dump-config", false, "print the effective config and exit")
	flag.Parse()

	cfg := meadow.DefaultConfig()
	if *configPath != "" {
		loaded, err := meadow.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "meadow: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *dump {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "meadow: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	if *fps <= 0 || *frames < 0 {
		fmt.Fprintln(os.Stderr, "meadow: -fps must be positive and -frames non-negative")
		os.Exit(2)
	}

	clock := meadow.NewManualClock(time.Unix(0, 0))
	rng := rand.New(rand.NewSource(*seed))
	var changes []sections.Change

	opts := []meadow.Option{
		meadow.WithClock(clock.Now),
		meadow.WithFieldOptions(field.WithRand(rng)),
		meadow.WithPrecipitationRand(rng),
		meadow.OnSectionChange(func(ch sections.Change) {
			if ch.Direction == 0 {
				fmt.Printf("start section=%s fragment=#%s\n", ch.Name, ch.Name)
				return
			}
			changes = append(changes, ch)
		}),
	}
	if *profile {
		opts = append(opts, meadow.WithProfiler())
	}
	app, err := meadow.New(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meadow: %v\n", err)
		os.Exit(1)
	}

	frameDt := time.Second / time.Duration(*fps)
	gestureEvery := int(*every / frameDt)
	if gestureEvery < 1 {
		gestureEvery = 1
	}
	frameContainer, _ := meadow.Resource[meadow.FrameContainer](app)

	direction := 1.0
	for i := 0; i < *frames; i++ {
		if i > 0 && i%gestureEvery == 0 {
			if f := frameContainer.Get(); f != nil {
				n := len(cfg.Sections.Sections)
				if f.Overlay.Index == n-1 {
					direction = -1
				} else if f.Overlay.Index == 0 {
					direction = 1
				}
			}
			// One trackpad flick, comfortably past the wheel threshold.
			app.PushEvent(meadow.WheelEvent{DeltaY: direction * 400})
		}
		app.Tick()
		clock.Advance(frameDt)
	}

	f := frameContainer.Get()
	if f == nil {
		fmt.Println("no frames rendered")
		return
	}
	fmt.Printf("frames=%d section=%s transitions=%d\n", f.Index+1, f.Section, len(changes))
	for _, ch := range changes {
		fmt.Printf("  t=%6.2fs %s -> %s (dir %+d, %s)\n", ch.At, cfg.Sections.Sections[ch.From], ch.Name, ch.Direction, ch.ID)
	}
	env := f.Environment
	fmt.Printf("ambient=%.3f point=%.3f fog=%s [%.0f,%.0f] clouds=%.2f rain=%.2f snow=%.2f\n",
		env.Ambient, env.PointLight, env.Fog.Color.Hex(), env.Fog.Near, env.Fog.Far,
		env.CloudDensity, env.RainIntensity, env.SnowIntensity)
	fmt.Printf("gust=%.3f dir=%+.0f overlay=%v rain_points=%d snow_points=%d cloud_puffs=%d\n",
		f.GustAmplitude, f.GustDirection, f.Overlay.Visible,
		len(f.Rain.Positions)/3, len(f.Snow.Positions)/3, len(f.Clouds))

	if prof, ok := meadow.Resource[meadow.Profiler](app); ok {
		fmt.Print(prof.Stats())
	}
}
