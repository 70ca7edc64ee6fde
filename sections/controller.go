// Package sections turns wheel, touch, keyboard and scroll input into
// discrete moves between named weather sections, one transition at a time.
package sections

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
)

// Change describes one accepted navigation. Announce emits a Change with
// From == To and Direction 0 for the section a page starts on.
type Change struct {
	ID        uuid.UUID
	From      int
	To        int
	Name      string
	Direction int
	At        float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

type Option func(*Controller)

// WithListener registers a callback fired synchronously on every accepted
// transition, before the overlay sequence starts.
func WithListener(fn func(Change)) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, fn) }
}

func WithRand(src Source) Option {
	return func(c *Controller) { c.rng = src }
}

// WithViewport seeds the viewport size used until the first Tick.
func WithViewport(width, height float64) Option {
	return func(c *Controller) { c.width, c.height = width, height }
}

// Controller is the single writer of the section index and the transition lock.
type Controller struct {
	cfg       Config
	gust      Gust
	listeners []func(Change)
	rng       Source

	index     int
	phase     Phase
	releaseAt float64

	wheelAcc    float64
	lastWheelAt float64
	wheelActive bool

	touchX, touchY float64
	touching       bool

	width, height float64

	seq *sequence
}

func NewController(cfg Config, gust Gust, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:    cfg,
		gust:   gust,
		rng:    globalSource{},
		width:  defaultViewportWidth,
		height: defaultViewportHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg.InitialSection != "" {
		if i, ok := cfg.IndexOf(cfg.InitialSection); ok {
			c.index = i
		}
	}
	return c, nil
}

func (c *Controller) Index() int { return c.index }

func (c *Controller) Section() string { return c.cfg.Sections[c.index] }

func (c *Controller) Sections() []string { return append([]string(nil), c.cfg.Sections...) }

func (c *Controller) Phase() Phase { return c.phase }

func (c *Controller) Transitioning() bool { return c.phase == Transitioning }

// ReleaseAt is the time the current lock opens; meaningless while idle.
func (c *Controller) ReleaseAt() float64 { return c.releaseAt }

// Fragment is the URL fragment naming the current section.
func (c *Controller) Fragment() string { return "#" + c.Section() }

// GoTo starts a transition to target, clamped into range. It is a no-op while
// a transition is in flight or when target is already current.
func (c *Controller) GoTo(target int, now float64) bool {
	c.advanceTimers(now)

	clamped := max(0, min(len(c.cfg.Sections)-1, target))
	if c.phase == Transitioning || clamped == c.index {
		return false
	}

	prev := c.index
	dir := 1
	if clamped < prev {
		dir = -1
	}

	c.index = clamped
	c.phase = Transitioning
	c.releaseAt = now + c.cfg.TransitionDuration

	change := Change{
		ID:        uuid.New(),
		From:      prev,
		To:        clamped,
		Name:      c.cfg.Sections[clamped],
		Direction: dir,
		At:        now,
	}
	for _, fn := range c.listeners {
		fn(change)
	}
	if c.gust != nil {
		c.gust.Trigger(c.cfg.GustPeak, dir, c.cfg.GustDuration, now)
	}
	c.seq = newSequence(c.cfg, change, c.rng)
	return true
}

// Announce reports the current section to every listener without starting a
// transition or a gust.
func (c *Controller) Announce(now float64) Change {
	change := Change{
		ID:   uuid.New(),
		From: c.index,
		To:   c.index,
		Name: c.Section(),
		At:   now,
	}
	for _, fn := range c.listeners {
		fn(change)
	}
	return change
}

// GoToName navigates to a section by name or fragment.
func (c *Controller) GoToName(name string, now float64) bool {
	i, ok := c.cfg.IndexOf(name)
	if !ok {
		return false
	}
	return c.GoTo(i, now)
}

// Step moves one section forward (+1) or backward (-1).
func (c *Controller) Step(direction int, now float64) bool {
	if direction >= 0 {
		return c.GoTo(c.index+1, now)
	}
	return c.GoTo(c.index-1, now)
}

// Wheel feeds one wheel/trackpad event.
func (c *Controller) Wheel(ev WheelEvent, now float64) bool {
	c.advanceTimers(now)
	if c.phase == Transitioning {
		return false
	}

	absX, absY := math.Abs(ev.DeltaX), math.Abs(ev.DeltaY)
	if absX > absY && absX > c.cfg.WheelHorizontalMin {
		return c.Step(sign(ev.DeltaX), now)
	}

	c.wheelAcc += ev.DeltaY
	c.lastWheelAt = now
	c.wheelActive = true

	threshold := c.height * c.cfg.WheelTriggerRatio
	switch {
	case c.wheelAcc > threshold:
		c.wheelAcc = 0
		return c.Step(1, now)
	case c.wheelAcc < -threshold:
		c.wheelAcc = 0
		return c.Step(-1, now)
	}
	return false
}

// WheelAccumulator exposes the rolling vertical accumulator.
func (c *Controller) WheelAccumulator() float64 { return c.wheelAcc }

func (c *Controller) TouchStart(x, y float64, now float64) {
	c.advanceTimers(now)
	c.touchX, c.touchY = x, y
	c.touching = true
}

// TouchEnd completes a swipe. Swiping left (finger moving toward smaller x)
// advances.
func (c *Controller) TouchEnd(x, y float64, now float64) bool {
	c.advanceTimers(now)
	if !c.touching {
		return false
	}
	c.touching = false

	dx := c.touchX - x
	dy := c.touchY - y
	absX, absY := math.Abs(dx), math.Abs(dy)
	threshold := math.Min(c.width, c.height) * c.cfg.SwipeRatio
	if absX > absY && absX > threshold {
		return c.Step(sign(dx), now)
	}
	return false
}

func (c *Controller) Key(key Key, now float64) bool {
	switch key {
	case KeyArrowRight:
		return c.Step(1, now)
	case KeyArrowLeft:
		return c.Step(-1, now)
	}
	return false
}

// ScrollTo maps a page scroll progress in [0,1] onto evenly sized section
// bands and navigates to the band it falls in.
func (c *Controller) ScrollTo(progress float64, now float64) bool {
	if math.IsNaN(progress) {
		return false
	}
	n := len(c.cfg.Sections)
	i := int(math.Floor(progress * float64(n)))
	return c.GoTo(max(0, min(n-1, i)), now)
}

// Tick polls the viewport and fires any due timers. Call once per frame.
func (c *Controller) Tick(now float64, vp Viewport) {
	if vp != nil {
		if w, h := vp.ViewportSize(); w > 0 && h > 0 {
			c.width, c.height = w, h
		}
	}
	c.advanceTimers(now)
}

func (c *Controller) advanceTimers(now float64) {
	if c.phase == Transitioning && now >= c.releaseAt {
		c.phase = Idle
		c.wheelAcc = 0
		c.wheelActive = false
		c.seq = nil
	}
	if c.wheelActive && now-c.lastWheelAt >= c.cfg.AccumulatorReset {
		c.wheelAcc = 0
		c.wheelActive = false
	}
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	return -1
}
