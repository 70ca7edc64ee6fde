package meadow

const (
	KeyLeft int = iota
	KeyRight
	keyCount
)

// keyNames maps DOM KeyboardEvent.key values to key codes.
var keyNames = map[string]int{
	"ArrowLeft":  KeyLeft,
	"ArrowRight": KeyRight,
}

// InputEvent is one raw event delivered by the host between frames.
type InputEvent interface {
	inputEvent()
}

type WheelEvent struct {
	DeltaX, DeltaY float64
}

type TouchStartEvent struct {
	X, Y float64
}

type TouchEndEvent struct {
	X, Y float64
}

type KeyDownEvent struct {
	Key string
}

// ScrollEvent reports the page scroll progress in [0,1].
type ScrollEvent struct {
	Progress float64
}

func (WheelEvent) inputEvent()      {}
func (TouchStartEvent) inputEvent() {}
func (TouchEndEvent) inputEvent()   {}
func (KeyDownEvent) inputEvent()    {}
func (ScrollEvent) inputEvent()     {}

type InputModule struct {
	ViewportWidth, ViewportHeight float64
}

// Input is the per-frame input snapshot. Events holds everything the host
// pushed since the previous frame, in arrival order.
type Input struct {
	JustPressed [keyCount]bool
	Events      []InputEvent

	ViewportWidth, ViewportHeight float64

	pending []InputEvent
}

// ViewportSize lets the section controller poll the snapshot directly.
func (in *Input) ViewportSize() (float64, float64) {
	return in.ViewportWidth, in.ViewportHeight
}

func (in *Input) push(ev InputEvent) {
	in.pending = append(in.pending, ev)
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	w, h := mod.ViewportWidth, mod.ViewportHeight
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 720
	}
	cmd.AddResources(&Input{ViewportWidth: w, ViewportHeight: h})
	cmd.UseSystem(System(inputSystem).InStage(PreUpdate))
}

func inputSystem(input *Input) {
	input.Events = input.pending
	input.pending = nil

	for key := range input.JustPressed {
		input.JustPressed[key] = false
	}
	for _, ev := range input.Events {
		if kd, ok := ev.(KeyDownEvent); ok {
			if key, known := keyNames[kd.Key]; known {
				input.JustPressed[key] = true
			}
		}
	}
}

// PushEvent queues a raw input event for the next frame.
func (app *App) PushEvent(ev InputEvent) {
	input, ok := Resource[Input](app)
	if !ok {
		app.Logger().Warnf("Dropping %T: no InputModule installed", ev)
		return
	}
	input.push(ev)
}

// SetViewport records the display size polled by the next frame.
func (app *App) SetViewport(width, height float64) {
	input, ok := Resource[Input](app)
	if !ok {
		app.Logger().Warnf("Ignoring viewport %vx%v: no InputModule installed", width, height)
		return
	}
	if width > 0 && height > 0 {
		input.ViewportWidth, input.ViewportHeight = width, height
	}
}
