package sections

// WheelEvent carries the raw wheel or trackpad deltas of one event.
type WheelEvent struct {
	DeltaX float64
	DeltaY float64
}

type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// Viewport is polled once per tick for the current display size.
type Viewport interface {
	ViewportSize() (width, height float64)
}

// Gust receives the directional gust fired by every transition.
type Gust interface {
	Trigger(peak float64, direction int, durationSec float64, now float64)
}

// Source is the random source used for streak timing. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}
