package timeline

import (
	"math"
	"slices"
)

// Track animates one property from From (or the value the property holds when
// the track starts, if From is nil) to To.
type Track struct {
	Property string
	Start    float64
	Duration float64
	Ease     Easing
	From     *float64
	To       float64
}

// From is a helper for Track.From literals.
func From(v float64) *float64 { return &v }

// Timeline is an ordered set of tracks over named properties.
type Timeline struct {
	initial map[string]float64
	tracks  []Track
	end     float64
}

func New(initial map[string]float64, tracks ...Track) *Timeline {
	tl := &Timeline{initial: make(map[string]float64, len(initial))}
	for k, v := range initial {
		tl.initial[k] = v
	}
	for _, tr := range tracks {
		tl.Add(tr)
	}
	return tl
}

func (tl *Timeline) Add(tr Track) {
	if tr.Ease == nil {
		tr.Ease = Linear
	}
	if tr.Duration < 0 {
		tr.Duration = 0
	}
	tl.tracks = append(tl.tracks, tr)
	slices.SortStableFunc(tl.tracks, func(a, b Track) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	tl.end = max(tl.end, tr.Start+tr.Duration)
}

// Duration is the time at which the last track finishes.
func (tl *Timeline) Duration() float64 { return tl.end }

// Value evaluates one property at elapsed seconds since the timeline began.
func (tl *Timeline) Value(property string, elapsed float64) float64 {
	v := tl.initial[property]
	for _, tr := range tl.tracks {
		if tr.Property != property {
			continue
		}
		from := v
		if tr.From != nil {
			from = *tr.From
		}
		if elapsed < tr.Start {
			break
		}
		p := 1.0
		if tr.Duration > 0 {
			p = clamp01((elapsed - tr.Start) / tr.Duration)
		}
		v = from + (tr.To-from)*tr.Ease(p)
	}
	return v
}

// Values evaluates every property that has an initial value or a track.
func (tl *Timeline) Values(elapsed float64) map[string]float64 {
	out := make(map[string]float64, len(tl.initial))
	for k := range tl.initial {
		out[k] = tl.Value(k, elapsed)
	}
	for _, tr := range tl.tracks {
		if _, ok := out[tr.Property]; !ok {
			out[tr.Property] = tl.Value(tr.Property, elapsed)
		}
	}
	return out
}

// Done reports whether every track has finished at elapsed.
func (tl *Timeline) Done(elapsed float64) bool { return elapsed >= tl.end }

// Loop is an endlessly repeating cycle entered Offset seconds into its period.
type Loop struct {
	Period float64
	Offset float64
}

// Progress returns the position within the current cycle in [0,1).
func (l Loop) Progress(elapsed float64) float64 {
	if l.Period <= 0 {
		return 0
	}
	p := math.Mod(elapsed+l.Offset, l.Period)
	if p < 0 {
		p += l.Period
	}
	return p / l.Period
}
