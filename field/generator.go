package field

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultLeanMin = -0.25
	defaultLeanMax = 0.25

	tallStretchMax  = 1.8
	shortStretchMax = 1.0
)

// Source is the random source consumed by the generator. *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

// HeightFunc returns the ground height at (x, z).
type HeightFunc func(x, z float32) float32

// Flat is the default ground: y = 0 everywhere.
func Flat(x, z float32) float32 { return 0 }

type globalSource struct{}

func (globalSource) Float32() float32 { return rand.Float32() }

// InstanceAttributeSet holds the per-instance buffers of the grass field.
// All arrays are index aligned by instance id.
type InstanceAttributeSet struct {
	Offsets          []float32 // xyz per instance
	Orientations     []float32 // xyzw per instance
	Stretches        []float32
	HalfRootAngleSin []float32
	HalfRootAngleCos []float32
}

// Instance is one unpacked row of an InstanceAttributeSet.
type Instance struct {
	Offset           mgl32.Vec3
	Orientation      mgl32.Quat
	Stretch          float32
	HalfRootAngleSin float32
	HalfRootAngleCos float32
}

func (s *InstanceAttributeSet) Count() int {
	return len(s.Stretches)
}

func (s *InstanceAttributeSet) Instance(i int) Instance {
	o := s.Orientations[i*4 : i*4+4]
	return Instance{
		Offset:           mgl32.Vec3{s.Offsets[i*3], s.Offsets[i*3+1], s.Offsets[i*3+2]},
		Orientation:      mgl32.Quat{W: o[3], V: mgl32.Vec3{o[0], o[1], o[2]}},
		Stretch:          s.Stretches[i],
		HalfRootAngleSin: s.HalfRootAngleSin[i],
		HalfRootAngleCos: s.HalfRootAngleCos[i],
	}
}

// Validate checks that every buffer matches the instance count.
func (s *InstanceAttributeSet) Validate() bool {
	n := len(s.Stretches)
	return len(s.Offsets) == n*3 &&
		len(s.Orientations) == n*4 &&
		len(s.HalfRootAngleSin) == n &&
		len(s.HalfRootAngleCos) == n
}

type options struct {
	rng     Source
	ground  HeightFunc
	leanMin float32
	leanMax float32
}

type Option func(*options)

// WithRand injects the random source, mainly for deterministic tests.
func WithRand(src Source) Option {
	return func(o *options) { o.rng = src }
}

// WithGround replaces the flat ground with a height function.
func WithGround(fn HeightFunc) Option {
	return func(o *options) { o.ground = fn }
}

// WithLeanRange overrides the [-0.25, 0.25] lean range in radians.
func WithLeanRange(min, max float32) Option {
	return func(o *options) { o.leanMin, o.leanMax = min, max }
}

// Generate builds the attribute buffers for instanceCount blades scattered
// over a square field of side fieldWidth centered on the origin.
func Generate(instanceCount int, fieldWidth float32, opts ...Option) (*InstanceAttributeSet, error) {
	if instanceCount <= 0 {
		return nil, &InvalidConfigurationError{Field: "instanceCount", Value: instanceCount}
	}
	if fieldWidth <= 0 || math.IsNaN(float64(fieldWidth)) {
		return nil, &InvalidConfigurationError{Field: "fieldWidth", Value: fieldWidth}
	}

	o := options{
		rng:     globalSource{},
		ground:  Flat,
		leanMin: defaultLeanMin,
		leanMax: defaultLeanMax,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ground == nil {
		o.ground = Flat
	}
	if o.rng == nil {
		o.rng = globalSource{}
	}

	set := &InstanceAttributeSet{
		Offsets:          make([]float32, 0, instanceCount*3),
		Orientations:     make([]float32, 0, instanceCount*4),
		Stretches:        make([]float32, 0, instanceCount),
		HalfRootAngleSin: make([]float32, 0, instanceCount),
		HalfRootAngleCos: make([]float32, 0, instanceCount),
	}

	rnd := o.rng
	half := fieldWidth / 2
	for i := 0; i < instanceCount; i++ {
		x := rnd.Float32()*fieldWidth - half
		z := rnd.Float32()*fieldWidth - half
		y := o.ground(x, z)
		set.Offsets = append(set.Offsets, x, y, z)

		angle := float32(math.Pi) - rnd.Float32()*float32(2*math.Pi)
		s, c := math.Sincos(float64(angle) * 0.5)
		set.HalfRootAngleSin = append(set.HalfRootAngleSin, float32(s))
		set.HalfRootAngleCos = append(set.HalfRootAngleCos, float32(c))

		q := AxisAngle(axisUp, angle)
		q = Compose(q, AxisAngle(axisPitch, lerp(o.leanMin, o.leanMax, rnd.Float32())))
		q = Compose(q, AxisAngle(axisRoll, lerp(o.leanMin, o.leanMax, rnd.Float32())))
		set.Orientations = append(set.Orientations, q.V[0], q.V[1], q.V[2], q.W)

		// First third grows taller.
		if 3*i < instanceCount {
			set.Stretches = append(set.Stretches, rnd.Float32()*tallStretchMax)
		} else {
			set.Stretches = append(set.Stretches, rnd.Float32()*shortStretchMax)
		}
	}

	return set, nil
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
