// Package precip simulates the CPU-side rain and snow point clouds and lays
// out cloud puffs for the weather sections.
package precip

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	spawnExtent = 200.0 // side of the square spawn area
	spawnHeight = 100.0
)

// Source is the random source used for spawning. *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

type globalSource struct{}

func (globalSource) Float32() float32 { return rand.Float32() }

// Kind selects the fall model of a pool.
type Kind int

const (
	Rain Kind = iota
	Snow
)

func (k Kind) String() string {
	if k == Snow {
		return "snow"
	}
	return "rain"
}

// Pool is a fixed-size SoA particle set. Particles never die; they respawn
// at the top of the volume once they reach the ground.
type Pool struct {
	kind  Kind
	pos   []mgl32.Vec3
	speed []float32
	rng   Source

	packed []float32
}

func newPool(kind Kind, count int, rng Source) *Pool {
	if count < 0 {
		count = 0
	}
	if rng == nil {
		rng = globalSource{}
	}
	p := &Pool{
		kind:   kind,
		pos:    make([]mgl32.Vec3, count),
		speed:  make([]float32, count),
		rng:    rng,
		packed: make([]float32, count*3),
	}
	for i := range p.pos {
		p.pos[i] = mgl32.Vec3{p.spread(), rng.Float32() * spawnHeight, p.spread()}
		if kind == Rain {
			p.speed[i] = 50 + rng.Float32()*100
		} else {
			p.speed[i] = 10
		}
	}
	p.pack()
	return p
}

// NewRain creates count fast falling drops.
func NewRain(count int, rng Source) *Pool { return newPool(Rain, count, rng) }

// NewSnow creates count slow drifting flakes.
func NewSnow(count int, rng Source) *Pool { return newPool(Snow, count, rng) }

func (p *Pool) Kind() Kind { return p.kind }

func (p *Pool) Len() int { return len(p.pos) }

func (p *Pool) At(i int) mgl32.Vec3 { return p.pos[i] }

func (p *Pool) spread() float32 {
	return (p.rng.Float32() - 0.5) * spawnExtent
}

// Step integrates one frame. Rain fall speed scales with intensity; snow
// falls at a constant rate and drifts sideways.
func (p *Pool) Step(dt float32, intensity float32) {
	if dt <= 0 {
		return
	}
	switch p.kind {
	case Rain:
		for i := range p.pos {
			p.pos[i][1] -= p.speed[i] * dt * intensity
			if p.pos[i][1] < 0 {
				p.pos[i] = mgl32.Vec3{p.spread(), spawnHeight + p.rng.Float32()*50, p.spread()}
			}
		}
	case Snow:
		for i := range p.pos {
			p.pos[i][1] -= p.speed[i] * dt
			p.pos[i][0] += float32(math.Sin(float64(p.pos[i][1]+float32(i))*0.01)) * dt
			if p.pos[i][1] < 0 {
				p.pos[i][1] = spawnHeight
			}
		}
	}
	p.pack()
}

func (p *Pool) pack() {
	for i, v := range p.pos {
		p.packed[i*3] = v[0]
		p.packed[i*3+1] = v[1]
		p.packed[i*3+2] = v[2]
	}
}

// Positions returns the packed xyz buffer for point rendering. The slice is
// reused between steps.
func (p *Pool) Positions() []float32 { return p.packed }
