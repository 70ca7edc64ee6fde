package precip

import "github.com/go-gl/mathgl/mgl32"

// Cloud is one volumetric cloud puff.
type Cloud struct {
	Position mgl32.Vec3
	Opacity  float32
	Speed    float32
	Width    float32
	Depth    float32
	Segments int
}

// DefaultCloudRange is the spread of the cloud layer in x, y and z.
var DefaultCloudRange = mgl32.Vec3{500, 100, 500}

// Clouds scatters count puffs over spread, starting 50 units above the ground.
func Clouds(count int, spread mgl32.Vec3, rng Source) []Cloud {
	if rng == nil {
		rng = globalSource{}
	}
	out := make([]Cloud, 0, max(count, 0))
	for i := 0; i < count; i++ {
		out = append(out, Cloud{
			Position: mgl32.Vec3{
				(rng.Float32() - 0.5) * spread[0],
				50 + rng.Float32()*spread[1],
				(rng.Float32() - 0.5) * spread[2],
			},
			Opacity:  0.6 + rng.Float32()*0.3,
			Speed:    0.1 + rng.Float32()*0.2,
			Width:    100 + rng.Float32()*150,
			Depth:    40 + rng.Float32()*60,
			Segments: 30,
		})
	}
	return out
}
