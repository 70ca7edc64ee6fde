package field

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list laid out for direct upload.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint16
}

func (m Mesh) VertexCount() int { return len(m.Positions) }

// plane builds a width x height grid in the XY plane facing +Z, rows ordered
// top to bottom.
func plane(width, height float32, segX, segY int) Mesh {
	gx1, gy1 := segX+1, segY+1
	segW := width / float32(segX)
	segH := height / float32(segY)

	m := Mesh{
		Positions: make([]mgl32.Vec3, 0, gx1*gy1),
		Normals:   make([]mgl32.Vec3, 0, gx1*gy1),
		UVs:       make([]mgl32.Vec2, 0, gx1*gy1),
		Indices:   make([]uint16, 0, segX*segY*6),
	}
	for iy := 0; iy < gy1; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix < gx1; ix++ {
			x := float32(ix)*segW - width/2
			m.Positions = append(m.Positions, mgl32.Vec3{x, -y, 0})
			m.Normals = append(m.Normals, mgl32.Vec3{0, 0, 1})
			m.UVs = append(m.UVs, mgl32.Vec2{float32(ix) / float32(segX), 1 - float32(iy)/float32(segY)})
		}
	}
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint16(ix + gx1*iy)
			b := uint16(ix + gx1*(iy+1))
			c := uint16(ix + 1 + gx1*(iy+1))
			d := uint16(ix + 1 + gx1*iy)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m
}

// BladeJointsFit reports whether a blade with joints segments stays within
// 16-bit indices.
func BladeJointsFit(joints int) bool { return (joints+1)*2 <= 1<<16 }

// GroundSegmentsFit reports whether a segments x segments ground stays within
// 16-bit indices.
func GroundSegmentsFit(segments int) bool { return (segments+1)*(segments+1) <= 1<<16 }

// BladeMesh builds a single blade strip with joints vertical segments. The
// origin sits at the root so instance stretch scales upward.
func BladeMesh(width, height float32, joints int) (Mesh, error) {
	if width <= 0 {
		return Mesh{}, &InvalidConfigurationError{Field: "blade.width", Value: width}
	}
	if height <= 0 {
		return Mesh{}, &InvalidConfigurationError{Field: "blade.height", Value: height}
	}
	if joints <= 0 || !BladeJointsFit(joints) {
		return Mesh{}, &InvalidConfigurationError{Field: "blade.joints", Value: joints}
	}

	m := plane(width, height, 1, joints)
	for i := range m.Positions {
		m.Positions[i][1] += height / 2
	}
	return m, nil
}

// GroundMesh builds a horizontal square of side width centered on the origin,
// displaced by ground and with smooth vertex normals.
func GroundMesh(width float32, segments int, ground HeightFunc) (Mesh, error) {
	if width <= 0 {
		return Mesh{}, &InvalidConfigurationError{Field: "ground.width", Value: width}
	}
	if segments <= 0 || !GroundSegmentsFit(segments) {
		return Mesh{}, &InvalidConfigurationError{Field: "ground.segments", Value: segments}
	}
	if ground == nil {
		ground = Flat
	}

	m := plane(width, width, segments, segments)
	rot := mgl32.QuatRotate(-mgl32.DegToRad(90), axisPitch)
	for i, p := range m.Positions {
		p = rot.Rotate(p)
		p[1] = ground(p[0], p[2])
		m.Positions[i] = p
	}
	computeVertexNormals(&m)
	return m, nil
}

func computeVertexNormals(m *Mesh) {
	acc := make([]mgl32.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.Positions[a], m.Positions[b], m.Positions[c]
		n := pc.Sub(pb).Cross(pa.Sub(pb))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if n.Len() > 0 {
			m.Normals[i] = n.Normalize()
		}
	}
}
