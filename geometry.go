package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const DefaultCircleSegments = 64

// CircleFan emits segments triangles (centre, rim i, rim i+1) with the
// centre vertex in cCenter and both rim vertices in cRim.
func CircleFan(center mgl32.Vec2, radius float32, segments int, cCenter, cRim mgl32.Vec3) ([]mgl32.Vec2, []mgl32.Vec3) {
	if segments <= 0 {
		segments = DefaultCircleSegments
	}
	positions := make([]mgl32.Vec2, 0, 3*segments)
	colors := make([]mgl32.Vec3, 0, 3*segments)
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		p0 := mgl32.Vec2{center[0] + radius*float32(math.Cos(a0)), center[1] + radius*float32(math.Sin(a0))}
		p1 := mgl32.Vec2{center[0] + radius*float32(math.Cos(a1)), center[1] + radius*float32(math.Sin(a1))}
		positions = append(positions, center, p0, p1)
		colors = append(colors, cCenter, cRim, cRim)
	}
	return positions, colors
}

// PointQuad is an axis-aligned square of side size as two triangles.
func PointQuad(center mgl32.Vec2, size float32) []mgl32.Vec2 {
	h := size / 2
	p0 := mgl32.Vec2{center[0] - h, center[1] - h}
	p1 := mgl32.Vec2{center[0] + h, center[1] - h}
	p2 := mgl32.Vec2{center[0] - h, center[1] + h}
	p3 := mgl32.Vec2{center[0] + h, center[1] + h}
	return []mgl32.Vec2{p0, p1, p2, p2, p1, p3}
}

// PointSize converts a size in pixels to clip units for a framebuffer height.
func PointSize(pixels float32, height int) float32 {
	if height <= 0 {
		return 0
	}
	return pixels * 2 / float32(height)
}

// IndexedMesh is positions plus triangle (or line) indices.
type IndexedMesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
}

func Tetrahedron() IndexedMesh {
	sqrt2 := float32(math.Sqrt2)
	sqrt6 := float32(math.Sqrt(6))
	return IndexedMesh{
		Positions: []mgl32.Vec3{
			{0, 0, 1},
			{0, 2 * sqrt2 / 3, -1.0 / 3},
			{-sqrt6 / 3, -sqrt2 / 3, -1.0 / 3},
			{sqrt6 / 3, -sqrt2 / 3, -1.0 / 3},
		},
		Indices: []uint32{
			0, 1, 2,
			0, 3, 1,
			1, 3, 2,
			0, 2, 3,
		},
	}
}

// Subdivide splits every triangle into four, pushing the three edge
// midpoints onto the unit sphere. Midpoints are appended per triangle and
// never shared, so each call adds three vertices per input triangle.
func Subdivide(mesh IndexedMesh) IndexedMesh {
	out := IndexedMesh{
		Positions: append([]mgl32.Vec3(nil), mesh.Positions...),
		Indices:   make([]uint32, 0, 4*len(mesh.Indices)),
	}
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		i0, i1, i2 := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
		a, b, c := mesh.Positions[i0], mesh.Positions[i1], mesh.Positions[i2]

		iAB := uint32(len(out.Positions))
		iBC, iCA := iAB+1, iAB+2
		out.Positions = append(out.Positions,
			a.Add(b).Mul(0.5).Normalize(),
			b.Add(c).Mul(0.5).Normalize(),
			c.Add(a).Mul(0.5).Normalize(),
		)
		out.Indices = append(out.Indices,
			i0, iAB, iCA,
			i1, iBC, iAB,
			i2, iCA, iBC,
			iAB, iBC, iCA,
		)
	}
	return out
}

// SubdividedSphere is the tetrahedron subdivided level times; negative
// levels are treated as zero.
func SubdividedSphere(level int) IndexedMesh {
	mesh := Tetrahedron()
	for i := 0; i < level; i++ {
		mesh = Subdivide(mesh)
	}
	return mesh
}

// UVSphere is a latitude/longitude sphere with a duplicated seam column,
// wound counter-clockwise seen from outside.
func UVSphere(segments, rings int, radius float32) (positions, normals []mgl32.Vec3, indices []uint32) {
	for y := 0; y <= rings; y++ {
		theta := float64(y) / float64(rings) * math.Pi
		ct, st := float32(math.Cos(theta)), float32(math.Sin(theta))
		for x := 0; x <= segments; x++ {
			phi := float64(x) / float64(segments) * 2 * math.Pi
			cp, sp := float32(math.Cos(phi)), float32(math.Sin(phi))
			n := mgl32.Vec3{cp * st, ct, sp * st}
			positions = append(positions, n.Mul(radius))
			normals = append(normals, n)
		}
	}
	stride := uint32(segments + 1)
	for y := uint32(0); y < uint32(rings); y++ {
		for x := uint32(0); x < uint32(segments); x++ {
			i0 := y*stride + x
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1
			indices = append(indices, i0, i1, i2, i1, i3, i2)
		}
	}
	return positions, normals, indices
}

// UnitCubeWire is the unit cube [0,1]^3 as 12 line segments.
func UnitCubeWire() IndexedMesh {
	return IndexedMesh{
		Positions: []mgl32.Vec3{
			{0, 0, 1},
			{0, 1, 1},
			{1, 1, 1},
			{1, 0, 1},
			{0, 0, 0},
			{0, 1, 0},
			{1, 1, 0},
			{1, 0, 0},
		},
		Indices: []uint32{
			0, 1, 1, 2, 2, 3, 3, 0,
			2, 6, 6, 7, 7, 3,
			4, 5, 5, 1, 0, 4,
			5, 6, 4, 7,
		},
	}
}

// QuadMesh is four corners with texture coordinates, drawn as two triangles.
type QuadMesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

// Quad builds a QuadMesh from corners in winding order; nil uvs map the
// corners to (0,0), (1,0), (1,1), (0,1).
func Quad(corners [4]mgl32.Vec3, uvs []mgl32.Vec2) QuadMesh {
	if uvs == nil {
		uvs = []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	}
	return QuadMesh{
		Positions: corners[:],
		UVs:       uvs,
		Indices:   append([]uint32(nil), quadIndices...),
	}
}

// Bounds returns the axis-aligned min, max and centre of points.
func Bounds(points []mgl32.Vec3) (lo, hi, center mgl32.Vec3) {
	if len(points) == 0 {
		return
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	center = lo.Add(hi).Mul(0.5)
	return
}
