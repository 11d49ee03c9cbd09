package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outwardFaces(t *testing.T, positions []mgl32.Vec3, indices []uint32) {
	t.Helper()
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := positions[indices[i]], positions[indices[i+1]], positions[indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-9 {
			// pole triangles of a UV sphere collapse to a line
			continue
		}
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		require.Greater(t, n.Dot(centroid), float32(0), "triangle %d faces inward", i/3)
	}
}

func TestSubdividedSphere_Counts(t *testing.T) {
	for level := 0; level <= 4; level++ {
		mesh := SubdividedSphere(level)
		pow := 1
		for i := 0; i < level; i++ {
			pow *= 4
		}
		assert.Len(t, mesh.Positions, 4*pow, "level %d", level)
		assert.Len(t, mesh.Indices, 12*pow, "level %d", level)
		for _, p := range mesh.Positions {
			assert.InDelta(t, 1, p.Len(), 1e-5)
		}
		outwardFaces(t, mesh.Positions, mesh.Indices)
	}
}

func TestSubdividedSphere_NegativeLevel(t *testing.T) {
	assert.Equal(t, Tetrahedron(), SubdividedSphere(-2))
}

func TestCircleFan(t *testing.T) {
	center := mgl32.Vec2{0.25, -0.5}
	red, blue := mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}
	pos, col := CircleFan(center, 0.5, 8, red, blue)
	require.Len(t, pos, 24)
	require.Len(t, col, 24)
	for i := 0; i < len(pos); i += 3 {
		assert.Equal(t, center, pos[i])
		assert.Equal(t, red, col[i])
		assert.Equal(t, blue, col[i+1])
		assert.Equal(t, blue, col[i+2])
		assert.InDelta(t, 0.5, pos[i+1].Sub(center).Len(), 1e-5)
	}

	pos, _ = CircleFan(center, 1, 0, red, blue)
	assert.Len(t, pos, 3*DefaultCircleSegments)
}

func TestPointQuad(t *testing.T) {
	quad := PointQuad(mgl32.Vec2{1, 1}, 0.2)
	require.Len(t, quad, 6)
	for _, p := range quad {
		assert.InDelta(t, 0.1, abs32(p[0]-1), 1e-6)
		assert.InDelta(t, 0.1, abs32(p[1]-1), 1e-6)
	}
	assert.Equal(t, quad[2], quad[3])
	assert.Equal(t, quad[1], quad[4])
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestPointSize(t *testing.T) {
	assert.InDelta(t, 0.05, PointSize(20, 800), 1e-6)
	assert.Zero(t, PointSize(20, 0))
}

func TestUVSphere(t *testing.T) {
	positions, normals, indices := UVSphere(16, 8, 2)
	assert.Len(t, positions, 17*9)
	assert.Len(t, normals, 17*9)
	assert.Len(t, indices, 6*16*8)
	for i, p := range positions {
		assert.InDelta(t, 2, p.Len(), 1e-5)
		assert.InDelta(t, 1, normals[i].Len(), 1e-5)
	}
	outwardFaces(t, positions, indices)
}

func TestUnitCubeWire(t *testing.T) {
	cube := UnitCubeWire()
	require.Len(t, cube.Positions, 8)
	require.Len(t, cube.Indices, 24)

	edges := map[[2]uint32]bool{}
	for i := 0; i < len(cube.Indices); i += 2 {
		a, b := cube.Indices[i], cube.Indices[i+1]
		if a > b {
			a, b = b, a
		}
		// every segment is one unit along a single axis
		assert.InDelta(t, 1, cube.Positions[a].Sub(cube.Positions[b]).Len(), 1e-6)
		edges[[2]uint32{a, b}] = true
	}
	assert.Len(t, edges, 12)
}

func TestQuad_DefaultUVs(t *testing.T) {
	q := Quad([4]mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}, {1, 1, 0}, {-1, 1, 0}}, nil)
	assert.Equal(t, []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, q.UVs)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, q.Indices)

	q.Indices[0] = 9
	assert.Equal(t, uint32(0), quadIndices[0])
}

func TestBounds(t *testing.T) {
	lo, hi, c := Bounds([]mgl32.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})
	assert.Equal(t, mgl32.Vec3{-1, -2, 0}, lo)
	assert.Equal(t, mgl32.Vec3{1, 4, 5}, hi)
	assert.Equal(t, mgl32.Vec3{0, 1, 2.5}, c)

	lo, hi, c = Bounds(nil)
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
	assert.Equal(t, mgl32.Vec3{}, c)
}
