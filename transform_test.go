package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestPlanarShadowMatrix_PointLight(t *testing.T) {
	m := PlanarShadowMatrix(GroundPlane, mgl32.Vec4{0, 2, 0, 1})
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	// ray from (0,2,0) through (1,0,0) meets y=-1 at x=1.5
	assertVec3(t, mgl32.Vec3{1.5, -1, 0}, p.Vec3().Mul(1/p[3]))
}

func TestPlanarShadowMatrix_Directional(t *testing.T) {
	m := PlanarShadowMatrix(GroundPlane, mgl32.Vec4{0, 1, 0, 0})
	p := m.Mul4x1(mgl32.Vec4{0.3, 2, -0.7, 1})
	assertVec3(t, mgl32.Vec3{0.3, -1, -0.7}, p.Vec3().Mul(1/p[3]))
}

func TestPerspectiveDeg_DepthRange(t *testing.T) {
	proj := PerspectiveDeg(45, 1, 0.1, 10)
	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}

func TestOrthoBox(t *testing.T) {
	proj := OrthoBox(mgl32.Vec3{1, 2, 0}, 3, 0.1, 10)
	p := proj.Mul4x1(mgl32.Vec4{4, -1, -0.1, 1})
	assertVec3(t, mgl32.Vec3{1, -1, 0}, p.Vec3())
	p = proj.Mul4x1(mgl32.Vec4{1, 2, -10, 1})
	assertVec3(t, mgl32.Vec3{0, 0, 1}, p.Vec3())
}

func TestEnvironmentDirectionMatrix(t *testing.T) {
	proj := PerspectiveDeg(90, 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	dir := EnvironmentDirectionMatrix(proj, view).Mul4x1(mgl32.Vec4{0, 0, 0.999, 1})
	assertVec3(t, mgl32.Vec3{0, 0, -1}, dir.Vec3().Mul(1/dir[3]).Normalize())

	// looking down +X the screen centre maps to +X
	view = mgl32.LookAtV(mgl32.Vec3{5, 1, 0}, mgl32.Vec3{6, 1, 0}, mgl32.Vec3{0, 1, 0})
	dir = EnvironmentDirectionMatrix(proj, view).Mul4x1(mgl32.Vec4{0, 0, 0.999, 1})
	assertVec3(t, mgl32.Vec3{1, 0, 0}, dir.Vec3().Mul(1/dir[3]).Normalize())
}

func TestLightCircle(t *testing.T) {
	c := mgl32.Vec3{0, 2, -2}
	assertVec3(t, mgl32.Vec3{2, 2, -2}, LightCircle(c, 2, 0, 0))
	assertVec3(t, mgl32.Vec3{0, 3, 0}, LightCircle(c, 2, 1, mgl32.DegToRad(90)))
}

func TestNormalMatrix(t *testing.T) {
	model := mgl32.Scale3D(2, 1, 1)
	n := NormalMatrix(model).Mul4x1(mgl32.Vec4{1, 1, 0, 0}).Vec3()
	assertVec3(t, mgl32.Vec3{0.5, 1, 0}, n)
}
