package labs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	gekko "github.com/gekko3d/gekko-labs"
)

func TestCubeModels(t *testing.T) {
	models := CubeModels()
	assert.Equal(t, mgl32.Vec3{-1.5, 0, -4}, models[2].Col(3).Vec3())
	assert.Equal(t, mgl32.Vec3{0.5, 0, -4}, models[1].Col(3).Vec3())
}

func TestCubesProjection_OrthoFramesAllCubes(t *testing.T) {
	view := mgl32.LookAtV(cubesEye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := CubesProjection(true, 16.0/9, view)
	wire := gekko.UnitCubeWire()
	for _, m := range CubeModels() {
		mvp := proj.Mul4(view).Mul4(m)
		for _, p := range wire.Positions {
			clip := mvp.Mul4x1(p.Vec4(1))
			ndc := clip.Vec3().Mul(1 / clip[3])
			assert.InDelta(t, 0, ndc[0], 1)
			assert.InDelta(t, 0, ndc[1], 1)
			assert.GreaterOrEqual(t, ndc[2], float32(0))
			assert.LessOrEqual(t, ndc[2], float32(1))
		}
	}
}

func TestCubesProjection_Perspective(t *testing.T) {
	view := mgl32.LookAtV(cubesEye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assert.Equal(t, gekko.PerspectiveDeg(45, 2, 0.1, 10), CubesProjection(false, 2, view))
}
