package labs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLightViewProjection_CentersTeapot(t *testing.T) {
	vp := LightViewProjection(mgl32.Vec3{0, 2, -1})
	clip := vp.Mul4x1(teapotCenter.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip[3])
	assert.InDelta(t, 0, ndc[0], 1e-5)
	assert.InDelta(t, 0, ndc[1], 1e-5)
	assert.Greater(t, ndc[2], float32(0))
	assert.Less(t, ndc[2], float32(1))
}

func TestTeapotModel(t *testing.T) {
	assert.Equal(t, teapotCenter, TeapotModel(0).Col(3).Vec3())
	assert.InDelta(t, teapotCenter[1]+0.5, TeapotModel(0.5).Col(3)[1], 1e-6)
}

func TestOnOff(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}
