package labs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	gekko "github.com/gekko3d/gekko-labs"
)

func TestPhongParams_Adjust(t *testing.T) {
	p := DefaultPhongParams()
	p.Adjust(ParamKd, 2)
	assert.InDelta(t, 1.1, p.Kd, 1e-6)

	p.Adjust(ParamKs, -100)
	assert.Zero(t, p.Ks)

	p.Adjust(ParamLe, 100)
	assert.Equal(t, float32(2), p.Le)

	p.Adjust(ParamShininess, 1)
	assert.Equal(t, float32(36), p.Shininess)
	p.Adjust(ParamShininess, -100)
	assert.Equal(t, float32(1), p.Shininess)

	p.Adjust(ParamLa, 1)
	assert.InDelta(t, 0.1, p.La, 1e-6)
}

func TestPhongParam_String(t *testing.T) {
	assert.Equal(t, "kd", ParamKd.String())
	assert.Equal(t, "shininess", ParamShininess.String())
}

func TestSphereLevelDelta(t *testing.T) {
	input := &gekko.Input{}
	assert.Zero(t, sphereLevelDelta(input))

	input.JustPressed[gekko.KeyKPPlus] = true
	assert.Equal(t, 1, sphereLevelDelta(input))

	input.JustPressed[gekko.KeyMinus] = true
	assert.Zero(t, sphereLevelDelta(input))

	input = &gekko.Input{}
	input.JustPressed[gekko.KeyKPMinus] = true
	assert.Equal(t, -1, sphereLevelDelta(input))
}

func TestSphereStartsAsTetrahedron(t *testing.T) {
	assert.Equal(t, gekko.Tetrahedron(), gekko.SubdividedSphere(sphereDefaultLevel))
	assert.Len(t, gekko.SubdividedSphere(sphereDefaultLevel).Indices, 12)
}

func TestPhongUniformsSize(t *testing.T) {
	assert.Equal(t, uint64(176), gekko.UniformSize(phongUniforms{}))
}
