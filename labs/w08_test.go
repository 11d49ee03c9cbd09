package labs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShadowCasters(t *testing.T) {
	q := ShadowCasters()
	require.Len(t, q.Positions, 8)
	require.Len(t, q.UVs, 8)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, q.Indices)
}

func TestShadowProjection(t *testing.T) {
	light := mgl32.Vec3{0, 2, -2}
	const lift = 0.001
	m := ShadowProjection(light, lift)

	p := m.Mul4x1(mgl32.Vec4{0.5, -0.5, -1.5, 1})
	shadow := p.Vec3().Mul(1 / p[3])
	assert.InDelta(t, 0.6, shadow[0], 1e-4)
	assert.InDelta(t, -1+lift, shadow[1], 1e-5)
	assert.InDelta(t, -1.8, shadow[2], 1e-4)

	for _, c := range ShadowCasters().Positions {
		p := m.Mul4x1(c.Vec4(1))
		assert.InDelta(t, -1+lift, p[1]/p[3], 1e-5)
	}
}

func TestShadowGround(t *testing.T) {
	for _, p := range ShadowGround().Positions {
		assert.Equal(t, float32(-1), p[1])
	}
}
