package labs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	gekko "github.com/gekko3d/gekko-labs"
)

func TestSamplerChoice_Apply(t *testing.T) {
	var sc SamplerChoice
	assert.False(t, sc.Apply(&gekko.Input{}))

	press := func(key int) *gekko.Input {
		input := &gekko.Input{}
		input.JustPressed[key] = true
		return input
	}

	assert.True(t, sc.Apply(press(gekko.KeyM)))
	assert.Equal(t, "clamp", sc.Spec("x").WrapMode)
	sc.Apply(press(gekko.KeyM))
	sc.Apply(press(gekko.KeyM))
	assert.Equal(t, "repeat", sc.Spec("x").WrapMode, "address modes wrap around")

	sc.Apply(press(gekko.KeyF))
	sc.Apply(press(gekko.KeyN))
	spec := sc.Spec("ground")
	assert.Equal(t, "ground", spec.Label)
	assert.Equal(t, "linear", spec.MinFilter)
	assert.Equal(t, "linear", spec.MagFilter)
	assert.Equal(t, "linear", spec.MipFilter)
	assert.Contains(t, sc.String(), "filter linear")
}

func TestTextureGround(t *testing.T) {
	q := TextureGround()
	for _, p := range q.Positions {
		assert.Equal(t, float32(-1), p[1])
	}
	assert.Equal(t, float32(4), q.UVs[1][0]-q.UVs[0][0])
	assert.Equal(t, float32(10), q.UVs[2][1]-q.UVs[1][1])
}
