package labs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepBounce(t *testing.T) {
	y, dir := StepBounce(0, 1, 0.1, 0.75)
	assert.InDelta(t, 0.1, y, 1e-6)
	assert.Equal(t, float32(1), dir)

	y, dir = StepBounce(0.7, 1, 0.1, 0.75)
	assert.Equal(t, float32(0.75), y)
	assert.Equal(t, float32(-1), dir)

	y, dir = StepBounce(-0.7, -1, 0.1, 0.75)
	assert.Equal(t, float32(-0.75), y)
	assert.Equal(t, float32(1), dir)
}

func TestBounceOffset(t *testing.T) {
	assert.Zero(t, BounceOffset(0))
	assert.InDelta(t, bounceAmplitude, BounceOffset(math.Pi/6), 1e-5)
	for e := float32(0); e < 5; e += 0.1 {
		assert.LessOrEqual(t, math.Abs(float64(BounceOffset(e))), bounceAmplitude+1e-6)
	}
}

func TestPointQuads(t *testing.T) {
	quads := pointQuads(600)
	assert.Len(t, quads, 3*6)
	// 20px on a 600px framebuffer
	assert.InDelta(t, 20.0/300, quads[1][0]-quads[0][0], 1e-6)
}

func TestSolidColors(t *testing.T) {
	colors := solidColors(4, whiteRGB)
	assert.Len(t, colors, 4)
	assert.Equal(t, whiteRGB, colors[3])
}
