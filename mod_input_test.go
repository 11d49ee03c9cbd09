package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelToNDC(t *testing.T) {
	x, y := PixelToNDC(0, 0, 800, 600)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = PixelToNDC(400, 300, 800, 600)
	assert.Zero(t, x)
	assert.Zero(t, y)

	x, y = PixelToNDC(800, 600, 800, 600)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)

	x, y = PixelToNDC(10, 10, 0, 600)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestUpdateKey_Edges(t *testing.T) {
	input := &Input{}

	updateKey(input, KeySpace, true)
	assert.True(t, input.Pressed[KeySpace])
	assert.True(t, input.JustPressed[KeySpace])

	updateKey(input, KeySpace, true)
	assert.True(t, input.Pressed[KeySpace])
	assert.False(t, input.JustPressed[KeySpace], "held keys only fire once")

	updateKey(input, KeySpace, false)
	assert.False(t, input.Pressed[KeySpace])
	assert.True(t, input.JustReleased[KeySpace])

	updateKey(input, KeySpace, false)
	assert.False(t, input.JustReleased[KeySpace])
}

func TestInput_DrainClicks(t *testing.T) {
	input := &Input{Clicks: []Click{{X: 1, Y: 2, Button: MouseButtonLeft}}}
	clicks := input.DrainClicks()
	assert.Len(t, clicks, 1)
	assert.Empty(t, input.Clicks)
	assert.Empty(t, input.DrainClicks())
}

func TestEscapeExitSystem(t *testing.T) {
	app := NewAppBuilder().app
	input := &Input{}
	app.addResources(input)
	app.UseSystem(System(escapeExitSystem).InStage(Update))

	app.Step()
	assert.False(t, app.ExitRequested())

	updateKey(input, KeyEscape, true)
	app.Step()
	assert.True(t, app.ExitRequested())
}
