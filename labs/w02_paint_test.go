package labs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	gekko "github.com/gekko3d/gekko-labs"
)

func TestApplyPaintInput_Keys(t *testing.T) {
	cv := NewCanvas()
	input := &gekko.Input{Width: 800, Height: 600}

	input.JustPressed[gekko.KeyT] = true
	input.JustPressed[gekko.Key3] = true
	applyPaintInput(cv, input)
	assert.Equal(t, ModeTriangle, cv.Mode)
	assert.Equal(t, 2, cv.DrawColor)

	input = &gekko.Input{Width: 800, Height: 600}
	input.Pressed[gekko.KeyShift] = true
	input.JustPressed[gekko.Key2] = true
	applyPaintInput(cv, input)
	assert.Equal(t, 2, cv.DrawColor, "shift picks the clear colour")
	assert.Equal(t, 1, cv.ClearColor)
}

func TestApplyPaintInput_Clicks(t *testing.T) {
	cv := NewCanvas()
	input := &gekko.Input{
		Width:  800,
		Height: 600,
		Clicks: []gekko.Click{
			{X: 400, Y: 300, Button: gekko.MouseButtonLeft},
			{X: 0, Y: 0, Button: gekko.MouseButtonRight},
			{X: 800, Y: 0, Button: gekko.MouseButtonLeft},
		},
	}
	applyPaintInput(cv, input)

	assert.Equal(t, 2, cv.ShapeCount())
	assert.Empty(t, input.Clicks)
	positions, _ := cv.Vertices(0)
	// zero-sized point quads collapse onto their centres
	assert.Equal(t, mgl32.Vec2{0, 0}, positions[0])
	assert.Equal(t, mgl32.Vec2{1, 1}, positions[6])
}

func TestApplyPaintInput_Backspace(t *testing.T) {
	cv := NewCanvas()
	cv.Click(mgl32.Vec2{})
	input := &gekko.Input{}
	input.JustPressed[gekko.KeyBackspace] = true
	applyPaintInput(cv, input)
	assert.Zero(t, cv.ShapeCount())
}
