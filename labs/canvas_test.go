package labs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanvas(t *testing.T) {
	cv := NewCanvas()
	assert.Equal(t, ModePoint, cv.Mode)
	assert.Equal(t, 0, cv.DrawColor)
	assert.Equal(t, 7, cv.ClearColor)
	assert.Equal(t, Palette[7], mgl32.Vec3{0.3921, 0.5843, 0.9294})
}

func TestCanvas_ColorBounds(t *testing.T) {
	cv := NewCanvas()
	cv.SetDrawColor(3)
	cv.SetDrawColor(8)
	cv.SetDrawColor(-1)
	assert.Equal(t, 3, cv.DrawColor)
	cv.SetClearColor(0)
	cv.SetClearColor(42)
	assert.Equal(t, 0, cv.ClearColor)
}

func TestCanvas_Points(t *testing.T) {
	cv := NewCanvas()
	cv.SetDrawColor(1)
	cv.Click(mgl32.Vec2{0.5, 0.5})
	cv.Click(mgl32.Vec2{-0.5, 0})

	assert.Equal(t, 2, cv.ShapeCount())
	assert.Zero(t, cv.PendingCount())
	positions, colors := cv.Vertices(0.1)
	assert.Len(t, positions, 12)
	for _, c := range colors {
		assert.Equal(t, Palette[1], c)
	}
}

func TestCanvas_Triangle(t *testing.T) {
	cv := NewCanvas()
	cv.SetMode(ModeTriangle)
	cv.SetDrawColor(1)
	cv.Click(mgl32.Vec2{0, 0})
	cv.SetDrawColor(3)
	cv.Click(mgl32.Vec2{1, 0})

	assert.Zero(t, cv.ShapeCount())
	assert.Equal(t, 2, cv.PendingCount())
	positions, _ := cv.Vertices(0.1)
	assert.Len(t, positions, 12, "pending corners show as points")

	cv.SetDrawColor(4)
	cv.Click(mgl32.Vec2{0, 1})
	assert.Equal(t, 1, cv.ShapeCount())
	assert.Zero(t, cv.PendingCount())

	positions, colors := cv.Vertices(0.1)
	assert.Equal(t, []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}}, positions)
	assert.Equal(t, []mgl32.Vec3{Palette[1], Palette[3], Palette[4]}, colors)
}

func TestCanvas_Circle(t *testing.T) {
	cv := NewCanvas()
	cv.SetMode(ModeCircle)
	cv.SetDrawColor(2)
	cv.Click(mgl32.Vec2{0.1, 0.2})
	assert.Equal(t, 1, cv.PendingCount())

	cv.SetDrawColor(5)
	cv.Click(mgl32.Vec2{0.4, 0.6})
	assert.Equal(t, 1, cv.ShapeCount())
	assert.Zero(t, cv.PendingCount())

	positions, colors := cv.Vertices(0.1)
	require.Len(t, positions, 192)
	assert.Equal(t, mgl32.Vec2{0.1, 0.2}, positions[0])
	assert.Equal(t, Palette[2], colors[0])
	assert.Equal(t, Palette[5], colors[1])
	assert.InDelta(t, 0.5, positions[1].Sub(positions[0]).Len(), 1e-5)
}

func TestCanvas_ModeSwitchKeepsPending(t *testing.T) {
	cv := NewCanvas()
	cv.SetMode(ModeTriangle)
	cv.Click(mgl32.Vec2{0, 0})
	cv.SetMode(ModePoint)
	cv.Click(mgl32.Vec2{1, 1})

	assert.Equal(t, 1, cv.ShapeCount())
	assert.Equal(t, 1, cv.PendingCount())
}

func TestCanvas_ClearAndVersion(t *testing.T) {
	cv := NewCanvas()
	v0 := cv.Version()
	cv.Click(mgl32.Vec2{})
	assert.Greater(t, cv.Version(), v0)

	v1 := cv.Version()
	cv.SetMode(ModeCircle)
	cv.Click(mgl32.Vec2{})
	cv.Clear()
	assert.Greater(t, cv.Version(), v1)
	assert.Zero(t, cv.ShapeCount())
	assert.Zero(t, cv.PendingCount())
	positions, _ := cv.Vertices(0.1)
	assert.Empty(t, positions)
}

func TestDrawMode_String(t *testing.T) {
	assert.NotEqual(t, ModePoint.String(), ModeCircle.String())
}
