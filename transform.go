package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DepthRemap takes GL clip depth [-1,1] to the [0,1] range WebGPU expects.
var DepthRemap = mgl32.Mat4FromRows(
	mgl32.Vec4{1, 0, 0, 0},
	mgl32.Vec4{0, 1, 0, 0},
	mgl32.Vec4{0, 0, 0.5, 0.5},
	mgl32.Vec4{0, 0, 0, 1},
)

// PerspectiveDeg is a depth-remapped perspective projection with fovy in degrees.
func PerspectiveDeg(fovyDeg, aspect, near, far float32) mgl32.Mat4 {
	return DepthRemap.Mul4(mgl32.Perspective(mgl32.DegToRad(fovyDeg), aspect, near, far))
}

// OrthoBox is a depth-remapped orthographic projection of half-extent half
// around center's x and y.
func OrthoBox(center mgl32.Vec3, half, near, far float32) mgl32.Mat4 {
	return DepthRemap.Mul4(mgl32.Ortho(
		center[0]-half, center[0]+half,
		center[1]-half, center[1]+half,
		near, far,
	))
}

// PlanarShadowMatrix projects points onto plane (a,b,c,d), ax+by+cz+d=0,
// along rays from light. light[3] is 1 for a point light, 0 for a
// direction. M = (n.L) I - L n^T.
func PlanarShadowMatrix(plane, light mgl32.Vec4) mgl32.Mat4 {
	dot := plane.Dot(light)
	var m mgl32.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			v := -light[row] * plane[col]
			if row == col {
				v += dot
			}
			m.Set(row, col, v)
		}
	}
	return m
}

// GroundPlane is y = -1.
var GroundPlane = mgl32.Vec4{0, 1, 0, 1}

// EnvironmentDirectionMatrix maps clip-space positions to world-space view
// directions: the inverse view rotation times the inverse projection.
func EnvironmentDirectionMatrix(proj, view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Transpose().Mat4().Mul4(proj.Inv())
}

// LightCircle is a point on the horizontal circle of radius around center,
// raised by height, at angle t.
func LightCircle(center mgl32.Vec3, radius, height, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		center[0] + radius*float32(math.Cos(float64(t))),
		center[1] + height,
		center[2] + radius*float32(math.Sin(float64(t))),
	}
}

// NormalMatrix is the inverse transpose of model's upper 3x3, widened to a
// mat4 for uniform layout.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return model.Mat3().Inv().Transpose().Mat4()
}
