package labs

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// CubesLab draws three wireframe unit cubes with one instanced draw. O and
// P switch between orthographic and perspective projection.
type CubesLab struct {
	SampleCount uint32
}

type cubesUniforms struct {
	MVP [3]mgl32.Mat4
}

type cubesState struct {
	pipeline  *wgpu.RenderPipeline
	vertices  *wgpu.Buffer
	indices   *wgpu.Buffer
	count     uint32
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	targets   *gekko.RenderTargets
	hud       *gekko.Hud

	ortho bool
}

var cubesEye = mgl32.Vec3{0, 0, 5}

// CubeModels places the three cubes: one rotated about x and y, one about
// y only, one axis aligned.
func CubeModels() [3]mgl32.Mat4 {
	return [3]mgl32.Mat4{
		mgl32.Translate3D(2.2, -0.3, -4).
			Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(35))).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))),
		mgl32.Translate3D(0.5, 0, -4).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))),
		mgl32.Translate3D(-1.5, 0, -4),
	}
}

// CubesProjection frames all three cubes. The orthographic box is centred
// on their view-space bounds with a half extent of 3.
func CubesProjection(ortho bool, aspect float32, view mgl32.Mat4) mgl32.Mat4 {
	if !ortho {
		return gekko.PerspectiveDeg(45, aspect, 0.1, 10)
	}
	var corners []mgl32.Vec3
	wire := gekko.UnitCubeWire()
	for _, m := range CubeModels() {
		mv := view.Mul4(m)
		for _, p := range wire.Positions {
			corners = append(corners, mgl32.TransformCoordinate(p, mv))
		}
	}
	_, _, center := gekko.Bounds(corners)
	return gekko.OrthoBox(center, 3, 0.1, 10)
}

func (lab CubesLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w03-cubes", err)
		return
	}
	samples := max(lab.SampleCount, 1)
	pipeline, err := c.pipeline("w03.wgsl", gekko.PipelineSpec{
		VertexLayouts: []wgpu.VertexBufferLayout{gekko.FloatLayout(0, 3)},
		Topology:      wgpu.PrimitiveTopologyLineList,
		CullMode:      wgpu.CullModeNone,
		SampleCount:   samples,
	})
	if err != nil {
		abort(cmd, "w03-cubes", err)
		return
	}
	wire := gekko.UnitCubeWire()
	s := &cubesState{
		pipeline: pipeline,
		count:    uint32(len(wire.Indices)),
		targets:  &gekko.RenderTargets{Label: "w03", Samples: samples},
		hud:      c.hud,
	}
	if s.vertices, err = c.gpu.CreateVertexBuffer("cube corners", wire.Positions); err != nil {
		abort(cmd, "w03-cubes", err)
		return
	}
	if s.indices, err = c.gpu.CreateIndexBuffer("cube edges", wire.Indices); err != nil {
		abort(cmd, "w03-cubes", err)
		return
	}
	if s.uniform, err = c.gpu.CreateUniformBuffer("cube mvps", 3*64); err != nil {
		abort(cmd, "w03-cubes", err)
		return
	}
	if s.bindGroup, err = c.gpu.CreateBindGroup(pipeline, 0, gekko.BufferEntry(0, s.uniform)); err != nil {
		abort(cmd, "w03-cubes", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(cubesUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(cubesRender).
			InStage(gekko.Render),
	)
}

func cubesUpdate(input *gekko.Input, gpu *gekko.GpuState, s *cubesState, cmd *gekko.Commands) {
	if input.JustPressed[gekko.KeyO] {
		s.ortho = true
	}
	if input.JustPressed[gekko.KeyP] {
		s.ortho = false
	}
	projection := "perspective"
	if s.ortho {
		projection = "orthographic"
	}
	s.hud.SetLines(projection + "  [O]rtho [P]erspective")

	if gpu.Height() == 0 {
		return
	}
	view := mgl32.LookAtV(cubesEye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := CubesProjection(s.ortho, float32(gpu.Width())/float32(gpu.Height()), view)
	var u cubesUniforms
	for i, m := range CubeModels() {
		u.MVP[i] = proj.Mul4(view).Mul4(m)
	}
	if err := gpu.WriteUniform(s.uniform, 0, &u); err != nil {
		cmd.Logger().Errorf("w03-cubes: %v", err)
	}
}

func cubesRender(frame *gekko.Frame, gpu *gekko.GpuState, s *cubesState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	if err := s.targets.Ensure(gpu, frame.Width, frame.Height); err != nil {
		cmd.Logger().Errorf("w03-cubes: %v", err)
		return
	}
	pass := beginPass(frame, s.targets.ColorAttachment(frame.View, Cornflower), nil)
	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.bindGroup, nil)
	pass.SetVertexBuffer(0, s.vertices, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(s.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(s.count, 3, 0, 0, 0)
	endPass(pass, cmd)
}
