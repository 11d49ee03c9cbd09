package labs

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// MeshLab renders an OBJ file under a directional light. Left and Right
// turn the model.
type MeshLab struct {
	File string
}

const (
	meshYawRate   = 1.5
	meshShininess = 48
)

var (
	meshEye      = mgl32.Vec3{0, 1.5, 4}
	meshTarget   = mgl32.Vec3{0, 1, 0}
	meshLightDir = mgl32.Vec3{0, -1, 0.5}
)

// meshBuffers holds a MeshData uploaded as three vec4 vertex streams.
type meshBuffers struct {
	positions *wgpu.Buffer
	normals   *wgpu.Buffer
	colors    *wgpu.Buffer
	indices   *wgpu.Buffer
	count     uint32
}

var meshLayouts = []wgpu.VertexBufferLayout{
	gekko.FloatLayout(0, 4),
	gekko.FloatLayout(1, 4),
	gekko.FloatLayout(2, 4),
}

func uploadMesh(gpu *gekko.GpuState, label string, mesh *gekko.MeshData) (*meshBuffers, error) {
	b := &meshBuffers{count: uint32(len(mesh.Indices))}
	var err error
	if b.positions, err = gpu.CreateVertexBuffer(label+" positions", mesh.Positions); err != nil {
		return nil, err
	}
	if b.normals, err = gpu.CreateVertexBuffer(label+" normals", mesh.Normals); err != nil {
		return nil, err
	}
	if b.colors, err = gpu.CreateVertexBuffer(label+" colors", mesh.Colors); err != nil {
		return nil, err
	}
	if b.indices, err = gpu.CreateIndexBuffer(label+" indices", mesh.Indices); err != nil {
		return nil, err
	}
	return b, nil
}

// draw binds the streams in slots 0..2; streams beyond the pipeline's
// layouts are not bound.
func (b *meshBuffers) draw(pass *wgpu.RenderPassEncoder, streams int) {
	for i, buf := range []*wgpu.Buffer{b.positions, b.normals, b.colors}[:streams] {
		pass.SetVertexBuffer(uint32(i), buf, 0, wgpu.WholeSize)
	}
	pass.SetIndexBuffer(b.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(b.count, 1, 0, 0, 0)
}

type meshUniforms struct {
	MVP   mgl32.Mat4
	Model mgl32.Mat4
	Eye   mgl32.Vec4
	Light mgl32.Vec4
}

type meshState struct {
	pipeline  *wgpu.RenderPipeline
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	mesh      *meshBuffers
	targets   *gekko.RenderTargets
	hud       *gekko.Hud

	file      string
	triangles int
	yaw       float32
}

func (lab MeshLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w05-mesh", err)
		return
	}
	_, data, err := c.assets.LoadMesh(lab.File, gekko.OBJOptions{})
	if err != nil {
		abort(cmd, "w05-mesh", err)
		return
	}
	c.log.Infof("w05-mesh: %s, %d triangles", lab.File, data.TriangleCount())

	pipeline, err := c.pipeline("w05.wgsl", gekko.PipelineSpec{
		VertexLayouts: meshLayouts,
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
		DepthTest:     true,
		DepthWrite:    true,
	})
	if err != nil {
		abort(cmd, "w05-mesh", err)
		return
	}
	s := &meshState{
		pipeline:  pipeline,
		targets:   &gekko.RenderTargets{Label: "w05", Depth: true},
		hud:       c.hud,
		file:      lab.File,
		triangles: data.TriangleCount(),
	}
	if s.mesh, err = uploadMesh(c.gpu, lab.File, data); err != nil {
		abort(cmd, "w05-mesh", err)
		return
	}
	if s.uniform, err = c.gpu.CreateUniformBuffer("mesh", gekko.UniformSize(meshUniforms{})); err != nil {
		abort(cmd, "w05-mesh", err)
		return
	}
	if s.bindGroup, err = c.gpu.CreateBindGroup(pipeline, 0, gekko.BufferEntry(0, s.uniform)); err != nil {
		abort(cmd, "w05-mesh", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(meshUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(meshRender).
			InStage(gekko.Render),
	)
}

func meshUpdate(t *gekko.Time, input *gekko.Input, gpu *gekko.GpuState, s *meshState, cmd *gekko.Commands) {
	dt := t.DtSeconds()
	if input.Pressed[gekko.KeyLeft] {
		s.yaw -= meshYawRate * dt
	}
	if input.Pressed[gekko.KeyRight] {
		s.yaw += meshYawRate * dt
	}
	s.hud.SetLines(
		fmt.Sprintf("%s  %d triangles", s.file, s.triangles),
		fmt.Sprintf("yaw %.0f deg  Left/Right", mgl32.RadToDeg(s.yaw)),
	)
	if gpu.Height() == 0 {
		return
	}
	model := mgl32.HomogRotate3DY(s.yaw)
	view := mgl32.LookAtV(meshEye, meshTarget, mgl32.Vec3{0, 1, 0})
	proj := gekko.PerspectiveDeg(45, float32(gpu.Width())/float32(gpu.Height()), 0.1, 100)
	u := meshUniforms{
		MVP:   proj.Mul4(view).Mul4(model),
		Model: model,
		Eye:   meshEye.Vec4(1),
		Light: meshLightDir.Normalize().Vec4(meshShininess),
	}
	if err := gpu.WriteUniform(s.uniform, 0, &u); err != nil {
		cmd.Logger().Errorf("w05-mesh: %v", err)
	}
}

func meshRender(frame *gekko.Frame, gpu *gekko.GpuState, s *meshState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	if err := s.targets.Ensure(gpu, frame.Width, frame.Height); err != nil {
		cmd.Logger().Errorf("w05-mesh: %v", err)
		return
	}
	pass := beginPass(frame, s.targets.ColorAttachment(frame.View, Cornflower), s.targets.DepthAttachment())
	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.bindGroup, nil)
	s.mesh.draw(pass, 3)
	endPass(pass, cmd)
}
