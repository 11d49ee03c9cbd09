package labs

import (
	"image"
	"path"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// EnvMapLab draws a cubemap background behind a bump-mapped mirror sphere.
// Space starts or stops the camera orbit.
type EnvMapLab struct{}

// CubeFaceFiles are the six cubemap images in texture layer order.
var CubeFaceFiles = [6]string{
	"textures/cm_left.png",
	"textures/cm_right.png",
	"textures/cm_bottom.png",
	"textures/cm_top.png",
	"textures/cm_back.png",
	"textures/cm_front.png",
}

const (
	envNormalMap   = "textures/normalmap.png"
	envSphereRad   = 1.6
	envOrbitRate   = 0.3
	envBackgroundZ = 0.999
)

var envEye = mgl32.Vec3{0, 1.8, 5.5}

type envUniforms struct {
	MVP   mgl32.Mat4
	Mtex  mgl32.Mat4
	Model mgl32.Mat4
	Eye   mgl32.Vec4
	Flags [4]uint32
}

// envDraw is one draw call with its own uniform block.
type envDraw struct {
	positions *wgpu.Buffer
	normals   *wgpu.Buffer
	indices   *wgpu.Buffer
	count     uint32
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type envState struct {
	pipeline   *wgpu.RenderPipeline
	cube       *gekko.Texture
	normalMap  *gekko.Texture
	sampler    *wgpu.Sampler
	background *envDraw
	sphere     *envDraw
	targets    *gekko.RenderTargets
	hud        *gekko.Hud

	orbiting bool
	angle    float32
}

// BackgroundQuad covers clip space just in front of the far plane.
func BackgroundQuad() (positions, normals []mgl32.Vec3, indices []uint32) {
	positions = []mgl32.Vec3{
		{-1, -1, envBackgroundZ},
		{1, -1, envBackgroundZ},
		{1, 1, envBackgroundZ},
		{-1, 1, envBackgroundZ},
	}
	normals = []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	return positions, normals, []uint32{0, 1, 2, 0, 2, 3}
}

func (EnvMapLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w07-envmap", err)
		return
	}
	s, err := newEnvState(c)
	if err != nil {
		abort(cmd, "w07-envmap", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(envUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(envRender).
			InStage(gekko.Render),
	)
}

func newEnvState(c labContext) (*envState, error) {
	var faces [6]*image.NRGBA
	for i, name := range CubeFaceFiles {
		_, img, err := c.assets.LoadImage(name)
		if err != nil {
			return nil, err
		}
		faces[i] = img
	}
	_, bump, err := c.assets.LoadImage(envNormalMap)
	if err != nil {
		return nil, err
	}

	s := &envState{
		targets: &gekko.RenderTargets{Label: "w07", Depth: true},
		hud:     c.hud,
	}
	if s.cube, err = c.gpu.CreateCubeTexture("environment", faces); err != nil {
		return nil, err
	}
	if s.normalMap, err = c.gpu.CreateTexture2D(path.Base(envNormalMap), gekko.MipChain(bump)); err != nil {
		return nil, err
	}
	if s.sampler, err = c.gpu.CreateSampler(gekko.SamplerSpec{
		Label:     "environment",
		WrapMode:  "repeat",
		MinFilter: "linear",
		MagFilter: "linear",
		MipFilter: "linear",
	}); err != nil {
		return nil, err
	}
	if s.pipeline, err = c.pipeline("w07.wgsl", gekko.PipelineSpec{
		VertexLayouts: []wgpu.VertexBufferLayout{gekko.FloatLayout(0, 3), gekko.FloatLayout(1, 3)},
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeBack,
		DepthTest:     true,
		DepthWrite:    true,
	}); err != nil {
		return nil, err
	}

	bgPos, bgNrm, bgIdx := BackgroundQuad()
	if s.background, err = s.newDraw(c.gpu, "background", bgPos, bgNrm, bgIdx); err != nil {
		return nil, err
	}
	pos, nrm, idx := gekko.UVSphere(48, 32, envSphereRad)
	if s.sphere, err = s.newDraw(c.gpu, "sphere", pos, nrm, idx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *envState) newDraw(gpu *gekko.GpuState, label string, positions, normals []mgl32.Vec3, indices []uint32) (*envDraw, error) {
	d := &envDraw{count: uint32(len(indices))}
	var err error
	if d.positions, err = gpu.CreateVertexBuffer(label+" positions", positions); err != nil {
		return nil, err
	}
	if d.normals, err = gpu.CreateVertexBuffer(label+" normals", normals); err != nil {
		return nil, err
	}
	if d.indices, err = gpu.CreateIndexBuffer(label+" indices", indices); err != nil {
		return nil, err
	}
	if d.uniform, err = gpu.CreateUniformBuffer(label+" uniforms", gekko.UniformSize(envUniforms{})); err != nil {
		return nil, err
	}
	if d.bindGroup, err = gpu.CreateBindGroup(s.pipeline, 0,
		gekko.BufferEntry(0, d.uniform),
		gekko.SamplerEntry(1, s.sampler),
		gekko.TextureEntry(2, s.cube.View),
		gekko.TextureEntry(3, s.normalMap.View),
	); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *envDraw) draw(pass *wgpu.RenderPassEncoder) {
	pass.SetBindGroup(0, d.bindGroup, nil)
	pass.SetVertexBuffer(0, d.positions, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, d.normals, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(d.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(d.count, 1, 0, 0, 0)
}

func envUpdate(t *gekko.Time, input *gekko.Input, gpu *gekko.GpuState, s *envState, cmd *gekko.Commands) {
	if input.JustPressed[gekko.KeySpace] {
		s.orbiting = !s.orbiting
	}
	if s.orbiting {
		s.angle += envOrbitRate * t.DtSeconds()
		s.hud.SetLines("orbiting  Space stops")
	} else {
		s.hud.SetLines("Space orbits the camera")
	}
	if gpu.Height() == 0 {
		return
	}
	eye := mgl32.HomogRotate3DY(s.angle).Mul4x1(envEye.Vec4(1)).Vec3()
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := gekko.PerspectiveDeg(90, float32(gpu.Width())/float32(gpu.Height()), 0.1, 200)

	background := envUniforms{
		Model: mgl32.Ident4(),
		Mtex:  gekko.EnvironmentDirectionMatrix(proj, view),
		Eye:   eye.Vec4(1),
		Flags: [4]uint32{1, 0, 0, 0},
	}
	model := mgl32.Ident4()
	sphere := envUniforms{
		MVP:   proj.Mul4(view).Mul4(model),
		Model: model,
		Eye:   eye.Vec4(1),
		Flags: [4]uint32{0, 1, 0, 0},
	}
	if err := gpu.WriteUniform(s.background.uniform, 0, &background); err != nil {
		cmd.Logger().Errorf("w07-envmap: %v", err)
	}
	if err := gpu.WriteUniform(s.sphere.uniform, 0, &sphere); err != nil {
		cmd.Logger().Errorf("w07-envmap: %v", err)
	}
}

func envRender(frame *gekko.Frame, gpu *gekko.GpuState, s *envState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	if err := s.targets.Ensure(gpu, frame.Width, frame.Height); err != nil {
		cmd.Logger().Errorf("w07-envmap: %v", err)
		return
	}
	pass := beginPass(frame, s.targets.ColorAttachment(frame.View, Cornflower), s.targets.DepthAttachment())
	pass.SetPipeline(s.pipeline)
	s.sphere.draw(pass)
	s.background.draw(pass)
	endPass(pass, cmd)
}
