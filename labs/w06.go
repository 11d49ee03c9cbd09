package labs

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// TextureLab stretches a mip-mapped checkerboard over a long ground quad.
// M cycles the address mode, F the min/mag filter, N the mip filter.
type TextureLab struct{}

var (
	WrapModes   = []string{"repeat", "clamp", "mirror"}
	FilterModes = []string{"nearest", "linear"}
	MipModes    = []string{"nearest", "linear"}
)

// SamplerChoice indexes WrapModes, FilterModes and MipModes.
type SamplerChoice struct {
	Wrap, Filter, Mip int
}

// Apply advances the choices for the keys pressed this tick and reports
// whether anything changed.
func (sc *SamplerChoice) Apply(input *gekko.Input) bool {
	changed := false
	if input.JustPressed[gekko.KeyM] {
		sc.Wrap = (sc.Wrap + 1) % len(WrapModes)
		changed = true
	}
	if input.JustPressed[gekko.KeyF] {
		sc.Filter = (sc.Filter + 1) % len(FilterModes)
		changed = true
	}
	if input.JustPressed[gekko.KeyN] {
		sc.Mip = (sc.Mip + 1) % len(MipModes)
		changed = true
	}
	return changed
}

func (sc SamplerChoice) Spec(label string) gekko.SamplerSpec {
	return gekko.SamplerSpec{
		Label:     label,
		WrapMode:  WrapModes[sc.Wrap],
		MinFilter: FilterModes[sc.Filter],
		MagFilter: FilterModes[sc.Filter],
		MipFilter: MipModes[sc.Mip],
	}
}

func (sc SamplerChoice) String() string {
	return fmt.Sprintf("address %s [M]  filter %s [F]  mipmap %s [N]", WrapModes[sc.Wrap], FilterModes[sc.Filter], MipModes[sc.Mip])
}

// TextureGround is the quad from z=-1 to z=-21 at y=-1, tiled 4 x 10.
func TextureGround() gekko.QuadMesh {
	return gekko.Quad(
		[4]mgl32.Vec3{{-4, -1, -1}, {4, -1, -1}, {4, -1, -21}, {-4, -1, -21}},
		[]mgl32.Vec2{{-1.5, 0}, {2.5, 0}, {2.5, 10}, {-1.5, 10}},
	)
}

// quadBuffers is a QuadMesh with a vec3 position and a vec2 uv stream.
type quadBuffers struct {
	positions *wgpu.Buffer
	uvs       *wgpu.Buffer
	indices   *wgpu.Buffer
	count     uint32
}

var quadLayouts = []wgpu.VertexBufferLayout{
	gekko.FloatLayout(0, 3),
	gekko.FloatLayout(1, 2),
}

func uploadQuad(gpu *gekko.GpuState, label string, q gekko.QuadMesh) (*quadBuffers, error) {
	b := &quadBuffers{count: uint32(len(q.Indices))}
	var err error
	if b.positions, err = gpu.CreateVertexBuffer(label+" positions", q.Positions); err != nil {
		return nil, err
	}
	if b.uvs, err = gpu.CreateVertexBuffer(label+" uvs", q.UVs); err != nil {
		return nil, err
	}
	if b.indices, err = gpu.CreateIndexBuffer(label+" indices", q.Indices); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *quadBuffers) draw(pass *wgpu.RenderPassEncoder) {
	pass.SetVertexBuffer(0, b.positions, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, b.uvs, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(b.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(b.count, 1, 0, 0, 0)
}

type textureState struct {
	pipeline  *wgpu.RenderPipeline
	uniform   *wgpu.Buffer
	texture   *gekko.Texture
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup
	ground    *quadBuffers
	hud       *gekko.Hud

	choice SamplerChoice
}

func (TextureLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w06-texture", err)
		return
	}
	pipeline, err := c.pipeline("w06.wgsl", gekko.PipelineSpec{
		VertexLayouts: quadLayouts,
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
	})
	if err != nil {
		abort(cmd, "w06-texture", err)
		return
	}
	checker := gekko.Checkerboard(64, 8)
	levels := gekko.MipChain(checker)
	c.log.Debugf("w06-texture: %d mip levels", len(levels))

	s := &textureState{pipeline: pipeline, hud: c.hud}
	if s.texture, err = c.gpu.CreateTexture2D("checkerboard", levels); err != nil {
		abort(cmd, "w06-texture", err)
		return
	}
	if s.ground, err = uploadQuad(c.gpu, "ground", TextureGround()); err != nil {
		abort(cmd, "w06-texture", err)
		return
	}
	if s.uniform, err = c.gpu.CreateUniformBuffer("ground mvp", 64); err != nil {
		abort(cmd, "w06-texture", err)
		return
	}
	if err = s.rebind(c.gpu); err != nil {
		abort(cmd, "w06-texture", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(textureUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(textureRender).
			InStage(gekko.Render),
	)
}

// rebind recreates the sampler from the current choice and the bind group
// that references it.
func (s *textureState) rebind(gpu *gekko.GpuState) error {
	sampler, err := gpu.CreateSampler(s.choice.Spec("checkerboard"))
	if err != nil {
		return err
	}
	bindGroup, err := gpu.CreateBindGroup(s.pipeline, 0,
		gekko.BufferEntry(0, s.uniform),
		gekko.SamplerEntry(1, sampler),
		gekko.TextureEntry(2, s.texture.View),
	)
	if err != nil {
		sampler.Release()
		return err
	}
	if s.bindGroup != nil {
		s.bindGroup.Release()
		s.sampler.Release()
	}
	s.sampler, s.bindGroup = sampler, bindGroup
	return nil
}

func textureUpdate(input *gekko.Input, gpu *gekko.GpuState, s *textureState, cmd *gekko.Commands) {
	if s.choice.Apply(input) {
		if err := s.rebind(gpu); err != nil {
			cmd.Logger().Errorf("w06-texture: %v", err)
		}
	}
	s.hud.SetLines(s.choice.String())
	if gpu.Height() == 0 {
		return
	}
	mvp := gekko.PerspectiveDeg(90, float32(gpu.Width())/float32(gpu.Height()), 0.1, 100)
	if err := gpu.WriteUniform(s.uniform, 0, mvp); err != nil {
		cmd.Logger().Errorf("w06-texture: %v", err)
	}
}

func textureRender(frame *gekko.Frame, s *textureState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	pass := beginPass(frame, clearAttachment(frame.View, Cornflower), nil)
	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.bindGroup, nil)
	s.ground.draw(pass)
	endPass(pass, cmd)
}
