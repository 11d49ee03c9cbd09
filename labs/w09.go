package labs

import (
	"fmt"
	"image"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// ShadowMapLab renders a teapot's depth from a circling light into an
// offscreen map, then shades the ground against it. B toggles the teapot
// bounce, L the light motion.
type ShadowMapLab struct {
	MapSize uint32
}

const (
	teapotFile  = "teapot.obj"
	teapotScale = 0.25
	// 0.02 rad per frame at 60 Hz
	shadowMapRate   = 1.2
	teapotBounce    = 0.5
	shadowMapFormat = wgpu.TextureFormatRGBA16Float
)

var (
	teapotCenter = mgl32.Vec3{0, -0.5, -3}
	shadowEye    = mgl32.Vec3{0, 1, 3}
	shadowTarget = mgl32.Vec3{0, -0.5, -3}
)

// LightViewProjection looks from light at the teapot's rest position with a
// square 60 degree frustum.
func LightViewProjection(light mgl32.Vec3) mgl32.Mat4 {
	view := mgl32.LookAtV(light, teapotCenter, mgl32.Vec3{0, 1, 0})
	return gekko.PerspectiveDeg(60, 1, 0.5, 20).Mul4(view)
}

// TeapotModel places the teapot at its rest position raised by bounce.
func TeapotModel(bounce float32) mgl32.Mat4 {
	return mgl32.Translate3D(teapotCenter[0], teapotCenter[1]+bounce, teapotCenter[2])
}

type shadowPassUniforms struct {
	LightMVP mgl32.Mat4
}

type shadowGroundUniforms struct {
	MVP     mgl32.Mat4
	LightVP mgl32.Mat4
}

type shadowTeapotUniforms struct {
	MVP      mgl32.Mat4
	Model    mgl32.Mat4
	LightPos mgl32.Vec4
	Eye      mgl32.Vec4
}

type shadowMapState struct {
	shadowPipeline *wgpu.RenderPipeline
	groundPipeline *wgpu.RenderPipeline
	teapotPipeline *wgpu.RenderPipeline

	shadowMap   *gekko.Texture
	shadowDepth *gekko.Texture

	shadowUniform *wgpu.Buffer
	groundUniform *wgpu.Buffer
	teapotUniform *wgpu.Buffer
	shadowBind    *wgpu.BindGroup
	groundBind    *wgpu.BindGroup
	teapotBind    *wgpu.BindGroup

	ground  *quadBuffers
	teapot  *meshBuffers
	targets *gekko.RenderTargets
	hud     *gekko.Hud

	bouncing    bool
	lightMoving bool
	bounceT     float32
	lightT      float32
}

func (lab ShadowMapLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w09-shadow-map", err)
		return
	}
	size := lab.MapSize
	if size == 0 {
		size = gekko.DefaultConfig().Render.ShadowMapSize
	}
	s, err := newShadowMapState(c, size)
	if err != nil {
		abort(cmd, "w09-shadow-map", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(shadowMapUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(shadowMapRender).
			InStage(gekko.Render),
	)
}

func newShadowMapState(c labContext, size uint32) (*shadowMapState, error) {
	_, teapot, err := c.assets.LoadMesh(teapotFile, gekko.OBJOptions{Scale: teapotScale})
	if err != nil {
		return nil, err
	}
	_, groundImage, err := c.assets.LoadImage(groundTextureFile)
	if err != nil {
		return nil, err
	}
	c.log.Infof("w09-shadow-map: %s %d triangles, %dx%d map", teapotFile, teapot.TriangleCount(), size, size)

	s := &shadowMapState{
		targets:     &gekko.RenderTargets{Label: "w09", Depth: true},
		hud:         c.hud,
		bouncing:    true,
		lightMoving: true,
	}
	if s.shadowPipeline, err = c.pipeline("w09_shadow.wgsl", gekko.PipelineSpec{
		VertexLayouts: meshLayouts[:1],
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
		TargetFormat:  shadowMapFormat,
		DepthTest:     true,
		DepthWrite:    true,
	}); err != nil {
		return nil, err
	}
	if s.groundPipeline, err = c.pipeline("w09_ground.wgsl", gekko.PipelineSpec{
		VertexLayouts: quadLayouts,
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
		DepthTest:     true,
		DepthWrite:    true,
	}); err != nil {
		return nil, err
	}
	if s.teapotPipeline, err = c.pipeline("w09_teapot.wgsl", gekko.PipelineSpec{
		VertexLayouts: meshLayouts,
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
		DepthTest:     true,
		DepthWrite:    true,
	}); err != nil {
		return nil, err
	}

	if s.shadowMap, err = c.gpu.CreateRenderTexture("shadow map", size, size, shadowMapFormat); err != nil {
		return nil, err
	}
	if s.shadowDepth, err = c.gpu.CreateDepthTexture("shadow map depth", size, size, 1); err != nil {
		return nil, err
	}
	groundTex, err := c.gpu.CreateTexture2D(groundTextureFile, []*image.NRGBA{groundImage})
	if err != nil {
		return nil, err
	}
	groundSampler, err := c.gpu.CreateSampler(gekko.SamplerSpec{Label: "ground", WrapMode: "clamp"})
	if err != nil {
		return nil, err
	}
	shadowSampler, err := c.gpu.CreateSampler(gekko.SamplerSpec{
		Label:     "shadow map",
		WrapMode:  "clamp",
		MinFilter: "nearest",
		MagFilter: "nearest",
	})
	if err != nil {
		return nil, err
	}

	if s.ground, err = uploadQuad(c.gpu, "ground", ShadowGround()); err != nil {
		return nil, err
	}
	if s.teapot, err = uploadMesh(c.gpu, "teapot", teapot); err != nil {
		return nil, err
	}

	if s.shadowUniform, err = c.gpu.CreateUniformBuffer("shadow pass", gekko.UniformSize(shadowPassUniforms{})); err != nil {
		return nil, err
	}
	if s.groundUniform, err = c.gpu.CreateUniformBuffer("ground", gekko.UniformSize(shadowGroundUniforms{})); err != nil {
		return nil, err
	}
	if s.teapotUniform, err = c.gpu.CreateUniformBuffer("teapot", gekko.UniformSize(shadowTeapotUniforms{})); err != nil {
		return nil, err
	}
	if s.shadowBind, err = c.gpu.CreateBindGroup(s.shadowPipeline, 0, gekko.BufferEntry(0, s.shadowUniform)); err != nil {
		return nil, err
	}
	if s.groundBind, err = c.gpu.CreateBindGroup(s.groundPipeline, 0,
		gekko.BufferEntry(0, s.groundUniform),
		gekko.SamplerEntry(1, groundSampler),
		gekko.TextureEntry(2, groundTex.View),
		gekko.TextureEntry(3, s.shadowMap.View),
		gekko.SamplerEntry(4, shadowSampler),
	); err != nil {
		return nil, err
	}
	if s.teapotBind, err = c.gpu.CreateBindGroup(s.teapotPipeline, 0, gekko.BufferEntry(0, s.teapotUniform)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *shadowMapState) lightPosition() mgl32.Vec3 {
	return gekko.LightCircle(teapotCenter, 3, 3, s.lightT)
}

func (s *shadowMapState) bounce() float32 {
	return teapotBounce * float32(math.Sin(float64(s.bounceT)))
}

func shadowMapUpdate(t *gekko.Time, input *gekko.Input, gpu *gekko.GpuState, s *shadowMapState, cmd *gekko.Commands) {
	if input.JustPressed[gekko.KeyB] {
		s.bouncing = !s.bouncing
	}
	if input.JustPressed[gekko.KeyL] {
		s.lightMoving = !s.lightMoving
	}
	dt := t.DtSeconds()
	if s.bouncing {
		s.bounceT += shadowMapRate * dt
	}
	if s.lightMoving {
		s.lightT += shadowMapRate * dt
	}
	s.hud.SetLines(
		fmt.Sprintf("bounce %s [B]  light %s [L]", onOff(s.bouncing), onOff(s.lightMoving)),
		fmt.Sprintf("shadow map %dx%d", s.shadowMap.Width, s.shadowMap.Height),
	)
	if gpu.Height() == 0 {
		return
	}

	light := s.lightPosition()
	lightVP := LightViewProjection(light)
	model := TeapotModel(s.bounce())
	view := mgl32.LookAtV(shadowEye, shadowTarget, mgl32.Vec3{0, 1, 0})
	vp := gekko.PerspectiveDeg(50, float32(gpu.Width())/float32(gpu.Height()), 0.1, 100).Mul4(view)

	shadow := shadowPassUniforms{LightMVP: lightVP.Mul4(model)}
	ground := shadowGroundUniforms{MVP: vp, LightVP: lightVP}
	teapot := shadowTeapotUniforms{
		MVP:      vp.Mul4(model),
		Model:    model,
		LightPos: light.Vec4(1),
		Eye:      shadowEye.Vec4(1),
	}
	for _, w := range []struct {
		buf  *wgpu.Buffer
		data any
	}{
		{s.shadowUniform, &shadow},
		{s.groundUniform, &ground},
		{s.teapotUniform, &teapot},
	} {
		if err := gpu.WriteUniform(w.buf, 0, w.data); err != nil {
			cmd.Logger().Errorf("w09-shadow-map: %v", err)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func shadowMapRender(frame *gekko.Frame, gpu *gekko.GpuState, s *shadowMapState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	if err := s.targets.Ensure(gpu, frame.Width, frame.Height); err != nil {
		cmd.Logger().Errorf("w09-shadow-map: %v", err)
		return
	}

	// depth as seen from the light; white means unoccluded
	pass := beginPass(frame, clearAttachment(s.shadowMap.View, White), gekko.DepthAttachmentFor(s.shadowDepth.View))
	pass.SetPipeline(s.shadowPipeline)
	pass.SetBindGroup(0, s.shadowBind, nil)
	s.teapot.draw(pass, 1)
	endPass(pass, cmd)

	pass = beginPass(frame, s.targets.ColorAttachment(frame.View, White), s.targets.DepthAttachment())
	pass.SetPipeline(s.groundPipeline)
	pass.SetBindGroup(0, s.groundBind, nil)
	s.ground.draw(pass)
	pass.SetPipeline(s.teapotPipeline)
	pass.SetBindGroup(0, s.teapotBind, nil)
	s.teapot.draw(pass, 3)
	endPass(pass, cmd)
}
