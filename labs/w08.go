package labs

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// PlanarShadowLab flattens two red quads onto the ground along rays from a
// circling point light. Space pauses the light.
type PlanarShadowLab struct {
	// height of the shadow polygons above the ground
	Lift float32
}

const (
	groundTextureFile = "xamp23.png"
	// 0.015 rad per frame at 60 Hz
	planarLightRate = 0.9
)

var (
	planarLightCenter = mgl32.Vec3{0, 2, -2}
	planarEye         = mgl32.Vec3{0, 0, 1.5}
	planarTarget      = mgl32.Vec3{0, 0, -3}
)

// ShadowGround is the textured ground shared by the shadow labs.
func ShadowGround() gekko.QuadMesh {
	return gekko.Quad([4]mgl32.Vec3{{-2, -1, -1}, {2, -1, -1}, {2, -1, -5}, {-2, -1, -5}}, nil)
}

// ShadowCasters is a horizontal quad floating over the ground and a
// vertical one standing on it, merged into one mesh.
func ShadowCasters() gekko.QuadMesh {
	return mergeQuads(
		gekko.Quad([4]mgl32.Vec3{{0.25, -0.5, -1.25}, {0.75, -0.5, -1.25}, {0.75, -0.5, -1.75}, {0.25, -0.5, -1.75}}, nil),
		gekko.Quad([4]mgl32.Vec3{{-1, -1, -2.5}, {-1, -1, -3}, {-1, 0, -3}, {-1, 0, -2.5}}, nil),
	)
}

func mergeQuads(quads ...gekko.QuadMesh) gekko.QuadMesh {
	var out gekko.QuadMesh
	for _, q := range quads {
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, q.Positions...)
		out.UVs = append(out.UVs, q.UVs...)
		for _, i := range q.Indices {
			out.Indices = append(out.Indices, base+i)
		}
	}
	return out
}

// ShadowProjection maps world points to their shadow on the ground, raised
// by lift.
func ShadowProjection(light mgl32.Vec3, lift float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, lift, 0).Mul4(gekko.PlanarShadowMatrix(gekko.GroundPlane, light.Vec4(1)))
}

type planarUniforms struct {
	MVP mgl32.Mat4
	Vis mgl32.Vec4
}

// planarDraw pairs a uniform block with the bind group that samples tex.
type planarDraw struct {
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type planarState struct {
	pipeline *wgpu.RenderPipeline
	ground   *quadBuffers
	casters  *quadBuffers
	targets  *gekko.RenderTargets
	hud      *gekko.Hud

	groundDraw *planarDraw
	shadowDraw *planarDraw
	casterDraw *planarDraw

	lift   float32
	theta  float32
	paused bool
}

func (lab PlanarShadowLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w08-planar-shadow", err)
		return
	}
	s, err := newPlanarState(c, lab.Lift)
	if err != nil {
		abort(cmd, "w08-planar-shadow", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(planarUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(planarRender).
			InStage(gekko.Render),
	)
}

func newPlanarState(c labContext, lift float32) (*planarState, error) {
	_, groundImage, err := c.assets.LoadImage(groundTextureFile)
	if err != nil {
		return nil, err
	}
	groundTex, err := c.gpu.CreateTexture2D(groundTextureFile, []*image.NRGBA{groundImage})
	if err != nil {
		return nil, err
	}
	red := gekko.SolidColor(color.NRGBA{R: 255, A: 255})
	redTex, err := c.gpu.CreateTexture2D("red", []*image.NRGBA{red})
	if err != nil {
		return nil, err
	}
	sampler, err := c.gpu.CreateSampler(gekko.SamplerSpec{
		Label:     "planar",
		WrapMode:  "clamp",
		MinFilter: "linear",
		MagFilter: "linear",
	})
	if err != nil {
		return nil, err
	}

	s := &planarState{
		targets: &gekko.RenderTargets{Label: "w08", Depth: true},
		hud:     c.hud,
		lift:    lift,
	}
	if s.pipeline, err = c.pipeline("w08.wgsl", gekko.PipelineSpec{
		VertexLayouts: quadLayouts,
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
		DepthTest:     true,
		DepthWrite:    true,
	}); err != nil {
		return nil, err
	}
	if s.ground, err = uploadQuad(c.gpu, "ground", ShadowGround()); err != nil {
		return nil, err
	}
	if s.casters, err = uploadQuad(c.gpu, "casters", ShadowCasters()); err != nil {
		return nil, err
	}
	newDraw := func(label string, tex *gekko.Texture) (*planarDraw, error) {
		d := &planarDraw{}
		var err error
		if d.uniform, err = c.gpu.CreateUniformBuffer(label, gekko.UniformSize(planarUniforms{})); err != nil {
			return nil, err
		}
		d.bindGroup, err = c.gpu.CreateBindGroup(s.pipeline, 0,
			gekko.BufferEntry(0, d.uniform),
			gekko.SamplerEntry(1, sampler),
			gekko.TextureEntry(2, tex.View),
		)
		return d, err
	}
	if s.groundDraw, err = newDraw("ground", groundTex); err != nil {
		return nil, err
	}
	if s.shadowDraw, err = newDraw("shadows", redTex); err != nil {
		return nil, err
	}
	if s.casterDraw, err = newDraw("casters", redTex); err != nil {
		return nil, err
	}
	return s, nil
}

func planarUpdate(t *gekko.Time, input *gekko.Input, gpu *gekko.GpuState, s *planarState, cmd *gekko.Commands) {
	if input.JustPressed[gekko.KeySpace] {
		s.paused = !s.paused
	}
	if !s.paused {
		s.theta += planarLightRate * t.DtSeconds()
	}
	light := gekko.LightCircle(planarLightCenter, 2, 0, s.theta)
	s.hud.SetLines(
		fmt.Sprintf("light (%.2f, %.2f, %.2f)", light[0], light[1], light[2]),
		"Space pauses the light",
	)
	if gpu.Height() == 0 {
		return
	}
	view := mgl32.LookAtV(planarEye, planarTarget, mgl32.Vec3{0, 1, 0})
	proj := gekko.PerspectiveDeg(50, float32(gpu.Width())/float32(gpu.Height()), 0.1, 100)
	vp := proj.Mul4(view)

	writes := []struct {
		draw *planarDraw
		u    planarUniforms
	}{
		{s.groundDraw, planarUniforms{MVP: vp, Vis: mgl32.Vec4{1}}},
		{s.shadowDraw, planarUniforms{MVP: vp.Mul4(ShadowProjection(light, s.lift))}},
		{s.casterDraw, planarUniforms{MVP: vp, Vis: mgl32.Vec4{1}}},
	}
	for _, w := range writes {
		if err := gpu.WriteUniform(w.draw.uniform, 0, &w.u); err != nil {
			cmd.Logger().Errorf("w08-planar-shadow: %v", err)
		}
	}
}

func planarRender(frame *gekko.Frame, gpu *gekko.GpuState, s *planarState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	if err := s.targets.Ensure(gpu, frame.Width, frame.Height); err != nil {
		cmd.Logger().Errorf("w08-planar-shadow: %v", err)
		return
	}
	pass := beginPass(frame, s.targets.ColorAttachment(frame.View, White), s.targets.DepthAttachment())
	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.groundDraw.bindGroup, nil)
	s.ground.draw(pass)
	pass.SetBindGroup(0, s.shadowDraw.bindGroup, nil)
	s.casters.draw(pass)
	pass.SetBindGroup(0, s.casterDraw.bindGroup, nil)
	s.casters.draw(pass)
	endPass(pass, cmd)
}
