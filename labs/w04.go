package labs

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// SphereLab shades a subdivided tetrahedron with Phong lighting.
//
//	+/-        subdivision level
//	Space      toggle camera orbit
//	K L J E A  select kd, ks, shininess, Le, La; Up/Down adjust
type SphereLab struct {
	SampleCount uint32
}

const (
	sphereMaxLevel     = 8
	sphereDefaultLevel = 0
	sphereOrbitRadius  = 3
	// 0.01 rad per frame at 60 Hz
	sphereOrbitRate = 0.6
)

type PhongParam int

const (
	ParamKd PhongParam = iota
	ParamKs
	ParamShininess
	ParamLe
	ParamLa
)

var phongParamNames = [...]string{"kd", "ks", "shininess", "Le", "La"}

func (p PhongParam) String() string { return phongParamNames[p] }

// PhongParams are the light and material scales the shader multiplies
// into white colours.
type PhongParams struct {
	Kd, Ks    float32
	Shininess float32
	Le, La    float32
}

func DefaultPhongParams() PhongParams {
	return PhongParams{Kd: 1, Ks: 0.3, Shininess: 32, Le: 1, La: 0.05}
}

// Adjust moves one parameter by steps increments. Scales stay in [0, 2],
// shininess in [1, 256].
func (p *PhongParams) Adjust(param PhongParam, steps float32) {
	clamp := func(v *float32, step, lo, hi float32) {
		*v = mgl32.Clamp(*v+steps*step, lo, hi)
	}
	switch param {
	case ParamKd:
		clamp(&p.Kd, 0.05, 0, 2)
	case ParamKs:
		clamp(&p.Ks, 0.05, 0, 2)
	case ParamShininess:
		clamp(&p.Shininess, 4, 1, 256)
	case ParamLe:
		clamp(&p.Le, 0.05, 0, 2)
	case ParamLa:
		clamp(&p.La, 0.05, 0, 2)
	}
}

type phongUniforms struct {
	MVP      mgl32.Mat4
	Eye      mgl32.Vec4
	LightDir mgl32.Vec4
	Kd       mgl32.Vec4
	Ks       mgl32.Vec4
	Le       mgl32.Vec4
	La       mgl32.Vec4
	Params   mgl32.Vec4
}

func (p PhongParams) uniforms(mvp mgl32.Mat4, eye, lightDir mgl32.Vec3) phongUniforms {
	return phongUniforms{
		MVP:      mvp,
		Eye:      eye.Vec4(1),
		LightDir: lightDir.Vec4(0),
		Kd:       mgl32.Vec4{1, 1, 1, p.Kd},
		Ks:       mgl32.Vec4{1, 1, 1, p.Ks},
		Le:       mgl32.Vec4{1, 1, 1, p.Le},
		La:       mgl32.Vec4{1, 1, 1, p.La},
		Params:   mgl32.Vec4{p.Shininess},
	}
}

type sphereState struct {
	pipeline  *wgpu.RenderPipeline
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	vertices  *wgpu.Buffer
	indices   *wgpu.Buffer
	count     uint32
	targets   *gekko.RenderTargets
	hud       *gekko.Hud

	level    int
	orbiting bool
	angle    float32
	params   PhongParams
	selected PhongParam
}

func (lab SphereLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w04-sphere", err)
		return
	}
	samples := max(lab.SampleCount, 1)
	pipeline, err := c.pipeline("w04.wgsl", gekko.PipelineSpec{
		VertexLayouts: []wgpu.VertexBufferLayout{gekko.FloatLayout(0, 3)},
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeBack,
		SampleCount:   samples,
		DepthTest:     true,
		DepthWrite:    true,
	})
	if err != nil {
		abort(cmd, "w04-sphere", err)
		return
	}
	s := &sphereState{
		pipeline: pipeline,
		targets:  &gekko.RenderTargets{Label: "w04", Samples: samples, Depth: true},
		hud:      c.hud,
		level:    sphereDefaultLevel,
		orbiting: true,
		params:   DefaultPhongParams(),
	}
	if s.uniform, err = c.gpu.CreateUniformBuffer("phong", gekko.UniformSize(phongUniforms{})); err != nil {
		abort(cmd, "w04-sphere", err)
		return
	}
	if s.bindGroup, err = c.gpu.CreateBindGroup(pipeline, 0, gekko.BufferEntry(0, s.uniform)); err != nil {
		abort(cmd, "w04-sphere", err)
		return
	}
	if err = s.rebuild(c.gpu); err != nil {
		abort(cmd, "w04-sphere", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(sphereUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(sphereRender).
			InStage(gekko.Render),
	)
}

func (s *sphereState) rebuild(gpu *gekko.GpuState) error {
	mesh := gekko.SubdividedSphere(s.level)
	if s.vertices != nil {
		s.vertices.Release()
		s.indices.Release()
		s.vertices, s.indices = nil, nil
	}
	var err error
	if s.vertices, err = gpu.CreateVertexBuffer("sphere", mesh.Positions); err != nil {
		return err
	}
	if s.indices, err = gpu.CreateIndexBuffer("sphere", mesh.Indices); err != nil {
		return err
	}
	s.count = uint32(len(mesh.Indices))
	return nil
}

var phongParamKeys = map[int]PhongParam{
	gekko.KeyK: ParamKd,
	gekko.KeyL: ParamKs,
	gekko.KeyJ: ParamShininess,
	gekko.KeyE: ParamLe,
	gekko.KeyA: ParamLa,
}

// sphereLevelDelta reads the +/- keys on both the main row and the keypad.
func sphereLevelDelta(input *gekko.Input) int {
	d := 0
	if input.JustPressed[gekko.KeyEqual] || input.JustPressed[gekko.KeyKPPlus] {
		d++
	}
	if input.JustPressed[gekko.KeyMinus] || input.JustPressed[gekko.KeyKPMinus] {
		d--
	}
	return d
}

func sphereUpdate(t *gekko.Time, input *gekko.Input, gpu *gekko.GpuState, s *sphereState, cmd *gekko.Commands) {
	if d := sphereLevelDelta(input); d != 0 {
		level := min(max(s.level+d, 0), sphereMaxLevel)
		if level != s.level {
			s.level = level
			if err := s.rebuild(gpu); err != nil {
				cmd.Logger().Errorf("w04-sphere: %v", err)
			}
		}
	}
	if input.JustPressed[gekko.KeySpace] {
		s.orbiting = !s.orbiting
	}
	for key, param := range phongParamKeys {
		if input.JustPressed[key] {
			s.selected = param
		}
	}
	if input.JustPressed[gekko.KeyUp] {
		s.params.Adjust(s.selected, 1)
	}
	if input.JustPressed[gekko.KeyDown] {
		s.params.Adjust(s.selected, -1)
	}
	if s.orbiting {
		s.angle += sphereOrbitRate * t.DtSeconds()
	}

	p := s.params
	s.hud.SetLines(
		fmt.Sprintf("level %d  (%d vertices)  +/-", s.level, 1<<(2*(s.level+1))),
		fmt.Sprintf("kd %.2f  ks %.2f  shininess %.0f  Le %.2f  La %.2f", p.Kd, p.Ks, p.Shininess, p.Le, p.La),
		fmt.Sprintf("adjusting %s  [K L J E A] + Up/Down, Space orbit", s.selected),
	)

	if gpu.Height() == 0 {
		return
	}
	eye := mgl32.Vec3{
		sphereOrbitRadius * float32(math.Sin(float64(s.angle))),
		0,
		sphereOrbitRadius * float32(math.Cos(float64(s.angle))),
	}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := gekko.PerspectiveDeg(45, float32(gpu.Width())/float32(gpu.Height()), 0.1, 10)
	u := s.params.uniforms(proj.Mul4(view), eye, mgl32.Vec3{0, 0, 1})
	if err := gpu.WriteUniform(s.uniform, 0, &u); err != nil {
		cmd.Logger().Errorf("w04-sphere: %v", err)
	}
}

func sphereRender(frame *gekko.Frame, gpu *gekko.GpuState, s *sphereState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	if err := s.targets.Ensure(gpu, frame.Width, frame.Height); err != nil {
		cmd.Logger().Errorf("w04-sphere: %v", err)
		return
	}
	pass := beginPass(frame, s.targets.ColorAttachment(frame.View, Cornflower), s.targets.DepthAttachment())
	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.bindGroup, nil)
	pass.SetVertexBuffer(0, s.vertices, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(s.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(s.count, 1, 0, 0, 0)
	endPass(pass, cmd)
}
