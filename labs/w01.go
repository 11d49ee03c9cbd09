package labs

import (
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// ClearLab only clears the frame.
type ClearLab struct{}

func (ClearLab) Install(app *gekko.App, cmd *gekko.Commands) {
	app.UseSystem(
		gekko.System(clearRender).
			InStage(gekko.Render),
	)
}

func clearRender(frame *gekko.Frame, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	pass := beginPass(frame, clearAttachment(frame.View, Cornflower), nil)
	endPass(pass, cmd)
}

// flat2D draws non-indexed vec2 positions with per-vertex colours through
// basic2d.wgsl and a single transform uniform.
type flat2D struct {
	pipeline  *wgpu.RenderPipeline
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup

	positions *wgpu.Buffer
	colors    *wgpu.Buffer
	count     uint32
}

var flat2DLayouts = []wgpu.VertexBufferLayout{
	gekko.FloatLayout(0, 2),
	gekko.FloatLayout(1, 3),
}

func newFlat2DPipeline(c labContext) (*wgpu.RenderPipeline, error) {
	return c.pipeline("basic2d.wgsl", gekko.PipelineSpec{
		VertexLayouts: flat2DLayouts,
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
	})
}

func newFlat2D(c labContext, pipeline *wgpu.RenderPipeline, positions []mgl32.Vec2, colors []mgl32.Vec3) (*flat2D, error) {
	f := &flat2D{pipeline: pipeline}
	var err error
	if f.uniform, err = c.gpu.CreateUniformBuffer("transform", 64); err != nil {
		return nil, err
	}
	if err = c.gpu.WriteUniform(f.uniform, 0, mgl32.Ident4()); err != nil {
		return nil, err
	}
	if f.bindGroup, err = c.gpu.CreateBindGroup(pipeline, 0, gekko.BufferEntry(0, f.uniform)); err != nil {
		return nil, err
	}
	if err = f.setVertices(c.gpu, positions, colors); err != nil {
		return nil, err
	}
	return f, nil
}

// setVertices replaces both vertex buffers wholesale.
func (f *flat2D) setVertices(gpu *gekko.GpuState, positions []mgl32.Vec2, colors []mgl32.Vec3) error {
	if f.positions != nil {
		f.positions.Release()
		f.colors.Release()
		f.positions, f.colors = nil, nil
	}
	f.count = uint32(len(positions))
	if f.count == 0 {
		return nil
	}
	var err error
	if f.positions, err = gpu.CreateVertexBuffer("positions", positions); err != nil {
		return err
	}
	if f.colors, err = gpu.CreateVertexBuffer("colors", colors); err != nil {
		return err
	}
	return nil
}

func (f *flat2D) setTransform(gpu *gekko.GpuState, m mgl32.Mat4) error {
	return gpu.WriteUniform(f.uniform, 0, m)
}

func (f *flat2D) draw(pass *wgpu.RenderPassEncoder) {
	if f.count == 0 {
		return
	}
	pass.SetPipeline(f.pipeline)
	pass.SetBindGroup(0, f.bindGroup, nil)
	pass.SetVertexBuffer(0, f.positions, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, f.colors, 0, wgpu.WholeSize)
	pass.Draw(f.count, 1, 0, 0)
}

func solidColors(n int, c mgl32.Vec3) []mgl32.Vec3 {
	colors := make([]mgl32.Vec3, n)
	for i := range colors {
		colors[i] = c
	}
	return colors
}

var whiteRGB = mgl32.Vec3{1, 1, 1}

// PointsLab draws three 20px points as quads.
type PointsLab struct{}

type pointsState struct {
	shape  *flat2D
	height int
}

var pointCenters = []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}}

func pointQuads(height int) []mgl32.Vec2 {
	size := gekko.PointSize(20, height)
	var positions []mgl32.Vec2
	for _, p := range pointCenters {
		positions = append(positions, gekko.PointQuad(p, size)...)
	}
	return positions
}

func (PointsLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w01-points", err)
		return
	}
	pipeline, err := newFlat2DPipeline(c)
	if err != nil {
		abort(cmd, "w01-points", err)
		return
	}
	height := int(c.gpu.Height())
	positions := pointQuads(height)
	shape, err := newFlat2D(c, pipeline, positions, solidColors(len(positions), whiteRGB))
	if err != nil {
		abort(cmd, "w01-points", err)
		return
	}
	cmd.AddResources(&pointsState{shape: shape, height: height})
	app.UseSystem(
		gekko.System(pointsUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(pointsRender).
			InStage(gekko.Render),
	)
}

// pointsUpdate keeps the points 20px tall across resizes.
func pointsUpdate(window *gekko.WindowState, gpu *gekko.GpuState, s *pointsState, cmd *gekko.Commands) {
	if window.Minimized() || window.FramebufferHeight == s.height {
		return
	}
	s.height = window.FramebufferHeight
	positions := pointQuads(s.height)
	if err := s.shape.setVertices(gpu, positions, solidColors(len(positions), whiteRGB)); err != nil {
		cmd.Logger().Errorf("w01-points: %v", err)
	}
}

func pointsRender(frame *gekko.Frame, s *pointsState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	pass := beginPass(frame, clearAttachment(frame.View, Cornflower), nil)
	s.shape.draw(pass)
	endPass(pass, cmd)
}

// TriangleLab draws one triangle with red, green and blue corners.
type TriangleLab struct{}

type triangleState struct {
	shape *flat2D
}

func (TriangleLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w01-triangle", err)
		return
	}
	pipeline, err := newFlat2DPipeline(c)
	if err != nil {
		abort(cmd, "w01-triangle", err)
		return
	}
	shape, err := newFlat2D(c, pipeline,
		[]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}},
		[]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	)
	if err != nil {
		abort(cmd, "w01-triangle", err)
		return
	}
	cmd.AddResources(&triangleState{shape: shape})
	app.UseSystem(
		gekko.System(triangleRender).
			InStage(gekko.Render),
	)
}

func triangleRender(frame *gekko.Frame, s *triangleState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	pass := beginPass(frame, clearAttachment(frame.View, Cornflower), nil)
	s.shape.draw(pass)
	endPass(pass, cmd)
}

// animated2D is a single white shape whose vertex shader reads one float
// parameter from a vec4 uniform.
type animated2D struct {
	pipeline  *wgpu.RenderPipeline
	vertices  *wgpu.Buffer
	count     uint32
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

func newAnimated2D(c labContext, shader string, positions []mgl32.Vec2) (*animated2D, error) {
	pipeline, err := c.pipeline(shader, gekko.PipelineSpec{
		VertexLayouts: []wgpu.VertexBufferLayout{gekko.FloatLayout(0, 2)},
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}
	a := &animated2D{pipeline: pipeline, count: uint32(len(positions))}
	if a.vertices, err = c.gpu.CreateVertexBuffer(shader+" vertices", positions); err != nil {
		return nil, err
	}
	if a.uniform, err = c.gpu.CreateUniformBuffer(shader+" params", 16); err != nil {
		return nil, err
	}
	if a.bindGroup, err = c.gpu.CreateBindGroup(pipeline, 0, gekko.BufferEntry(0, a.uniform)); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *animated2D) setParam(gpu *gekko.GpuState, v float32) error {
	return gpu.WriteUniform(a.uniform, 0, mgl32.Vec4{v, 0, 0, 0})
}

func (a *animated2D) render(frame *gekko.Frame, cmd *gekko.Commands) {
	pass := beginPass(frame, clearAttachment(frame.View, Cornflower), nil)
	pass.SetPipeline(a.pipeline)
	pass.SetBindGroup(0, a.bindGroup, nil)
	pass.SetVertexBuffer(0, a.vertices, 0, wgpu.WholeSize)
	pass.Draw(a.count, 1, 0, 0)
	endPass(pass, cmd)
}

// RotateLab spins a unit square; the angle advances by elapsed seconds.
type RotateLab struct{}

type rotateState struct {
	shape *animated2D
	theta float32
}

var unitSquare = []mgl32.Vec2{
	{-0.5, -0.5}, {0.5, -0.5}, {-0.5, 0.5},
	{-0.5, 0.5}, {0.5, -0.5}, {0.5, 0.5},
}

func (RotateLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w01-rotate", err)
		return
	}
	shape, err := newAnimated2D(c, "w01_rotate.wgsl", unitSquare)
	if err != nil {
		abort(cmd, "w01-rotate", err)
		return
	}
	cmd.AddResources(&rotateState{shape: shape})
	app.UseSystem(
		gekko.System(rotateUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(rotateRender).
			InStage(gekko.Render),
	)
}

func rotateUpdate(t *gekko.Time, gpu *gekko.GpuState, s *rotateState, cmd *gekko.Commands) {
	s.theta += t.DtSeconds()
	if err := s.shape.setParam(gpu, s.theta); err != nil {
		cmd.Logger().Errorf("w01-rotate: %v", err)
	}
}

func rotateRender(frame *gekko.Frame, s *rotateState, cmd *gekko.Commands) {
	if frame.Valid {
		s.shape.render(frame, cmd)
	}
}

// BounceLab moves a circle vertically on y = 0.65 sin(3t).
type BounceLab struct{}

const (
	bounceRadius    = 0.35
	bounceAmplitude = 0.65
	bounceSpeed     = 3.0
)

type bounceState struct {
	shape *animated2D
}

func BounceOffset(elapsed float32) float32 {
	return bounceAmplitude * float32(math.Sin(float64(bounceSpeed*elapsed)))
}

func (BounceLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w01-bounce", err)
		return
	}
	positions, _ := gekko.CircleFan(mgl32.Vec2{}, bounceRadius, gekko.DefaultCircleSegments, whiteRGB, whiteRGB)
	shape, err := newAnimated2D(c, "w01_bounce.wgsl", positions)
	if err != nil {
		abort(cmd, "w01-bounce", err)
		return
	}
	cmd.AddResources(&bounceState{shape: shape})
	app.UseSystem(
		gekko.System(bounceUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(bounceRender).
			InStage(gekko.Render),
	)
}

func bounceUpdate(t *gekko.Time, gpu *gekko.GpuState, s *bounceState, cmd *gekko.Commands) {
	if err := s.shape.setParam(gpu, BounceOffset(t.ElapsedSeconds())); err != nil {
		cmd.Logger().Errorf("w01-bounce: %v", err)
	}
}

func bounceRender(frame *gekko.Frame, s *bounceState, cmd *gekko.Commands) {
	if frame.Valid {
		s.shape.render(frame, cmd)
	}
}
