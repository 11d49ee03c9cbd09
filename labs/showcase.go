package labs

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// ShowcaseLab splits the window into four viewports: a plain clear, an RGB
// triangle, a rotating square and a bouncing circle.
type ShowcaseLab struct{}

const (
	// per-second rates of the 60 Hz per-frame steps 0.02 rad and 0.005
	showcaseSpinRate   = 1.2
	showcaseBounceRate = 0.3
	showcaseBounceMax  = 0.75
)

type showcaseState struct {
	backgrounds [4]*flat2D
	triangle    *flat2D
	square      *flat2D
	circle      *flat2D

	angle float32
	y     float32
	dir   float32
}

var showcaseClears = [4]mgl32.Vec3{
	{0.2, 0.2, 0.2},
	{0.05, 0.05, 0.1},
	{0.1, 0.1, 0.15},
	{0.1, 0.12, 0.18},
}

var fullClipQuad = []mgl32.Vec2{
	{-1, -1}, {1, -1}, {-1, 1},
	{-1, 1}, {1, -1}, {1, 1},
}

func (ShowcaseLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "showcase", err)
		return
	}
	s, err := newShowcaseState(c)
	if err != nil {
		abort(cmd, "showcase", err)
		return
	}
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(showcaseUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(showcaseRender).
			InStage(gekko.Render),
	)
}

func newShowcaseState(c labContext) (*showcaseState, error) {
	pipeline, err := newFlat2DPipeline(c)
	if err != nil {
		return nil, err
	}
	s := &showcaseState{dir: 1}
	for i, bg := range showcaseClears {
		if s.backgrounds[i], err = newFlat2D(c, pipeline, fullClipQuad, solidColors(len(fullClipQuad), bg)); err != nil {
			return nil, err
		}
	}
	if s.triangle, err = newFlat2D(c, pipeline,
		[]mgl32.Vec2{{0, 0.75}, {-0.75, -0.75}, {0.75, -0.75}},
		[]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	); err != nil {
		return nil, err
	}
	if s.square, err = newFlat2D(c, pipeline,
		[]mgl32.Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}},
		[]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 0}, {0, 0, 1}, {1, 1, 0}},
	); err != nil {
		return nil, err
	}
	positions, colors := gekko.CircleFan(mgl32.Vec2{}, 0.3, gekko.DefaultCircleSegments, whiteRGB, whiteRGB)
	if s.circle, err = newFlat2D(c, pipeline, positions, colors); err != nil {
		return nil, err
	}
	return s, nil
}

// StepBounce moves y by dir*step and reflects at +-limit.
func StepBounce(y, dir, step, limit float32) (float32, float32) {
	y += dir * step
	if y > limit {
		y, dir = limit, -1
	}
	if y < -limit {
		y, dir = -limit, 1
	}
	return y, dir
}

func showcaseUpdate(t *gekko.Time, gpu *gekko.GpuState, s *showcaseState, cmd *gekko.Commands) {
	dt := t.DtSeconds()
	s.angle += showcaseSpinRate * dt
	s.y, s.dir = StepBounce(s.y, s.dir, showcaseBounceRate*dt, showcaseBounceMax)

	if err := s.square.setTransform(gpu, mgl32.HomogRotate3DZ(-s.angle)); err != nil {
		cmd.Logger().Errorf("showcase: %v", err)
	}
	if err := s.circle.setTransform(gpu, mgl32.Translate3D(0, s.y, 0)); err != nil {
		cmd.Logger().Errorf("showcase: %v", err)
	}
}

func showcaseRender(frame *gekko.Frame, s *showcaseState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	pass := beginPass(frame, clearAttachment(frame.View, wgpu.Color{A: 1}), nil)
	w, h := frame.Width/2, frame.Height/2
	if w == 0 || h == 0 {
		endPass(pass, cmd)
		return
	}
	scenes := [4]*flat2D{nil, s.triangle, s.square, s.circle}
	for i := 0; i < 4; i++ {
		x, y := uint32(i%2)*w, uint32(i/2)*h
		pass.SetViewport(float32(x), float32(y), float32(w), float32(h), 0, 1)
		pass.SetScissorRect(x, y, w, h)
		s.backgrounds[i].draw(pass)
		if scenes[i] != nil {
			scenes[i].draw(pass)
		}
	}
	endPass(pass, cmd)
}
