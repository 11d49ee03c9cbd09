package labs

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

// PaintLab is a click-to-draw canvas. P, T and C pick the shape, 1-8 pick
// the draw colour, Shift+1-8 the background, Backspace clears.
type PaintLab struct{}

type paintState struct {
	canvas *Canvas
	shape  *flat2D
	hud    *gekko.Hud

	builtVersion uint64
	builtHeight  int
}

var paintModeKeys = map[int]DrawMode{
	gekko.KeyP: ModePoint,
	gekko.KeyT: ModeTriangle,
	gekko.KeyC: ModeCircle,
}

var paletteKeys = [8]int{gekko.Key1, gekko.Key2, gekko.Key3, gekko.Key4, gekko.Key5, gekko.Key6, gekko.Key7, gekko.Key8}

var paletteNames = [8]string{"black", "red", "yellow", "green", "blue", "magenta", "cyan", "cornflower"}

func (PaintLab) Install(app *gekko.App, cmd *gekko.Commands) {
	c, err := newLabContext(app)
	if err != nil {
		abort(cmd, "w02-paint", err)
		return
	}
	pipeline, err := newFlat2DPipeline(c)
	if err != nil {
		abort(cmd, "w02-paint", err)
		return
	}
	shape, err := newFlat2D(c, pipeline, nil, nil)
	if err != nil {
		abort(cmd, "w02-paint", err)
		return
	}
	s := &paintState{canvas: NewCanvas(), shape: shape, hud: c.hud}
	s.status()
	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(paintUpdate).
			InStage(gekko.Update),
	).UseSystem(
		gekko.System(paintRender).
			InStage(gekko.Render),
	)
}

func (s *paintState) status() {
	cv := s.canvas
	s.hud.SetLines(
		fmt.Sprintf("mode %s  [P]oint [T]riangle [C]ircle", cv.Mode),
		fmt.Sprintf("draw %s  clear %s  (1-8, shift+1-8)", paletteNames[cv.DrawColor], paletteNames[cv.ClearColor]),
		fmt.Sprintf("shapes %d  pending %d  backspace clears", cv.ShapeCount(), cv.PendingCount()),
	)
}

// applyPaintInput feeds one tick of keys and clicks into the canvas.
func applyPaintInput(cv *Canvas, input *gekko.Input) {
	for key, mode := range paintModeKeys {
		if input.JustPressed[key] {
			cv.SetMode(mode)
		}
	}
	for i, key := range paletteKeys {
		if !input.JustPressed[key] {
			continue
		}
		if input.ShiftHeld() {
			cv.SetClearColor(i)
		} else {
			cv.SetDrawColor(i)
		}
	}
	if input.JustPressed[gekko.KeyBackspace] {
		cv.Clear()
	}
	for _, click := range input.DrainClicks() {
		if click.Button != gekko.MouseButtonLeft {
			continue
		}
		x, y := gekko.PixelToNDC(click.X, click.Y, input.Width, input.Height)
		cv.Click(mgl32.Vec2{x, y})
	}
}

func paintUpdate(input *gekko.Input, gpu *gekko.GpuState, s *paintState, cmd *gekko.Commands) {
	applyPaintInput(s.canvas, input)
	s.status()

	height := int(gpu.Height())
	if s.canvas.Version() == s.builtVersion && height == s.builtHeight {
		return
	}
	positions, colors := s.canvas.Vertices(gekko.PointSize(PaintPointPixels, height))
	if err := s.shape.setVertices(gpu, positions, colors); err != nil {
		cmd.Logger().Errorf("w02-paint: %v", err)
		return
	}
	s.builtVersion, s.builtHeight = s.canvas.Version(), height
}

func paintRender(frame *gekko.Frame, s *paintState, cmd *gekko.Commands) {
	if !frame.Valid {
		return
	}
	bg := Palette[s.canvas.ClearColor]
	pass := beginPass(frame, clearAttachment(frame.View, wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1}), nil)
	s.shape.draw(pass)
	endPass(pass, cmd)
}
