package gekko

import (
	"fmt"
	"image"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/font/gofont/goregular"
)

// Overlay runs between Render and PostRender so text lands on top of
// whatever the lab drew into the frame.
var Overlay = Stage{Name: "Overlay"}

// Hud holds the status lines shown in the top-left corner. A nil *Hud
// accepts and drops updates, so labs run without the overlay installed.
type Hud struct {
	Title  string
	Hidden bool

	lines []string
	dirty bool
}

func (h *Hud) SetLines(lines ...string) {
	if h == nil || slices.Equal(h.lines, lines) {
		return
	}
	h.lines = append(h.lines[:0], lines...)
	h.dirty = true
}

func (h *Hud) Lines() []string {
	if h == nil {
		return nil
	}
	return h.lines
}

// Items lays the title and lines out one per row, each with a dark copy
// one pixel down and right for contrast.
func (h *Hud) Items(lineHeight float32) []TextItem {
	var rows []string
	if h.Title != "" {
		rows = append(rows, h.Title)
	}
	rows = append(rows, h.lines...)

	items := make([]TextItem, 0, 2*len(rows))
	for i, row := range rows {
		y := hudMargin + float32(i)*lineHeight
		items = append(items,
			TextItem{Text: row, Position: [2]float32{hudMargin + 1, y + 1}, Scale: 1, Color: [4]float32{0, 0, 0, 0.8}},
			TextItem{Text: row, Position: [2]float32{hudMargin, y}, Scale: 1, Color: [4]float32{1, 1, 1, 1}},
		)
	}
	return items
}

const hudMargin = 10

// HudModule draws the Hud resource with the Go Regular font. H toggles it
// when the input module is installed.
type HudModule struct {
	Title    string
	FontSize float64
}

type hudState struct {
	text      *TextRenderer
	pipeline  *wgpu.RenderPipeline
	atlas     *Texture
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup

	vertices      *wgpu.Buffer
	capacity      uint64
	count         uint32
	width, height uint32
}

func (mod HudModule) Install(app *App, cmd *Commands) {
	hud := &Hud{Title: mod.Title}
	cmd.AddResources(hud)

	gpu, ok := Resource[GpuState](app)
	if !ok {
		cmd.Logger().Warnf("hud: no gpu, status lines will not be drawn")
		return
	}
	assets, ok := Resource[AssetServer](app)
	if !ok {
		assets = NewAssetServer("")
	}
	size := mod.FontSize
	if size == 0 {
		size = 18
	}
	state, err := newHudState(gpu, assets, size)
	if err != nil {
		cmd.Abort(fmt.Errorf("hud: %w", err))
		return
	}
	cmd.AddResources(state)

	app.UseStage(Overlay, AfterStage(Render))
	app.UseSystem(
		System(hudRenderSystem).
			InStage(Overlay),
	)
	if _, ok := Resource[Input](app); ok {
		cmd.UseSystem(hudToggleSystem)
	}
}

func newHudState(gpu *GpuState, assets *AssetServer, fontSize float64) (*hudState, error) {
	text, err := NewTextRenderer(goregular.TTF, fontSize)
	if err != nil {
		return nil, err
	}
	src, err := assets.Shader("text.wgsl")
	if err != nil {
		return nil, err
	}
	s := &hudState{text: text}
	if s.pipeline, err = gpu.CreatePipeline(PipelineSpec{
		Label:         "text",
		Shader:        src,
		VertexLayouts: []wgpu.VertexBufferLayout{VertexLayoutOf(TextVertex{})},
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		CullMode:      wgpu.CullModeNone,
		Blend: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}); err != nil {
		return nil, err
	}
	if s.atlas, err = gpu.CreateTexture2D("text atlas", []*image.NRGBA{text.AtlasImage}); err != nil {
		return nil, err
	}
	if s.sampler, err = gpu.CreateSampler(SamplerSpec{Label: "text", WrapMode: "clamp"}); err != nil {
		return nil, err
	}
	if s.bindGroup, err = gpu.CreateBindGroup(s.pipeline, 0,
		TextureEntry(0, s.atlas.View),
		SamplerEntry(1, s.sampler),
	); err != nil {
		return nil, err
	}
	return s, nil
}

func hudToggleSystem(input *Input, hud *Hud) {
	if input.JustPressed[KeyH] {
		hud.Hidden = !hud.Hidden
	}
}

// upload rebuilds the vertex data when the lines or the frame size
// changed; the buffer only grows.
func (s *hudState) upload(gpu *GpuState, hud *Hud, width, height uint32) error {
	if !hud.dirty && width == s.width && height == s.height {
		return nil
	}
	vertices := s.text.BuildVertices(hud.Items(s.text.LineHeight(1)), int(width), int(height))
	hud.dirty = false
	s.width, s.height = width, height
	s.count = uint32(len(vertices))
	if s.count == 0 {
		return nil
	}
	data := sliceBytes(vertices)
	if s.vertices == nil || s.capacity < uint64(len(data)) {
		if s.vertices != nil {
			s.vertices.Release()
		}
		buf, err := gpu.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "text vertices",
			Size:  uint64(len(data)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			s.vertices, s.capacity, s.count = nil, 0, 0
			return fmt.Errorf("text vertices: %w", err)
		}
		s.vertices, s.capacity = buf, uint64(len(data))
	}
	return gpu.queue.WriteBuffer(s.vertices, 0, data)
}

func hudRenderSystem(frame *Frame, gpu *GpuState, hud *Hud, s *hudState, cmd *Commands) {
	if !frame.Valid || hud.Hidden {
		return
	}
	if err := s.upload(gpu, hud, frame.Width, frame.Height); err != nil {
		cmd.Logger().Warnf("hud: %v", err)
		return
	}
	if s.count == 0 {
		return
	}
	pass := frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    frame.View,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
	})
	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.bindGroup, nil)
	pass.SetVertexBuffer(0, s.vertices, 0, wgpu.WholeSize)
	pass.Draw(s.count, 1, 0, 0)
	if err := pass.End(); err != nil {
		cmd.Logger().Warnf("hud pass: %v", err)
	}
	pass.Release()
}
