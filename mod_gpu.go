package gekko

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is the surface texture acquired for the current tick. Render systems
// check Valid before encoding; a skipped frame leaves it false.
type Frame struct {
	Valid   bool
	Width   uint32
	Height  uint32
	View    *wgpu.TextureView
	Encoder *wgpu.CommandEncoder

	texture *wgpu.Texture
}

// GpuModule acquires the device for the shared window and drives the
// acquire/submit/present cycle around the Render stage.
type GpuModule struct{}

func (mod GpuModule) Install(app *App, cmd *Commands) {
	window, ok := Resource[WindowState](app)
	if !ok {
		panic("GpuModule requires PlatformWindowModule to be installed first")
	}
	gpu, err := createGpuState(window)
	if err != nil {
		cmd.Abort(err)
		return
	}
	cmd.Logger().Infof("gpu ready: surface %dx%d format %v", gpu.Width(), gpu.Height(), gpu.Format())

	cmd.AddResources(gpu, &Frame{})
	app.UseSystem(
		System(gpuResizeSystem).
			InStage(PreUpdate),
	).UseSystem(
		System(beginFrameSystem).
			InStage(PreRender),
	).UseSystem(
		System(endFrameSystem).
			InStage(PostRender),
	)
}

func gpuResizeSystem(window *WindowState, gpu *GpuState) {
	if window.Resized {
		gpu.Resize(window.FramebufferWidth, window.FramebufferHeight)
	}
}

func beginFrameSystem(window *WindowState, gpu *GpuState, frame *Frame, cmd *Commands) {
	frame.Valid = false
	if window.Minimized() {
		return
	}
	if err := gpu.BeginFrame(frame); err != nil {
		cmd.Logger().Warnf("skipping frame: %v", err)
	}
}

func endFrameSystem(gpu *GpuState, frame *Frame, cmd *Commands) {
	if err := gpu.EndFrame(frame); err != nil {
		cmd.Logger().Errorf("submit frame: %v", err)
	}
}

// BeginFrame acquires the next surface texture. On failure the surface is
// reconfigured and the error returned so the caller can skip the frame.
func (g *GpuState) BeginFrame(frame *Frame) error {
	texture, err := g.surface.GetCurrentTexture()
	if err != nil {
		g.reconfigure()
		return err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return err
	}
	encoder, err := g.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Frame Encoder"})
	if err != nil {
		view.Release()
		texture.Release()
		return err
	}
	*frame = Frame{
		Valid:   true,
		Width:   g.surfaceConfig.Width,
		Height:  g.surfaceConfig.Height,
		View:    view,
		Encoder: encoder,
		texture: texture,
	}
	return nil
}

// EndFrame submits the frame's commands and presents. No-op on a skipped frame.
func (g *GpuState) EndFrame(frame *Frame) error {
	if !frame.Valid {
		return nil
	}
	defer func() {
		frame.View.Release()
		frame.texture.Release()
		frame.Encoder.Release()
		*frame = Frame{}
	}()

	cmdBuffer, err := frame.Encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	g.queue.Submit(cmdBuffer)
	g.surface.Present()
	return nil
}
