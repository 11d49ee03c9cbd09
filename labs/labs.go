// Package labs holds one module per exercise. Each module builds its GPU
// resources in Install and registers an Update and a Render system.
package labs

import (
	"fmt"
	"sort"

	"github.com/cogentcore/webgpu/wgpu"

	gekko "github.com/gekko3d/gekko-labs"
)

var Cornflower = wgpu.Color{R: 0.3921, G: 0.5843, B: 0.9294, A: 1}

var White = wgpu.Color{R: 1, G: 1, B: 1, A: 1}

type Lab struct {
	Name        string
	Description string
	New         func(cfg gekko.Config) gekko.Module
}

var registry = map[string]Lab{}

func register(lab Lab) {
	if _, ok := registry[lab.Name]; ok {
		panic(fmt.Sprintf("lab %s registered twice", lab.Name))
	}
	registry[lab.Name] = lab
}

func init() {
	register(Lab{"w01-clear", "clear the window to cornflower blue", func(gekko.Config) gekko.Module { return ClearLab{} }})
	register(Lab{"w01-points", "three 20px points", func(gekko.Config) gekko.Module { return PointsLab{} }})
	register(Lab{"w01-triangle", "per-vertex coloured triangle", func(gekko.Config) gekko.Module { return TriangleLab{} }})
	register(Lab{"w01-rotate", "square rotated in the vertex shader", func(gekko.Config) gekko.Module { return RotateLab{} }})
	register(Lab{"w01-bounce", "circle bouncing on a sine", func(gekko.Config) gekko.Module { return BounceLab{} }})
	register(Lab{"showcase", "four viewports: clear, triangle, rotating square, bouncing circle", func(gekko.Config) gekko.Module { return ShowcaseLab{} }})
	register(Lab{"w02-paint", "click to draw points, triangles and circles", func(gekko.Config) gekko.Module { return PaintLab{} }})
	register(Lab{"w03-cubes", "instanced wireframe cubes, ortho/perspective", func(cfg gekko.Config) gekko.Module {
		return CubesLab{SampleCount: cfg.Render.SampleCount}
	}})
	register(Lab{"w04-sphere", "subdivided sphere with Phong shading", func(cfg gekko.Config) gekko.Module {
		return SphereLab{SampleCount: cfg.Render.SampleCount}
	}})
	register(Lab{"w05-mesh", "OBJ mesh under a directional light", func(gekko.Config) gekko.Module { return MeshLab{File: "pacman.obj"} }})
	register(Lab{"w06-texture", "mip-mapped checkerboard ground", func(gekko.Config) gekko.Module { return TextureLab{} }})
	register(Lab{"w07-envmap", "cubemap background and bump-mapped reflective sphere", func(gekko.Config) gekko.Module { return EnvMapLab{} }})
	register(Lab{"w08-planar-shadow", "projected shadows from a circling point light", func(cfg gekko.Config) gekko.Module {
		return PlanarShadowLab{Lift: cfg.Render.ShadowLift}
	}})
	register(Lab{"w09-shadow-map", "shadow-mapped teapot over a textured ground", func(cfg gekko.Config) gekko.Module {
		return ShadowMapLab{MapSize: cfg.Render.ShadowMapSize}
	}})
}

func Lookup(name string) (Lab, bool) {
	lab, ok := registry[name]
	return lab, ok
}

// Names lists registered labs in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// labContext is what every lab Install needs from the app.
type labContext struct {
	gpu    *gekko.GpuState
	assets *gekko.AssetServer
	hud    *gekko.Hud
	log    gekko.Logger
}

func newLabContext(app *gekko.App) (labContext, error) {
	gpu, ok := gekko.Resource[gekko.GpuState](app)
	if !ok {
		return labContext{}, fmt.Errorf("gpu not initialised")
	}
	assets, ok := gekko.Resource[gekko.AssetServer](app)
	if !ok {
		return labContext{}, fmt.Errorf("asset server not installed")
	}
	// the overlay is optional; a nil Hud ignores status updates
	hud, _ := gekko.Resource[gekko.Hud](app)
	return labContext{gpu: gpu, assets: assets, hud: hud, log: app.Logger()}, nil
}

func (c labContext) pipeline(shader string, spec gekko.PipelineSpec) (*wgpu.RenderPipeline, error) {
	src, err := c.assets.Shader(shader)
	if err != nil {
		return nil, err
	}
	spec.Shader = src
	if spec.Label == "" {
		spec.Label = shader
	}
	return c.gpu.CreatePipeline(spec)
}

func beginPass(frame *gekko.Frame, color wgpu.RenderPassColorAttachment, depth *wgpu.RenderPassDepthStencilAttachment) *wgpu.RenderPassEncoder {
	return frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments:       []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: depth,
	})
}

func endPass(pass *wgpu.RenderPassEncoder, cmd *gekko.Commands) {
	if err := pass.End(); err != nil {
		cmd.Logger().Warnf("end render pass: %v", err)
	}
	pass.Release()
}

func clearAttachment(view *wgpu.TextureView, clear wgpu.Color) wgpu.RenderPassColorAttachment {
	return wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear,
	}
}

func aspect(frame *gekko.Frame) float32 {
	if frame.Height == 0 {
		return 1
	}
	return float32(frame.Width) / float32(frame.Height)
}

func abort(cmd *gekko.Commands, lab string, err error) {
	cmd.Abort(fmt.Errorf("%s: %w", lab, err))
}
