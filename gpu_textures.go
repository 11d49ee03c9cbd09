package gekko

import (
	"errors"
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Texture keeps a texture together with its default view.
type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   uint32
	Height  uint32
	Levels  uint32
}

func (t *Texture) Release() {
	if t == nil {
		return
	}
	if t.View != nil {
		t.View.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}

// rgba8 texels are four bytes, straight alpha, rows tightly packed.
const rgba8BytesPerPixel = 4

// texelWriter copies one image into a mip level or array layer of a texture.
type texelWriter func(img *image.NRGBA, level, layer uint32) error

// checkMipLevels rejects chains that do not halve from the base size, or
// that run past the 1x1 level.
func checkMipLevels(levels []*image.NRGBA) error {
	if len(levels) == 0 {
		return errors.New("no image data")
	}
	base := levels[0].Bounds()
	if n := MipLevelCount(base.Dx(), base.Dy()); len(levels) > n {
		return fmt.Errorf("%d mip levels for a %dx%d image, at most %d", len(levels), base.Dx(), base.Dy(), n)
	}
	for i, img := range levels {
		w, h := max(base.Dx()>>i, 1), max(base.Dy()>>i, 1)
		if img == nil || img.Bounds().Dx() != w || img.Bounds().Dy() != h {
			return fmt.Errorf("mip level %d is not %dx%d", i, w, h)
		}
	}
	return nil
}

// uploadLevels writes each level in order and stops at the first failure.
func uploadLevels(write texelWriter, levels []*image.NRGBA) error {
	for level, img := range levels {
		if err := write(img, uint32(level), 0); err != nil {
			return err
		}
	}
	return nil
}

func uploadLayers(write texelWriter, layers []*image.NRGBA) error {
	for layer, img := range layers {
		if err := write(img, 0, uint32(layer)); err != nil {
			return err
		}
	}
	return nil
}

// CreateTexture2D uploads levels[0] as the base image and every further
// entry as the next mip level.
func (g *GpuState) CreateTexture2D(label string, levels []*image.NRGBA) (*Texture, error) {
	if err := checkMipLevels(levels); err != nil {
		return nil, fmt.Errorf("texture %q: %w", label, err)
	}
	base := levels[0].Bounds()
	width, height := uint32(base.Dx()), uint32(base.Dy())
	tex, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: uint32(len(levels)),
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", label, err)
	}
	if err := uploadLevels(g.texelWriter(tex), levels); err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture %q: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture %q view: %w", label, err)
	}
	return &Texture{Texture: tex, View: view, Width: width, Height: height, Levels: uint32(len(levels))}, nil
}

// CreateCubeTexture uploads six equally sized faces as array layers
// +X, -X, +Y, -Y, +Z, -Z and returns a cube view.
func (g *GpuState) CreateCubeTexture(label string, faces [6]*image.NRGBA) (*Texture, error) {
	if faces[0] == nil {
		return nil, fmt.Errorf("cube texture %q: face 0 missing", label)
	}
	size := faces[0].Bounds()
	for i, f := range faces {
		if f == nil || f.Bounds().Dx() != size.Dx() || f.Bounds().Dy() != size.Dy() {
			return nil, fmt.Errorf("cube texture %q: face %d missing or differs in size", label, i)
		}
	}
	width, height := uint32(size.Dx()), uint32(size.Dy())
	tex, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 6},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("cube texture %q: %w", label, err)
	}
	if err := uploadLayers(g.texelWriter(tex), faces[:]); err != nil {
		tex.Release()
		return nil, fmt.Errorf("cube texture %q: %w", label, err)
	}
	view, err := tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           label + " view",
		Format:          wgpu.TextureFormatRGBA8Unorm,
		Dimension:       wgpu.TextureViewDimensionCube,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 6,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("cube texture %q view: %w", label, err)
	}
	return &Texture{Texture: tex, View: view, Width: width, Height: height, Levels: 1}, nil
}

func (g *GpuState) texelWriter(tex *wgpu.Texture) texelWriter {
	return func(img *image.NRGBA, level, layer uint32) error {
		w, h := uint32(img.Bounds().Dx()), uint32(img.Bounds().Dy())
		err := g.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  tex,
				MipLevel: level,
				Origin:   wgpu.Origin3D{Z: layer},
				Aspect:   wgpu.TextureAspectAll,
			},
			img.Pix,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  w * rgba8BytesPerPixel,
				RowsPerImage: h,
			},
			&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		)
		if err != nil {
			return fmt.Errorf("write level %d layer %d: %w", level, layer, err)
		}
		return nil
	}
}

// CreateRenderTexture is an offscreen colour target that can also be sampled.
func (g *GpuState) CreateRenderTexture(label string, width, height uint32, format wgpu.TextureFormat) (*Texture, error) {
	tex, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("render texture %q: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("render texture %q view: %w", label, err)
	}
	return &Texture{Texture: tex, View: view, Width: width, Height: height, Levels: 1}, nil
}

// CreateDepthTexture allocates a depth24plus attachment.
func (g *GpuState) CreateDepthTexture(label string, width, height, samples uint32) (*Texture, error) {
	return g.createAttachment(label, width, height, samples, wgpu.TextureFormatDepth24Plus)
}

func (g *GpuState) createAttachment(label string, width, height, samples uint32, format wgpu.TextureFormat) (*Texture, error) {
	tex, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   samples,
	})
	if err != nil {
		return nil, fmt.Errorf("attachment %q: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("attachment %q view: %w", label, err)
	}
	return &Texture{Texture: tex, View: view, Width: width, Height: height, Levels: 1}, nil
}

// SamplerSpec uses the same mode names as the sampler tags of the engine:
// wrap/mirror/clamp and nearest/linear.
type SamplerSpec struct {
	Label     string
	WrapMode  string
	MinFilter string
	MagFilter string
	MipFilter string
}

func (g *GpuState) CreateSampler(spec SamplerSpec) (*wgpu.Sampler, error) {
	wrap := spec.WrapMode
	if wrap == "" {
		wrap = "wrap"
	}
	minFilter, magFilter := spec.MinFilter, spec.MagFilter
	if minFilter == "" {
		minFilter = "linear"
	}
	if magFilter == "" {
		magFilter = "linear"
	}
	addressMode := wgpuWrapMode(wrap)
	sampler, err := g.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         spec.Label,
		AddressModeU:  addressMode,
		AddressModeV:  addressMode,
		AddressModeW:  addressMode,
		MagFilter:     wgpuFilterMode(magFilter),
		MinFilter:     wgpuFilterMode(minFilter),
		MipmapFilter:  wgpuMipmapFilterMode(spec.MipFilter),
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("sampler %q: %w", spec.Label, err)
	}
	return sampler, nil
}

// RenderTargets owns the depth and multisampled colour attachments of a lab
// and recreates them only when the frame size changes.
type RenderTargets struct {
	Label   string
	Samples uint32
	Depth   bool

	ready         bool
	width, height uint32
	depth         *Texture
	msaa          *Texture
}

func (rt *RenderTargets) Ensure(g *GpuState, width, height uint32) error {
	if rt.ready && width == rt.width && height == rt.height {
		return nil
	}
	rt.Release()
	samples := max(rt.Samples, 1)
	if rt.Depth {
		depth, err := g.CreateDepthTexture(rt.Label+" depth", width, height, samples)
		if err != nil {
			return err
		}
		rt.depth = depth
	}
	if samples > 1 {
		msaa, err := g.createAttachment(rt.Label+" msaa", width, height, samples, g.Format())
		if err != nil {
			return err
		}
		rt.msaa = msaa
	}
	rt.width, rt.height = width, height
	rt.ready = true
	return nil
}

// ColorAttachment renders into the MSAA target and resolves into view when
// multisampling, otherwise straight into view.
func (rt *RenderTargets) ColorAttachment(view *wgpu.TextureView, clear wgpu.Color) wgpu.RenderPassColorAttachment {
	attachment := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear,
	}
	if rt.msaa != nil {
		attachment.View = rt.msaa.View
		attachment.ResolveTarget = view
	}
	return attachment
}

func (rt *RenderTargets) DepthAttachment() *wgpu.RenderPassDepthStencilAttachment {
	if rt.depth == nil {
		return nil
	}
	return DepthAttachmentFor(rt.depth.View)
}

func DepthAttachmentFor(view *wgpu.TextureView) *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            view,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: 1.0,
	}
}

func (rt *RenderTargets) Release() {
	rt.depth.Release()
	rt.msaa.Release()
	rt.depth, rt.msaa = nil, nil
	rt.width, rt.height = 0, 0
	rt.ready = false
}
