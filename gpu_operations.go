package gekko

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
)

type GpuState struct {
	instance      *wgpu.Instance
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
}

func (g *GpuState) Device() *wgpu.Device { return g.device }
func (g *GpuState) Queue() *wgpu.Queue   { return g.queue }

// Format is the configured surface format; pipelines drawing to the screen target it.
func (g *GpuState) Format() wgpu.TextureFormat { return g.surfaceConfig.Format }

func (g *GpuState) Width() uint32  { return g.surfaceConfig.Width }
func (g *GpuState) Height() uint32 { return g.surfaceConfig.Height }

func createGpuState(s *WindowState) (*GpuState, error) {
	instance := wgpu.CreateInstance(nil)
	// wraps GLFW window into a wgpu surface
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reports no supported formats")
	}
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      preferredSurfaceFormat(caps.Formats),
		Width:       uint32(max(s.FramebufferWidth, 1)),
		Height:      uint32(max(s.FramebufferHeight, 1)),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	return &GpuState{
		instance:      instance,
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		surfaceConfig: &surfaceConfig,
	}, nil
}

// preferredSurfaceFormat picks a non-sRGB 8-bit format when available so
// shader colours match what the labs write, else the first reported format.
func preferredSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return formats[0]
}

func (g *GpuState) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.surfaceConfig.Width = uint32(width)
	g.surfaceConfig.Height = uint32(height)
	g.surface.Configure(g.adapter, g.device, g.surfaceConfig)
}

func (g *GpuState) reconfigure() {
	g.surface.Configure(g.adapter, g.device, g.surfaceConfig)
}

func (g *GpuState) Release() {
	if g.device != nil {
		g.device.Release()
	}
	if g.adapter != nil {
		g.adapter.Release()
	}
	if g.surface != nil {
		g.surface.Release()
	}
	if g.instance != nil {
		g.instance.Release()
	}
}

// PipelineSpec describes an immutable render pipeline. Topology and CullMode
// are always set explicitly by callers.
type PipelineSpec struct {
	Label         string
	Shader        string
	VertexEntry   string
	FragmentEntry string
	VertexLayouts []wgpu.VertexBufferLayout
	Topology      wgpu.PrimitiveTopology
	CullMode      wgpu.CullMode
	// zero means the surface format
	TargetFormat wgpu.TextureFormat
	SampleCount  uint32
	DepthTest    bool
	DepthWrite   bool
	DepthFormat  wgpu.TextureFormat
	Blend        *wgpu.BlendState
}

func (g *GpuState) CreatePipeline(spec PipelineSpec) (*wgpu.RenderPipeline, error) {
	shader, err := g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          spec.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: spec.Shader},
	})
	if err != nil {
		return nil, fmt.Errorf("shader module %q: %w", spec.Label, err)
	}
	defer shader.Release()

	vsEntry := spec.VertexEntry
	if vsEntry == "" {
		vsEntry = "vs_main"
	}
	fsEntry := spec.FragmentEntry
	if fsEntry == "" {
		fsEntry = "fs_main"
	}
	target := spec.TargetFormat
	if target == wgpu.TextureFormatUndefined {
		target = g.Format()
	}
	samples := spec.SampleCount
	if samples == 0 {
		samples = 1
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label: spec.Label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: vsEntry,
			Buffers:    spec.VertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: fsEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    target,
					Blend:     spec.Blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  spec.Topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  spec.CullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  samples,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
	if spec.DepthTest {
		depthFormat := spec.DepthFormat
		if depthFormat == wgpu.TextureFormatUndefined {
			depthFormat = wgpu.TextureFormatDepth24Plus
		}
		desc.DepthStencil = &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: spec.DepthWrite,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}

	pipeline, err := g.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("render pipeline %q: %w", spec.Label, err)
	}
	return pipeline, nil
}

// FloatLayout is a single-attribute vertex buffer of float32 components.
func FloatLayout(location uint32, components int) wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(components * 4),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{{
			ShaderLocation: location,
			Offset:         0,
			Format:         parseFormat("float" + strconv.Itoa(components)),
		}},
	}
}

// VertexLayoutOf derives an interleaved layout from struct fields tagged
// `gekko:"layout" location:"N" format:"floatN"`. Untagged fields still
// advance the offset.
func VertexLayoutOf(vertexType any) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("Vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("gekko") {
			format := parseFormat(field.Tag.Get("format"))
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if nil != err {
				panic(err)
			}

			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}
}

func (g *GpuState) CreateVertexBuffer(label string, data any) (*wgpu.Buffer, error) {
	return g.createBufferInit(label, data, parseBufferUsages("vertex,copy_dst"))
}

func (g *GpuState) CreateIndexBuffer(label string, indices []uint32) (*wgpu.Buffer, error) {
	return g.createBufferInit(label, indices, parseBufferUsages("index,copy_dst"))
}

// CreateUniformBuffer allocates size bytes, rounded up to 16.
func (g *GpuState) CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	size = (size + 15) &^ 15
	buf, err := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: parseBufferUsages("uniform,copy_dst"),
	})
	if err != nil {
		return nil, fmt.Errorf("uniform buffer %q: %w", label, err)
	}
	return buf, nil
}

// UniformSize is the packed byte size of v as WriteUniform would upload it.
func UniformSize(v any) uint64 {
	return uint64(len(toBufferBytes(v)))
}

// WriteUniform overwrites buf at offset with the packed bytes of data.
func (g *GpuState) WriteUniform(buf *wgpu.Buffer, offset uint64, data any) error {
	return g.queue.WriteBuffer(buf, offset, toBufferBytes(data))
}

func (g *GpuState) createBufferInit(label string, data any, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	contents := toBufferBytes(data)
	if len(contents) == 0 {
		return nil, fmt.Errorf("buffer %q: no data", label)
	}
	buffer, err := g.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return nil, fmt.Errorf("buffer %q: %w", label, err)
	}
	return buffer, nil
}

// BindEntry is one resource for CreateBindGroup; exactly one of the
// pointer fields is set.
type BindEntry struct {
	Binding uint32
	Buffer  *wgpu.Buffer
	Sampler *wgpu.Sampler
	View    *wgpu.TextureView
}

func BufferEntry(binding uint32, buf *wgpu.Buffer) BindEntry {
	return BindEntry{Binding: binding, Buffer: buf}
}

func SamplerEntry(binding uint32, s *wgpu.Sampler) BindEntry {
	return BindEntry{Binding: binding, Sampler: s}
}

func TextureEntry(binding uint32, v *wgpu.TextureView) BindEntry {
	return BindEntry{Binding: binding, View: v}
}

func (g *GpuState) CreateBindGroup(pipeline *wgpu.RenderPipeline, group uint32, entries ...BindEntry) (*wgpu.BindGroup, error) {
	bindGroupLayout := pipeline.GetBindGroupLayout(group)
	defer bindGroupLayout.Release()

	bindings := make([]wgpu.BindGroupEntry, 0, len(entries))
	for _, e := range entries {
		entry := wgpu.BindGroupEntry{Binding: e.Binding}
		switch {
		case e.Buffer != nil:
			entry.Buffer = e.Buffer
			entry.Size = wgpu.WholeSize
		case e.Sampler != nil:
			entry.Sampler = e.Sampler
		case e.View != nil:
			entry.TextureView = e.View
		default:
			return nil, fmt.Errorf("bind group %d: binding %d has no resource", group, e.Binding)
		}
		bindings = append(bindings, entry)
	}

	bindGroup, err := g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  bindGroupLayout,
		Entries: bindings,
	})
	if err != nil {
		return nil, fmt.Errorf("bind group %d: %w", group, err)
	}
	return bindGroup, nil
}
