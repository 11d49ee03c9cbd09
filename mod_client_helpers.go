package gekko

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float", "float1":
		return wgpu.VertexFormatFloat32
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

func wgpuWrapMode(mode string) wgpu.AddressMode {
	switch mode {
	case "wrap", "repeat":
		return wgpu.AddressModeRepeat
	case "mirror":
		return wgpu.AddressModeMirrorRepeat
	case "clamp":
		return wgpu.AddressModeClampToEdge
	default:
		panic(fmt.Sprintf("Unknown wrap mode: %s", mode))
	}
}

func wgpuFilterMode(mode string) wgpu.FilterMode {
	switch mode {
	case "nearest":
		return wgpu.FilterModeNearest
	case "linear":
		return wgpu.FilterModeLinear
	default:
		panic(fmt.Sprintf("Unknown filter mode: %s", mode))
	}
}

func wgpuMipmapFilterMode(mode string) wgpu.MipmapFilterMode {
	switch mode {
	case "nearest", "":
		return wgpu.MipmapFilterModeNearest
	case "linear":
		return wgpu.MipmapFilterModeLinear
	default:
		panic(fmt.Sprintf("Unknown mipmap filter mode: %s", mode))
	}
}

func parseBufferUsages(usages string) wgpu.BufferUsage {
	usageMap := map[string]wgpu.BufferUsage{
		"mapread":  wgpu.BufferUsageMapRead,
		"mapwrite": wgpu.BufferUsageMapWrite,
		"copy_src": wgpu.BufferUsageCopySrc,
		"copy_dst": wgpu.BufferUsageCopyDst,
		"index":    wgpu.BufferUsageIndex,
		"vertex":   wgpu.BufferUsageVertex,
		"uniform":  wgpu.BufferUsageUniform,
		"storage":  wgpu.BufferUsageStorage,
		"indirect": wgpu.BufferUsageIndirect,
	}

	var result wgpu.BufferUsage
	parts := strings.Split(strings.ToLower(usages), ",")

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if usage, ok := usageMap[part]; ok {
			result |= usage
		}
	}

	return result
}

// toBufferBytes packs data little-endian for upload. Float and index slices
// and matrices are reinterpreted in place; everything else goes through
// readUniformsBytes.
func toBufferBytes(data any) []byte {
	switch v := data.(type) {
	case nil:
		return nil
	case []byte:
		return v
	case []float32:
		return sliceBytes(v)
	case []uint32:
		return sliceBytes(v)
	case []mgl32.Vec4:
		return sliceBytes(v)
	case []mgl32.Vec3:
		return sliceBytes(v)
	case []mgl32.Vec2:
		return sliceBytes(v)
	case mgl32.Mat4:
		return sliceBytes(v[:])
	case *mgl32.Mat4:
		return sliceBytes(v[:])
	}

	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			panic("nil ptr")
		}
		val = val.Elem()
	}
	buf := new(bytes.Buffer)
	readUniformsBytes(val, buf)
	return buf.Bytes()
}

func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

func readUniformsBytes(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			readUniformsBytes(elem, buf)
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			readUniformsBytes(field.Field(i), buf)
		}

	case reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	case reflect.Bool:
		// WGSL has no host-shareable bool; u32 in its place
		var u uint32
		if field.Bool() {
			u = 1
		}
		_ = binary.Write(buf, binary.LittleEndian, u)

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field.Type()))
	}
}
