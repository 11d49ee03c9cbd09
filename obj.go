package gekko

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshData is an indexed triangle list with vec4 attributes, ready for
// CreateVertexBuffer.
type MeshData struct {
	Positions []mgl32.Vec4
	Normals   []mgl32.Vec4
	Colors    []mgl32.Vec4
	Indices   []uint32
}

func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

type OBJOptions struct {
	// uniform scale applied to positions; zero means 1
	Scale float32
	// flip triangle winding
	Reverse bool
}

// LoadOBJFile reads path and, when it exists, the .mtl file next to it.
func LoadOBJFile(path string, opts OBJOptions) (*MeshData, error) {
	objData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}
	mtlPath := strings.TrimSuffix(path, ".obj") + ".mtl"
	mtlData, err := os.ReadFile(mtlPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load mesh materials: %w", err)
	}
	mesh, err := DecodeOBJ(bytes.NewReader(objData), bytes.NewReader(mtlData), opts)
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", path, err)
	}
	return mesh, nil
}

var defaultMeshColor = mgl32.Vec4{1, 1, 1, 1}

type objCorner struct {
	v, n     int
	material string
}

// DecodeOBJ triangulates every face as a fan around its first corner.
// Corners sharing position, normal and material are merged. Faces without
// normals get area-weighted smooth normals from their neighbours.
func DecodeOBJ(objR, mtlR io.Reader, opts OBJOptions) (*MeshData, error) {
	var mtlData []byte
	if mtlR != nil {
		var err error
		if mtlData, err = io.ReadAll(mtlR); err != nil {
			return nil, fmt.Errorf("read mtl: %w", err)
		}
	}
	// usemtl creates an empty material for every name it sees, declared
	// or not; only newmtl entries carry a real Kd
	declared := declaredMaterials(mtlData)
	dec, err := obj.DecodeReader(objR, bytes.NewReader(mtlData))
	if err != nil {
		return nil, fmt.Errorf("decode obj: %w", err)
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	positionCount := len(dec.Vertices) / 3
	normalCount := len(dec.Normals) / 3
	position := func(i int) mgl32.Vec3 {
		return mgl32.Vec3{dec.Vertices[3*i], dec.Vertices[3*i+1], dec.Vertices[3*i+2]}
	}

	mesh := &MeshData{}
	corners := make(map[objCorner]uint32)
	// accumulated face normals per position, for corners without one
	smooth := make([]mgl32.Vec3, positionCount)
	var needSmooth []uint32
	smoothOf := make(map[uint32]int)

	emit := func(c objCorner) uint32 {
		if idx, ok := corners[c]; ok {
			return idx
		}
		idx := uint32(len(mesh.Positions))
		p := position(c.v).Mul(scale)
		mesh.Positions = append(mesh.Positions, p.Vec4(1))

		normal := mgl32.Vec4{}
		if c.n >= 0 {
			normal = mgl32.Vec3{dec.Normals[3*c.n], dec.Normals[3*c.n+1], dec.Normals[3*c.n+2]}.Normalize().Vec4(0)
		} else {
			needSmooth = append(needSmooth, idx)
			smoothOf[idx] = c.v
		}
		mesh.Normals = append(mesh.Normals, normal)

		color := defaultMeshColor
		if m, ok := dec.Materials[c.material]; ok && m != nil && declared[c.material] {
			color = mgl32.Vec4{m.Diffuse.R, m.Diffuse.G, m.Diffuse.B, 1}
		}
		mesh.Colors = append(mesh.Colors, color)

		corners[c] = idx
		return idx
	}

	for _, object := range dec.Objects {
		for _, face := range object.Faces {
			if len(face.Vertices) < 3 {
				continue
			}
			cs := make([]objCorner, len(face.Vertices))
			for i, v := range face.Vertices {
				if v < 0 || v >= positionCount {
					return nil, fmt.Errorf("face in %q references vertex %d of %d", object.Name, v+1, positionCount)
				}
				n := -1
				if i < len(face.Normals) && face.Normals[i] >= 0 && face.Normals[i] < normalCount {
					n = face.Normals[i]
				}
				cs[i] = objCorner{v: v, n: n, material: face.Material}
			}

			for i := 1; i+1 < len(cs); i++ {
				a, b, c := cs[0], cs[i], cs[i+1]
				if opts.Reverse {
					b, c = c, b
				}
				faceNormal := position(b.v).Sub(position(a.v)).Cross(position(c.v).Sub(position(a.v)))
				for _, corner := range [3]objCorner{a, b, c} {
					if corner.n < 0 {
						smooth[corner.v] = smooth[corner.v].Add(faceNormal)
					}
				}
				mesh.Indices = append(mesh.Indices, emit(a), emit(b), emit(c))
			}
		}
	}

	for _, idx := range needSmooth {
		n := smooth[smoothOf[idx]]
		if n.Len() > 0 {
			n = n.Normalize()
		}
		mesh.Normals[idx] = n.Vec4(0)
	}

	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("decode obj: no faces")
	}
	return mesh, nil
}

// declaredMaterials lists the names defined by newmtl statements.
func declaredMaterials(mtl []byte) map[string]bool {
	names := make(map[string]bool)
	for _, line := range strings.Split(string(mtl), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "newmtl" {
			names[fields[1]] = true
		}
	}
	return names
}
