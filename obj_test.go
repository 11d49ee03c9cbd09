package gekko

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# unit quad in the xy plane
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func TestDecodeOBJ_QuadFan(t *testing.T) {
	mesh, err := DecodeOBJ(strings.NewReader(quadOBJ), nil, OBJOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	require.Len(t, mesh.Positions, 4)
	assert.Equal(t, mgl32.Vec4{1, 1, 0, 1}, mesh.Positions[2])
	for _, n := range mesh.Normals {
		assert.InDelta(t, 1, n[2], 1e-6, "smooth normal of a flat ccw quad is +z")
		assert.Zero(t, n[3])
	}
}

func TestDecodeOBJ_ScaleAndReverse(t *testing.T) {
	mesh, err := DecodeOBJ(strings.NewReader(quadOBJ), nil, OBJOptions{Scale: 0.5, Reverse: true})
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec4{0.5, 0.5, 0, 1}, mesh.Positions[mesh.Indices[1]])
	for _, n := range mesh.Normals {
		assert.InDelta(t, -1, n[2], 1e-6)
	}
}

func TestDecodeOBJ_ExplicitNormals(t *testing.T) {
	src := `o tri
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 2
f 1//1 2//1 3//1
`
	mesh, err := DecodeOBJ(strings.NewReader(src), nil, OBJOptions{})
	require.NoError(t, err)
	for _, n := range mesh.Normals {
		assert.Equal(t, mgl32.Vec4{0, 0, 1, 0}, n)
	}
}

func TestDecodeOBJ_MaterialColor(t *testing.T) {
	objSrc := `mtllib tri.mtl
o tri
v 0 0 0
v 1 0 0
v 0 1 0
usemtl red
f 1 2 3
`
	mtlSrc := `newmtl red
Kd 1 0 0
`
	mesh, err := DecodeOBJ(strings.NewReader(objSrc), strings.NewReader(mtlSrc), OBJOptions{})
	require.NoError(t, err)
	for _, c := range mesh.Colors {
		assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, c)
	}
}

const redTriangleOBJ = `mtllib tri.mtl
o tri
v 0 0 0
v 1 0 0
v 0 1 0
usemtl red
f 1 2 3
`

func TestDecodeOBJ_UndeclaredMaterialIsWhite(t *testing.T) {
	mesh, err := DecodeOBJ(strings.NewReader(redTriangleOBJ), nil, OBJOptions{})
	require.NoError(t, err)
	for _, c := range mesh.Colors {
		assert.Equal(t, defaultMeshColor, c, "usemtl without a material library")
	}

	mesh, err = DecodeOBJ(strings.NewReader(redTriangleOBJ), strings.NewReader("newmtl other\nKd 0 0 1\n"), OBJOptions{})
	require.NoError(t, err)
	for _, c := range mesh.Colors {
		assert.Equal(t, defaultMeshColor, c, "usemtl naming a material the library lacks")
	}
}

func TestLoadOBJFile_MissingMTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(redTriangleOBJ), 0o644))

	mesh, err := LoadOBJFile(path, OBJOptions{})
	require.NoError(t, err)
	assert.Equal(t, defaultMeshColor, mesh.Colors[0])

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "tri.mtl"), []byte("newmtl red\nKd 1 0 0\n"), 0o644))
	mesh, err = LoadOBJFile(path, OBJOptions{})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, mesh.Colors[0])
}

func TestDeclaredMaterials(t *testing.T) {
	names := declaredMaterials([]byte("# lib\nnewmtl red\nKd 1 0 0\n  newmtl  wood \nusemtl blue\n"))
	assert.Equal(t, map[string]bool{"red": true, "wood": true}, names)
	assert.Empty(t, declaredMaterials(nil))
}

func TestDecodeOBJ_NoFaces(t *testing.T) {
	_, err := DecodeOBJ(strings.NewReader("o empty\nv 0 0 0\n"), nil, OBJOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no faces")
}

func TestLoadOBJFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	mesh, err := LoadOBJFile(path, OBJOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.TriangleCount())

	_, err = LoadOBJFile(filepath.Join(dir, "missing.obj"), OBJOptions{})
	assert.Error(t, err)
}
