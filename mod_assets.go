package gekko

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gekko3d/gekko-labs/shaders"
)

type AssetId string

type ImageAsset struct {
	Name  string
	Image *image.NRGBA
}

type meshKey struct {
	name string
	opts OBJOptions
}

type AssetServer struct {
	// files are resolved against Root; shader overrides come from Root/shaders
	Root string

	shaders map[string]string
	images  map[AssetId]ImageAsset
	meshes  map[AssetId]*MeshData

	// decoded files by the name (and options) they were loaded with
	imageIds map[string]AssetId
	meshIds  map[meshKey]AssetId
}

type AssetServerModule struct {
	Root string
}

func (mod AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer(mod.Root))
}

func NewAssetServer(root string) *AssetServer {
	return &AssetServer{
		Root:    root,
		shaders: make(map[string]string),
		images:  make(map[AssetId]ImageAsset),
		meshes:  make(map[AssetId]*MeshData),

		imageIds: make(map[string]AssetId),
		meshIds:  make(map[meshKey]AssetId),
	}
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

func (server *AssetServer) path(name string) string {
	if filepath.IsAbs(name) || server.Root == "" {
		return name
	}
	return filepath.Join(server.Root, name)
}

// Shader returns the WGSL listing for name ("w04.wgsl"). A file of the same
// name under Root/shaders wins over the built-in source.
func (server *AssetServer) Shader(name string) (string, error) {
	if src, ok := server.shaders[name]; ok {
		return src, nil
	}
	data, err := os.ReadFile(server.path(filepath.Join("shaders", name)))
	if errors.Is(err, fs.ErrNotExist) {
		data, err = fs.ReadFile(shaders.FS, name)
	}
	if err != nil {
		return "", fmt.Errorf("shader %s: %w", name, err)
	}
	src := string(data)
	server.shaders[name] = src
	return src, nil
}

// LoadImage decodes a PNG, JPEG, BMP or WebP file into straight alpha
// RGBA8. A name is read from disk once; later calls share the decoded image.
func (server *AssetServer) LoadImage(name string) (AssetId, *image.NRGBA, error) {
	if id, ok := server.imageIds[name]; ok {
		if asset, ok := server.Image(id); ok {
			return id, asset.Image, nil
		}
	}
	file, err := os.Open(server.path(name))
	if err != nil {
		return "", nil, fmt.Errorf("load image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	pixels := ToNRGBA(img)

	id := makeAssetId()
	server.images[id] = ImageAsset{Name: name, Image: pixels}
	server.imageIds[name] = id
	return id, pixels, nil
}

func (server *AssetServer) Image(id AssetId) (ImageAsset, bool) {
	img, ok := server.images[id]
	return img, ok
}

// LoadMesh decodes an OBJ file (with its .mtl sibling when present). The
// same name and options give back the mesh decoded the first time.
func (server *AssetServer) LoadMesh(name string, opts OBJOptions) (AssetId, *MeshData, error) {
	key := meshKey{name: name, opts: opts}
	if id, ok := server.meshIds[key]; ok {
		if mesh, ok := server.Mesh(id); ok {
			return id, mesh, nil
		}
	}
	mesh, err := LoadOBJFile(server.path(name), opts)
	if err != nil {
		return "", nil, err
	}
	id := makeAssetId()
	server.meshes[id] = mesh
	server.meshIds[key] = id
	return id, mesh, nil
}

func (server *AssetServer) Mesh(id AssetId) (*MeshData, bool) {
	m, ok := server.meshes[id]
	return m, ok
}
