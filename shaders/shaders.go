package shaders

import (
	"embed"
)

// FS holds every WGSL listing, addressed by file name.
//
//go:embed *.wgsl
var FS embed.FS
