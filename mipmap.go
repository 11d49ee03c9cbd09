package gekko

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// MipChain returns base followed by successively halved levels down to 1x1.
// Each level is a 2x2 box filter of the previous one.
func MipChain(base *image.NRGBA) []*image.NRGBA {
	levels := []*image.NRGBA{base}
	cur := base
	for cur.Bounds().Dx() > 1 || cur.Bounds().Dy() > 1 {
		w := max(cur.Bounds().Dx()/2, 1)
		h := max(cur.Bounds().Dy()/2, 1)
		next := image.NewNRGBA(image.Rect(0, 0, w, h))
		boxDownsample(next, cur)
		levels = append(levels, next)
		cur = next
	}
	return levels
}

// MipLevelCount is floor(log2(max(w, h))) + 1.
func MipLevelCount(width, height int) int {
	n := 1
	for s := max(width, height); s > 1; s /= 2 {
		n++
	}
	return n
}

func boxDownsample(dst, src *image.NRGBA) {
	sb := src.Bounds()
	db := dst.Bounds()
	if sb.Dx() != 2*db.Dx() || sb.Dy() != 2*db.Dy() {
		// odd sizes: let the resampler pick the footprint
		xdraw.ApproxBiLinear.Scale(dst, db, src, sb, draw.Src, nil)
		return
	}
	for y := 0; y < db.Dy(); y++ {
		for x := 0; x < db.Dx(); x++ {
			var r, g, b, a uint32
			for _, o := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
				c := src.NRGBAAt(sb.Min.X+2*x+o[0], sb.Min.Y+2*y+o[1])
				r += uint32(c.R)
				g += uint32(c.G)
				b += uint32(c.B)
				a += uint32(c.A)
			}
			dst.SetNRGBA(db.Min.X+x, db.Min.Y+y, color.NRGBA{
				R: uint8((r + 2) / 4),
				G: uint8((g + 2) / 4),
				B: uint8((b + 2) / 4),
				A: uint8((a + 2) / 4),
			})
		}
	}
}

// ToNRGBA converts any decoded image into a tightly packed, straight alpha
// image with origin (0,0), the layout an rgba8unorm upload expects.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok {
		if b.Min == (image.Point{}) && src.Stride == 4*b.Dx() {
			return src
		}
		out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			row := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:(y+1)*out.Stride], src.Pix[row:row+4*b.Dx()])
		}
		return out
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(out, out.Bounds(), img, b.Min, xdraw.Src)
	return out
}

// Checkerboard is a size x size image split into tiles x tiles squares,
// black at the origin tile and alternating with white.
func Checkerboard(size, tiles int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cell := max(size/max(tiles, 1), 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{A: 255}
			if (x/cell+y/cell)%2 == 1 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func SolidColor(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return img
}
