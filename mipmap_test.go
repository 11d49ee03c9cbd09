package gekko

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMipChain_Sizes(t *testing.T) {
	chain := MipChain(image.NewNRGBA(image.Rect(0, 0, 64, 16)))
	require.Len(t, chain, MipLevelCount(64, 16))
	want := [][2]int{{64, 16}, {32, 8}, {16, 4}, {8, 2}, {4, 1}, {2, 1}, {1, 1}}
	for i, level := range chain {
		assert.Equal(t, want[i][0], level.Bounds().Dx(), "level %d", i)
		assert.Equal(t, want[i][1], level.Bounds().Dy(), "level %d", i)
	}
}

func TestMipLevelCount(t *testing.T) {
	assert.Equal(t, 1, MipLevelCount(1, 1))
	assert.Equal(t, 7, MipLevelCount(64, 64))
	assert.Equal(t, 7, MipLevelCount(100, 3))
}

func TestMipChain_BoxAverage(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	base.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	base.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})
	base.SetNRGBA(0, 1, color.NRGBA{A: 255})
	base.SetNRGBA(1, 1, color.NRGBA{A: 255})

	chain := MipChain(base)
	require.Len(t, chain, 2)
	assert.Equal(t, color.NRGBA{R: 128, A: 255}, chain[1].NRGBAAt(0, 0))
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(64, 8)
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, black, img.NRGBAAt(0, 0))
	assert.Equal(t, black, img.NRGBAAt(7, 7))
	assert.Equal(t, white, img.NRGBAAt(8, 0))
	assert.Equal(t, white, img.NRGBAAt(0, 8))
	assert.Equal(t, black, img.NRGBAAt(8, 8))

	// one texel per tile at 8x8, two by two tiles at 4x4
	chain := MipChain(img)
	assert.Equal(t, black, chain[3].NRGBAAt(0, 0))
	mid := chain[4].NRGBAAt(0, 0)
	assert.InDelta(t, 128, int(mid.R), 1)
}

func TestToNRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(2, 3, 6, 5))
	gray.SetGray(2, 3, color.Gray{Y: 200})
	out := ToNRGBA(gray)
	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, out.NRGBAAt(0, 0))

	same := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	assert.Same(t, same, ToNRGBA(same))
}

func TestToNRGBA_KeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	translucent := color.NRGBA{R: 200, G: 100, B: 50, A: 128}
	src.SetNRGBA(1, 1, translucent)

	// a sub-image has a non-zero origin and a wider stride
	out := ToNRGBA(src.SubImage(image.Rect(1, 1, 3, 3)))
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, translucent, out.NRGBAAt(0, 0))
	assert.Equal(t, []uint8{200, 100, 50, 128}, out.Pix[:4])
}

func TestMipChain_TranslucentStaysStraight(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			base.SetNRGBA(x, y, color.NRGBA{R: 255, A: 64})
		}
	}
	assert.Equal(t, color.NRGBA{R: 255, A: 64}, MipChain(base)[1].NRGBAAt(0, 0))
}
