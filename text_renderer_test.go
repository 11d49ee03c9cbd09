package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestTextRenderer(t *testing.T) *TextRenderer {
	t.Helper()
	tr, err := NewTextRenderer(goregular.TTF, 18)
	require.NoError(t, err)
	return tr
}

func TestNewTextRenderer_Atlas(t *testing.T) {
	tr := newTestTextRenderer(t)
	assert.Equal(t, textAtlasSize, tr.AtlasImage.Bounds().Dx())
	for r := rune(32); r < 127; r++ {
		assert.Contains(t, tr.Glyphs, r)
	}

	g := tr.Glyphs['W']
	assert.Greater(t, g.Size[0], float32(0))
	assert.Greater(t, g.Adv, float32(0))
	assert.Less(t, g.UVMin[0], g.UVMax[0])

	_, err := NewTextRenderer([]byte("not a font"), 18)
	assert.Error(t, err)
}

func TestNewTextRenderer_AtlasInkIsWhite(t *testing.T) {
	tr := newTestTextRenderer(t)
	covered, partial := 0, 0
	for i := 0; i < len(tr.AtlasImage.Pix); i += 4 {
		a := tr.AtlasImage.Pix[i+3]
		if a == 0 {
			continue
		}
		covered++
		if a < 255 {
			partial++
		}
		assert.Equal(t, []uint8{255, 255, 255}, tr.AtlasImage.Pix[i:i+3])
	}
	assert.Positive(t, covered)
	assert.Positive(t, partial, "antialiased edges")
}

func TestBuildVertices(t *testing.T) {
	tr := newTestTextRenderer(t)
	items := []TextItem{{Text: "ab", Position: [2]float32{10, 10}, Scale: 1, Color: [4]float32{1, 1, 1, 1}}}

	vertices := tr.BuildVertices(items, 800, 600)
	require.Len(t, vertices, 12)
	for _, v := range vertices {
		assert.GreaterOrEqual(t, v.Pos[0], float32(-1))
		assert.LessOrEqual(t, v.Pos[1], float32(1))
		assert.Equal(t, items[0].Color, v.Color)
	}
	// b sits to the right of a
	assert.Greater(t, vertices[6].Pos[0], vertices[0].Pos[0])

	assert.Nil(t, tr.BuildVertices(items, 0, 600))
	assert.Empty(t, tr.BuildVertices([]TextItem{{Text: "é", Scale: 1}}, 800, 600))
}

func TestMeasureText(t *testing.T) {
	tr := newTestTextRenderer(t)
	w1, _ := tr.MeasureText("level", 1)
	w2, _ := tr.MeasureText("level", 2)
	assert.Greater(t, w1, float32(0))
	assert.InDelta(t, 2*w1, w2, 1e-3)
	assert.Greater(t, tr.LineHeight(1), float32(0))
}
