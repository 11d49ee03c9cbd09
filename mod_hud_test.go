package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHud_NilSafe(t *testing.T) {
	var hud *Hud
	assert.NotPanics(t, func() { hud.SetLines("level 3") })
	assert.Nil(t, hud.Lines())
}

func TestHud_SetLinesDirty(t *testing.T) {
	hud := &Hud{}
	hud.SetLines("a", "b")
	assert.True(t, hud.dirty)
	assert.Equal(t, []string{"a", "b"}, hud.Lines())

	hud.dirty = false
	hud.SetLines("a", "b")
	assert.False(t, hud.dirty, "unchanged lines do not trigger a rebuild")

	hud.SetLines("a")
	assert.True(t, hud.dirty)
	assert.Equal(t, []string{"a"}, hud.Lines())
}

func TestHud_Items(t *testing.T) {
	hud := &Hud{Title: "w04"}
	hud.SetLines("level 3", "kd 1.00")

	items := hud.Items(20)
	require.Len(t, items, 6)
	assert.Equal(t, "w04", items[1].Text)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, items[1].Color)
	assert.Equal(t, items[0].Text, items[1].Text)
	assert.Equal(t, float32(hudMargin), items[1].Position[1])
	assert.Equal(t, float32(hudMargin+40), items[5].Position[1])
	assert.Equal(t, "kd 1.00", items[5].Text)

	assert.Empty(t, (&Hud{}).Items(20))
}

func TestHudModule_WithoutGpu(t *testing.T) {
	app, err := NewAppBuilder().UseModule(HudModule{Title: "w01"}).Build()
	require.NoError(t, err)

	hud, ok := Resource[Hud](app)
	require.True(t, ok)
	assert.Equal(t, "w01", hud.Title)
	_, ok = Resource[hudState](app)
	assert.False(t, ok)
}

func TestHudToggleSystem(t *testing.T) {
	hud := &Hud{}
	input := &Input{}
	updateKey(input, KeyH, true)
	hudToggleSystem(input, hud)
	assert.True(t, hud.Hidden)

	updateKey(input, KeyH, true)
	hudToggleSystem(input, hud)
	assert.True(t, hud.Hidden, "holding H does not flicker")
}
