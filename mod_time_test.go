package gekko

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &Time{Time: start, Start: start}

	advanceTime(clock, start.Add(16*time.Millisecond))
	assert.Equal(t, 16*time.Millisecond, clock.Dt)
	assert.Equal(t, uint64(1), clock.Frame)

	advanceTime(clock, start.Add(50*time.Millisecond))
	assert.Equal(t, 34*time.Millisecond, clock.Dt)
	assert.Equal(t, 50*time.Millisecond, clock.Elapsed)
	assert.Equal(t, uint64(2), clock.Frame)
	assert.InDelta(t, 0.034, clock.DtSeconds(), 1e-6)
	assert.InDelta(t, 0.05, clock.ElapsedSeconds(), 1e-6)
}

func TestTimeModule(t *testing.T) {
	app, err := NewAppBuilder().UseModule(TimeModule{}).Build()
	assert.NoError(t, err)
	app.Step()
	app.Step()

	clock, ok := Resource[Time](app)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), clock.Frame)
	assert.GreaterOrEqual(t, clock.Elapsed, clock.Dt)
}
