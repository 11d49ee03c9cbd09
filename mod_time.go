package gekko

import (
	"time"
)

type Time struct {
	Time    time.Time
	Start   time.Time
	Dt      time.Duration
	Elapsed time.Duration
	Frame   uint64
}

// DtSeconds is the last frame duration in seconds.
func (t *Time) DtSeconds() float32 {
	return float32(t.Dt.Seconds())
}

// ElapsedSeconds is the time since the module was installed.
func (t *Time) ElapsedSeconds() float32 {
	return float32(t.Elapsed.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Time:  now,
		Start: now,
		Dt:    0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(PreUpdate),
	)
}

func timeSystem(timeResource *Time) {
	advanceTime(timeResource, time.Now())
}

func advanceTime(t *Time, now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Elapsed = now.Sub(t.Start)
	t.Frame++
}
