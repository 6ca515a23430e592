package ascent

import (
	"time"
)

const (
	DefaultFixedStep = time.Second / 60
	// DefaultMaxTicks bounds catch-up work after a long frame.
	DefaultMaxTicks = 5
)

// Time is the frame clock plus the fixed-step accumulator that drives the
// simulation stages.
type Time struct {
	Time          time.Time
	Dt            time.Duration
	FixedDt       time.Duration
	MaxTicks      int
	FrameInterval time.Duration
	Frames        uint64
	Ticks         uint64

	accumulator time.Duration
}

// FixedSeconds is the simulation step in seconds.
func (t *Time) FixedSeconds() float32 {
	return float32(t.FixedDt.Seconds())
}

// Elapsed is the simulated time so far.
func (t *Time) Elapsed() time.Duration {
	return time.Duration(t.Ticks) * t.FixedDt
}

// advance banks a frame into the accumulator and returns how many fixed
// ticks to run. Frames longer than a second are dropped.
func (t *Time) advance(frameDt time.Duration) int {
	t.Dt = frameDt
	t.Time = t.Time.Add(frameDt)
	t.Frames++
	if frameDt <= 0 || frameDt > time.Second || t.FixedDt <= 0 {
		return 0
	}

	t.accumulator += frameDt
	ticks := int(t.accumulator / t.FixedDt)
	if t.MaxTicks > 0 && ticks > t.MaxTicks {
		ticks = t.MaxTicks
		t.accumulator = 0
		return ticks
	}
	t.accumulator -= time.Duration(ticks) * t.FixedDt
	return ticks
}

type TimeModule struct {
	FixedStep time.Duration
	MaxTicks  int
	// FrameRate caps App.Run; zero runs unthrottled.
	FrameRate int
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	step := mod.FixedStep
	if step <= 0 {
		step = DefaultFixedStep
	}
	maxTicks := mod.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	var interval time.Duration
	if mod.FrameRate > 0 {
		interval = time.Second / time.Duration(mod.FrameRate)
	}

	cmd.AddResources(&Time{
		Time:          time.Now(),
		FixedDt:       step,
		MaxTicks:      maxTicks,
		FrameInterval: interval,
	})
}
