package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestSystem() (*TickSystem, *fakeClock) {

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	ts := NewTickSystemWithClock(clock.Now)
	ts.RegisterListener(TickFrame)
	ts.RegisterListener(TickDraw)
	ts.RegisterListener(TickRender)
	ts.RegisterListener(TickRenderOverlay)

	return ts, clock
}

func record(ts *TickSystem, clock *fakeClock, id TickID, d time.Duration) {
	ts.StartTick(id)
	clock.Advance(d)
	ts.EndTick(id)
}

func TestRegisterIsIdempotent(t *testing.T) {

	ts, clock := newTestSystem()
	record(ts, clock, TickDraw, time.Millisecond)

	ts.RegisterListener(TickDraw)

	s, ok := ts.History(TickDraw)
	require.True(t, ok)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, []TickID{TickFrame, TickDraw, TickRender, TickRenderOverlay}, ts.Listeners())
}

func TestEndTickNoOps(t *testing.T) {

	ts, clock := newTestSystem()

	// Unregistered id
	assert.NotPanics(t, func() {
		ts.StartTick("Nope")
		ts.EndTick("Nope")
	})
	assert.Equal(t, PhaseUnregistered, ts.Phase("Nope"))
	_, ok := ts.History("Nope")
	assert.False(t, ok)

	// Registered but never started
	ts.EndTick(TickRender)
	s, _ := ts.History(TickRender)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, PhaseInitialized, ts.Phase(TickRender))

	// Ended twice
	record(ts, clock, TickRender, 2*time.Millisecond)
	clock.Advance(time.Second)
	ts.EndTick(TickRender)

	s, _ = ts.History(TickRender)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 2*time.Millisecond, s.Sum)
	assert.Equal(t, PhaseDone, ts.Phase(TickRender))

	// Other phases are untouched
	for _, id := range []TickID{TickFrame, TickDraw, TickRenderOverlay} {
		s, _ := ts.History(id)
		assert.Equal(t, newStats(), s, string(id))
	}
}

func TestStatistics(t *testing.T) {

	ts, clock := newTestSystem()
	durations := []time.Duration{
		4 * time.Millisecond,
		1 * time.Millisecond,
		7 * time.Millisecond,
		2 * time.Millisecond,
		6 * time.Millisecond,
	}

	for _, d := range durations {
		record(ts, clock, TickDraw, d)
	}

	s, ok := ts.History(TickDraw)
	require.True(t, ok)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 20*time.Millisecond, s.Sum)
	assert.Equal(t, 4*time.Millisecond, s.Average())
	assert.Equal(t, 1*time.Millisecond, s.Min)
	assert.Equal(t, 7*time.Millisecond, s.Max)
	assert.Equal(t, 6*time.Millisecond, s.Last)
	assert.Equal(t, 3*time.Millisecond, s.BelowAverage())
	assert.Equal(t, 3*time.Millisecond, s.AboveAverage())

	assert.Equal(t, "( 5) Draw    lasted 6.000 ms, avg ± 4.000 (-3.000, +3.000)", ts.Debug(TickDraw))
}

func TestEmptyStats(t *testing.T) {

	s := newStats()
	assert.Equal(t, time.Duration(0), s.Average())
	assert.Equal(t, time.Duration(0), s.BelowAverage())
	assert.Equal(t, time.Duration(0), s.AboveAverage())
	assert.Equal(t, statsMinSeed, s.Min)

	ts, _ := newTestSystem()
	assert.Equal(t, "( 0) Render  no samples", ts.Debug(TickRender))
	assert.Equal(t, "", ts.Debug("Nope"))
}

func TestDebugIteration(t *testing.T) {

	ts, clock := newTestSystem()
	record(ts, clock, TickFrame, 10*time.Millisecond)
	record(ts, clock, TickFrame, 20*time.Millisecond)

	assert.Equal(t, "  2 FPS with, avg ± 15.000 ms (-5.000, +5.000)", ts.DebugIteration())
}

func TestDurationSinceFrameStart(t *testing.T) {

	ts, clock := newTestSystem()

	_, ok := ts.DurationSinceFrameStart()
	assert.False(t, ok)

	ts.StartTick(TickFrame)
	clock.Advance(5 * time.Millisecond)

	d, ok := ts.DurationSinceFrameStart()
	require.True(t, ok)
	assert.Equal(t, 5*time.Millisecond, d)

	ts.EndTick(TickFrame)
	_, ok = ts.DurationSinceFrameStart()
	assert.False(t, ok)
}

func TestDT(t *testing.T) {

	ts, clock := newTestSystem()
	assert.Equal(t, float32(0), ts.DT())

	record(ts, clock, TickFrame, 16*time.Millisecond)
	assert.InDelta(t, 0.016, ts.DT(), 1e-6)
}

func TestResetCadence(t *testing.T) {

	ts, clock := newTestSystem()

	// 0.4 + 0.4 = 0.8, then 0.2 brings the budget to exactly zero which is not negative yet
	steps := []struct {
		d           time.Duration
		shouldReset bool
	}{
		{400 * time.Millisecond, false},
		{400 * time.Millisecond, false},
		{200 * time.Millisecond, false},
		{1 * time.Millisecond, true},
	}

	for _, step := range steps {
		record(ts, clock, TickFrame, step.d)
		record(ts, clock, TickDraw, step.d/2)
		ts.UpdateTime()
		assert.Equal(t, step.shouldReset, ts.ShouldReset())
	}

	ts.Reset()
	assert.False(t, ts.ShouldReset())

	for _, id := range ts.Listeners() {
		s, ok := ts.History(id)
		require.True(t, ok)
		assert.Equal(t, 0, s.Count, string(id))
		assert.Equal(t, time.Duration(0), s.Sum, string(id))
		assert.Equal(t, statsMinSeed, s.Min, string(id))
		assert.Equal(t, time.Duration(0), s.Max, string(id))
	}

	// Registration survives the reset
	record(ts, clock, TickDraw, time.Millisecond)
	s, _ := ts.History(TickDraw)
	assert.Equal(t, 1, s.Count)

	// The window that just completed had 4 frames
	assert.Equal(t, 4, ts.FPS())
}

func TestUpdateTimeWithoutFrames(t *testing.T) {

	ts, _ := newTestSystem()
	ts.UpdateTime()
	assert.False(t, ts.ShouldReset())
}

func TestResetKeepsRunningPhase(t *testing.T) {

	ts, clock := newTestSystem()
	ts.StartTick(TickFrame)
	ts.Reset()
	clock.Advance(3 * time.Millisecond)
	ts.EndTick(TickFrame)

	s, _ := ts.History(TickFrame)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 3*time.Millisecond, s.Last)
}
