package timing

import (
	"fmt"
	"slices"
	"time"
)

type TickID string

const (
	TickFrame         TickID = "Frame"
	TickDraw          TickID = "Draw"
	TickRender        TickID = "Render"
	TickRenderOverlay TickID = "OverlayRender"
)

// ResetBudget is how much frame time accumulates before histories are reset,
// which gives roughly one report per second regardless of frame rate.
const ResetBudget = time.Second

// statsMinSeed is what Min starts at so the first sample always replaces it.
const statsMinSeed = 100 * time.Second

type PhaseState uint8

const (
	PhaseUnregistered PhaseState = iota
	PhaseInitialized
	PhaseRunning
	PhaseDone
)

func (p PhaseState) String() string {

	switch p {
	case PhaseInitialized:
		return "initialized"
	case PhaseRunning:
		return "running"
	case PhaseDone:
		return "done"
	default:
		return "unregistered"
	}
}

// Stats is the rolling history of one phase since the last reset.
type Stats struct {
	Count int
	Last  time.Duration
	Sum   time.Duration
	Min   time.Duration
	Max   time.Duration
}

func newStats() Stats {
	return Stats{Min: statsMinSeed}
}

func (s *Stats) add(d time.Duration) {

	s.Count++
	s.Last = d
	s.Sum += d

	if d < s.Min {
		s.Min = d
	}

	if d > s.Max {
		s.Max = d
	}
}

func (s *Stats) Average() time.Duration {

	if s.Count == 0 {
		return 0
	}

	return s.Sum / time.Duration(s.Count)
}

// BelowAverage is how far the fastest sample was under the average.
func (s *Stats) BelowAverage() time.Duration {

	if s.Count == 0 {
		return 0
	}

	return s.Average() - s.Min
}

// AboveAverage is how far the slowest sample was over the average.
func (s *Stats) AboveAverage() time.Duration {

	if s.Count == 0 {
		return 0
	}

	return s.Max - s.Average()
}

type phase struct {
	state PhaseState
	start time.Time
	stats Stats
}

// TickSystem measures named phases of the main loop. It is owned by the loop
// and passed explicitly to whatever needs timings; it is not safe for
// concurrent use.
type TickSystem struct {
	now       func() time.Time
	listeners []TickID
	phases    map[TickID]*phase

	remaining time.Duration

	// Frame count of the last completed reset window
	lastWindowFrames int
}

func NewTickSystem() *TickSystem {
	return NewTickSystemWithClock(time.Now)
}

// NewTickSystemWithClock uses now instead of time.Now, mostly so tests can drive time.
func NewTickSystemWithClock(now func() time.Time) *TickSystem {
	return &TickSystem{
		now:       now,
		phases:    make(map[TickID]*phase),
		remaining: ResetBudget,
	}
}

// RegisterListener makes id known. Registering twice does nothing.
func (ts *TickSystem) RegisterListener(id TickID) {

	if _, ok := ts.phases[id]; ok {
		return
	}

	ts.listeners = append(ts.listeners, id)
	ts.phases[id] = &phase{
		state: PhaseInitialized,
		stats: newStats(),
	}
}

// Listeners returns the registered ids in registration order.
func (ts *TickSystem) Listeners() []TickID {
	return slices.Clone(ts.listeners)
}

// StartTick (re)starts id. Unregistered ids are ignored.
func (ts *TickSystem) StartTick(id TickID) {

	p, ok := ts.phases[id]
	if !ok {
		return
	}

	p.state = PhaseRunning
	p.start = ts.now()
}

// EndTick records one sample for id if it is running, otherwise does nothing.
func (ts *TickSystem) EndTick(id TickID) {

	p, ok := ts.phases[id]
	if !ok || p.state != PhaseRunning {
		return
	}

	p.stats.add(ts.now().Sub(p.start))
	p.state = PhaseDone
}

func (ts *TickSystem) Phase(id TickID) PhaseState {

	p, ok := ts.phases[id]
	if !ok {
		return PhaseUnregistered
	}

	return p.state
}

// DurationSinceFrameStart is the time elapsed in the running frame phase. The bool is
// false when the frame phase isn't running.
func (ts *TickSystem) DurationSinceFrameStart() (time.Duration, bool) {

	p, ok := ts.phases[TickFrame]
	if !ok || p.state != PhaseRunning {
		return 0, false
	}

	return ts.now().Sub(p.start), true
}

func (ts *TickSystem) History(id TickID) (Stats, bool) {

	p, ok := ts.phases[id]
	if !ok {
		return Stats{}, false
	}

	return p.stats, true
}

// DT is the duration of the last completed frame in seconds, or 0 if there is none yet.
func (ts *TickSystem) DT() float32 {

	p, ok := ts.phases[TickFrame]
	if !ok || p.stats.Count == 0 {
		return 0
	}

	return float32(p.stats.Last.Seconds())
}

// FPS is the number of frames in the last completed reset window. Before the
// first window completes it is the frame count so far.
func (ts *TickSystem) FPS() int {

	if ts.lastWindowFrames > 0 {
		return ts.lastWindowFrames
	}

	p, ok := ts.phases[TickFrame]
	if !ok {
		return 0
	}

	return p.stats.Count
}

// UpdateTime charges the last frame duration against the reset budget.
func (ts *TickSystem) UpdateTime() {

	p, ok := ts.phases[TickFrame]
	if !ok || p.stats.Count == 0 {
		return
	}

	ts.remaining -= p.stats.Last
}

func (ts *TickSystem) ShouldReset() bool {
	return ts.remaining < 0
}

// Reset clears every history and reloads the budget. Registrations and
// running phases are kept.
func (ts *TickSystem) Reset() {

	if p, ok := ts.phases[TickFrame]; ok {
		ts.lastWindowFrames = p.stats.Count
	}

	for _, p := range ts.phases {
		p.stats = newStats()
	}

	ts.remaining = ResetBudget
}

// Debug is a one line summary of id, e.g.
//
//	(60) Render  lasted 1.234 ms, avg ± 1.100 (-0.200, +0.500)
func (ts *TickSystem) Debug(id TickID) string {

	p, ok := ts.phases[id]
	if !ok {
		return ""
	}

	s := &p.stats
	if s.Count == 0 {
		return fmt.Sprintf("(%2d) %-7s no samples", 0, id)
	}

	return fmt.Sprintf("(%2d) %-7s lasted %5.3f ms, avg ± %5.3f (-%5.3f, +%5.3f)",
		s.Count,
		id,
		ms(s.Last),
		ms(s.Average()),
		ms(s.BelowAverage()),
		ms(s.AboveAverage()),
	)
}

// DebugIteration summarizes the frame phase. Called right before a reset the
// sample count is the frame rate.
func (ts *TickSystem) DebugIteration() string {

	p, ok := ts.phases[TickFrame]
	if !ok {
		return ""
	}

	s := &p.stats
	return fmt.Sprintf("%3d FPS with, avg ± %5.3f ms (-%5.3f, +%5.3f)",
		s.Count,
		ms(s.Average()),
		ms(s.BelowAverage()),
		ms(s.AboveAverage()),
	)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
