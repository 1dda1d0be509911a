package settings

import (
	"time"

	"github.com/bloeys/nplay/lights"
	"github.com/bloeys/nplay/timing"
)

// Settings is shared with the debug overlay, which reads and writes it every
// frame. Nothing here is validated.
type Settings struct {
	BackgroundColor [4]float32
	LightBulbColors [lights.MaxPointLights][4]float32

	// FrameTime is the last frame duration, shown by the overlay
	FrameTime time.Duration
	FPS       int

	// UpdateDelay is how far into the running frame the update started,
	// mostly event polling
	UpdateDelay time.Duration

	Quit      bool
	OpenDebug bool
}

func Default() Settings {

	s := Settings{
		BackgroundColor: [4]float32{0, 0, 0, 1},
	}

	for i := range s.LightBulbColors {
		s.LightBulbColors[i] = [4]float32{1, 1, 1, 1}
	}

	return s
}

// UpdateTimings copies the overlay readouts from ts. Call it from inside the frame phase.
func (s *Settings) UpdateTimings(ts *timing.TickSystem) {

	s.FPS = ts.FPS()
	if frame, ok := ts.History(timing.TickFrame); ok {
		s.FrameTime = frame.Last
	}

	s.UpdateDelay, _ = ts.DurationSinceFrameStart()
}
