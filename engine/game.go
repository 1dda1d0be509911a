package engine

import (
	"github.com/bloeys/nplay/logging"
	"github.com/bloeys/nplay/timing"
	nplayimgui "github.com/bloeys/nplay/ui/imgui"
)

type Game interface {
	Init()

	// Update runs once per frame after input was polled
	Update()
	Render()
	FrameEnd()
	DeInit()
}

var (
	isRunning = false
)

// Run drives g until Quit is called. Each iteration is timed as the Frame
// phase, with Draw (update), Render (scene) and OverlayRender (imgui) inside it.
// When reportTicks is set the phase timings are logged about once a second.
func Run(g Game, w *Window, ui nplayimgui.ImguiInfo, reportTicks bool) {

	isRunning = true

	ticks := w.Ticks
	ticks.RegisterListener(timing.TickFrame)
	ticks.RegisterListener(timing.TickDraw)
	ticks.RegisterListener(timing.TickRender)
	ticks.RegisterListener(timing.TickRenderOverlay)

	g.Init()

	// Simulate a resize so the game gets the initial size
	w.handleWindowResize()

	for isRunning {

		ticks.StartTick(timing.TickFrame)

		w.handleInputs()

		width, height := w.SDLWin.GetSize()
		fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
		ui.FrameStart(float32(width), float32(height), ticks.DT())

		ticks.StartTick(timing.TickDraw)
		g.Update()
		ticks.EndTick(timing.TickDraw)

		ticks.StartTick(timing.TickRender)
		g.Render()
		ticks.EndTick(timing.TickRender)

		ticks.StartTick(timing.TickRenderOverlay)
		ui.Render(float32(width), float32(height), fbWidth, fbHeight)
		ticks.EndTick(timing.TickRenderOverlay)

		w.SDLWin.GLSwap()
		g.FrameEnd()
		w.Rend.FrameEnd()

		ticks.EndTick(timing.TickFrame)
		ticks.UpdateTime()

		if ticks.ShouldReset() {

			if reportTicks {
				reportTickTimes(ticks)
			}

			ticks.Reset()
		}
	}

	g.DeInit()
}

func reportTickTimes(ticks *timing.TickSystem) {

	logging.InfoLog.Println(ticks.DebugIteration())
	for _, id := range ticks.Listeners() {
		if _, ok := ticks.History(id); ok {
			logging.InfoLog.Println(ticks.Debug(id))
		}
	}
}

func Quit() {
	isRunning = false
}
