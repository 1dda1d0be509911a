package nplayimgui

import (
	"fmt"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/nplay/settings"
)

// DrawSettings shows the overlay window and writes the user's edits back into st.
// Timings are only shown while the debug section is open.
func DrawSettings(st *settings.Settings) {

	imgui.Begin("Playground")
	defer imgui.End()

	imgui.Checkbox("Debug", &st.OpenDebug)
	if st.OpenDebug {
		imgui.LabelText("FPS", fmt.Sprint(st.FPS))
		imgui.LabelText("Frame", fmt.Sprintf("%.3f ms", float64(st.FrameTime.Microseconds())/1000))
		imgui.LabelText("Update Delay", fmt.Sprintf("%.3f ms", float64(st.UpdateDelay.Microseconds())/1000))
	}

	imgui.Spacing()
	imgui.Text("Background")
	imgui.ColorEdit4("Background Color", &st.BackgroundColor)

	imgui.Spacing()
	imgui.Text("Light Bulbs")
	for i := range st.LightBulbColors {
		imgui.ColorEdit4(fmt.Sprintf("Bulb %d", i), &st.LightBulbColors[i])
	}

	imgui.Spacing()
	if imgui.Button("Quit") {
		st.Quit = true
	}
}
