package engine

import (
	"runtime"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/nplay/assert"
	"github.com/bloeys/nplay/input"
	"github.com/bloeys/nplay/renderer"
	"github.com/bloeys/nplay/timing"
	nplayimgui "github.com/bloeys/nplay/ui/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited = false

	isSdlButtonLeftDown   = false
	isSdlButtonMiddleDown = false
	isSdlButtonRightDown  = false
)

type Window struct {
	SDLWin         *sdl.Window
	GlCtx          sdl.GLContext
	EventCallbacks []func(sdl.Event)
	Rend           renderer.Render
	Input          *input.State
	Ticks          *timing.TickSystem

	// OnResize gets the drawable (framebuffer) size after the viewport was updated
	OnResize func(fbWidth, fbHeight int32)

	isFullscreen bool
}

func (w *Window) handleInputs() {

	imIo := imgui.CurrentIO()
	imguiCaptureMouse := imIo.WantCaptureMouse()
	imguiCaptureKeyboard := imIo.WantCaptureKeyboard()

	w.Input.EventLoopStart(imguiCaptureMouse, imguiCaptureKeyboard)

	// Once imgui has the device we never see its release events, so without
	// this a key held while clicking into the overlay would stay held.
	if imguiCaptureMouse {
		w.Input.ClearMouseState()
	}

	if imguiCaptureKeyboard {
		w.Input.ClearKeyboardState()
	}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		switch e := event.(type) {

		case *sdl.MouseWheelEvent:

			if !imguiCaptureMouse {
				w.Input.HandleMouseWheelEvent(e)
			}

			imIo.AddMouseWheelDelta(float32(e.X), float32(e.Y))

		case *sdl.KeyboardEvent:

			if !imguiCaptureKeyboard {
				w.Input.HandleKeyboardEvent(e)
			}

			isDown := e.Type == sdl.KEYDOWN
			imIo.AddKeyEvent(nplayimgui.SdlScancodeToImGuiKey(e.Keysym.Scancode), isDown)

			switch e.Keysym.Sym {
			case sdl.K_LCTRL, sdl.K_RCTRL:
				imIo.SetKeyCtrl(isDown)
			case sdl.K_LSHIFT, sdl.K_RSHIFT:
				imIo.SetKeyShift(isDown)
			case sdl.K_LALT, sdl.K_RALT:
				imIo.SetKeyAlt(isDown)
			case sdl.K_LGUI, sdl.K_RGUI:
				imIo.SetKeySuper(isDown)
			}

		case *sdl.TextInputEvent:
			imIo.AddInputCharactersUTF8(e.GetText())

		case *sdl.MouseButtonEvent:

			if !imguiCaptureMouse {
				w.Input.HandleMouseBtnEvent(e)
			}

			isPressed := e.State == sdl.PRESSED
			switch e.Button {
			case sdl.BUTTON_LEFT:
				isSdlButtonLeftDown = isPressed
			case sdl.BUTTON_MIDDLE:
				isSdlButtonMiddleDown = isPressed
			case sdl.BUTTON_RIGHT:
				isSdlButtonRightDown = isPressed
			}

		case *sdl.MouseMotionEvent:

			if !imguiCaptureMouse {
				w.Input.HandleMouseMotionEvent(e)
			}

		case *sdl.WindowEvent:

			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.handleWindowResize()
			}

		case *sdl.QuitEvent:
			w.Input.HandleQuitEvent(e)
		}
	}

	x, y, _ := sdl.GetMouseState()
	imIo.SetMousePos(imgui.Vec2{X: float32(x), Y: float32(y)})

	// Button state comes from events so clicks shorter than a frame still reach imgui
	imIo.SetMouseButtonDown(imgui.MouseButtonLeft, isSdlButtonLeftDown)
	imIo.SetMouseButtonDown(imgui.MouseButtonRight, isSdlButtonRightDown)
	imIo.SetMouseButtonDown(imgui.MouseButtonMiddle, isSdlButtonMiddleDown)
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	gl.Viewport(0, 0, fbWidth, fbHeight)

	if w.OnResize != nil {
		w.OnResize(fbWidth, fbHeight)
	}
}

func (w *Window) IsFullscreen() bool {
	return w.isFullscreen
}

// ToggleFullscreen switches between windowed and borderless desktop fullscreen.
func (w *Window) ToggleFullscreen() error {

	var flags uint32
	if !w.isFullscreen {
		flags = uint32(WindowFlags_FULLSCREEN_DESKTOP)
	}

	if err := w.SDLWin.SetFullscreen(flags); err != nil {
		return err
	}

	w.isFullscreen = !w.isFullscreen
	return nil
}

func (w *Window) Destroy() error {
	sdl.GLDeleteContext(w.GlCtx)
	return w.SDLWin.Destroy()
}

// Init starts SDL and pins the calling goroutine to its OS thread, which GL requires.
// msaaSamples of 0 disables multisampling.
func Init(msaaSamples int32) error {

	isInited = true

	runtime.LockOSThread()
	return initSDL(msaaSamples)
}

func initSDL(msaaSamples int32) error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)

	if msaaSamples > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, int(msaaSamples))
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	return nil
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags, rend renderer.Render) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags, rend)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags, rend renderer.Render) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
		Rend:           rend,
		Input:          input.NewState(),
		Ticks:          timing.NewTickSystem(),
		isFullscreen:   flags.Has(WindowFlags_FULLSCREEN) || flags.Has(WindowFlags_FULLSCREEN_DESKTOP),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		return nil, err
	}

	err = initOpenGL()
	if err != nil {
		return nil, err
	}

	// One clear+swap so the first frame isn't garbage
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	sdlWin.GLSwap()

	return win, nil
}

func initOpenGL() error {

	if err := gl.Init(); err != nil {
		return err
	}

	// Depth and culling are owned by the renderer's RenderState
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.FRAMEBUFFER_SRGB)

	gl.ClearColor(0, 0, 0, 1)

	return nil
}

func SetVSync(enabled bool) {

	if enabled {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}
}

func SetMSAA(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}
