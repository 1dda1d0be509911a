// Package input tracks SDL keyboard and mouse state between frames.
//
// Queries return zero/false while the respective device is captured by the
// overlay, so typing into a text box doesn't move the camera. Mouse position
// is the exception and is always reported.
package input

import (
	"github.com/bloeys/nplay/input/binding"
	"github.com/veandco/go-sdl2/sdl"
)

var _ binding.Source = &State{}

type keyState struct {
	Down                bool
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Down bool

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
	IsDoubleClicked     bool
}

type State struct {
	keys    map[sdl.Keycode]keyState
	buttons map[uint8]mouseBtnState

	mouseX, mouseY   int32
	motionX, motionY int32
	wheelX, wheelY   int32

	quitRequested    bool
	mouseCaptured    bool
	keyboardCaptured bool
}

func NewState() *State {
	return &State{
		keys:    make(map[sdl.Keycode]keyState),
		buttons: make(map[uint8]mouseBtnState),
	}
}

// EventLoopStart clears the per frame part of the state. Call before polling the frame's events.
func (s *State) EventLoopStart(mouseGotCaptured, keyboardGotCaptured bool) {

	s.mouseCaptured = mouseGotCaptured
	s.keyboardCaptured = keyboardGotCaptured

	for k, v := range s.keys {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		s.keys[k] = v
	}

	for b, v := range s.buttons {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		v.IsDoubleClicked = false
		s.buttons[b] = v
	}

	s.motionX, s.motionY = 0, 0
	s.wheelX, s.wheelY = 0, 0
	s.quitRequested = false
}

// ClearKeyboardState forgets held keys, e.g. when the window loses focus and
// the release events will never arrive.
func (s *State) ClearKeyboardState() {
	clear(s.keys)
}

func (s *State) ClearMouseState() {
	clear(s.buttons)
	s.motionX, s.motionY = 0, 0
	s.wheelX, s.wheelY = 0, 0
}

func (s *State) HandleQuitEvent(e *sdl.QuitEvent) {
	s.quitRequested = true
}

func (s *State) HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks := s.keys[e.Keysym.Sym]
	ks.Down = e.State == sdl.PRESSED

	// Key repeats don't count as new presses
	if e.Repeat == 0 {
		ks.IsPressedThisFrame = ks.IsPressedThisFrame || e.State == sdl.PRESSED
		ks.IsReleasedThisFrame = ks.IsReleasedThisFrame || e.State == sdl.RELEASED
	}

	s.keys[e.Keysym.Sym] = ks
}

func (s *State) HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb := s.buttons[e.Button]
	mb.Down = e.State == sdl.PRESSED
	mb.IsDoubleClicked = mb.IsDoubleClicked || (e.Clicks == 2 && e.State == sdl.PRESSED)
	mb.IsPressedThisFrame = mb.IsPressedThisFrame || e.State == sdl.PRESSED
	mb.IsReleasedThisFrame = mb.IsReleasedThisFrame || e.State == sdl.RELEASED

	s.buttons[e.Button] = mb
}

// HandleMouseMotionEvent accumulates, several motion events can arrive in one frame.
func (s *State) HandleMouseMotionEvent(e *sdl.MouseMotionEvent) {
	s.mouseX, s.mouseY = e.X, e.Y
	s.motionX += e.XRel
	s.motionY += e.YRel
}

func (s *State) HandleMouseWheelEvent(e *sdl.MouseWheelEvent) {
	s.wheelX += e.X
	s.wheelY += e.Y
}

func (s *State) IsMouseCaptured() bool {
	return s.mouseCaptured
}

func (s *State) IsKeyboardCaptured() bool {
	return s.keyboardCaptured
}

func (s *State) QuitRequested() bool {
	return s.quitRequested
}

// MousePos returns window coordinates even when the mouse is captured.
func (s *State) MousePos() (x, y int32) {
	return s.mouseX, s.mouseY
}

// MouseMotion returns how many pixels the mouse moved this frame.
func (s *State) MouseMotion() (dx, dy int32) {

	if s.mouseCaptured {
		return 0, 0
	}

	return s.motionX, s.motionY
}

func (s *State) MouseWheel() (dx, dy int32) {

	if s.mouseCaptured {
		return 0, 0
	}

	return s.wheelX, s.wheelY
}

func (s *State) KeyDown(k binding.Key) bool {
	return !s.keyboardCaptured && s.keys[sdl.Keycode(k)].Down
}

func (s *State) KeyClicked(k binding.Key) bool {
	return !s.keyboardCaptured && s.keys[sdl.Keycode(k)].IsPressedThisFrame
}

func (s *State) KeyReleased(k binding.Key) bool {
	return !s.keyboardCaptured && s.keys[sdl.Keycode(k)].IsReleasedThisFrame
}

func (s *State) MouseDown(b binding.Button) bool {
	return !s.mouseCaptured && s.buttons[uint8(b)].Down
}

func (s *State) MouseClicked(b binding.Button) bool {
	return !s.mouseCaptured && s.buttons[uint8(b)].IsPressedThisFrame
}

func (s *State) MouseReleased(b binding.Button) bool {
	return !s.mouseCaptured && s.buttons[uint8(b)].IsReleasedThisFrame
}

func (s *State) MouseDoubleClicked(b binding.Button) bool {
	return !s.mouseCaptured && s.buttons[uint8(b)].IsDoubleClicked
}
