// Package binding maps raw key/mouse state to the playground's actions.
//
// A Gesture is a boolean condition (held, just pressed, combinations) and an
// Analog2d is a 2D value (mouse motion, wheel, or keys turned into steps).
// Both are evaluated against a Source once per frame, so the same binding can
// run on the live SDL state or on a scripted source in tests.
package binding

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/scene"
)

// Key is an SDL keycode.
type Key int32

// Button is an SDL mouse button index.
type Button uint8

// Keycodes used by the default binding, same values as SDL_Keycode.
const (
	Key_Escape Key = 27
	Key_Space  Key = ' '
	Key_A      Key = 'a'
	Key_C      Key = 'c'
	Key_D      Key = 'd'
	Key_F      Key = 'f'
	Key_Q      Key = 'q'
	Key_R      Key = 'r'
	Key_S      Key = 's'
	Key_T      Key = 't'
	Key_W      Key = 'w'
	Key_Z      Key = 'z'

	Key_Right Key = 0x4000004F
	Key_Left  Key = 0x40000050
	Key_Down  Key = 0x40000051
	Key_Up    Key = 0x40000052
)

const (
	Button_Left   Button = 1
	Button_Middle Button = 2
	Button_Right  Button = 3
)

// Source is the input state bindings are evaluated against.
type Source interface {
	KeyDown(k Key) bool
	KeyClicked(k Key) bool
	MouseDown(b Button) bool
	MouseClicked(b Button) bool
	MouseMotion() (dx, dy int32)
	MouseWheel() (dx, dy int32)
	QuitRequested() bool
}

type Gesture interface {
	Active(src Source) bool
}

type Analog2d interface {
	Value(src Source) gglm.Vec2
}

type noGesture struct{}

func (noGesture) Active(Source) bool { return false }

// NoGesture is never active.
var NoGesture Gesture = noGesture{}

type KeyHold Key

func (k KeyHold) Active(src Source) bool { return src.KeyDown(Key(k)) }

// KeyTrigger is active only on the frame the key went down.
type KeyTrigger Key

func (k KeyTrigger) Active(src Source) bool { return src.KeyClicked(Key(k)) }

type ButtonHold Button

func (b ButtonHold) Active(src Source) bool { return src.MouseDown(Button(b)) }

type ButtonTrigger Button

func (b ButtonTrigger) Active(src Source) bool { return src.MouseClicked(Button(b)) }

// QuitTrigger is active when the window was asked to close.
type QuitTrigger struct{}

func (QuitTrigger) Active(src Source) bool { return src.QuitRequested() }

type AnyOf []Gesture

func (g AnyOf) Active(src Source) bool {

	for _, sub := range g {
		if sub != nil && sub.Active(src) {
			return true
		}
	}

	return false
}

// AllOf is active when every sub gesture is, so an empty AllOf is always active.
// A nil sub gesture is never active.
type AllOf []Gesture

func (g AllOf) Active(src Source) bool {

	for _, sub := range g {
		if sub == nil || !sub.Active(src) {
			return false
		}
	}

	return true
}

// Mouse is the raw mouse motion of the frame in pixels, scaled by Sensitivity.
type Mouse struct {
	Sensitivity float32
}

func (m Mouse) Value(src Source) gglm.Vec2 {
	dx, dy := src.MouseMotion()
	return gglm.NewVec2(float32(dx)*m.Sensitivity, float32(dy)*m.Sensitivity)
}

type MouseWheel struct {
	Sensitivity float32
}

func (m MouseWheel) Value(src Source) gglm.Vec2 {
	dx, dy := src.MouseWheel()
	return gglm.NewVec2(float32(dx)*m.Sensitivity, float32(dy)*m.Sensitivity)
}

// Gestures turns four gestures into a 2D value. When both directions of an
// axis are active the positive one wins. Nil directions are never active.
type Gestures struct {
	XPos Gesture
	XNeg Gesture
	YPos Gesture
	YNeg Gesture
	Step float32
}

func (g Gestures) Value(src Source) gglm.Vec2 {

	return gglm.NewVec2(
		axis(active(g.XPos, src), active(g.XNeg, src), g.Step),
		axis(active(g.YPos, src), active(g.YNeg, src), g.Step),
	)
}

func axis(pos, neg bool, step float32) float32 {

	if pos {
		return step
	}

	if neg {
		return -step
	}

	return 0
}

type Sum []Analog2d

func (s Sum) Value(src Source) gglm.Vec2 {

	var x, y float32
	for _, a := range s {
		v := a.Value(src)
		x += v.X()
		y += v.Y()
	}

	return gglm.NewVec2(x, y)
}

type Binding struct {
	Exit     Gesture
	Movement Analog2d

	// Vertical uses Y only, positive moves along the camera up vector
	Vertical   Analog2d
	Look       Analog2d
	Zoom       Analog2d
	Fullscreen Gesture
	ToggleLook Gesture
	SwapColor  Gesture
	Torch      Gesture
}

// Default is the playground layout. Movement accepts both WASD and ZQSD
// plus the arrows, vertical motion is Space/C. Look and zoom are raw mouse
// units, the scene applies its own sensitivities.
func Default(moveStep float32) Binding {

	return Binding{
		Exit: AnyOf{KeyTrigger(Key_Escape), QuitTrigger{}},
		Movement: Gestures{
			XPos: AnyOf{KeyHold(Key_D), KeyHold(Key_Right)},
			XNeg: AnyOf{KeyHold(Key_A), KeyHold(Key_Q), KeyHold(Key_Left)},
			YPos: AnyOf{KeyHold(Key_W), KeyHold(Key_Z), KeyHold(Key_Up)},
			YNeg: AnyOf{KeyHold(Key_S), KeyHold(Key_Down)},
			Step: moveStep,
		},
		Vertical: Gestures{
			YPos: KeyHold(Key_Space),
			YNeg: KeyHold(Key_C),
			Step: moveStep,
		},
		Look:       Mouse{Sensitivity: 1},
		Zoom:       MouseWheel{Sensitivity: 1},
		Fullscreen: KeyTrigger(Key_F),
		ToggleLook: ButtonHold(Button_Right),
		SwapColor:  KeyTrigger(Key_R),
		Torch:      KeyTrigger(Key_T),
	}
}

// Frame is everything one frame of input asks for.
type Frame struct {
	Controls   scene.Controls
	Exit       bool
	Fullscreen bool
}

func (b *Binding) Evaluate(src Source) Frame {

	f := Frame{
		Exit:       active(b.Exit, src),
		Fullscreen: active(b.Fullscreen, src),
	}

	c := &f.Controls
	c.Move = value(b.Movement, src)

	c.Vertical = value(b.Vertical, src).Y()

	c.LookHeld = active(b.ToggleLook, src)
	c.Look = value(b.Look, src)
	c.Scroll = value(b.Zoom, src).Y()
	c.SwapColor = active(b.SwapColor, src)
	c.ToggleTorch = active(b.Torch, src)

	return f
}

func active(g Gesture, src Source) bool {
	return g != nil && g.Active(src)
}

func value(a Analog2d, src Source) gglm.Vec2 {

	if a == nil {
		return gglm.Vec2{}
	}

	return a.Value(src)
}
