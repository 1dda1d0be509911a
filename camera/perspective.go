package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/uniforms"
)

var (
	ErrInvalidClipPlanes = errors.New("perspective near plane must be positive and smaller than the far plane")
	ErrInvalidFov        = errors.New("perspective fov must be in (0, pi)")
)

// Perspective holds a symmetric perspective projection. Fov is in radians.
//
// Fov is only clamped to [FovMin, FovMax] when it is changed through Zoom, never in Get.
type Perspective struct {
	Aspect float32
	Fov    float32
	Near   float32
	Far    float32

	FovMin float32
	FovMax float32
}

func DefaultPerspective() Perspective {
	return Perspective{
		Aspect: 1024.0 / 768.0,
		Fov:    math.Pi / 4,
		Near:   0.1,
		Far:    100,
		FovMin: 1 * gglm.Deg2Rad,
		FovMax: math.Pi / 4,
	}
}

func (p *Perspective) Validate() error {

	if p.Near <= 0 || p.Near >= p.Far {
		return fmt.Errorf("%w (near=%f, far=%f)", ErrInvalidClipPlanes, p.Near, p.Far)
	}

	if p.Fov <= 0 || p.Fov >= math.Pi {
		return fmt.Errorf("%w (fov=%f)", ErrInvalidFov, p.Fov)
	}

	if p.FovMin <= 0 || p.FovMin > p.FovMax || p.FovMax >= math.Pi {
		return fmt.Errorf("%w (fovMin=%f, fovMax=%f)", ErrInvalidFov, p.FovMin, p.FovMax)
	}

	return nil
}

// Get builds the projection matrix from the current state.
func (p *Perspective) Get() gglm.Mat4 {
	projMat := gglm.Perspective(p.Fov, p.Aspect, p.Near, p.Far)
	return *projMat.Clone()
}

// Zoom narrows the fov for positive scroll deltas and widens it for negative ones,
// clamping to [FovMin, FovMax].
func (p *Perspective) Zoom(scrollDelta, step float32) {

	if scrollDelta == 0 {
		return
	}

	p.Fov = gglm.Clamp(p.Fov-scrollDelta*step, p.FovMin, p.FovMax)
}

// SetAspect updates the aspect ratio after a resize. Zero sized windows (minimized) are ignored.
func (p *Perspective) SetAspect(width, height int32) {

	if width <= 0 || height <= 0 {
		return
	}

	p.Aspect = float32(width) / float32(height)
}

func (p *Perspective) ExportUniforms(name string, bag *uniforms.Bag) {
	proj := p.Get()
	bag.Add(name, uniforms.FromMat4(&proj))
}

// ViewProjection returns projection * view.
func ViewProjection(c *CameraSystem, p *Perspective) gglm.Mat4 {
	proj := p.Get()
	view := c.View()
	return *proj.Mul(&view)
}
