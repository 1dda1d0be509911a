package camera

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/uniforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func length(v gglm.Vec3) float64 {
	return math.Sqrt(float64(v.Data[0]*v.Data[0] + v.Data[1]*v.Data[1] + v.Data[2]*v.Data[2]))
}

// transformPoint multiplies the column-major matrix m by (x, y, z, 1).
func transformPoint(m gglm.Mat4, x, y, z float32) [3]float32 {
	in := [4]float32{x, y, z, 1}
	var out [3]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out[row] += m.Data[col][row] * in[col]
		}
	}
	return out
}

func lookingDownNegZ() CameraSystem {
	return NewCameraSystem(gglm.NewVec3(0, 0, 0), gglm.NewVec3(0, 0, -1), gglm.NewVec3(0, 1, 0))
}

func TestNewCameraSystemDerivesYawPitch(t *testing.T) {

	c := lookingDownNegZ()
	assert.InDelta(t, -math.Pi/2, c.Yaw, eps)
	assert.InDelta(t, 0, c.Pitch, eps)

	c = Default()
	assert.InDelta(t, 1, length(c.Front), eps)
	assert.Less(t, c.Pitch, float32(0))
}

func TestViewMovesCameraToOrigin(t *testing.T) {

	c := NewCameraSystem(gglm.NewVec3(1, 2, 3), gglm.NewVec3(0, 0, -1), gglm.NewVec3(0, 1, 0))
	view := c.View()

	p := transformPoint(view, 1, 2, 3)
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
	assert.InDelta(t, 0, p[2], eps)

	// A point in front of the camera ends up on -Z in view space
	p = transformPoint(view, 1, 2, 0)
	assert.InDelta(t, -3, p[2], eps)
}

func TestViewIsPure(t *testing.T) {
	c := Default()
	a := c.View()
	b := c.View()
	assert.Equal(t, a, b)
	assert.Equal(t, Default(), c)
}

func TestMoveForwardIsScaledByDt(t *testing.T) {

	c := lookingDownNegZ()
	c.MoveForward(1, 10, 0.5)
	assert.InDelta(t, -5, c.Pos.Z(), eps)

	// Same distance regardless of how the time is split into frames
	a := lookingDownNegZ()
	for i := 0; i < 10; i++ {
		a.MoveForward(1, 10, 0.1)
	}
	b := lookingDownNegZ()
	b.MoveForward(1, 10, 1)
	assert.InDelta(t, b.Pos.Z(), a.Pos.Z(), eps)

	c = lookingDownNegZ()
	c.MoveForward(-1, 10, 0.5)
	assert.InDelta(t, 5, c.Pos.Z(), eps)
}

func TestStrafeUsesNormalizedRight(t *testing.T) {

	c := NewCameraSystem(gglm.NewVec3(0, 0, 0), gglm.NewVec3(0, 0, -1), gglm.NewVec3(0, 1, 0))
	c.Strafe(1, 2, 1)

	// front x up = (0,0,-1) x (0,1,0) = (1,0,0)
	assert.InDelta(t, 2, c.Pos.X(), eps)
	assert.InDelta(t, 0, c.Pos.Y(), eps)
	assert.InDelta(t, 0, c.Pos.Z(), eps)
}

func TestMoveUp(t *testing.T) {
	c := lookingDownNegZ()
	c.MoveUp(-1, 4, 0.25)
	assert.InDelta(t, -1, c.Pos.Y(), eps)
}

func TestLookClampsPitch(t *testing.T) {

	c := lookingDownNegZ()
	for i := 0; i < 100; i++ {
		c.Look(3, -50, 0.015)
		assert.LessOrEqual(t, c.Pitch, PitchMax)
	}
	assert.Equal(t, PitchMax, c.Pitch)

	for i := 0; i < 100; i++ {
		c.Look(0, 80, 0.015)
		assert.GreaterOrEqual(t, c.Pitch, -PitchMax)
	}
	assert.Equal(t, -PitchMax, c.Pitch)

	// Idempotent at the bound
	c.Look(0, 1000, 1)
	assert.Equal(t, -PitchMax, c.Pitch)
}

func TestLookKeepsFrontNormalized(t *testing.T) {

	c := Default()
	deltas := [][2]float32{{10, 3}, {-40, 12}, {200, -90}, {0, 0}, {-5, 600}}
	for _, d := range deltas {
		c.Look(d[0], d[1], 0.015)
		assert.InDelta(t, 1, length(c.Front), eps)
		assert.InDelta(t, 1, length(c.Up), eps)
	}
}

func TestLookYawTurnsRight(t *testing.T) {

	c := lookingDownNegZ()
	c.Look(float32(math.Pi/2)/0.01, 0, 0.01)

	// Yaw went from -pi/2 to 0, which looks down +X
	assert.InDelta(t, 1, c.Front.X(), eps)
	assert.InDelta(t, 0, c.Front.Z(), eps)
}

func TestPerspectiveGet(t *testing.T) {

	p := DefaultPerspective()
	require.NoError(t, p.Validate())

	m := p.Get()
	f := 1 / math.Tan(float64(p.Fov)/2)
	assert.InDelta(t, f, m.Data[1][1], eps)
	assert.InDelta(t, f/float64(p.Aspect), m.Data[0][0], eps)
}

func TestPerspectiveGetDoesNotClamp(t *testing.T) {

	p := DefaultPerspective()
	p.Fov = p.FovMax + 0.2
	p.Get()
	assert.Equal(t, DefaultPerspective().FovMax+0.2, p.Fov)
}

func TestZoomClampsFov(t *testing.T) {

	p := DefaultPerspective()

	for i := 0; i < 200; i++ {
		p.Zoom(1, 0.05)
		assert.GreaterOrEqual(t, p.Fov, p.FovMin)
	}
	assert.Equal(t, p.FovMin, p.Fov)

	for i := 0; i < 200; i++ {
		p.Zoom(-3, 0.05)
		assert.LessOrEqual(t, p.Fov, p.FovMax)
	}
	assert.Equal(t, p.FovMax, p.Fov)

	before := p.Fov
	p.Zoom(0, 0.05)
	assert.Equal(t, before, p.Fov)
}

func TestPerspectiveValidate(t *testing.T) {

	tests := []struct {
		name   string
		mutate func(p *Perspective)
		err    error
	}{
		{name: "default", mutate: func(p *Perspective) {}},
		{name: "near equals far", mutate: func(p *Perspective) { p.Near = p.Far }, err: ErrInvalidClipPlanes},
		{name: "negative near", mutate: func(p *Perspective) { p.Near = -1 }, err: ErrInvalidClipPlanes},
		{name: "zero fov", mutate: func(p *Perspective) { p.Fov = 0 }, err: ErrInvalidFov},
		{name: "fov of pi", mutate: func(p *Perspective) { p.Fov = math.Pi }, err: ErrInvalidFov},
		{name: "inverted fov range", mutate: func(p *Perspective) { p.FovMin = 1; p.FovMax = 0.5 }, err: ErrInvalidFov},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPerspective()
			tt.mutate(&p)
			err := p.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSetAspect(t *testing.T) {
	p := DefaultPerspective()
	p.SetAspect(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, p.Aspect, eps)

	p.SetAspect(0, 1080)
	assert.InDelta(t, 1920.0/1080.0, p.Aspect, eps)
}

func TestViewProjectionComposesProjectionTimesView(t *testing.T) {

	c := NewCameraSystem(gglm.NewVec3(0, 0, 5), gglm.NewVec3(0, 0, -1), gglm.NewVec3(0, 1, 0))
	p := DefaultPerspective()

	vp := ViewProjection(&c, &p)

	// The camera is at z=5 so the view only translates by -5 on z; the x scale comes from the projection.
	proj := p.Get()
	assert.InDelta(t, proj.Data[0][0], vp.Data[0][0], eps)
	assert.InDelta(t, proj.Data[1][1], vp.Data[1][1], eps)
}

func TestCameraExportUniforms(t *testing.T) {

	c := Default()
	bag := uniforms.NewBag()
	c.ExportUniforms("", bag)

	assert.Equal(t, []string{"view", "viewPos"}, bag.Names())
	v, _ := bag.Get("viewPos")
	assert.Equal(t, uniforms.Vec3{4, 4, 2}, v)

	bag = uniforms.NewBag()
	c.ExportUniforms("camera", bag)
	assert.Equal(t, []string{"camera.position", "camera.view"}, bag.Names())
}
