package camera

import (
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/uniforms"
	"github.com/chewxy/math32"
)

// PitchMax keeps the camera just short of looking straight up/down, where
// front and up become parallel and the look-at basis flips.
const PitchMax float32 = 89 * math.Pi / 180

// CameraSystem is a free-look camera. Front and Up don't need to be orthogonal;
// they are renormalized after every look update.
type CameraSystem struct {
	Pos   gglm.Vec3
	Front gglm.Vec3
	Up    gglm.Vec3

	// Yaw and Pitch are in radians. Yaw=0 looks down +X, Yaw=-pi/2 looks down -Z.
	Yaw   float32
	Pitch float32
}

func NewCameraSystem(pos, front, up gglm.Vec3) CameraSystem {

	c := CameraSystem{
		Pos:   pos,
		Front: front,
		Up:    up,
	}

	c.Front.Normalize()
	c.Up.Normalize()
	c.Yaw, c.Pitch = yawPitchFromFront(&c.Front)

	return c
}

// Default is the playground's starting camera, looking at the origin.
func Default() CameraSystem {
	return NewCameraSystem(
		gglm.NewVec3(4, 4, 2),
		gglm.NewVec3(-4, -4, -2),
		gglm.NewVec3(0, 1, 0),
	)
}

// View is the look-at matrix for the current state. It is recomputed on every call.
func (c *CameraSystem) View() gglm.Mat4 {
	target := c.Pos.Clone().Add(&c.Front)
	return gglm.LookAtRH(&c.Pos, target, &c.Up).Mat4
}

// MoveForward moves along Front. step is the normalized input (-1..1 scaled by the
// binding), dt the frame time in seconds.
func (c *CameraSystem) MoveForward(step, speed, dt float32) {
	c.Pos.Add(c.Front.Clone().Scale(step * speed * dt))
}

// Strafe moves along normalize(Front x Up).
func (c *CameraSystem) Strafe(step, speed, dt float32) {
	right := gglm.Cross(&c.Front, &c.Up)
	c.Pos.Add(right.Normalize().Scale(step * speed * dt))
}

// MoveUp moves along Up, used by the jump/fall bindings.
func (c *CameraSystem) MoveUp(step, speed, dt float32) {
	c.Pos.Add(c.Up.Clone().Scale(step * speed * dt))
}

// Look applies a raw mouse delta. Pitch is clamped to [-PitchMax, PitchMax].
func (c *CameraSystem) Look(dx, dy, sensitivity float32) {

	c.Yaw += dx * sensitivity
	c.Pitch = gglm.Clamp(c.Pitch-dy*sensitivity, -PitchMax, PitchMax)

	c.UpdateRotation(c.Pitch, c.Yaw)
}

// UpdateRotation sets the orientation from pitch/yaw (radians) and renormalizes Front and Up.
func (c *CameraSystem) UpdateRotation(pitch, yaw float32) {

	c.Pitch = pitch
	c.Yaw = yaw

	c.Front = frontFromYawPitch(yaw, pitch)
	c.Up.Normalize()
}

// ExportUniforms writes prefix.view and prefix.position, or view/viewPos when prefix is empty.
func (c *CameraSystem) ExportUniforms(prefix string, bag *uniforms.Bag) {

	view := c.View()
	if prefix == "" {
		bag.Add("view", uniforms.FromMat4(&view))
		bag.Add("viewPos", uniforms.FromVec3(&c.Pos))
		return
	}

	bag.Add(uniforms.Join(prefix, "view"), uniforms.FromMat4(&view))
	bag.Add(uniforms.Join(prefix, "position"), uniforms.FromVec3(&c.Pos))
}

func frontFromYawPitch(yaw, pitch float32) gglm.Vec3 {

	cp := math32.Cos(pitch)
	front := gglm.NewVec3(
		math32.Cos(yaw)*cp,
		math32.Sin(pitch),
		math32.Sin(yaw)*cp,
	)

	return *front.Normalize()
}

func yawPitchFromFront(front *gglm.Vec3) (yaw, pitch float32) {

	y := gglm.Clamp(front.Y(), -1, 1)
	pitch = gglm.Clamp(math32.Asin(y), -PitchMax, PitchMax)
	yaw = math32.Atan2(front.Z(), front.X())

	return yaw, pitch
}
