package scene

import (
	"math/rand/v2"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/camera"
	"github.com/bloeys/nplay/lights"
	"github.com/bloeys/nplay/materials"
	"github.com/bloeys/nplay/settings"
	"github.com/bloeys/nplay/transform"
	"github.com/bloeys/nplay/uniforms"
)

// NoMarker marks a point light without a bulb drawable.
const NoMarker = -1

// Drawable is one entry of the flat draw list. Mesh is the name the render
// side registered the vertex/index buffers under.
type Drawable struct {
	Name      string
	Mesh      string
	Transform transform.Transform
	Material  materials.Material

	// Tint overrides the scene colour for this drawable when set
	Tint *uniforms.Vec3
}

// Controls is the input of a single tick, already mapped from the raw
// devices by the bindings. Deltas only cover the current tick.
type Controls struct {
	// Move.X strafes, Move.Y goes forward
	Move     gglm.Vec2
	Vertical float32

	Look     gglm.Vec2
	LookHeld bool

	Scroll float32

	SwapColor   bool
	ToggleTorch bool
}

// Tuning holds the speeds applied to Controls.
type Tuning struct {
	MoveSpeed       float32
	LookSensitivity float32
	ZoomStep        float32
}

func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:       3,
		LookSensitivity: 0.0025,
		ZoomStep:        0.030,
	}
}

type Scene struct {
	Camera      camera.CameraSystem
	Perspective camera.Perspective
	Tuning      Tuning

	DirLight    lights.DirectionalLight
	PointLights [lights.MaxPointLights]lights.PointLight

	// SpotLight is the torch, it follows the camera every update
	SpotLight lights.SpotLight
	TorchOn   bool

	// OrbitLight is the index of the point light animated around Z, or -1
	OrbitLight int
	OrbitSpeed float32

	Drawables []Drawable

	// LightMarkers[i] is the index in Drawables of the bulb following PointLights[i]
	LightMarkers [lights.MaxPointLights]int

	Color Color

	rng *rand.Rand
}

// New returns an empty scene with the default camera and lens. seed drives the
// colour swap so runs can be reproduced.
func New(seed uint64) *Scene {

	s := &Scene{
		Camera:      camera.Default(),
		Perspective: camera.DefaultPerspective(),
		Tuning:      DefaultTuning(),
		OrbitLight:  NoMarker,
		Color:       Magenta,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	for i := range s.LightMarkers {
		s.LightMarkers[i] = NoMarker
	}

	return s
}

// Add appends d to the draw list and returns its index.
func (s *Scene) Add(d Drawable) int {
	s.Drawables = append(s.Drawables, d)
	return len(s.Drawables) - 1
}

// Update advances the scene by dt seconds.
func (s *Scene) Update(dt float32, c *Controls, st *settings.Settings) {

	s.updateCamera(dt, c)

	if s.OrbitLight >= 0 && s.OrbitLight < len(s.PointLights) {
		s.PointLights[s.OrbitLight].Orbit(s.OrbitSpeed, dt)
	}

	if st != nil {
		for i := 0; i < len(s.PointLights); i++ {
			bulb := st.LightBulbColors[i]
			s.PointLights[i].SetColor(gglm.NewVec3(bulb[0], bulb[1], bulb[2]))
		}
	}

	s.syncMarkers()

	if c.SwapColor {
		s.Color = RandomColor(s.rng)
	}

	if c.ToggleTorch {
		s.TorchOn = !s.TorchOn
	}

	s.SpotLight.Position = s.Camera.Pos
	s.SpotLight.Direction = s.Camera.Front
}

func (s *Scene) updateCamera(dt float32, c *Controls) {

	if c.Move.Y() != 0 {
		s.Camera.MoveForward(c.Move.Y(), s.Tuning.MoveSpeed, dt)
	}

	if c.Move.X() != 0 {
		s.Camera.Strafe(c.Move.X(), s.Tuning.MoveSpeed, dt)
	}

	if c.Vertical != 0 {
		s.Camera.MoveUp(c.Vertical, s.Tuning.MoveSpeed, dt)
	}

	if c.LookHeld && (c.Look.X() != 0 || c.Look.Y() != 0) {
		s.Camera.Look(c.Look.X(), c.Look.Y(), s.Tuning.LookSensitivity)
	}

	s.Perspective.Zoom(c.Scroll, s.Tuning.ZoomStep)
}

// syncMarkers moves each bulb onto its light and tints it with the light colour.
func (s *Scene) syncMarkers() {

	for i, idx := range s.LightMarkers {

		if idx < 0 || idx >= len(s.Drawables) {
			continue
		}

		p := &s.PointLights[i].Position
		d := &s.Drawables[idx]
		d.Transform.MoveTo(p.X(), p.Y(), p.Z())

		tint := uniforms.FromVec3(&s.PointLights[i].Diffuse)
		d.Tint = &tint
	}
}

// Uniforms builds the bag for one draw of d. The bag is meant to be consumed
// by a single draw call and dropped.
func (s *Scene) Uniforms(d *Drawable) *uniforms.Bag {

	bag := uniforms.NewBag()

	d.Transform.ExportUniforms("model", bag)
	s.Camera.ExportUniforms("", bag)
	s.Perspective.ExportUniforms("projection", bag)

	if d.Material != nil {
		d.Material.ExportUniforms("material", bag)
	}

	s.DirLight.ExportUniforms("dirLight", bag)
	lights.ExportPointLights(bag, &s.PointLights)
	s.SpotLight.ExportUniforms("spotLight", bag)
	bag.Add("torchOn", uniforms.Bool(s.TorchOn))

	if d.Tint != nil {
		bag.Add("uColor", *d.Tint)
	} else {
		bag.Add("uColor", s.Color.Uniform())
	}

	return bag
}

// Program is the shader program d must be drawn with.
func (d *Drawable) Program() materials.ProgramKind {

	if d.Material == nil {
		return materials.ProgramPhong
	}

	return d.Material.Program()
}
