package lights

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/uniforms"
	"github.com/chewxy/math32"
)

// MaxPointLights and MaxSpotLights are the lengths of the light arrays on both
// sides. The shader loader injects them into every program as NR_POINT_LIGHTS
// and NR_SPOT_LIGHTS, so exporting and declaring can't drift apart.
const (
	MaxPointLights = 4
	MaxSpotLights  = 1
)

var ErrInvalidAttenuation = errors.New("attenuation coefficients must be positive")

// Attenuation is the classic constant/linear/quadratic falloff.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DefaultAttenuation covers roughly 50 units.
func DefaultAttenuation() Attenuation {
	return Attenuation{
		Constant:  1,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// At returns the intensity factor at distance d.
func (a Attenuation) At(d float32) float32 {
	return 1 / (a.Constant + a.Linear*d + a.Quadratic*d*d)
}

func (a Attenuation) Validate() error {

	if a.Constant <= 0 || a.Linear <= 0 || a.Quadratic <= 0 {
		return fmt.Errorf("%w: constant=%f, linear=%f, quadratic=%f", ErrInvalidAttenuation, a.Constant, a.Linear, a.Quadratic)
	}

	return nil
}

func (a *Attenuation) ExportUniforms(prefix string, bag *uniforms.Bag) {
	bag.Add(uniforms.Join(prefix, "constant"), uniforms.Float(a.Constant))
	bag.Add(uniforms.Join(prefix, "linear"), uniforms.Float(a.Linear))
	bag.Add(uniforms.Join(prefix, "quadratic"), uniforms.Float(a.Quadratic))
}

// Colors is the ambient/diffuse/specular triple every light carries.
// Channels are conventionally in [0,1] but are not clamped.
type Colors struct {
	Ambient  gglm.Vec3
	Diffuse  gglm.Vec3
	Specular gglm.Vec3
}

// SetColor applies a single user picked colour: ambient is dimmed to a tenth,
// diffuse and specular take it as is.
func (c *Colors) SetColor(rgb gglm.Vec3) {
	c.Ambient = *rgb.Clone().Scale(0.1)
	c.Diffuse = rgb
	c.Specular = rgb
}

func (c *Colors) ExportUniforms(prefix string, bag *uniforms.Bag) {
	bag.Add(uniforms.Join(prefix, "ambient"), uniforms.FromVec3(&c.Ambient))
	bag.Add(uniforms.Join(prefix, "diffuse"), uniforms.FromVec3(&c.Diffuse))
	bag.Add(uniforms.Join(prefix, "specular"), uniforms.FromVec3(&c.Specular))
}

type DirectionalLight struct {
	Direction gglm.Vec3
	Colors
}

func (d *DirectionalLight) ExportUniforms(prefix string, bag *uniforms.Bag) {
	bag.Add(uniforms.Join(prefix, "direction"), uniforms.FromVec3(&d.Direction))
	d.Colors.ExportUniforms(prefix, bag)
}

type PointLight struct {
	Position gglm.Vec3
	Colors
	Attenuation
}

func (p *PointLight) ExportUniforms(prefix string, bag *uniforms.Bag) {
	bag.Add(uniforms.Join(prefix, "position"), uniforms.FromVec3(&p.Position))
	p.Colors.ExportUniforms(prefix, bag)
	p.Attenuation.ExportUniforms(prefix, bag)
}

// Orbit rotates the light around the world Z axis by angularSpeed*dt radians.
func (p *PointLight) Orbit(angularSpeed, dt float32) {
	p.Position = OrbitZ(p.Position, angularSpeed*dt)
}

type SpotLight struct {
	Position  gglm.Vec3
	Direction gglm.Vec3
	Colors
	Attenuation

	// CutOff and OuterCutOff are cosines of the cone half angles, never the angles themselves.
	CutOff      float32
	OuterCutOff float32
}

// NewSpotLight takes the inner and outer cone half angles in radians and stores their cosines.
func NewSpotLight(pos, dir gglm.Vec3, colors Colors, att Attenuation, innerRad, outerRad float32) SpotLight {
	return SpotLight{
		Position:    pos,
		Direction:   dir,
		Colors:      colors,
		Attenuation: att,
		CutOff:      math32.Cos(innerRad),
		OuterCutOff: math32.Cos(outerRad),
	}
}

func (s *SpotLight) ExportUniforms(prefix string, bag *uniforms.Bag) {
	bag.Add(uniforms.Join(prefix, "position"), uniforms.FromVec3(&s.Position))
	bag.Add(uniforms.Join(prefix, "direction"), uniforms.FromVec3(&s.Direction))
	s.Colors.ExportUniforms(prefix, bag)
	s.Attenuation.ExportUniforms(prefix, bag)
	bag.Add(uniforms.Join(prefix, "cutOff"), uniforms.Float(s.CutOff))
	bag.Add(uniforms.Join(prefix, "outerCutOff"), uniforms.Float(s.OuterCutOff))
}

// OrbitZ rotates pos about the world Z axis through the origin. Length is preserved.
func OrbitZ(pos gglm.Vec3, angle float32) gglm.Vec3 {

	sin, cos := math32.Sin(angle), math32.Cos(angle)
	x, y := pos.X(), pos.Y()

	return gglm.NewVec3(
		x*cos-y*sin,
		x*sin+y*cos,
		pos.Z(),
	)
}

// ExportPointLights writes lights under pointLights[i]. The array length is
// fixed to MaxPointLights so a scene can't export more than the shader declares.
func ExportPointLights(bag *uniforms.Bag, lights *[MaxPointLights]PointLight) {
	for i := 0; i < len(lights); i++ {
		lights[i].ExportUniforms(uniforms.Index("pointLights", i), bag)
	}
}
