package materials

import (
	"github.com/bloeys/nplay/uniforms"
)

// ShininessScale converts a [0,1] shininess into the specular exponent the
// Phong shaders expect.
const ShininessScale = 128

type ProgramKind uint8

const (
	ProgramPhong ProgramKind = iota
	ProgramPBR
)

func (k ProgramKind) String() string {

	switch k {
	case ProgramPhong:
		return "phong"
	case ProgramPBR:
		return "pbr"
	default:
		return "unknown"
	}
}

// Material is a set of textures/scalars that a specific shader program knows
// how to consume. Drawables pick their program from Program(), so a Phong
// material is never fed to the PBR shader or the other way round.
type Material interface {
	uniforms.Exporter
	Program() ProgramKind
}

var (
	_ Material = &Phong{}
	_ Material = &PBR{}
)

// Phong is a diffuse/specular map pair with a specular exponent.
type Phong struct {
	Diffuse  uniforms.Texture
	Specular uniforms.Texture

	// Shininess is already multiplied by ShininessScale
	Shininess float32
}

// NewPhong takes ownership of both textures. shininess is the unscaled [0,1] value.
func NewPhong(diffuse, specular uniforms.Texture, shininess float32) *Phong {
	return &Phong{
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess * ShininessScale,
	}
}

func (p *Phong) Program() ProgramKind {
	return ProgramPhong
}

func (p *Phong) ExportUniforms(prefix string, bag *uniforms.Bag) {
	bag.Add(uniforms.Join(prefix, "diffuse"), p.Diffuse)
	bag.Add(uniforms.Join(prefix, "specular"), p.Specular)
	bag.Add(uniforms.Join(prefix, "shininess"), uniforms.Float(p.Shininess))
}

// PBR is the material imported models come with. It has no scalar shininess,
// roughness lives in the reflection map.
type PBR struct {
	Color      uniforms.Texture
	Reflection uniforms.Texture
	Normal     uniforms.Texture
}

func NewPBR(color, reflection, normal uniforms.Texture) *PBR {
	return &PBR{
		Color:      color,
		Reflection: reflection,
		Normal:     normal,
	}
}

func (p *PBR) Program() ProgramKind {
	return ProgramPBR
}

func (p *PBR) ExportUniforms(prefix string, bag *uniforms.Bag) {
	bag.Add(uniforms.Join(prefix, "color"), p.Color)
	bag.Add(uniforms.Join(prefix, "reflection"), p.Reflection)
	bag.Add(uniforms.Join(prefix, "normal"), p.Normal)
}
