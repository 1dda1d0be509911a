package uniforms

import "github.com/bloeys/gglm/gglm"

// Kind identifies which variant a Value holds. Useful for logging and for
// consumers that prefer a switch on Kind over a type switch.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFloat
	KindVec2
	KindVec3
	KindVec4
	KindMat4
	KindBool
	KindTexture
)

func (k Kind) String() string {

	switch k {
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindMat4:
		return "mat4"
	case KindBool:
		return "bool"
	case KindTexture:
		return "sampler2D"
	default:
		return "unknown"
	}
}

// Value is one shader input. The set of implementations is closed: only the
// types in this file satisfy it.
type Value interface {
	Kind() Kind
	isValue()
}

type Float float32

type Bool bool

type Vec2 [2]float32

type Vec3 [3]float32

type Vec4 [4]float32

// Mat4 is column-major, Mat4[col][row], which is what glUniformMatrix4fv
// expects with transpose=false.
type Mat4 [4][4]float32

// Texture references a GPU resident 2D texture. The texture unit is chosen by
// the draw call, not by the exporter.
type Texture struct {
	Id uint32
}

func (Float) Kind() Kind   { return KindFloat }
func (Bool) Kind() Kind    { return KindBool }
func (Vec2) Kind() Kind    { return KindVec2 }
func (Vec3) Kind() Kind    { return KindVec3 }
func (Vec4) Kind() Kind    { return KindVec4 }
func (Mat4) Kind() Kind    { return KindMat4 }
func (Texture) Kind() Kind { return KindTexture }

func (Float) isValue()   {}
func (Bool) isValue()    {}
func (Vec2) isValue()    {}
func (Vec3) isValue()    {}
func (Vec4) isValue()    {}
func (Mat4) isValue()    {}
func (Texture) isValue() {}

// Every value kind is also exportable under a single name.

func (f Float) ExportUniforms(name string, bag *Bag)   { bag.Add(name, f) }
func (b Bool) ExportUniforms(name string, bag *Bag)    { bag.Add(name, b) }
func (v Vec2) ExportUniforms(name string, bag *Bag)    { bag.Add(name, v) }
func (v Vec3) ExportUniforms(name string, bag *Bag)    { bag.Add(name, v) }
func (v Vec4) ExportUniforms(name string, bag *Bag)    { bag.Add(name, v) }
func (m Mat4) ExportUniforms(name string, bag *Bag)    { bag.Add(name, m) }
func (t Texture) ExportUniforms(name string, bag *Bag) { bag.Add(name, t) }

func FromVec2(v *gglm.Vec2) Vec2 {
	return Vec2(v.Data)
}

func FromVec3(v *gglm.Vec3) Vec3 {
	return Vec3(v.Data)
}

func FromVec4(v *gglm.Vec4) Vec4 {
	return Vec4(v.Data)
}

func FromMat4(m *gglm.Mat4) Mat4 {
	return Mat4(m.Data)
}
