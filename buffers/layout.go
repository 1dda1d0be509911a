package buffers

import (
	"github.com/bloeys/nplay/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Element is one attribute of an interleaved vertex (e.g. a Vec3 normal 12 bytes in)
type Element struct {
	Offset int
	ElementType
}

type ElementType uint8

const (
	DataTypeUnknown ElementType = iota
	DataTypeFloat32
	DataTypeVec2
	DataTypeVec3
	DataTypeVec4
)

// CompCount is the number of float components, e.g. 3 for Vec3.
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeFloat32:
		return 1
	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4
	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Size is the size in bytes, e.g. 12 for Vec3.
func (dt ElementType) Size() int32 {
	return dt.CompCount() * 4
}

func (dt ElementType) GLType() uint32 {
	assert.T(dt != DataTypeUnknown, "Unknown data type passed. DataType '%d'", dt)
	return gl.FLOAT
}

func (dt ElementType) String() string {

	switch dt {
	case DataTypeFloat32:
		return "float32"
	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"
	default:
		return "Unknown"
	}
}

// Layouts used by the playground meshes. Attribute i is bound to location i.
var (
	// Position + UV, used by the primitives
	LayoutPosUV = []Element{{ElementType: DataTypeVec3}, {ElementType: DataTypeVec2}}

	// Position + normal + UV + tangent, used by imported models
	LayoutPosNormUVTan = []Element{{ElementType: DataTypeVec3}, {ElementType: DataTypeVec3}, {ElementType: DataTypeVec2}, {ElementType: DataTypeVec3}}
)
