package transform

import "github.com/bloeys/gglm/gglm"

// Builder chains transform operations by value:
//
//	tr := transform.NewBuilder().Translate(2, -1, -1).Scale(0.5, 0.5, 0.5).Build()
type Builder struct {
	t Transform
}

func NewBuilder() Builder {
	return Builder{t: New()}
}

func (b Builder) Scale(x, y, z float32) Builder {
	b.t.Scale(x, y, z)
	return b
}

func (b Builder) Rotate(angle float32, axis gglm.Vec3) Builder {
	b.t.Rotate(angle, axis)
	return b
}

func (b Builder) Translate(x, y, z float32) Builder {
	b.t.Translate(x, y, z)
	return b
}

func (b Builder) Build() Transform {
	return b.t
}
