package transform

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/uniforms"
	"github.com/chewxy/math32"
)

// Transform is an affine model matrix. Column vectors, so every Scale/Rotate/Translate
// right-multiplies the current matrix: the last call issued is the first one applied
// to a vertex.
type Transform struct {
	mat gglm.Mat4
}

// New returns the identity transform
func New() Transform {
	return Transform{mat: identity()}
}

// FromMat4 wraps an already composed matrix (e.g. a node transform from an imported model).
func FromMat4(m gglm.Mat4) Transform {
	return Transform{mat: m}
}

func (t *Transform) Scale(x, y, z float32) *Transform {

	s := identity()
	s.Data[0][0] = x
	s.Data[1][1] = y
	s.Data[2][2] = z

	t.mat.Mul(&s)
	return t
}

func (t *Transform) Translate(x, y, z float32) *Transform {

	tr := identity()
	tr.Data[3][0] = x
	tr.Data[3][1] = y
	tr.Data[3][2] = z

	t.mat.Mul(&tr)
	return t
}

// Rotate rotates by angle radians about axis. The axis is normalized here; a
// zero-length axis yields NaNs and is the caller's problem.
func (t *Transform) Rotate(angle float32, axis gglm.Vec3) *Transform {
	r := rotation(angle, axis.Data[0], axis.Data[1], axis.Data[2])
	t.mat.Mul(&r)
	return t
}

// MoveTo overwrites the translation column only. Scale and rotation already
// composed into the matrix are left as they are.
func (t *Transform) MoveTo(x, y, z float32) *Transform {
	t.mat.Data[3][0] = x
	t.mat.Data[3][1] = y
	t.mat.Data[3][2] = z
	return t
}

// Position is the current translation column.
func (t *Transform) Position() gglm.Vec3 {
	return gglm.NewVec3(t.mat.Data[3][0], t.mat.Data[3][1], t.mat.Data[3][2])
}

// Mat4 returns a copy of the matrix.
func (t *Transform) Mat4() gglm.Mat4 {
	return t.mat
}

// Raw returns an independent copy of the matrix in column-major order (Raw()[col][row]),
// the layout uploaded to shaders.
func (t *Transform) Raw() [4][4]float32 {
	return t.mat.Data
}

func (t Transform) ExportUniforms(name string, bag *uniforms.Bag) {
	bag.Add(name, uniforms.Mat4(t.mat.Data))
}

func identity() gglm.Mat4 {
	return gglm.Mat4{
		Data: [4][4]float32{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		},
	}
}

// rotation builds the axis-angle (Rodrigues) rotation matrix, stored column-major.
func rotation(angle, x, y, z float32) gglm.Mat4 {

	l := math32.Sqrt(x*x + y*y + z*z)
	x, y, z = x/l, y/l, z/l

	c := math32.Cos(angle)
	s := math32.Sin(angle)
	ic := 1 - c

	return gglm.Mat4{
		Data: [4][4]float32{
			{c + x*x*ic, y*x*ic + z*s, z*x*ic - y*s, 0},
			{x*y*ic - z*s, c + y*y*ic, z*y*ic + x*s, 0},
			{x*z*ic + y*s, y*z*ic - x*s, c + z*z*ic, 0},
			{0, 0, 0, 1},
		},
	}
}
