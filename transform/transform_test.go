package transform

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/uniforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

// apply multiplies the column-major matrix m by the point (x, y, z, 1).
func apply(m [4][4]float32, x, y, z float32) [3]float32 {
	in := [4]float32{x, y, z, 1}
	var out [3]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out[row] += m[col][row] * in[col]
		}
	}
	return out
}

func assertMatNear(t *testing.T, expected, actual [4][4]float32) {
	t.Helper()
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			assert.InDeltaf(t, expected[col][row], actual[col][row], eps, "col=%d row=%d", col, row)
		}
	}
}

func TestNewIsIdentity(t *testing.T) {
	tr := New()
	assert.Equal(t, [4][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}, tr.Raw())
}

func TestCompositionOrderIsPreserved(t *testing.T) {

	translateThenScale := New()
	translateThenScale.Translate(1, 0, 0).Scale(2, 2, 2)

	scaleThenTranslate := New()
	scaleThenTranslate.Scale(2, 2, 2).Translate(1, 0, 0)

	assert.NotEqual(t, translateThenScale.Raw(), scaleThenTranslate.Raw())

	// T*S: the point is scaled first, then moved by 1
	p := apply(translateThenScale.Raw(), 1, 1, 1)
	assert.InDelta(t, 3, p[0], eps)
	assert.InDelta(t, 2, p[1], eps)

	// S*T: the point is moved first, then everything is scaled
	p = apply(scaleThenTranslate.Raw(), 1, 1, 1)
	assert.InDelta(t, 4, p[0], eps)
	assert.InDelta(t, 2, p[1], eps)

	assert.InDelta(t, 1, translateThenScale.Raw()[3][0], eps)
	assert.InDelta(t, 2, scaleThenTranslate.Raw()[3][0], eps)
}

func TestRotateAboutZ(t *testing.T) {

	tr := New()
	tr.Rotate(math.Pi/2, gglm.NewVec3(0, 0, 1))

	p := apply(tr.Raw(), 1, 0, 0)
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 1, p[1], eps)
	assert.InDelta(t, 0, p[2], eps)
}

func TestRotateNormalizesAxis(t *testing.T) {

	a := New()
	a.Rotate(0.7, gglm.NewVec3(0, 3, 0))

	b := New()
	b.Rotate(0.7, gglm.NewVec3(0, 1, 0))

	assertMatNear(t, b.Raw(), a.Raw())
}

func TestRotateZeroAxisIsNaN(t *testing.T) {

	tr := New()
	tr.Rotate(1, gglm.NewVec3(0, 0, 0))

	raw := tr.Raw()
	assert.True(t, math.IsNaN(float64(raw[0][0])))
}

func TestRotateThenTranslateOrder(t *testing.T) {

	// R*T: translation is rotated too
	tr := New()
	tr.Rotate(math.Pi/2, gglm.NewVec3(0, 0, 1)).Translate(1, 0, 0)

	p := apply(tr.Raw(), 0, 0, 0)
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 1, p[1], eps)
}

func TestMoveToKeepsLinearPart(t *testing.T) {

	tr := New()
	tr.Scale(2, 3, 4).Rotate(0.5, gglm.NewVec3(1, 1, 0)).Translate(5, 6, 7)
	before := tr.Raw()

	tr.MoveTo(-1, -2, -3)
	after := tr.Raw()

	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			assert.Equal(t, before[col][row], after[col][row])
		}
	}

	assert.Equal(t, float32(-1), after[3][0])
	assert.Equal(t, float32(-2), after[3][1])
	assert.Equal(t, float32(-3), after[3][2])
	assert.Equal(t, before[3][3], after[3][3])

	pos := tr.Position()
	assert.Equal(t, [3]float32{-1, -2, -3}, pos.Data)
}

func TestMoveToDiffersFromTranslate(t *testing.T) {

	moved := New()
	moved.Scale(2, 2, 2).MoveTo(1, 0, 0)

	translated := New()
	translated.Scale(2, 2, 2).Translate(1, 0, 0)

	assert.Equal(t, float32(1), moved.Raw()[3][0])
	assert.Equal(t, float32(2), translated.Raw()[3][0])
}

func TestRawIsACopy(t *testing.T) {

	tr := New()
	raw := tr.Raw()
	raw[0][0] = 42

	assert.Equal(t, float32(1), tr.Raw()[0][0])

	tr.Translate(1, 2, 3)
	assert.Equal(t, float32(0), raw[3][0])
}

func TestBuilderMatchesMutatingCalls(t *testing.T) {

	axis := gglm.NewVec3(0, 1, 0)
	built := NewBuilder().Scale(1, 2, 3).Rotate(0.3, axis).Translate(4, 5, 6).Build()

	manual := New()
	manual.Scale(1, 2, 3).Rotate(0.3, axis).Translate(4, 5, 6)

	assert.Equal(t, manual.Raw(), built.Raw())
}

func TestBuilderIsValueChained(t *testing.T) {

	base := NewBuilder().Translate(1, 0, 0)
	a := base.Scale(2, 2, 2).Build()
	b := base.Build()

	assert.NotEqual(t, a.Raw(), b.Raw())
	assert.Equal(t, float32(1), b.Raw()[0][0])
}

func TestExportUniforms(t *testing.T) {

	tr := NewBuilder().Translate(2, -1, -1).Build()
	bag := uniforms.NewBag()
	tr.ExportUniforms("model", bag)

	require.Equal(t, 1, bag.Len())
	v, ok := bag.Get("model")
	require.True(t, ok)
	assert.Equal(t, uniforms.Mat4(tr.Raw()), v)
}
