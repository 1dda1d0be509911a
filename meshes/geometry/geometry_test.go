package geometry

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCube(t *testing.T) {

	c := Cube()
	require.NoError(t, c.Validate())

	assert.Equal(t, int32(5), c.Stride())
	assert.Equal(t, 14, c.VertexCount())
	assert.Len(t, c.Indices, 36)
	require.Len(t, c.SubMeshes, 1)
	assert.Equal(t, SubMesh{BaseVertex: 0, BaseIndex: 0, IndexCount: 36}, c.SubMeshes[0])

	// Every corner of the unit cube is used
	corners := map[[3]float32]bool{}
	for i := 0; i < c.VertexCount(); i++ {
		v := c.Vertices[i*5 : i*5+3]
		corners[[3]float32{v[0], v[1], v[2]}] = true
	}
	assert.Len(t, corners, 8)
}

func TestSquare(t *testing.T) {
	s := Square()
	require.NoError(t, s.Validate())
	assert.Equal(t, 4, s.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, s.Indices)
}

func TestAppendOffsetsSubMeshes(t *testing.T) {

	d := Data{Name: "two", Layout: LayoutPosUV}
	tri := []float32{
		0, 0, 0, 0, 0,
		1, 0, 0, 1, 0,
		0, 1, 0, 0, 1,
	}
	d.Append(tri, []uint32{0, 1, 2})
	d.Append(tri, []uint32{2, 1, 0})

	require.NoError(t, d.Validate())
	assert.Equal(t, []SubMesh{
		{BaseVertex: 0, BaseIndex: 0, IndexCount: 3},
		{BaseVertex: 3, BaseIndex: 3, IndexCount: 3},
	}, d.SubMeshes)
}

func TestValidateCatchesBadIndices(t *testing.T) {

	d := Data{Name: "bad", Layout: LayoutPosUV}
	d.Append([]float32{0, 0, 0, 0, 0}, []uint32{0, 0, 1})
	assert.Error(t, d.Validate())

	d = Data{Name: "bad", Layout: LayoutPosUV, Vertices: []float32{1, 2, 3}}
	assert.Error(t, d.Validate())

	assert.Error(t, (&Data{Name: "empty"}).Validate())
}

func TestInterleave(t *testing.T) {

	out := Interleave([]int32{3, 2},
		[]float32{1, 2, 3, 4, 5, 6},
		[]float32{7, 8, 9, 10},
	)

	assert.Equal(t, []float32{1, 2, 3, 7, 8, 4, 5, 6, 9, 10}, out)
}

// triangleGLTF builds a minimal embedded glTF with one indexed triangle.
func triangleGLTF(t *testing.T) []byte {

	var buf bytes.Buffer
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	uvs := []float32{0, 0, 1, 0, 0, 1}
	indices := []uint16{0, 1, 2, 0}

	require.NoError(t, binary.Write(&buf, binary.LittleEndian, positions))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uvs))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, indices))

	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	return []byte(fmt.Sprintf(`{
	"asset": {"version": "2.0"},
	"buffers": [{"byteLength": %d, "uri": "%s"}],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 24},
		{"buffer": 0, "byteOffset": 60, "byteLength": 6}
	],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
		{"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC2"},
		{"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"}
	],
	"images": [{"uri": "bricks.png"}],
	"textures": [{"source": 0}],
	"materials": [{"name": "mat", "pbrMetallicRoughness": {"baseColorTexture": {"index": 0}}}],
	"meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 1}, "indices": 2, "material": 0}]}]
}`, buf.Len(), uri))
}

func TestDecodeGLTF(t *testing.T) {

	d, err := DecodeGLB(triangleGLTF(t))
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.Equal(t, "tri", d.Name)
	assert.Equal(t, LayoutPosNormUVTan, d.Layout)
	assert.Equal(t, 3, d.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, d.Indices)
	assert.Equal(t, "bricks.png", d.Textures.Color)
	assert.Empty(t, d.Textures.Reflection)

	// Second vertex: pos (1,0,0), zero normal, uv (1, 1-0)
	stride := int(d.Stride())
	v := d.Vertices[stride : 2*stride]
	assert.Equal(t, []float32{1, 0, 0}, v[0:3])
	assert.Equal(t, []float32{0, 0, 0}, v[3:6])
	assert.Equal(t, []float32{1, 1}, v[6:8])
}

func TestDecodeGLTFErrors(t *testing.T) {

	_, err := DecodeGLB([]byte("not gltf"))
	assert.Error(t, err)

	_, err = DecodeGLB([]byte(`{"asset": {"version": "2.0"}}`))
	assert.Error(t, err)
}
