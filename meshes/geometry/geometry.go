// Package geometry holds CPU side mesh data: the built-in primitives and
// whatever the model importers produce, ready to be uploaded as one
// interleaved vertex buffer plus an index buffer.
package geometry

import (
	"fmt"

	"github.com/bloeys/nplay/assert"
)

// Component counts per vertex attribute, attribute i goes to shader location i.
var (
	LayoutPosUV        = []int32{3, 2}
	LayoutPosNormUVTan = []int32{3, 3, 2, 3}
)

type SubMesh struct {
	// BaseVertex is added to every index of the sub mesh
	BaseVertex int32
	BaseIndex  uint32
	IndexCount int32
}

// TexturePaths are the PBR textures a model references, relative to the model file.
type TexturePaths struct {
	Color      string
	Reflection string
	Normal     string
}

type Data struct {
	Name      string
	Layout    []int32
	Vertices  []float32
	Indices   []uint32
	SubMeshes []SubMesh
	Textures  TexturePaths
}

// Stride is the number of floats per vertex.
func (d *Data) Stride() int32 {

	var s int32
	for _, c := range d.Layout {
		s += c
	}

	return s
}

func (d *Data) VertexCount() int {

	stride := d.Stride()
	if stride == 0 {
		return 0
	}

	return len(d.Vertices) / int(stride)
}

// Validate checks that the buffers agree with the layout and that every index
// points at an existing vertex.
func (d *Data) Validate() error {

	stride := int(d.Stride())
	if stride == 0 {
		return fmt.Errorf("mesh '%s' has an empty layout", d.Name)
	}

	if len(d.Vertices)%stride != 0 {
		return fmt.Errorf("mesh '%s' has %d floats which isn't a multiple of the stride %d", d.Name, len(d.Vertices), stride)
	}

	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("mesh '%s' has %d indices which isn't a multiple of 3", d.Name, len(d.Indices))
	}

	vertCount := d.VertexCount()
	for _, sm := range d.SubMeshes {

		end := int(sm.BaseIndex) + int(sm.IndexCount)
		if end > len(d.Indices) {
			return fmt.Errorf("mesh '%s' has a sub mesh reading indices up to %d but only has %d", d.Name, end, len(d.Indices))
		}

		for _, idx := range d.Indices[sm.BaseIndex:end] {
			if int(sm.BaseVertex)+int(idx) >= vertCount {
				return fmt.Errorf("mesh '%s' references vertex %d but only has %d", d.Name, int(sm.BaseVertex)+int(idx), vertCount)
			}
		}
	}

	return nil
}

// Append adds vertices (in the mesh layout) and their indices as a new sub mesh.
func (d *Data) Append(vertices []float32, indices []uint32) {

	stride := d.Stride()
	assert.T(stride > 0, "Append on mesh '%s' without a layout", d.Name)
	assert.T(int32(len(vertices))%stride == 0, "Append on mesh '%s' got %d floats, not a multiple of stride %d", d.Name, len(vertices), stride)

	d.SubMeshes = append(d.SubMeshes, SubMesh{
		BaseVertex: int32(len(d.Vertices)) / stride,
		BaseIndex:  uint32(len(d.Indices)),
		IndexCount: int32(len(indices)),
	})

	d.Vertices = append(d.Vertices, vertices...)
	d.Indices = append(d.Indices, indices...)
}

// Interleave builds one vertex buffer from per attribute arrays. attrs[i]
// holds counts[i] floats per vertex; all must describe the same vertex count.
func Interleave(counts []int32, attrs ...[]float32) []float32 {

	assert.T(len(counts) == len(attrs), "Interleave got %d counts for %d attributes", len(counts), len(attrs))
	assert.T(len(attrs) > 0, "No input sent to interleave")

	vertCount := len(attrs[0]) / int(counts[0])

	var stride int32
	for i, a := range attrs {
		assert.T(len(a) == vertCount*int(counts[i]), "Vertex attribute %d has %d floats, expected %d", i, len(a), vertCount*int(counts[i]))
		stride += counts[i]
	}

	out := make([]float32, 0, vertCount*int(stride))
	for v := 0; v < vertCount; v++ {
		for i, a := range attrs {
			c := int(counts[i])
			out = append(out, a[v*c:v*c+c]...)
		}
	}

	return out
}
