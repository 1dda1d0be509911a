package geometry

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a .gltf (with its external buffers) or .glb file.
func LoadGLTF(path string) (Data, error) {

	doc, err := gltf.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to open glTF '%s': %w", path, err)
	}

	d, err := FromGLTF(doc)
	if err != nil {
		return Data{}, fmt.Errorf("failed to load glTF '%s': %w", path, err)
	}

	return d, nil
}

// DecodeGLB decodes a self contained glTF (usually .glb) from memory.
func DecodeGLB(data []byte) (Data, error) {

	doc := gltf.NewDocument()
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return Data{}, fmt.Errorf("failed to decode glTF: %w", err)
	}

	return FromGLTF(doc)
}

// FromGLTF flattens every triangle primitive of every mesh into one Data with
// the position/normal/uv/tangent layout. Node transforms are ignored.
func FromGLTF(doc *gltf.Document) (Data, error) {

	d := Data{Layout: LayoutPosNormUVTan}

	for _, mesh := range doc.Meshes {

		if d.Name == "" {
			d.Name = mesh.Name
		}

		for pi, prim := range mesh.Primitives {

			if prim.Mode != gltf.PrimitiveTriangles {
				return Data{}, fmt.Errorf("mesh '%s' primitive %d: only triangle lists are supported", mesh.Name, pi)
			}

			vertices, indices, err := readPrimitive(doc, prim)
			if err != nil {
				return Data{}, fmt.Errorf("mesh '%s' primitive %d: %w", mesh.Name, pi, err)
			}

			d.Append(vertices, indices)

			if d.Textures.Color == "" && prim.Material != nil {
				d.Textures = materialTextures(doc, *prim.Material)
			}
		}
	}

	if len(d.SubMeshes) == 0 {
		return Data{}, fmt.Errorf("no meshes found in glTF document")
	}

	return d, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]float32, []uint32, error) {

	posAccessor, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil, fmt.Errorf("primitive has no positions")
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], [][3]float32{})
	if err != nil {
		return nil, nil, err
	}

	vertCount := len(positions)
	pos := make([]float32, 0, vertCount*3)
	for _, p := range positions {
		pos = append(pos, p[0], p[1], p[2])
	}

	norm := make([]float32, vertCount*3)
	if normalAccessor, ok := prim.Attributes[gltf.NORMAL]; ok {

		normals, err := modeler.ReadNormal(doc, doc.Accessors[normalAccessor], [][3]float32{})
		if err != nil {
			return nil, nil, err
		}

		for i := 0; i < vertCount && i < len(normals); i++ {
			copy(norm[i*3:], normals[i][:])
		}
	}

	uv := make([]float32, vertCount*2)
	if uvAccessor, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {

		texCoords, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvAccessor], [][2]float32{})
		if err != nil {
			return nil, nil, err
		}

		// glTF puts the UV origin top left, GL bottom left
		for i := 0; i < vertCount && i < len(texCoords); i++ {
			uv[i*2] = texCoords[i][0]
			uv[i*2+1] = 1 - texCoords[i][1]
		}
	}

	// Tangents are left at zero and the normal map is skipped for these meshes
	tan := make([]float32, vertCount*3)

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], []uint32{})
		if err != nil {
			return nil, nil, err
		}
	} else {
		indices = make([]uint32, vertCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return Interleave(LayoutPosNormUVTan, pos, norm, uv, tan), indices, nil
}

func materialTextures(doc *gltf.Document, matIndex int) TexturePaths {

	var paths TexturePaths
	if matIndex < 0 || matIndex >= len(doc.Materials) {
		return paths
	}

	mat := doc.Materials[matIndex]
	if mat.PBRMetallicRoughness == nil {
		return paths
	}

	if tex := mat.PBRMetallicRoughness.BaseColorTexture; tex != nil {
		paths.Color = imageURI(doc, tex.Index)
	}

	if tex := mat.PBRMetallicRoughness.MetallicRoughnessTexture; tex != nil {
		paths.Reflection = imageURI(doc, tex.Index)
	}

	return paths
}

func imageURI(doc *gltf.Document, texIndex int) string {

	if texIndex < 0 || texIndex >= len(doc.Textures) {
		return ""
	}

	src := doc.Textures[texIndex].Source
	if src == nil || *src >= len(doc.Images) {
		return ""
	}

	return doc.Images[*src].URI
}
