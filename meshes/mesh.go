package meshes

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/assert"
	"github.com/bloeys/nplay/buffers"
	"github.com/bloeys/nplay/meshes/geometry"
)

type Mesh struct {
	Name string

	// Vao attribute i is bound to shader location i, following the geometry layout:
	//	- Primitives: Loc0 Pos, Loc1 UV0
	//	- Imported models: Loc0 Pos, Loc1 Normal, Loc2 UV0, Loc3 Tangent
	Vao       buffers.VertexArray
	SubMeshes []geometry.SubMesh

	// Textures the model file references, already resolved against its directory
	Textures geometry.TexturePaths
}

var (
	// DefaultMeshLoadFlags are always applied on top of the flags passed to NewMesh.
	// The lit shaders expect tangents to be there.
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace
)

// Upload creates the GPU buffers for d.
func Upload(d geometry.Data) (Mesh, error) {

	if err := d.Validate(); err != nil {
		return Mesh{}, err
	}

	layout := make([]buffers.Element, len(d.Layout))
	for i, c := range d.Layout {
		layout[i] = buffers.Element{ElementType: elementType(c)}
	}

	return Mesh{
		Name:      d.Name,
		Vao:       buffers.NewIndexedVertexArray(d.Vertices, d.Indices, layout...),
		SubMeshes: d.SubMeshes,
		Textures:  d.Textures,
	}, nil
}

// Load imports a model file. glTF goes through the native decoder, anything
// else through assimp.
func Load(name, modelPath string) (Mesh, error) {

	var (
		d   geometry.Data
		err error
	)

	switch strings.ToLower(filepath.Ext(modelPath)) {
	case ".gltf", ".glb":
		d, err = geometry.LoadGLTF(modelPath)
	default:
		d, err = importAssimp(modelPath, 0)
	}

	if err != nil {
		return Mesh{}, err
	}

	d.Name = name
	d.Textures = resolveTextures(filepath.Dir(modelPath), d.Textures)
	return Upload(d)
}

func NewMesh(name, modelPath string, postProcessFlags asig.PostProcess) (Mesh, error) {

	d, err := importAssimp(modelPath, postProcessFlags)
	if err != nil {
		return Mesh{}, err
	}

	d.Name = name
	d.Textures = resolveTextures(filepath.Dir(modelPath), d.Textures)
	return Upload(d)
}

func importAssimp(modelPath string, postProcessFlags asig.PostProcess) (geometry.Data, error) {

	scene, release, err := asig.ImportFile(modelPath, DefaultMeshLoadFlags|postProcessFlags)
	if err != nil {
		return geometry.Data{}, fmt.Errorf("failed to load model '%s': %w", modelPath, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return geometry.Data{}, errors.New("no meshes found in file: " + modelPath)
	}

	d := geometry.Data{
		Layout:   geometry.LayoutPosNormUVTan,
		Vertices: make([]float32, 0, len(scene.Meshes[0].Vertices)*11),
		Indices:  make([]uint32, 0, len(scene.Meshes[0].Faces)*3),
	}

	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]

		// Tangents and UV0 are part of the layout even when the file lacks them
		if len(sceneMesh.Tangents) == 0 {
			sceneMesh.Tangents = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		if len(sceneMesh.TexCoords[0]) == 0 {
			sceneMesh.TexCoords[0] = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		if len(sceneMesh.Normals) == 0 {
			sceneMesh.Normals = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		vertices := geometry.Interleave(geometry.LayoutPosNormUVTan,
			flattenV3s(sceneMesh.Vertices),
			flattenV3s(sceneMesh.Normals),
			flattenV3sToUVs(sceneMesh.TexCoords[0]),
			flattenV3s(sceneMesh.Tangents),
		)

		d.Append(vertices, flattenFaces(sceneMesh.Faces))
	}

	d.Textures = assimpTextures(scene.Materials)
	return d, nil
}

// assimpTextures picks the first material that has a diffuse texture. Specular
// stands in for the reflection map, and height maps are used when no normal map exists.
func assimpTextures(materials []*asig.Material) geometry.TexturePaths {

	var paths geometry.TexturePaths
	for _, m := range materials {

		paths.Color = firstTexture(m, asig.TextureTypeDiffuse)
		if paths.Color == "" {
			continue
		}

		paths.Reflection = firstTexture(m, asig.TextureTypeSpecular)

		paths.Normal = firstTexture(m, asig.TextureTypeNormal)
		if paths.Normal == "" {
			paths.Normal = firstTexture(m, asig.TextureTypeHeight)
		}

		return paths
	}

	return paths
}

func firstTexture(m *asig.Material, texType asig.TextureType) string {

	if asig.GetMaterialTextureCount(m, texType) == 0 {
		return ""
	}

	tex, err := asig.GetMaterialTexture(m, texType, 0)
	if err != nil {
		return ""
	}

	return tex.Path
}

func resolveTextures(dir string, paths geometry.TexturePaths) geometry.TexturePaths {

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, filepath.FromSlash(p))
	}

	return geometry.TexturePaths{
		Color:      resolve(paths.Color),
		Reflection: resolve(paths.Reflection),
		Normal:     resolve(paths.Normal),
	}
}

func elementType(compCount int32) buffers.ElementType {

	switch compCount {
	case 1:
		return buffers.DataTypeFloat32
	case 2:
		return buffers.DataTypeVec2
	case 3:
		return buffers.DataTypeVec3
	case 4:
		return buffers.DataTypeVec4
	default:
		assert.T(false, "Unsupported vertex attribute size %d", compCount)
		return buffers.DataTypeUnknown
	}
}

func flattenV3s(v3s []gglm.Vec3) []float32 {

	out := make([]float32, 0, len(v3s)*3)
	for i := 0; i < len(v3s); i++ {
		out = append(out, v3s[i].Data[:]...)
	}

	return out
}

func flattenV3sToUVs(v3s []gglm.Vec3) []float32 {

	out := make([]float32, 0, len(v3s)*2)
	for i := 0; i < len(v3s); i++ {
		out = append(out, v3s[i].X(), v3s[i].Y())
	}

	return out
}

func flattenFaces(faces []asig.Face) []uint32 {

	assert.T(len(faces) > 0 && len(faces[0].Indices) == 3, "Faces must be triangles")

	uints := make([]uint32, len(faces)*3)
	for i := 0; i < len(faces); i++ {
		uints[i*3+0] = uint32(faces[i].Indices[0])
		uints[i*3+1] = uint32(faces[i].Indices[1])
		uints[i*3+2] = uint32(faces[i].Indices[2])
	}

	return uints
}
