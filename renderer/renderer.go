package renderer

import (
	"github.com/bloeys/nplay/meshes"
	"github.com/bloeys/nplay/shaders"
	"github.com/bloeys/nplay/uniforms"
)

type DepthFunc uint8

const (
	DepthFunc_Less DepthFunc = iota
	DepthFunc_LessEqual
	DepthFunc_Always
)

type CullMode uint8

const (
	CullMode_None CullMode = iota
	CullMode_Back
	CullMode_Front
)

// RenderState is the fixed function state a draw needs. Backends only touch
// the GPU when it differs from the state of the previous draw.
type RenderState struct {
	DepthTest  bool
	DepthWrite bool
	DepthFunc  DepthFunc
	Cull       CullMode
}

// DefaultRenderState is what opaque geometry uses: depth tested with less,
// depth written, back faces culled.
func DefaultRenderState() RenderState {
	return RenderState{
		DepthTest:  true,
		DepthWrite: true,
		DepthFunc:  DepthFunc_Less,
		Cull:       CullMode_Back,
	}
}

type Render interface {
	// Draw uploads bag to prog and draws every sub mesh of mesh
	Draw(prog *shaders.Program, mesh *meshes.Mesh, bag *uniforms.Bag, state RenderState) error
	FrameEnd()
}
