package rend3dgl

import (
	"fmt"

	"github.com/bloeys/nplay/meshes"
	"github.com/bloeys/nplay/renderer"
	"github.com/bloeys/nplay/shaders"
	"github.com/bloeys/nplay/uniforms"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Render = &Rend3DGL{}

type Rend3DGL struct {
	BoundVaoId  uint32
	BoundProgId uint32

	state      renderer.RenderState
	stateValid bool
}

func (r *Rend3DGL) Draw(prog *shaders.Program, mesh *meshes.Mesh, bag *uniforms.Bag, state renderer.RenderState) error {

	r.applyState(state)

	if prog.Id != r.BoundProgId {
		prog.Bind()
		r.BoundProgId = prog.Id
	}

	prog.ApplyUniforms(bag)

	if mesh.Vao.Id != r.BoundVaoId {
		mesh.Vao.Bind()
		r.BoundVaoId = mesh.Vao.Id
	}

	for i := 0; i < len(mesh.SubMeshes); i++ {
		sm := &mesh.SubMeshes[i]
		// Offset is in bytes into the uint32 index buffer
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, sm.IndexCount, gl.UNSIGNED_INT, uintptr(sm.BaseIndex)*4, sm.BaseVertex)
	}

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		return fmt.Errorf("drawing mesh '%s' with program '%s' failed with GL error 0x%x", mesh.Name, prog.Name, glErr)
	}

	return nil
}

func (r *Rend3DGL) applyState(s renderer.RenderState) {

	if r.stateValid && r.state == s {
		return
	}

	if s.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	gl.DepthMask(s.DepthWrite)

	switch s.DepthFunc {
	case renderer.DepthFunc_Less:
		gl.DepthFunc(gl.LESS)
	case renderer.DepthFunc_LessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case renderer.DepthFunc_Always:
		gl.DepthFunc(gl.ALWAYS)
	}

	switch s.Cull {
	case renderer.CullMode_None:
		gl.Disable(gl.CULL_FACE)
	case renderer.CullMode_Back:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case renderer.CullMode_Front:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	}

	r.state = s
	r.stateValid = true
}

// FrameEnd forgets cached bindings, since other code (e.g. the overlay) may change them between frames.
func (r *Rend3DGL) FrameEnd() {
	r.BoundVaoId = 0
	r.BoundProgId = 0
	r.stateValid = false
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
