package buffers

import (
	"github.com/bloeys/nplay/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexArray is the vertex/index buffer pair a draw call consumes.
type VertexArray struct {
	Id          uint32
	Vbo         VertexBuffer
	IndexBuffer IndexBuffer
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	gl.BindVertexArray(0)
}

func (va *VertexArray) SetVertexBuffer(vbo VertexBuffer) {

	// VBOs are captured by the VAO at the VertexAttribPointer calls
	va.Bind()
	vbo.Bind()

	for i, l := range vbo.layout {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), l.CompCount(), l.GLType(), false, vbo.Stride, uintptr(l.Offset))
	}

	va.Vbo = vbo
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

func (va *VertexArray) Delete() {
	gl.DeleteBuffers(1, &va.Vbo.Id)
	gl.DeleteBuffers(1, &va.IndexBuffer.Id)
	gl.DeleteVertexArrays(1, &va.Id)
}

func NewVertexArray() VertexArray {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL vertex array object")
	}

	return vao
}

// NewIndexedVertexArray uploads interleaved vertices and indices into a new VAO.
func NewIndexedVertexArray(vertices []float32, indices []uint32, layout ...Element) VertexArray {

	vao := NewVertexArray()

	vbo := NewVertexBuffer(layout...)
	vbo.SetData(vertices, BufUsage_Static_Draw)

	ib := NewIndexBuffer()
	ib.SetData(indices)

	vao.SetVertexBuffer(vbo)
	vao.SetIndexBuffer(ib)
	vao.UnBind()

	return vao
}
