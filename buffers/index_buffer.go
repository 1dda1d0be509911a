package buffers

import (
	"github.com/bloeys/nplay/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type IndexBuffer struct {
	Id uint32

	// Count is the number of indices, updated by SetData
	Count int32
}

func (ib *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.Id)
}

func (ib *IndexBuffer) UnBind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

func (ib *IndexBuffer) SetData(values []uint32) {

	ib.Bind()
	ib.Count = int32(len(values))

	if len(values) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, BufUsage_Static_Draw.ToGL())
		return
	}

	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(values)*4, gl.Ptr(&values[0]), BufUsage_Static_Draw.ToGL())
}

func NewIndexBuffer() IndexBuffer {

	ib := IndexBuffer{}

	gl.GenBuffers(1, &ib.Id)
	if ib.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL index buffer")
	}

	return ib
}
