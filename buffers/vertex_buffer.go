package buffers

import (
	"github.com/bloeys/nplay/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type VertexBuffer struct {
	Id     uint32
	Stride int32
	layout []Element
}

func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {

	vb.Bind()

	if len(values) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage.ToGL())
		return
	}

	gl.BufferData(gl.ARRAY_BUFFER, len(values)*4, gl.Ptr(&values[0]), usage.ToGL())
}

func (vb *VertexBuffer) Layout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

// SetLayout computes offsets and stride for a tightly interleaved vertex.
func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = make([]Element, len(layout))
	copy(vb.layout, layout)

	for i := range vb.layout {
		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func NewVertexBuffer(layout ...Element) VertexBuffer {

	vb := VertexBuffer{}

	gl.GenBuffers(1, &vb.Id)
	if vb.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	vb.SetLayout(layout...)
	return vb
}
