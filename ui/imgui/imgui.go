package nplayimgui

import (
	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/nplay/buffers"
	"github.com/bloeys/nplay/logging"
	"github.com/bloeys/nplay/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// ImguiInfo is the GL backend of the overlay: the imgui context plus the
// program, buffers and font atlas it draws with.
type ImguiInfo struct {
	ImCtx   imgui.Context
	Program *shaders.Program

	VaoId      uint32
	VboId      uint32
	IndexBufId uint32
	TexId      uint32
}

func (i *ImguiInfo) FrameStart(winWidth, winHeight, dt float32) {

	imIo := imgui.CurrentIO()
	imIo.SetDisplaySize(imgui.Vec2{X: winWidth, Y: winHeight})

	// imgui asserts on a zero delta
	if dt <= 0 {
		dt = 1.0 / 60
	}
	imIo.SetDeltaTime(dt)

	imgui.NewFrame()
}

func (i *ImguiInfo) Render(winWidth, winHeight float32, fbWidth, fbHeight int32) {

	imgui.Render()

	// Minimized
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	drawData := imgui.CurrentDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / winWidth,
		Y: float32(fbHeight) / winHeight,
	})

	// Overlay state: alpha blended, no culling or depth, scissored
	var lastScissorBox [4]int32
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	lastBlend := gl.IsEnabled(gl.BLEND)
	lastCullFace := gl.IsEnabled(gl.CULL_FACE)
	lastDepthTest := gl.IsEnabled(gl.DEPTH_TEST)
	lastScissorTest := gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.Viewport(0, 0, fbWidth, fbHeight)

	orthoProjection := [4][4]float32{
		{2.0 / winWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -winHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	i.Program.Bind()
	i.Program.SetUnifInt32("Texture", 0)
	i.Program.SetUnifMat4("ProjMtx", orthoProjection)

	gl.BindVertexArray(i.VaoId)
	gl.BindBuffer(gl.ARRAY_BUFFER, i.VboId)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, i.IndexBufId)

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.EnableVertexAttribArray(0)
	gl.EnableVertexAttribArray(1)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, i.TexId)

	for _, list := range drawData.CommandLists() {

		vertexBuffer, vertexBufferSize := list.GetVertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, buffers.BufUsage_Stream_Draw.ToGL())

		indexBuffer, indexBufferSize := list.GetIndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, buffers.BufUsage_Stream_Draw.ToGL())

		for _, cmd := range list.Commands() {

			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}

			clipRect := cmd.ClipRect()
			gl.Scissor(int32(clipRect.X), fbHeight-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount()), drawType, uintptr(int(cmd.IdxOffset())*indexSize), int32(cmd.VtxOffset()))
		}
	}

	gl.BindVertexArray(0)

	setEnabled(gl.BLEND, lastBlend)
	setEnabled(gl.CULL_FACE, lastCullFace)
	setEnabled(gl.DEPTH_TEST, lastDepthTest)
	setEnabled(gl.SCISSOR_TEST, lastScissorTest)
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
}

func setEnabled(cap uint32, enabled bool) {

	if enabled {
		gl.Enable(cap)
		return
	}

	gl.Disable(cap)
}

func (i *ImguiInfo) Destroy() {
	gl.DeleteTextures(1, &i.TexId)
	gl.DeleteBuffers(1, &i.VboId)
	gl.DeleteBuffers(1, &i.IndexBufId)
	gl.DeleteVertexArrays(1, &i.VaoId)
	i.Program.Delete()
	i.ImCtx.Destroy()
}

// NewImGui creates the imgui context and uploads the font atlas. The GL context must exist.
func NewImGui(shaderPath string) ImguiInfo {

	prog, err := shaders.LoadProgram("imgui", shaderPath, nil)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load imgui shader. Err: ", err)
	}

	imguiInfo := ImguiInfo{
		ImCtx:   imgui.CreateContext(),
		Program: prog,
	}

	imIo := imgui.CurrentIO()
	imIo.SetBackendFlags(imIo.BackendFlags() | imgui.BackendFlagsRendererHasVtxOffset)

	gl.GenVertexArrays(1, &imguiInfo.VaoId)
	gl.GenBuffers(1, &imguiInfo.VboId)
	gl.GenBuffers(1, &imguiInfo.IndexBufId)
	gl.GenTextures(1, &imguiInfo.TexId)

	gl.BindTexture(gl.TEXTURE_2D, imguiInfo.TexId)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	// Alpha only atlas, the shader reads it from the red channel
	pixels, width, height, _ := imIo.Fonts().GetTextureDataAsAlpha8()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, pixels)
	imIo.Fonts().SetTexID(imgui.TextureID(uintptr(imguiInfo.TexId)))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	imgui.StyleColorsDark()
	return imguiInfo
}

func SdlScancodeToImGuiKey(scancode sdl.Scancode) imgui.Key {

	switch scancode {
	case sdl.SCANCODE_TAB:
		return imgui.KeyTab
	case sdl.SCANCODE_LEFT:
		return imgui.KeyLeftArrow
	case sdl.SCANCODE_RIGHT:
		return imgui.KeyRightArrow
	case sdl.SCANCODE_UP:
		return imgui.KeyUpArrow
	case sdl.SCANCODE_DOWN:
		return imgui.KeyDownArrow
	case sdl.SCANCODE_PAGEUP:
		return imgui.KeyPageUp
	case sdl.SCANCODE_PAGEDOWN:
		return imgui.KeyPageDown
	case sdl.SCANCODE_HOME:
		return imgui.KeyHome
	case sdl.SCANCODE_END:
		return imgui.KeyEnd
	case sdl.SCANCODE_INSERT:
		return imgui.KeyInsert
	case sdl.SCANCODE_DELETE:
		return imgui.KeyDelete
	case sdl.SCANCODE_BACKSPACE:
		return imgui.KeyBackspace
	case sdl.SCANCODE_SPACE:
		return imgui.KeySpace
	case sdl.SCANCODE_RETURN:
		return imgui.KeyEnter
	case sdl.SCANCODE_ESCAPE:
		return imgui.KeyEscape
	case sdl.SCANCODE_KP_ENTER:
		return imgui.KeyKeypadEnter
	case sdl.SCANCODE_LCTRL:
		return imgui.KeyLeftCtrl
	case sdl.SCANCODE_RCTRL:
		return imgui.KeyRightCtrl
	case sdl.SCANCODE_LSHIFT:
		return imgui.KeyLeftShift
	case sdl.SCANCODE_RSHIFT:
		return imgui.KeyRightShift
	case sdl.SCANCODE_LALT:
		return imgui.KeyLeftAlt
	case sdl.SCANCODE_RALT:
		return imgui.KeyRightAlt
	case sdl.SCANCODE_A:
		return imgui.KeyA
	case sdl.SCANCODE_C:
		return imgui.KeyC
	case sdl.SCANCODE_V:
		return imgui.KeyV
	case sdl.SCANCODE_X:
		return imgui.KeyX
	case sdl.SCANCODE_Y:
		return imgui.KeyY
	case sdl.SCANCODE_Z:
		return imgui.KeyZ
	default:
		return imgui.KeyNone
	}
}
