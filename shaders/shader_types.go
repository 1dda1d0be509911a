package shaders

import (
	"github.com/bloeys/nplay/logging"
	"github.com/bloeys/nplay/shaders/glsl"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func glShaderType(k glsl.StageKind) uint32 {

	switch k {
	case glsl.StageVertex:
		return gl.VERTEX_SHADER
	case glsl.StageFragment:
		return gl.FRAGMENT_SHADER
	case glsl.StageGeometry:
		return gl.GEOMETRY_SHADER

	default:
		logging.ErrLog.Fatalf("Unknown shader stage '%d'\n", k)
		return 0
	}
}
