package scene

import (
	"math/rand/v2"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/uniforms"
)

// Color is one of the named colours the swap gesture picks from.
type Color uint8

const (
	Red Color = iota
	Blue
	Green
	Magenta
	Yellow
	Teal
	White
	Grey
	Black

	colorCount
)

var colorRGBA = [colorCount][4]uint8{
	Red:     {255, 0, 0, 255},
	Blue:    {0, 0, 255, 255},
	Green:   {0, 255, 0, 255},
	Magenta: {255, 0, 255, 255},
	Yellow:  {255, 255, 0, 255},
	Teal:    {0, 255, 255, 255},
	White:   {255, 255, 255, 255},
	Grey:    {128, 128, 128, 255},
	Black:   {0, 0, 0, 255},
}

var colorNames = [colorCount]string{
	Red:     "red",
	Blue:    "blue",
	Green:   "green",
	Magenta: "magenta",
	Yellow:  "yellow",
	Teal:    "teal",
	White:   "white",
	Grey:    "grey",
	Black:   "black",
}

func (c Color) String() string {

	if c >= colorCount {
		return "unknown"
	}

	return colorNames[c]
}

// RGBA is the colour with channels in [0,1].
func (c Color) RGBA() [4]float32 {

	if c >= colorCount {
		return [4]float32{}
	}

	raw := colorRGBA[c]
	return [4]float32{
		float32(raw[0]) / 255,
		float32(raw[1]) / 255,
		float32(raw[2]) / 255,
		float32(raw[3]) / 255,
	}
}

func (c Color) Vec3() gglm.Vec3 {
	rgba := c.RGBA()
	return gglm.NewVec3(rgba[0], rgba[1], rgba[2])
}

func (c Color) Uniform() uniforms.Vec3 {
	rgba := c.RGBA()
	return uniforms.Vec3{rgba[0], rgba[1], rgba[2]}
}

// RandomColor picks uniformly among the named colours.
func RandomColor(r *rand.Rand) Color {
	return Color(r.IntN(int(colorCount)))
}
