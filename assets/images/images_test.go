package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

// twoRows is a 2x2 image with a red top row and a blue bottom row.
func twoRows() *image.NRGBA {

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: 255})
		img.SetNRGBA(x, 1, color.NRGBA{B: 255, A: 255})
	}

	return img
}

func TestFormatFromPath(t *testing.T) {

	tests := map[string]Format{
		"a.png":        FormatPNG,
		"b/c.PNG":      FormatPNG,
		"rubiks.jpg":   FormatJPEG,
		"rubiks.jpeg":  FormatJPEG,
		"height.tif":   FormatTIFF,
		"height.tiff":  FormatTIFF,
		"model.gltf":   FormatUnknown,
		"no_extension": FormatUnknown,
	}

	for path, want := range tests {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}

func TestFromImageFlipsRows(t *testing.T) {

	p := FromImage(twoRows())
	require.Equal(t, int32(2), p.Width)
	require.Equal(t, int32(2), p.Height)
	require.Len(t, p.Data, 16)

	// First row in memory is the bottom (blue) row
	assert.Equal(t, []byte{0, 0, 255, 255, 0, 0, 255, 255}, p.Data[:8])
	assert.Equal(t, []byte{255, 0, 0, 255, 255, 0, 0, 255}, p.Data[8:])
}

func TestDecodeFormats(t *testing.T) {

	var pngBuf, tiffBuf, jpegBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, twoRows()))
	require.NoError(t, tiff.Encode(&tiffBuf, twoRows(), nil))
	require.NoError(t, jpeg.Encode(&jpegBuf, twoRows(), &jpeg.Options{Quality: 100}))

	for _, tt := range []struct {
		f   Format
		buf *bytes.Buffer
	}{
		{FormatPNG, &pngBuf},
		{FormatTIFF, &tiffBuf},
		{FormatJPEG, &jpegBuf},
	} {
		p, err := Decode(bytes.NewReader(tt.buf.Bytes()), tt.f)
		require.NoError(t, err, tt.f.String())
		assert.Equal(t, int32(2), p.Width, tt.f.String())
		assert.Equal(t, int32(2), p.Height, tt.f.String())
	}

	// Lossless formats round trip exactly
	p, err := Decode(bytes.NewReader(pngBuf.Bytes()), FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, FromImage(twoRows()), p)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), FormatUnknown)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load("model.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {

	path := filepath.Join(t.TempDir(), "bricks.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, twoRows()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), p.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSolid(t *testing.T) {
	p := Solid(1, 2, 3, 4)
	assert.Equal(t, Pixels{Width: 1, Height: 1, Data: []byte{1, 2, 3, 4}}, p)
}

func TestShippedTextures(t *testing.T) {

	for _, name := range []string{"bricks.png", "rubiks cube.png"} {
		p, err := Load(filepath.Join("..", "..", "res", "textures", name))
		require.NoError(t, err, name)
		assert.Equal(t, int32(128), p.Width, name)
		assert.Equal(t, int32(128), p.Height, name)
		assert.Len(t, p.Data, 128*128*4, name)
	}
}
