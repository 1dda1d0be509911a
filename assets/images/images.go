// Package images decodes texture files into GL ready pixel buffers.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandykoh/prism"
	"golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type Format uint8

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatTIFF
)

func (f Format) String() string {

	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) Format {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".tif", ".tiff":
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

// Pixels is a tightly packed RGBA8 image, bottom row first as glTexImage2D expects.
type Pixels struct {
	Width  int32
	Height int32
	Data   []byte
}

func Load(path string) (Pixels, error) {

	f := FormatFromPath(path)
	if f == FormatUnknown {
		return Pixels{}, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Pixels{}, fmt.Errorf("failed to read image '%s': %w", path, err)
	}

	p, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return Pixels{}, fmt.Errorf("failed to decode image '%s': %w", path, err)
	}

	return p, nil
}

func Decode(r io.Reader, f Format) (Pixels, error) {

	var (
		img image.Image
		err error
	)

	switch f {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	default:
		return Pixels{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	if err != nil {
		return Pixels{}, err
	}

	return FromImage(img), nil
}

// FromImage converts any image to non premultiplied RGBA8 and flips it vertically.
func FromImage(img image.Image) Pixels {

	nrgba := prism.ConvertImageToNRGBA(img, 2)

	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	rowLen := w * 4

	out := make([]byte, rowLen*h)
	for y := 0; y < h; y++ {
		srcStart := y * nrgba.Stride
		dstStart := (h - 1 - y) * rowLen
		copy(out[dstStart:dstStart+rowLen], nrgba.Pix[srcStart:srcStart+rowLen])
	}

	return Pixels{
		Width:  int32(w),
		Height: int32(h),
		Data:   out,
	}
}

// Solid is a 1x1 image of a single colour, used for default textures.
func Solid(r, g, b, a uint8) Pixels {
	return Pixels{
		Width:  1,
		Height: 1,
		Data:   []byte{r, g, b, a},
	}
}
