package assets

import (
	"unsafe"

	"github.com/bloeys/nplay/assets/images"
	"github.com/bloeys/nplay/logging"
	"github.com/bloeys/nplay/uniforms"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var ErrUnsupportedFormat = images.ErrUnsupportedFormat

type TextureLoadOptions struct {
	// NoSrgba uploads as linear RGBA. Normal maps and other data textures want this.
	NoSrgba   bool
	NoMipMaps bool
}

type Texture struct {
	// Path only exists for textures loaded from disk
	Path   string
	TexID  uint32
	Width  int32
	Height int32
}

func (t Texture) Uniform() uniforms.Texture {
	return uniforms.Texture{Id: t.TexID}
}

func (t *Texture) ExportUniforms(name string, bag *uniforms.Bag) {
	bag.Add(name, t.Uniform())
}

var (
	// Loaded textures keyed by path
	textures = map[string]Texture{}

	DefaultDiffuseTex  Texture
	DefaultSpecularTex Texture
	DefaultNormalTex   Texture
)

// LoadTexture decodes a png, jpeg or tiff file and uploads it. Repeated loads of
// the same path return the already uploaded texture.
func LoadTexture(path string, opts *TextureLoadOptions) (Texture, error) {

	if tex, ok := textures[path]; ok {
		return tex, nil
	}

	if opts == nil {
		opts = &TextureLoadOptions{}
	}

	pixels, err := images.Load(path)
	if err != nil {
		return Texture{}, err
	}

	tex := UploadTexture(pixels, opts)
	tex.Path = path
	textures[path] = tex

	logging.InfoLog.Printf("Loaded texture '%s' (%dx%d)\n", path, tex.Width, tex.Height)
	return tex, nil
}

// LoadTextureOrDefault returns fallback when path is empty, for material slots
// a model simply doesn't have. A non empty path that fails to load is an error.
func LoadTextureOrDefault(path string, opts *TextureLoadOptions, fallback Texture) (Texture, error) {

	if path == "" {
		return fallback, nil
	}

	return LoadTexture(path, opts)
}

func UploadTexture(pixels images.Pixels, opts *TextureLoadOptions) Texture {

	tex := Texture{
		Width:  pixels.Width,
		Height: pixels.Height,
	}

	gl.GenTextures(1, &tex.TexID)
	gl.BindTexture(gl.TEXTURE_2D, tex.TexID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	if opts.NoMipMaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	}

	internalFormat := int32(gl.SRGB_ALPHA)
	if opts.NoSrgba {
		internalFormat = gl.RGBA8
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, pixels.Width, pixels.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels.Data[0]))

	if !opts.NoMipMaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// CreateDefaultTextures uploads the 1x1 fallbacks used when a material has no texture for a slot.
// Must be called after the GL context exists.
func CreateDefaultTextures() {

	noMips := &TextureLoadOptions{NoSrgba: true, NoMipMaps: true}

	DefaultDiffuseTex = UploadTexture(images.Solid(255, 255, 255, 255), noMips)
	DefaultSpecularTex = UploadTexture(images.Solid(0, 0, 0, 255), noMips)

	// Flat tangent space normal pointing along +Z
	DefaultNormalTex = UploadTexture(images.Solid(128, 128, 255, 255), noMips)
}

func DeleteTextures() {

	for path, tex := range textures {
		gl.DeleteTextures(1, &tex.TexID)
		delete(textures, path)
	}

	for _, tex := range []*Texture{&DefaultDiffuseTex, &DefaultSpecularTex, &DefaultNormalTex} {
		if tex.TexID != 0 {
			gl.DeleteTextures(1, &tex.TexID)
			*tex = Texture{}
		}
	}
}
