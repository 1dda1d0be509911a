package shaders

import (
	"fmt"
	"os"

	"github.com/bloeys/nplay/logging"
	"github.com/bloeys/nplay/shaders/glsl"
	"github.com/bloeys/nplay/uniforms"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type Program struct {
	Id   uint32
	Name string

	// Path is empty for programs built from an in memory source
	Path string

	defines  []glsl.Define
	unifLocs map[string]int32

	// Uniforms we already warned about, so a missing one isn't logged every frame
	warnedMissing map[string]struct{}
}

func (p *Program) Bind() {
	gl.UseProgram(p.Id)
}

func (p *Program) UnBind() {
	gl.UseProgram(0)
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.Id)
	p.Id = 0
}

// Reload recompiles the program from Path. On failure the old program stays
// in use and the error is returned.
func (p *Program) Reload() error {

	if p.Path == "" {
		return fmt.Errorf("program '%s' has no source path to reload from", p.Name)
	}

	src, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("failed to read shader '%s': %w", p.Path, err)
	}

	newId, err := compileAndLink(src, p.defines)
	if err != nil {
		return fmt.Errorf("failed to reload shader '%s': %w", p.Path, err)
	}

	gl.DeleteProgram(p.Id)
	p.Id = newId
	clear(p.unifLocs)
	clear(p.warnedMissing)

	return nil
}

// GetUnifLoc returns the cached location of uniformName, -1 if the program
// doesn't use it. GL ignores writes to -1, so those only get a warning once.
func (p *Program) GetUnifLoc(uniformName string) int32 {

	loc, ok := p.unifLocs[uniformName]
	if ok {
		return loc
	}

	name := gl.Str(uniformName + "\x00")
	loc = gl.GetUniformLocation(p.Id, name)
	p.unifLocs[uniformName] = loc

	if loc == -1 {
		if _, warned := p.warnedMissing[uniformName]; !warned {
			p.warnedMissing[uniformName] = struct{}{}
			logging.WarnLog.Printf("Uniform '%s' doesn't exist (or is unused) on program '%s'\n", uniformName, p.Name)
		}
	}

	return loc
}

func (p *Program) SetUnifInt32(uniformName string, val int32) {
	gl.ProgramUniform1i(p.Id, p.GetUnifLoc(uniformName), val)
}

func (p *Program) SetUnifFloat32(uniformName string, val float32) {
	gl.ProgramUniform1f(p.Id, p.GetUnifLoc(uniformName), val)
}

func (p *Program) SetUnifVec2(uniformName string, v uniforms.Vec2) {
	gl.ProgramUniform2fv(p.Id, p.GetUnifLoc(uniformName), 1, &v[0])
}

func (p *Program) SetUnifVec3(uniformName string, v uniforms.Vec3) {
	gl.ProgramUniform3fv(p.Id, p.GetUnifLoc(uniformName), 1, &v[0])
}

func (p *Program) SetUnifVec4(uniformName string, v uniforms.Vec4) {
	gl.ProgramUniform4fv(p.Id, p.GetUnifLoc(uniformName), 1, &v[0])
}

func (p *Program) SetUnifMat4(uniformName string, m uniforms.Mat4) {
	gl.ProgramUniformMatrix4fv(p.Id, p.GetUnifLoc(uniformName), 1, false, &m[0][0])
}

// ApplyUniforms uploads every value in bag and binds its textures. Texture
// units are handed out from 0 in visit order; samplers are pointed at them.
// Returns the number of texture units used.
func (p *Program) ApplyUniforms(bag *uniforms.Bag) int {

	var texUnit int32
	bag.Each(func(name string, v uniforms.Value) {

		switch v := v.(type) {
		case uniforms.Float:
			p.SetUnifFloat32(name, float32(v))
		case uniforms.Bool:
			var i int32
			if v {
				i = 1
			}
			p.SetUnifInt32(name, i)
		case uniforms.Vec2:
			p.SetUnifVec2(name, v)
		case uniforms.Vec3:
			p.SetUnifVec3(name, v)
		case uniforms.Vec4:
			p.SetUnifVec4(name, v)
		case uniforms.Mat4:
			p.SetUnifMat4(name, v)
		case uniforms.Texture:
			gl.ActiveTexture(gl.TEXTURE0 + uint32(texUnit))
			gl.BindTexture(gl.TEXTURE_2D, v.Id)
			p.SetUnifInt32(name, texUnit)
			texUnit++
		default:
			logging.WarnLog.Printf("Uniform '%s' has unsupported kind '%s'\n", name, v.Kind())
		}
	})

	return int(texUnit)
}
