package shaders

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bloeys/nplay/logging"
	"github.com/bloeys/nplay/shaders/glsl"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type Shader struct {
	Id   uint32
	Kind glsl.StageKind
}

func (s *Shader) Delete() {
	gl.DeleteShader(s.Id)
	s.Id = 0
}

// LoadProgram reads the combined shader at path, compiles it with defines and links it.
func LoadProgram(name, path string, defines []glsl.Define) (*Program, error) {

	combinedSource, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader '%s': %w", path, err)
	}

	p, err := LoadProgramSrc(name, combinedSource, defines)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader '%s': %w", path, err)
	}

	p.Path = path
	p.defines = defines
	return p, nil
}

func LoadProgramSrc(name string, src []byte, defines []glsl.Define) (*Program, error) {

	id, err := compileAndLink(src, defines)
	if err != nil {
		return nil, err
	}

	return &Program{
		Id:            id,
		Name:          name,
		defines:       defines,
		unifLocs:      make(map[string]int32),
		warnedMissing: make(map[string]struct{}),
	}, nil
}

func compileAndLink(src []byte, defines []glsl.Define) (uint32, error) {

	stages, err := glsl.Split(src, defines)
	if err != nil {
		return 0, err
	}

	progId := gl.CreateProgram()
	if progId == 0 {
		return 0, errors.New("failed to create shader program")
	}

	shaders := make([]Shader, 0, len(stages))
	deleteShaders := func() {
		for i := range shaders {
			shaders[i].Delete()
		}
	}

	for _, stage := range stages {

		shdr, err := CompileShader(stage)
		if err != nil {
			deleteShaders()
			gl.DeleteProgram(progId)
			return 0, err
		}

		gl.AttachShader(progId, shdr.Id)
		shaders = append(shaders, shdr)
	}

	gl.LinkProgram(progId)

	// Shaders are only flagged for deletion while attached, and freed with the program
	deleteShaders()

	if err := getProgramLinkErrors(progId); err != nil {
		gl.DeleteProgram(progId)
		return 0, err
	}

	return progId, nil
}

func CompileShader(stage glsl.Stage) (Shader, error) {

	shaderId := gl.CreateShader(glShaderType(stage.Kind))
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create OpenGL %s shader. OpenGL Error=%d", stage.Kind, gl.GetError())
	}

	shaderCStr, shaderFree := gl.Strs(string(stage.Src) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId); err != nil {
		gl.DeleteShader(shaderId)
		return Shader{}, fmt.Errorf("%s shader: %w", stage.Kind, err)
	}

	return Shader{Id: shaderId, Kind: stage.Kind}, nil
}

func getShaderCompileErrors(shaderId uint32) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}

func getProgramLinkErrors(progId uint32) error {

	var linked int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &linked)
	if linked == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(progId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(progId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Linking of program with id ", progId, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}
