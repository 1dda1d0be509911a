// Package glsl handles combined shader sources without touching OpenGL.
//
// A combined source holds every stage of a program in one file, each stage
// starting with a '//shader:<stage>' line:
//
//	//shader:vertex
//	#version 410
//	...
//	//shader:fragment
//	#version 410
//	...
package glsl

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/bloeys/nplay/lights"
)

const stageMarker = "//shader:"

type StageKind int32

const (
	StageUnknown StageKind = iota
	StageVertex
	StageFragment
	StageGeometry
)

func (k StageKind) String() string {

	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

var (
	ErrNoStages       = errors.New("no shader stages found, put '//shader:vertex' and '//shader:fragment' before each stage")
	ErrUnknownStage   = errors.New("unknown shader stage, must be '//shader:vertex', '//shader:fragment' or '//shader:geometry'")
	ErrMissingStage   = errors.New("combined shader needs both a vertex and a fragment stage")
	ErrDuplicateStage = errors.New("shader stage declared more than once")
)

type Stage struct {
	Kind StageKind
	Src  []byte
}

type Define struct {
	Name  string
	Value string
}

// LightDefines are the array bounds every lit shader is compiled with.
func LightDefines() []Define {
	return []Define{
		{Name: "NR_POINT_LIGHTS", Value: strconv.Itoa(lights.MaxPointLights)},
		{Name: "NR_SPOT_LIGHTS", Value: strconv.Itoa(lights.MaxSpotLights)},
	}
}

// Split cuts a combined source into its stages and injects defines into each one.
func Split(src []byte, defines []Define) ([]Stage, error) {

	parts := bytes.Split(src, []byte(stageMarker))
	if len(parts) < 2 {
		return nil, ErrNoStages
	}

	stages := make([]Stage, 0, len(parts))
	seen := map[StageKind]bool{}
	for i := 0; i < len(parts); i++ {

		part := parts[i]

		// Happens when the marker is at the start of the file
		if len(bytes.TrimSpace(part)) == 0 {
			continue
		}

		// Anything before the first marker is a file header
		if i == 0 {
			continue
		}

		var kind StageKind
		switch {
		case bytes.HasPrefix(part, []byte("vertex")):
			part = part[len("vertex"):]
			kind = StageVertex
		case bytes.HasPrefix(part, []byte("fragment")):
			part = part[len("fragment"):]
			kind = StageFragment
		case bytes.HasPrefix(part, []byte("geometry")):
			part = part[len("geometry"):]
			kind = StageGeometry
		default:
			line, _, _ := bytes.Cut(part, []byte("\n"))
			return nil, fmt.Errorf("%w: got '%s'", ErrUnknownStage, bytes.TrimSpace(line))
		}

		if seen[kind] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, kind)
		}
		seen[kind] = true

		stages = append(stages, Stage{
			Kind: kind,
			Src:  InjectDefines(part, defines),
		})
	}

	if !seen[StageVertex] || !seen[StageFragment] {
		return nil, ErrMissingStage
	}

	return stages, nil
}

// InjectDefines adds '#define NAME VALUE' lines right after the '#version'
// line, or at the top when there is none, since nothing may precede #version.
func InjectDefines(src []byte, defines []Define) []byte {

	if len(defines) == 0 {
		return src
	}

	var defs bytes.Buffer
	for _, d := range defines {
		defs.WriteString("#define ")
		defs.WriteString(d.Name)
		if d.Value != "" {
			defs.WriteByte(' ')
			defs.WriteString(d.Value)
		}
		defs.WriteByte('\n')
	}

	versionStart := bytes.Index(src, []byte("#version"))
	if versionStart == -1 {
		return append(defs.Bytes(), src...)
	}

	lineEnd := bytes.IndexByte(src[versionStart:], '\n')
	if lineEnd == -1 {
		out := make([]byte, 0, len(src)+1+defs.Len())
		out = append(out, src...)
		out = append(out, '\n')
		return append(out, defs.Bytes()...)
	}

	split := versionStart + lineEnd + 1
	out := make([]byte, 0, len(src)+defs.Len())
	out = append(out, src[:split]...)
	out = append(out, defs.Bytes()...)
	return append(out, src[split:]...)
}
