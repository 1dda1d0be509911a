package glsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const combined = `//shader:vertex
#version 410
layout(location=0) in vec3 vertPosIn;
void main() {}

//shader:fragment
#version 410
uniform vec3 uColor;
void main() {}
`

func TestSplit(t *testing.T) {

	stages, err := Split([]byte(combined), nil)
	require.NoError(t, err)
	require.Len(t, stages, 2)

	assert.Equal(t, StageVertex, stages[0].Kind)
	assert.Contains(t, string(stages[0].Src), "vertPosIn")
	assert.NotContains(t, string(stages[0].Src), "uColor")

	assert.Equal(t, StageFragment, stages[1].Kind)
	assert.Contains(t, string(stages[1].Src), "uColor")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(stages[1].Src)), "#version 410"))
}

func TestSplitInjectsDefinesInEveryStage(t *testing.T) {

	stages, err := Split([]byte(combined), LightDefines())
	require.NoError(t, err)

	for _, s := range stages {
		src := string(s.Src)
		assert.Contains(t, src, "#version 410\n#define NR_POINT_LIGHTS 4\n#define NR_SPOT_LIGHTS 1\n", s.Kind.String())
	}
}

func TestSplitErrors(t *testing.T) {

	tests := []struct {
		name string
		src  string
		err  error
	}{
		{name: "no markers", src: "#version 410\nvoid main() {}", err: ErrNoStages},
		{name: "unknown stage", src: "//shader:compute\nvoid main() {}", err: ErrUnknownStage},
		{name: "vertex only", src: "//shader:vertex\nvoid main() {}", err: ErrMissingStage},
		{name: "duplicate", src: "//shader:vertex\na\n//shader:vertex\nb\n//shader:fragment\nc", err: ErrDuplicateStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split([]byte(tt.src), nil)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestInjectDefines(t *testing.T) {

	defs := []Define{{Name: "A", Value: "1"}, {Name: "FLAG"}}

	assert.Equal(t, "#define A 1\n#define FLAG\nvoid main() {}", string(InjectDefines([]byte("void main() {}"), defs)))
	assert.Equal(t, "\n#version 410\n#define A 1\n#define FLAG\nvoid main() {}", string(InjectDefines([]byte("\n#version 410\nvoid main() {}"), defs)))
	assert.Equal(t, "#version 410\n#define A 1\n#define FLAG\n", string(InjectDefines([]byte("#version 410"), defs)))
	assert.Equal(t, "x", string(InjectDefines([]byte("x"), nil)))
}
