package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/nplay/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int32(1024), cfg.Window.Width)
	assert.Equal(t, int32(768), cfg.Window.Height)
	assert.InDelta(t, 0.785398, cfg.Camera.FovRad(), 1e-5)
}

func TestParseOverlaysDefaults(t *testing.T) {

	cfg, err := Parse([]byte(`
[window]
title = "Test"
width = 1280

[camera]
fov = 30.0

[debug]
report_ticks = false
`))
	require.NoError(t, err)

	assert.Equal(t, "Test", cfg.Window.Title)
	assert.Equal(t, int32(1280), cfg.Window.Width)
	assert.Equal(t, int32(768), cfg.Window.Height)
	assert.Equal(t, float32(30), cfg.Camera.Fov)
	assert.Equal(t, Default().Camera.Near, cfg.Camera.Near)
	assert.False(t, cfg.Debug.ReportTicks)
	assert.True(t, cfg.Debug.HotReloadShaders)
}

func TestParseRejects(t *testing.T) {

	tests := []struct {
		name string
		data string
		err  error
	}{
		{name: "near after far", data: "[camera]\nnear = 200.0\n", err: ErrInvalidCamera},
		{name: "zero near", data: "[camera]\nnear = 0.0\n", err: ErrInvalidCamera},
		{name: "fov outside range", data: "[camera]\nfov = 60.0\n", err: ErrInvalidCamera},
		{name: "fov range inverted", data: "[camera]\nfov_min = 50.0\nfov_max = 40.0\n", err: ErrInvalidCamera},
		{name: "bad size", data: "[window]\nheight = 0\n", err: ErrInvalidWindow},
		{name: "unknown key", data: "[window]\ncolour = 1\n"},
		{name: "not toml", data: "[window\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {

	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(nil) })

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "nplay.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\norbit_speed = 2.5\nseed = 9\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), cfg.Scene.OrbitSpeed)
	assert.Equal(t, uint64(9), cfg.Scene.Seed)

	require.NoError(t, os.WriteFile(path, []byte("[camera]\nfar = 0.01\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidCamera)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {

	data, err := os.ReadFile("../nplay.toml")
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
