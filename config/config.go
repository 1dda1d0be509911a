package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/bloeys/nplay/logging"
	"github.com/pelletier/go-toml/v2"
)

var (
	ErrInvalidWindow = errors.New("invalid window config")
	ErrInvalidCamera = errors.New("invalid camera config")
)

type Window struct {
	Title      string `toml:"title"`
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	VSync      bool   `toml:"vsync"`
	MSAA       int32  `toml:"msaa"`
	Fullscreen bool   `toml:"fullscreen"`
}

// Camera angles are in degrees in the file and converted with the Rad helpers.
type Camera struct {
	MoveSpeed       float32 `toml:"move_speed"`
	MoveStep        float32 `toml:"move_step"`
	LookSensitivity float32 `toml:"look_sensitivity"`
	ZoomStep        float32 `toml:"zoom_step"`
	Fov             float32 `toml:"fov"`
	FovMin          float32 `toml:"fov_min"`
	FovMax          float32 `toml:"fov_max"`
	Near            float32 `toml:"near"`
	Far             float32 `toml:"far"`
}

type Scene struct {
	// OrbitSpeed is in radians per second
	OrbitSpeed float32 `toml:"orbit_speed"`
	Shininess  float32 `toml:"shininess"`
	Seed       uint64  `toml:"seed"`
	Model      string  `toml:"model"`
}

type Paths struct {
	Shaders  string `toml:"shaders"`
	Textures string `toml:"textures"`
	Models   string `toml:"models"`
}

type Debug struct {
	ReportTicks      bool `toml:"report_ticks"`
	HotReloadShaders bool `toml:"hot_reload_shaders"`
}

type Config struct {
	Window Window `toml:"window"`
	Camera Camera `toml:"camera"`
	Scene  Scene  `toml:"scene"`
	Paths  Paths  `toml:"paths"`
	Debug  Debug  `toml:"debug"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "3D Playground",
			Width:  1024,
			Height: 768,
			VSync:  true,
			MSAA:   4,
		},
		Camera: Camera{
			MoveSpeed:       3,
			MoveStep:        1,
			LookSensitivity: 0.0025,
			ZoomStep:        0.030,
			Fov:             45,
			FovMin:          1,
			FovMax:          45,
			Near:            0.1,
			Far:             100,
		},
		Scene: Scene{
			OrbitSpeed: 1,
			Shininess:  0.25,
			Seed:       1,
			Model:      "",
		},
		Paths: Paths{
			Shaders:  "./res/shaders",
			Textures: "./res/textures",
			Models:   "./res/models",
		},
		Debug: Debug{
			ReportTicks:      true,
			HotReloadShaders: true,
		},
	}
}

// Load overlays the values found in the TOML file at path on top of Default().
// A missing file is not an error: the defaults are returned and a warning logged.
func Load(path string) (Config, error) {

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {

		if errors.Is(err, fs.ErrNotExist) {
			logging.WarnLog.Printf("Config file '%s' not found, using defaults\n", path)
			return cfg, nil
		}

		return cfg, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config '%s': %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data over Default() and validates the result. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {

	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), err
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	return cfg, nil
}

func (c *Config) Validate() error {

	w := &c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidWindow, w.Width, w.Height)
	}

	if w.MSAA < 0 {
		return fmt.Errorf("%w: msaa can't be negative, got %d", ErrInvalidWindow, w.MSAA)
	}

	cam := &c.Camera
	if cam.Near <= 0 || cam.Near >= cam.Far {
		return fmt.Errorf("%w: need 0 < near < far, got near=%f, far=%f", ErrInvalidCamera, cam.Near, cam.Far)
	}

	if cam.FovMin <= 0 || cam.FovMin > cam.FovMax || cam.FovMax >= 180 {
		return fmt.Errorf("%w: need 0 < fov_min <= fov_max < 180, got fov_min=%f, fov_max=%f", ErrInvalidCamera, cam.FovMin, cam.FovMax)
	}

	if cam.Fov < cam.FovMin || cam.Fov > cam.FovMax {
		return fmt.Errorf("%w: fov=%f outside [%f, %f]", ErrInvalidCamera, cam.Fov, cam.FovMin, cam.FovMax)
	}

	return nil
}

func (c *Camera) FovRad() float32 {
	return deg2Rad(c.Fov)
}

func (c *Camera) FovMinRad() float32 {
	return deg2Rad(c.FovMin)
}

func (c *Camera) FovMaxRad() float32 {
	return deg2Rad(c.FovMax)
}

func deg2Rad(deg float32) float32 {
	return deg * math.Pi / 180
}
