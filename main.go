package main

import (
	"math"
	"path/filepath"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nplay/assets"
	"github.com/bloeys/nplay/config"
	"github.com/bloeys/nplay/engine"
	"github.com/bloeys/nplay/input/binding"
	"github.com/bloeys/nplay/lights"
	"github.com/bloeys/nplay/logging"
	"github.com/bloeys/nplay/materials"
	"github.com/bloeys/nplay/meshes"
	"github.com/bloeys/nplay/renderer"
	"github.com/bloeys/nplay/renderer/rend3dgl"
	"github.com/bloeys/nplay/scene"
	"github.com/bloeys/nplay/settings"
	"github.com/bloeys/nplay/shaders"
	"github.com/bloeys/nplay/shaders/glsl"
	"github.com/bloeys/nplay/shaders/hotreload"
	"github.com/bloeys/nplay/transform"
	nplayimgui "github.com/bloeys/nplay/ui/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	configPath = "./nplay.toml"

	meshCube   = "cube"
	meshSquare = "square"
	meshModel  = "model"
)

var _ engine.Game = &Game{}

// Point lights as placed in the playground. The first one orbits.
var pointLightPositions = [lights.MaxPointLights]gglm.Vec3{
	gglm.NewVec3(1.2, 2, 2),
	gglm.NewVec3(2.3, -3.3, -4),
	gglm.NewVec3(-4, 2, -6),
	gglm.NewVec3(0, 0, -3),
}

type Game struct {
	Win       *engine.Window
	Cfg       config.Config
	Rend      renderer.Render
	ImGUIInfo nplayimgui.ImguiInfo

	Binding  binding.Binding
	Settings settings.Settings
	Scene    *scene.Scene

	Meshes   map[string]*meshes.Mesh
	Programs map[materials.ProgramKind]*shaders.Program

	// Nil when hot reload is off or the watcher couldn't start
	Watcher *hotreload.Watcher
}

func main() {

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err: ", err)
	}

	err = engine.Init(cfg.Window.MSAA)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err: ", err)
	}

	flags := engine.WindowFlags_RESIZABLE | engine.WindowFlags_ALLOW_HIGHDPI
	if cfg.Window.Fullscreen {
		flags |= engine.WindowFlags_FULLSCREEN_DESKTOP
	}

	rend := rend3dgl.NewRend3DGL()
	win, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, flags, rend)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}
	defer win.Destroy()

	engine.SetVSync(cfg.Window.VSync)
	engine.SetMSAA(cfg.Window.MSAA > 0)

	game := &Game{
		Win:       win,
		Cfg:       cfg,
		Rend:      rend,
		ImGUIInfo: nplayimgui.NewImGui(filepath.Join(cfg.Paths.Shaders, "imgui.glsl")),
		Binding:   binding.Default(cfg.Camera.MoveStep),
		Settings:  settings.Default(),
		Meshes:    map[string]*meshes.Mesh{},
		Programs:  map[materials.ProgramKind]*shaders.Program{},
	}
	win.OnResize = game.handleResize

	engine.Run(game, win, game.ImGUIInfo, cfg.Debug.ReportTicks)
}

func (g *Game) Init() {

	assets.CreateDefaultTextures()

	g.loadPrograms()
	g.loadMeshes()
	g.buildScene()

	if g.Cfg.Debug.HotReloadShaders {
		g.startShaderWatcher()
	}
}

func (g *Game) loadPrograms() {

	programFiles := map[materials.ProgramKind]string{
		materials.ProgramPhong: "phong.glsl",
		materials.ProgramPBR:   "pbr.glsl",
	}

	for kind, file := range programFiles {

		prog, err := shaders.LoadProgram(kind.String(), filepath.Join(g.Cfg.Paths.Shaders, file), glsl.LightDefines())
		if err != nil {
			logging.ErrLog.Fatalf("Failed to load '%s' program. Err: %s\n", kind, err)
		}

		g.Programs[kind] = prog
	}
}

func (g *Game) loadMeshes() {

	cube, err := meshes.NewCube()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create cube mesh. Err: ", err)
	}
	g.Meshes[meshCube] = &cube

	square, err := meshes.NewSquare()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create square mesh. Err: ", err)
	}
	g.Meshes[meshSquare] = &square

	if g.Cfg.Scene.Model == "" {
		return
	}

	model, err := meshes.Load(meshModel, filepath.Join(g.Cfg.Paths.Models, g.Cfg.Scene.Model))
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load model. Err: ", err)
	}
	g.Meshes[meshModel] = &model
}

func (g *Game) loadTexture(name string) assets.Texture {

	tex, err := assets.LoadTexture(filepath.Join(g.Cfg.Paths.Textures, name), &assets.TextureLoadOptions{})
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load texture. Err: ", err)
	}

	return tex
}

// modelMaterial builds the PBR material from the textures the model file references.
// Slots the model has no texture for use the 1x1 defaults.
func (g *Game) modelMaterial(m *meshes.Mesh) *materials.PBR {

	color, err := assets.LoadTextureOrDefault(m.Textures.Color, &assets.TextureLoadOptions{}, assets.DefaultDiffuseTex)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load model color texture. Err: ", err)
	}

	refl, err := assets.LoadTextureOrDefault(m.Textures.Reflection, &assets.TextureLoadOptions{NoSrgba: true}, assets.DefaultSpecularTex)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load model reflection texture. Err: ", err)
	}

	normal, err := assets.LoadTextureOrDefault(m.Textures.Normal, &assets.TextureLoadOptions{NoSrgba: true}, assets.DefaultNormalTex)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load model normal texture. Err: ", err)
	}

	return materials.NewPBR(color.Uniform(), refl.Uniform(), normal.Uniform())
}

func (g *Game) buildScene() {

	cfg := &g.Cfg

	s := scene.New(cfg.Scene.Seed)
	s.Tuning = scene.Tuning{
		MoveSpeed:       cfg.Camera.MoveSpeed,
		LookSensitivity: cfg.Camera.LookSensitivity,
		ZoomStep:        cfg.Camera.ZoomStep,
	}

	s.Perspective.Fov = cfg.Camera.FovRad()
	s.Perspective.FovMin = cfg.Camera.FovMinRad()
	s.Perspective.FovMax = cfg.Camera.FovMaxRad()
	s.Perspective.Near = cfg.Camera.Near
	s.Perspective.Far = cfg.Camera.Far
	s.Perspective.SetAspect(cfg.Window.Width, cfg.Window.Height)
	if err := s.Perspective.Validate(); err != nil {
		logging.ErrLog.Fatalln("Bad camera lens. Err: ", err)
	}

	white := gglm.NewVec3(1, 1, 1)

	s.DirLight = lights.DirectionalLight{Direction: gglm.NewVec3(-0.2, -1, -0.3)}
	s.DirLight.SetColor(gglm.NewVec3(0.4, 0.4, 0.4))

	for i := range s.PointLights {
		pl := &s.PointLights[i]
		pl.Position = pointLightPositions[i]
		pl.Attenuation = lights.DefaultAttenuation()
		pl.SetColor(white)
	}
	s.OrbitLight = 0
	s.OrbitSpeed = cfg.Scene.OrbitSpeed

	torchColors := lights.Colors{}
	torchColors.SetColor(white)
	s.SpotLight = lights.NewSpotLight(s.Camera.Pos, s.Camera.Front, torchColors, lights.DefaultAttenuation(), 12.5*math.Pi/180, 17.5*math.Pi/180)

	bricks := g.loadTexture("bricks.png")
	rubiks := g.loadTexture("rubiks cube.png")
	noSpecular := assets.DefaultSpecularTex.Uniform()

	s.Add(scene.Drawable{
		Name:      "square",
		Mesh:      meshSquare,
		Transform: transform.New(),
		Material:  materials.NewPhong(bricks.Uniform(), noSpecular, cfg.Scene.Shininess),
	})

	s.Add(scene.Drawable{
		Name:      "cube",
		Mesh:      meshCube,
		Transform: transform.NewBuilder().Translate(2, -1, -1).Build(),
		Material:  materials.NewPhong(rubiks.Uniform(), noSpecular, cfg.Scene.Shininess),
	})

	if model, ok := g.Meshes[meshModel]; ok {
		s.Add(scene.Drawable{
			Name:      model.Name,
			Mesh:      meshModel,
			Transform: transform.NewBuilder().Translate(-2, 0, -2).Build(),
			Material:  g.modelMaterial(model),
		})
	}

	// Small cubes showing where each point light is
	bulbMat := materials.NewPhong(assets.DefaultDiffuseTex.Uniform(), noSpecular, cfg.Scene.Shininess)
	for i := range s.PointLights {
		s.LightMarkers[i] = s.Add(scene.Drawable{
			Name:      "bulb",
			Mesh:      meshCube,
			Transform: transform.NewBuilder().Scale(0.2, 0.2, 0.2).Build(),
			Material:  bulbMat,
		})
	}

	g.Scene = s
}

func (g *Game) startShaderWatcher() {

	w, err := hotreload.NewWatcher()
	if err != nil {
		logging.WarnLog.Println("Shader hot reload disabled. Err: ", err)
		return
	}

	for _, prog := range g.Programs {
		if err := w.Add(prog.Path); err != nil {
			logging.WarnLog.Printf("Not watching shader '%s'. Err: %s\n", prog.Path, err)
		}
	}

	g.Watcher = w
}

func (g *Game) reloadChangedShaders() {

	if g.Watcher == nil {
		return
	}

	for _, path := range g.Watcher.Poll() {
		for _, prog := range g.Programs {

			// Poll reports absolute paths
			progPath, err := filepath.Abs(prog.Path)
			if err != nil || progPath != path {
				continue
			}

			if err := prog.Reload(); err != nil {
				logging.ErrLog.Println(err)
				continue
			}

			logging.InfoLog.Printf("Reloaded shader '%s'\n", path)
		}
	}
}

func (g *Game) handleResize(fbWidth, fbHeight int32) {
	g.Scene.Perspective.SetAspect(fbWidth, fbHeight)
}

func (g *Game) Update() {

	frame := g.Binding.Evaluate(g.Win.Input)
	if frame.Exit || g.Settings.Quit {
		engine.Quit()
	}

	if frame.Fullscreen {
		if err := g.Win.ToggleFullscreen(); err != nil {
			logging.WarnLog.Println("Failed to toggle fullscreen. Err: ", err)
		}
	}

	ticks := g.Win.Ticks
	g.Settings.UpdateTimings(ticks)

	nplayimgui.DrawSettings(&g.Settings)

	g.Scene.Update(ticks.DT(), &frame.Controls, &g.Settings)
	g.reloadChangedShaders()
}

func (g *Game) Render() {

	bg := g.Settings.BackgroundColor
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	state := renderer.DefaultRenderState()
	for i := range g.Scene.Drawables {

		d := &g.Scene.Drawables[i]
		mesh, ok := g.Meshes[d.Mesh]
		if !ok {
			continue
		}

		err := g.Rend.Draw(g.Programs[d.Program()], mesh, g.Scene.Uniforms(d), state)
		if err != nil {
			logging.ErrLog.Fatalln(err)
		}
	}
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {

	if g.Watcher != nil {
		g.Watcher.Close()
	}

	for _, m := range g.Meshes {
		m.Vao.Delete()
	}

	for _, p := range g.Programs {
		p.Delete()
	}

	assets.DeleteTextures()
	g.ImGUIInfo.Destroy()
}
