// Package app wires the window, device, scene and camera into the main loop.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/config"
	"github.com/Faultbox/scenegl/internal/engine/camera"
	"github.com/Faultbox/scenegl/internal/engine/debug"
	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/engine/gfx/opengl"
	"github.com/Faultbox/scenegl/internal/engine/input"
	"github.com/Faultbox/scenegl/internal/engine/scene"
	"github.com/Faultbox/scenegl/internal/engine/shader"
	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/internal/engine/window"
	"github.com/Faultbox/scenegl/internal/layout"
	"github.com/Faultbox/scenegl/internal/logger"
	"github.com/Faultbox/scenegl/pkg/math"
)

const title = "SceneGL"

// App is the running viewer.
type App struct {
	cfg     *config.Config
	window  *window.Window
	device  gfx.Device
	input   *input.Input
	camera  camera.Controller
	loader  *texture.Loader
	scene   *scene.Scene
	watcher *shader.Watcher
	shots   *debug.ScreenshotCapture
	running bool
}

// New opens the window and builds the scene described by cfg.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("camera", cfg.Camera.Mode),
	)

	a := &App{cfg: cfg}

	// Window first, since the GL context must exist before the device.
	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dev, err := opengl.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	a.device = dev

	if err := a.buildScene(); err != nil {
		a.Close()
		return nil, err
	}

	a.input = input.New()
	a.camera = newController(cfg.Camera)
	a.shots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "scenegl")

	if cfg.Debug.WatchShaders && cfg.Assets.ShaderDir != "" {
		a.watcher, err = shader.Watch(cfg.Assets.ShaderDir)
		if err != nil {
			// Hot reload is optional.
			logger.Warn("shader watch disabled", zap.Error(err))
		}
	}

	logger.Info("viewer initialized")
	return a, nil
}

func (a *App) buildScene() error {
	lib, err := shader.LoadLibrary(a.cfg.Assets.ShaderDir)
	if err != nil {
		return fmt.Errorf("failed to load shaders: %w", err)
	}

	desc := layout.Default()
	baseDir := ""
	if path := a.cfg.Assets.SceneFile; path != "" {
		if desc, err = layout.Load(path); err != nil {
			return fmt.Errorf("failed to load scene: %w", err)
		}
		baseDir = filepath.Dir(path)
	}

	width, height := a.window.DrawableSize()
	a.scene = scene.New(a.device, scene.Config{
		ClearColor: desc.ClearRGBA(),
		Width:      width,
		Height:     height,
	})
	a.loader = texture.NewLoader(a.device, a.cfg.Assets.TextureWorkers)

	b := &layout.Builder{
		Device:  a.device,
		Loader:  a.loader,
		Library: lib,
		BaseDir: baseDir,
	}
	drawables, err := b.Build(desc)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}
	a.scene.Add(drawables...)
	return nil
}

// newController creates the camera selected by the config.
func newController(cfg config.CameraConfig) camera.Controller {
	if cfg.Mode == config.CameraOrbit {
		return camera.NewOrbitCamera()
	}

	c := camera.NewFirstPerson()
	if cfg.Velocity > 0 {
		c.Velocity = cfg.Velocity
	}
	if cfg.Sensitivity > 0 {
		c.Sensitivity = cfg.Sensitivity
	}
	if len(cfg.Position) == 3 {
		c.Position = math.V3(cfg.Position[0], cfg.Position[1], cfg.Position[2])
	}
	return c
}

// movementKeys maps WASD to camera movement.
func movementKeys(down func(sdl.Scancode) bool) camera.Keys {
	return camera.Keys{
		Forward: down(sdl.SCANCODE_W),
		Back:    down(sdl.SCANCODE_S),
		Left:    down(sdl.SCANCODE_A),
		Right:   down(sdl.SCANCODE_D),
	}
}

// Run drives the frame loop until the window closes or a frame fails.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			break
		}
		a.handleInput()
		if !a.running {
			break
		}

		// 2. Finish pending work
		a.loader.Poll()
		a.reloadShaders()

		// 3. Render
		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Debug.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %d fps", title, frameCount))
			}
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleInput() {
	if _, _, ok := a.input.Resize(); ok {
		a.scene.Resize(a.window.DrawableSize())
	}

	if a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		if !a.window.PointerLocked() {
			a.running = false
			return
		}
		a.setPointerLock(false)
	}
	if a.input.IsButtonPressed(sdl.BUTTON_LEFT) && !a.window.PointerLocked() {
		a.setPointerLock(true)
	}

	a.camera.SetKeys(movementKeys(a.input.IsKeyDown))
	dx, dy := a.input.MouseDelta()
	a.camera.HandleMouse(float32(dx), float32(dy))
	if w := a.input.Wheel(); w != 0 {
		a.camera.HandleWheel(w)
	}
}

func (a *App) setPointerLock(locked bool) {
	if err := a.window.SetPointerLock(locked); err != nil {
		logger.Warn("pointer lock failed", zap.Error(err))
		return
	}
	a.camera.SetGrabbed(locked)
}

func (a *App) reloadShaders() {
	if a.watcher == nil {
		return
	}
	for _, name := range a.watcher.Drain() {
		src, err := shader.Load(a.watcher.Dir(), name)
		if err != nil {
			logger.Warn("shader reload skipped", zap.String("program", name), zap.Error(err))
			continue
		}
		if err := a.scene.ReloadShaders(src); err != nil {
			logger.Warn("shader reload failed", zap.String("program", name), zap.Error(err))
		}
	}
}

func (a *App) render() error {
	g := a.cfg.Graphics
	proj := camera.Projection(g.FOV*math32.Pi/180, a.scene.AspectRatio(), g.Near, g.Far)
	return a.scene.Render(proj.Mul(a.camera.Update()))
}

func (a *App) screenshot() {
	width, height := a.scene.Size()
	path, err := a.shots.Capture(a.device, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything New created. It is safe to call more than once.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing shader watcher", zap.Error(err))
		}
		a.watcher = nil
	}
	if a.scene != nil {
		a.scene.Close()
		a.scene = nil
	}
	if a.loader != nil {
		a.loader.Close()
		a.loader = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
