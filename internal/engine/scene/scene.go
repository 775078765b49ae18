// Package scene owns a list of drawables and renders them once per frame.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/engine/shader"
	"github.com/Faultbox/scenegl/internal/logger"
	"github.com/Faultbox/scenegl/pkg/math"
)

// Drawable is anything the scene can render.
type Drawable interface {
	Position() math.Vec3
	Draw(pv math.Mat4) error
	Dispose()
}

// Animator is implemented by drawables that update themselves before each
// draw.
type Animator interface {
	Animate()
}

// Reloader is implemented by drawables that can swap their shader program.
type Reloader interface {
	ProgramName() string
	Reload(src shader.Source) error
}

// Config contains scene configuration options.
type Config struct {
	ClearColor [4]float32
	Width      int32
	Height     int32
}

// DefaultConfig returns an opaque black background at 1280x720.
func DefaultConfig() Config {
	return Config{
		ClearColor: [4]float32{0, 0, 0, 1},
		Width:      1280,
		Height:     720,
	}
}

// Scene renders its drawables in insertion order. It owns them: Close
// disposes every one.
type Scene struct {
	dev       gfx.Device
	config    Config
	drawables []Drawable
	closed    bool
}

// New creates an empty scene and sets the viewport.
func New(dev gfx.Device, cfg Config) *Scene {
	s := &Scene{dev: dev, config: cfg}
	if cfg.Width > 0 && cfg.Height > 0 {
		dev.Viewport(cfg.Width, cfg.Height)
	}
	return s
}

// Add appends drawables. The scene takes ownership.
func (s *Scene) Add(d ...Drawable) {
	s.drawables = append(s.drawables, d...)
}

// Len returns the number of drawables.
func (s *Scene) Len() int {
	return len(s.drawables)
}

// Drawables returns the drawables in render order.
func (s *Scene) Drawables() []Drawable {
	return s.drawables
}

// Render clears color and depth, then animates and draws every object in
// insertion order. The first draw error stops the frame.
func (s *Scene) Render(pv math.Mat4) error {
	c := s.config.ClearColor
	s.dev.SetClearColor(c[0], c[1], c[2], c[3])
	s.dev.Clear(true, true)
	s.dev.EnableDepthTest()

	for i, d := range s.drawables {
		if a, ok := d.(Animator); ok {
			a.Animate()
		}
		if err := d.Draw(pv); err != nil {
			return fmt.Errorf("draw object %d: %w", i, err)
		}
	}
	return nil
}

// Resize updates the viewport.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = width
	s.config.Height = height
	s.dev.Viewport(width, height)
}

// Size returns the current viewport size.
func (s *Scene) Size() (width, height int32) {
	return s.config.Width, s.config.Height
}

// AspectRatio returns width / height, or 1 for an empty viewport.
func (s *Scene) AspectRatio() float32 {
	if s.config.Height == 0 {
		return 1
	}
	return float32(s.config.Width) / float32(s.config.Height)
}

// ReloadShaders rebuilds the program of every drawable using src.Name.
// Drawables that fail keep their previous program; all failures are
// returned joined.
func (s *Scene) ReloadShaders(src shader.Source) error {
	var errs []error
	reloaded := 0
	for i, d := range s.drawables {
		r, ok := d.(Reloader)
		if !ok || r.ProgramName() != src.Name {
			continue
		}
		if err := r.Reload(src); err != nil {
			errs = append(errs, fmt.Errorf("object %d: %w", i, err))
			continue
		}
		reloaded++
	}

	logger.Info("shaders reloaded",
		zap.String("program", src.Name),
		zap.Int("objects", reloaded),
		zap.Int("failed", len(errs)),
	)
	return errors.Join(errs...)
}

// Close disposes every drawable. Calling Close again has no effect.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, d := range s.drawables {
		d.Dispose()
	}
	s.drawables = nil
}
