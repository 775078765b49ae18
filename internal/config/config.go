// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Camera modes.
const (
	CameraFirstPerson = "first_person"
	CameraOrbit       = "orbit"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// CameraConfig holds camera controller settings.
type CameraConfig struct {
	Mode        string    `yaml:"mode"`
	Velocity    float32   `yaml:"velocity"`    // units per frame
	Sensitivity float32   `yaml:"sensitivity"` // radians per pixel
	Position    []float32 `yaml:"position"`
}

// AssetsConfig holds asset locations. Empty paths select built-in assets.
type AssetsConfig struct {
	SceneFile      string `yaml:"scene_file"`
	ShaderDir      string `yaml:"shader_dir"`
	TextureWorkers int    `yaml:"texture_workers"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ShowFPS       bool   `yaml:"show_fps"`
	WatchShaders  bool   `yaml:"watch_shaders"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Near:       0.1,
			Far:        100,
		},
		Camera: CameraConfig{
			Mode:        CameraFirstPerson,
			Velocity:    0.03,
			Sensitivity: 0.002,
			Position:    []float32{0, 0, 2},
		},
		Assets: AssetsConfig{
			TextureWorkers: 4,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	g := c.Graphics
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("graphics: invalid size %dx%d", g.Width, g.Height)
	case g.FOV <= 0 || g.FOV >= 180:
		return fmt.Errorf("graphics: fov %v outside (0, 180)", g.FOV)
	case g.Near <= 0:
		return fmt.Errorf("graphics: near plane %v must be positive", g.Near)
	case g.Far <= g.Near:
		return fmt.Errorf("graphics: far plane %v must exceed near plane %v", g.Far, g.Near)
	}

	switch c.Camera.Mode {
	case CameraFirstPerson, CameraOrbit:
	default:
		return fmt.Errorf("camera: unknown mode %q", c.Camera.Mode)
	}
	if n := len(c.Camera.Position); n != 0 && n != 3 {
		return fmt.Errorf("camera: position has %d components, want 3", n)
	}
	if c.Camera.Velocity < 0 || c.Camera.Sensitivity < 0 {
		return errors.New("camera: velocity and sensitivity must not be negative")
	}

	if c.Assets.TextureWorkers < 0 {
		return fmt.Errorf("assets: negative texture_workers %d", c.Assets.TextureWorkers)
	}
	return nil
}
