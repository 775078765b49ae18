package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/scenegl/internal/config"
	"github.com/Faultbox/scenegl/internal/engine/camera"
	"github.com/Faultbox/scenegl/pkg/math"
)

func TestNewControllerFirstPerson(t *testing.T) {
	cfg := config.Default().Camera
	cfg.Velocity = 0.5
	cfg.Sensitivity = 0.01
	cfg.Position = []float32{1, 2, 3}

	c, ok := newController(cfg).(*camera.FirstPerson)
	require.True(t, ok)
	assert.Equal(t, float32(0.5), c.Velocity)
	assert.Equal(t, float32(0.01), c.Sensitivity)
	assert.Equal(t, math.V3(1, 2, 3), c.Eye())
}

func TestNewControllerKeepsDefaults(t *testing.T) {
	c, ok := newController(config.CameraConfig{Mode: config.CameraFirstPerson}).(*camera.FirstPerson)
	require.True(t, ok)
	assert.Equal(t, float32(camera.DefaultVelocity), c.Velocity)
	assert.Equal(t, float32(camera.DefaultSensitivity), c.Sensitivity)
	assert.Equal(t, math.V3(0, 0, 2), c.Position)
}

func TestNewControllerOrbit(t *testing.T) {
	_, ok := newController(config.CameraConfig{Mode: config.CameraOrbit}).(*camera.OrbitCamera)
	assert.True(t, ok)
}

func TestMovementKeys(t *testing.T) {
	held := map[sdl.Scancode]bool{sdl.SCANCODE_W: true, sdl.SCANCODE_D: true}
	keys := movementKeys(func(sc sdl.Scancode) bool { return held[sc] })
	assert.Equal(t, camera.Keys{Forward: true, Right: true}, keys)

	assert.Equal(t, camera.Keys{}, movementKeys(func(sdl.Scancode) bool { return false }))
}
