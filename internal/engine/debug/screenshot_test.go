package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenegl/internal/engine/gfx/gfxtest"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestCaptureFlipsRows(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(filepath.Join(dir, "shots"), "scene")
	sc.now = fixedClock

	// Bottom row red, top row blue, as the device returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	dev := gfxtest.New()
	dev.SetPixels(pixels)

	name, err := sc.Capture(dev, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shots", "scene_2024-03-01_12-30-45.png"), name)
	assert.Equal(t, []any{int32(1), int32(2)}, dev.Find("ReadPixels")[0].Args)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{B: 255, A: 255}), color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{R: 255, A: 255}), color.RGBAModel.Convert(img.At(0, 1)))

	// The device buffer is left untouched.
	assert.Equal(t, byte(255), pixels[0])
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "scene")
	_, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}

func TestGenerateFilenameUnique(t *testing.T) {
	sc := NewScreenshotCapture("out", "shot")
	sc.now = fixedClock

	first := sc.GenerateFilename()
	second := sc.GenerateFilename()
	third := sc.GenerateFilename()

	assert.Equal(t, filepath.Join("out", "shot_2024-03-01_12-30-45.png"), first)
	assert.Equal(t, filepath.Join("out", "shot_2024-03-01_12-30-45_1.png"), second)
	assert.Equal(t, filepath.Join("out", "shot_2024-03-01_12-30-45_2.png"), third)
}
