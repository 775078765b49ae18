// Package debug provides developer tooling for the render loop.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/internal/logger"
)

// ScreenshotCapture writes the default framebuffer to PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
	last      string
	seq       int
}

// NewScreenshotCapture creates a capture handler writing <prefix>_<time>.png
// files into outputDir.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Capture reads back the framebuffer and saves it.
func (sc *ScreenshotCapture) Capture(dev gfx.Device, width, height int32) (string, error) {
	pixels := dev.ReadPixels(width, height)
	return sc.CaptureFromPixels(pixels, int(width), int(height))
}

// CaptureFromPixels saves RGBA pixel data that is bottom row first, as
// returned by the device.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := &image.RGBA{
		Pix:    append([]byte(nil), pixels...),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	texture.FlipVertical(img)
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	logger.Info("screenshot saved", zap.String("file", filename))
	return filename, nil
}

// GenerateFilename returns the next file name. Captures within the same
// second get a numeric suffix.
func (sc *ScreenshotCapture) GenerateFilename() string {
	stamp := sc.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s", sc.prefix, stamp)
	if name == sc.last {
		sc.seq++
		name = fmt.Sprintf("%s_%d", name, sc.seq)
	} else {
		sc.last = name
		sc.seq = 0
	}
	return filepath.Join(sc.outputDir, name+".png")
}
