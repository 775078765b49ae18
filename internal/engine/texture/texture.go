// Package texture decodes images and turns them into device textures.
//
// Textures loaded through a Loader start Pending. They become Ready once the
// decoded image has been uploaded from the render thread by Loader.Poll, or
// Failed when decoding or upload fails. Texture methods must be called from
// the render thread.
package texture

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/logger"
)

// State is the readiness of a texture.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Texture is a 2D device texture with explicit readiness.
type Texture struct {
	dev    gfx.Device
	path   string
	handle gfx.Handle
	state  State
	err    error
	width  int
	height int
	closed bool
}

func newPending(dev gfx.Device, path string) *Texture {
	return &Texture{dev: dev, path: path, state: Pending}
}

// FromImage uploads img immediately and returns a Ready texture. img must
// already be bottom row first.
func FromImage(dev gfx.Device, img *image.RGBA) (*Texture, error) {
	t := newPending(dev, "")
	if err := t.upload(img); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Texture) upload(img *image.RGBA) error {
	h, err := t.dev.CreateTexture2D(img)
	if err != nil {
		t.fail(err)
		return err
	}
	t.handle = h
	t.width = img.Bounds().Dx()
	t.height = img.Bounds().Dy()
	t.state = Ready

	logger.Debug("texture uploaded",
		zap.String("path", t.path),
		zap.Uint32("handle", uint32(h)),
		zap.Int("width", t.width),
		zap.Int("height", t.height),
	)
	return nil
}

func (t *Texture) fail(err error) {
	t.state = Failed
	t.err = err
}

// Path returns the source file, empty for textures built from images.
func (t *Texture) Path() string { return t.path }

// State returns the current readiness.
func (t *Texture) State() State { return t.state }

// Ready reports whether the texture can be sampled.
func (t *Texture) Ready() bool { return t.state == Ready && !t.closed }

// Handle returns the device texture and whether it is ready.
func (t *Texture) Handle() (gfx.Handle, bool) {
	if !t.Ready() {
		return 0, false
	}
	return t.handle, true
}

// Err returns the failure cause of a Failed texture.
func (t *Texture) Err() error { return t.err }

// Size returns the uploaded dimensions.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Close releases the device texture. Calling Close again has no effect.
func (t *Texture) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if t.handle != 0 {
		t.dev.DeleteTexture(t.handle)
		t.handle = 0
	}
}
