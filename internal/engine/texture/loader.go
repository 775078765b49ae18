package texture

import (
	"context"
	"errors"
	"image"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/logger"
)

// ErrLoaderClosed fails textures requested after Close.
var ErrLoaderClosed = errors.New("texture: loader closed")

type decoded struct {
	tex *Texture
	img *image.RGBA
	err error
}

// Loader decodes image files on background goroutines and uploads them to
// the device when Poll is called from the render thread. Textures are cached
// by path.
type Loader struct {
	dev    gfx.Device
	decode func(path string) (*image.RGBA, error)

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	sem    *semaphore.Weighted

	mu   sync.Mutex
	done []decoded

	textures map[string]*Texture
	pending  int
	closed   bool
}

// NewLoader returns a loader that decodes at most workers images at once.
// workers <= 0 uses the number of CPUs.
func NewLoader(dev gfx.Device, workers int) *Loader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		dev:      dev,
		decode:   DecodeFile,
		ctx:      ctx,
		cancel:   cancel,
		sem:      semaphore.NewWeighted(int64(workers)),
		textures: make(map[string]*Texture),
	}
}

// Load returns the texture for path, starting a background decode the first
// time path is requested. It never blocks.
func (l *Loader) Load(path string) *Texture {
	if tex, ok := l.textures[path]; ok {
		return tex
	}

	tex := newPending(l.dev, path)
	l.textures[path] = tex
	if l.closed {
		tex.fail(ErrLoaderClosed)
		return tex
	}

	l.pending++
	l.group.Go(func() error {
		if err := l.sem.Acquire(l.ctx, 1); err != nil {
			l.finish(decoded{tex: tex, err: err})
			return nil
		}
		defer l.sem.Release(1)

		img, err := l.decode(path)
		l.finish(decoded{tex: tex, img: img, err: err})
		return nil
	})

	logger.Debug("texture queued", zap.String("path", path))
	return tex
}

func (l *Loader) finish(d decoded) {
	l.mu.Lock()
	l.done = append(l.done, d)
	l.mu.Unlock()
}

// Poll uploads every image decoded since the last call and returns how many
// textures left the Pending state.
func (l *Loader) Poll() int {
	l.mu.Lock()
	done := l.done
	l.done = nil
	l.mu.Unlock()

	for _, d := range done {
		l.pending--
		if d.tex.closed {
			continue
		}
		if d.err != nil {
			d.tex.fail(d.err)
			logger.Warn("texture load failed",
				zap.String("path", d.tex.path),
				zap.Error(d.err),
			)
			continue
		}
		if err := d.tex.upload(d.img); err != nil {
			logger.Warn("texture upload failed",
				zap.String("path", d.tex.path),
				zap.Error(err),
			)
		}
	}
	return len(done)
}

// Pending returns the number of textures still decoding or awaiting upload.
func (l *Loader) Pending() int {
	return l.pending
}

// Wait blocks until every queued decode finishes, then uploads the results.
func (l *Loader) Wait() {
	_ = l.group.Wait()
	l.Poll()
}

// Close cancels queued decodes and releases every texture. Calling Close
// again has no effect.
func (l *Loader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
	_ = l.group.Wait()

	l.mu.Lock()
	l.done = nil
	l.mu.Unlock()
	l.pending = 0

	for _, tex := range l.textures {
		if tex.state == Pending {
			tex.fail(ErrLoaderClosed)
		}
		tex.Close()
	}
}
