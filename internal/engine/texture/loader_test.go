package texture

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/scenegl/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/scenegl/internal/logger"
)

func TestLoaderLoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crate.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, twoRows()), 0o644))

	dev := gfxtest.New()
	l := NewLoader(dev, 2)
	defer l.Close()

	tex := l.Load(path)
	assert.Equal(t, Pending, tex.State())
	_, ok := tex.Handle()
	assert.False(t, ok, "pending texture has no handle")
	assert.Same(t, tex, l.Load(path), "textures are cached by path")

	l.Wait()

	require.Equal(t, Ready, tex.State(), "err: %v", tex.Err())
	h, ok := tex.Handle()
	assert.True(t, ok)
	assert.NotZero(t, h)
	w, hgt := tex.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, hgt)
	assert.Equal(t, 1, dev.Count("CreateTexture2D"))
	assert.Zero(t, l.Pending())
}

func TestLoaderMissingFile(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer logger.Replace(zap.New(core))()

	dev := gfxtest.New()
	l := NewLoader(dev, 1)
	defer l.Close()

	tex := l.Load(filepath.Join(t.TempDir(), "missing.png"))
	l.Wait()

	assert.Equal(t, Failed, tex.State())
	assert.Error(t, tex.Err())
	assert.False(t, tex.Ready())
	assert.Zero(t, dev.Count("CreateTexture2D"))
	assert.Equal(t, 1, logs.FilterMessage("texture load failed").Len())
}

func TestLoaderUploadFailure(t *testing.T) {
	dev := gfxtest.New()
	dev.FailCreate = map[string]int{gfxtest.KindTexture: 1}

	l := NewLoader(dev, 1)
	defer l.Close()
	l.decode = func(string) (*image.RGBA, error) { return twoRows(), nil }

	tex := l.Load("a.png")
	l.Wait()

	assert.Equal(t, Failed, tex.State())
	assert.Error(t, tex.Err())
}

func TestLoaderPollIsIncremental(t *testing.T) {
	dev := gfxtest.New()
	l := NewLoader(dev, 4)
	defer l.Close()

	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	l.decode = func(path string) (*image.RGBA, error) {
		if path == "slow.png" {
			started.Done()
			<-release
		}
		return twoRows(), nil
	}

	slow := l.Load("slow.png")
	started.Wait()
	assert.Zero(t, l.Poll())
	assert.Equal(t, 1, l.Pending())
	assert.Equal(t, Pending, slow.State())

	close(release)
	l.Wait()
	assert.Equal(t, Ready, slow.State())
	assert.Zero(t, l.Pending())
}

func TestLoaderClose(t *testing.T) {
	dev := gfxtest.New()
	l := NewLoader(dev, 1)
	l.decode = func(string) (*image.RGBA, error) { return twoRows(), nil }

	a := l.Load("a.png")
	l.Wait()
	require.True(t, a.Ready())

	l.Close()
	l.Close()

	assert.False(t, a.Ready())
	assert.Zero(t, dev.Live())
	assert.Empty(t, dev.OverReleased())

	late := l.Load("late.png")
	assert.Equal(t, Failed, late.State())
	assert.True(t, errors.Is(late.Err(), ErrLoaderClosed))
}

func TestFromImage(t *testing.T) {
	dev := gfxtest.New()

	tex, err := FromImage(dev, twoRows())
	require.NoError(t, err)
	assert.True(t, tex.Ready())
	assert.Empty(t, tex.Path())

	tex.Close()
	tex.Close()
	assert.Zero(t, dev.Live())
	assert.Empty(t, dev.OverReleased())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
}
