package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenegl/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/scenegl/internal/engine/mesh"
	"github.com/Faultbox/scenegl/internal/engine/shader"
	"github.com/Faultbox/scenegl/internal/engine/shapes"
	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/pkg/math"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.Len(t, s.Objects, 6)
	assert.Equal(t, KindCube, s.Objects[0].Kind)
	assert.Equal(t, KindPyramid, s.Objects[5].Kind)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, s.ClearRGBA())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no objects", "objects: []", "no objects"},
		{"unknown kind", "objects:\n  - kind: sphere", `unknown kind "sphere"`},
		{"missing kind", "objects:\n  - name: x", "missing kind"},
		{"short position", "objects:\n  - kind: cube\n    position: [1, 2]", "position has 2 components"},
		{"bad color", "objects:\n  - kind: wall\n    color: [1, 0]", "color has 2 components"},
		{"color range", "objects:\n  - kind: wall\n    color: [2, 0, 0]", "outside [0, 1]"},
		{"textured pyramid", "objects:\n  - kind: pyramid\n    texture: a.png", "pyramid does not support"},
		{"unknown field", "objects:\n  - kind: cube\n    colour: [1, 1, 1]", "colour"},
		{"bad clear color", "clear_color: [1]\nobjects:\n  - kind: cube", "clear_color"},
		{"not yaml", "objects: [", "parsing scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestObjectErrorNamesObject(t *testing.T) {
	_, err := Parse([]byte("objects:\n  - kind: cube\n  - name: ball\n    kind: sphere"))

	var objErr *ObjectError
	require.ErrorAs(t, err, &objErr)
	assert.Equal(t, 1, objErr.Index)
	assert.Equal(t, "ball", objErr.Name)
}

func TestClearRGBA(t *testing.T) {
	s, err := Parse([]byte("clear_color: [0.1, 0.2, 0.3]\nobjects:\n  - kind: cube"))
	require.NoError(t, err)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, s.ClearRGBA())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.yaml")
	require.NoError(t, os.WriteFile(path, []byte("objects:\n  - kind: wall\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Objects, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildDefault(t *testing.T) {
	dev := gfxtest.New()
	b := &Builder{Device: dev, Library: shader.DefaultLibrary()}

	drawables, err := b.Build(Default())
	require.NoError(t, err)
	require.Len(t, drawables, 6)

	cube, ok := drawables[0].(*mesh.Mesh)
	require.True(t, ok)
	assert.Equal(t, math.V3(0.5, 0.5, 0.5), cube.Transform().Scale)
	cube.Animate()
	assert.InDelta(t, 0.01, cube.Transform().Rotation.X, 1e-6)

	floor := drawables[1].(*mesh.Mesh)
	require.NotNil(t, floor.Material().Color)
	assert.Equal(t, [4]float32{0.45, 0.45, 0.45, 1}, *floor.Material().Color)

	_, ok = drawables[5].(*shapes.Pyramid)
	assert.True(t, ok)

	for _, d := range drawables {
		d.Dispose()
	}
	assert.Zero(t, dev.Live())
}

func TestBuildTexturePaths(t *testing.T) {
	dev := gfxtest.New()
	loader := texture.NewLoader(dev, 1)
	defer loader.Close()

	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "abs.png")
	s, err := Parse([]byte("objects:\n  - kind: cube\n    texture: crate.png\n  - kind: cube\n    texture: " + abs + "\n"))
	require.NoError(t, err)

	b := &Builder{Device: dev, Loader: loader, BaseDir: base}
	drawables, err := b.Build(s)
	require.NoError(t, err)

	first := drawables[0].(*mesh.Mesh).Material().Texture
	second := drawables[1].(*mesh.Mesh).Material().Texture
	assert.Equal(t, filepath.Join(base, "crate.png"), first.Path())
	assert.Equal(t, abs, second.Path())

	for _, d := range drawables {
		d.Dispose()
	}
}

func TestBuildOrbitingMesh(t *testing.T) {
	s, err := Parse([]byte("objects:\n  - kind: cube\n    position: [1, 0, 0]\n    orbit_radius: 2\n    orbit_speed: 0.5\n    spin: [0, 0.1, 0]\n"))
	require.NoError(t, err)

	dev := gfxtest.New()
	drawables, err := (&Builder{Device: dev}).Build(s)
	require.NoError(t, err)
	m := drawables[0].(*mesh.Mesh)
	defer m.Dispose()

	m.Animate()
	assert.InDelta(t, 2, m.Position().Distance(math.V3(1, 0, 0)), 1e-5)
	assert.InDelta(t, 0.1, m.Transform().Rotation.Y, 1e-6)
}

func TestBuildFailureDisposesBuilt(t *testing.T) {
	dev := gfxtest.New()
	dev.FailCreate = map[string]int{gfxtest.KindProgram: 3}

	_, err := (&Builder{Device: dev}).Build(Default())

	var objErr *ObjectError
	require.ErrorAs(t, err, &objErr)
	assert.Equal(t, 2, objErr.Index)
	assert.Zero(t, dev.Live())
	assert.Empty(t, dev.OverReleased())
}
