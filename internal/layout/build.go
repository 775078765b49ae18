package layout

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/geometry"
	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/engine/mesh"
	"github.com/Faultbox/scenegl/internal/engine/scene"
	"github.com/Faultbox/scenegl/internal/engine/shader"
	"github.com/Faultbox/scenegl/internal/engine/shapes"
	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/internal/logger"
	"github.com/Faultbox/scenegl/pkg/math"
)

// Builder turns scene descriptions into drawables.
type Builder struct {
	Device  gfx.Device
	Loader  *texture.Loader
	Library shader.Library
	// BaseDir resolves relative texture paths.
	BaseDir string
}

// Build creates one drawable per object in order. On error the drawables
// built so far are disposed.
func (b *Builder) Build(s *Scene) ([]scene.Drawable, error) {
	drawables := make([]scene.Drawable, 0, len(s.Objects))
	for i, o := range s.Objects {
		d, err := b.object(o)
		if err != nil {
			for _, built := range drawables {
				built.Dispose()
			}
			return nil, &ObjectError{Index: i, Name: o.Name, Err: err}
		}
		drawables = append(drawables, d)
	}

	logger.Info("scene built", zap.Int("objects", len(drawables)))
	return drawables, nil
}

func (b *Builder) object(o Object) (scene.Drawable, error) {
	switch o.Kind {
	case KindCube:
		return b.mesh(o, geometry.ShapeFunc(geometry.Cube))
	case KindWall:
		return b.mesh(o, geometry.ShapeFunc(geometry.Wall))
	case KindPyramid:
		return shapes.NewPyramid(b.Device, shapes.PyramidOptions{
			Position: vec3(o.Position, math.Vec3{}),
			Size:     o.Size,
			Radius:   o.OrbitRadius,
			Speed:    o.OrbitSpeed,
			Source:   b.Library.Marker,
		})
	default:
		return nil, fmt.Errorf("unknown kind %q", o.Kind)
	}
}

func (b *Builder) mesh(o Object, shape geometry.Shape) (*mesh.Mesh, error) {
	opts := mesh.Options{
		Shape: shape,
		Transform: mesh.Transform{
			Position: vec3(o.Position, math.Vec3{}),
			Rotation: vec3(o.Rotation, math.Vec3{}),
			Scale:    vec3(o.Scale, math.V3(1, 1, 1)),
		},
		Source:  b.Library.Mesh,
		Animate: animation(o),
	}
	if len(o.Color) != 0 {
		c := rgba(o.Color)
		opts.Material.Color = &c
	}
	if o.Texture != "" && b.Loader != nil {
		path := o.Texture
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.BaseDir, path)
		}
		opts.Material.Texture = b.Loader.Load(path)
	}
	return mesh.New(b.Device, opts)
}

// animation combines the spin and orbit hooks of an object.
func animation(o Object) func(*mesh.Mesh) {
	var hooks []func(*mesh.Mesh)
	if len(o.Spin) == 3 {
		hooks = append(hooks, mesh.Spin(o.Spin[0], o.Spin[1], o.Spin[2]))
	}
	if o.OrbitRadius > 0 && o.OrbitSpeed != 0 {
		hooks = append(hooks, mesh.Orbit(vec3(o.Position, math.Vec3{}), o.OrbitRadius, o.OrbitSpeed))
	}

	switch len(hooks) {
	case 0:
		return nil
	case 1:
		return hooks[0]
	default:
		return func(m *mesh.Mesh) {
			for _, h := range hooks {
				h(m)
			}
		}
	}
}
