// Package mesh draws lit, optionally textured geometry with a model
// transform.
package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/geometry"
	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/engine/shader"
	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/internal/logger"
	"github.com/Faultbox/scenegl/pkg/math"
)

// ErrDisposed is returned by Draw after Dispose.
var ErrDisposed = errors.New("mesh: disposed")

// DefaultLightDirection points from the surface toward the light.
var DefaultLightDirection = math.V3(1, 2, 0)

// textureUnit is the unit the material texture is bound to.
const textureUnit = 0

// Material describes surface appearance. A non-nil Color replaces every
// per-vertex color. Texture is sampled only once it is ready; the mesh does
// not own it.
type Material struct {
	Color   *[4]float32
	Texture *texture.Texture
}

// Options configures New.
type Options struct {
	Shape     geometry.Shape
	Transform Transform
	Material  Material
	// LightDirection defaults to DefaultLightDirection when zero.
	LightDirection math.Vec3
	// Source defaults to the embedded mesh program.
	Source shader.Source
	// Animate runs once per frame before Draw.
	Animate func(*Mesh)
}

// Mesh owns a shader program and the device buffers of one shape.
type Mesh struct {
	dev      gfx.Device
	program  *shader.Program
	layout   shader.MeshLayout
	buffers  *geometry.BufferSet
	name     string
	disposed bool

	transform Transform
	material  Material
	light     math.Vec3
	animate   func(*Mesh)
}

// New builds the program, resolves its interface and uploads the geometry.
// Nothing is left allocated on error.
func New(dev gfx.Device, opts Options) (*Mesh, error) {
	if opts.Shape == nil {
		return nil, fmt.Errorf("mesh: no shape")
	}

	src := opts.Source
	if src.Vertex == "" && src.Fragment == "" {
		var err error
		if src, err = shader.Embedded(shader.MeshProgram); err != nil {
			return nil, err
		}
	}
	if src.Name == "" {
		src.Name = shader.MeshProgram
	}

	program, layout, err := buildProgram(dev, src)
	if err != nil {
		return nil, err
	}

	buffers, err := geometry.NewBufferSet(dev, geometryFor(opts.Shape, opts.Material), attributes(layout))
	if err != nil {
		program.Close()
		return nil, fmt.Errorf("mesh buffers: %w", err)
	}

	t := opts.Transform
	if t.Scale.IsZero() {
		t.Scale = math.V3(1, 1, 1)
	}
	light := opts.LightDirection
	if light.IsZero() {
		light = DefaultLightDirection
	}

	m := &Mesh{
		dev:       dev,
		program:   program,
		layout:    layout,
		buffers:   buffers,
		name:      src.Name,
		transform: t,
		material:  opts.Material,
		light:     light,
		animate:   opts.Animate,
	}

	logger.Debug("mesh created",
		zap.Uint32("program", uint32(program.Handle())),
		zap.Int("vertices", buffers.VertexCount()),
		zap.Bool("textured", opts.Material.Texture != nil),
	)
	return m, nil
}

func buildProgram(dev gfx.Device, src shader.Source) (*shader.Program, shader.MeshLayout, error) {
	program, err := shader.BuildSource(dev, src)
	if err != nil {
		return nil, shader.MeshLayout{}, err
	}
	layout, err := shader.ResolveMeshLayout(program)
	if err != nil {
		program.Close()
		return nil, shader.MeshLayout{}, fmt.Errorf("%s program: %w", src.Name, err)
	}
	return program, layout, nil
}

// geometryFor applies the material color override to the shape's data.
func geometryFor(shape geometry.Shape, mat Material) geometry.Data {
	data := shape.Geometry()
	if mat.Color != nil {
		data = data.WithColor(*mat.Color)
	}
	return data
}

func attributes(l shader.MeshLayout) geometry.Attributes {
	return geometry.Attributes{
		Position: int32(l.Position),
		Color:    int32(l.Color),
		TexCoord: int32(l.Texture),
		Normal:   int32(l.Normal),
	}
}

// Animate runs the per-frame hook, if any.
func (m *Mesh) Animate() {
	if m.animate != nil {
		m.animate(m)
	}
}

// Draw renders the mesh with the given projection * view matrix.
func (m *Mesh) Draw(pv math.Mat4) error {
	if m.disposed {
		return ErrDisposed
	}

	model := m.transform.Matrix()
	normal := model.NormalMatrix()

	m.dev.EnableDepthTest()
	m.dev.EnableCullFace()

	m.program.Use()
	m.buffers.Bind()

	m.dev.UniformMatrix4(m.layout.Model, model)
	m.dev.UniformMatrix4(m.layout.ProjectionView, pv)
	m.dev.UniformMatrix3(m.layout.NormalMatrix, normal)
	m.dev.Uniform3f(m.layout.LightDirection, m.light.X, m.light.Y, m.light.Z)

	if h, ok := m.textureHandle(); ok {
		m.dev.BindTexture2D(textureUnit, h)
		m.dev.Uniform1i(m.layout.Sampler, textureUnit)
		m.dev.Uniform1i(m.layout.UseTexture, 1)
	} else {
		m.dev.Uniform1i(m.layout.UseTexture, 0)
	}

	m.dev.DrawIndexedTriangles(m.buffers.IndexCount())
	m.buffers.Unbind()
	return nil
}

func (m *Mesh) textureHandle() (gfx.Handle, bool) {
	if m.material.Texture == nil {
		return 0, false
	}
	return m.material.Texture.Handle()
}

// ProgramName returns the name of the shader program the mesh draws with.
func (m *Mesh) ProgramName() string {
	return m.name
}

// Reload swaps in a program built from src. On error the current program
// stays in use.
func (m *Mesh) Reload(src shader.Source) error {
	if m.disposed {
		return ErrDisposed
	}
	program, layout, err := buildProgram(m.dev, src)
	if err != nil {
		return err
	}
	if err := m.buffers.Rebind(attributes(layout)); err != nil {
		program.Close()
		return err
	}

	m.program.Close()
	m.program = program
	m.layout = layout

	logger.Info("mesh program reloaded",
		zap.String("program", src.Name),
		zap.Uint32("handle", uint32(program.Handle())),
	)
	return nil
}

// Dispose releases the program and buffers. The material texture is left
// to its owner. Calling Dispose again has no effect.
func (m *Mesh) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.buffers.Close()
	m.program.Close()
}

// Disposed reports whether Dispose was called.
func (m *Mesh) Disposed() bool { return m.disposed }

// Position returns the world position.
func (m *Mesh) Position() math.Vec3 { return m.transform.Position }

// Transform returns the mutable transform used by the next Draw.
func (m *Mesh) Transform() *Transform { return &m.transform }

// Material returns the surface description.
func (m *Mesh) Material() Material { return m.material }

// SetTexture replaces the material texture.
func (m *Mesh) SetTexture(tex *texture.Texture) { m.material.Texture = tex }

// ModelMatrix returns the current model matrix.
func (m *Mesh) ModelMatrix() math.Mat4 { return m.transform.Matrix() }

// NormalMatrix returns the inverse transpose of the model matrix's upper
// 3x3.
func (m *Mesh) NormalMatrix() math.Mat3 { return m.ModelMatrix().NormalMatrix() }
