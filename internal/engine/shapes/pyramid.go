// Package shapes provides drawables that manage their own program and
// buffers instead of going through mesh.Mesh.
package shapes

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/geometry"
	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/engine/shader"
	"github.com/Faultbox/scenegl/internal/logger"
	"github.com/Faultbox/scenegl/pkg/math"
)

// ErrDisposed is returned by Draw after Dispose.
var ErrDisposed = errors.New("shapes: disposed")

// Orbit defaults for the marker pyramid.
const (
	DefaultOrbitRadius = 0.5
	DefaultOrbitSpeed  = 0.001 // radians per millisecond
)

var (
	tiltAxis  = math.V3(0, 1, 1)
	tiltAngle = float32(math32.Pi / 4)
)

// PyramidOptions configures NewPyramid.
type PyramidOptions struct {
	Position math.Vec3
	// Size is the half extent; geometry.DefaultPyramidSize when zero.
	Size float32
	// Radius and Speed describe the orbit along X.
	Radius float32
	Speed  float32
	// Source defaults to the embedded marker program.
	Source shader.Source
	// Clock returns the time elapsed since construction.
	Clock func() time.Duration
}

// Pyramid is an unlit marker that swings back and forth along X.
type Pyramid struct {
	dev      gfx.Device
	program  *shader.Program
	layout   shader.MarkerLayout
	buffers  *geometry.BufferSet
	name     string
	disposed bool

	position math.Vec3
	radius   float32
	speed    float32
	clock    func() time.Duration
}

// NewPyramid builds the marker program and uploads the pyramid geometry.
func NewPyramid(dev gfx.Device, opts PyramidOptions) (*Pyramid, error) {
	src := opts.Source
	if src.Vertex == "" && src.Fragment == "" {
		var err error
		if src, err = shader.Embedded(shader.MarkerProgram); err != nil {
			return nil, err
		}
	}
	if src.Name == "" {
		src.Name = shader.MarkerProgram
	}

	program, layout, err := buildProgram(dev, src)
	if err != nil {
		return nil, err
	}

	size := opts.Size
	if size <= 0 {
		size = geometry.DefaultPyramidSize
	}
	buffers, err := geometry.NewBufferSet(dev, geometry.Pyramid(size), attributes(layout))
	if err != nil {
		program.Close()
		return nil, fmt.Errorf("pyramid buffers: %w", err)
	}

	p := &Pyramid{
		dev:      dev,
		program:  program,
		layout:   layout,
		buffers:  buffers,
		name:     src.Name,
		position: opts.Position,
		radius:   opts.Radius,
		speed:    opts.Speed,
		clock:    opts.Clock,
	}
	if p.radius == 0 {
		p.radius = DefaultOrbitRadius
	}
	if p.speed == 0 {
		p.speed = DefaultOrbitSpeed
	}
	if p.clock == nil {
		start := time.Now()
		p.clock = func() time.Duration { return time.Since(start) }
	}

	logger.Debug("pyramid created", zap.Uint32("program", uint32(program.Handle())))
	return p, nil
}

func buildProgram(dev gfx.Device, src shader.Source) (*shader.Program, shader.MarkerLayout, error) {
	program, err := shader.BuildSource(dev, src)
	if err != nil {
		return nil, shader.MarkerLayout{}, err
	}
	layout, err := shader.ResolveMarkerLayout(program)
	if err != nil {
		program.Close()
		return nil, shader.MarkerLayout{}, fmt.Errorf("%s program: %w", src.Name, err)
	}
	return program, layout, nil
}

func attributes(l shader.MarkerLayout) geometry.Attributes {
	return geometry.Attributes{
		Position: int32(l.Position),
		Color:    int32(l.Color),
		TexCoord: -1,
		Normal:   -1,
	}
}

// ModelMatrix returns translate(position) * rotate(pi/4 around (0,1,1)).
func (p *Pyramid) ModelMatrix() math.Mat4 {
	return math.Translate(p.position).Mul(math.RotateAxis(tiltAxis, tiltAngle))
}

// Draw renders the pyramid at its current position and then advances the
// orbit, so the new position shows on the next frame.
func (p *Pyramid) Draw(pv math.Mat4) error {
	if p.disposed {
		return ErrDisposed
	}

	p.program.Use()
	p.buffers.Bind()
	p.dev.UniformMatrix4(p.layout.Model, p.ModelMatrix())
	p.dev.UniformMatrix4(p.layout.ProjectionView, pv)
	p.dev.DrawIndexedTriangles(p.buffers.IndexCount())
	p.buffers.Unbind()

	ms := float32(p.clock()) / float32(time.Millisecond)
	p.position.X = math32.Cos(ms*p.speed) * p.radius
	return nil
}

// Position returns the current world position.
func (p *Pyramid) Position() math.Vec3 { return p.position }

// ProgramName returns the name of the shader program the pyramid draws with.
func (p *Pyramid) ProgramName() string { return p.name }

// Reload swaps in a program built from src. On error the current program
// stays in use.
func (p *Pyramid) Reload(src shader.Source) error {
	if p.disposed {
		return ErrDisposed
	}
	program, layout, err := buildProgram(p.dev, src)
	if err != nil {
		return err
	}
	if err := p.buffers.Rebind(attributes(layout)); err != nil {
		program.Close()
		return err
	}
	p.program.Close()
	p.program = program
	p.layout = layout
	return nil
}

// Dispose releases the program and buffers. Calling Dispose again has no
// effect.
func (p *Pyramid) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.buffers.Close()
	p.program.Close()
}
