// Package shader compiles and links GLSL programs and resolves the named
// locations shared between host code and shader text.
package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/logger"
)

// Program is a linked shader program.
type Program struct {
	dev    gfx.Device
	handle gfx.Handle
	closed bool
}

// Build compiles vertex and fragment sources and links them into a program.
// Intermediate shader objects are always released; on failure nothing is
// left allocated.
func Build(dev gfx.Device, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := compile(dev, gfx.VertexStage, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vs)

	fs, err := compile(dev, gfx.FragmentStage, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fs)

	program, log, ok := dev.LinkProgram(vs, fs)
	if !ok {
		if program == 0 {
			return nil, &gfx.ResourceCreationError{Resource: "program"}
		}
		dev.DeleteProgram(program)
		return nil, &ProgramLinkError{Log: log}
	}

	logger.Debug("shader program created", zap.Uint32("program", uint32(program)))
	return &Program{dev: dev, handle: program}, nil
}

// BuildSource builds a program from a Source.
func BuildSource(dev gfx.Device, src Source) (*Program, error) {
	p, err := Build(dev, src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", src.Name, err)
	}
	return p, nil
}

func compile(dev gfx.Device, stage gfx.Stage, source string) (gfx.Handle, error) {
	h, log, ok := dev.CompileShader(stage, source)
	if ok {
		return h, nil
	}
	if h == 0 {
		return 0, &gfx.ResourceCreationError{Resource: stage.String() + " shader"}
	}
	dev.DeleteShader(h)
	return 0, &ShaderCompileError{Stage: stage, Log: log}
}

// Handle returns the device handle of the program.
func (p *Program) Handle() gfx.Handle {
	return p.handle
}

// Use makes the program current.
func (p *Program) Use() {
	p.dev.UseProgram(p.handle)
}

// Attrib returns the location of a vertex attribute.
func (p *Program) Attrib(name string) (uint32, error) {
	loc := p.dev.AttribLocation(p.handle, name)
	if loc < 0 {
		return 0, &LocationNotFoundError{Kind: AttribLocation, Name: name, Program: p.handle}
	}
	return uint32(loc), nil
}

// Uniform returns the location of a uniform.
func (p *Program) Uniform(name string) (int32, error) {
	loc := p.dev.UniformLocation(p.handle, name)
	if loc < 0 {
		return 0, &LocationNotFoundError{Kind: UniformLocation, Name: name, Program: p.handle}
	}
	return loc, nil
}

// Close deletes the program. Calling Close again has no effect.
func (p *Program) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.dev.DeleteProgram(p.handle)
	p.handle = 0
}
