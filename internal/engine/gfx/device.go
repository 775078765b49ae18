// Package gfx defines the graphics device boundary used by the engine.
//
// Device covers exactly the OpenGL calls issued by shader programs, buffer
// sets, meshes and scenes. The opengl subpackage implements it on top of
// go-gl; gfxtest provides a recording implementation for tests.
//
// All Device methods must be called from the thread that owns the GL context.
package gfx

import (
	"fmt"
	"image"

	"github.com/Faultbox/scenegl/pkg/math"
)

// Handle identifies a device resource. Zero is never a valid resource.
type Handle uint32

// Stage is a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Device is the subset of the graphics API the engine depends on.
type Device interface {
	// CompileShader compiles one stage. When ok is false, log holds the
	// compiler output and the returned handle (if non-zero) is still owned
	// by the caller.
	CompileShader(stage Stage, source string) (h Handle, log string, ok bool)
	DeleteShader(h Handle)

	// LinkProgram links a vertex and fragment shader. When ok is false, log
	// holds the linker output and the returned handle is still owned by the
	// caller.
	LinkProgram(vertex, fragment Handle) (h Handle, log string, ok bool)
	DeleteProgram(h Handle)
	UseProgram(h Handle)

	// AttribLocation returns -1 when the attribute is absent or inactive.
	AttribLocation(program Handle, name string) int32
	// UniformLocation returns -1 when the uniform is absent or inactive.
	UniformLocation(program Handle, name string) int32

	CreateVertexBuffer(data []float32) (Handle, error)
	CreateIndexBuffer(data []uint16) (Handle, error)
	DeleteBuffer(h Handle)

	CreateVertexArray() (Handle, error)
	DeleteVertexArray(h Handle)
	BindVertexArray(h Handle)
	// VertexAttrib enables location and sources it from buffer as tightly
	// packed float32 tuples of the given size.
	VertexAttrib(location uint32, components int32, buffer Handle)
	BindIndexBuffer(buffer Handle)

	UniformMatrix4(location int32, m math.Mat4)
	UniformMatrix3(location int32, m math.Mat3)
	Uniform3f(location int32, x, y, z float32)
	Uniform1i(location int32, v int32)

	CreateTexture2D(img *image.RGBA) (Handle, error)
	DeleteTexture(h Handle)
	BindTexture2D(unit uint32, tex Handle)

	SetClearColor(r, g, b, a float32)
	Clear(color, depth bool)
	EnableDepthTest()
	EnableCullFace()
	Viewport(width, height int32)
	// DrawIndexedTriangles draws count uint16 indices from the bound
	// vertex array.
	DrawIndexedTriangles(count int32)
	// ReadPixels returns the RGBA contents of the default framebuffer,
	// bottom row first.
	ReadPixels(width, height int32) []byte
}

// ResourceCreationError reports that the device refused to allocate a
// resource.
type ResourceCreationError struct {
	Resource string
}

func (e *ResourceCreationError) Error() string {
	return fmt.Sprintf("gfx: failed to create %s", e.Resource)
}
