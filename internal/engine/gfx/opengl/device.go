// Package opengl implements gfx.Device on top of OpenGL 4.1 core.
package opengl

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/logger"
	"github.com/Faultbox/scenegl/pkg/math"
)

// Device issues gfx.Device calls to the current OpenGL context.
type Device struct {
	Version  string
	Renderer string
}

var _ gfx.Device = (*Device)(nil)

// New loads the OpenGL function pointers.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &Device{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", d.Version),
		zap.String("renderer", d.Renderer),
	)

	gl.DepthFunc(gl.LESS)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	return d, nil
}

func (d *Device) CompileShader(stage gfx.Stage, source string) (gfx.Handle, string, bool) {
	var shaderType uint32
	switch stage {
	case gfx.VertexStage:
		shaderType = gl.VERTEX_SHADER
	case gfx.FragmentStage:
		shaderType = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Sprintf("unsupported %s", stage), false
	}

	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		return 0, "", false
	}
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return gfx.Handle(shader), strings.TrimRight(log, "\x00"), false
	}
	return gfx.Handle(shader), "", true
}

func (d *Device) DeleteShader(h gfx.Handle) {
	gl.DeleteShader(uint32(h))
}

func (d *Device) LinkProgram(vertex, fragment gfx.Handle) (gfx.Handle, string, bool) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, "", false
	}
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		return gfx.Handle(program), strings.TrimRight(log, "\x00"), false
	}

	gl.DetachShader(program, uint32(vertex))
	gl.DetachShader(program, uint32(fragment))
	return gfx.Handle(program), "", true
}

func (d *Device) DeleteProgram(h gfx.Handle) {
	gl.DeleteProgram(uint32(h))
}

func (d *Device) UseProgram(h gfx.Handle) {
	gl.UseProgram(uint32(h))
}

func (d *Device) AttribLocation(program gfx.Handle, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(program gfx.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (d *Device) CreateVertexBuffer(data []float32) (gfx.Handle, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty vertex buffer")
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "vertex buffer"}
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return gfx.Handle(vbo), nil
}

func (d *Device) CreateIndexBuffer(data []uint16) (gfx.Handle, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty index buffer")
	}
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	if ebo == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "index buffer"}
	}
	// Uploading through ARRAY_BUFFER keeps the currently bound vertex
	// array's element binding untouched.
	gl.BindBuffer(gl.ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return gfx.Handle(ebo), nil
}

func (d *Device) DeleteBuffer(h gfx.Handle) {
	buf := uint32(h)
	gl.DeleteBuffers(1, &buf)
}

func (d *Device) CreateVertexArray() (gfx.Handle, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "vertex array"}
	}
	return gfx.Handle(vao), nil
}

func (d *Device) DeleteVertexArray(h gfx.Handle) {
	vao := uint32(h)
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) BindVertexArray(h gfx.Handle) {
	gl.BindVertexArray(uint32(h))
}

func (d *Device) VertexAttrib(location uint32, components int32, buffer gfx.Handle) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer))
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, components, gl.FLOAT, false, 0, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) BindIndexBuffer(buffer gfx.Handle) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(buffer))
}

func (d *Device) UniformMatrix4(location int32, m math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) UniformMatrix3(location int32, m math.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (d *Device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) CreateTexture2D(img *image.RGBA) (gfx.Handle, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, fmt.Errorf("empty texture image")
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "texture"}
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gfx.Handle(tex), nil
}

func (d *Device) DeleteTexture(h gfx.Handle) {
	tex := uint32(h)
	gl.DeleteTextures(1, &tex)
}

func (d *Device) BindTexture2D(unit uint32, tex gfx.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (d *Device) SetClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

func (d *Device) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (d *Device) EnableCullFace() {
	gl.Enable(gl.CULL_FACE)
}

func (d *Device) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (d *Device) DrawIndexedTriangles(count int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_SHORT, 0)
}

func (d *Device) ReadPixels(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
