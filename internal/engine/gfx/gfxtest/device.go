// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"fmt"
	"image"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/pkg/math"
)

// Resource kinds tracked by Device.
const (
	KindShader      = "shader"
	KindProgram     = "program"
	KindBuffer      = "buffer"
	KindVertexArray = "vertex array"
	KindTexture     = "texture"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Device records every call and hands out increasing handles.
// The exported fields configure failures; set them before use.
type Device struct {
	// CompileErrors makes CompileShader fail for the stage with the log.
	CompileErrors map[gfx.Stage]string
	// LinkError makes LinkProgram fail with the log when non-empty.
	LinkError string
	// Missing lists attribute and uniform names reported as absent.
	Missing map[string]bool
	// FailCreate makes the Nth (1-based) creation of a resource kind fail.
	FailCreate map[string]int

	Calls []Call

	next      gfx.Handle
	live      map[gfx.Handle]string
	deleted   map[gfx.Handle]int
	created   map[string]int
	locations map[gfx.Handle]map[string]int32
	pixels    []byte
}

var _ gfx.Device = (*Device)(nil)

// New returns an empty recording device.
func New() *Device {
	return &Device{
		live:      make(map[gfx.Handle]string),
		deleted:   make(map[gfx.Handle]int),
		created:   make(map[string]int),
		locations: make(map[gfx.Handle]map[string]int32),
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) alloc(kind string) gfx.Handle {
	d.created[kind]++
	if n, ok := d.FailCreate[kind]; ok && n == d.created[kind] {
		return 0
	}
	d.next++
	d.live[d.next] = kind
	return d.next
}

func (d *Device) release(h gfx.Handle) {
	if h == 0 {
		return
	}
	d.deleted[h]++
	delete(d.live, h)
}

func (d *Device) CompileShader(stage gfx.Stage, source string) (gfx.Handle, string, bool) {
	d.record("CompileShader", stage)
	h := d.alloc(KindShader)
	if h == 0 {
		return 0, "", false
	}
	if log, ok := d.CompileErrors[stage]; ok {
		return h, log, false
	}
	return h, "", true
}

func (d *Device) DeleteShader(h gfx.Handle) {
	d.record("DeleteShader", h)
	d.release(h)
}

func (d *Device) LinkProgram(vertex, fragment gfx.Handle) (gfx.Handle, string, bool) {
	d.record("LinkProgram", vertex, fragment)
	h := d.alloc(KindProgram)
	if h == 0 {
		return 0, "", false
	}
	if d.LinkError != "" {
		return h, d.LinkError, false
	}
	return h, "", true
}

func (d *Device) DeleteProgram(h gfx.Handle) {
	d.record("DeleteProgram", h)
	d.release(h)
}

func (d *Device) UseProgram(h gfx.Handle) {
	d.record("UseProgram", h)
}

func (d *Device) location(program gfx.Handle, name string) int32 {
	if d.Missing[name] {
		return -1
	}
	locs, ok := d.locations[program]
	if !ok {
		locs = make(map[string]int32)
		d.locations[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = int32(len(locs))
		locs[name] = loc
	}
	return loc
}

func (d *Device) AttribLocation(program gfx.Handle, name string) int32 {
	d.record("AttribLocation", program, name)
	return d.location(program, name)
}

func (d *Device) UniformLocation(program gfx.Handle, name string) int32 {
	d.record("UniformLocation", program, name)
	return d.location(program, name)
}

// Location returns the location previously handed out for name, or -1.
func (d *Device) Location(program gfx.Handle, name string) int32 {
	if loc, ok := d.locations[program][name]; ok {
		return loc
	}
	return -1
}

func (d *Device) CreateVertexBuffer(data []float32) (gfx.Handle, error) {
	d.record("CreateVertexBuffer", len(data))
	h := d.alloc(KindBuffer)
	if h == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "vertex buffer"}
	}
	return h, nil
}

func (d *Device) CreateIndexBuffer(data []uint16) (gfx.Handle, error) {
	d.record("CreateIndexBuffer", len(data))
	h := d.alloc(KindBuffer)
	if h == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "index buffer"}
	}
	return h, nil
}

func (d *Device) DeleteBuffer(h gfx.Handle) {
	d.record("DeleteBuffer", h)
	d.release(h)
}

func (d *Device) CreateVertexArray() (gfx.Handle, error) {
	d.record("CreateVertexArray")
	h := d.alloc(KindVertexArray)
	if h == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "vertex array"}
	}
	return h, nil
}

func (d *Device) DeleteVertexArray(h gfx.Handle) {
	d.record("DeleteVertexArray", h)
	d.release(h)
}

func (d *Device) BindVertexArray(h gfx.Handle) {
	d.record("BindVertexArray", h)
}

func (d *Device) VertexAttrib(location uint32, components int32, buffer gfx.Handle) {
	d.record("VertexAttrib", location, components, buffer)
}

func (d *Device) BindIndexBuffer(buffer gfx.Handle) {
	d.record("BindIndexBuffer", buffer)
}

func (d *Device) UniformMatrix4(location int32, m math.Mat4) {
	d.record("UniformMatrix4", location, m)
}

func (d *Device) UniformMatrix3(location int32, m math.Mat3) {
	d.record("UniformMatrix3", location, m)
}

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.record("Uniform3f", location, x, y, z)
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.record("Uniform1i", location, v)
}

func (d *Device) CreateTexture2D(img *image.RGBA) (gfx.Handle, error) {
	d.record("CreateTexture2D", img.Bounds().Dx(), img.Bounds().Dy())
	h := d.alloc(KindTexture)
	if h == 0 {
		return 0, &gfx.ResourceCreationError{Resource: "texture"}
	}
	return h, nil
}

func (d *Device) DeleteTexture(h gfx.Handle) {
	d.record("DeleteTexture", h)
	d.release(h)
}

func (d *Device) BindTexture2D(unit uint32, tex gfx.Handle) {
	d.record("BindTexture2D", unit, tex)
}

func (d *Device) SetClearColor(r, g, b, a float32) {
	d.record("SetClearColor", r, g, b, a)
}

func (d *Device) Clear(color, depth bool) {
	d.record("Clear", color, depth)
}

func (d *Device) EnableDepthTest() {
	d.record("EnableDepthTest")
}

func (d *Device) EnableCullFace() {
	d.record("EnableCullFace")
}

func (d *Device) Viewport(width, height int32) {
	d.record("Viewport", width, height)
}

func (d *Device) DrawIndexedTriangles(count int32) {
	d.record("DrawIndexedTriangles", count)
}

// SetPixels sets the data returned by ReadPixels.
func (d *Device) SetPixels(p []byte) {
	d.pixels = p
}

func (d *Device) ReadPixels(width, height int32) []byte {
	d.record("ReadPixels", width, height)
	if d.pixels != nil {
		return d.pixels
	}
	return make([]byte, int(width)*int(height)*4)
}

// Count returns how many times the named call was recorded.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls with the given name, in order.
func (d *Device) Find(name string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the recorded call names, in order.
func (d *Device) Names() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset forgets recorded calls but keeps resource tracking.
func (d *Device) Reset() {
	d.Calls = nil
}

// Live returns the number of resources that were created and not deleted.
func (d *Device) Live() int {
	return len(d.live)
}

// LiveOf returns the number of live resources of a kind.
func (d *Device) LiveOf(kind string) int {
	n := 0
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

// Created returns how many resources of a kind were requested.
func (d *Device) Created(kind string) int {
	return d.created[kind]
}

// DeleteCount returns how many times h was deleted.
func (d *Device) DeleteCount(h gfx.Handle) int {
	return d.deleted[h]
}

// OverReleased returns handles deleted more than once.
func (d *Device) OverReleased() []gfx.Handle {
	var out []gfx.Handle
	for h, n := range d.deleted {
		if n > 1 {
			out = append(out, h)
		}
	}
	return out
}
