package geometry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/logger"
)

// Attributes maps each vertex stream to a program attribute location.
// A negative location leaves the stream uploaded but unbound.
type Attributes struct {
	Position int32
	Color    int32
	TexCoord int32
	Normal   int32
}

// BufferSet owns the static device buffers of one Data and the vertex array
// that records how they feed the program.
type BufferSet struct {
	dev gfx.Device

	vao      gfx.Handle
	position gfx.Handle
	color    gfx.Handle
	texCoord gfx.Handle
	normal   gfx.Handle
	index    gfx.Handle

	indexCount  int32
	vertexCount int
	closed      bool
}

// NewBufferSet validates data, uploads every stream and records the vertex
// array for attrs. Missing texture coordinates and normals are zero-filled.
// On error every buffer created so far is released.
func NewBufferSet(dev gfx.Device, data Data, attrs Attributes) (*BufferSet, error) {
	data = data.WithDefaults()
	if err := data.Validate(); err != nil {
		return nil, err
	}

	bs := &BufferSet{
		dev:         dev,
		indexCount:  int32(len(data.Indices)),
		vertexCount: data.VertexCount(),
	}
	if err := bs.upload(data, attrs); err != nil {
		bs.Close()
		return nil, err
	}

	logger.Debug("buffer set created",
		zap.Uint32("vao", uint32(bs.vao)),
		zap.Int("vertices", bs.vertexCount),
		zap.Int32("indices", bs.indexCount),
	)
	return bs, nil
}

func (bs *BufferSet) upload(data Data, attrs Attributes) error {
	var err error
	if bs.position, err = bs.dev.CreateVertexBuffer(data.Positions); err != nil {
		return fmt.Errorf("position buffer: %w", err)
	}
	if bs.color, err = bs.dev.CreateVertexBuffer(data.Colors); err != nil {
		return fmt.Errorf("color buffer: %w", err)
	}
	if bs.texCoord, err = bs.dev.CreateVertexBuffer(data.TexCoords); err != nil {
		return fmt.Errorf("texture coordinate buffer: %w", err)
	}
	if bs.normal, err = bs.dev.CreateVertexBuffer(data.Normals); err != nil {
		return fmt.Errorf("normal buffer: %w", err)
	}
	if bs.index, err = bs.dev.CreateIndexBuffer(data.Indices); err != nil {
		return fmt.Errorf("index buffer: %w", err)
	}
	bs.vao, err = bs.record(attrs)
	return err
}

// record creates a vertex array capturing attribute formats and the index
// binding.
func (bs *BufferSet) record(attrs Attributes) (gfx.Handle, error) {
	vao, err := bs.dev.CreateVertexArray()
	if err != nil {
		return 0, fmt.Errorf("vertex array: %w", err)
	}

	bs.dev.BindVertexArray(vao)
	bind := func(loc int32, components int32, buf gfx.Handle) {
		if loc >= 0 {
			bs.dev.VertexAttrib(uint32(loc), components, buf)
		}
	}
	bind(attrs.Position, PositionComponents, bs.position)
	bind(attrs.Color, ColorComponents, bs.color)
	bind(attrs.TexCoord, TexCoordComponents, bs.texCoord)
	bind(attrs.Normal, NormalComponents, bs.normal)
	bs.dev.BindIndexBuffer(bs.index)
	bs.dev.BindVertexArray(0)

	return vao, nil
}

// Rebind records a fresh vertex array over the same buffers, for a program
// whose attribute locations changed. The old vertex array is released only
// on success.
func (bs *BufferSet) Rebind(attrs Attributes) error {
	vao, err := bs.record(attrs)
	if err != nil {
		return err
	}
	bs.dev.DeleteVertexArray(bs.vao)
	bs.vao = vao
	return nil
}

// Bind makes the vertex array current.
func (bs *BufferSet) Bind() {
	bs.dev.BindVertexArray(bs.vao)
}

// Unbind clears the current vertex array.
func (bs *BufferSet) Unbind() {
	bs.dev.BindVertexArray(0)
}

// IndexCount returns the number of indices to draw.
func (bs *BufferSet) IndexCount() int32 {
	return bs.indexCount
}

// VertexCount returns the number of uploaded vertices.
func (bs *BufferSet) VertexCount() int {
	return bs.vertexCount
}

// VertexArray returns the vertex array handle.
func (bs *BufferSet) VertexArray() gfx.Handle {
	return bs.vao
}

// Closed reports whether Close was called.
func (bs *BufferSet) Closed() bool {
	return bs.closed
}

// Close releases the vertex array and every buffer. Calling Close again has
// no effect.
func (bs *BufferSet) Close() {
	if bs.closed {
		return
	}
	bs.closed = true

	if bs.vao != 0 {
		bs.dev.DeleteVertexArray(bs.vao)
		bs.vao = 0
	}
	for _, buf := range []*gfx.Handle{&bs.position, &bs.color, &bs.texCoord, &bs.normal, &bs.index} {
		if *buf != 0 {
			bs.dev.DeleteBuffer(*buf)
			*buf = 0
		}
	}
}
