// Package geometry holds vertex data and uploads it to the device.
package geometry

import (
	"errors"
	"fmt"
)

// Components per vertex for each attribute stream.
const (
	PositionComponents = 3
	ColorComponents    = 4
	TexCoordComponents = 2
	NormalComponents   = 3
)

// Data is immutable vertex data for an indexed triangle list.
// TexCoords and Normals are optional; see WithDefaults.
type Data struct {
	Positions []float32
	Colors    []float32
	TexCoords []float32
	Normals   []float32
	Indices   []uint16
}

// Shape provides geometry for a mesh.
type Shape interface {
	Geometry() Data
}

// ShapeFunc adapts a function to Shape.
type ShapeFunc func() Data

func (f ShapeFunc) Geometry() Data { return f() }

// VertexCount returns the number of vertices described by Positions.
func (d Data) VertexCount() int {
	return len(d.Positions) / PositionComponents
}

// LayoutError reports an attribute stream whose length does not match the
// vertex count.
type LayoutError struct {
	Stream string
	Len    int
	Want   int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("geometry: %s has %d floats, want %d", e.Stream, e.Len, e.Want)
}

// IndexRangeError reports an index that references a missing vertex.
type IndexRangeError struct {
	Index       int
	Value       uint16
	VertexCount int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("geometry: index %d is %d, vertex count is %d", e.Index, e.Value, e.VertexCount)
}

// ErrNoVertices is returned for empty geometry.
var ErrNoVertices = errors.New("geometry: no vertices")

// ErrNoTriangles is returned when the index list is empty or not a
// multiple of three.
var ErrNoTriangles = errors.New("geometry: indices do not form triangles")

// Validate checks stream lengths and index ranges. Optional streams may be
// empty.
func (d Data) Validate() error {
	if len(d.Positions) == 0 {
		return ErrNoVertices
	}
	if len(d.Positions)%PositionComponents != 0 {
		return &LayoutError{Stream: "positions", Len: len(d.Positions), Want: (d.VertexCount() + 1) * PositionComponents}
	}

	vc := d.VertexCount()
	if len(d.Colors) != vc*ColorComponents {
		return &LayoutError{Stream: "colors", Len: len(d.Colors), Want: vc * ColorComponents}
	}
	if len(d.TexCoords) != 0 && len(d.TexCoords) != vc*TexCoordComponents {
		return &LayoutError{Stream: "texture coordinates", Len: len(d.TexCoords), Want: vc * TexCoordComponents}
	}
	if len(d.Normals) != 0 && len(d.Normals) != vc*NormalComponents {
		return &LayoutError{Stream: "normals", Len: len(d.Normals), Want: vc * NormalComponents}
	}

	if len(d.Indices) == 0 || len(d.Indices)%3 != 0 {
		return ErrNoTriangles
	}
	for i, idx := range d.Indices {
		if int(idx) >= vc {
			return &IndexRangeError{Index: i, Value: idx, VertexCount: vc}
		}
	}
	return nil
}

// WithDefaults returns a copy whose missing texture coordinates and normals
// are zero-filled to match the vertex count.
func (d Data) WithDefaults() Data {
	vc := d.VertexCount()
	if len(d.TexCoords) == 0 {
		d.TexCoords = make([]float32, vc*TexCoordComponents)
	}
	if len(d.Normals) == 0 {
		d.Normals = make([]float32, vc*NormalComponents)
	}
	return d
}

// WithColor returns a copy whose per-vertex colors are replaced by rgba.
func (d Data) WithColor(rgba [4]float32) Data {
	d.Colors = SolidColors(rgba, d.VertexCount())
	return d
}

// SolidColors repeats rgba for n vertices.
func SolidColors(rgba [4]float32, n int) []float32 {
	colors := make([]float32, 0, n*ColorComponents)
	for i := 0; i < n; i++ {
		colors = append(colors, rgba[:]...)
	}
	return colors
}

// FaceColors repeats each color for verticesPerFace consecutive vertices.
func FaceColors(verticesPerFace int, faces ...[4]float32) []float32 {
	colors := make([]float32, 0, len(faces)*verticesPerFace*ColorComponents)
	for _, c := range faces {
		for i := 0; i < verticesPerFace; i++ {
			colors = append(colors, c[:]...)
		}
	}
	return colors
}
