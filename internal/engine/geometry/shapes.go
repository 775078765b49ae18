package geometry

// Face colors of the cube, in face order.
var (
	White  = [4]float32{1, 1, 1, 1}
	Red    = [4]float32{1, 0, 0, 1}
	Green  = [4]float32{0, 1, 0, 1}
	Blue   = [4]float32{0, 0, 1, 1}
	Yellow = [4]float32{1, 1, 0, 1}
	Purple = [4]float32{1, 0, 1, 1}
)

// DefaultPyramidSize is the half extent of the marker pyramid.
const DefaultPyramidSize = 0.2

// Cube returns a 2x2x2 cube centered at the origin with 4 vertices per face
// so each face carries its own color, texture coordinates and normal.
func Cube() Data {
	return Data{
		Positions: []float32{
			// front
			-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1,
			// back
			-1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1, -1,
			// top
			-1, 1, -1, -1, 1, 1, 1, 1, 1, 1, 1, -1,
			// bottom
			-1, -1, -1, 1, -1, -1, 1, -1, 1, -1, -1, 1,
			// right
			1, -1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1,
			// left
			-1, -1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1,
		},
		Colors: FaceColors(4, White, Red, Green, Blue, Yellow, Purple),
		TexCoords: []float32{
			0, 0, 1, 0, 1, 1, 0, 1,
			1, 0, 1, 1, 0, 1, 0, 0,
			0, 1, 0, 0, 1, 0, 1, 1,
			1, 1, 0, 1, 0, 0, 1, 0,
			1, 0, 1, 1, 0, 1, 0, 0,
			0, 0, 1, 0, 1, 1, 0, 1,
		},
		Normals: faceNormals(4,
			[3]float32{0, 0, 1},
			[3]float32{0, 0, -1},
			[3]float32{0, 1, 0},
			[3]float32{0, -1, 0},
			[3]float32{1, 0, 0},
			[3]float32{-1, 0, 0},
		),
		Indices: quadIndices(6),
	}
}

// Wall returns a green 2x2 quad in the z=0 plane facing +Z.
func Wall() Data {
	return Data{
		Positions: []float32{
			-1, -1, 0,
			1, -1, 0,
			1, 1, 0,
			-1, 1, 0,
		},
		Colors:    SolidColors(Green, 4),
		TexCoords: []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Normals:   faceNormals(4, [3]float32{0, 0, 1}),
		Indices:   quadIndices(1),
	}
}

// Pyramid returns a square pyramid with a red base and a green apex. size is
// the half extent of the base and the apex height above the center.
func Pyramid(size float32) Data {
	if size <= 0 {
		size = DefaultPyramidSize
	}
	s := size
	return Data{
		Positions: []float32{
			-s, -s, s, // front-left
			s, -s, s, // front-right
			s, -s, -s, // back-right
			-s, -s, -s, // back-left
			0, s, 0, // apex
		},
		Colors: append(SolidColors(Red, 4), Green[:]...),
		Indices: []uint16{
			0, 2, 1, 0, 3, 2,
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
		},
	}
}

// quadIndices returns two triangles (0,1,2) (0,2,3) for each of n quads.
func quadIndices(n int) []uint16 {
	indices := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		b := uint16(i * 4)
		indices = append(indices, b, b+1, b+2, b, b+2, b+3)
	}
	return indices
}

func faceNormals(verticesPerFace int, normals ...[3]float32) []float32 {
	out := make([]float32, 0, len(normals)*verticesPerFace*NormalComponents)
	for _, n := range normals {
		for i := 0; i < verticesPerFace; i++ {
			out = append(out, n[:]...)
		}
	}
	return out
}
