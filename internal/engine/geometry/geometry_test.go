package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
	"github.com/Faultbox/scenegl/internal/engine/gfx/gfxtest"
)

func TestShapesValidate(t *testing.T) {
	tests := []struct {
		name     string
		data     Data
		vertices int
		indices  int
	}{
		{"cube", Cube(), 24, 36},
		{"wall", Wall(), 4, 6},
		{"pyramid", Pyramid(DefaultPyramidSize), 5, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.data.Validate())
			assert.Equal(t, tt.vertices, tt.data.VertexCount())
			assert.Len(t, tt.data.Indices, tt.indices)
		})
	}
}

func TestCubeFaceColors(t *testing.T) {
	c := Cube()
	faces := [][4]float32{White, Red, Green, Blue, Yellow, Purple}
	for f, want := range faces {
		for v := 0; v < 4; v++ {
			off := (f*4 + v) * ColorComponents
			assert.Equal(t, want[:], c.Colors[off:off+4], "face %d vertex %d", f, v)
		}
	}
}

func TestPyramidColors(t *testing.T) {
	p := Pyramid(0)
	assert.Equal(t, Red[:], p.Colors[0:4])
	assert.Equal(t, Green[:], p.Colors[16:20])
	// Non-positive sizes fall back to the default.
	assert.Equal(t, float32(DefaultPyramidSize), p.Positions[13])
}

func TestValidateErrors(t *testing.T) {
	wall := Wall()

	badIndex := wall
	badIndex.Indices = []uint16{0, 1, 4}

	shortColors := wall
	shortColors.Colors = wall.Colors[:8]

	badNormals := wall
	badNormals.Normals = []float32{0, 0, 1}

	notTriangles := wall
	notTriangles.Indices = []uint16{0, 1}

	t.Run("index out of range", func(t *testing.T) {
		var rangeErr *IndexRangeError
		require.ErrorAs(t, badIndex.Validate(), &rangeErr)
		assert.Equal(t, 2, rangeErr.Index)
		assert.Equal(t, uint16(4), rangeErr.Value)
		assert.Equal(t, 4, rangeErr.VertexCount)
	})

	t.Run("short colors", func(t *testing.T) {
		var layoutErr *LayoutError
		require.ErrorAs(t, shortColors.Validate(), &layoutErr)
		assert.Equal(t, "colors", layoutErr.Stream)
		assert.Equal(t, 16, layoutErr.Want)
	})

	t.Run("normal mismatch", func(t *testing.T) {
		var layoutErr *LayoutError
		require.ErrorAs(t, badNormals.Validate(), &layoutErr)
		assert.Equal(t, "normals", layoutErr.Stream)
	})

	t.Run("not triangles", func(t *testing.T) {
		assert.ErrorIs(t, notTriangles.Validate(), ErrNoTriangles)
	})

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, Data{}.Validate(), ErrNoVertices)
	})
}

func TestWithDefaults(t *testing.T) {
	p := Pyramid(1).WithDefaults()
	require.Len(t, p.TexCoords, 5*TexCoordComponents)
	require.Len(t, p.Normals, 5*NormalComponents)
	for _, v := range append(p.TexCoords, p.Normals...) {
		assert.Zero(t, v)
	}

	// Existing streams are kept.
	c := Cube()
	assert.Equal(t, c.Normals, c.WithDefaults().Normals)
}

func TestWithColor(t *testing.T) {
	c := Cube().WithColor([4]float32{0.5, 0.5, 0.5, 1})
	require.Len(t, c.Colors, 24*ColorComponents)
	for i := 0; i < 24; i++ {
		assert.Equal(t, []float32{0.5, 0.5, 0.5, 1}, c.Colors[i*4:i*4+4])
	}
}

func TestShapeFunc(t *testing.T) {
	var s Shape = ShapeFunc(Wall)
	assert.Equal(t, Wall(), s.Geometry())
}

func allAttributes() Attributes {
	return Attributes{Position: 0, Color: 1, TexCoord: 2, Normal: 3}
}

func TestNewBufferSet(t *testing.T) {
	dev := gfxtest.New()

	bs, err := NewBufferSet(dev, Pyramid(1), allAttributes())
	require.NoError(t, err)

	assert.Equal(t, int32(18), bs.IndexCount())
	assert.Equal(t, 5, bs.VertexCount())
	assert.Equal(t, 4, dev.Count("CreateVertexBuffer"))
	assert.Equal(t, 1, dev.Count("CreateIndexBuffer"))
	assert.Equal(t, 4, dev.Count("VertexAttrib"))
	assert.Equal(t, 5, dev.LiveOf(gfxtest.KindBuffer))
	assert.Equal(t, 1, dev.LiveOf(gfxtest.KindVertexArray))

	// Zero-filled streams are the full vertex length.
	creates := dev.Find("CreateVertexBuffer")
	assert.Equal(t, []any{5 * TexCoordComponents}, creates[2].Args)
	assert.Equal(t, []any{5 * NormalComponents}, creates[3].Args)

	bs.Close()
	bs.Close()
	assert.True(t, bs.Closed())
	assert.Zero(t, dev.Live())
	assert.Empty(t, dev.OverReleased())
}

func TestNewBufferSetSkipsUnusedAttributes(t *testing.T) {
	dev := gfxtest.New()

	attrs := Attributes{Position: 0, Color: 1, TexCoord: -1, Normal: -1}
	bs, err := NewBufferSet(dev, Wall(), attrs)
	require.NoError(t, err)
	defer bs.Close()

	calls := dev.Find("VertexAttrib")
	require.Len(t, calls, 2)
	assert.Equal(t, uint32(0), calls[0].Args[0])
	assert.Equal(t, int32(PositionComponents), calls[0].Args[1])
	assert.Equal(t, uint32(1), calls[1].Args[0])
	assert.Equal(t, int32(ColorComponents), calls[1].Args[1])
}

func TestNewBufferSetInvalidData(t *testing.T) {
	dev := gfxtest.New()

	data := Wall()
	data.Indices = []uint16{0, 1, 9}
	_, err := NewBufferSet(dev, data, allAttributes())

	var rangeErr *IndexRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Empty(t, dev.Calls, "nothing is uploaded for invalid data")
}

func TestNewBufferSetCleanupOnFailure(t *testing.T) {
	tests := []struct {
		name string
		fail map[string]int
	}{
		{"third buffer", map[string]int{gfxtest.KindBuffer: 3}},
		{"index buffer", map[string]int{gfxtest.KindBuffer: 5}},
		{"vertex array", map[string]int{gfxtest.KindVertexArray: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gfxtest.New()
			dev.FailCreate = tt.fail

			bs, err := NewBufferSet(dev, Cube(), allAttributes())
			require.Error(t, err)
			assert.Nil(t, bs)

			var createErr *gfx.ResourceCreationError
			assert.True(t, errors.As(err, &createErr))
			assert.Zero(t, dev.Live())
			assert.Empty(t, dev.OverReleased())
		})
	}
}

func TestRebind(t *testing.T) {
	dev := gfxtest.New()

	bs, err := NewBufferSet(dev, Wall(), allAttributes())
	require.NoError(t, err)
	old := bs.VertexArray()

	require.NoError(t, bs.Rebind(Attributes{Position: 3, Color: 2, TexCoord: 1, Normal: 0}))
	assert.NotEqual(t, old, bs.VertexArray())
	assert.Equal(t, 1, dev.DeleteCount(old))
	assert.Equal(t, 1, dev.LiveOf(gfxtest.KindVertexArray))

	// A failed rebind keeps the current vertex array.
	dev.FailCreate = map[string]int{gfxtest.KindVertexArray: dev.Created(gfxtest.KindVertexArray) + 1}
	current := bs.VertexArray()
	require.Error(t, bs.Rebind(allAttributes()))
	assert.Equal(t, current, bs.VertexArray())

	bs.Close()
	assert.Zero(t, dev.Live())
}
