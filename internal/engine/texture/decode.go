package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// UnsupportedFormatError reports a file extension with no decoder.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("texture: unsupported image format %q", e.Ext)
}

// Decode decodes an image by file extension (png, jpg, jpeg, bmp, tga) and
// returns RGBA pixels with the bottom row first, the order glTexImage2D
// expects.
func Decode(data []byte, ext string) (*image.RGBA, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	var (
		img image.Image
		err error
	)
	switch ext {
	case "png":
		img, err = png.Decode(bytes.NewReader(data))
	case "jpg", "jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	case "tga":
		img, err = DecodeTGA(data)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}

	rgba := ToRGBA(img)
	FlipVertical(rgba)
	return rgba, nil
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ToRGBA returns img as a zero-origin *image.RGBA, copying when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	stride := img.Stride
	tmp := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
