// Core pixel buffer shared by the loader, the filters and the writer
package core

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidBuffer is returned when a buffer fails validation
var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// Channels is the number of 8-bit samples per pixel
const Channels = 3

// maxDimension bounds width and height to keep allocations sane
const maxDimension = 65536

// PixelBuffer is a row-major 8-bit RGB image. Pix holds Width*Height
// triples; the stride is Channels*Width.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// NewUniform allocates a buffer filled with one colour
func NewUniform(width, height int, r, g, b uint8) *PixelBuffer {
	buf := NewPixelBuffer(width, height)
	for i := 0; i < len(buf.Pix); i += Channels {
		buf.Pix[i] = r
		buf.Pix[i+1] = g
		buf.Pix[i+2] = b
	}
	return buf
}

// Stride returns the number of bytes per row
func (b *PixelBuffer) Stride() int {
	return b.Width * Channels
}

// PixOffset returns the index of the first channel of pixel (x, y)
func (b *PixelBuffer) PixOffset(x, y int) int {
	return y*b.Stride() + x*Channels
}

// At returns the RGB triple at (x, y)
func (b *PixelBuffer) At(x, y int) (r, g, bl uint8) {
	i := b.PixOffset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set stores an RGB triple at (x, y)
func (b *PixelBuffer) Set(x, y int, r, g, bl uint8) {
	i := b.PixOffset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
}

// Clone returns a deep copy
func (b *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// SameSize reports whether two buffers share dimensions
func (b *PixelBuffer) SameSize(other *PixelBuffer) bool {
	return other != nil && b.Width == other.Width && b.Height == other.Height
}

// Equal reports whether two buffers hold identical pixels
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if !b.SameSize(other) || len(b.Pix) != len(other.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Validate checks dimensions and backing slice length
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}

	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}

	if b.Width > maxDimension || b.Height > maxDimension {
		return fmt.Errorf("%w: image too large %dx%d (max: %d)", ErrInvalidBuffer, b.Width, b.Height, maxDimension)
	}

	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return fmt.Errorf("%w: pixel data length %d, want %d", ErrInvalidBuffer, len(b.Pix), want)
	}

	return nil
}

// FromImage converts any decoded image into an RGB buffer. Alpha is
// dropped after un-premultiplying, matching a plain RGB conversion.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	buf := NewPixelBuffer(bounds.Dx(), bounds.Dy())

	switch src := img.(type) {
	case *image.RGBA:
		if zeroOriginOpaque(src) {
			for y := 0; y < buf.Height; y++ {
				row := src.Pix[y*src.Stride:]
				for x := 0; x < buf.Width; x++ {
					i := buf.PixOffset(x, y)
					buf.Pix[i] = row[x*4]
					buf.Pix[i+1] = row[x*4+1]
					buf.Pix[i+2] = row[x*4+2]
				}
			}
			return buf
		}
	case *image.Gray:
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				v := src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
				buf.Set(x, y, v, v, v)
			}
		}
		return buf
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			buf.Set(x, y, c.R, c.G, c.B)
		}
	}
	return buf
}

func zeroOriginOpaque(img *image.RGBA) bool {
	return img.Opaque() && img.Rect.Min == image.Point{}
}

// Image returns an opaque RGBA view copy suitable for stdlib encoders
func (b *PixelBuffer) Image() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := b.PixOffset(x, y)
			j := out.PixOffset(x, y)
			out.Pix[j] = b.Pix[i]
			out.Pix[j+1] = b.Pix[i+1]
			out.Pix[j+2] = b.Pix[i+2]
			out.Pix[j+3] = 0xff
		}
	}
	return out
}

// ColorModelName names the colour model of a decoded image
func ColorModelName(img image.Image) string {
	if _, ok := img.ColorModel().(color.Palette); ok {
		return "P"
	}

	switch img.ColorModel() {
	case color.RGBAModel, color.NRGBAModel:
		return "RGBA"
	case color.RGBA64Model, color.NRGBA64Model:
		return "RGBA64"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	}
	return "unknown"
}
