package io

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aesthetic-filters/internal/core"
)

func newTestLoader() *ImageLoader {
	logger, _ := logtest.NewNullLogger()
	return NewImageLoader(NewNativeCodec(), logger)
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		magic []byte
		want  string
	}{
		{name: "jpeg", magic: []byte{0xFF, 0xD8, 0xFF, 0xE0}, want: "JPEG"},
		{name: "png", magic: pngSignature[:], want: "PNG"},
		{name: "gif", magic: []byte("GIF89a..."), want: "GIF"},
		{name: "webp", magic: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: "WEBP"},
		{name: "riff but not webp", magic: []byte("RIFF\x00\x00\x00\x00WAVEfmt "), want: ""},
		{name: "tiff little endian", magic: []byte{0x49, 0x49, 0x2A, 0x00, 0x08}, want: "TIFF"},
		{name: "tiff big endian", magic: []byte{0x4D, 0x4D, 0x00, 0x2A, 0x00}, want: "TIFF"},
		{name: "bmp", magic: []byte("BM\x00\x00"), want: "BMP"},
		{name: "text", magic: []byte("hello world"), want: ""},
		{name: "too short", magic: []byte{0xFF}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat(tt.magic))
		})
	}
}

func TestLoadImage_PNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")

	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 80), G: uint8(y * 120), B: 33, A: 255})
		}
	}
	writePNG(t, path, src)

	decoded, err := newTestLoader().LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "PNG", decoded.Format)
	assert.Equal(t, 3, decoded.Buffer.Width)
	assert.Equal(t, 2, decoded.Buffer.Height)

	r, g, b := decoded.Buffer.At(2, 1)
	assert.Equal(t, [3]uint8{160, 120, 33}, [3]uint8{r, g, b})
}

func TestLoadImage_GrayNormalisedToRGB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.png")
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 1, color.Gray{Y: 99})
	writePNG(t, path, src)

	decoded, err := newTestLoader().LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "L", decoded.Mode)
	r, g, b := decoded.Buffer.At(1, 1)
	assert.Equal(t, [3]uint8{99, 99, 99}, [3]uint8{r, g, b})
}

func TestLoadImage_Errors(t *testing.T) {
	dir := t.TempDir()
	loader := newTestLoader()

	t.Run("missing", func(t *testing.T) {
		_, err := loader.LoadImage(filepath.Join(dir, "nope.jpg"))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, loader.CheckExists(filepath.Join(dir, "nope.jpg")), ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := loader.LoadImage(dir)
		assert.ErrorIs(t, err, ErrDecode)
		assert.NoError(t, loader.CheckExists(dir))
	})

	t.Run("unknown format", func(t *testing.T) {
		path := filepath.Join(dir, "notes.jpg")
		require.NoError(t, os.WriteFile(path, []byte("definitely not an image"), 0o644))

		_, err := loader.LoadImage(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("truncated png", func(t *testing.T) {
		path := filepath.Join(dir, "broken.png")
		data := append(pngSignature[:], []byte("garbage garbage garbage")...)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		_, err := loader.LoadImage(path)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.png")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := loader.LoadImage(path)
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestNativeCodec_EncodeJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	buf := core.NewUniform(9, 5, 200, 120, 40)

	require.NoError(t, newTestLoader().SaveImage(buf, path, JPEGOptions{Quality: 95, Optimize: true}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 9, 5), img.Bounds())

	r, g, b, _ := img.At(4, 2).RGBA()
	assert.InDelta(t, 200, int(r>>8), 3)
	assert.InDelta(t, 120, int(g>>8), 3)
	assert.InDelta(t, 40, int(b>>8), 3)
}

func TestSaveImage_Errors(t *testing.T) {
	loader := newTestLoader()

	err := loader.SaveImage(&core.PixelBuffer{}, filepath.Join(t.TempDir(), "x.jpg"), JPEGOptions{Quality: 95})
	assert.ErrorIs(t, err, ErrEncode)

	err = loader.SaveImage(core.NewPixelBuffer(1, 1), filepath.Join(t.TempDir(), "missing", "x.jpg"), JPEGOptions{Quality: 95})
	assert.ErrorIs(t, err, ErrEncode)
}
