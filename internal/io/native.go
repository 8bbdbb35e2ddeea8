package io

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"aesthetic-filters/internal/core"
)

// NativeCodec uses the Go image decoders and the stdlib baseline JPEG
// encoder. It has no optimised-Huffman mode, so Optimize is ignored.
type NativeCodec struct{}

func NewNativeCodec() *NativeCodec {
	return &NativeCodec{}
}

func (c *NativeCodec) GetName() string {
	return "native"
}

func (c *NativeCodec) Decode(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	return &Decoded{
		Buffer: core.FromImage(img),
		Mode:   core.ColorModelName(img),
	}, nil
}

func (c *NativeCodec) EncodeJPEG(buf *core.PixelBuffer, path string, opts JPEGOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrEncode, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := jpeg.Encode(w, buf.Image(), &jpeg.Options{Quality: opts.Quality}); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
