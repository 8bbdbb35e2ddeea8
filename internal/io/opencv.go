package io

import (
	"fmt"

	"gocv.io/x/gocv"

	"aesthetic-filters/internal/core"
)

// OpenCVCodec decodes and encodes through OpenCV's imgcodecs
type OpenCVCodec struct{}

func NewOpenCVCodec() *OpenCVCodec {
	return &OpenCVCodec{}
}

func (c *OpenCVCodec) GetName() string {
	return "opencv"
}

// Decode loads any supported file as 8-bit colour. OpenCV expands grey,
// drops alpha and narrows 16-bit data; EXIF orientation is ignored so the
// pixels match the stored raster.
func (c *OpenCVCodec) Decode(path string) (*Decoded, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor|gocv.IMReadIgnoreOrientation)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrDecode, path)
	}

	if mat.Channels() != core.Channels {
		return nil, fmt.Errorf("%w: unexpected channel count %d", ErrDecode, mat.Channels())
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(mat, &rgb, gocv.ColorBGRToRGB)

	buf := &core.PixelBuffer{
		Width:  rgb.Cols(),
		Height: rgb.Rows(),
		Pix:    rgb.ToBytes(),
	}

	return &Decoded{Buffer: buf}, nil
}

func (c *OpenCVCodec) EncodeJPEG(buf *core.PixelBuffer, path string, opts JPEGOptions) error {
	mat, err := gocv.NewMatFromBytes(buf.Height, buf.Width, gocv.MatTypeCV8UC3, buf.Pix)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer mat.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBToBGR)

	params := []int{int(gocv.IMWriteJpegQuality), opts.Quality}
	if opts.Optimize {
		params = append(params, int(gocv.IMWriteJpegOptimize), 1)
	}

	if !gocv.IMWriteWithParams(path, bgr, params) {
		return fmt.Errorf("%w: %s", ErrEncode, path)
	}
	return nil
}
