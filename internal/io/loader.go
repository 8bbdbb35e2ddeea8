// Image loading and saving behind a pluggable codec
package io

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"aesthetic-filters/internal/core"
)

var (
	// ErrNotFound is returned when the input path does not exist
	ErrNotFound = errors.New("image file not found")

	// ErrDecode is returned when the input cannot be turned into pixels
	ErrDecode = errors.New("failed to load image")

	// ErrUnsupportedFormat is returned for files with unknown magic bytes.
	// It always wraps ErrDecode as well.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrEncode is returned when a JPEG could not be written
	ErrEncode = errors.New("failed to save image")
)

// Decoded is a normalised RGB image plus what was learned about its source
type Decoded struct {
	Buffer *core.PixelBuffer
	Format string // detected container format, e.g. "PNG"
	Mode   string // source colour model when the codec exposes it
}

// JPEGOptions controls encoding
type JPEGOptions struct {
	Quality  int
	Optimize bool
}

// Codec decodes files into RGB buffers and encodes buffers as JPEG
type Codec interface {
	Decode(path string) (*Decoded, error)
	EncodeJPEG(buf *core.PixelBuffer, path string, opts JPEGOptions) error
	GetName() string
}

// ImageLoader handles image file operations
type ImageLoader struct {
	codec  Codec
	logger logrus.FieldLogger
}

func NewImageLoader(codec Codec, logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		codec:  codec,
		logger: logger,
	}
}

// Codec returns the codec in use
func (il *ImageLoader) Codec() Codec {
	return il.codec
}

// CheckExists reports ErrNotFound for a missing path without reading it
func (il *ImageLoader) CheckExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (il *ImageLoader) LoadImage(path string) (*Decoded, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDecode, path)
	}

	format, err := sniffFormat(path)
	if err != nil {
		return nil, err
	}

	decoded, err := il.codec.Decode(path)
	if err != nil {
		if errors.Is(err, ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if err := decoded.Buffer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	decoded.Format = format

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"codec":    il.codec.GetName(),
		"format":   format,
		"mode":     decoded.Mode,
		"width":    decoded.Buffer.Width,
		"height":   decoded.Buffer.Height,
	}).Info("Image loaded successfully")

	return decoded, nil
}

func (il *ImageLoader) SaveImage(buf *core.PixelBuffer, path string, opts JPEGOptions) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := il.codec.EncodeJPEG(buf, path, opts); err != nil {
		if errors.Is(err, ErrEncode) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrEncode, path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width,
		"height":   buf.Height,
		"quality":  opts.Quality,
	}).Info("Image saved successfully")

	return nil
}

// sniffFormat reads the file header and names the container format
func sniffFormat(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	header := make([]byte, headerSniffLength)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	format := detectFormat(header[:n])
	if format == "" {
		return "", fmt.Errorf("%w: %w: %s", ErrDecode, ErrUnsupportedFormat, path)
	}
	return format, nil
}

// GetSupportedFormats lists the container formats accepted by the sniffer
func GetSupportedFormats() []string {
	return []string{"JPEG", "PNG", "GIF", "WEBP", "TIFF", "BMP"}
}
