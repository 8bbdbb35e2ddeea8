// Package config holds run settings assembled from the command line.
package config

import (
	"errors"
	"fmt"
	"runtime"
)

const (
	DefaultOutputDir = "image_folder"
	DefaultQuality   = 95
	DefaultCodec     = CodecOpenCV

	CodecOpenCV = "opencv"
	CodecNative = "native"
)

// Config controls one generator run
type Config struct {
	InputPath string
	OutputDir string
	Quality   int
	Optimize  bool
	Codec     string
	Workers   int
	Debug     bool
}

// Default returns the settings used when no flags are given
func Default() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Quality:   DefaultQuality,
		Optimize:  true,
		Codec:     DefaultCodec,
		Workers:   1,
	}
}

// Validate checks ranges and required fields
func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input image path is required")
	}
	if c.OutputDir == "" {
		return errors.New("output folder must not be empty")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", c.Quality)
	}
	switch c.Codec {
	case CodecOpenCV, CodecNative:
	default:
		return fmt.Errorf("unknown codec %q (want %s or %s)", c.Codec, CodecOpenCV, CodecNative)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// EffectiveWorkers resolves 0 to the number of CPUs
func (c Config) EffectiveWorkers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
