// Package app wires loading, filtering and saving into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"aesthetic-filters/internal/config"
	"aesthetic-filters/internal/core"
	"aesthetic-filters/internal/filters"
	imageio "aesthetic-filters/internal/io"
	"aesthetic-filters/internal/metrics"
)

// Process exit codes
const (
	ExitOK           = 0
	ExitNotFound     = 1
	ExitDecode       = 2
	ExitNothingSaved = 3
	ExitUsage        = 64
)

var (
	// ErrUsage marks invalid arguments or flags
	ErrUsage = errors.New("invalid usage")

	// ErrNothingSaved is returned when not a single variation was written
	ErrNothingSaved = errors.New("no variations saved")
)

// Result describes a completed run
type Result struct {
	Variations *core.VariationSet
	Report     imageio.SaveReport
	OutputDir  string
}

// ExitCode maps a Run error to a process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, imageio.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, imageio.ErrDecode):
		return ExitDecode
	default:
		return ExitNothingSaved
	}
}

// NewCodec returns the codec registered under name
func NewCodec(name string) (imageio.Codec, error) {
	switch name {
	case config.CodecOpenCV:
		return imageio.NewOpenCVCodec(), nil
	case config.CodecNative:
		return imageio.NewNativeCodec(), nil
	}
	return nil, fmt.Errorf("%w: unknown codec %q", ErrUsage, name)
}

// Run loads cfg.InputPath, generates every variation and saves them
// under cfg.OutputDir. Progress goes to out, diagnostics to logger.
// Partial save failures are not an error; zero saves is.
func Run(ctx context.Context, cfg config.Config, out io.Writer, logger logrus.FieldLogger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	codec, err := NewCodec(cfg.Codec)
	if err != nil {
		return nil, err
	}

	console := NewConsole(out)
	loader := imageio.NewImageLoader(codec, logger)

	if err := loader.CheckExists(cfg.InputPath); errors.Is(err, imageio.ErrNotFound) {
		console.NotFound(cfg.InputPath)
		return nil, err
	}

	decoded, err := loader.LoadImage(cfg.InputPath)
	if err != nil {
		if errors.Is(err, imageio.ErrNotFound) {
			console.NotFound(cfg.InputPath)
		} else {
			console.LoadFailed(err)
		}
		return nil, err
	}
	console.Loaded(cfg.InputPath, decoded)

	created, err := imageio.EnsureDir(cfg.OutputDir)
	if err != nil {
		console.FolderFailed(cfg.OutputDir, err)
		return nil, fmt.Errorf("%w: %v", ErrNothingSaved, err)
	}
	if created {
		console.FolderCreated(cfg.OutputDir)
	}

	var observer core.Observer = console
	if cfg.Debug {
		observer = observers{console, newPerfTracer(logger)}
	}

	generator := core.NewGenerator(filters.Filters(),
		core.WithLogger(logger),
		core.WithObserver(observer),
		core.WithEvaluator(metrics.NewEvaluator()),
		core.WithWorkers(cfg.EffectiveWorkers()),
	)

	set, err := generator.Generate(ctx, decoded.Buffer)
	if err != nil {
		return nil, fmt.Errorf("generating variations: %w", err)
	}

	console.SavingHeader()
	writer := imageio.NewWriter(loader, imageio.JPEGOptions{
		Quality:  cfg.Quality,
		Optimize: cfg.Optimize,
	}, logger)
	report := writer.SaveAll(cfg.OutputDir, imageio.BaseName(cfg.InputPath), set, console)

	location, absErr := filepath.Abs(cfg.OutputDir)
	if absErr != nil {
		location = cfg.OutputDir
	}
	console.Summary(report.Saved(), report.Total(), location)

	result := &Result{
		Variations: set,
		Report:     report,
		OutputDir:  cfg.OutputDir,
	}

	logger.WithFields(logrus.Fields{
		"saved":  report.Saved(),
		"total":  report.Total(),
		"output": location,
	}).Info("Run finished")

	if report.Saved() == 0 {
		return result, fmt.Errorf("%w: %v", ErrNothingSaved, report.Err())
	}
	return result, nil
}
