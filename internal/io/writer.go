package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"aesthetic-filters/internal/core"
)

// SaveResult records the outcome of writing one variation
type SaveResult struct {
	ID   string
	Path string
	Err  error
}

// SaveReport summarises a batch of writes
type SaveReport struct {
	Results []SaveResult
}

// Saved counts successful writes
func (r SaveReport) Saved() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Total is the number of variations attempted
func (r SaveReport) Total() int {
	return len(r.Results)
}

// Err joins every per-file error, or returns nil when all succeeded
func (r SaveReport) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.ID, res.Err))
		}
	}
	return errors.Join(errs...)
}

// SaveObserver is told about each write as it happens
type SaveObserver interface {
	FileSaved(result SaveResult)
	FileFailed(result SaveResult)
}

// Writer saves a variation set as numbered JPEG files
type Writer struct {
	loader *ImageLoader
	opts   JPEGOptions
	logger logrus.FieldLogger
}

func NewWriter(loader *ImageLoader, opts JPEGOptions, logger logrus.FieldLogger) *Writer {
	return &Writer{
		loader: loader,
		opts:   opts,
		logger: logger,
	}
}

// SaveAll writes every variation to dir. A failure is reported once and
// the remaining files are still attempted; nothing is retried.
func (w *Writer) SaveAll(dir, baseName string, set *core.VariationSet, observer SaveObserver) SaveReport {
	report := SaveReport{Results: make([]SaveResult, 0, set.Len())}

	for _, v := range set.Variations {
		result := SaveResult{
			ID:   v.ID,
			Path: OutputPath(dir, baseName, v.ID),
		}

		switch {
		case v.Err != nil:
			result.Err = v.Err
		case v.Buffer == nil:
			result.Err = fmt.Errorf("no image produced")
		default:
			result.Err = w.loader.SaveImage(v.Buffer, result.Path, w.opts)
		}

		if result.Err != nil {
			w.logger.WithFields(logrus.Fields{
				"variation": v.ID,
				"path":      result.Path,
			}).WithError(result.Err).Warn("Variation not saved")
			if observer != nil {
				observer.FileFailed(result)
			}
		} else if observer != nil {
			observer.FileSaved(result)
		}

		report.Results = append(report.Results, result)
	}

	return report
}

// OutputPath builds <dir>/<base>_<id>.jpg
func OutputPath(dir, baseName, id string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.jpg", baseName, id))
}

// BaseName strips directory and extension from an input path
func BaseName(path string) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if ext == name {
		// dotfile such as ".photo": no extension to strip
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// EnsureDir creates dir and any missing parents. It reports whether the
// directory had to be created.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("output path %s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("creating output folder: %w", err)
	}
	return true, nil
}
