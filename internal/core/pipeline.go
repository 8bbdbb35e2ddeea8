// internal/core/pipeline.go
// Variation generator: runs every filter against one read-only base image
package core

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Filter is one named transformation of the base image
type Filter interface {
	ID() string
	GetName() string
	Apply(base *PixelBuffer) (*PixelBuffer, error)
}

// Evaluator compares a variation against the base image
type Evaluator interface {
	CalculateAll(original, processed *PixelBuffer) map[string]float64
}

// Observer receives progress notifications. Calls are serialised even
// when filters run concurrently.
type Observer interface {
	FilterStarted(index, total int, filter Filter)
	FilterFinished(index, total int, variation Variation)
}

// Variation is the outcome of one filter
type Variation struct {
	ID       string
	Name     string
	Buffer   *PixelBuffer
	Err      error
	Stats    map[string]float64
	Duration time.Duration
}

// OK reports whether the filter produced a buffer
func (v Variation) OK() bool {
	return v.Err == nil && v.Buffer != nil
}

// VariationSet holds one variation per filter, in filter order
type VariationSet struct {
	Variations []Variation
}

// Len returns the number of variations, failed ones included
func (s *VariationSet) Len() int {
	return len(s.Variations)
}

// Get finds a variation by identifier
func (s *VariationSet) Get(id string) (Variation, bool) {
	for _, v := range s.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

// Failed returns the variations whose filter returned an error
func (s *VariationSet) Failed() []Variation {
	var failed []Variation
	for _, v := range s.Variations {
		if !v.OK() {
			failed = append(failed, v)
		}
	}
	return failed
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithLogger sets the diagnostic logger
func WithLogger(logger logrus.FieldLogger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithObserver sets the progress observer
func WithObserver(observer Observer) GeneratorOption {
	return func(g *Generator) {
		g.observer = observer
	}
}

// WithEvaluator enables per-variation statistics
func WithEvaluator(evaluator Evaluator) GeneratorOption {
	return func(g *Generator) {
		g.evaluator = evaluator
	}
}

// WithWorkers sets how many filters may run at once. Values below 2
// keep the run sequential.
func WithWorkers(workers int) GeneratorOption {
	return func(g *Generator) {
		g.workers = workers
	}
}

// Generator applies a fixed list of filters to a base image
type Generator struct {
	filters   []Filter
	logger    logrus.FieldLogger
	observer  Observer
	evaluator Evaluator
	workers   int

	notifyMu sync.Mutex
}

func NewGenerator(filters []Filter, opts ...GeneratorOption) *Generator {
	g := &Generator{
		filters: filters,
		logger:  discardLogger(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Generate runs every filter against base. A failing filter is recorded
// on its own variation and never stops the others; only an invalid base
// or a cancelled context aborts the run.
func (g *Generator) Generate(ctx context.Context, base *PixelBuffer) (*VariationSet, error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base image: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"filters": len(g.filters),
		"workers": g.workers,
		"width":   base.Width,
		"height":  base.Height,
	}).Debug("PIPELINE: Generating variations")

	set := &VariationSet{Variations: make([]Variation, len(g.filters))}

	if g.workers < 2 {
		for i, filter := range g.filters {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			set.Variations[i] = g.run(i, filter, base)
		}
		return set, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, filter := range g.filters {
		i, filter := i, filter
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			set.Variations[i] = g.run(i, filter, base)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// run applies one filter, converting errors and panics into the
// variation's Err.
func (g *Generator) run(index int, filter Filter, base *PixelBuffer) (v Variation) {
	v = Variation{ID: filter.ID(), Name: filter.GetName()}
	total := len(g.filters)

	g.notify(func(o Observer) { o.FilterStarted(index, total, filter) })
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			v.Buffer = nil
			v.Stats = nil
			v.Err = fmt.Errorf("panic in filter %s: %v", v.ID, r)
		}
		v.Duration = time.Since(start)

		entry := g.logger.WithFields(logrus.Fields{
			"filter":   v.ID,
			"duration": v.Duration,
		})
		if v.Err != nil {
			entry.WithError(v.Err).Warn("PIPELINE: Filter failed")
		} else {
			entry.WithFields(toFields(v.Stats)).Debug("PIPELINE: Filter completed")
		}

		g.notify(func(o Observer) { o.FilterFinished(index, total, v) })
	}()

	out, err := filter.Apply(base)
	if err != nil {
		v.Err = fmt.Errorf("filter %s: %w", v.ID, err)
		return v
	}
	if out == nil || !out.SameSize(base) {
		v.Err = fmt.Errorf("filter %s: %w: output size does not match base", v.ID, ErrInvalidBuffer)
		return v
	}

	if g.evaluator != nil {
		v.Stats = g.evaluator.CalculateAll(base, out)
	}
	v.Buffer = out
	return v
}

func (g *Generator) notify(fn func(Observer)) {
	if g.observer == nil {
		return
	}
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()
	fn(g.observer)
}

func toFields(stats map[string]float64) logrus.Fields {
	fields := make(logrus.Fields, len(stats))
	for k, v := range stats {
		fields[k] = v
	}
	return fields
}
