package app

import (
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"aesthetic-filters/internal/core"
)

const slowFilterThreshold = 5 * time.Second

type perfEntry struct {
	start    time.Time
	memAlloc uint64
}

// perfTracer logs timing and heap growth for every filter. It reads
// runtime.MemStats, which stops the world, so it is only installed in
// debug mode.
type perfTracer struct {
	logger logrus.FieldLogger
	slow   time.Duration

	mu     sync.Mutex
	active map[int]perfEntry
}

func newPerfTracer(logger logrus.FieldLogger) *perfTracer {
	return &perfTracer{
		logger: logger,
		slow:   slowFilterThreshold,
		active: make(map[int]perfEntry),
	}
}

func (p *perfTracer) FilterStarted(index, total int, filter core.Filter) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	p.mu.Lock()
	p.active[index] = perfEntry{start: time.Now(), memAlloc: m.Alloc}
	depth := len(p.active)
	p.mu.Unlock()

	p.logger.WithFields(logrus.Fields{
		"filter":     filter.ID(),
		"mem_mb":     float64(m.Alloc) / 1024 / 1024,
		"in_flight":  depth,
		"goroutines": runtime.NumGoroutine(),
	}).Debug("PERF: START")
}

func (p *perfTracer) FilterFinished(index, total int, v core.Variation) {
	p.mu.Lock()
	entry, ok := p.active[index]
	delete(p.active, index)
	p.mu.Unlock()

	if !ok {
		p.logger.WithField("filter", v.ID).Warn("PERF: finish without start")
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	elapsed := time.Since(entry.start)
	memDelta := int64(m.Alloc) - int64(entry.memAlloc)

	fields := logrus.Fields{
		"filter":       v.ID,
		"duration":     elapsed,
		"mem_delta_mb": float64(memDelta) / 1024 / 1024,
	}
	p.logger.WithFields(fields).Debug("PERF: END")

	if elapsed > p.slow {
		p.logger.WithFields(fields).Warn("PERF: SLOW OPERATION")
	}
}

// observers fans notifications out in order
type observers []core.Observer

func (o observers) FilterStarted(index, total int, filter core.Filter) {
	for _, obs := range o {
		obs.FilterStarted(index, total, filter)
	}
}

func (o observers) FilterFinished(index, total int, v core.Variation) {
	for _, obs := range o {
		obs.FilterFinished(index, total, v)
	}
}
