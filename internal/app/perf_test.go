package app

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aesthetic-filters/internal/core"
	"aesthetic-filters/internal/filters"
)

func TestPerfTracer(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	tracer := newPerfTracer(logger)
	filter := filters.Filters()[0]

	tracer.FilterStarted(0, 10, filter)
	tracer.FilterFinished(0, 10, core.Variation{ID: filter.ID()})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "PERF: START", entries[0].Message)
	assert.Equal(t, "PERF: END", entries[1].Message)
	assert.Equal(t, "01_vibrant", entries[1].Data["filter"])
	assert.Empty(t, tracer.active)
}

func TestPerfTracer_SlowAndUnmatched(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	tracer := newPerfTracer(logger)
	tracer.slow = 0
	filter := filters.Filters()[1]

	tracer.FilterStarted(1, 10, filter)
	time.Sleep(time.Millisecond)
	tracer.FilterFinished(1, 10, core.Variation{ID: filter.ID()})
	assert.Equal(t, "PERF: SLOW OPERATION", hook.LastEntry().Message)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	tracer.FilterFinished(7, 10, core.Variation{ID: "08_sharp_crisp"})
	assert.Equal(t, "PERF: finish without start", hook.LastEntry().Message)
}

type countingObserver struct{ started, finished int }

func (c *countingObserver) FilterStarted(int, int, core.Filter)     { c.started++ }
func (c *countingObserver) FilterFinished(int, int, core.Variation) { c.finished++ }

func TestObservers_FanOut(t *testing.T) {
	a, b := &countingObserver{}, &countingObserver{}
	fan := observers{a, b}

	fan.FilterStarted(0, 1, filters.Filters()[0])
	fan.FilterFinished(0, 1, core.Variation{})

	assert.Equal(t, 1, a.started)
	assert.Equal(t, 1, b.finished)
}
