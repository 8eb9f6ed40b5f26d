// Package progress tracks scan counters and emits periodic status lines
// gated by a configurable percent step.
package progress

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultStep is the percent step used when the input is not numeric.
const DefaultStep = 5

// fullScaleStep reports once, at full completion.
const fullScaleStep = 100

const percentScale = 100

// ParseStep interprets a textual percent-step value. Non-numeric input falls
// back to DefaultStep; numeric input outside [1, 99] is coerced to 100.
func ParseStep(raw string) int {
	step, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultStep
	}
	return clampStep(step)
}

func clampStep(step int) int {
	if step < 1 || step > 99 {
		return fullScaleStep
	}
	return step
}

// Reporter accumulates the processed count for one scan and emits a status
// line whenever the completion percentage lands on a new multiple of the
// percent step. It is initialized once before the scan, mutated once per
// processed record and discarded afterwards.
type Reporter struct {
	log         *slog.Logger
	total       int64
	step        int
	processed   int64
	lastPercent int
	start       time.Time
}

// NewReporter creates a Reporter for a scan over total records. A step
// outside [1, 99] is coerced to 100. A zero total disables percentage
// reporting entirely; counting still works.
func NewReporter(log *slog.Logger, total int64, step int) *Reporter {
	return &Reporter{
		log:   log,
		total: total,
		step:  clampStep(step),
		start: time.Now(),
	}
}

// RecordProcessed counts one record and reports progress when the newly
// computed percentage exceeds the last reported one and is an exact multiple
// of the step. When one record spans several step boundaries, only the
// boundary landed on is reported; the skipped intermediates never are.
func (r *Reporter) RecordProcessed() {
	r.processed++
	if r.total <= 0 {
		return
	}

	percent := int(math.Ceil(float64(r.processed) / float64(r.total) * percentScale))
	if percent <= r.lastPercent || percent%r.step != 0 {
		return
	}
	r.lastPercent = percent

	r.log.Info("Re-attribution progress",
		"percent", percent,
		"processed", r.processed,
		"total", r.total,
		"elapsed", r.Elapsed().Round(time.Second).String(),
	)
}

// Processed returns the number of records counted so far.
func (r *Reporter) Processed() int64 {
	return r.processed
}

// Elapsed returns the time since the Reporter was created.
func (r *Reporter) Elapsed() time.Duration {
	return time.Since(r.start)
}
