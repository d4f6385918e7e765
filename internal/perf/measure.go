// Package perf wraps long-running operations with execution time and
// memory usage reporting.
package perf

import (
	"runtime"
	"time"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// Measure runs fn and logs its wall-clock duration and heap growth under
// the given label. The measurement never alters fn's outcome: its error is
// returned unchanged, and failed runs are measured too.
func Measure(logger tabload.Logger, label string, fn func() error) error {
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	err := fn()

	elapsed := time.Since(start)
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	// HeapAlloc can shrink mid-run when the collector kicks in; report
	// growth as zero rather than a negative number.
	var grewBy uint64
	if after.HeapAlloc > before.HeapAlloc {
		grewBy = after.HeapAlloc - before.HeapAlloc
	}

	logger.Info("%s: completed in %.2fs (heap +%.2f MB)",
		label, elapsed.Seconds(), float64(grewBy)/(1024*1024))
	return err
}
