package calcwkr

import (
	"time"

	"exusiai.dev/gazeseq/internal/pkg/observability"
)

func observeCalcDuration(dataset string, f func() error) (time.Duration, error) {
	start := time.Now()
	err := f()
	dur := time.Since(start)
	observability.WorkerCalcDuration.WithLabelValues(dataset).Set(dur.Seconds())
	return dur, err
}
