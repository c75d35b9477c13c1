package metrics

import (
	"context"
	"time"
)

// PollerFunc is a single run of a periodic job.
type PollerFunc = func(ctx context.Context) error

// ObservePoller wraps f so that each run records its duration and outcome
// under name. Successful runs also stamp the last success time.
func ObservePoller(name string, f PollerFunc) PollerFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		err := f(ctx)

		pollerDurationHistogram.
			WithLabelValues(name, outcome(err != nil).String()).
			Observe(time.Since(start).Seconds())
		if err == nil {
			pollerLastSuccessGauge.WithLabelValues(name).Set(float64(time.Now().Unix()))
		}

		return err
	}
}
