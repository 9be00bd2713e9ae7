package chain

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	prom "github.com/harmony-one/coinbase/api/service/prometheus"
)

const (
	outcomeCommitted = "committed"
	outcomeReverted  = "reverted"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
)

func init() {
	prom.PromRegistry().MustRegister(
		runCounterVec,
		lastEpochGauge,
		runDurationHistogram,
		remainderGauge,
	)
}

var (
	runCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hmy",
			Subsystem: "coinbase",
			Name:      "runs",
			Help:      "number of coinbase runs by outcome",
		},
		[]string{"outcome"},
	)

	lastEpochGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hmy",
			Subsystem: "coinbase",
			Name:      "last_epoch",
			Help:      "last epoch whose coinbase was committed",
		},
	)

	runDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hmy",
			Subsystem: "coinbase",
			Name:      "run_duration_seconds",
			Help:      "time spent in a coinbase run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)

	remainderGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hmy",
			Subsystem: "coinbase",
			Name:      "last_remainder_units",
			Help:      "number of unallocated coinbase units in the last committed epoch",
		},
	)
)

func observeRun(outcome string, start time.Time) {
	runCounterVec.With(prometheus.Labels{"outcome": outcome}).Inc()
	runDurationHistogram.Observe(time.Since(start).Seconds())
}
