// Package metrics exposes prometheus metrics about schedule runs
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "cadence"
	subsystem = "schedule"
)

// ScheduleRunsTotal counts finished runs
var ScheduleRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: subsystem,
	Name:      "runs_total",
	Help:      "Count of schedule runs by type, status and trigger",
}, []string{"type", "status", "trigger"})

// ScheduleRunDuration observes how long runs take
var ScheduleRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: subsystem,
	Name:      "run_duration_seconds",
	Help:      "Duration of schedule runs in seconds",
	Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
}, []string{"type", "trigger"})

// ActiveSchedules is the number of schedules registered with the cron runner
var ActiveSchedules = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: subsystem,
	Name:      "active",
	Help:      "Number of schedules registered with the cron runner",
})

// Reasons a scheduled run is skipped
const (
	SkipInactive = "inactive"
	SkipOverlap  = "overlap"
)

// ScheduleRunsSkipped counts scheduled firings that did not run
var ScheduleRunsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: subsystem,
	Name:      "runs_skipped_total",
	Help:      "Count of scheduled firings that were skipped, by reason",
}, []string{"reason"})

// ObserveRun records one finished run
func ObserveRun(scheduleType, status, trigger string, d time.Duration) {
	ScheduleRunsTotal.WithLabelValues(scheduleType, status, trigger).Inc()
	ScheduleRunDuration.WithLabelValues(scheduleType, trigger).Observe(d.Seconds())
}

// ObserveSkip records one skipped scheduled firing
func ObserveSkip(reason string) {
	ScheduleRunsSkipped.WithLabelValues(reason).Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
