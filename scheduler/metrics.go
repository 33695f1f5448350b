package scheduler

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tickTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_scheduler_ticks_total",
		Help: "Completed schedule evaluation ticks.",
	})
	runTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irrigation_runs_total",
		Help: "Irrigation runs recorded, by trigger kind.",
	}, []string{"trigger"})
	moistureSkipTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_moisture_skips_total",
		Help: "Scheduled runs suppressed because the zone was wet enough.",
	})
	scheduleErrorTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_schedule_errors_total",
		Help: "Per-schedule evaluation failures isolated by the tick.",
	})
)

// CountRun records a run in the metrics, collapsing "schedule:<id>" sources
// onto one label value to keep cardinality flat.
func CountRun(source string) {
	trigger := source
	if strings.HasPrefix(source, "schedule:") {
		trigger = "schedule"
	}
	runTotal.WithLabelValues(trigger).Inc()
}
