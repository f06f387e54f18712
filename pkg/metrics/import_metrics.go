package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldtrak",
		Subsystem: "takeoff",
		Name:      "imports_total",
		Help:      "Completed import attempts by outcome.",
	}, []string{"outcome"})

	ComponentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fieldtrak",
		Subsystem: "takeoff",
		Name:      "components_created_total",
		Help:      "Components persisted by successful imports.",
	})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fieldtrak",
		Subsystem: "takeoff",
		Name:      "import_duration_seconds",
		Help:      "Wall-clock duration of the import transaction.",
		Buckets:   prometheus.DefBuckets,
	})
)
