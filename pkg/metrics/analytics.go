package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full analytics snapshot (transform + KPIs + detectors)
	SnapshotLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analytics_snapshot_latency_seconds",
		Help:    "Latency of building a full analytics snapshot",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of snapshot requests served
	SnapshotRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_snapshot_requests_total",
		Help: "Total number of analytics snapshot requests",
	})

	// Snapshot requests answered from the redis cache
	SnapshotCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_snapshot_cache_hits_total",
		Help: "Total number of snapshot requests served from cache",
	})

	// Bottlenecks detected, labeled by dimension (stage/area/staff/time)
	BottlenecksDetected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_bottlenecks_detected_total",
		Help: "Total number of bottlenecks detected per dimension",
	}, []string{"dimension"})

	// Alerts raised, labeled by level
	AlertsRaised = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_alerts_raised_total",
		Help: "Total number of alerts raised per level",
	}, []string{"level"})

	// Scenario simulations served, labeled by mode
	ScenarioSimulations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scenario_simulations_total",
		Help: "Total number of scenario simulations per mode",
	}, []string{"mode"})
)

func Init() {
	prometheus.MustRegister(
		SnapshotLatency,
		SnapshotRequests,
		SnapshotCacheHits,
		BottlenecksDetected,
		AlertsRaised,
		ScenarioSimulations,
	)
}
