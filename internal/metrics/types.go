package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	HTTPRequests       *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	StoreErrors        *prometheus.CounterVec
	PlayerSaves        prometheus.Counter
	PlayerResets       prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
