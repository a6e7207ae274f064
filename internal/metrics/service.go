package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tapwin_http_requests_total",
			Help: "The total number of API requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tapwin_http_request_duration_seconds",
			Help:    "The duration of API requests.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tapwin_store_errors_total",
			Help: "The total number of failed store operations by operation and error kind.",
		}, []string{"op", "kind"}),
		PlayerSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tapwin_player_saves_total",
			Help: "The total number of successful player saves.",
		}),
		PlayerResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tapwin_player_resets_total",
			Help: "The total number of successful player resets.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tapwin_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.HTTPRequests,
		s.RequestDuration,
		s.StoreErrors,
		s.PlayerSaves,
		s.PlayerResets,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) ObserveRequest(route, method string, status int, duration float64) {
	s.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	s.RequestDuration.WithLabelValues(route).Observe(duration)
}

func (s *Service) IncStoreError(op, kind string) {
	s.StoreErrors.WithLabelValues(op, kind).Inc()
}

func (s *Service) IncPlayerSaves() {
	s.PlayerSaves.Inc()
}

func (s *Service) IncPlayerResets() {
	s.PlayerResets.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
