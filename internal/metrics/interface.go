package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	ObserveRequest(route, method string, status int, duration float64)
	IncStoreError(op, kind string)
	IncPlayerSaves()
	IncPlayerResets()
	SetStartupTime(duration float64)
}
