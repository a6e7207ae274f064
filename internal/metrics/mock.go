package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu           sync.Mutex
	requests     map[string]int
	storeErrors  map[string]int
	playerSaves  int
	playerResets int
	startupTime  float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		requests:    make(map[string]int),
		storeErrors: make(map[string]int),
	}
}

func (m *Mock) ObserveRequest(route, method string, status int, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[route]++
}

func (m *Mock) IncStoreError(op, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeErrors[op+"/"+kind]++
}

func (m *Mock) IncPlayerSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerSaves++
}

func (m *Mock) IncPlayerResets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerResets++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Requests returns how many requests were observed for route.
func (m *Mock) Requests(route string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[route]
}

// StoreErrors returns how many errors were recorded for op and kind.
func (m *Mock) StoreErrors(op, kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeErrors[op+"/"+kind]
}

// PlayerSaves returns the number of times IncPlayerSaves was called.
func (m *Mock) PlayerSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerSaves
}

// PlayerResets returns the number of times IncPlayerResets was called.
func (m *Mock) PlayerResets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerResets
}
