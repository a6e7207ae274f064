package player

import (
	"context"
	"sync"
)

var _ PlayerStore = (*MockStore)(nil)

// MockStore is a mock implementation of the PlayerStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	GetOrCreateFunc func(ctx context.Context, playerID string) (*Player, error)
	SaveFunc        func(ctx context.Context, playerID string, progress Progress) error
	ResetFunc       func(ctx context.Context, playerID string) error
	PingFunc        func(ctx context.Context) error

	GetOrCreateCalls []string
	SaveCalls        []struct {
		PlayerID string
		Progress Progress
	}
	ResetCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetOrCreate(ctx context.Context, playerID string) (*Player, error) {
	m.mu.Lock()
	m.GetOrCreateCalls = append(m.GetOrCreateCalls, playerID)
	m.mu.Unlock()
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, playerID)
	}
	return &Player{ID: playerID, OwnedPowerUps: []string{}, Achievements: []string{}}, nil
}

func (m *MockStore) Save(ctx context.Context, playerID string, progress Progress) error {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, struct {
		PlayerID string
		Progress Progress
	}{playerID, progress})
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, playerID, progress)
	}
	return nil
}

func (m *MockStore) Reset(ctx context.Context, playerID string) error {
	m.mu.Lock()
	m.ResetCalls = append(m.ResetCalls, playerID)
	m.mu.Unlock()
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, playerID)
	}
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
