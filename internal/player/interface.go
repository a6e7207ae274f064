package player

import "context"

// PlayerStore reads and writes player progress.
type PlayerStore interface {
	// GetOrCreate returns the player with the given id, creating a
	// zero-valued row first when none exists. It is therefore not read-only.
	GetOrCreate(ctx context.Context, playerID string) (*Player, error)
	// Save inserts or fully overwrites the player's progress. Last write wins.
	Save(ctx context.Context, playerID string, progress Progress) error
	// Reset zeroes the player's progress. Unknown ids are a successful no-op.
	Reset(ctx context.Context, playerID string) error
	// Ping verifies a connection can be acquired.
	Ping(ctx context.Context) error
}
