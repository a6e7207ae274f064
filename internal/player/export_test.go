package player

import "context"

// WithAfterMiss installs a hook that GetOrCreate calls after a lookup misses
// and before it inserts the new row.
func WithAfterMiss(fn func(ctx context.Context, playerID string)) Option {
	return func(s *store) {
		s.afterMiss = fn
	}
}
