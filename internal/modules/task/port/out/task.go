package out

import "context"

// KVStore persists opaque values under fixed keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// SetMany writes all values atomically.
	SetMany(ctx context.Context, values map[string][]byte) error
}

// SessionGuard reports whether a lap session is running or paused.
type SessionGuard interface {
	Active(ctx context.Context) bool
}
