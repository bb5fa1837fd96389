package state

import "context"

// KV is a string key/value store with local-storage semantics: one value per
// key, last write wins, no expiry.
type KV interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

var (
	_ KV = (*SQLiteStore)(nil)
	_ KV = (*MemoryStore)(nil)
)
