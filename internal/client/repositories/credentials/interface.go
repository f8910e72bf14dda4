// Package credentials persists the client's auth material (the bearer token
// and the user record) between commands. The store is a minimal key/value
// port so the session manager stays storage-agnostic and can be tested with
// an in-memory fake.
package credentials

import "context"

// Repository is the key/value port backing the session manager.
//
// Contract:
//   - Get returns (nil, nil) for an absent key.
//   - SetAll writes several keys atomically; the token and the user record
//     must never be persisted independently.
//   - Clear wipes everything and is safe to call on an empty store.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
