// Package storage provides the local key-value persistence layer. Values
// are JSON documents written under string keys; the sqlite backing gives
// per-call durability but no transactions, and writes are last-write-wins.
package storage

import "context"

// KV is the persistence contract consumed by the directory and the task
// store. Get returns (nil, nil) when the key is absent; callers treat
// undecodable values the same way, so a corrupt slot degrades to an empty
// collection instead of failing the application.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
