package store

import (
	"context"
	"encoding/json"
	"log"
)

// KV is the minimal key-value surface the repository persists through.
// Implementations store opaque byte documents under string keys.
type KV interface {
	// Get returns the document stored under key. The second result is false
	// when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load reads and decodes the JSON document stored under key. Any failure
// (missing key, read error, malformed document) falls back to the supplied
// default: durability is best-effort and a bad read must never interrupt
// the user.
func Load[T any](ctx context.Context, kv KV, key string, fallback T) T {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("store: read of %q failed, using default: %v", key, err)
		return fallback
	}
	if !ok {
		return fallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("store: document under %q is malformed, using default: %v", key, err)
		return fallback
	}
	return v
}

// Save encodes v as JSON and writes it under key. Write failures are logged
// and swallowed; the in-memory state stays the source of truth for the rest
// of the session.
func Save[T any](ctx context.Context, kv KV, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("store: cannot encode document for %q: %v", key, err)
		return
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		log.Printf("store: write of %q failed, state kept in memory only: %v", key, err)
	}
}
