package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// JSONCache stores JSON documents in a BytesCache under a namespace.
type JSONCache struct {
	backend   BytesCache
	namespace string
	ttl       time.Duration
}

func NewJSONCache(backend BytesCache, namespace string, ttl time.Duration) *JSONCache {
	return &JSONCache{backend: backend, namespace: namespace, ttl: ttl}
}

// Key hashes the JSON encoding of req, so equal requests share an entry.
func (c *JSONCache) Key(kind string, req any) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(b)
	return c.namespace + ":" + kind + ":" + hex.EncodeToString(sum[:16]), nil
}

// Get decodes the entry at key into dest. A corrupt entry counts as a miss.
func (c *JSONCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, ok, err := c.backend.GetBytes(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.backend.SetBytes(ctx, key, b, c.ttl)
}
