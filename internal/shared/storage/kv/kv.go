package kv

import (
	"context"
	"errors"
)

// Item is a single key/value pair owned by one account.
type Item struct {
	Key   string
	Value string
}

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store defines the per-account key-value contract the pipeline relies
// on. Set is an upsert; concurrent writers to the same key are
// last-write-wins with no conflict detection.
type Store interface {
	Get(ctx context.Context, userID, key string) (string, error)
	Set(ctx context.Context, userID, key, value string) error
	List(ctx context.Context, userID, prefix string) ([]Item, error)
	Flush(ctx context.Context, userID string) error
}
