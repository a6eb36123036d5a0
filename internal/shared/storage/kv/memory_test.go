package kv

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "user-1", "resume:a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "user-1", "resume:a", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "user-1", "resume:a", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := store.Get(ctx, "user-1", "resume:a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v2" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestMemoryStoreListScopedToUserAndPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "user-1", "resume:b", "2")
	_ = store.Set(ctx, "user-1", "resume:a", "1")
	_ = store.Set(ctx, "user-1", "other:z", "3")
	_ = store.Set(ctx, "user-2", "resume:c", "4")

	items, err := store.List(ctx, "user-1", "resume:")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Key != "resume:a" || items[1].Key != "resume:b" {
		t.Fatalf("expected sorted keys, got %+v", items)
	}
}

func TestMemoryStoreFlushOnlyOwner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "user-1", "resume:a", "1")
	_ = store.Set(ctx, "user-2", "resume:b", "2")

	if err := store.Flush(ctx, "user-1"); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if _, err := store.Get(ctx, "user-1", "resume:a"); err != ErrNotFound {
		t.Fatalf("expected user-1 keys gone, got %v", err)
	}
	if _, err := store.Get(ctx, "user-2", "resume:b"); err != nil {
		t.Fatalf("expected user-2 keys kept, got %v", err)
	}
}
