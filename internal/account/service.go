// Package account implements destructive account-data maintenance:
// deleting every stored file and flushing the KV records in one call.
package account

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"resumind-backend/internal/shared/storage/kv"
	"resumind-backend/internal/shared/storage/object"
	"resumind-backend/internal/shared/telemetry"
)

// wipeConcurrency bounds parallel object deletes.
const wipeConcurrency = 8

// Service wipes all data owned by a single account.
type Service struct {
	objects object.ObjectStore
	store   kv.Store
}

func NewService(objects object.ObjectStore, store kv.Store) *Service {
	return &Service{objects: objects, store: store}
}

// WipeResult summarizes a completed wipe.
type WipeResult struct {
	FilesDeleted int `json:"filesDeleted"`
}

// Wipe deletes the account's stored objects in parallel, then flushes
// its KV entries. The flush runs only when every delete succeeded so a
// partial failure never orphans files whose records are already gone.
func (s *Service) Wipe(ctx context.Context, userID string) (*WipeResult, error) {
	entries, err := s.objects.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list account files: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wipeConcurrency)
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			if err := s.objects.Delete(gctx, entry.Key); err != nil {
				return fmt.Errorf("delete %s: %w", entry.Key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.store.Flush(ctx, userID); err != nil {
		return nil, fmt.Errorf("flush account records: %w", err)
	}

	telemetry.Info("account.wiped", map[string]any{
		"user_id":       userID,
		"files_deleted": len(entries),
	})
	return &WipeResult{FilesDeleted: len(entries)}, nil
}
