package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"resumind-backend/internal/shared/storage/kv"
)

const keyPrefix = "resume:"

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("resume not found")

// Repo persists Records in the account-scoped KV store.
type Repo struct {
	store kv.Store
}

func NewRepo(store kv.Store) *Repo {
	return &Repo{store: store}
}

// Save writes the full record JSON under resume:<id>. Last write wins.
func (r *Repo) Save(ctx context.Context, userID string, rec Record) error {
	if rec.ID == "" {
		return errors.New("record id is empty")
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal resume %s: %w", rec.ID, err)
	}
	if err := r.store.Set(ctx, userID, keyPrefix+rec.ID, string(payload)); err != nil {
		return fmt.Errorf("save resume %s: %w", rec.ID, err)
	}
	return nil
}

// Get loads a single record by id.
func (r *Repo) Get(ctx context.Context, userID, id string) (*Record, error) {
	raw, err := r.store.Get(ctx, userID, keyPrefix+id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load resume %s: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode resume %s: %w", id, err)
	}
	return &rec, nil
}

// List returns all of the account's records, newest first. Entries
// that fail to decode are skipped rather than failing the listing.
func (r *Repo) List(ctx context.Context, userID string) ([]Record, error) {
	items, err := r.store.List(ctx, userID, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal([]byte(item.Value), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
