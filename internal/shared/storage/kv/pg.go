package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGStore persists key-value items in the kv_entries table.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore constructs a PGStore.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

// Get returns the value stored under key for the user.
func (s *PGStore) Get(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE user_id = $1 AND key = $2`,
		userID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get key=%s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value under key for the user (last write wins).
func (s *PGStore) Set(ctx context.Context, userID, key, value string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO kv_entries (user_id, key, value, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		userID, key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set key=%s: %w", key, err)
	}
	return nil
}

// List returns the user's items whose keys start with prefix, sorted by key.
func (s *PGStore) List(ctx context.Context, userID, prefix string) ([]Item, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT key, value FROM kv_entries
		 WHERE user_id = $1 AND key LIKE $2 || '%'
		 ORDER BY key`,
		userID, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("kv list prefix=%s: %w", prefix, err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.Key, &item.Value); err != nil {
			return nil, fmt.Errorf("kv list scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv list rows: %w", err)
	}
	return items, nil
}

// Flush removes every key owned by the user.
func (s *PGStore) Flush(ctx context.Context, userID string) error {
	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("kv flush: %w", err)
	}
	return nil
}

var _ Store = (*PGStore)(nil)
