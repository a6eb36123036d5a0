package object

import (
	"context"
	"io"
)

// Entry describes a stored object owned by one account.
type Entry struct {
	Key       string
	SizeBytes int64
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	List(ctx context.Context, userID string) ([]Entry, error)
}
