package account

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"resumind-backend/internal/shared/storage/kv"
	"resumind-backend/internal/shared/storage/object"
)

type trackedStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleteErr map[string]error
	deleted   []string
}

func newTrackedStore() *trackedStore {
	return &trackedStore{objects: map[string][]byte{}, deleteErr: map[string]error{}}
}

func (s *trackedStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	data, _ := io.ReadAll(r)
	key := userID + "/" + fileName
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return key, int64(len(data)), "application/octet-stream", nil
}

func (s *trackedStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (s *trackedStore) Delete(ctx context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteErr[storageKey]; err != nil {
		return err
	}
	delete(s.objects, storageKey)
	s.deleted = append(s.deleted, storageKey)
	return nil
}

func (s *trackedStore) List(ctx context.Context, userID string) ([]object.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []object.Entry
	for key, data := range s.objects {
		if strings.HasPrefix(key, userID+"/") {
			entries = append(entries, object.Entry{Key: key, SizeBytes: int64(len(data))})
		}
	}
	return entries, nil
}

func seed(t *testing.T, objects *trackedStore, store kv.Store, userID string, files, records int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < files; i++ {
		if _, _, _, err := objects.Save(ctx, userID, "file-"+string(rune('a'+i))+".pdf", strings.NewReader("data")); err != nil {
			t.Fatalf("seed object: %v", err)
		}
	}
	for i := 0; i < records; i++ {
		if err := store.Set(ctx, userID, "resume:"+string(rune('a'+i)), "{}"); err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}
}

func TestWipeDeletesFilesAndFlushesRecords(t *testing.T) {
	objects := newTrackedStore()
	store := kv.NewMemoryStore()
	ctx := context.Background()

	seed(t, objects, store, "user-1", 3, 2)
	seed(t, objects, store, "user-2", 1, 1)

	result, err := NewService(objects, store).Wipe(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FilesDeleted != 3 {
		t.Fatalf("expected 3 files deleted, got %d", result.FilesDeleted)
	}

	remaining, err := objects.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no files left, got %+v", remaining)
	}
	items, err := store.List(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("kv list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected flushed records, got %+v", items)
	}

	// The other account is untouched.
	otherFiles, _ := objects.List(ctx, "user-2")
	otherItems, _ := store.List(ctx, "user-2", "")
	if len(otherFiles) != 1 || len(otherItems) != 1 {
		t.Fatal("wipe must be scoped to one account")
	}
}

func TestWipeDeleteFailureSkipsFlush(t *testing.T) {
	objects := newTrackedStore()
	store := kv.NewMemoryStore()
	ctx := context.Background()

	seed(t, objects, store, "user-1", 2, 2)
	objects.deleteErr["user-1/file-a.pdf"] = errors.New("permission denied")

	if _, err := NewService(objects, store).Wipe(ctx, "user-1"); err == nil {
		t.Fatal("expected error when a delete fails")
	}

	items, err := store.List(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("kv list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("records must survive a failed file wipe, got %d", len(items))
	}
}

func TestWipeEmptyAccount(t *testing.T) {
	objects := newTrackedStore()
	store := kv.NewMemoryStore()

	result, err := NewService(objects, store).Wipe(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FilesDeleted != 0 {
		t.Fatalf("expected 0 deletions, got %d", result.FilesDeleted)
	}
}
