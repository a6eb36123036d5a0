package kv

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_entries WHERE user_id = $1 AND key = $2`)).
		WithArgs("user-1", "resume:abc").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"id":"abc"}`))

	store := NewPGStore(db)
	got, err := store.Get(context.Background(), "user-1", "resume:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"id":"abc"}` {
		t.Fatalf("unexpected value: %q", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_entries WHERE user_id = $1 AND key = $2`)).
		WithArgs("user-1", "resume:missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	store := NewPGStore(db)
	if _, err := store.Get(context.Background(), "user-1", "resume:missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreSetUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO kv_entries`).
		WithArgs("user-1", "resume:abc", `{"id":"abc"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	if err := store.Set(context.Background(), "user-1", "resume:abc", `{"id":"abc"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreListAndFlush(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT key, value FROM kv_entries`).
		WithArgs("user-1", "resume:").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("resume:a", "1").
			AddRow("resume:b", "2"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	store := NewPGStore(db)
	items, err := store.List(context.Background(), "user-1", "resume:")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Key != "resume:a" {
		t.Fatalf("unexpected items: %+v", items)
	}

	if err := store.Flush(context.Background(), "user-1"); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
