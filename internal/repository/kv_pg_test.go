package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockRow struct {
	value string
	err   error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

type mockPgExecutor struct {
	lastSQL  string
	lastArgs []any
	row      mockRow
	execErr  error
}

func (m *mockPgExecutor) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	m.lastSQL = sql
	m.lastArgs = arguments
	return pgconn.NewCommandTag("OK"), m.execErr
}

func (m *mockPgExecutor) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL = sql
	m.lastArgs = args
	return m.row
}

func TestPgKVStore_GetMapsNoRows(t *testing.T) {
	mock := &mockPgExecutor{row: mockRow{err: pgx.ErrNoRows}}
	store := &PgKVStore{pool: mock}

	if _, err := store.Get(context.Background(), "golf_advisor_users"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if len(mock.lastArgs) != 1 || mock.lastArgs[0] != "golf_advisor_users" {
		t.Fatalf("unexpected args: %+v", mock.lastArgs)
	}
}

func TestPgKVStore_GetValue(t *testing.T) {
	mock := &mockPgExecutor{row: mockRow{value: "[]"}}
	store := &PgKVStore{pool: mock}

	got, err := store.Get(context.Background(), "golf_advisor_users")
	if err != nil || got != "[]" {
		t.Fatalf("expected [] value, got %q, %v", got, err)
	}
}

func TestPgKVStore_SetUpserts(t *testing.T) {
	mock := &mockPgExecutor{}
	store := &PgKVStore{pool: mock}

	if err := store.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(mock.lastSQL, "ON CONFLICT (key) DO UPDATE") {
		t.Fatalf("expected upsert query, got %q", mock.lastSQL)
	}
	if len(mock.lastArgs) != 2 || mock.lastArgs[1] != "v" {
		t.Fatalf("unexpected args: %+v", mock.lastArgs)
	}
}

func TestPgKVStore_Delete(t *testing.T) {
	mock := &mockPgExecutor{}
	store := &PgKVStore{pool: mock}

	if err := store.Delete(context.Background()); err != nil {
		t.Fatalf("empty delete should be no-op, got %v", err)
	}
	if mock.lastSQL != "" {
		t.Fatalf("expected no query for empty delete")
	}
	if err := store.Delete(context.Background(), "a", "b"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	keys, ok := mock.lastArgs[0].([]string)
	if !ok || len(keys) != 2 {
		t.Fatalf("expected keys slice arg, got %+v", mock.lastArgs)
	}

	mock.execErr = errors.New("conn reset")
	if err := store.Delete(context.Background(), "a"); err == nil {
		t.Fatalf("expected exec error")
	}
}
