package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgKVStore implementa KVStore sobre la tabla kv_entries usando pgxpool.
type PgKVStore struct {
	pool pgExecutor
}

func NewPgKVStore(pool *pgxpool.Pool) *PgKVStore {
	return &PgKVStore{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *PgKVStore) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *PgKVStore) Get(ctx context.Context, key string) (string, error) {
	const query = `
		SELECT value
		FROM kv_entries
		WHERE key = $1
	`
	var value string
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *PgKVStore) Set(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *PgKVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `
		DELETE FROM kv_entries
		WHERE key = ANY($1)
	`
	_, err := r.pool.Exec(ctx, query, keys)
	return err
}
