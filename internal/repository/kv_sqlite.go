package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteKVStore es el backend local por defecto: un archivo por instalación.
type SQLiteKVStore struct {
	db *sql.DB
}

// OpenSQLiteKVStore abre (o crea) el archivo y asegura la tabla.
func OpenSQLiteKVStore(ctx context.Context, path string) (*SQLiteKVStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// un solo escritor; también mantiene viva una base ":memory:"
	db.SetMaxOpenConns(1)

	const schema = `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv_entries: %w", err)
	}
	return &SQLiteKVStore{db: db}, nil
}

func (s *SQLiteKVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (s *SQLiteKVStore) Set(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *SQLiteKVStore) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteKVStore) Close() error {
	return s.db.Close()
}
