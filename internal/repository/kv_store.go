package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound indica que la clave no existe en el store.
var ErrKeyNotFound = errors.New("key not found")

// KVStore define el contrato del almacenamiento durable clave-valor (strings).
// Se asume un único escritor: no hay locking entre procesos.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
