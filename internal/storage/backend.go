// Package storage provides the persistence layer for Daybook: a transactional
// key/value backend with badger, JSON-file and SQLite drivers, and the repositories
// for day buckets, the entry index and the settings record built on top of it.
package storage

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the backend.
	ErrKeyNotFound = errors.New("key not found")
	// ErrReadOnly is returned when a write is attempted inside a View transaction.
	ErrReadOnly = errors.New("write in read-only transaction")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// Txn is a view of the key space inside one transaction. Writes become visible to
// later reads in the same transaction and to other transactions only on commit.
type Txn interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys returns every key starting with prefix in ascending order.
	Keys(prefix string) ([]string, error)
}

// Backend is a transactional key/value store.
type Backend interface {
	View(fn func(Txn) error) error
	Update(fn func(Txn) error) error
	Close() error
}
