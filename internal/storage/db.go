package storage

import (
	"errors"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
)

const (
	// AppName is the application name used for data directories.
	AppName = "daybook"
)

// DB wraps a Badger database connection.
type DB struct {
	db   *badger.DB
	path string
}

// BadgerOptions configures the badger driver.
type BadgerOptions struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DataDir returns the default data directory under XDG_DATA_HOME.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// OpenBadger opens or creates a badger database.
func OpenBadger(opts BadgerOptions) (*DB, error) {
	var badgerOpts badger.Options
	path := ""

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := EnsureDirectory(opts.Path); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
		path = opts.Path
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &DB{db: db, path: path}, nil
}

// Path returns the database directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}

// View runs fn in a read-only badger transaction.
func (d *DB) View(fn func(Txn) error) error {
	return d.db.View(func(txn *badger.Txn) error {
		return fn(badgerTxn{txn: txn})
	})
}

// Update runs fn in a read-write badger transaction, committing when fn succeeds.
func (d *DB) Update(fn func(Txn) error) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return fn(badgerTxn{txn: txn})
	})
}

type badgerTxn struct {
	txn *badger.Txn
}

func (t badgerTxn) Get(key string) ([]byte, error) {
	item, err := t.txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t badgerTxn) Set(key string, value []byte) error {
	err := t.txn.Set([]byte(key), value)
	if errors.Is(err, badger.ErrReadOnlyTxn) {
		return ErrReadOnly
	}
	return err
}

func (t badgerTxn) Delete(key string) error {
	err := t.txn.Delete([]byte(key))
	if errors.Is(err, badger.ErrReadOnlyTxn) {
		return ErrReadOnly
	}
	return err
}

func (t badgerTxn) Keys(prefix string) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := t.txn.NewIterator(opts)
	defer it.Close()

	var keys []string
	prefixBytes := []byte(prefix)
	for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
		keys = append(keys, string(it.Item().KeyCopy(nil)))
	}
	return keys, nil
}
