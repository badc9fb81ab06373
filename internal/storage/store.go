package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/logging"
)

// Driver names a backend implementation.
type Driver string

const (
	DriverBadger Driver = "badger"
	DriverFile   Driver = "file"
	DriverSQLite Driver = "sqlite"
)

// ParseDriver maps a configuration value to a driver. Empty means badger.
func ParseDriver(name string) (Driver, error) {
	switch Driver(name) {
	case "", DriverBadger:
		return DriverBadger, nil
	case DriverFile, DriverSQLite:
		return Driver(name), nil
	default:
		return "", fmt.Errorf("unknown storage driver %q (want badger, file or sqlite)", name)
	}
}

// Options configures Open.
type Options struct {
	Driver Driver
	// Path is the driver's location. Empty means DefaultPath(Driver).
	Path string
	// InMemory opens a throwaway store (badger and sqlite only).
	InMemory bool
}

// DefaultPath returns the default location for a driver under the XDG data dir.
func DefaultPath(driver Driver) string {
	switch driver {
	case DriverFile:
		return filepath.Join(DataDir(), "data")
	case DriverSQLite:
		return filepath.Join(DataDir(), "daybook.db")
	default:
		return filepath.Join(DataDir(), "db")
	}
}

// Store is the entry point to persistence. All writes go through Update, which
// holds a process-wide lock so read-modify-write cycles never interleave.
type Store struct {
	backend Backend
	driver  Driver
	path    string
	mu      sync.Mutex
}

// NewStore wraps an already opened backend.
func NewStore(backend Backend, driver Driver) *Store {
	return &Store{backend: backend, driver: driver}
}

// Open opens the backend selected by opts.
func Open(opts Options) (*Store, error) {
	driver, err := ParseDriver(string(opts.Driver))
	if err != nil {
		return nil, err
	}
	path := opts.Path
	if path == "" && !opts.InMemory {
		path = DefaultPath(driver)
	}

	var backend Backend
	switch driver {
	case DriverFile:
		if opts.InMemory {
			return nil, fmt.Errorf("the file driver has no in-memory mode")
		}
		backend, err = OpenFileStore(path)
	case DriverSQLite:
		if opts.InMemory {
			path = MemorySQLite
		}
		backend, err = OpenSQLStore(path)
	default:
		backend, err = OpenBadger(BadgerOptions{Path: path, InMemory: opts.InMemory})
	}
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("open "+string(driver), "cannot open storage", err)
	}

	logging.DebugLog("storage opened", logging.KeyDriver, driver, "path", path)
	store := NewStore(backend, driver)
	store.path = path
	return store, nil
}

// Driver returns the backend driver name.
func (s *Store) Driver() Driver {
	return s.driver
}

// Path returns where the store lives on disk, or "" for in-memory stores.
func (s *Store) Path() string {
	if s.driver == DriverSQLite && s.path == MemorySQLite {
		return ""
	}
	return s.path
}

// Backend returns the underlying backend for advanced operations.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// View runs fn in a read-only transaction.
func (s *Store) View(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.run("view", s.backend.View, fn)
}

// Update runs fn in a read-write transaction. Nothing is persisted if fn fails.
func (s *Store) Update(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run("update", s.backend.Update, fn)
}

// run separates errors returned by fn from failures of the backend itself, which
// become SystemErrors.
func (s *Store) run(op string, txnFunc func(func(Txn) error) error, fn func(Txn) error) error {
	var fnErr error
	err := txnFunc(func(txn Txn) error {
		fnErr = fn(txn)
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return errors.NewSystemErrorWithOp(op, "storage transaction failed", err)
	}
	return nil
}
