package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemorySQLite is the path that opens a private in-memory SQLite database.
const MemorySQLite = ":memory:"

// SQLStore keeps every key in a single SQLite table.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens or creates the SQLite database and applies migrations.
func OpenSQLStore(path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != MemorySQLite {
		if err := EnsureDirectory(filepath.Dir(path)); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)

	store := &SQLStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// View runs fn inside a transaction that is always rolled back.
func (s *SQLStore) View(fn func(Txn) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	return fn(&sqlTxn{tx: tx, readOnly: true})
}

// Update runs fn inside a transaction committed when fn succeeds.
func (s *SQLStore) Update(fn func(Txn) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(&sqlTxn{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type sqlTxn struct {
	tx       *sql.Tx
	readOnly bool
}

func (t *sqlTxn) Get(key string) ([]byte, error) {
	var value []byte
	err := t.tx.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (t *sqlTxn) Set(key string, value []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	_, err := t.tx.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (t *sqlTxn) Delete(key string) error {
	if t.readOnly {
		return ErrReadOnly
	}
	_, err := t.tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (t *sqlTxn) Keys(prefix string) ([]string, error) {
	rows, err := t.tx.Query(
		`SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key`,
		utf8.RuneCountInString(prefix), prefix,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
