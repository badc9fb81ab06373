package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/validate"
)

const fileExt = ".json"

// FileStore keeps one human-readable JSON file per key under a directory.
// A key "day:2024-01-15" lives in <dir>/day/2024-01-15.json and "settings" in
// <dir>/settings.json. Each file is replaced atomically on commit; a commit that
// touches several files is not atomic across them.
type FileStore struct {
	dir  string
	lock *FileLock
	mu   sync.RWMutex
}

// OpenFileStore opens a file store rooted at dir, creating it if needed.
// The directory is locked for the lifetime of the store.
func OpenFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store directory is empty")
	}
	if err := EnsureDirectory(dir); err != nil {
		return nil, err
	}

	lock := NewFileLock(dir)
	if err := lock.Acquire(); err != nil {
		return nil, NewLockError(err)
	}
	return &FileStore{dir: dir, lock: lock}, nil
}

// Dir returns the root directory.
func (f *FileStore) Dir() string {
	return f.dir
}

// Close releases the directory lock.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lock.Release()
}

// View runs fn against the files on disk.
func (f *FileStore) View(fn func(Txn) error) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return fn(&fileTxn{store: f, readOnly: true})
}

// Update runs fn with buffered writes and flushes them when fn succeeds.
func (f *FileStore) Update(fn func(Txn) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	txn := &fileTxn{
		store:   f,
		writes:  map[string][]byte{},
		deletes: map[string]bool{},
	}
	if err := fn(txn); err != nil {
		return err
	}
	return txn.commit()
}

// path maps a key to its file.
func (f *FileStore) path(key string) (string, error) {
	prefix, rest, ok := strings.Cut(key, ":")
	if !ok {
		if err := validate.KeySegment(key); err != nil {
			return "", err
		}
		return filepath.Join(f.dir, key+fileExt), nil
	}
	if err := validate.KeySegment(prefix); err != nil {
		return "", err
	}
	if err := validate.KeySegment(rest); err != nil {
		return "", err
	}
	return filepath.Join(f.dir, prefix, rest+fileExt), nil
}

type fileTxn struct {
	store    *FileStore
	readOnly bool
	writes   map[string][]byte
	deletes  map[string]bool
}

func (t *fileTxn) Get(key string) ([]byte, error) {
	if t.deletes[key] {
		return nil, ErrKeyNotFound
	}
	if data, ok := t.writes[key]; ok {
		return append([]byte(nil), data...), nil
	}

	path, err := t.store.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	if !json.Valid(data) {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		logging.Error("corrupt data file moved aside", "path", path, "backup", backupPath)
		return nil, fmt.Errorf("%w: corrupt JSON in %s (backed up to %s)", errors.ErrDatabaseCorrupted, path, backupPath)
	}
	return data, nil
}

func (t *fileTxn) Set(key string, value []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if _, err := t.store.path(key); err != nil {
		return err
	}
	t.writes[key] = append([]byte(nil), value...)
	delete(t.deletes, key)
	return nil
}

func (t *fileTxn) Delete(key string) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if _, err := t.store.path(key); err != nil {
		return err
	}
	t.deletes[key] = true
	delete(t.writes, key)
	return nil
}

func (t *fileTxn) Keys(prefix string) ([]string, error) {
	set := map[string]bool{}

	onDisk, err := t.store.listKeys(prefix)
	if err != nil {
		return nil, err
	}
	for _, k := range onDisk {
		set[k] = true
	}
	for k := range t.writes {
		if strings.HasPrefix(k, prefix) {
			set[k] = true
		}
	}
	for k := range t.deletes {
		delete(set, k)
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (t *fileTxn) commit() error {
	keys := make([]string, 0, len(t.writes))
	for k := range t.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path, err := t.store.path(k)
		if err != nil {
			return err
		}
		if err := SafeWrite(path, pretty(t.writes[k]), 0o600); err != nil {
			return err
		}
	}
	for k := range t.deletes {
		path, err := t.store.path(k)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage error removing %s: %w", path, err)
		}
	}
	return nil
}

// listKeys walks the directory layout and returns the keys matching prefix.
func (f *FileStore) listKeys(prefix string) ([]string, error) {
	var keys []string

	if dirName, namePrefix, ok := strings.Cut(prefix, ":"); ok {
		names, err := jsonFiles(filepath.Join(f.dir, dirName))
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if strings.HasPrefix(n, namePrefix) {
				keys = append(keys, dirName+":"+n)
			}
		}
		return keys, nil
	}

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("storage error listing %s: %w", f.dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() {
			if strings.HasSuffix(name, fileExt) {
				key := strings.TrimSuffix(name, fileExt)
				if strings.HasPrefix(key, prefix) {
					keys = append(keys, key)
				}
			}
			continue
		}
		// A bare prefix shorter than the directory name matches all of its keys.
		if !strings.HasPrefix(name+":", prefix) && !strings.HasPrefix(name, prefix) {
			continue
		}
		names, err := jsonFiles(filepath.Join(f.dir, name))
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			keys = append(keys, name+":"+n)
		}
	}
	return keys, nil
}

// jsonFiles returns the base names (without extension) of the JSON files in dir.
func jsonFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error listing %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	return names, nil
}

// pretty indents JSON so the files stay readable; other bytes pass through.
func pretty(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
