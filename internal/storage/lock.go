package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LockFileName is the name of the lock file in a file store directory.
const LockFileName = "daybook.lock"

var (
	// ErrLockAcquireFailed is returned when the lock cannot be acquired.
	ErrLockAcquireFailed = errors.New("failed to acquire data directory lock")
	// ErrLockAlreadyHeld is returned when another process holds the lock.
	ErrLockAlreadyHeld = errors.New("data directory is locked by another process")
)

// FileLock is an advisory lock on a data directory so that two daybook
// processes never interleave writes to the same JSON files.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a lock for dir. Nothing is acquired yet.
func NewFileLock(dir string) *FileLock {
	return &FileLock{path: filepath.Join(dir, LockFileName)}
}

// Acquire takes the lock without blocking and records the current PID in it.
func (l *FileLock) Acquire() error {
	if err := l.cleanStaleLock(); err != nil {
		return err
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}

	if err := lockExclusive(file); err != nil {
		file.Close()
		if errors.Is(err, ErrLockAlreadyHeld) {
			if pid := l.readPID(); pid > 0 {
				return fmt.Errorf("%w: PID %d", ErrLockAlreadyHeld, pid)
			}
		}
		return err
	}

	if err := writePID(file); err != nil {
		unlock(file)
		file.Close()
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}

	l.file = file
	return nil
}

func writePID(file *os.File) error {
	if err := file.Truncate(0); err != nil {
		return err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(file, "%d", os.Getpid()); err != nil {
		return err
	}
	return file.Sync()
}

// Release drops the lock and removes the lock file. Releasing twice is a no-op.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}

	if err := unlock(l.file); err != nil {
		l.file.Close()
		l.file = nil
		return err
	}
	if err := l.file.Close(); err != nil {
		l.file = nil
		return err
	}
	l.file = nil

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// cleanStaleLock removes a lock file left behind by a process that is gone.
func (l *FileLock) cleanStaleLock() error {
	pid := l.readPID()
	if pid <= 0 || processAlive(pid) {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clean stale lock: %v", err)
	}
	return nil
}

// readPID returns the PID stored in the lock file, or 0.
func (l *FileLock) readPID() int {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// LockError explains a lock failure in terms the user can act on.
type LockError struct {
	Err error
	PID int
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("cannot open data directory: another daybook process (PID %d) is using it", e.PID)
	}
	return fmt.Sprintf("cannot open data directory: %v", e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}

// NewLockError wraps err, extracting the holder's PID when the message carries one.
func NewLockError(err error) *LockError {
	lockErr := &LockError{Err: err}
	if errors.Is(err, ErrLockAlreadyHeld) {
		if _, after, ok := strings.Cut(err.Error(), "PID "); ok {
			if pid, perr := strconv.Atoi(strings.TrimSpace(after)); perr == nil {
				lockErr.PID = pid
			}
		}
	}
	return lockErr
}
