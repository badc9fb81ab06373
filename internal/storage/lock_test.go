package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_AcquireRelease(t *testing.T) {
	t.Run("acquires and releases lock", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)

		require.NoError(t, lock.Acquire())

		lockPath := filepath.Join(dir, LockFileName)
		assert.FileExists(t, lockPath)
		assert.Equal(t, os.Getpid(), lock.readPID())

		require.NoError(t, lock.Release())
		assert.NoFileExists(t, lockPath)
	})

	t.Run("second lock fails while first is held", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		lock2 := NewFileLock(dir)

		require.NoError(t, lock1.Acquire())
		defer lock1.Release()

		err := lock2.Acquire()
		assert.ErrorIs(t, err, ErrLockAlreadyHeld)
	})

	t.Run("lock can be taken again after release", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		lock2 := NewFileLock(dir)

		require.NoError(t, lock1.Acquire())
		require.NoError(t, lock1.Release())

		require.NoError(t, lock2.Acquire())
		defer lock2.Release()
	})

	t.Run("release is idempotent", func(t *testing.T) {
		lock := NewFileLock(t.TempDir())
		require.NoError(t, lock.Acquire())
		require.NoError(t, lock.Release())
		assert.NoError(t, lock.Release())
	})
}

func TestFileLock_StaleLock(t *testing.T) {
	dir := t.TempDir()
	stalePID := 99999999
	require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte("99999999"), 0o644))

	lock := NewFileLock(dir)
	if err := lock.Acquire(); err != nil {
		if processAlive(stalePID) {
			t.Skip("PID 99999999 is unexpectedly running")
		}
		t.Fatalf("expected to acquire lock after stale cleanup: %v", err)
	}
	defer lock.Release()
}

func TestFileLock_ReadPID(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"valid PID", "12345", 12345},
		{"trailing newline", "12345\n", 12345},
		{"not a number", "not-a-number", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte(tt.content), 0o644))
			assert.Equal(t, tt.want, NewFileLock(dir).readPID())
		})
	}

	t.Run("missing file", func(t *testing.T) {
		assert.Equal(t, 0, NewFileLock(t.TempDir()).readPID())
	})
}

func TestLockError(t *testing.T) {
	lockErr := NewLockError(ErrLockAlreadyHeld)
	assert.Contains(t, lockErr.Error(), "cannot open data directory")
	assert.ErrorIs(t, lockErr, ErrLockAlreadyHeld)
	assert.Zero(t, lockErr.PID)
}

func TestFileStore_HoldsLock(t *testing.T) {
	dir := t.TempDir()

	fs1, err := OpenFileStore(dir)
	require.NoError(t, err)

	_, err = OpenFileStore(dir)
	var lockErr *LockError
	require.ErrorAs(t, err, &lockErr)
	assert.Equal(t, os.Getpid(), lockErr.PID)

	require.NoError(t, fs1.Close())

	fs2, err := OpenFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs2.Close())
}

func TestSafeWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	require.NoError(t, SafeWrite(path, []byte(`{"a":1}`), 0o600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	require.NoError(t, SafeWrite(path, []byte(`{"a":2}`), 0o600))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))
}

func TestDiskUsage(t *testing.T) {
	dir := t.TempDir()
	status, err := DiskUsage(filepath.Join(dir, "does", "not", "exist"))
	require.NoError(t, err)
	assert.Equal(t, dir, status.Path)
	assert.NotZero(t, status.TotalBytes)
	assert.LessOrEqual(t, status.FreeBytes, status.TotalBytes)
	assert.GreaterOrEqual(t, status.FreePercent, 0.0)
	assert.LessOrEqual(t, status.FreePercent, 100.0)
	if status.FreeBytes >= MinFreeSpaceWarning {
		assert.Empty(t, status.Warning)
	} else {
		assert.Contains(t, status.Warning, "low disk space")
	}
}

func TestIsDiskFullError(t *testing.T) {
	assert.True(t, isDiskFullError(&os.PathError{Op: "write", Path: "x", Err: errNoSpace}))
	assert.False(t, isDiskFullError(os.ErrNotExist))
	assert.False(t, isDiskFullError(nil))
}
