package storage

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manav03panchal/daybook/internal/errors"
)

const (
	// MinFreeSpace is the minimum free space required for write operations (10MB).
	MinFreeSpace = 10 * 1024 * 1024
	// MinFreeSpaceWarning is the threshold for warning about low disk space (50MB).
	MinFreeSpaceWarning = 50 * 1024 * 1024
)

// DiskStatus describes free space on the volume holding the store. Warning is
// set when free space drops below MinFreeSpaceWarning.
type DiskStatus struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"total_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	FreePercent float64 `json:"free_percent"`
	Warning     string  `json:"warning,omitempty"`
}

// DiskUsage reports free space for path, or for its nearest existing parent.
func DiskUsage(path string) (*DiskStatus, error) {
	dir := existingParent(path)
	total, free, err := volumeSpace(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk space for %s: %w", dir, err)
	}

	status := &DiskStatus{Path: dir, TotalBytes: total, FreeBytes: free}
	if total > 0 {
		status.FreePercent = float64(free) / float64(total) * 100
	}
	if free < MinFreeSpaceWarning {
		status.Warning = fmt.Sprintf("low disk space (%d MB free)", free/(1024*1024))
	}
	return status, nil
}

// CheckDiskSpace returns an error if free space at path is below MinFreeSpace.
// A path whose free space cannot be determined passes.
func CheckDiskSpace(path string) error {
	status, err := DiskUsage(path)
	if err != nil {
		return nil
	}

	if status.FreeBytes < MinFreeSpace {
		return errors.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d MB free, need at least %d MB",
				status.FreeBytes/(1024*1024),
				MinFreeSpace/(1024*1024)),
			errors.ErrDiskFull,
		)
	}
	return nil
}

func isDiskFullError(err error) bool {
	return stderrors.Is(err, errNoSpace)
}

// existingParent walks up from path until it finds something that exists.
func existingParent(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// SafeWrite writes data to path through a temp file in the same directory and
// renames it into place. Disk-full failures surface as ErrDiskFull.
func SafeWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDirectory(dir); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".daybook-*.tmp")
	if err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("create temp file", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("write", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("sync", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to sync data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// EnsureDirectory creates a directory with owner-only permissions if it doesn't exist.
func EnsureDirectory(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil
	}
	if err := CheckDiskSpace(existingParent(path)); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("mkdir", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
