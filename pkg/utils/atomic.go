package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const busyRetryDelay = 100 * time.Millisecond

// WriteFileAtomic writes data to path by writing a temporary file in the
// same directory and renaming it over the target. The temporary file is
// removed when any step fails. A transiently busy target is retried once
// after a short delay.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".seri-sei-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// No-op once the rename has succeeded.
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		if !isTransientBusy(err) {
			return err
		}
		time.Sleep(busyRetryDelay)
		return os.Rename(tmp, path)
	}
	return nil
}

// isTransientBusy reports whether a write failed because the target file
// was temporarily locked by another process.
func isTransientBusy(err error) bool {
	if errors.Is(err, syscall.ETXTBSY) || errors.Is(err, syscall.EBUSY) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "busy")
}
