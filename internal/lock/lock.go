// Package lock serializes displayctl processes that change the display
// configuration.
package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/displayctl/internal/errors"
)

const (
	fileName = "displayctl.pid"
	filePerm = 0o600
)

// Lock is a pid file in a directory.
type Lock struct {
	path string
	held bool
}

// New returns a lock whose pid file lives in dir. An empty dir uses the
// system temp directory.
func New(dir string) *Lock {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Lock{path: filepath.Join(dir, fileName)}
}

// Path is the location of the pid file.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock. A pid file left by a process that is no longer
// running is reclaimed.
func (l *Lock) Acquire() error {
	errFactory := errors.New()

	if l.held {
		return nil
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(l.path)
				if werr == nil {
					werr = cerr
				}
				return errFactory.Wrap(errors.ErrInternal, werr)
			}
			l.held = true
			return nil
		}
		if !os.IsExist(err) {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		if pid, running := owner(l.path); running {
			return errFactory.WithData(ErrAlreadyRunning, "pid "+strconv.Itoa(pid))
		}

		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return errFactory.Wrap(errors.ErrInternal, err)
		}
	}

	return errFactory.New(ErrAlreadyRunning)
}

// Release removes the pid file if this lock holds it.
func (l *Lock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.New().Wrap(errors.ErrInternal, err)
	}

	return nil
}

// owner reads the pid file and reports whether that process is alive.
func owner(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return pid, false
	}

	// EPERM means the process exists but belongs to another user
	err = process.Signal(syscall.Signal(0))
	return pid, err == nil || errors.Is(err, syscall.EPERM)
}
