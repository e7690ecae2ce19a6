// Package envlock serializes pipu runs that target the same interpreter.
//
// Two concurrent runs against one environment would race inside pip itself,
// so each run holds an exclusive advisory lock keyed by the interpreter path
// for its full duration.
package envlock

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Abeautifulsnow/pipu/internal/messages"
)

// Lock is a held environment lock. Release it when the run finishes.
type Lock struct {
	file *os.File
	path string
}

var flockFn = unix.Flock
var lockSleep = time.Sleep
var userCacheDir = os.UserCacheDir

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// Acquire takes the exclusive lock for the environment owned by python,
// waiting up to 30 seconds for a competing run to finish.
func Acquire(python string) (*Lock, error) {
	path, err := lockPath(python)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
	}
	return &Lock{file: file, path: path}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks and closes the lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFile(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

// lockPath maps an interpreter path to its lock file under the user cache
// directory. Hashing keeps the name filesystem-safe for any interpreter path.
func lockPath(python string) (string, error) {
	cache, err := userCacheDir()
	if err != nil {
		return "", fmt.Errorf(messages.LockDirFmt, "user cache", err)
	}
	dir := filepath.Join(cache, "pipu")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.LockDirFmt, dir, err)
	}
	return filepath.Join(dir, fmt.Sprintf("%x.lock", sha1.Sum([]byte(python)))), nil
}

// lockFile acquires an exclusive advisory lock on the file.
func lockFile(file *os.File) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.LockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}

// unlockFile releases the advisory lock on the file.
func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
