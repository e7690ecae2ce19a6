// Package pyenv resolves the Python interpreter a run targets.
package pyenv

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Abeautifulsnow/pipu/internal/messages"
)

// System abstracts the OS lookups used during resolution.
type System interface {
	Getenv(key string) string
	LookPath(file string) (string, error)
	Stat(name string) (os.FileInfo, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string { return os.Getenv(key) }

// LookPath searches PATH for an executable named file.
func (RealSystem) LookPath(file string) (string, error) { return exec.LookPath(file) }

// Stat returns the FileInfo for the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

// ResolveError reports that no usable interpreter was found. A non-empty
// Path names the explicit override that failed validation.
type ResolveError struct {
	Path string
	Err  error
}

func (e *ResolveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf(messages.PyenvOverrideFmt, e.Path, e.Err)
	}
	return messages.PyenvInvalid
}

func (e *ResolveError) Unwrap() error { return e.Err }

// IsResolveError reports whether err wraps a ResolveError.
func IsResolveError(err error) bool {
	var resolveErr *ResolveError
	return errors.As(err, &resolveErr)
}

// Resolve returns the interpreter path to target. Order: the explicit
// override, then $VIRTUAL_ENV/bin/python, then python3 and python on PATH.
// An override that fails validation is an error; resolution never falls back
// past an explicit choice.
func Resolve(sys System, override string) (string, error) {
	if sys == nil {
		sys = RealSystem{}
	}

	if override != "" {
		if err := validate(sys, override); err != nil {
			return "", &ResolveError{Path: override, Err: err}
		}
		return override, nil
	}

	if venv := sys.Getenv("VIRTUAL_ENV"); venv != "" {
		candidate := filepath.Join(venv, "bin", "python")
		if err := validate(sys, candidate); err == nil {
			return candidate, nil
		}
	}

	for _, name := range []string{"python3", "python"} {
		if path, err := sys.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", &ResolveError{}
}

func validate(sys System, path string) error {
	info, err := sys.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return errors.New(messages.PyenvNotRegular)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return errors.New(messages.PyenvNotExecutable)
	}
	return nil
}
