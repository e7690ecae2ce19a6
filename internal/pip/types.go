// Package pip talks to a Python interpreter's pip: it lists outdated
// packages and installs pinned upgrades, one package per attempt.
package pip

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abeautifulsnow/pipu/internal/messages"
)

// Package is one outdated-package record from pip's JSON listing.
// Records are immutable once parsed.
type Package struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	LatestVersion  string `json:"latest_version"`
	LatestFiletype string `json:"latest_filetype"`
}

// Requirement returns the installed pin, name==version.
func (p Package) Requirement() string { return p.Name + "==" + p.Version }

// LatestRequirement returns the pin for the version seen at listing time.
func (p Package) LatestRequirement() string { return p.Name + "==" + p.LatestVersion }

// Outcome is the result of one attempted upgrade. A failed attempt is data,
// not an error.
type Outcome struct {
	Name      string
	Succeeded bool
}

// Runner executes one shell command and reports its captured output.
// *execx.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, command string) ([]byte, bool, error)
}

// StatusSink receives per-upgrade progress events carrying the package name
// and the old -> new version transition. Implementations must be safe for
// concurrent use; a nil sink disables events.
type StatusSink interface {
	UpgradeStarted(name, from, to string)
	UpgradeSucceeded(name, from, to string)
	UpgradeFailed(name, from, to string)
}

type nopSink struct{}

func (nopSink) UpgradeStarted(string, string, string)   {}
func (nopSink) UpgradeSucceeded(string, string, string) {}
func (nopSink) UpgradeFailed(string, string, string)    {}

// ParseError reports listing output that does not decode into the expected
// package-record shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(messages.ParseOutdatedFmt, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err wraps a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
