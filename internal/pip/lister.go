package pip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Abeautifulsnow/pipu/internal/execx"
	"github.com/Abeautifulsnow/pipu/internal/messages"
)

// Lister asks one interpreter's pip for its outdated packages.
type Lister struct {
	runner Runner
	python string
	log    *zap.Logger
}

// NewLister returns a Lister scoped to the python interpreter path.
func NewLister(runner Runner, python string, log *zap.Logger) *Lister {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lister{runner: runner, python: python, log: log}
}

// ListOutdated runs `<python> -m pip list --outdated --format=json` and
// decodes the output strictly. An empty listing returns an empty slice, not
// an error. Output that does not match the record shape is a *ParseError.
func (l *Lister) ListOutdated(ctx context.Context) ([]Package, error) {
	command, err := execx.Command(l.python, "-m", "pip", "list", "--outdated", "--format=json")
	if err != nil {
		return nil, err
	}

	out, ok, err := l.runner.Run(ctx, command)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf(messages.ListOutdatedFailedFmt, strings.TrimSpace(string(out)))
	}

	packages, err := decodeOutdated(out)
	if err != nil {
		return nil, err
	}
	l.log.Debug("listed outdated packages",
		zap.String("python", l.python),
		zap.Int("count", len(packages)),
	)
	return packages, nil
}

// packageRecord mirrors Package with pointer fields so an absent field is
// distinguishable from an empty one.
type packageRecord struct {
	Name           *string `json:"name"`
	Version        *string `json:"version"`
	LatestVersion  *string `json:"latest_version"`
	LatestFiletype *string `json:"latest_filetype"`
}

func (r packageRecord) validate(index int) error {
	switch {
	case r.Name == nil:
		return fmt.Errorf(messages.ParseMissingFieldFmt, index, "name")
	case r.Version == nil:
		return fmt.Errorf(messages.ParseMissingFieldFmt, index, "version")
	case r.LatestVersion == nil:
		return fmt.Errorf(messages.ParseMissingFieldFmt, index, "latest_version")
	case r.LatestFiletype == nil:
		return fmt.Errorf(messages.ParseMissingFieldFmt, index, "latest_filetype")
	}
	return nil
}

func decodeOutdated(data []byte) ([]Package, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []packageRecord
	if err := dec.Decode(&records); err != nil {
		return nil, &ParseError{Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Err: errors.New("trailing data after listing")}
	}

	packages := make([]Package, 0, len(records))
	for i, record := range records {
		if err := record.validate(i); err != nil {
			return nil, &ParseError{Err: err}
		}
		packages = append(packages, Package{
			Name:           *record.Name,
			Version:        *record.Version,
			LatestVersion:  *record.LatestVersion,
			LatestFiletype: *record.LatestFiletype,
		})
	}
	return packages, nil
}
