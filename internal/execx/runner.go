// Package execx runs external commands through the shell and classifies
// their results: a non-zero exit is ordinary data for the caller, while a
// command that cannot be spawned or reaped at all is a FaultError.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/Abeautifulsnow/pipu/internal/messages"
)

const defaultShell = "/bin/sh"

// Runner executes shell commands. A Runner is safe for concurrent use.
type Runner struct {
	shell string
	log   *zap.Logger
}

// NewRunner returns a Runner that writes diagnostics to log.
// A nil log disables diagnostics.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{shell: defaultShell, log: log}
}

// Command joins tokens into a single shell command string. It fails when the
// token list is empty or any token is blank.
func Command(tokens ...string) (string, error) {
	if len(tokens) == 0 {
		return "", errors.New(messages.RunnerEmptyCommand)
	}
	for i, token := range tokens {
		if strings.TrimSpace(token) == "" {
			return "", fmt.Errorf(messages.RunnerEmptyTokenFmt, i)
		}
	}
	return strings.Join(tokens, " "), nil
}

// FaultError reports that a command could not be spawned, was killed by a
// signal, or its exit could not be collected. Callers treat it as fatal for
// the whole run.
type FaultError struct {
	Command string
	Err     error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf(messages.RunnerFaultFmt, e.Command, e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }

// IsFault reports whether err wraps a FaultError.
func IsFault(err error) bool {
	var fault *FaultError
	return errors.As(err, &fault)
}

// Run executes command through the shell and waits for completion.
// Exit code 0 returns (stdout, true, nil). A non-zero exit logs the code and
// returns (stderr, false, nil). Every other failure returns a *FaultError
// after the child has been reaped.
func (r *Runner) Run(ctx context.Context, command string) ([]byte, bool, error) {
	if strings.TrimSpace(command) == "" {
		return nil, false, &FaultError{Command: command, Err: errors.New(messages.RunnerEmptyCommand)}
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), true, nil
	}

	// ExitCode is -1 when the child was killed by a signal; that is a fault,
	// not a command failure.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		r.log.Error("command exited non-zero",
			zap.String("command", command),
			zap.Int("exit_code", exitErr.ExitCode()),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
		)
		return stderr.Bytes(), false, nil
	}

	r.log.Error("command could not be executed",
		zap.String("command", command),
		zap.Error(err),
	)
	return nil, false, &FaultError{Command: command, Err: err}
}
