// Package terminal reports whether pipu is talking to a real terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stdout are terminals. The
// confirm prompt and any other input-reading UI require this.
func IsInteractive() bool {
	return IsTTY(os.Stdin) && IsTTY(os.Stdout)
}

// IsTTY reports whether a single stream is a terminal. Output-only rendering
// such as the progress display keys off the stream it writes to, not stdin.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
