// Package testutil writes fake Python interpreters for command-level tests.
//
// The stubs are shell scripts that answer the two pip invocations pipu
// makes: the outdated listing and per-package installs. Dispatch is on the
// full argument string, so the stubs work through a shell-joined command
// line exactly like a real interpreter would.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WritePython writes an executable interpreter stub named python3. The
// listing invocation prints listJSON; every install exits with installExit.
// Returns the stub path.
func WritePython(t *testing.T, dir string, listJSON string, installExit int) string {
	t.Helper()
	script := fmt.Sprintf(`#!/bin/sh
case "$*" in
*"pip list --outdated"*)
  cat <<'PAYLOAD'
%s
PAYLOAD
  exit 0
  ;;
*"pip install --upgrade"*)
  exit %d
  ;;
esac
echo "unexpected invocation: $*" >&2
exit 64
`, listJSON, installExit)
	return writeInterpreter(t, dir, script)
}

// WritePythonFailFor is like WritePython with successful installs, except
// that installs pinning one of names exit non-zero.
func WritePythonFailFor(t *testing.T, dir string, listJSON string, names ...string) string {
	t.Helper()
	failChecks := ""
	for _, name := range names {
		failChecks += fmt.Sprintf("case \"$*\" in *\"%s==\"*) echo \"cannot install %s\" >&2; exit 1 ;; esac\n", name, name)
	}
	script := fmt.Sprintf(`#!/bin/sh
case "$*" in
*"pip list --outdated"*)
  cat <<'PAYLOAD'
%s
PAYLOAD
  exit 0
  ;;
esac
%scase "$*" in
*"pip install --upgrade"*)
  exit 0
  ;;
esac
echo "unexpected invocation: $*" >&2
exit 64
`, listJSON, failChecks)
	return writeInterpreter(t, dir, script)
}

// WriteBrokenPython writes an interpreter stub whose listing invocation
// fails with stderrMsg, modeling an environment where pip itself is broken.
func WriteBrokenPython(t *testing.T, dir string, stderrMsg string) string {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\necho %q >&2\nexit 1\n", stderrMsg)
	return writeInterpreter(t, dir, script)
}

func writeInterpreter(t *testing.T, dir string, script string) string {
	t.Helper()
	path := filepath.Join(dir, "python3")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write interpreter stub: %v", err)
	}
	return path
}
