package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Abeautifulsnow/pipu/internal/testutil"
	"github.com/Abeautifulsnow/pipu/internal/ui"
)

const outdatedTwoJSON = `[
  {"name": "requests", "version": "2.31.0", "latest_version": "2.32.3", "latest_filetype": "wheel"},
  {"name": "urllib3", "version": "2.0.0", "latest_version": "2.2.0", "latest_filetype": "wheel"}
]`

type fakePrompter struct {
	confirm bool
	err     error
	calls   int
}

func (p *fakePrompter) ConfirmUpgrade() (bool, error) {
	p.calls++
	return p.confirm, p.err
}

func stubPrompter(t *testing.T, p ui.Prompter) {
	t.Helper()
	orig := newPrompter
	newPrompter = func() ui.Prompter { return p }
	t.Cleanup(func() { newPrompter = orig })
}

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}

// runPipu executes the root command with the lock directory pointed at a
// throwaway cache.
func runPipu(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var out bytes.Buffer
	err := execute(append([]string{"pipu"}, args...), &out, &out)
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.toml")
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRootUpToDate(t *testing.T) {
	stubTerminal(t, false)
	python := testutil.WritePython(t, t.TempDir(), "[]", 0)

	out, err := runPipu(t, "--python", python, "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "checking for updates...") {
		t.Fatalf("expected checking line, got %q", out)
	}
	if !strings.Contains(out, "All of your dependencies are up-to-date.") {
		t.Fatalf("expected up-to-date message, got %q", out)
	}
	if !strings.Contains(out, "Total time elapsed:") {
		t.Fatalf("expected elapsed footer, got %q", out)
	}
	if strings.Contains(out, "installing") {
		t.Fatalf("unexpected upgrade output: %q", out)
	}
}

func TestRootUpgradesAllWithYes(t *testing.T) {
	stubTerminal(t, false)
	python := testutil.WritePython(t, t.TempDir(), outdatedTwoJSON, 0)

	out, err := runPipu(t, "--python", python, "--yes", "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, want := range []string{
		"Latest FileType",
		"| requests",
		"installed requests, version: from 2.31.0 to 2.32.3...",
		"installed urllib3, version: from 2.0.0 to 2.2.0...",
		strings.Repeat("-", 60),
		"Successfully installed 2 packages. 「requests, urllib3」",
		"Unsuccessfully installed 0 packages. 「」",
		"-requests==2.31.0",
		"+requests==2.32.3",
		"Total time elapsed:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestRootSummarizesFailures(t *testing.T) {
	stubTerminal(t, false)
	python := testutil.WritePythonFailFor(t, t.TempDir(), outdatedTwoJSON, "urllib3")

	out, err := runPipu(t, "--python", python, "--yes", "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, want := range []string{
		"installation failed urllib3, version: from 2.0.0 to 2.2.0...",
		"Successfully installed 1 packages. 「requests」",
		"Unsuccessfully installed 1 packages. 「urllib3」",
		"+requests==2.32.3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "+urllib3==2.2.0") {
		t.Fatalf("failed upgrade must not advance its pin, got %q", out)
	}
}

func TestRootDeclinedPromptSkipsUpgrades(t *testing.T) {
	stubTerminal(t, false)
	prompter := &fakePrompter{confirm: false}
	stubPrompter(t, prompter)
	python := testutil.WritePython(t, t.TempDir(), outdatedTwoJSON, 0)

	out, err := runPipu(t, "--python", python, "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if prompter.calls != 1 {
		t.Fatalf("expected one confirm call, got %d", prompter.calls)
	}
	if strings.Contains(out, "installing") {
		t.Fatalf("declined run must not upgrade, got %q", out)
	}
	if strings.Contains(out, "Successfully installed") {
		t.Fatalf("declined run must not summarize, got %q", out)
	}
	if !strings.Contains(out, "Total time elapsed:") {
		t.Fatalf("expected elapsed footer, got %q", out)
	}
}

func TestRootConfirmedPromptUpgrades(t *testing.T) {
	stubTerminal(t, false)
	stubPrompter(t, &fakePrompter{confirm: true})
	python := testutil.WritePython(t, t.TempDir(), outdatedTwoJSON, 0)

	out, err := runPipu(t, "--python", python, "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "Successfully installed 2 packages.") {
		t.Fatalf("expected upgrades after confirmation, got %q", out)
	}
}

func TestRootYesSkipsPrompt(t *testing.T) {
	stubTerminal(t, false)
	prompter := &fakePrompter{confirm: false}
	stubPrompter(t, prompter)
	python := testutil.WritePython(t, t.TempDir(), outdatedTwoJSON, 0)

	out, err := runPipu(t, "--python", python, "--yes", "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if prompter.calls != 0 {
		t.Fatalf("--yes must skip the prompt, got %d calls", prompter.calls)
	}
	if !strings.Contains(out, "Successfully installed 2 packages.") {
		t.Fatalf("expected upgrades, got %q", out)
	}
}

func TestRootPromptErrorAborts(t *testing.T) {
	stubTerminal(t, false)
	stubPrompter(t, &fakePrompter{err: errors.New("prompt unavailable")})
	python := testutil.WritePython(t, t.TempDir(), outdatedTwoJSON, 0)

	_, err := runPipu(t, "--python", python, "--config", missingConfig(t))
	if err == nil || !strings.Contains(err.Error(), "prompt unavailable") {
		t.Fatalf("expected prompt error, got %v", err)
	}
}

func TestRootAsyncUpgrade(t *testing.T) {
	stubTerminal(t, false)
	python := testutil.WritePython(t, t.TempDir(), outdatedTwoJSON, 0)

	out, err := runPipu(t, "--python", python, "-y", "-a", "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "Successfully installed 2 packages.") {
		t.Fatalf("expected both upgrades, got %q", out)
	}
	for _, name := range []string{"requests", "urllib3"} {
		if !strings.Contains(out, "installed "+name) {
			t.Fatalf("expected %s upgraded, got %q", name, out)
		}
	}
}

func TestRootWithoutInterpreter(t *testing.T) {
	stubTerminal(t, false)
	t.Setenv("PATH", t.TempDir())
	t.Setenv("VIRTUAL_ENV", "")

	_, err := runPipu(t, "--config", missingConfig(t))
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "The python3 environment is invalid." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRootBrokenPipFailsRun(t *testing.T) {
	stubTerminal(t, false)
	python := testutil.WriteBrokenPython(t, t.TempDir(), "pip exploded")

	_, err := runPipu(t, "--python", python, "--yes", "--config", missingConfig(t))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "pip list --outdated failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "pip exploded") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestRootUsesConfigPython(t *testing.T) {
	stubTerminal(t, false)
	listing := `[{"name": "confpkg", "version": "1.0.0", "latest_version": "1.0.1", "latest_filetype": "wheel"}]`
	python := testutil.WritePython(t, t.TempDir(), listing, 0)
	cfgPath := writeConfigFile(t, fmt.Sprintf("python = %q\n", python))

	out, err := runPipu(t, "--yes", "--config", cfgPath)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "Successfully installed 1 packages. 「confpkg」") {
		t.Fatalf("expected the configured interpreter to be used, got %q", out)
	}
}

func TestRootPythonFlagBeatsConfig(t *testing.T) {
	stubTerminal(t, false)
	broken := testutil.WriteBrokenPython(t, t.TempDir(), "config interpreter used")
	good := testutil.WritePython(t, t.TempDir(), "[]", 0)
	cfgPath := writeConfigFile(t, fmt.Sprintf("python = %q\n", broken))

	out, err := runPipu(t, "--python", good, "--config", cfgPath)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "All of your dependencies are up-to-date.") {
		t.Fatalf("expected the flag interpreter to be used, got %q", out)
	}
}

func TestRootRejectsMalformedConfig(t *testing.T) {
	stubTerminal(t, false)
	cfgPath := writeConfigFile(t, "python = 123\n")

	_, err := runPipu(t, "--config", cfgPath)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), cfgPath) {
		t.Fatalf("expected error to name the config file, got %v", err)
	}
}
