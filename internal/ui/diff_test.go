package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abeautifulsnow/pipu/internal/pip"
)

var diffPackages = []pip.Package{
	{Name: "requests", Version: "2.31.0", LatestVersion: "2.32.3", LatestFiletype: "wheel"},
	{Name: "urllib3", Version: "2.0.0", LatestVersion: "2.2.0", LatestFiletype: "wheel"},
}

func TestRenderPinnedDiffShowsUpgradedPins(t *testing.T) {
	diff := RenderPinnedDiff(diffPackages, []string{"requests"})

	assert.Contains(t, diff, "Pinned set changes:")
	assert.Contains(t, diff, "environment (before)")
	assert.Contains(t, diff, "environment (after)")
	assert.Contains(t, diff, "-requests==2.31.0")
	assert.Contains(t, diff, "+requests==2.32.3")
	assert.NotContains(t, diff, "+urllib3==2.2.0", "failed upgrades keep their old pin")
}

func TestRenderPinnedDiffEmptyWhenNothingSucceeded(t *testing.T) {
	assert.Empty(t, RenderPinnedDiff(diffPackages, nil))
	assert.Empty(t, RenderPinnedDiff(nil, []string{"requests"}))
}

func TestRenderPinnedDiffTruncatesLongChanges(t *testing.T) {
	packages := make([]pip.Package, 60)
	succeeded := make([]string, 60)
	for i := range packages {
		name := fmt.Sprintf("pkg-%02d", i)
		packages[i] = pip.Package{Name: name, Version: "1.0.0", LatestVersion: "2.0.0", LatestFiletype: "wheel"}
		succeeded[i] = name
	}

	diff := RenderPinnedDiff(packages, succeeded)
	assert.Contains(t, diff, "... (truncated to 40 lines)")

	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	// Header line plus the capped diff plus the truncation notice.
	assert.LessOrEqual(t, len(lines), 42)
}

func TestRenderPinnedDiffEndsWithNewline(t *testing.T) {
	diff := RenderPinnedDiff(diffPackages, []string{"requests"})
	assert.True(t, strings.HasSuffix(diff, "\n"))
}
