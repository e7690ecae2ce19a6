package ui

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/Abeautifulsnow/pipu/internal/messages"
	"github.com/Abeautifulsnow/pipu/internal/pip"
)

// diffMaxLines caps the pinned-set diff so large environments stay readable.
const diffMaxLines = 40

// RenderPinnedDiff shows the environment's pinned set before and after the
// run as a unified diff. Failed upgrades keep their old pin. Returns "" when
// nothing succeeded, so callers can skip the block entirely.
func RenderPinnedDiff(packages []pip.Package, succeeded []string) string {
	if len(packages) == 0 || len(succeeded) == 0 {
		return ""
	}
	upgraded := make(map[string]bool, len(succeeded))
	for _, name := range succeeded {
		upgraded[name] = true
	}

	var before, after strings.Builder
	for _, pkg := range packages {
		before.WriteString(pkg.Requirement())
		before.WriteString("\n")
		if upgraded[pkg.Name] {
			after.WriteString(pkg.LatestRequirement())
		} else {
			after.WriteString(pkg.Requirement())
		}
		after.WriteString("\n")
	}

	rendered := renderTruncatedUnifiedDiff(
		messages.DiffBeforeLabel,
		messages.DiffAfterLabel,
		before.String(),
		after.String(),
		diffMaxLines,
	)
	if rendered == "" {
		return ""
	}
	return messages.DiffHeader + "\n" + rendered
}

func renderTruncatedUnifiedDiff(fromName, toName, fromContent, toContent string, maxLines int) string {
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= maxLines {
		return ensureTrailingNewline(strings.Join(lines, "\n"))
	}
	truncated := lines[:maxLines]
	truncated = append(truncated, fmt.Sprintf(messages.DiffTruncatedFmt, maxLines))
	return ensureTrailingNewline(strings.Join(truncated, "\n"))
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
