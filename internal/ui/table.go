package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Abeautifulsnow/pipu/internal/messages"
	"github.com/Abeautifulsnow/pipu/internal/pip"
)

var tableHeaderStyle = lipgloss.NewStyle().Bold(true)

// RenderTable draws the outdated packages as a bordered table, one row per
// package in listing order.
func RenderTable(packages []pip.Package) string {
	headers := []string{
		messages.TableHeaderName,
		messages.TableHeaderVersion,
		messages.TableHeaderLatestVersion,
		messages.TableHeaderLatestFiletype,
	}
	rows := make([][]string, 0, len(packages))
	for _, pkg := range packages {
		rows = append(rows, []string{pkg.Name, pkg.Version, pkg.LatestVersion, pkg.LatestFiletype})
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeBorder := func() {
		for _, width := range widths {
			b.WriteString("+")
			b.WriteString(strings.Repeat("-", width+2))
		}
		b.WriteString("+\n")
	}

	writeBorder()
	for i, header := range headers {
		// Pad before styling so escape codes do not skew the column width.
		fmt.Fprintf(&b, "| %s ", tableHeaderStyle.Render(padCell(header, widths[i])))
	}
	b.WriteString("|\n")
	writeBorder()
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(&b, "| %s ", padCell(cell, widths[i]))
		}
		b.WriteString("|\n")
	}
	writeBorder()
	return b.String()
}

func padCell(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
