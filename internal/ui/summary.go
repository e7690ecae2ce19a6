package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Abeautifulsnow/pipu/internal/messages"
	"github.com/Abeautifulsnow/pipu/internal/upgrade"
)

// separatorWidth is the dashed rule drawn before the summary block.
const separatorWidth = 60

// PrintSeparator writes the rule between progress output and the summary.
func PrintSeparator(out io.Writer) {
	_, _ = fmt.Fprintln(out, strings.Repeat("-", separatorWidth))
}

// PrintSummary writes the success and failure tallies. Both lines print on
// every summarized run, so a clean run still shows the zero-failure line.
func PrintSummary(out io.Writer, summary upgrade.Summary) {
	_, _ = fmt.Fprintln(out, color.GreenString("✔ "+messages.SummarySuccessFmt, summary.SucceededCount, summary.SucceededNames))
	_, _ = fmt.Fprintln(out, color.RedString("✖ "+messages.SummaryFailureFmt, summary.FailedCount, summary.FailedNames))
}

// PrintUpToDate writes the everything-current line.
func PrintUpToDate(out io.Writer) {
	_, _ = fmt.Fprintln(out, color.GreenString(messages.UpToDatePrefix)+messages.UpToDateSuffix)
}

// PrintElapsed writes the wall-clock footer shown on every exit path.
func PrintElapsed(out io.Writer, elapsed time.Duration) {
	value := color.CyanString(messages.ElapsedValueFmt, elapsed.Seconds())
	_, _ = fmt.Fprintln(out, color.MagentaString(messages.ElapsedPrefix)+value)
}
