package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerPlainModePrintsOnce(t *testing.T) {
	var out bytes.Buffer
	spinner := NewSpinner("checking for updates...", false, &out)
	spinner.Start()
	spinner.Stop()

	output := out.String()
	assert.Contains(t, output, "checking for updates...")
	assert.Equal(t, 1, strings.Count(output, "checking for updates..."))
	assert.NotContains(t, output, "\x1b[2K", "plain mode never rewrites the line")
}

func TestSpinnerLiveModeClearsOnStop(t *testing.T) {
	var out bytes.Buffer
	spinner := NewSpinner("checking for updates...", true, &out)
	spinner.Start()
	time.Sleep(300 * time.Millisecond)
	spinner.Stop()

	output := out.String()
	assert.Contains(t, output, "checking for updates...")
	assert.True(t, strings.HasSuffix(output, "\r\x1b[2K"), "stop clears the transient line")
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	spinner := NewSpinner("checking for updates...", true, &out)
	spinner.Start()
	spinner.Stop()
	spinner.Stop()
}

func TestSpinnerPlainStopWithoutStart(t *testing.T) {
	var out bytes.Buffer
	spinner := NewSpinner("checking for updates...", false, &out)
	spinner.Stop()
	assert.Empty(t, out.String())
}
