package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/Abeautifulsnow/pipu/internal/messages"
)

// progressStatus tracks one package through its upgrade.
type progressStatus int

const (
	statusInstalling progressStatus = iota
	statusInstalled
	statusFailed
)

type progressEvent struct {
	name   string
	from   string
	to     string
	status progressStatus
}

// ProgressReporter renders per-package upgrade progress. It implements
// pip.StatusSink: events may arrive from concurrent upgrade goroutines and
// are serialized through one channel consumed by a single render loop.
//
// With live rendering the block of package lines is redrawn in place and
// unfinished lines animate a spinner. Otherwise every event prints one plain
// line, which suits logs and non-terminal output.
type ProgressReporter struct {
	out           io.Writer
	mu            sync.RWMutex
	names         []string
	live          bool
	events        chan progressEvent
	stopCh        chan struct{}
	doneCh        chan struct{}
	lines         map[string]progressEvent
	spinnerFrames []string
	spinnerIndex  int
	renderedLines int
	frozen        bool
	stopOnce      sync.Once
}

// NewProgressReporter constructs a reporter sized for capacity packages.
func NewProgressReporter(capacity int, live bool, out io.Writer) *ProgressReporter {
	if capacity < 1 {
		capacity = 1
	}
	return &ProgressReporter{
		out:           out,
		live:          live,
		events:        make(chan progressEvent, capacity*2),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		lines:         make(map[string]progressEvent, capacity),
		spinnerFrames: []string{"|", "/", "-", "\\"},
	}
}

// Start launches the render loop. Call Stop to flush and end it.
func (r *ProgressReporter) Start() {
	go r.run()
}

// Stop drains queued events, freezes unfinished lines, and ends the render
// loop. Safe to call more than once.
func (r *ProgressReporter) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		<-r.doneCh
	})
}

// UpgradeStarted implements pip.StatusSink.
func (r *ProgressReporter) UpgradeStarted(name, from, to string) {
	r.report(progressEvent{name: name, from: from, to: to, status: statusInstalling})
}

// UpgradeSucceeded implements pip.StatusSink.
func (r *ProgressReporter) UpgradeSucceeded(name, from, to string) {
	r.report(progressEvent{name: name, from: from, to: to, status: statusInstalled})
}

// UpgradeFailed implements pip.StatusSink.
func (r *ProgressReporter) UpgradeFailed(name, from, to string) {
	r.report(progressEvent{name: name, from: from, to: to, status: statusFailed})
}

func (r *ProgressReporter) report(event progressEvent) {
	select {
	case <-r.doneCh:
		return
	default:
	}

	select {
	case r.events <- event:
	case <-r.doneCh:
	}
}

func (r *ProgressReporter) run() {
	var ticker *time.Ticker
	var tickCh <-chan time.Time
	if r.live {
		ticker = time.NewTicker(120 * time.Millisecond)
		tickCh = ticker.C
	}
	if ticker != nil {
		defer ticker.Stop()
	}

	for {
		select {
		case event := <-r.events:
			r.applyEvent(event)
			if r.live {
				r.render()
				continue
			}
			_, _ = fmt.Fprintln(r.out, r.formatLine(event.name))
		case <-tickCh:
			r.advanceSpinner()
			r.render()
		case <-r.stopCh:
			r.drainEvents()
			r.freezePending()
			if r.live {
				r.render()
			}
			close(r.doneCh)
			return
		}
	}
}

func (r *ProgressReporter) applyEvent(event progressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.lines[event.name]; !seen {
		r.names = append(r.names, event.name)
	}
	r.lines[event.name] = event
}

func (r *ProgressReporter) drainEvents() {
	for {
		select {
		case event := <-r.events:
			r.applyEvent(event)
			if !r.live {
				_, _ = fmt.Fprintln(r.out, r.formatLine(event.name))
			}
		default:
			return
		}
	}
}

// freezePending stops animating lines that never saw a final event, which
// happens when a fault aborts the run mid-upgrade.
func (r *ProgressReporter) freezePending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

func (r *ProgressReporter) advanceSpinner() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.spinnerFrames) == 0 {
		return
	}
	r.spinnerIndex = (r.spinnerIndex + 1) % len(r.spinnerFrames)
}

// render redraws the whole block. The line count can grow between draws as
// packages start, so the cursor moves up by the previous draw's height.
func (r *ProgressReporter) render() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.live || len(r.names) == 0 {
		return
	}
	if r.renderedLines > 0 {
		_, _ = fmt.Fprintf(r.out, "\x1b[%dA", r.renderedLines)
	}
	for _, name := range r.names {
		_, _ = fmt.Fprint(r.out, "\r\x1b[2K")
		_, _ = fmt.Fprintln(r.out, r.formatLineLocked(name))
	}
	r.renderedLines = len(r.names)
}

func (r *ProgressReporter) formatLine(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.formatLineLocked(name)
}

func (r *ProgressReporter) formatLineLocked(name string) string {
	event := r.lines[name]
	switch event.status {
	case statusInstalled:
		line := fmt.Sprintf(messages.UpgradeProgressFmt, messages.UpgradeDoneVerb, event.name, event.from, event.to)
		return color.GreenString("✔ %s", line)
	case statusFailed:
		line := fmt.Sprintf(messages.UpgradeProgressFmt, messages.UpgradeFailVerb, event.name, event.from, event.to)
		return color.RedString("✖ %s", line)
	default:
		line := fmt.Sprintf(messages.UpgradeProgressFmt, messages.UpgradeStartVerb, event.name, event.from, event.to)
		if r.live && !r.frozen {
			return r.spinnerFrames[r.spinnerIndex] + " " + line
		}
		return line
	}
}
