package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Spinner renders one transient status line while a slow step runs. In live
// mode the line animates and Stop clears it; otherwise Start prints the text
// once and Stop is a no-op.
type Spinner struct {
	out      io.Writer
	text     string
	live     bool
	frames   []string
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewSpinner creates a spinner showing text in cyan.
func NewSpinner(text string, live bool, out io.Writer) *Spinner {
	return &Spinner{
		out:    out,
		text:   text,
		live:   live,
		frames: []string{"|", "/", "-", "\\"},
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start shows the line and begins animating when live.
func (s *Spinner) Start() {
	if !s.live {
		_, _ = fmt.Fprintln(s.out, color.CyanString("%s", s.text))
		return
	}
	go s.run()
}

// Stop clears the transient line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		if !s.live {
			return
		}
		close(s.stopCh)
		<-s.doneCh
	})
}

func (s *Spinner) run() {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()

	index := 0
	s.draw(index)
	for {
		select {
		case <-ticker.C:
			index = (index + 1) % len(s.frames)
			s.draw(index)
		case <-s.stopCh:
			_, _ = fmt.Fprint(s.out, "\r\x1b[2K")
			close(s.doneCh)
			return
		}
	}
}

func (s *Spinner) draw(index int) {
	_, _ = fmt.Fprintf(s.out, "\r\x1b[2K%s %s", s.frames[index], color.CyanString("%s", s.text))
}
