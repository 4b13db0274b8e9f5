// Package spinner draws a one-line progress indicator on a terminal.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const interval = 80 * time.Millisecond

// Spinner animates "<frame> <label> <done>/<total>" until stopped.
type Spinner struct {
	w     io.Writer
	label string
	total int

	mu    sync.Mutex
	done  int
	width int

	quit     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once
}

// Start displays a spinner on w for a job of total items. A total of zero
// hides the counter.
func Start(w io.Writer, label string, total int) *Spinner {
	s := &Spinner{
		w:       w,
		label:   label,
		total:   total,
		quit:    make(chan struct{}),
		cleared: make(chan struct{}),
	}
	go s.run()
	return s
}

// Step records one finished item. It is safe for concurrent use.
func (s *Spinner) Step() {
	s.mu.Lock()
	s.done++
	s.mu.Unlock()
}

// Stop clears the line. Later calls are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	<-s.cleared
}

func (s *Spinner) run() {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.quit:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width)) //nolint:errcheck
			s.mu.Unlock()
			close(s.cleared)
			return
		case <-ticker.C:
			s.mu.Lock()
			line := s.line(i)
			s.width = max(s.width, runewidth.StringWidth(line))
			fmt.Fprintf(s.w, "\r%s", line) //nolint:errcheck
			s.mu.Unlock()
		}
	}
}

// line renders frame i. Callers hold s.mu.
func (s *Spinner) line(i int) string {
	frame := frames[i%len(frames)]
	if s.total == 0 {
		return frame + " " + s.label
	}
	return fmt.Sprintf("%s %s %d/%d", frame, s.label, s.done, s.total)
}
