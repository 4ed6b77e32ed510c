package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch accumulates the time spent in one phase over repeated runs.
type stopwatch struct {
	total time.Duration
	runs  int
}

func (s *stopwatch) time(fn func() error) error {
	start := time.Now()
	err := fn()
	s.total += time.Since(start)
	s.runs++
	return err
}

// average returns the mean duration of a run, rounded to the microsecond.
func (s *stopwatch) average() time.Duration {
	if s.runs == 0 {
		return 0
	}
	return (s.total / time.Duration(s.runs)).Round(time.Microsecond)
}
