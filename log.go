package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "navlayout",
	})
}

// progress logs completion of a step with the elapsed duration. Steps are
// logged at debug level unless verbose is set.
type progress struct {
	logger  *log.Logger
	start   time.Time
	verbose bool
}

func newProgress(l *log.Logger, verbose bool) *progress {
	return &progress{logger: l, start: time.Now(), verbose: verbose}
}

func (p *progress) done(msg string, keyvals ...interface{}) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Microsecond))
	if p.verbose {
		p.logger.Info(msg, keyvals...)
		return
	}
	p.logger.Debug(msg, keyvals...)
}
