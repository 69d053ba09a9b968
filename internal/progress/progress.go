// Package progress provides the counter capability long-running
// operations report through. The browser hands a Reporter to aggregate
// computation and to the restore sub-flow; implementations decide where
// the ticks go.
package progress

import (
	"fmt"
	"os"
	"time"

	"snapview/internal/log"
)

// Counter counts processed entries of one named operation.
type Counter interface {
	Add(n uint64)
	Finish()
}

// Reporter creates named counters.
type Reporter interface {
	Counter(title string) Counter
}

// Discard returns a Reporter whose counters do nothing. Used in tests.
func Discard() Reporter { return nopReporter{} }

type nopReporter struct{}

func (nopReporter) Counter(string) Counter { return nopCounter{} }

type nopCounter struct{}

func (nopCounter) Add(uint64) {}
func (nopCounter) Finish()    {}

// Log returns a Reporter that writes start and completion of every
// counter to the log file. The alternate screen stays untouched.
func Log() Reporter { return logReporter{} }

type logReporter struct{}

func (logReporter) Counter(title string) Counter {
	log.Debugf("%s: started", title)
	return &logCounter{title: title, start: time.Now()}
}

type logCounter struct {
	title string
	n     uint64
	start time.Time
}

func (c *logCounter) Add(n uint64) { c.n += n }

func (c *logCounter) Finish() {
	log.Infof("%s: %d entries in %s", c.title, c.n, time.Since(c.start).Round(time.Millisecond))
}

// Term returns a Reporter for non-interactive commands: counters tick
// on stderr and print a summary line when finished.
func Term() Reporter { return termReporter{} }

type termReporter struct{}

func (termReporter) Counter(title string) Counter {
	return &termCounter{title: title, start: time.Now()}
}

type termCounter struct {
	title string
	n     uint64
	start time.Time
}

func (c *termCounter) Add(n uint64) {
	c.n += n
	if c.n%100 == 0 {
		fmt.Fprintf(os.Stderr, "\r%s: %d", c.title, c.n)
	}
}

func (c *termCounter) Finish() {
	fmt.Fprintf(os.Stderr, "\r%s: %d entries in %s\n",
		c.title, c.n, time.Since(c.start).Round(time.Millisecond))
}
