// Package shlog is a small logrus wrapper used by the shell and command
// layers, trimmed down from the teacher's pkg/elog.CLI: no progress bars, no
// color, just leveled log lines gated by a verbosity flag.
package shlog

import "github.com/sirupsen/logrus"

// Logger hides debug-level output behind Verbose so the REPL stays quiet by
// default.
type Logger interface {
	Debugf(format string, x ...interface{})
	Warnf(format string, x ...interface{})
	Errorf(format string, x ...interface{})
}

// CLI is the default Logger, writing through logrus.
type CLI struct {
	Verbose bool
}

// Debugf logs at debug level only when Verbose is set.
func (l *CLI) Debugf(format string, x ...interface{}) {
	if l.Verbose {
		logrus.Debugf(format, x...)
	}
}

// Warnf always logs at warn level — used for recoverable inconsistencies
// such as mv's copy-then-remove partially failing.
func (l *CLI) Warnf(format string, x ...interface{}) {
	logrus.Warnf(format, x...)
}

// Errorf always logs at error level.
func (l *CLI) Errorf(format string, x ...interface{}) {
	logrus.Errorf(format, x...)
}
