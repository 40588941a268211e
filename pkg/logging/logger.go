// Package logging provides the per-run agent log: a timestamp-named file
// that records every event, with a console mirror and an optional webhook
// fan-out for each line.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/buildmend/buildmend/pkg/notify"
)

// Severity tags used throughout the agent.
const (
	LevelInfo    = "INFO"
	LevelSuccess = "SUCCESS"
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
	LevelBuild   = "BUILD"
	LevelFix     = "FIX"
	LevelAI      = "AI"
)

const logDir = ".buildmend"

// Logger writes level-tagged lines to the run log file, mirrors them to the
// console, and forwards each one to the notifier when configured.
type Logger struct {
	file      *lumberjack.Logger
	out       io.Writer
	color     bool
	notifier  *notify.Notifier
	path      string
	iteration int
}

// New creates a logger backed by a fresh timestamp-named log file under
// .buildmend/. The notifier may be nil.
func New(notifier *notify.Notifier) *Logger {
	path := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	return &Logger{
		file: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		},
		out:      os.Stdout,
		color:    term.IsTerminal(int(os.Stdout.Fd())),
		notifier: notifier,
		path:     path,
	}
}

// NewDiscard returns a logger whose output goes nowhere.
func NewDiscard() *Logger {
	return &Logger{out: io.Discard}
}

// Path returns the location of the run log file.
func (l *Logger) Path() string {
	return l.path
}

// SetIteration updates the iteration tag attached to notifications.
func (l *Logger) SetIteration(n int) {
	l.iteration = n
}

// Logf records one event at the given severity level. The line goes to the
// console and the log file; the notifier delivery is best-effort.
func (l *Logger) Logf(level, format string, v ...any) {
	message := fmt.Sprintf(format, v...)
	line := fmt.Sprintf("[%s] [%s] %s", time.Now().Format("2006-01-02 15:04:05"), level, message)

	fmt.Fprintln(l.out, l.colorize(level, line))
	if l.file != nil {
		fmt.Fprintln(l.file, line)
	}
	l.notifier.Send(l.iteration, level, message)
}

// Close flushes and closes the underlying log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) colorize(level, line string) string {
	if !l.color {
		return line
	}
	switch level {
	case LevelError:
		return "\x1b[31m" + line + "\x1b[0m"
	case LevelSuccess:
		return "\x1b[32m" + line + "\x1b[0m"
	case LevelWarning:
		return "\x1b[33m" + line + "\x1b[0m"
	}
	return line
}
