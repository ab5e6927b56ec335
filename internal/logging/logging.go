// Package logging provides the leveled console logger used by opsops.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Logger writes prefixed diagnostic lines. Info and debug lines are only
// emitted when the matching flag is set; warnings and errors always are.
type Logger struct {
	Verbose bool
	Debug   bool

	Out io.Writer
	Err io.Writer
}

// New returns a logger writing to the process's stdout and stderr.
func New(verbose, debug bool) *Logger {
	return &Logger{Verbose: verbose || debug, Debug: debug, Out: os.Stdout, Err: os.Stderr}
}

// Discard returns a logger that drops every line.
func Discard() *Logger {
	return &Logger{Out: io.Discard, Err: io.Discard}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l == nil || !l.Verbose {
		return
	}
	fmt.Fprintf(l.out(), color.GreenString("[info] ")+msg+"\n", args...)
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l == nil || !l.Debug {
		return
	}
	fmt.Fprintf(l.out(), color.CyanString("[debug] ")+msg+"\n", args...)
}

func (l *Logger) Warnf(msg string, args ...any) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.err(), color.YellowString("[warn] ")+msg+"\n", args...)
}

func (l *Logger) Errorf(msg string, args ...any) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.err(), color.RedString("[error] ")+msg+"\n", args...)
}

func (l *Logger) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

func (l *Logger) err() io.Writer {
	if l.Err == nil {
		return os.Stderr
	}
	return l.Err
}

// Redact replaces every occurrence of the given secrets in s.
func Redact(s string, secrets ...string) string {
	for _, secret := range secrets {
		if len(secret) > 3 {
			s = strings.ReplaceAll(s, secret, "[REDACTED]")
		}
	}
	return s
}
