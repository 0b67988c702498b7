// Package logio provides the leveled logging used by the command line, and
// a Writer that turns written lines into log calls.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Exit codes reported by ExitCode.
const (
	ExitOK      = 0
	ExitError   = 1 // an error was logged
	ExitStartup = 2 // a usage or io error, raised before or around the main work
)

// Logger writes "LEVEL: message" lines to an output stream, remembering the
// most severe exit code implied by any error logged. The zero value discards
// all output until SetOutput is called.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the stream that log lines are written to.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.out = out
}

// ExitCode returns a code to pass to os.Exit: ExitOK unless an error was
// logged.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a printf-style function that logs at the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error, like an io error, raising ExitCode to
// ExitStartup.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.ErrorCodef(ExitStartup, "%+v", err)
	}
}

// Errorf is like Printf("ERROR", ...), but also raises ExitCode to at least
// ExitError.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.ErrorCodef(ExitError, mess, args...)
}

// ErrorCodef is like Errorf, but raises ExitCode to at least code.
func (log *Logger) ErrorCodef(code int, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.raise(code)
	if err := log.printf("ERROR", mess, args...); err != nil {
		log.raise(ExitStartup)
	}
}

// Printf writes a line like "level: message...\n"; an empty level is
// omitted. Failing to write raises ExitCode to ExitStartup.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.raise(ExitStartup)
	}
}

func (log *Logger) raise(code int) {
	if code > log.exitCode {
		log.exitCode = code
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if log.out == nil {
		return nil
	}
	log.buf.Reset()
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.buf.WriteTo(log.out)
	return err
}
