// Package orchestrator drives the fixed-step tick sequence (spec §5)
// across the subsystems, wiring them by explicit struct reference
// rather than the reflection-based injection the teacher's App uses —
// per spec §9's "Manager singletons with global state" flattening note.
package orchestrator

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger matches the teacher's logging.go interface shape, backed by
// the standard library (no third-party structured-logging library
// appears anywhere in the example pack's own dependency stacks; see
// DESIGN.md).
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes Info/Debug to stdout and Warn/Error to stderr,
// mirroring the teacher's DefaultLogger.
type DefaultLogger struct {
	mu    sync.Mutex
	debug bool
	out   *log.Logger
	errOut *log.Logger
}

func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		out:    log.New(os.Stdout, "", log.LstdFlags),
		errOut: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Output(2, "[DEBUG] "+fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Output(2, "[INFO] "+fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.errOut.Output(2, "[WARN] "+fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.errOut.Output(2, "[ERROR] "+fmt.Sprintf(format, args...))
}

// nopLogger discards everything; used when the host supplies no logger.
type nopLogger struct{}

func NewNopLogger() Logger                           { return nopLogger{} }
func (nopLogger) DebugEnabled() bool                 { return false }
func (nopLogger) SetDebug(bool)                      {}
func (nopLogger) Debugf(string, ...any)              {}
func (nopLogger) Infof(string, ...any)               {}
func (nopLogger) Warnf(string, ...any)               {}
func (nopLogger) Errorf(string, ...any)              {}
