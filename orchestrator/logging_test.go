package orchestrator

import "testing"

func TestNopLoggerIsSilentAndSafe(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	if l.DebugEnabled() {
		t.Errorf("nop logger should never report debug as enabled")
	}
	l.Infof("hello %s", "world")
	l.Errorf("boom")
}

func TestDefaultLoggerDebugGate(t *testing.T) {
	l := NewDefaultLogger()
	if l.DebugEnabled() {
		t.Errorf("expected debug to start disabled")
	}
	l.SetDebug(true)
	if !l.DebugEnabled() {
		t.Errorf("expected SetDebug(true) to enable debug logging")
	}
}
