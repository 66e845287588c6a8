// Package diag is the diagnostics side channel shared by the assembler and
// the CPU. It is a passive, append-only record of severity-tagged events —
// it performs no I/O and no formatting of its own; a caller (a UI
// collaborator, a CLI, a test) reads Entries() to see what happened.
//
// Trimmed to the one phase axis actually needed (assembler pass name, or
// "trap" for CPU interrupt hooks), without the multi-file Location/snippet/
// hint machinery an include-capable preprocessor would need.
package diag

import (
	"fmt"
	"sync"
)

// Severity classifies an Entry.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
	SeverityInfo  Severity = "info"
	SeverityTrap  Severity = "trap"
)

// Entry is a single diagnostic event.
type Entry struct {
	Severity Severity
	Phase    string // e.g. "lex", "parse", "assembly", "encoding", "trap"
	Line     int    // 1-based source line, or 0 when not applicable
	Message  string
}

// String renders a single-line human-readable form.
func (e Entry) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s [%s] line %d: %s", e.Severity, e.Phase, e.Line, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Severity, e.Phase, e.Message)
}

// Log accumulates Entry values. Safe for concurrent writes so a UI
// collaborator may read it from another goroutine between CPU steps; the
// CPU and assembler themselves never touch it concurrently.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

func (l *Log) record(sev Severity, phase string, line int, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Severity: sev, Phase: phase, Line: line, Message: message})
}

// Error records an error-severity entry.
func (l *Log) Error(phase string, line int, message string) {
	l.record(SeverityError, phase, line, message)
}

// Warn records a warning-severity entry.
func (l *Log) Warn(phase string, line int, message string) {
	l.record(SeverityWarn, phase, line, message)
}

// Info records an info-severity entry.
func (l *Log) Info(phase string, line int, message string) {
	l.record(SeverityInfo, phase, line, message)
}

// Trap records a trap-severity entry — used by the CPU's interrupt-0 hook
// to surface divide-by-zero and division-overflow events without
// panicking or halting.
func (l *Log) Trap(message string) {
	l.record(SeverityTrap, "trap", 0, message)
}

// Entries returns a copy of all recorded entries, in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// HasErrors reports whether any error-severity entry was recorded.
func (l *Log) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
