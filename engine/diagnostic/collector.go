package diagnostic

import (
	"fmt"
	"sync"

	"github.com/tabhost/tabhost/engine/core"
)

// Severity classifies a collected diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

func (s Severity) String() string {
	return string(s)
}

// Entry is a single diagnostic reported against a contributing extension.
type Entry struct {
	Severity  Severity               `json:"severity"`
	Message   string                 `json:"message"`
	Extension core.ExtensionIdentity `json:"extension"`
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Extension.ID(), e.Message)
}

// Collector accumulates diagnostics scoped to one contributing extension.
// Validation never fails the host process; everything surfaces here instead.
type Collector struct {
	mu        sync.Mutex
	extension core.ExtensionIdentity
	entries   []Entry
}

// NewCollector creates a collector scoped to the given extension.
func NewCollector(extension core.ExtensionIdentity) *Collector {
	return &Collector{extension: extension}
}

// Error records an error-severity diagnostic.
func (c *Collector) Error(message string) {
	c.append(SeverityError, message)
}

// Errorf records a formatted error-severity diagnostic.
func (c *Collector) Errorf(format string, args ...any) {
	c.append(SeverityError, fmt.Sprintf(format, args...))
}

// Warn records a warning-severity diagnostic.
func (c *Collector) Warn(message string) {
	c.append(SeverityWarning, message)
}

// Warnf records a formatted warning-severity diagnostic.
func (c *Collector) Warnf(format string, args ...any) {
	c.append(SeverityWarning, fmt.Sprintf(format, args...))
}

func (c *Collector) append(severity Severity, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{
		Severity:  severity,
		Message:   message,
		Extension: c.extension,
	})
}

// Extension returns the identity this collector is scoped to.
func (c *Collector) Extension() core.ExtensionIdentity {
	return c.extension
}

// Entries returns a copy of the collected diagnostics in report order.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics of the given severity were collected.
func (c *Collector) Count(severity Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}
