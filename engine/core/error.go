package core

import (
	"fmt"
	"sort"
	"strings"
)

// Error is the coded error used across the engine. Code is a stable
// machine-readable identifier; Details carries structured context for
// diagnostics and logging.
type Error struct {
	Err     error
	Code    string
	Details map[string]any
}

// NewError creates a coded error wrapping an optional cause.
func NewError(err error, code string, details map[string]any) *Error {
	return &Error{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Code)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
		}
		sb.WriteString(" (")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
