package errors

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryDeps    Category = "deps"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// HookError is a structured error with slot position, source location and
// a fix suggestion.
type HookError struct {
	// Code is a unique error identifier (e.g., "H001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Reason is the specific cause of this occurrence (e.g. the expected
	// and actual hook kinds).
	Reason string

	// Slot is the slot position involved, or -1 when no slot is.
	Slot int

	// Location is the hook call site, when known.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Slot >= 0 {
		msg += fmt.Sprintf(" at slot %d", e.Slot)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HookError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a *HookError with the same code. This lets
// code-only sentinels match fully populated errors.
func (e *HookError) Is(target error) bool {
	t, ok := target.(*HookError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// AtSlot records the slot position involved.
func (e *HookError) AtSlot(pos int) *HookError {
	e.Slot = pos
	return e
}

// WithLocation adds a source location to the error.
func (e *HookError) WithLocation(file string, line int) *HookError {
	e.Location = &Location{File: file, Line: line}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithCaller records the location of the caller skip frames above the
// function calling WithCaller.
func (e *HookError) WithCaller(skip int) *HookError {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return e
	}
	return e.WithLocation(file, line)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HookError) WithSuggestion(s string) *HookError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *HookError) WithDetail(d string) *HookError {
	e.Detail = d
	return e
}

// Because records the specific cause of this occurrence.
func (e *HookError) Because(format string, args ...any) *HookError {
	e.Reason = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *HookError) Wrap(err error) *HookError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a HookError from a registered error code.
func New(code string) *HookError {
	template, ok := registry[code]
	if !ok {
		return &HookError{
			Code:    code,
			Message: "Unknown error",
			Slot:    -1,
		}
	}
	return &HookError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		Slot:     -1,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new HookError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HookError {
	return &HookError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Slot:     -1,
	}
}

// FromError wraps a standard error in a HookError.
func FromError(err error, code string) *HookError {
	if err == nil {
		return nil
	}
	if he, ok := err.(*HookError); ok {
		return he
	}
	return New(code).Wrap(err)
}
