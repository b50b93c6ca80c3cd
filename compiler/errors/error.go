// Package errors defines the error model shared by every compilation
// stage. Each stage short-circuits on its first error; the CLI renders
// the error as a single diagnostic line or as JSON.
package errors

import (
	"encoding/json"
	"fmt"
)

// Severity represents the severity level of an error
type Severity int

const (
	Warning Severity = iota
	Error
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// SourceLocation represents a location in schema source
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// CompilerError represents a positioned compiler error
type CompilerError struct {
	Phase    string         // "lexer", "parser", "resolver", "codegen", "io"
	Code     string         // "LEX001", "PARSE001", ...
	Message  string         // Human-readable message
	Location SourceLocation // File, line, column
	Severity Severity
}

// Error implements the error interface. The rendering matches the
// compiler's user-visible diagnostic format:
//
//	<path>:<line>:<column>: error: <message>
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		e.Location.File,
		e.Location.Line,
		e.Location.Column,
		e.Severity,
		e.Message)
}

// New creates a new CompilerError at Error severity
func New(phase, code, message string, location SourceLocation) *CompilerError {
	return &CompilerError{
		Phase:    phase,
		Code:     code,
		Message:  message,
		Location: location,
		Severity: Error,
	}
}

// MarshalJSON implements json.Marshaler
func (e *CompilerError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phase    string         `json:"phase"`
		Code     string         `json:"code"`
		Message  string         `json:"message"`
		Severity Severity       `json:"severity"`
		Location SourceLocation `json:"location"`
	}{
		Phase:    e.Phase,
		Code:     e.Code,
		Message:  e.Message,
		Severity: e.Severity,
		Location: e.Location,
	})
}
