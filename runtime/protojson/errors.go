// Package protojson is the runtime consumed by generated codecs: a
// positioned JSON tokenizer, read/write primitives for every supported
// scalar, presence wrappers, and the key reveal helper.
package protojson

import "fmt"

// ErrorCode classifies runtime serialization errors
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodeIgnoreFailed
	CodeMissingField
	CodeInvalidSeparator
	CodeInvalidValue
	CodeInvalidObject
	CodeInvalidName
	CodeInvalidArray
	CodeWriteFailed
)

// String returns a short identifier for the code
func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeIgnoreFailed:
		return "ignore_failed"
	case CodeMissingField:
		return "missing_field"
	case CodeInvalidSeparator:
		return "invalid_separator"
	case CodeInvalidValue:
		return "invalid_value"
	case CodeInvalidObject:
		return "invalid_object"
	case CodeInvalidName:
		return "invalid_name"
	case CodeInvalidArray:
		return "invalid_array"
	case CodeWriteFailed:
		return "write_failed"
	default:
		return "unknown"
	}
}

// ErrorInfo carries the first error of a serialize or deserialize call
// together with the tokenizer position at the point of failure.
type ErrorInfo struct {
	Code    ErrorCode
	Message string
	Line    int
	Column  int
}

// OK reports whether no error has been recorded
func (e *ErrorInfo) OK() bool {
	return e.Code == CodeOK
}

// Clear resets the error slot
func (e *ErrorInfo) Clear() {
	*e = ErrorInfo{}
}

// Error implements the error interface
func (e *ErrorInfo) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
