package dberror

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory classifies errors by their nature and appropriate handling strategy.
type ErrorCategory int

const (
	// ErrCategoryUser represents errors caused by invalid user input.
	// Examples: malformed statements, oversized text fields, negative ids.
	// These errors are fixable by changing the statement.
	ErrCategoryUser ErrorCategory = iota

	// ErrCategoryCapacity represents errors raised when the fixed-size table
	// has no room left. Nothing short of a larger page budget resolves them.
	ErrCategoryCapacity

	// ErrCategoryState represents misuse of a storage object, such as reading
	// through a cursor that already reached the end of the table.
	ErrCategoryState

	// ErrCategorySystem represents internal failures, such as a row buffer
	// that is smaller than the row layout requires.
	ErrCategorySystem
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryUser:
		return "user"
	case ErrCategoryCapacity:
		return "capacity"
	case ErrCategoryState:
		return "state"
	case ErrCategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Error codes understood by the engine.
const (
	CodeCapacityExceeded      = "CAPACITY_EXCEEDED"
	CodeTableFull             = "TABLE_FULL"
	CodeInvalidCursorState    = "INVALID_CURSOR_STATE"
	CodeFieldTooLong          = "FIELD_TOO_LONG"
	CodeInvalidField          = "INVALID_FIELD"
	CodeSyntaxError           = "SYNTAX_ERROR"
	CodeUnrecognizedStatement = "UNRECOGNIZED_STATEMENT"
	CodeNegativeID            = "NEGATIVE_ID"
	CodePagerClosed           = "PAGER_CLOSED"
	CodeBufferTooSmall        = "BUFFER_TOO_SMALL"
)

// Sentinels for errors.Is. A DBError matches a sentinel when their codes are equal,
// so callers never need to compare messages.
var (
	ErrCapacityExceeded      = sentinel(ErrCategoryCapacity, CodeCapacityExceeded, "no free page slot available")
	ErrTableFull             = sentinel(ErrCategoryCapacity, CodeTableFull, "table full")
	ErrInvalidCursorState    = sentinel(ErrCategoryState, CodeInvalidCursorState, "invalid cursor state")
	ErrFieldTooLong          = sentinel(ErrCategoryUser, CodeFieldTooLong, "string is too long")
	ErrInvalidField          = sentinel(ErrCategoryUser, CodeInvalidField, "invalid field value")
	ErrSyntaxError           = sentinel(ErrCategoryUser, CodeSyntaxError, "syntax error")
	ErrUnrecognizedStatement = sentinel(ErrCategoryUser, CodeUnrecognizedStatement, "unrecognized statement")
	ErrNegativeID            = sentinel(ErrCategoryUser, CodeNegativeID, "id must be positive")
	ErrPagerClosed           = sentinel(ErrCategoryState, CodePagerClosed, "pager is closed")
	ErrBufferTooSmall        = sentinel(ErrCategorySystem, CodeBufferTooSmall, "buffer too small for row")
)

// DBError represents a structured database error with rich context information.
type DBError struct {
	// Code is a unique identifier for this error type (e.g., "TABLE_FULL").
	Code string

	// Category classifies the error for appropriate handling strategy.
	Category ErrorCategory

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail provides additional context about the specific error instance.
	// Example: "username is 33 bytes, limit is 32".
	Detail string

	// Hint suggests how the user might fix or work around this error.
	Hint string

	// Operation identifies the operation that was being performed.
	// Examples: "Insert", "RowSlot", "GetOrAllocate", "Advance".
	Operation string

	// Component identifies the component where the error originated.
	// Examples: "Pager", "Table", "Cursor", "RowCodec", "Executor".
	Component string

	// Cause is the underlying error that triggered this database error.
	Cause error

	// Stack contains the call stack where this error was created.
	Stack []uintptr
}

func sentinel(category ErrorCategory, code, message string) *DBError {
	return &DBError{Code: code, Category: category, Message: message}
}

// New creates a new DBError with the specified code, category, and message.
func New(category ErrorCategory, code, message string) *DBError {
	return &DBError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
}

// From creates a fresh error carrying the code, category and message of a
// sentinel, with an instance-specific detail. The detail is always run
// through fmt.Sprintf; pass "%s" to use literal text.
//
// Example:
//
//	return dberror.From(dberror.ErrTableFull, "%d rows stored", n).At("Insert", "Executor")
func From(s *DBError, format string, args ...any) *DBError {
	return &DBError{
		Code:     s.Code,
		Category: s.Category,
		Message:  s.Message,
		Detail:   fmt.Sprintf(format, args...),
		Stack:    captureStack(),
	}
}

// At records where the error was raised. It only fills fields that are still empty,
// so the innermost location wins when an error travels up the stack.
func (e *DBError) At(operation, component string) *DBError {
	if e.Operation == "" {
		e.Operation = operation
	}
	if e.Component == "" {
		e.Component = component
	}
	return e
}

// WithHint attaches a remediation hint.
func (e *DBError) WithHint(hint string) *DBError {
	e.Hint = hint
	return e
}

// Wrap wraps an existing error with database-specific context information.
// If the error is already a DBError, it enriches the existing error with
// operation and component context (only if not already set).
func Wrap(err error, code, operation, component string) *DBError {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.At(operation, component)
	}

	return &DBError{
		Code:      code,
		Category:  ErrCategorySystem,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// CodeOf returns the code of the first DBError in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}
	return ""
}

// captureStack captures the current call stack for debugging purposes.
// It skips the first 3 frames to exclude captureStack, New/Wrap, and the
// immediate caller, focusing on the actual error origin.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error implements the standard Go error interface
//
// The format follows the pattern:
// [ERROR_CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *DBError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Is reports whether target is a DBError with the same code.
func (e *DBError) Is(target error) bool {
	t, ok := target.(*DBError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Unwrap returns the underlying cause error, enabling error chain traversal
// with Go's standard error handling functions like errors.Is and errors.As.
func (e *DBError) Unwrap() error {
	return e.Cause
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *DBError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("  %s\n    %s:%d\n",
			f.Function, f.File, f.Line))
		if !more {
			break
		}
	}

	return b.String()
}
