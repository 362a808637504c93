package errors

import (
	"fmt"
	"strings"
)

// DocError is a problem raised while turning sources into a document
type DocError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a DocError
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	FileSystemErrorCode
	ConfigurationErrorCode
	GenerationErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:        "SyntaxError",
	FileSystemErrorCode:    "FileSystemError",
	ConfigurationErrorCode: "ConfigurationError",
	GenerationErrorCode:    "GenerationError",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation points at a position in a Go source file; Line and Column are 1-based
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// String renders the location as file, file:line or file:line:column
func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// BaseError is the DocError implementation used throughout the module.
// Op and Subject name the failed step and what it acted on ("read", a path).
type BaseError struct {
	Code    ErrorCode
	Message string
	Op      string
	Subject string
	Loc     SourceLocation
	Cause   error
	Hints   []string
}

func (e *BaseError) Error() string {
	msg := e.Message
	if e.Loc.File != "" {
		msg = e.Loc.String() + ": " + msg
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// WithLocation attaches the source position the error refers to
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithSuggestion appends a fix hint
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates an error without a cause
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Wrap creates an error caused by cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

// HasCode reports whether err, or any error it wraps, is a DocError with the given code
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if de, ok := err.(DocError); ok && de.ErrorCode() == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Summary renders the error with its hints, one per line
func Summary(err DocError) string {
	var b strings.Builder
	b.WriteString(err.Error())
	for _, hint := range err.Suggestions() {
		b.WriteString("\n  hint: ")
		b.WriteString(hint)
	}
	return b.String()
}
