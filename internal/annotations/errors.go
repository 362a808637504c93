package annotations

import "fmt"

// SyntaxError represents a tag that could not be interpreted
type SyntaxError struct {
	Tag  string         // Tag being parsed
	Msg  string         // Error message
	Loc  SourceLocation // Where the error occurred
	Hint string         // Suggested fix
}

func (e *SyntaxError) Error() string {
	prefix := "syntax error"
	if e.Tag != "" {
		prefix = fmt.Sprintf("@%s", e.Tag)
	}
	msg := fmt.Sprintf("%s: %s", prefix, e.Msg)
	if e.Loc.File != "" {
		msg = fmt.Sprintf("%s:%d:%d: %s", e.Loc.File, e.Loc.Line, e.Loc.Column, msg)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s. %s", msg, e.Hint)
	}
	return msg
}

// Location returns where the error occurred
func (e *SyntaxError) Location() SourceLocation { return e.Loc }

// Suggestion returns the suggested fix
func (e *SyntaxError) Suggestion() string { return e.Hint }

func newSyntaxError(kind TagKind, loc SourceLocation, msg, hint string) *SyntaxError {
	return &SyntaxError{Tag: kind.String(), Msg: msg, Loc: loc, Hint: hint}
}
