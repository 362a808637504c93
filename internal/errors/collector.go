package errors

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Collector gathers non-fatal problems found while building a document, such
// as malformed annotation blocks. It is safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	errors    []DocError
	maxErrors int
}

// NewCollector creates a collector that keeps at most maxErrors entries
func NewCollector(maxErrors int) *Collector {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &Collector{maxErrors: maxErrors}
}

// Add records an error; entries beyond the limit are dropped
func (c *Collector) Add(err DocError) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.errors) >= c.maxErrors {
		return
	}
	c.errors = append(c.errors, err)
}

// AddSyntax records a syntax problem at loc
func (c *Collector) AddSyntax(message string, loc SourceLocation, cause error) {
	err := Wrap(SyntaxErrorCode, message, cause).WithLocation(loc)
	if hint := syntaxSuggestion(cause); hint != "" {
		err.WithSuggestion(hint)
	}
	c.Add(err)
}

// Errors returns the collected errors sorted by location
func (c *Collector) Errors() []DocError {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]DocError, len(c.errors))
	copy(out, c.errors)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Location(), out[j].Location()
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return out
}

// ErrorSummary counts the collected errors per code
type ErrorSummary struct {
	ByCode map[ErrorCode]int
	Total  int
}

// Summarize builds a per-code summary of the collected errors
func (c *Collector) Summarize() ErrorSummary {
	summary := ErrorSummary{ByCode: make(map[ErrorCode]int)}
	for _, err := range c.Errors() {
		summary.ByCode[err.ErrorCode()]++
		summary.Total++
	}
	return summary
}

// String returns a formatted summary of errors
func (s ErrorSummary) String() string {
	if s.Total == 0 {
		return "No problems found"
	}

	codes := make([]ErrorCode, 0, len(s.ByCode))
	for code := range s.ByCode {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%d %s(s)", s.ByCode[code], code))
	}
	return fmt.Sprintf("Found %d problem(s): %s", s.Total, strings.Join(parts, ", "))
}

// syntaxSuggestion derives a fix hint from errors that carry one
func syntaxSuggestion(cause error) string {
	type suggester interface{ Suggestion() string }
	if s, ok := cause.(suggester); ok {
		return s.Suggestion()
	}
	return ""
}
