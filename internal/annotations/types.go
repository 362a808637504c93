package annotations

import (
	"fmt"
	"strings"
)

// TagKind represents a recognised documentation tag
type TagKind int

const (
	UnknownTag TagKind = iota
	SummaryTag
	DescriptionTag
	OperationIDTag
	TagTag
	ParamPathTag
	ParamQueryTag
	ParamHeaderTag
	ParamCookieTag
	RequestBodyTag
	RequestFormDataBodyTag
	ResponseBodyTag
)

// String returns the tag name as written in comments
func (k TagKind) String() string {
	switch k {
	case SummaryTag:
		return "summary"
	case DescriptionTag:
		return "description"
	case OperationIDTag:
		return "operationId"
	case TagTag:
		return "tag"
	case ParamPathTag:
		return "paramPath"
	case ParamQueryTag:
		return "paramQuery"
	case ParamHeaderTag:
		return "paramHeader"
	case ParamCookieTag:
		return "paramCookie"
	case RequestBodyTag:
		return "requestBody"
	case RequestFormDataBodyTag:
		return "requestFormDataBody"
	case ResponseBodyTag:
		return "responseBody"
	default:
		return "unknown"
	}
}

// ParseTagKind converts a tag name (case-insensitive) to a TagKind
func ParseTagKind(s string) (TagKind, error) {
	switch strings.ToLower(s) {
	case "summary":
		return SummaryTag, nil
	case "description":
		return DescriptionTag, nil
	case "operationid":
		return OperationIDTag, nil
	case "tag":
		return TagTag, nil
	case "parampath":
		return ParamPathTag, nil
	case "paramquery":
		return ParamQueryTag, nil
	case "paramheader":
		return ParamHeaderTag, nil
	case "paramcookie":
		return ParamCookieTag, nil
	case "requestbody":
		return RequestBodyTag, nil
	case "requestformdatabody":
		return RequestFormDataBodyTag, nil
	case "responsebody":
		return ResponseBodyTag, nil
	default:
		return UnknownTag, fmt.Errorf("unknown tag: %s", s)
	}
}

// parameterLocation maps the param* tags to their OpenAPI "in" value
func (k TagKind) parameterLocation() (string, bool) {
	switch k {
	case ParamPathTag:
		return InPath, true
	case ParamQueryTag:
		return InQuery, true
	case ParamHeaderTag:
		return InHeader, true
	case ParamCookieTag:
		return InCookie, true
	default:
		return "", false
	}
}

// Parameter locations
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

// DefaultContentType is used when a body tag does not name one
const DefaultContentType = "application/json"

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// Parameter is a documented operation parameter. Its identity is (Name, In).
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	Type        string // OpenAPI primitive type, "" means string
	Example     string
}

// Key returns the identity key used when merging parameter sets
func (p Parameter) Key() string {
	return p.In + ":" + p.Name
}

// MediaSpec describes the body for one content type
type MediaSpec struct {
	Schema  string // schema name referenced as <Schema>
	Array   bool   // true for <Schema[]>
	Example string // literal example when no schema is referenced
}

// IsEmpty reports whether the media spec carries neither a schema nor an example
func (m MediaSpec) IsEmpty() bool {
	return m.Schema == "" && m.Example == ""
}

// RequestBody maps content types to their media spec
type RequestBody struct {
	Content map[string]MediaSpec
}

// ResponseSpec is a documented response. Summary is transient: it only seeds
// the operation summary and never reaches the output.
type ResponseSpec struct {
	Description string
	Summary     string
	Content     map[string]MediaSpec
}

// OperationAnnotation is everything documented on one handler function
type OperationAnnotation struct {
	Summary     string
	Description string
	OperationID string
	Tags        []string
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   map[string]ResponseSpec

	// Malformed is set when the comment could not be parsed; all other
	// fields are then empty.
	Malformed bool
}

// IsEmpty reports whether nothing was documented
func (a OperationAnnotation) IsEmpty() bool {
	return a.Summary == "" && a.Description == "" && a.OperationID == "" &&
		len(a.Tags) == 0 && len(a.Parameters) == 0 && a.RequestBody == nil &&
		len(a.Responses) == 0
}
