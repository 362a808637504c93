package synth

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/toyz/autoswagger/internal/annotations"
)

// patternInfo is what a route pattern contributes to its operations
type patternInfo struct {
	Normalized string
	Parameters []annotations.Parameter
	Tag        string
}

// analyzePattern derives path parameters, the resource tag and the
// normalized path key of a pattern. Parameter segments are written as
// :name, :name?, *name, {name} or {name:type}; all become required.
func analyzePattern(pattern string, tagIndex int, types map[string]string) patternInfo {
	var info patternInfo

	segments := strings.Split(pattern, "/")
	if tagIndex >= 0 && tagIndex < len(segments) {
		if _, _, isParam := parseSegment(segments[tagIndex]); !isParam {
			info.Tag = strings.ToUpper(segments[tagIndex])
		}
	}

	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		name, inlineType, isParam := parseSegment(segment)
		if !isParam {
			out = append(out, segment)
			continue
		}

		typ := inlineType
		if t, ok := types[name]; ok && t != "" {
			typ = t
		}
		info.Parameters = append(info.Parameters, annotations.Parameter{
			Name:     name,
			In:       annotations.InPath,
			Required: true,
			Type:     typ,
		})
		out = append(out, "{"+name+"}")
	}

	normalized := strings.TrimRight(strings.Join(out, "/"), "/")
	normalized = strings.TrimPrefix(normalized, "/")
	if normalized == "" {
		normalized = "/"
	}
	info.Normalized = normalized

	return info
}

// parseSegment recognises a parameter segment, returning its name and inline type
func parseSegment(segment string) (name, typ string, ok bool) {
	switch {
	case strings.HasPrefix(segment, ":") && len(segment) > 1:
		return strings.TrimSuffix(segment[1:], "?"), "", true
	case segment == "*":
		return "wildcard", "", true
	case strings.HasPrefix(segment, "*"):
		return segment[1:], "", true
	case strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") && len(segment) > 2:
		inner := segment[1 : len(segment)-1]
		name, typ, _ := strings.Cut(inner, ":")
		name = strings.TrimSpace(name)
		if name == "*" {
			name = "wildcard"
		}
		return name, strings.TrimSpace(typ), true
	}
	return "", "", false
}

// parameterSchema maps a route or annotation parameter type onto a schema.
// Go type names as used in {id:int} are accepted alongside OpenAPI names.
func parameterSchema(typ string) *openapi3.Schema {
	switch strings.ToLower(typ) {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "integer":
		return openapi3.NewIntegerSchema()
	case "float", "float32", "float64", "number":
		return openapi3.NewFloat64Schema()
	case "bool", "boolean":
		return openapi3.NewBoolSchema()
	case "uuid", "uuid.uuid":
		return openapi3.NewStringSchema().WithFormat("uuid")
	case "time", "time.time", "datetime":
		return openapi3.NewDateTimeSchema()
	case "array":
		return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	case "object":
		return openapi3.NewObjectSchema()
	default:
		return openapi3.NewStringSchema()
	}
}
